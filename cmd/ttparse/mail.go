package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amritadottown/timetable-registry/internal/connectors"
	"github.com/amritadottown/timetable-registry/internal/listener"
	"github.com/amritadottown/timetable-registry/internal/pipeline"
)

func (a *app) mailFetchCmd() *cobra.Command {
	var (
		provider string
		label    string
		max      int
		process  bool
	)
	cmd := &cobra.Command{
		Use:   "mail:fetch",
		Short: "Fetch unseen messages once and store them under $RAW_MAIL_DIR",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := connectors.ForProvider(a.cfg, provider)
			if err != nil {
				return err
			}
			if !process {
				res, err := connectors.NewFetchService(a.cfg.RawMailDir, conn).FetchAndStore(cmd.Context(), label, max)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "mail fetch done provider=%s fetched=%d new=%d\n", provider, res.Fetched, res.New)
				return nil
			}

			a.cfg.MailListenerProvider = provider
			a.cfg.MailListenerLabel = label
			a.cfg.MailListenerFetchMax = max
			res, err := listener.NewService(a.cfg, conn, a.processor, a.log).RunCycle(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "mail fetch done provider=%s fetched=%d new=%d timetables=%d written=%d\n",
				provider, res.Fetched, res.New, res.Matched, res.Written)
			return nil
		},
	}
	cmd.Flags().StringVar(&provider, "provider", "gmail", "gmail|imap")
	cmd.Flags().StringVar(&label, "label", "INBOX", "mailbox or label")
	cmd.Flags().IntVar(&max, "max", 50, "max messages")
	cmd.Flags().BoolVar(&process, "process", false, "convert timetable messages after storing them")
	return cmd
}

func (a *app) mailListenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mail:listen",
		Short: "Poll the mailbox and convert emailed timetables until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := connectors.ForProvider(a.cfg, a.cfg.MailListenerProvider)
			if err != nil {
				return err
			}
			return listener.NewService(a.cfg, conn, a.processor, a.log).Run(cmd.Context())
		},
	}
}

func (a *app) watchCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Convert timetable files as they are dropped into a directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				dir = a.cfg.WatchDir
			}
			return a.runWatch(cmd.Context(), dir, pipeline.ProcessOptions{})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory to watch (default $WATCH_DIR)")
	return cmd
}
