package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/amritadottown/timetable-registry/internal/config"
	"github.com/amritadottown/timetable-registry/internal/logging"
	"github.com/amritadottown/timetable-registry/internal/pipeline"
	"github.com/amritadottown/timetable-registry/internal/timetable"
)

type app struct {
	cfg       config.Config
	log       *zap.Logger
	processor *pipeline.ProcessingService
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	must(newRootCmd().ExecuteContext(ctx))
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "ttparse",
		Short:         "Convert section timetables into registry JSON records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.AddCommand(
		a.convertCmd(),
		a.mailFetchCmd(),
		a.mailListenCmd(),
		a.watchCmd(),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	tables, err := config.LoadTables(cfg.TablesFile)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	a.processor = pipeline.NewProcessingService(cfg, timetable.NewParser(tables), log)
	return nil
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
