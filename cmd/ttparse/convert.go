package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amritadottown/timetable-registry/internal"
	"github.com/amritadottown/timetable-registry/internal/pipeline"
)

func (a *app) convertCmd() *cobra.Command {
	var (
		preview   bool
		outputDir string
		page      int
		kind      string
		xlsxOut   string
		workers   int
	)
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Parse a timetable PDF, workbook, HTML page or .eml and write one JSON record per section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers > 0 {
				a.cfg.ParseWorkers = workers
				a.processor = pipeline.NewProcessingService(a.cfg, a.processor.Parser(), a.log)
			}
			var sourceKind internal.SourceKind
			if kind != "" {
				k, err := pipeline.ParseKind(kind)
				if err != nil {
					return err
				}
				sourceKind = k
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Parsing %s...\n", args[0])
			res, err := a.processor.ProcessFile(cmd.Context(), args[0], pipeline.ProcessOptions{
				Kind:      sourceKind,
				Page:      page,
				OutputDir: outputDir,
				DryRun:    preview,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nFound %d timetables\n", len(res.Timetables))

			if preview {
				if err := pipeline.WritePreview(out, a.processor.Parser().Tables().Weekdays, res.Timetables); err != nil {
					return err
				}
			} else {
				for _, pt := range res.Timetables {
					fmt.Fprintf(out, "Written: %s\n", pt.Path)
				}
				if res.Failed > 0 {
					return fmt.Errorf("%d of %d records could not be written", res.Failed, len(res.Timetables))
				}
			}

			if xlsxOut != "" {
				if err := pipeline.ExportTimetablesToXLSX(res.Timetables, xlsxOut); err != nil {
					return err
				}
				fmt.Fprintf(out, "Exported %d timetables to %s\n", len(res.Timetables), xlsxOut)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&preview, "preview", false, "print parsed data without writing files")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory for JSON files (default $OUTPUT_DIR)")
	cmd.Flags().IntVar(&page, "page", 0, "parse only this 1-indexed page or sheet")
	cmd.Flags().StringVar(&kind, "type", "", "pdf|xlsx|html|eml (default: from extension)")
	cmd.Flags().StringVar(&xlsxOut, "xlsx", "", "also write a workbook summary to this path")
	cmd.Flags().IntVar(&workers, "workers", 0, "tables parsed in parallel (default $PARSE_WORKERS)")
	return cmd
}
