package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/amritadottown/timetable-registry/internal"
	"github.com/amritadottown/timetable-registry/internal/config"
	"github.com/amritadottown/timetable-registry/internal/timetable"
)

type ProcessingService struct {
	cfg    config.Config
	parser *timetable.Parser
	grid   GridOptions
	log    *zap.Logger
}

func NewProcessingService(cfg config.Config, parser *timetable.Parser, log *zap.Logger) *ProcessingService {
	if parser == nil {
		parser = timetable.NewParser(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ProcessingService{cfg: cfg, parser: parser, grid: GridOptionsFromConfig(cfg), log: log}
}

type ProcessOptions struct {
	Kind      internal.SourceKind
	Page      int
	OutputDir string
	DryRun    bool
}

type ParsedTable struct {
	Page      int
	Index     int
	Timetable timetable.Timetable
	Record    timetable.OutputRecord
	Path      string
}

type ProcessResult struct {
	RunID      string
	Source     string
	Tables     int
	Timetables []ParsedTable
	Written    int
	Failed     int
}

func (s *ProcessingService) Parser() *timetable.Parser {
	return s.parser
}

func (s *ProcessingService) ProcessFile(ctx context.Context, path string, opt ProcessOptions) (ProcessResult, error) {
	doc, err := ExtractFile(path, opt.Kind, ExtractOptions{Grid: s.grid, Page: opt.Page})
	if err != nil {
		return ProcessResult{}, err
	}
	return s.process(ctx, doc, opt)
}

func (s *ProcessingService) ProcessMail(ctx context.Context, mail MailDocument, opt ProcessOptions) (ProcessResult, error) {
	return s.process(ctx, mail.Document, opt)
}

// ExtractMail decodes a raw message so the caller can run detection before
// committing to a parse.
func (s *ProcessingService) ExtractMail(raw []byte) (MailDocument, error) {
	return ExtractFromEmail(raw, ExtractOptions{Grid: s.grid})
}

func (s *ProcessingService) process(ctx context.Context, doc internal.Document, opt ProcessOptions) (ProcessResult, error) {
	runID := uuid.NewString()
	log := s.log.With(zap.String("run_id", runID), zap.String("source", doc.Name))

	outputDir := opt.OutputDir
	if outputDir == "" {
		outputDir = s.cfg.OutputDir
	}

	parsed, err := s.ParseDocument(ctx, doc, outputDir)
	if err != nil {
		return ProcessResult{}, err
	}

	res := ProcessResult{RunID: runID, Source: doc.Name, Tables: doc.TableCount(), Timetables: parsed}
	for _, pt := range parsed {
		log.Info("timetable found",
			zap.Int("page", pt.Page),
			zap.String("department", pt.Timetable.Department),
			zap.String("section", pt.Timetable.Section),
			zap.Int("subjects", pt.Timetable.Subjects.Len()),
		)
	}

	if !opt.DryRun {
		res.Written, res.Failed = s.writeAll(log, parsed)
	}
	log.Info("document processed",
		zap.Int("tables", res.Tables),
		zap.Int("timetables", len(parsed)),
		zap.Int("written", res.Written),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}

// ParseDocument interprets every table of doc in parallel. Results keep
// document order; rejected tables are dropped.
func (s *ProcessingService) ParseDocument(ctx context.Context, doc internal.Document, outputDir string) ([]ParsedTable, error) {
	type job struct {
		page, index int
		rows        []internal.Row
	}
	var jobs []job
	for _, p := range doc.Pages {
		for i, t := range p.Tables {
			jobs = append(jobs, job{page: p.Number, index: i, rows: t.Rows})
		}
	}

	slots := make([]*ParsedTable, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.cfg.ParseWorkers, 1))
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tt, ok := s.parser.ParseTable(j.rows)
			if !ok {
				s.log.Debug("table rejected", zap.Int("page", j.page), zap.Int("table", j.index), zap.Int("rows", len(j.rows)))
				return nil
			}
			slots[i] = &ParsedTable{
				Page:      j.page,
				Index:     j.index,
				Timetable: tt,
				Record:    s.parser.BuildRecord(tt),
				Path:      s.parser.OutputPath(outputDir, tt),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", doc.Name, err)
	}

	out := make([]ParsedTable, 0, len(slots))
	for _, pt := range slots {
		if pt != nil {
			out = append(out, *pt)
		}
	}
	return out, nil
}

// writeAll writes one file per timetable. A failed write is logged and the
// remaining tables are still written.
func (s *ProcessingService) writeAll(log *zap.Logger, parsed []ParsedTable) (written, failed int) {
	for _, pt := range parsed {
		if err := WriteRecord(pt.Path, pt.Record); err != nil {
			failed++
			log.Warn("write record failed", zap.String("path", pt.Path), zap.Error(err))
			continue
		}
		written++
		log.Info("record written", zap.String("path", pt.Path))
	}
	return written, failed
}
