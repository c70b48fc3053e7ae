package listener

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/amritadottown/timetable-registry/internal"
	"github.com/amritadottown/timetable-registry/internal/config"
	"github.com/amritadottown/timetable-registry/internal/connectors"
	"github.com/amritadottown/timetable-registry/internal/pipeline"
)

type Service struct {
	cfg       config.Config
	fetcher   *connectors.FetchService
	processor *pipeline.ProcessingService
	log       *zap.Logger
}

type CycleResult struct {
	Fetched    int
	New        int
	Pending    int
	Matched    int
	Written    int
	Failed     int
	Unreadable int
	Errors     int
}

func NewService(cfg config.Config, connector connectors.MailConnector, processor *pipeline.ProcessingService, log *zap.Logger) *Service {
	return &Service{
		cfg:       cfg,
		fetcher:   connectors.NewFetchService(cfg.RawMailDir, connector),
		processor: processor,
		log:       log.With(zap.String("provider", cfg.MailListenerProvider)),
	}
}

// Run polls the mailbox until ctx is done. A failed cycle is logged and
// retried on the next tick.
func (s *Service) Run(ctx context.Context) error {
	interval := time.Duration(max(s.cfg.MailListenerIntervalSec, 1)) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.RunCycle(ctx); err != nil && ctx.Err() == nil {
			s.log.Error("listener cycle failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// RunCycle fetches new mail, then works through every stored message that
// is still pending. A message is marked processed once it is unreadable,
// skipped, or all of its records were written; anything else is retried on
// the next cycle.
func (s *Service) RunCycle(ctx context.Context) (CycleResult, error) {
	fetched, err := s.fetcher.FetchAndStore(ctx, s.cfg.MailListenerLabel, s.cfg.MailListenerFetchMax)
	if err != nil {
		return CycleResult{}, err
	}
	store := s.fetcher.Store()
	pending, err := store.Pending()
	if err != nil {
		return CycleResult{}, err
	}

	known := make(map[string]internal.StoredMailMessage, len(fetched.Messages))
	for _, msg := range fetched.Messages {
		known[msg.Hash] = msg
	}

	res := CycleResult{Fetched: fetched.Fetched, New: fetched.New, Pending: len(pending)}
	for _, msg := range pending {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if m, ok := known[msg.Hash]; ok {
			msg = m
		}
		log := s.log.With(zap.String("hash", msg.Hash), zap.String("message_id", msg.MessageID))

		done, err := s.handle(ctx, log, msg, &res)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.Errors++
			log.Warn("message processing failed", zap.Error(err))
			continue
		}
		if !done {
			continue
		}
		if err := store.MarkProcessed(msg.Hash); err != nil {
			log.Warn("mark processed failed", zap.Error(err))
		}
	}

	s.log.Info("listener cycle done",
		zap.Int("fetched", res.Fetched),
		zap.Int("new", res.New),
		zap.Int("pending", res.Pending),
		zap.Int("matched", res.Matched),
		zap.Int("written", res.Written),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}

// handle reports whether msg needs no further attempts.
func (s *Service) handle(ctx context.Context, log *zap.Logger, msg internal.StoredMailMessage, res *CycleResult) (bool, error) {
	mail, err := s.processor.ExtractMail(msg.Raw)
	if err != nil {
		res.Unreadable++
		log.Warn("message unreadable", zap.Error(err))
		return true, nil
	}
	detect := pipeline.DetectTimetableMail(mail.Subject, mail.Text, mail.HasHTMLTable, mail.AttachmentNames)
	if !detect.IsTimetable {
		log.Debug("message skipped", zap.String("subject", mail.Subject), zap.Float64("score", detect.Score))
		return true, nil
	}
	res.Matched++

	out, err := s.processor.ProcessMail(ctx, mail, pipeline.ProcessOptions{})
	if err != nil {
		return false, err
	}
	res.Written += out.Written
	res.Failed += out.Failed
	return out.Failed == 0, nil
}
