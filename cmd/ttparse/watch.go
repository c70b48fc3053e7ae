package main

import (
	"context"
	"time"

	"github.com/amritadottown/timetable-registry/internal/pipeline"
	"github.com/amritadottown/timetable-registry/internal/watch"
)

func (a *app) runWatch(ctx context.Context, dir string, opt pipeline.ProcessOptions) error {
	handler := func(ctx context.Context, path string) error {
		_, err := a.processor.ProcessFile(ctx, path, opt)
		return err
	}
	w, err := watch.New(dir, time.Duration(a.cfg.WatchDebounceMs)*time.Millisecond, handler, a.log)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return err
	}
	<-ctx.Done()
	w.Stop()
	return nil
}
