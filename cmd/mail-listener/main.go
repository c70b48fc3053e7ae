package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amritadottown/timetable-registry/internal/config"
	"github.com/amritadottown/timetable-registry/internal/connectors"
	"github.com/amritadottown/timetable-registry/internal/listener"
	"github.com/amritadottown/timetable-registry/internal/logging"
	"github.com/amritadottown/timetable-registry/internal/pipeline"
	"github.com/amritadottown/timetable-registry/internal/timetable"
)

func main() {
	cfg, err := config.Load()
	must(err)

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	must(err)
	defer log.Sync()

	tables, err := config.LoadTables(cfg.TablesFile)
	must(err)

	conn, err := connectors.ForProvider(cfg, cfg.MailListenerProvider)
	must(err)

	processor := pipeline.NewProcessingService(cfg, timetable.NewParser(tables), log)
	svc := listener.NewService(cfg, conn, processor, log)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	must(svc.Run(ctx))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
