package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"

	"github.com/hostelpower/usage-dashboard/services/dashboard/db"
	"github.com/hostelpower/usage-dashboard/services/dashboard/source"
	"github.com/hostelpower/usage-dashboard/services/importer/internal/config"
	"github.com/hostelpower/usage-dashboard/services/importer/internal/utils"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("importer failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	loadCtx, cancelLoad := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancelLoad()

	client := &http.Client{Timeout: cfg.RequestTimeout}
	table, err := source.Load(loadCtx, client, cfg.Source)
	if err != nil {
		return err
	}
	log.Printf("loaded %s from %s", utils.Summarize(table.Readings), cfg.Source)

	batches := utils.Batches(table.Readings, cfg.BatchSize)
	if cfg.DryRun {
		log.Printf("dry-run: would insert %d readings in %d batches (replace=%v)", table.Len(), len(batches), cfg.Replace)
		return nil
	}

	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(batches) == 0 && !cfg.Replace {
		log.Printf("no readings to insert")
		return nil
	}

	bar := progressbar.Default(int64(table.Len()), "importing")
	deleted, err := store.ImportReadings(ctx, batches, cfg.Replace, func(n int) { _ = bar.Add(n) })
	if err != nil {
		return err
	}
	if cfg.Replace {
		log.Printf("replaced %d existing readings", deleted)
	}

	log.Printf("inserted %d readings", table.Len())
	return nil
}
