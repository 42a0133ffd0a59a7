package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/hostelpower/usage-dashboard/services/dashboard/charts"
	"github.com/hostelpower/usage-dashboard/services/dashboard/config"
	"github.com/hostelpower/usage-dashboard/services/dashboard/dataset"
	"github.com/hostelpower/usage-dashboard/services/dashboard/export"
	httpserver "github.com/hostelpower/usage-dashboard/services/dashboard/http"
	"github.com/hostelpower/usage-dashboard/services/dashboard/report"
	"github.com/hostelpower/usage-dashboard/services/dashboard/source"
)

// loadDataset reads config and the dataset once. Load errors come back
// as-is so the schema or parse message reaches the user verbatim.
func loadDataset(ctx context.Context) (config.Config, *dataset.Table, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, fmt.Errorf("config error: %w", err)
	}

	loadCtx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
	defer cancel()

	client := &http.Client{Timeout: cfg.LoadTimeout}
	table, err := source.Load(loadCtx, client, cfg.DatasetSource)
	if err != nil {
		return cfg, nil, err
	}

	opts := report.AvailableOptions(table)
	log.Printf("loaded %d readings from %s (%s): %d rooms, %d months",
		table.Len(), cfg.DatasetSource, source.KindOf(cfg.DatasetSource), len(opts.Rooms), len(opts.Months))
	return cfg, table, nil
}

func runServe(parent context.Context, port int) error {
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, table, err := loadDataset(ctx)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Port = port
	}

	srv := httpserver.New(cfg, table)
	log.Printf("dashboard API listening on %s", cfg.ListenAddr())

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func runExport(ctx context.Context, out string, rooms, months []string) error {
	cfg, table, err := loadDataset(ctx)
	if err != nil {
		return err
	}

	sel, err := exportSelection(table, rooms, months)
	if err != nil {
		return err
	}
	rep := report.Recompute(table, sel)

	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, d := range export.Downloads(table.Header, rep) {
		payload, err := export.Bytes(d.Write)
		if err != nil {
			return fmt.Errorf("%s: %w", d.Name, err)
		}
		if err := os.WriteFile(filepath.Join(out, d.Name), payload, 0o644); err != nil {
			return err
		}
	}

	opts := charts.Options{Width: cfg.ChartWidth, Height: cfg.ChartHeight}
	written := 0
	for _, panel := range charts.Panels {
		var buf bytes.Buffer
		err := charts.Render(&buf, panel, rep, opts)
		if errors.Is(err, charts.ErrNoData) {
			log.Printf("%s: %s", panel, charts.NoDataMessage)
			continue
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", panel, err)
		}
		if err := os.WriteFile(filepath.Join(out, panel.FileName()), buf.Bytes(), 0o644); err != nil {
			return err
		}
		written++
	}

	printExportSummary(out, rep, written)
	return nil
}

func runOptions(ctx context.Context) error {
	_, table, err := loadDataset(ctx)
	if err != nil {
		return err
	}
	printOptions(report.AvailableOptions(table))
	return nil
}

// exportSelection mirrors the picker: an omitted flag selects everything.
func exportSelection(table *dataset.Table, rooms, months []string) (report.Selection, error) {
	sel := report.Selection{Rooms: rooms}
	for _, m := range months {
		key, err := dataset.ParseMonthKey(m)
		if err != nil {
			return sel, err
		}
		sel.Months = append(sel.Months, key)
	}
	return report.Resolve(table, sel, len(rooms) == 0, len(months) == 0), nil
}
