package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelpower/usage-dashboard/services/dashboard/dataset"
)

// Store wraps database access helpers.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by a pgx pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const createReadingsSQL = `
    CREATE SCHEMA IF NOT EXISTS power;
    CREATE TABLE IF NOT EXISTS power.readings (
        id             BIGSERIAL PRIMARY KEY,
        reading_date   TIMESTAMP NOT NULL,
        room           TEXT NOT NULL,
        units_consumed DOUBLE PRECISION NOT NULL CHECK (units_consumed >= 0),
        created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
    );
`

const listReadingsSQL = `
    SELECT reading_date, room, units_consumed
    FROM power.readings
    ORDER BY id
`

// ListReadings returns every stored reading in insertion order.
func (s *Store) ListReadings(ctx context.Context) ([]dataset.Reading, error) {
	rows, err := s.pool.Query(ctx, listReadingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings := make([]dataset.Reading, 0)
	for rows.Next() {
		var r dataset.Reading
		if err := rows.Scan(&r.Date, &r.Room, &r.UnitsConsumed); err != nil {
			return nil, err
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

// LoadTable reads the stored readings into a dataset table.
func (s *Store) LoadTable(ctx context.Context) (*dataset.Table, error) {
	readings, err := s.ListReadings(ctx)
	if err != nil {
		return nil, err
	}
	return dataset.NewTable(readings), nil
}

const (
	deleteReadingsSQL = `DELETE FROM power.readings`
	insertReadingSQL  = `
    INSERT INTO power.readings (reading_date, room, units_consumed)
    VALUES ($1, $2, $3)
`
)

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ImportReadings writes every batch inside one transaction, creating the
// table first and emptying it when replace is set. Nothing is committed
// unless all batches succeed. onBatch, if set, is called after each batch
// with its size. It returns the number of rows deleted.
func (s *Store) ImportReadings(ctx context.Context, batches [][]dataset.Reading, replace bool, onBatch func(n int)) (int64, error) {
	return importReadings(ctx, s.pool, batches, replace, onBatch)
}

func importReadings(ctx context.Context, db txBeginner, batches [][]dataset.Reading, replace bool, onBatch func(n int)) (int64, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, createReadingsSQL); err != nil {
		return 0, fmt.Errorf("ensure schema: %w", err)
	}

	var deleted int64
	if replace {
		tag, err := tx.Exec(ctx, deleteReadingsSQL)
		if err != nil {
			return 0, fmt.Errorf("delete readings: %w", err)
		}
		deleted = tag.RowsAffected()
	}

	for i, batch := range batches {
		if err := insertBatch(ctx, tx, batch); err != nil {
			return 0, fmt.Errorf("insert batch %d: %w", i+1, err)
		}
		if onBatch != nil {
			onBatch(len(batch))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return deleted, nil
}

func insertBatch(ctx context.Context, tx pgx.Tx, readings []dataset.Reading) error {
	if len(readings) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, r := range readings {
		batch.Queue(insertReadingSQL, r.Date, r.Room, r.UnitsConsumed)
	}

	res := tx.SendBatch(ctx, batch)
	defer res.Close()

	for range readings {
		if _, err := res.Exec(); err != nil {
			return err
		}
	}
	return nil
}
