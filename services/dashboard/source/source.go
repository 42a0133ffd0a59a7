package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hostelpower/usage-dashboard/services/dashboard/dataset"
	"github.com/hostelpower/usage-dashboard/services/dashboard/db"
)

// Kind tells where a dataset source lives.
type Kind string

const (
	KindFile     Kind = "file"
	KindHTTP     Kind = "http"
	KindPostgres Kind = "postgres"
	KindMySQL    Kind = "mysql"
)

// KindOf classifies a DATASET_SOURCE value.
func KindOf(src string) Kind {
	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return KindHTTP
	case strings.HasPrefix(src, "postgres://"), strings.HasPrefix(src, "postgresql://"):
		return KindPostgres
	case strings.HasPrefix(src, "mysql://"), strings.HasPrefix(src, "mariadb://"):
		return KindMySQL
	default:
		return KindFile
	}
}

// Load reads the dataset once from src. Schema and parse errors are returned
// unwrapped so callers can show them verbatim.
func Load(ctx context.Context, client *http.Client, src string) (*dataset.Table, error) {
	switch KindOf(src) {
	case KindHTTP:
		payload, err := Fetch(ctx, client, src)
		if err != nil {
			return nil, err
		}
		return dataset.Load(bytes.NewReader(payload))
	case KindPostgres:
		store, err := db.New(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		return store.LoadTable(ctx)
	case KindMySQL:
		conn, err := db.OpenMySQL(src)
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		defer conn.Close()
		return db.LoadTableMySQL(ctx, conn)
	default:
		return dataset.LoadFile(src)
	}
}

// Fetch downloads a CSV payload.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return payload, nil
}
