package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelpower/usage-dashboard/services/dashboard/dataset"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindFile, KindOf("sample_power_usage_500.csv"))
	assert.Equal(t, KindHTTP, KindOf("https://example.org/power.csv"))
	assert.Equal(t, KindPostgres, KindOf("postgres://u:p@localhost/db"))
	assert.Equal(t, KindMySQL, KindOf("mariadb://u:p@localhost/db"))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date,Room,Units_Consumed\n2024-01-01,A,4\n"), 0o644))

	table, err := Load(context.Background(), nil, path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestLoad_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/usage.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("Date,Room,Units_Consumed\n2024-01-01,A,4\n2024-02-01,B,6\n"))
	}))
	defer srv.Close()

	table, err := Load(context.Background(), srv.Client(), srv.URL+"/usage.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	_, err = Load(context.Background(), srv.Client(), srv.URL+"/missing.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestLoad_SchemaErrorIsUnwrapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("Day,Room\n"), 0o644))

	_, err := Load(context.Background(), nil, path)
	var schemaErr *dataset.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "missing required column(s): Date, Units_Consumed", err.Error())
}
