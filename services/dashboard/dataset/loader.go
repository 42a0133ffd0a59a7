package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006/01/02",
	"01/02/2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

var (
	errNegativeUnits = errors.New("units must be non-negative")
	errNotFinite     = errors.New("units must be finite")
	errEmptyRoom     = errors.New("room identifier is empty")
	errUnknownDate   = errors.New("unrecognized date format")
)

// LoadFile opens path and loads it with Load.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Load reads a delimited dataset with at least the Date, Room and
// Units_Consumed columns. Extra columns are kept in Reading.Raw.
func Load(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &SchemaError{Missing: append([]string(nil), RequiredColumns...)}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = NormalizeHeader(header)

	index, err := columnIndex(header, RequiredColumns)
	if err != nil {
		return nil, err
	}
	dateCol, roomCol, unitsCol := index[ColumnDate], index[ColumnRoom], index[ColumnUnits]

	table := &Table{Header: header, Readings: make([]Reading, 0)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) && errors.Is(csvErr.Err, csv.ErrFieldCount) {
			return nil, &ParseError{Line: csvErr.Line, Value: strings.Join(record, ","), Err: csv.ErrFieldCount}
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		date, err := ParseDate(record[dateCol])
		if err != nil {
			return nil, &ParseError{Line: line, Column: ColumnDate, Value: record[dateCol], Err: err}
		}

		room := strings.TrimSpace(record[roomCol])
		if room == "" {
			return nil, &ParseError{Line: line, Column: ColumnRoom, Value: record[roomCol], Err: errEmptyRoom}
		}

		units, err := ParseUnits(record[unitsCol])
		if err != nil {
			return nil, &ParseError{Line: line, Column: ColumnUnits, Value: record[unitsCol], Err: err}
		}

		table.Readings = append(table.Readings, Reading{
			Date:          date,
			Room:          room,
			UnitsConsumed: units,
			Month:         MonthKeyOf(date),
			Raw:           record,
		})
	}
	return table, nil
}

// ParseDate accepts the date formats seen in exported meter sheets.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errUnknownDate
}

// ParseUnits parses a non-negative, finite consumption value.
func ParseUnits(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	if v < 0 {
		return 0, errNegativeUnits
	}
	return v, nil
}

// NormalizeHeader trims header cells and drops a leading UTF-8 byte order mark.
func NormalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

// columnIndex maps each wanted column to its position, or returns a
// SchemaError naming all the absent ones.
func columnIndex(header, want []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	index := make(map[string]int, len(want))
	var missing []string
	for _, col := range want {
		i, ok := pos[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		index[col] = i
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	return index, nil
}

// ColumnIndex is columnIndex for readers of exported files.
func ColumnIndex(header, want []string) (map[string]int, error) {
	return columnIndex(NormalizeHeader(header), want)
}
