package dataset

import (
	"strconv"
	"time"
)

// Column names of the source dataset.
const (
	ColumnDate      = "Date"
	ColumnRoom      = "Room"
	ColumnUnits     = "Units_Consumed"
	ColumnMonthYear = "month_year"
)

// RequiredColumns lists the columns every source must carry.
var RequiredColumns = []string{ColumnDate, ColumnRoom, ColumnUnits}

const monthLayout = "2006-01"

// MonthKey is a calendar month in "YYYY-MM" form. Keys sort chronologically
// as plain strings.
type MonthKey string

// MonthKeyOf truncates t to its calendar month.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format(monthLayout))
}

// ParseMonthKey validates a "YYYY-MM" token.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return "", err
	}
	return MonthKeyOf(t), nil
}

// Start returns the first instant of the month in UTC.
func (m MonthKey) Start() time.Time {
	t, err := time.Parse(monthLayout, string(m))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (m MonthKey) String() string { return string(m) }

// Reading is one row of the dataset. Raw holds the original cell values in
// header order.
type Reading struct {
	Date          time.Time `json:"date"`
	Room          string    `json:"room"`
	UnitsConsumed float64   `json:"units_consumed"`
	Month         MonthKey  `json:"month_year"`
	Raw           []string  `json:"-"`
}

// Table is the loaded dataset. It is read-only after Load.
type Table struct {
	Header   []string
	Readings []Reading
}

// NewTable builds a table from readings that did not come from a delimited
// file, e.g. a database query. Raw cells are synthesized from the typed values.
func NewTable(readings []Reading) *Table {
	out := make([]Reading, len(readings))
	for i, r := range readings {
		r.Month = MonthKeyOf(r.Date)
		r.Raw = []string{FormatDate(r.Date), r.Room, FormatUnits(r.UnitsConsumed)}
		out[i] = r
	}
	return &Table{
		Header:   append([]string(nil), RequiredColumns...),
		Readings: out,
	}
}

// Len returns the number of readings.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Readings)
}

// Head returns up to n raw rows of the unfiltered dataset.
func (t *Table) Head(n int) [][]string {
	if t == nil || n <= 0 {
		return [][]string{}
	}
	if n > len(t.Readings) {
		n = len(t.Readings)
	}
	rows := make([][]string, 0, n)
	for _, r := range t.Readings[:n] {
		rows = append(rows, append([]string(nil), r.Raw...))
	}
	return rows
}

// FormatDate renders a reading date the way exports write it. Dates parsed
// with a UTC offset keep it so a reload gives the same instant.
func FormatDate(t time.Time) string {
	if t.Location() != time.UTC {
		return t.Format(time.RFC3339)
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatUnits renders a consumption value in shortest round-trip form.
func FormatUnits(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
