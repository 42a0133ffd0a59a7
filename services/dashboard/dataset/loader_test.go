package dataset

import (
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Valid(t *testing.T) {
	in := "Date,Room,Units_Consumed,Block\n" +
		"2024-01-05,RoomA,10,North\n" +
		"2024-01-20,RoomA,5.5,North\n" +
		"2024-02-01,RoomB,30,South\n"

	table, err := Load(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	assert.Equal(t, []string{"Date", "Room", "Units_Consumed", "Block"}, table.Header)
	first := table.Readings[0]
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "RoomA", first.Room)
	assert.Equal(t, 10.0, first.UnitsConsumed)
	assert.Equal(t, MonthKey("2024-01"), first.Month)
	assert.Equal(t, []string{"2024-01-05", "RoomA", "10", "North"}, first.Raw)
	assert.Equal(t, MonthKey("2024-02"), table.Readings[2].Month)
}

func TestLoad_SameMonthKeyRegardlessOfDay(t *testing.T) {
	in := "Date,Room,Units_Consumed\n" +
		"2024-03-01,R1,1\n" +
		"2024-03-15 13:45:00,R1,1\n" +
		"03/31/2024,R1,1\n"

	table, err := Load(strings.NewReader(in))
	require.NoError(t, err)
	for _, r := range table.Readings {
		assert.Equal(t, MonthKey("2024-03"), r.Month)
	}
}

func TestLoad_ColumnOrderAndBOM(t *testing.T) {
	in := "\ufeffRoom , Units_Consumed,Date\nR9,2,2023-12-31\n"

	table, err := Load(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "R9", table.Readings[0].Room)
	assert.Equal(t, MonthKey("2023-12"), table.Readings[0].Month)
}

func TestLoad_MissingColumns(t *testing.T) {
	_, err := Load(strings.NewReader("Date,Units\n2024-01-01,3\n"))

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr), "got %v", err)
	assert.Equal(t, []string{"Room", "Units_Consumed"}, schemaErr.Missing)
	assert.Contains(t, err.Error(), "Room, Units_Consumed")
}

func TestLoad_EmptyInput(t *testing.T) {
	_, err := Load(strings.NewReader(""))

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Len(t, schemaErr.Missing, 3)
}

func TestLoad_HeaderOnly(t *testing.T) {
	table, err := Load(strings.NewReader("Date,Room,Units_Consumed\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.NotNil(t, table.Readings)
}

func TestLoad_ParseErrors(t *testing.T) {
	cases := []struct {
		name   string
		row    string
		column string
	}{
		{"bad date", "yesterday,R1,4", ColumnDate},
		{"bad units", "2024-01-01,R1,four", ColumnUnits},
		{"negative units", "2024-01-01,R1,-2", ColumnUnits},
		{"nan units", "2024-01-01,R1,NaN", ColumnUnits},
		{"blank units", "2024-01-01,R1,", ColumnUnits},
		{"blank room", "2024-01-01, ,4", ColumnRoom},
		{"missing field", "2024-01-01,R1", ""},
		{"extra field", "2024-01-01,R1,4,5", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := "Date,Room,Units_Consumed\n2024-01-02,R0,1\n" + tc.row + "\n"
			_, err := Load(strings.NewReader(in))

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "got %v", err)
			assert.Equal(t, tc.column, parseErr.Column)
			assert.Equal(t, 3, parseErr.Line)
		})
	}
}

func TestLoad_RaggedRowMessage(t *testing.T) {
	_, err := Load(strings.NewReader("Date,Room,Units_Consumed\n2024-01-01,R1\n"))

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.ErrorIs(t, err, csv.ErrFieldCount)
	assert.Equal(t, `line 2: cannot parse row "2024-01-01,R1": wrong number of fields`, err.Error())
}

func TestNewTable(t *testing.T) {
	table := NewTable([]Reading{
		{Date: time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC), Room: "R1", UnitsConsumed: 2.25},
	})

	require.Equal(t, 1, table.Len())
	assert.Equal(t, RequiredColumns, table.Header)
	assert.Equal(t, MonthKey("2024-05"), table.Readings[0].Month)
	assert.Equal(t, []string{"2024-05-09", "R1", "2.25"}, table.Readings[0].Raw)
}

func TestHead(t *testing.T) {
	in := "Date,Room,Units_Consumed\n2024-01-01,A,1\n2024-01-02,B,2\n2024-01-03,C,3\n"
	table, err := Load(strings.NewReader(in))
	require.NoError(t, err)

	assert.Len(t, table.Head(2), 2)
	assert.Len(t, table.Head(100), 3)
	assert.Empty(t, table.Head(0))
	assert.Equal(t, []string{"2024-01-01", "A", "1"}, table.Head(1)[0])
}

func TestParseMonthKey(t *testing.T) {
	m, err := ParseMonthKey("2025-11")
	require.NoError(t, err)
	assert.Equal(t, MonthKey("2025-11"), m)
	assert.Equal(t, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), m.Start())

	_, err = ParseMonthKey("2025-13")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-01-05", FormatDate(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-05 08:30:00", FormatDate(time.Date(2024, 1, 5, 8, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-05T00:00:00+02:00", FormatDate(time.Date(2024, 1, 5, 0, 0, 0, 0, time.FixedZone("", 2*3600))))
}

func TestFormatDate_OffsetRoundTrip(t *testing.T) {
	in, err := ParseDate("2024-01-31T23:30:00-05:00")
	require.NoError(t, err)

	out, err := ParseDate(FormatDate(in))
	require.NoError(t, err)
	assert.True(t, in.Equal(out), "got %s", out)
	assert.Equal(t, MonthKeyOf(in), MonthKeyOf(out))
}
