package export

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/hostelpower/usage-dashboard/services/dashboard/dataset"
	"github.com/hostelpower/usage-dashboard/services/dashboard/report"
)

// Download file names.
const (
	MonthlyConsumptionFile = "monthly_consumption.csv"
	HighestConsumersFile   = "highest_consuming_rooms.csv"
	ProcessedDataFile      = "processed_data.csv"
	MonthlyTotalsFile      = "total_monthly_consumption.csv"
	AveragePerRoomFile     = "average_monthly_consumption.csv"
)

var (
	monthRoomUnitsHeader = []string{dataset.ColumnMonthYear, dataset.ColumnRoom, dataset.ColumnUnits}
	monthUnitsHeader     = []string{dataset.ColumnMonthYear, dataset.ColumnUnits}
	roomUnitsHeader      = []string{dataset.ColumnRoom, dataset.ColumnUnits}
)

// WriteMonthlyConsumption writes per (month, room) totals.
func WriteMonthlyConsumption(w io.Writer, rows []report.AggregateRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{r.Month.String(), r.Room, dataset.FormatUnits(r.Units)})
	}
	return writeAll(w, monthRoomUnitsHeader, records)
}

// WriteHighestConsumers writes the top room of each month.
func WriteHighestConsumers(w io.Writer, rows []report.HighestConsumerRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{r.Month.String(), r.Room, dataset.FormatUnits(r.Units)})
	}
	return writeAll(w, monthRoomUnitsHeader, records)
}

// WriteMonthlyTotals writes whole-month totals.
func WriteMonthlyTotals(w io.Writer, rows []report.AggregateRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{r.Month.String(), dataset.FormatUnits(r.Units)})
	}
	return writeAll(w, monthUnitsHeader, records)
}

// WriteAveragePerRoom writes each room's average monthly consumption.
func WriteAveragePerRoom(w io.Writer, rows []report.AggregateRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{r.Room, dataset.FormatUnits(r.Units)})
	}
	return writeAll(w, roomUnitsHeader, records)
}

// WriteProcessedData writes filtered readings with every source column plus
// month_year. Date, Room and Units_Consumed come from the parsed values; other
// cells are written as read.
func WriteProcessedData(w io.Writer, header []string, readings []dataset.Reading) error {
	if len(header) == 0 {
		header = dataset.RequiredColumns
	}
	cols, err := dataset.ColumnIndex(header, dataset.RequiredColumns)
	if err != nil {
		return err
	}

	out := append(make([]string, 0, len(header)+1), header...)
	monthCol := indexOf(header, dataset.ColumnMonthYear)
	if monthCol < 0 {
		monthCol = len(out)
		out = append(out, dataset.ColumnMonthYear)
	}

	records := make([][]string, 0, len(readings))
	for _, r := range readings {
		rec := make([]string, len(out))
		copy(rec, r.Raw)
		rec[cols[dataset.ColumnDate]] = dataset.FormatDate(r.Date)
		rec[cols[dataset.ColumnRoom]] = r.Room
		rec[cols[dataset.ColumnUnits]] = dataset.FormatUnits(r.UnitsConsumed)
		rec[monthCol] = r.Month.String()
		records = append(records, rec)
	}
	return writeAll(w, out, records)
}

// Bytes collects what write produces into a download payload.
func Bytes(write func(io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeAll(w io.Writer, header []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}

func indexOf(header []string, col string) int {
	for i, h := range header {
		if h == col {
			return i
		}
	}
	return -1
}
