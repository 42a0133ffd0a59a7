package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/hostelpower/usage-dashboard/services/dashboard/dataset"
	"github.com/hostelpower/usage-dashboard/services/dashboard/report"
)

// ParseAggregates reads a derived table written by this package back into
// rows. month_year and Room are optional columns, Units_Consumed is not.
func ParseAggregates(r io.Reader) ([]report.AggregateRow, error) {
	rows := make([]report.AggregateRow, 0)
	err := readDerived(r, false, func(month dataset.MonthKey, room string, units float64) {
		rows = append(rows, report.AggregateRow{Month: month, Room: room, Units: units})
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ParseHighestConsumers reads highest_consuming_rooms.csv back into rows.
func ParseHighestConsumers(r io.Reader) ([]report.HighestConsumerRow, error) {
	rows := make([]report.HighestConsumerRow, 0)
	err := readDerived(r, true, func(month dataset.MonthKey, room string, units float64) {
		rows = append(rows, report.HighestConsumerRow{Month: month, Room: room, Units: units})
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func readDerived(r io.Reader, strict bool, emit func(dataset.MonthKey, string, float64)) error {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return &dataset.SchemaError{Missing: []string{dataset.ColumnUnits}}
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	required := []string{dataset.ColumnUnits}
	if strict {
		required = monthRoomUnitsHeader
	}
	header = dataset.NormalizeHeader(header)
	cols, err := dataset.ColumnIndex(header, required)
	if err != nil {
		return err
	}
	monthCol := indexOf(header, dataset.ColumnMonthYear)
	roomCol := indexOf(header, dataset.ColumnRoom)
	if monthCol < 0 && roomCol < 0 {
		return &dataset.SchemaError{Missing: []string{dataset.ColumnMonthYear, dataset.ColumnRoom}}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		var month dataset.MonthKey
		if monthCol >= 0 {
			month, err = dataset.ParseMonthKey(strings.TrimSpace(record[monthCol]))
			if err != nil {
				return &dataset.ParseError{Line: line, Column: dataset.ColumnMonthYear, Value: record[monthCol], Err: err}
			}
		}
		var room string
		if roomCol >= 0 {
			room = strings.TrimSpace(record[roomCol])
		}
		units, err := dataset.ParseUnits(record[cols[dataset.ColumnUnits]])
		if err != nil {
			return &dataset.ParseError{Line: line, Column: dataset.ColumnUnits, Value: record[cols[dataset.ColumnUnits]], Err: err}
		}
		emit(month, room, units)
	}
}
