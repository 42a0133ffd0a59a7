package utils

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/hostelpower/usage-dashboard/services/dashboard/dataset"
)

// Batches splits readings into insert batches of at most size rows.
func Batches(readings []dataset.Reading, size int) [][]dataset.Reading {
	if len(readings) == 0 {
		return nil
	}
	if size <= 0 {
		size = len(readings)
	}
	return lo.Chunk(readings, size)
}

// Summary describes a set of readings for log lines.
type Summary struct {
	Rows       int
	Rooms      int
	Months     int
	First      time.Time
	Last       time.Time
	TotalUnits float64
}

// Summarize computes the row count, domain and date span of readings.
func Summarize(readings []dataset.Reading) Summary {
	s := Summary{Rows: len(readings)}
	if len(readings) == 0 {
		return s
	}

	s.Rooms = len(lo.Uniq(lo.Map(readings, func(r dataset.Reading, _ int) string { return r.Room })))
	s.Months = len(lo.Uniq(lo.Map(readings, func(r dataset.Reading, _ int) dataset.MonthKey { return r.Month })))
	s.First = lo.MinBy(readings, func(a, b dataset.Reading) bool { return a.Date.Before(b.Date) }).Date
	s.Last = lo.MaxBy(readings, func(a, b dataset.Reading) bool { return a.Date.After(b.Date) }).Date
	s.TotalUnits = lo.SumBy(readings, func(r dataset.Reading) float64 { return r.UnitsConsumed })
	return s
}

func (s Summary) String() string {
	if s.Rows == 0 {
		return "0 readings"
	}
	return fmt.Sprintf("%d readings, %d rooms, %d months, %s..%s, %s units",
		s.Rows, s.Rooms, s.Months, dataset.FormatDate(s.First), dataset.FormatDate(s.Last), dataset.FormatUnits(s.TotalUnits))
}
