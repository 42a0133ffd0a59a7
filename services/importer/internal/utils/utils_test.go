package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hostelpower/usage-dashboard/services/dashboard/dataset"
)

func reading(day string, room string, units float64) dataset.Reading {
	d, _ := time.Parse("2006-01-02", day)
	return dataset.Reading{Date: d, Room: room, UnitsConsumed: units, Month: dataset.MonthKeyOf(d)}
}

func TestBatches(t *testing.T) {
	readings := []dataset.Reading{
		reading("2024-01-01", "R1", 1),
		reading("2024-01-02", "R1", 2),
		reading("2024-01-03", "R2", 3),
		reading("2024-01-04", "R2", 4),
		reading("2024-01-05", "R3", 5),
	}

	batches := Batches(readings, 2)
	assert.Len(t, batches, 3)
	assert.Len(t, batches[2], 1)
	assert.Equal(t, "R3", batches[2][0].Room)

	assert.Len(t, Batches(readings, 0), 1)
	assert.Nil(t, Batches(nil, 10))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]dataset.Reading{
		reading("2024-02-10", "R2", 1.5),
		reading("2024-01-03", "R1", 2),
		reading("2024-02-01", "R1", 0.5),
	})

	assert.Equal(t, 3, s.Rows)
	assert.Equal(t, 2, s.Rooms)
	assert.Equal(t, 2, s.Months)
	assert.Equal(t, "3 readings, 2 rooms, 2 months, 2024-01-03..2024-02-10, 4 units", s.String())

	assert.Equal(t, "0 readings", Summarize(nil).String())
}
