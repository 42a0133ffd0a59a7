package report

import "github.com/hostelpower/usage-dashboard/services/dashboard/dataset"

// Selection is the user's room and month choice. Both fields are sets;
// duplicates are ignored and an empty field selects nothing.
type Selection struct {
	Rooms  []string           `json:"rooms"`
	Months []dataset.MonthKey `json:"months"`
}

// AggregateRow is the shared shape of derived tables. Month is empty for
// per-room averages, Room is empty for whole-month totals.
type AggregateRow struct {
	Month dataset.MonthKey `json:"month_year,omitempty"`
	Room  string           `json:"room,omitempty"`
	Units float64          `json:"units_consumed"`
}

// HighestConsumerRow is the top room of one month.
type HighestConsumerRow struct {
	Month dataset.MonthKey `json:"month_year"`
	Room  string           `json:"room"`
	Units float64          `json:"units_consumed"`
}

// Report holds every table derived from one selection.
type Report struct {
	Selection       Selection            `json:"selection"`
	Filtered        []dataset.Reading    `json:"-"`
	MonthlyByRoom   []AggregateRow       `json:"monthly_by_room"`
	MonthlyTotal    []AggregateRow       `json:"monthly_total"`
	AveragePerRoom  []AggregateRow       `json:"average_per_room"`
	HighestPerMonth []HighestConsumerRow `json:"highest_per_month"`
}

// Empty reports whether the selection matched no readings. It is a valid
// display state, not an error.
func (r Report) Empty() bool {
	return len(r.Filtered) == 0
}

// Options are the sorted values offered by the room and month pickers.
type Options struct {
	Rooms  []string           `json:"rooms"`
	Months []dataset.MonthKey `json:"months"`
}
