package report

import (
	"sort"

	"github.com/samber/lo"

	"github.com/hostelpower/usage-dashboard/services/dashboard/dataset"
)

// group is one bucket of a stable group-by. Members keep input order.
type group[K comparable, T any] struct {
	Key     K
	Members []T
}

// groupStable buckets items by key. Buckets come out in the order their key
// was first seen; ties in later selections depend on this.
func groupStable[K comparable, T any](items []T, key func(T) K) []group[K, T] {
	index := make(map[K]int)
	groups := make([]group[K, T], 0)
	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group[K, T]{Key: k})
		}
		groups[i].Members = append(groups[i].Members, item)
	}
	return groups
}

type monthRoom struct {
	month dataset.MonthKey
	room  string
}

// MonthlyByRoom sums consumption per (month, room) pair.
func MonthlyByRoom(readings []dataset.Reading) []AggregateRow {
	groups := groupStable(readings, func(r dataset.Reading) monthRoom {
		return monthRoom{month: r.Month, room: r.Room}
	})

	rows := make([]AggregateRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, AggregateRow{
			Month: g.Key.month,
			Room:  g.Key.room,
			Units: sumReadings(g.Members),
		})
	}
	return rows
}

// MonthlyTotal sums consumption per month across all rooms.
func MonthlyTotal(readings []dataset.Reading) []AggregateRow {
	groups := groupStable(readings, func(r dataset.Reading) dataset.MonthKey { return r.Month })

	rows := make([]AggregateRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, AggregateRow{Month: g.Key, Units: sumReadings(g.Members)})
	}
	return rows
}

// AveragePerRoom takes MonthlyByRoom output and averages each room's monthly
// totals. Days per month do not weigh in.
func AveragePerRoom(monthly []AggregateRow) []AggregateRow {
	groups := groupStable(monthly, func(r AggregateRow) string { return r.Room })

	rows := make([]AggregateRow, 0, len(groups))
	for _, g := range groups {
		total := lo.SumBy(g.Members, func(m AggregateRow) float64 { return m.Units })
		rows = append(rows, AggregateRow{Room: g.Key, Units: total / float64(len(g.Members))})
	}
	return rows
}

// HighestPerMonth takes MonthlyByRoom output and keeps the largest row of
// each month. On equal units the earlier row wins.
func HighestPerMonth(monthly []AggregateRow) []HighestConsumerRow {
	groups := groupStable(monthly, func(r AggregateRow) dataset.MonthKey { return r.Month })

	rows := make([]HighestConsumerRow, 0, len(groups))
	for _, g := range groups {
		best := g.Members[0]
		for _, m := range g.Members[1:] {
			if m.Units > best.Units {
				best = m
			}
		}
		rows = append(rows, HighestConsumerRow{Month: g.Key, Room: best.Room, Units: best.Units})
	}
	return rows
}

// Recompute runs the whole pipeline for one selection. The table is only
// read.
func Recompute(table *dataset.Table, sel Selection) Report {
	var readings []dataset.Reading
	if table != nil {
		readings = table.Readings
	}

	filtered := Filter(readings, sel)
	monthly := MonthlyByRoom(filtered)
	return Report{
		Selection:       sel,
		Filtered:        filtered,
		MonthlyByRoom:   monthly,
		MonthlyTotal:    MonthlyTotal(filtered),
		AveragePerRoom:  AveragePerRoom(monthly),
		HighestPerMonth: HighestPerMonth(monthly),
	}
}

// SortForDisplay returns a copy ordered by month, then room. Grouped order
// is left alone so tie-breaking stays tied to input order.
func SortForDisplay(rows []AggregateRow) []AggregateRow {
	out := append(make([]AggregateRow, 0, len(rows)), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Room < out[j].Room
	})
	return out
}

// SortHighestForDisplay orders highest-consumer rows by month.
func SortHighestForDisplay(rows []HighestConsumerRow) []HighestConsumerRow {
	out := append(make([]HighestConsumerRow, 0, len(rows)), rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func sumReadings(readings []dataset.Reading) float64 {
	return lo.SumBy(readings, func(r dataset.Reading) float64 { return r.UnitsConsumed })
}
