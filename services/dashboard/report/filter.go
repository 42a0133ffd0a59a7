package report

import (
	"sort"

	"github.com/samber/lo"

	"github.com/hostelpower/usage-dashboard/services/dashboard/dataset"
)

// Filter returns the readings whose room and month are both selected, in
// their original order. Values outside the table's domain match nothing.
func Filter(readings []dataset.Reading, sel Selection) []dataset.Reading {
	out := make([]dataset.Reading, 0)
	if len(sel.Rooms) == 0 || len(sel.Months) == 0 {
		return out
	}

	rooms := toSet(sel.Rooms)
	months := toSet(sel.Months)
	for _, r := range readings {
		if _, ok := rooms[r.Room]; !ok {
			continue
		}
		if _, ok := months[r.Month]; !ok {
			continue
		}
		out = append(out, r)
	}
	return out
}

// AvailableOptions lists the distinct rooms and months of the table, sorted.
func AvailableOptions(table *dataset.Table) Options {
	opts := Options{Rooms: []string{}, Months: []dataset.MonthKey{}}
	if table == nil {
		return opts
	}

	opts.Rooms = lo.Uniq(lo.Map(table.Readings, func(r dataset.Reading, _ int) string { return r.Room }))
	opts.Months = lo.Uniq(lo.Map(table.Readings, func(r dataset.Reading, _ int) dataset.MonthKey { return r.Month }))
	sort.Strings(opts.Rooms)
	sort.Slice(opts.Months, func(i, j int) bool { return opts.Months[i] < opts.Months[j] })
	return opts
}

// SelectAll selects the full room and month domain of the table.
func SelectAll(table *dataset.Table) Selection {
	opts := AvailableOptions(table)
	return Selection{Rooms: opts.Rooms, Months: opts.Months}
}

// Resolve applies the two "select all" toggles: an enabled toggle replaces
// the matching field with the full domain, a disabled one keeps the user's
// own choice untouched.
func Resolve(table *dataset.Table, sel Selection, allRooms, allMonths bool) Selection {
	if !allRooms && !allMonths {
		return sel
	}
	full := SelectAll(table)
	if allRooms {
		sel.Rooms = full.Rooms
	}
	if allMonths {
		sel.Months = full.Months
	}
	return sel
}

func toSet[T comparable](items []T) map[T]struct{} {
	return lo.SliceToMap(items, func(item T) (T, struct{}) { return item, struct{}{} })
}
