package main

import (
	"fmt"

	"github.com/hostelpower/usage-dashboard/services/dashboard/charts"
	"github.com/hostelpower/usage-dashboard/services/dashboard/dataset"
	"github.com/hostelpower/usage-dashboard/services/dashboard/export"
	"github.com/hostelpower/usage-dashboard/services/dashboard/report"
)

func printOptions(opts report.Options) {
	fmt.Printf("ROOMS (%d):\n", len(opts.Rooms))
	for _, r := range opts.Rooms {
		fmt.Printf("  %s\n", r)
	}
	fmt.Println()

	fmt.Printf("MONTHS (%d):\n", len(opts.Months))
	for _, m := range opts.Months {
		fmt.Printf("  %s\n", m)
	}
}

func printExportSummary(out string, rep report.Report, chartCount int) {
	fmt.Printf("Export written to %s\n", out)
	fmt.Printf("  readings:  %d\n", len(rep.Filtered))
	fmt.Printf("  csv files: %d\n", len(export.Downloads(nil, rep)))
	fmt.Printf("  charts:    %d\n", chartCount)

	if rep.Empty() {
		fmt.Println()
		fmt.Println(charts.NoDataMessage)
		return
	}

	fmt.Println()
	fmt.Println("HIGHEST CONSUMER PER MONTH:")
	for _, h := range report.SortHighestForDisplay(rep.HighestPerMonth) {
		fmt.Printf("  %s  %-12s %s\n", h.Month, h.Room, dataset.FormatUnits(h.Units))
	}
}
