package export

import (
	"io"

	"github.com/samber/lo"

	"github.com/hostelpower/usage-dashboard/services/dashboard/report"
)

// Download is one derived CSV offered for a selection.
type Download struct {
	Name  string
	Write func(io.Writer) error
}

// Downloads lists every CSV the dashboard offers for rep. Per-room monthly
// rows and highest consumers keep grouped order so a reloaded file breaks
// ties the same way; processed data keeps input order and monthly totals
// are sorted by month.
func Downloads(header []string, rep report.Report) []Download {
	return []Download{
		{MonthlyConsumptionFile, func(w io.Writer) error {
			return WriteMonthlyConsumption(w, rep.MonthlyByRoom)
		}},
		{HighestConsumersFile, func(w io.Writer) error {
			return WriteHighestConsumers(w, rep.HighestPerMonth)
		}},
		{ProcessedDataFile, func(w io.Writer) error {
			return WriteProcessedData(w, header, rep.Filtered)
		}},
		{MonthlyTotalsFile, func(w io.Writer) error {
			return WriteMonthlyTotals(w, report.SortForDisplay(rep.MonthlyTotal))
		}},
		{AveragePerRoomFile, func(w io.Writer) error {
			return WriteAveragePerRoom(w, rep.AveragePerRoom)
		}},
	}
}

// FindDownload looks a download up by file name.
func FindDownload(downloads []Download, name string) (Download, bool) {
	return lo.Find(downloads, func(d Download) bool { return d.Name == name })
}
