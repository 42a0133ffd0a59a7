package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelpower/usage-dashboard/services/dashboard/dataset"
	"github.com/hostelpower/usage-dashboard/services/dashboard/report"
)

func TestDownloads(t *testing.T) {
	table := loadSample(t)
	downloads := Downloads(table.Header, report.Recompute(table, report.SelectAll(table)))

	names := make([]string, 0, len(downloads))
	for _, d := range downloads {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{
		MonthlyConsumptionFile,
		HighestConsumersFile,
		ProcessedDataFile,
		MonthlyTotalsFile,
		AveragePerRoomFile,
	}, names)

	d, ok := FindDownload(downloads, HighestConsumersFile)
	require.True(t, ok)
	payload, err := Bytes(d.Write)
	require.NoError(t, err)
	assert.Equal(t, "month_year,Room,Units_Consumed\n2024-01,RoomB,30\n2024-02,RoomC,7\n", string(payload))

	_, ok = FindDownload(downloads, "missing.csv")
	assert.False(t, ok)
}

func TestDownloads_TiedRoomsRoundTrip(t *testing.T) {
	table, err := dataset.Load(strings.NewReader("Date,Room,Units_Consumed\n" +
		"2024-04-02,Beta,20\n" +
		"2024-04-09,Alpha,20\n" +
		"2024-03-15,Alpha,4\n"))
	require.NoError(t, err)
	downloads := Downloads(table.Header, report.Recompute(table, report.SelectAll(table)))

	monthly, ok := FindDownload(downloads, MonthlyConsumptionFile)
	require.True(t, ok)
	monthlyPayload, err := Bytes(monthly.Write)
	require.NoError(t, err)

	highest, ok := FindDownload(downloads, HighestConsumersFile)
	require.True(t, ok)
	highestPayload, err := Bytes(highest.Write)
	require.NoError(t, err)
	assert.Equal(t, "month_year,Room,Units_Consumed\n2024-04,Beta,20\n2024-03,Alpha,4\n", string(highestPayload))

	reloaded, err := ParseAggregates(bytes.NewReader(monthlyPayload))
	require.NoError(t, err)
	published, err := ParseHighestConsumers(bytes.NewReader(highestPayload))
	require.NoError(t, err)

	assert.Equal(t, published, report.HighestPerMonth(reloaded))
}
