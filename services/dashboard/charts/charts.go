package charts

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/hostelpower/usage-dashboard/services/dashboard/report"
)

// Panel names one of the dashboard charts.
type Panel string

const (
	PanelMonthlyByRoom   Panel = "monthly-by-room"
	PanelMonthlyTotal    Panel = "monthly-total"
	PanelAveragePerRoom  Panel = "average-per-room"
	PanelHighestPerMonth Panel = "highest-per-month"
)

// Panels lists every chart in display order.
var Panels = []Panel{PanelMonthlyByRoom, PanelMonthlyTotal, PanelAveragePerRoom, PanelHighestPerMonth}

// NoDataMessage is shown in place of a chart for an empty selection.
const NoDataMessage = "No data for selected filters."

var (
	// ErrNoData is returned when the derived table behind a panel is empty.
	ErrNoData = errors.New("no data for selected filters")
	// ErrUnknownPanel is returned for a panel name outside Panels.
	ErrUnknownPanel = errors.New("unknown chart panel")
)

var highestColor = drawing.ColorFromHex("ffa500")

// Options sizes rendered charts in pixels.
type Options struct {
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 450
	}
	return o
}

// ParsePanel validates a panel name.
func ParsePanel(name string) (Panel, error) {
	for _, p := range Panels {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownPanel, name)
}

// FileName is the PNG name used when a panel is written to disk.
func (p Panel) FileName() string {
	return string(p) + ".png"
}

// Render draws one panel of the report as PNG.
func Render(w io.Writer, panel Panel, rep report.Report, opts Options) error {
	switch panel {
	case PanelMonthlyByRoom:
		return RenderMonthlyByRoom(w, rep.MonthlyByRoom, opts)
	case PanelMonthlyTotal:
		return RenderMonthlyTotal(w, rep.MonthlyTotal, opts)
	case PanelAveragePerRoom:
		return RenderAveragePerRoom(w, rep.AveragePerRoom, opts)
	case PanelHighestPerMonth:
		return RenderHighestPerMonth(w, rep.HighestPerMonth, opts)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownPanel, panel)
	}
}

// RenderMonthlyByRoom draws one bar per (month, room), grouped by month and
// coloured by room.
func RenderMonthlyByRoom(w io.Writer, rows []report.AggregateRow, opts Options) error {
	if len(rows) == 0 {
		return ErrNoData
	}
	opts = opts.withDefaults()
	rows = report.SortForDisplay(rows)

	rooms := make([]string, 0)
	seen := make(map[string]bool)
	for _, r := range rows {
		if !seen[r.Room] {
			seen[r.Room] = true
			rooms = append(rooms, r.Room)
		}
	}
	sort.Strings(rooms)
	roomColor := make(map[string]drawing.Color, len(rooms))
	for i, room := range rooms {
		roomColor[room] = chart.GetDefaultColor(i)
	}

	maxY := 0.0
	bars := make([]chart.Value, 0, len(rows))
	for _, r := range rows {
		maxY = math.Max(maxY, r.Units)
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s %s", r.Month, r.Room),
			Value: r.Units,
			Style: chart.Style{FillColor: roomColor[r.Room], StrokeColor: roomColor[r.Room]},
		})
	}

	bc := chart.BarChart{
		Title:      "Monthly Consumption by Room",
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		BarWidth:   barWidth(opts.Width, len(bars)),
		YAxis:      chart.YAxis{Name: "Units Consumed", Range: &chart.ContinuousRange{Min: 0, Max: axisMax(maxY)}},
		Bars:       bars,
	}
	return bc.Render(chart.PNG, w)
}

// RenderMonthlyTotal draws the all-rooms total per month as a line with markers.
func RenderMonthlyTotal(w io.Writer, rows []report.AggregateRow, opts Options) error {
	if len(rows) == 0 {
		return ErrNoData
	}
	opts = opts.withDefaults()
	rows = report.SortForDisplay(rows)

	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	ticks := make([]chart.Tick, len(rows))
	maxY := 0.0
	for i, r := range rows {
		xs[i] = float64(i)
		ys[i] = r.Units
		ticks[i] = chart.Tick{Value: float64(i), Label: r.Month.String()}
		maxY = math.Max(maxY, r.Units)
	}

	ch := chart.Chart{
		Title:      "Total Monthly Consumption",
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Month-Year",
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(rows)) - 0.5},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  "Units Consumed",
			Range: &chart.ContinuousRange{Min: 0, Max: axisMax(maxY)},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Units Consumed",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.GetDefaultColor(0),
					StrokeWidth: 2,
					DotColor:    chart.GetDefaultColor(0),
					DotWidth:    4,
				},
			},
		},
	}
	return ch.Render(chart.PNG, w)
}

// RenderAveragePerRoom draws one bar per room, shaded darker green for
// higher averages.
func RenderAveragePerRoom(w io.Writer, rows []report.AggregateRow, opts Options) error {
	if len(rows) == 0 {
		return ErrNoData
	}
	opts = opts.withDefaults()

	sorted := append(make([]report.AggregateRow, 0, len(rows)), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Room < sorted[j].Room })

	minY, maxY := math.Inf(1), 0.0
	for _, r := range sorted {
		minY = math.Min(minY, r.Units)
		maxY = math.Max(maxY, r.Units)
	}

	bars := make([]chart.Value, 0, len(sorted))
	for _, r := range sorted {
		c := greenScale(r.Units, minY, maxY)
		bars = append(bars, chart.Value{
			Label: r.Room,
			Value: r.Units,
			Style: chart.Style{FillColor: c, StrokeColor: c},
		})
	}

	bc := chart.BarChart{
		Title:      "Average Monthly Consumption per Room",
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		BarWidth:   barWidth(opts.Width, len(bars)),
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: axisMax(maxY)}},
		Bars:       bars,
	}
	return bc.Render(chart.PNG, w)
}

// RenderHighestPerMonth draws the top room of each month, labelled with the
// room name.
func RenderHighestPerMonth(w io.Writer, rows []report.HighestConsumerRow, opts Options) error {
	if len(rows) == 0 {
		return ErrNoData
	}
	opts = opts.withDefaults()
	rows = report.SortHighestForDisplay(rows)

	maxY := 0.0
	bars := make([]chart.Value, 0, len(rows))
	for _, r := range rows {
		maxY = math.Max(maxY, r.Units)
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s %s", r.Month, r.Room),
			Value: r.Units,
			Style: chart.Style{FillColor: highestColor, StrokeColor: highestColor},
		})
	}

	bc := chart.BarChart{
		Title:      "Highest Consuming Rooms per Month",
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		BarWidth:   barWidth(opts.Width, len(bars)),
		YAxis:      chart.YAxis{Name: "Units Consumed", Range: &chart.ContinuousRange{Min: 0, Max: axisMax(maxY)}},
		Bars:       bars,
	}
	return bc.Render(chart.PNG, w)
}

// axisMax pads the top of the value axis and keeps it above zero; go-chart
// rejects a zero-height range.
func axisMax(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v * 1.1
}

func barWidth(width, n int) int {
	if n <= 0 {
		return 40
	}
	bw := width / (n * 2)
	switch {
	case bw < 8:
		return 8
	case bw > 80:
		return 80
	}
	return bw
}

// greenScale maps v in [lo, hi] from a light to a dark green.
func greenScale(v, lo, hi float64) drawing.Color {
	t := 1.0
	if hi > lo {
		t = (v - lo) / (hi - lo)
	}
	light := drawing.Color{R: 199, G: 233, B: 192, A: 255}
	dark := drawing.Color{R: 0, G: 109, B: 44, A: 255}
	mix := func(a, b uint8) uint8 { return uint8(float64(a) + (float64(b)-float64(a))*t) }
	return drawing.Color{R: mix(light.R, dark.R), G: mix(light.G, dark.G), B: mix(light.B, dark.B), A: 255}
}
