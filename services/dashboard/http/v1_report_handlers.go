package http

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hostelpower/usage-dashboard/services/dashboard/charts"
	"github.com/hostelpower/usage-dashboard/services/dashboard/dataset"
	"github.com/hostelpower/usage-dashboard/services/dashboard/report"
)

// selectionFromQuery reads the picker state. room and month may repeat or
// hold comma-separated values; all_rooms and all_months default to true
// like the dashboard's "Select All" checkboxes.
func (s *Server) selectionFromQuery(c *gin.Context) (report.Selection, error) {
	allRooms, err := boolQuery(c, "all_rooms", true)
	if err != nil {
		return report.Selection{}, err
	}
	allMonths, err := boolQuery(c, "all_months", true)
	if err != nil {
		return report.Selection{}, err
	}

	sel := report.Selection{
		Rooms:  splitValues(c.QueryArray("room")),
		Months: make([]dataset.MonthKey, 0),
	}
	for _, m := range splitValues(c.QueryArray("month")) {
		sel.Months = append(sel.Months, dataset.MonthKey(m))
	}
	return report.Resolve(s.table, sel, allRooms, allMonths), nil
}

func boolQuery(c *gin.Context, key string, def bool) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, errors.New("invalid " + key + " parameter")
	}
	return v, nil
}

func splitValues(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		for _, v := range strings.Split(r, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// handleV1Report recomputes every derived table for the requested selection
// GET /api/v1/report?all_rooms=false&room=R101&room=R102&month=2024-01
func (s *Server) handleV1Report(c *gin.Context) {
	sel, err := s.selectionFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rep := report.Recompute(s.table, sel)
	meta := gin.H{
		"empty":         rep.Empty(),
		"filtered_rows": len(rep.Filtered),
		"total_rows":    s.table.Len(),
	}
	if rep.Empty() {
		meta["message"] = charts.NoDataMessage
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"selection":         rep.Selection,
			"monthly_by_room":   report.SortForDisplay(rep.MonthlyByRoom),
			"monthly_total":     report.SortForDisplay(rep.MonthlyTotal),
			"average_per_room":  rep.AveragePerRoom,
			"highest_per_month": report.SortHighestForDisplay(rep.HighestPerMonth),
		},
		"meta": meta,
	})
}

// handleV1Chart renders one dashboard panel as PNG for the selection
// GET /api/v1/charts/:panel
func (s *Server) handleV1Chart(c *gin.Context) {
	panel, err := charts.ParsePanel(c.Param("panel"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "panels": charts.Panels})
		return
	}

	sel, err := s.selectionFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	err = charts.Render(&buf, panel, report.Recompute(s.table, sel), s.chartOptions())
	switch {
	case errors.Is(err, charts.ErrNoData):
		c.Header("X-Dashboard-Message", charts.NoDataMessage)
		c.Status(http.StatusNoContent)
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
