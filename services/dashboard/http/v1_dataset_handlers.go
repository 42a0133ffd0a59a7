package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hostelpower/usage-dashboard/services/dashboard/report"
)

// handleV1DatasetSummary returns the size and domain of the loaded dataset
// GET /api/v1/dataset
func (s *Server) handleV1DatasetSummary(c *gin.Context) {
	opts := report.AvailableOptions(s.table)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"columns": s.table.Header,
			"rows":    s.table.Len(),
			"rooms":   len(opts.Rooms),
			"months":  len(opts.Months),
		},
	})
}

// handleV1DatasetOptions returns the sorted room and month picker values
// GET /api/v1/dataset/options
func (s *Server) handleV1DatasetOptions(c *gin.Context) {
	opts := report.AvailableOptions(s.table)
	c.JSON(http.StatusOK, gin.H{
		"data": opts,
		"meta": gin.H{
			"rooms_count":  len(opts.Rooms),
			"months_count": len(opts.Months),
		},
	})
}

// handleV1DatasetPreview returns the head of the raw dataset. It ignores any
// room/month filter on purpose: the preview always shows unfiltered rows.
// GET /api/v1/dataset/preview?limit=100
func (s *Server) handleV1DatasetPreview(c *gin.Context) {
	limit := s.cfg.PreviewRows
	if l := c.Query("limit"); l != "" {
		val, err := strconv.Atoi(l)
		if err != nil || val <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		if val < limit {
			limit = val
		}
	}

	rows := s.table.Head(limit)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"columns": s.table.Header,
			"rows":    rows,
		},
		"meta": gin.H{
			"count": len(rows),
			"total": s.table.Len(),
		},
	})
}
