package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelpower/usage-dashboard/services/dashboard/export"
	"github.com/hostelpower/usage-dashboard/services/dashboard/report"
)

// handleV1Download returns a derived table as a CSV attachment
// GET /api/v1/downloads/:file
func (s *Server) handleV1Download(c *gin.Context) {
	file := c.Param("file")

	sel, err := s.selectionFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	download, ok := export.FindDownload(export.Downloads(s.table.Header, report.Recompute(s.table, sel)), file)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown download: " + file})
		return
	}

	payload, err := export.Bytes(download.Write)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}
