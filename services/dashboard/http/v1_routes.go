package http

// registerV1Routes sets up the v1 API structure
// Groups: /api/v1/dataset, /api/v1/report, /api/v1/charts, /api/v1/downloads
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware()) // Add X-API-Version: v1 header

	// Dataset endpoints - filter options and the unfiltered preview
	ds := v1.Group("/dataset")
	{
		ds.GET("", s.handleV1DatasetSummary)
		ds.GET("/options", s.handleV1DatasetOptions)
		ds.GET("/preview", s.handleV1DatasetPreview)
	}

	// Report endpoint - every derived table for one selection
	v1.GET("/report", s.handleV1Report)

	// Chart endpoints - one PNG per dashboard panel
	v1.GET("/charts/:panel", s.handleV1Chart)

	// Download endpoints - CSV payloads of the derived tables
	v1.GET("/downloads/:file", s.handleV1Download)
}
