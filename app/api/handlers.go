package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/pipeline"
)

// Handler serves the snapshot produced by a single pipeline run. Serve mode
// never re-collects; rerun the process for fresh data.
type Handler struct {
	html         string
	presentation pipeline.Presentation
	generatedAt  time.Time
	version      string
}

func NewHandler(html string, presentation pipeline.Presentation, version string) *Handler {
	return &Handler{
		html:         html,
		presentation: presentation,
		generatedAt:  time.Now().UTC(),
		version:      version,
	}
}

func (h *Handler) GetDashboard(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Header("X-Item-Count", strconv.Itoa(len(h.presentation.Items)))
	c.Header("X-Generated-At", h.generatedAt.Format(time.RFC3339))

	c.String(http.StatusOK, h.html)
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"generated_at": h.generatedAt.Format(time.RFC3339),
		"items":        len(h.presentation.Items),
		"version":      h.version,
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stats":      h.presentation.Stats,
		"sources":    h.presentation.Sources,
		"categories": h.presentation.Categories,
	})
}

func (h *Handler) GetItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items": h.presentation.Items,
		"total": len(h.presentation.Items),
	})
}
