package dashboard

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/config"
	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/pipeline"
)

//go:embed dashboard.html.tmpl
var dashboardTemplate string

var titleCaser = cases.Title(language.AmericanEnglish)

// CategoryLabel converts a canonical category into its display form
// ("permit" becomes "Permit").
func CategoryLabel(category string) string {
	return titleCaser.String(category)
}

// Generator renders the static dashboard page. The item order produced by
// the pipeline is preserved verbatim; the renderer adds no ordering of its
// own.
type Generator struct {
	tmpl *template.Template
}

func NewGenerator() *Generator {
	tmpl := template.Must(template.New("dashboard").Funcs(template.FuncMap{
		"categoryLabel": CategoryLabel,
	}).Parse(dashboardTemplate))

	return &Generator{tmpl: tmpl}
}

type templateData struct {
	Dashboard      config.DashboardConfig
	Items          []pipeline.Item
	Stats          pipeline.Stats
	Sources        []string
	Categories     []string
	LastUpdated    string
	LastUpdatedISO string
	Version        string
}

// Run renders the dashboard HTML for a pipeline presentation.
func (g *Generator) Run(presentation pipeline.Presentation, dash config.DashboardConfig, version string) (string, error) {
	now := time.Now().UTC()

	data := templateData{
		Dashboard:      dash,
		Items:          presentation.Items,
		Stats:          presentation.Stats,
		Sources:        presentation.Sources,
		Categories:     presentation.Categories,
		LastUpdated:    now.Format("January 2, 2006 at 3:04 PM UTC"),
		LastUpdatedISO: now.Format("2006-01-02T15:04:05Z"),
		Version:        version,
	}

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render dashboard: %w", err)
	}

	return buf.String(), nil
}

// WriteFile writes a rendered dashboard to <outputDir>/index.html, creating
// the directory if needed. Returns the output path.
func WriteFile(outputDir, html string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(outputDir, "index.html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("write dashboard: %w", err)
	}

	slog.Info("Dashboard written", "path", path, "bytes", len(html))
	return path, nil
}
