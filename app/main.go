package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/api"
	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/cfg"
	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/collectors"
	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/config"
	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/dashboard"
	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/pipeline"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogger(appCfg.Debug)
	slog.Info("Starting neighborhood monitor", "version", appCfg.Version)

	monitorCfg, err := config.NewLoader(appCfg.ConfigPath).Load()
	if err != nil {
		slog.Error("Failed to load monitor configuration", "path", appCfg.ConfigPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Configuration loaded",
		"zip_codes", len(monitorCfg.ZipCodes),
		"flag_keywords", len(monitorCfg.FlagKeywords),
		"sources", len(monitorCfg.Sources))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := collectors.NewClient(appCfg.UserAgent, 30*time.Second)
	fetched := collectors.RunAll(ctx, collectors.Registry(client), monitorCfg, appCfg.Source)
	if len(fetched) == 0 {
		slog.Warn("No items fetched, dashboard will be empty")
	}

	items := pipeline.NewDeduper(monitorCfg.DedupKeyModes()).Run(fetched)

	if appCfg.NoFilter {
		slog.Info("Geographic filter skipped")
	} else {
		geoFilter := pipeline.NewGeoFilter(monitorCfg.ZipCodes, monitorCfg.Neighborhoods,
			monitorCfg.Corridors, monitorCfg.GeoPolicies())
		items = geoFilter.Run(items)
	}

	items = pipeline.NewFlagger(monitorCfg.FlagKeywords).Run(items)
	presentation := pipeline.NewOrderer().Run(items)

	if appCfg.DryRun {
		slog.Info("Dry run, skipping dashboard generation")
		fmt.Printf("\nDry run complete:\n")
		fmt.Printf("  Fetched:  %d\n", len(fetched))
		fmt.Printf("  Kept:     %d\n", presentation.Stats.Total)
		fmt.Printf("  Flagged:  %d\n", presentation.Stats.Flagged)
		return
	}

	generator := dashboard.NewGenerator()
	html, err := generator.Run(presentation, monitorCfg.Dashboard, appCfg.Version)
	if err != nil {
		slog.Error("Failed to render dashboard", "error", err)
		os.Exit(1)
	}

	outputPath, err := dashboard.WriteFile(appCfg.OutputDir, html)
	if err != nil {
		slog.Error("Failed to write dashboard", "error", err)
		os.Exit(1)
	}

	fmt.Printf("\nDone. Dashboard written to: %s\n", outputPath)
	fmt.Printf("  Items: %d  |  Flagged: %d\n", presentation.Stats.Total, presentation.Stats.Flagged)

	if appCfg.Serve {
		serve(ctx, appCfg.Port, html, presentation, appCfg.Version)
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// serve exposes the snapshot from this run over HTTP and blocks until the
// process is interrupted.
func serve(ctx context.Context, port, html string, presentation pipeline.Presentation, version string) {
	handler := api.NewHandler(html, presentation, version)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Serving dashboard", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErrChan:
		slog.Error("HTTP server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}
}
