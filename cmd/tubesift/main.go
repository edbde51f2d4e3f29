package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tubesift/tubesift/internal/config"
	"github.com/tubesift/tubesift/internal/export"
	"github.com/tubesift/tubesift/internal/filter"
	"github.com/tubesift/tubesift/internal/preset"
	"github.com/tubesift/tubesift/internal/store"
	"github.com/tubesift/tubesift/pkg/interfaces"
	"github.com/tubesift/tubesift/pkg/logger"
	"github.com/tubesift/tubesift/pkg/models"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	presetName := flag.String("preset", "", "preset to filter with (default preset when empty)")
	kind := flag.String("kind", "video", "record kind to read: video, channel, playlist")
	format := flag.String("format", "", "export format: json, markdown, text, csv, snapshot")
	grouping := flag.String("grouping", "none", "grouping: none, by_channel, by_playlist_membership")
	out := flag.String("out", "", "output path (derived from format when empty)")
	showHistory := flag.Bool("history", false, "print export history and exit")
	flag.Parse()

	// Config file is optional; defaults cover the local single-user
	// setup.
	cfg, err := config.Load(*configPath)
	if err != nil {
		cfg = config.Default()
	}

	log := logger.New(cfg.LogLevel)

	log.Info("tubesift starting",
		interfaces.String("database", cfg.Database.Path))

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatal("failed to create data directory", interfaces.Error(err))
	}

	st, cleanup, err := store.Open(cfg.Database.Path, log)
	if err != nil {
		log.Fatal("failed to open store", interfaces.Error(err))
	}
	defer cleanup()

	ctx := context.Background()

	if err := st.SeedDefaultPresets(ctx); err != nil {
		log.Fatal("failed to seed presets", interfaces.Error(err))
	}

	presets := preset.NewManager(st, log)
	engine := filter.NewEngine(filter.MatchPolicy(cfg.Filter.MatchPolicy), log)
	exporter := export.NewManager(st, export.NewRenderer(), log)

	if *showHistory {
		printHistory(ctx, exporter, cfg.Export.HistoryLimit, log)
		return
	}

	// Resolve the preset: named, or the flagged default.
	var p *models.Preset
	if *presetName != "" {
		p, err = presets.Get(ctx, *presetName)
	} else {
		p, err = presets.GetDefault(ctx)
	}
	if err != nil {
		log.Fatal("failed to resolve preset", interfaces.Error(err))
	}

	records, err := st.ListByKind(ctx, models.Kind(*kind))
	if err != nil {
		log.Fatal("failed to read records", interfaces.Error(err))
	}

	matched, stats := engine.Apply(&p.Criteria, records)
	log.Info("filter applied",
		interfaces.String("preset", p.Name),
		interfaces.Int("input", stats.Input),
		interfaces.Int("matched", stats.Matched),
		interfaces.Int("skipped", stats.Skipped))

	exportFormat := models.ExportFormat(*format)
	if exportFormat == "" {
		exportFormat = p.ExportFormat
	}

	destination := *out
	if destination == "" {
		destination = filepath.Join(cfg.Export.OutputDir,
			fmt.Sprintf("export_%s_%s.%s", *kind, time.Now().Format("20060102_150405"), extension(exportFormat)))
	}

	record, err := exporter.Export(ctx, export.Request{
		Records:     matched,
		Format:      exportFormat,
		Destination: destination,
		Preset:      p,
		Grouping:    export.Grouping(*grouping),
		Kind:        models.Kind(*kind),
	})
	if err != nil {
		log.Fatal("export failed", interfaces.Error(err))
	}

	log.Info("artifact written",
		interfaces.String("path", record.OutputPath),
		interfaces.Int("items", record.ItemCount))
}

func printHistory(ctx context.Context, exporter *export.Manager, limit int, log interfaces.Logger) {
	history, err := exporter.History(ctx, limit)
	if err != nil {
		log.Fatal("failed to read export history", interfaces.Error(err))
	}
	for _, rec := range history {
		presetName := "-"
		if rec.PresetName != nil {
			presetName = *rec.PresetName
		}
		fmt.Printf("%s  %-8s  %5d items  %-20s  %s\n",
			rec.CreatedAt.Format(time.RFC3339), rec.Format, rec.ItemCount, presetName, rec.OutputPath)
	}
}

func extension(format models.ExportFormat) string {
	switch format {
	case models.FormatMarkdown:
		return "md"
	case models.FormatText:
		return "txt"
	case models.FormatCSV:
		return "csv"
	case models.FormatSnapshot:
		return "db"
	default:
		return "json"
	}
}
