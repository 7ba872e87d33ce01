// Command atomview is a terminal globe visualizing the world's nuclear
// power facilities.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/litescript/atomview/internal/cluster"
	"github.com/litescript/atomview/internal/config"
	"github.com/litescript/atomview/internal/facility"
	"github.com/litescript/atomview/internal/geoip"
	"github.com/litescript/atomview/internal/globe"
	"github.com/litescript/atomview/internal/logging"
	"github.com/litescript/atomview/internal/scene"
	"github.com/litescript/atomview/internal/ui"
	"github.com/litescript/atomview/internal/version"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	dataFile := flag.String("data", "", "Facility dataset JSON (default: embedded)")
	style := flag.String("style", "", "Marker style (default, pins, plumes, dots, clean)")
	logLevel := flag.String("log-level", "", "Log level (trace, debug, info, warn, error)")
	summaryMode := flag.Bool("summary", false, "Print a dataset summary instead of the TUI")
	exportPath := flag.String("export", "", "Export clustered dataset as JSON (use - for stdout)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("atomview v%s\n", version.Version)
		return
	}

	// Stderr logger for everything that happens before (or instead of) the
	// alternate screen.
	console := logging.Console(os.Stderr, "info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		console.Fatal().Err(err).Msg("configuration failed")
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	if *style != "" {
		cfg.MarkerStyle = *style
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	log, closeLog, err := logging.Setup(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		console.Fatal().Err(err).Msg("log setup failed")
	}
	defer closeLog()

	records, err := loadRecords(cfg, log)
	if err != nil {
		console.Fatal().Err(err).Msg("dataset load failed")
	}
	log.Info().Int("records", len(records)).Str("version", version.Version).Msg("dataset loaded")

	// Headless modes: no TUI.
	if *exportPath != "" {
		if err := writeExport(*exportPath, records); err != nil {
			console.Fatal().Err(err).Msg("export failed")
		}
		if !*summaryMode {
			return
		}
	}
	if *summaryMode {
		cluster.WriteSummary(os.Stdout, records)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		console.Fatal().Msg("atomview needs an interactive terminal; use -summary for plain output")
	}

	// Day/night textures are render-critical; failure falls back to the
	// placeholder material rather than aborting.
	textures, err := globe.LoadTextures()
	if err != nil {
		log.Warn().Err(err).Msg("texture load failed, using placeholder material")
		textures = nil
	}

	sc, err := scene.New(records, textures, cfg.MarkerStyle, log)
	if err != nil {
		console.Fatal().Err(err).Msg("scene setup failed")
	}
	sc.Renderer().SetMode(globe.LightingMode(cfg.Lighting))
	sc.Renderer().Clouds().SetVisible(cfg.Clouds)
	if len(cfg.Statuses) > 0 {
		visible := facility.StatusSet{}
		for _, s := range cfg.Statuses {
			visible[facility.Status(s)] = true
		}
		sc.SetVisibleStatuses(visible)
	}

	locator := geoip.NewClient(geoip.WithEndpoint(cfg.Geolocate.Endpoint))
	timeout := time.Duration(cfg.Geolocate.TimeoutSeconds) * time.Second

	model := ui.New(sc, locator, timeout, cfg.FPS, cfg.AutoRotate, log)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		console.Fatal().Err(err).Msg("terminal UI crashed")
	}
}

func writeExport(path string, records []facility.Record) error {
	export := cluster.ExportSnapshot(records, time.Now())
	if path == "-" {
		return export.WriteJSON(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()
	return export.WriteJSON(f)
}

func loadRecords(cfg config.Config, log zerolog.Logger) ([]facility.Record, error) {
	if cfg.DataFile != "" {
		return facility.Load(cfg.DataFile, log)
	}
	return facility.LoadEmbedded(log)
}
