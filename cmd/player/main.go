// Package main provides the interactive player entry point.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/vidbox/vidbox/internal/app/player"
	"github.com/vidbox/vidbox/internal/app/shell"
	"github.com/vidbox/vidbox/internal/infra/config"
	"github.com/vidbox/vidbox/internal/infra/logger"
	"github.com/vidbox/vidbox/internal/infra/source"
)

var (
	app         = kingpin.New("vidbox-player", "vidbox interactive video player")
	configPath  = app.Flag("config", "Path to config file").String()
	catalogPath = app.Flag("catalog", "Path to a YAML catalog file (overrides config sources)").String()
	seed        = app.Flag("seed", "Random seed for PLAY_RANDOM (0 = time-seeded)").Int64()
	verbose     = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile     = app.Flag("logfile", "Path to log file (default: stderr)").String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	// Initialize logger. The REPL owns stdout, so logs default to stderr.
	loggerConfig := logger.Config{Output: "stderr", Level: "info"}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Load config, or fall back to the builtin demo catalog.
	var cfg *config.Config
	if *configPath != "" {
		zlog.Info().Msgf("Loading config from %s", *configPath)
		loaded, err := config.Load(*configPath)
		if err != nil {
			zlog.Fatal().Msgf("Failed to load config: %v", err)
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}
	if *catalogPath != "" {
		cfg.Catalog.Sources = []config.SourceConfig{{
			Type:     "file",
			Settings: map[string]any{"path": *catalogPath},
		}}
	}
	if *seed != 0 {
		cfg.Player.RandomSeed = *seed
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Player error: %v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	sources, err := source.FromConfig(cfg.Catalog.Sources)
	if err != nil {
		return err
	}

	cat, err := source.LoadCatalog(sources)
	if err != nil {
		return err
	}
	zlog.Info().Msgf("Catalog loaded: %d videos", cat.Len())

	p := player.New(cat, player.NewSeededPicker(cfg.Player.RandomSeed))

	sh := shell.New(p, os.Stdin, os.Stdout)
	return sh.Run()
}
