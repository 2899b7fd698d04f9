package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pickup3d/internal/config"
	"pickup3d/internal/game"
	"pickup3d/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "assets/config/pickup3d.yaml", "config file (watched for changes)")
	scenePath := flag.String("scene", "", "scene file, overrides the config's scene")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			_ = os.Chdir(execDir)
		}
	}

	if err := run(*configPath, *scenePath, *debug); err != nil {
		fmt.Fprintln(os.Stderr, "pickup3d:", err)
		os.Exit(1)
	}
}

func run(configPath, scenePath string, debug bool) error {
	cfg, err := config.Load(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = config.Default()
		configPath = ""
	case err != nil:
		return err
	}
	if scenePath != "" {
		cfg.Scene = scenePath
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if debug {
		level = zap.DebugLevel
		cfg.LogLevel = "debug"
	}
	log, atom, err := logging.New(level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	// Tags every line so runs can be told apart in a shared log file.
	log = log.With(zap.String("session", uuid.NewString()))

	if configPath == "" {
		log.Info("no config file, using defaults")
	}

	g, err := game.New(cfg, configPath, log, atom)
	if err != nil {
		return err
	}
	g.SceneOverride = scenePath
	if err := g.LoadScene(cfg.Scene); err != nil {
		return err
	}
	log.Info("starting", zap.String("scene", cfg.Scene), zap.String("config", configPath))
	return g.Run()
}
