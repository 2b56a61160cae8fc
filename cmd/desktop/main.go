package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/jaminalder/codex-minesweeper/internal/config"
	"github.com/jaminalder/codex-minesweeper/internal/desktop"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	logLevel := flag.String("log-level", "", "log level (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid config: %v", err))
	}
	if err := cfg.Desktop.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid config: %v", err))
	}
	log, err := cfg.Log.NewLogger(os.Stdout)
	if err != nil {
		panic(fmt.Sprintf("Invalid config: %v", err))
	}

	g := desktop.NewGame(desktop.Options{
		Width:    cfg.Board.Width,
		Height:   cfg.Board.Height,
		Mines:    cfg.Board.Mines,
		TileSize: cfg.Desktop.TileSize,
		Logger:   log,
	})
	w, h := g.Size()
	ebiten.SetWindowSize(w*cfg.Desktop.Scale, h*cfg.Desktop.Scale)
	ebiten.SetWindowTitle("Minesweeper")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	if err := ebiten.RunGame(g); err != nil {
		log.WithError(err).Fatal("Game stopped")
	}
}
