package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/centerfire/internal/config"
	"github.com/tomz197/centerfire/internal/loop"
	gameconfig "github.com/tomz197/centerfire/internal/loop/config"
	"github.com/tomz197/centerfire/internal/loop/window"
	"github.com/tomz197/centerfire/internal/object"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	if err := config.LoadDotEnv(); err != nil {
		logger.Fatal("Failed to load .env", "err", err)
	}
	settings, err := gameconfig.FromEnv()
	if err != nil {
		logger.Fatal("Invalid settings", "err", err)
	}

	state := loop.NewState(settings, object.NewRand(settings.Seed), loop.NewLogReporter(logger))

	ebiten.SetWindowSize(int(settings.ArenaWidth), int(settings.ArenaHeight))
	ebiten.SetWindowTitle("Centerfire")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(gameconfig.ClientTargetFPS)

	if err := ebiten.RunGame(window.New(state)); err != nil {
		logger.Fatal("Game error", "err", err)
	}
}
