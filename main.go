package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/hero-backdrop/internal/audio"
	"github.com/iburimskiy/hero-backdrop/internal/config"
	"github.com/iburimskiy/hero-backdrop/internal/game"
)

func main() {
	configPath := flag.String("config", "", "YAML config laid over the built-in defaults")
	reduced := flag.Bool("reduced-motion", false, "do not animate the particle field")
	audioPath := flag.String("audio", "", "background track (wav, mp3 or flac)")
	pick := flag.Bool("pick-audio", false, "choose the background track in a file dialog")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *reduced {
		cfg.Motion.Reduced = true
	}
	if *audioPath != "" {
		cfg.Audio.Path = *audioPath
	}
	if *pick {
		cfg.Audio.Pick = true
	}

	track := openTrack(cfg)
	if track != nil {
		defer track.Close()
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := game.NewGame(cfg, track, logger)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("game stopped", "error", err)
		os.Exit(1)
	}
}

// openTrack opens the configured background track. Any failure only costs the
// music, so it is logged and the backdrop runs silent.
func openTrack(cfg *config.Config) *audio.Track {
	path := cfg.Audio.Path
	if path == "" && cfg.Audio.Pick {
		picked, err := audio.Pick()
		if err != nil {
			slog.Warn("file dialog failed", "error", err)
		}
		path = picked
	}
	if path == "" {
		return nil
	}

	track, err := audio.Open(path, cfg.Audio.RingSize)
	if err != nil {
		slog.Warn("background audio disabled", "path", path, "error", err)
		return nil
	}
	slog.Info("loaded background track", "path", path)
	return track
}
