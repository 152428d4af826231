// Command ls-orbits is a terminal scene of glowing orbits where the pointer
// steers balls into capture by travelling planets.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-orbits/internal/assets"
	"github.com/litescript/ls-orbits/internal/config"
	"github.com/litescript/ls-orbits/internal/logging"
	"github.com/litescript/ls-orbits/internal/sim"
	"github.com/litescript/ls-orbits/internal/ui"
	"github.com/litescript/ls-orbits/internal/version"
)

// CLI flags for headless mode
var (
	headlessMode bool
	summaryMode  bool
	autopilot    bool
	frames       int
	snapshotPath string
)

func main() {
	cfg, err := loadConfig(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Parse flags
	fps := flag.Float64("fps", cfg.FPS(), "Frames per second")
	seed := flag.Uint64("seed", cfg.Seed, "Random seed (0 = time based)")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", cfg.LogFile, "Write logs to file (TUI mode discards logs otherwise)")
	background := flag.String("background", cfg.Background, "Background panorama image (PNG, JPEG or GIF)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.BoolVar(&headlessMode, "headless", false, "Run without a terminal UI")
	flag.IntVar(&frames, "frames", 600, "Frames to simulate in headless mode")
	flag.BoolVar(&autopilot, "autopilot", false, "Steer balls onto their targets in headless mode")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary after a headless run")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ls-orbits v%s\n", version.Version)
		return
	}

	cfg.SetFPS(*fps)
	cfg.Seed = *seed
	cfg.LogLevel = *logLevel
	cfg.LogFile = *logFile
	cfg.Background = *background

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	headless := headlessMode || summaryMode || snapshotPath != "" || !isTTY

	// Set up logging
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	closeLog, err := setupLogOutput(logger, cfg.LogFile, headless)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	world, err := sim.New(cfg, logger.Named("sim"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if headless {
		if err := runHeadless(ctx, world, cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	model := ui.New(world, ui.Options{
		FrameInterval: cfg.FrameInterval,
		Background:    cfg.Background,
		Logger:        logger,
	})

	// Create Bubble Tea program
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig applies .env and LS_ORBITS_* overrides to the defaults.
func loadConfig(dotenvPath string) (config.Config, error) {
	cfg := config.Default()
	vals, err := config.LoadDotEnv(dotenvPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(config.Layered(vals)); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// setupLogOutput routes logs away from the alt screen in TUI mode.
func setupLogOutput(logger *logging.Logger, path string, headless bool) (func(), error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
		return func() { f.Close() }, nil
	}
	if !headless {
		logger.SetOutput(io.Discard)
	}
	return func() {}, nil
}

// runHeadless simulates a fixed number of frames and writes the requested
// outputs. The clock advances by the frame interval, not wall time.
func runHeadless(ctx context.Context, world *sim.World, cfg config.Config, logger *logging.Logger) error {
	if cfg.Background != "" {
		bg, err := assets.LoadBackground(cfg.Background)
		if err != nil {
			logger.Error("Background load failed: %v", err)
		} else {
			world.Scene.Background = bg
		}
	}

	start := time.Now()
	for i := 0; i < frames; i++ {
		if ctx.Err() != nil {
			logger.Warn("Interrupted after %d frames", i)
			break
		}
		if autopilot {
			world.Autopilot()
		}
		world.Step(cfg.FrameInterval)
	}
	logger.Debug("Simulated %d frames in %v", world.Frame(), time.Since(start).Round(time.Millisecond))

	export := world.Export()

	// Export JSON if requested
	if snapshotPath != "" {
		if snapshotPath == "-" {
			if err := export.WriteJSON(os.Stdout); err != nil {
				return fmt.Errorf("write JSON to stdout: %w", err)
			}
		} else {
			f, err := os.Create(snapshotPath)
			if err != nil {
				return fmt.Errorf("create snapshot file: %w", err)
			}
			defer f.Close()
			if err := export.WriteJSON(f); err != nil {
				return fmt.Errorf("write JSON to file: %w", err)
			}
		}
	}

	// Summary is the default output when nothing else was asked for
	if summaryMode || snapshotPath == "" {
		export.WriteSummary(os.Stdout)
	}
	return nil
}
