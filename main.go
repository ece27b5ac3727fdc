package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowfish/clock"
	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/config"
	"github.com/pthm-cable/flowfish/game"
	"github.com/pthm-cable/flowfish/renderer"
	"github.com/pthm-cable/flowfish/ui"
)

// clickRadius is the hit-test radius around a fish centre, in pixels.
const clickRadius = 30

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	strategy := flag.String("strategy", game.StrategyPlayback, "Motion strategy: pursuit or playback")
	preset := flag.String("preset", "", "Behavior preset (empty = strategy default)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	headless := flag.Bool("headless", false, "Run without graphics on a simulated clock")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N behavior ticks (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	dev := flag.Bool("dev", false, "Enable dev keys and HUD")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		slog.Error("invalid log level", "level", *logLevel, "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Strategy:  *strategy,
		Preset:    *preset,
		Seed:      rngSeed,
		Logger:    logger,
		OutputDir: *outputDir,
		LogStats:  *logStats,
	}

	if *headless {
		runHeadless(opts, *maxTicks)
		return
	}

	// Graphical mode: a transparent overlay over the desktop.
	var flags uint32 = rl.FlagWindowResizable | rl.FlagMsaa4xHint
	if cfg.Screen.Transparent {
		flags |= rl.FlagWindowTransparent
	}
	if cfg.Screen.Undecorated {
		flags |= rl.FlagWindowUndecorated
	}
	if cfg.Screen.Topmost {
		flags |= rl.FlagWindowTopmost
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Flowfish")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	view := renderer.NewTankView(rngSeed)
	opts.Width = float64(rl.GetScreenWidth())
	opts.Height = float64(rl.GetScreenHeight())
	opts.Sinks = append(opts.Sinks, view.Effects())

	tank, err := game.NewTank(opts)
	if err != nil {
		slog.Error("failed to create tank", "error", err)
		os.Exit(1)
	}
	defer tank.Close()

	slog.Info("starting overlay", "seed", rngSeed, "dev", *dev)

	panel := ui.NewControlPanel(int32(rl.GetScreenWidth())-190, 10, 180)
	hud := ui.NewHUD()
	if *dev {
		hud.Toggle()
	}
	presetName, _ := tank.Preset()
	start := time.Now()

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
			tank.Resize(float64(w), float64(h))
			panel.SetPosition(int32(w)-190, 10)
		}

		mouse := rl.GetMousePosition()
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !panel.Contains(mouse) {
			tank.ClickAt(components.Position{X: float64(mouse.X), Y: float64(mouse.Y)}, clickRadius)
		}

		for key := rl.GetCharPressed(); key != 0; key = rl.GetCharPressed() {
			switch r := rune(key); r {
			case 'h', 'H':
				hud.Toggle()
			case 'p', 'P':
				panel.Toggle()
			default:
				if *dev {
					tank.Apply(game.CommandForKey(r))
				}
			}
		}

		tank.Update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Blank)
		view.Draw(tank.Snapshot(), time.Since(start).Seconds(), float64(rl.GetFrameTime()))
		if cmd := panel.Draw(tank.Count(), cfg.Tank.MaxFish); cmd != game.CmdNone {
			tank.Apply(cmd)
		}
		hud.Draw(ui.HUDData{
			Strategy: tank.Strategy().Name(),
			Preset:   presetName,
			Stats:    tank.Stats(),
			FPS:      rl.GetFPS(),
			Elapsed:  tank.Elapsed().Seconds(),
		})
		hud.DrawControls(int32(rl.GetScreenHeight()))
		rl.EndDrawing()

		if *maxTicks > 0 && tank.Ticks() >= int64(*maxTicks) {
			break
		}
	}
}

// runHeadless drives the tank on a simulated clock at 60 frames per
// simulated second, as fast as the CPU allows.
func runHeadless(opts game.Options, maxTicks int) {
	clk := clock.NewManual(time.Unix(0, 0))
	opts.Clock = clk

	tank, err := game.NewTank(opts)
	if err != nil {
		slog.Error("failed to create tank", "error", err)
		os.Exit(1)
	}
	defer tank.Close()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"strategy", opts.Strategy,
		"max_ticks", maxTicks,
	)

	frame := time.Second / 60
	for {
		clk.Advance(frame)
		tank.Update()

		if maxTicks > 0 && tank.Ticks() >= int64(maxTicks) {
			slog.Info("max ticks reached", "tick", tank.Ticks(), "stats", tank.Stats())
			return
		}
	}
}
