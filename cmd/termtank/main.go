// Command termtank runs the fish tank in a terminal. Mouse clicks scare
// fish; a/r/c/x/s are the roster keys and q quits.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/config"
	"github.com/pthm-cable/flowfish/game"
	"github.com/pthm-cable/flowfish/telemetry"
)

// Each terminal cell stands for a block of tank pixels.
const (
	cellWidth  = 8
	cellHeight = 16

	// clickRadius is the hit-test radius in tank pixels.
	clickRadius = 24
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	strategy := flag.String("strategy", game.StrategyPursuit, "Motion strategy: pursuit or playback")
	preset := flag.String("preset", "", "Behavior preset (empty = strategy default)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	logPath := flag.String("log", "", "Write JSON logs to this file (empty = discard)")
	mute := flag.Bool("mute", false, "Disable the escape chirp")
	flag.Parse()

	if err := run(*configPath, *strategy, *preset, *seed, *logPath, *mute); err != nil {
		fmt.Fprintln(os.Stderr, "termtank:", err)
		os.Exit(1)
	}
}

func run(configPath, strategy, preset string, seed int64, logPath string, mute bool) error {
	// The screen owns stdout, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return fmt.Errorf("opening log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	if err := config.Init(configPath); err != nil {
		return err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	var sinks []telemetry.Sink
	if !mute {
		sinks = append(sinks, newChirper(logger))
	}

	cols, rows := screen.Size()
	tank, err := game.NewTank(game.Options{
		Strategy: strategy,
		Preset:   preset,
		Seed:     seed,
		Width:    float64(cols * cellWidth),
		Height:   float64(rows * cellHeight),
		Logger:   logger,
		Sinks:    sinks,
	})
	if err != nil {
		return err
	}
	defer tank.Close()

	// tcell events are polled on their own goroutine and handed to the
	// loop below, which is the only goroutine touching the tank.
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	frame := time.NewTicker(time.Second / 30)
	defer frame.Stop()

	var lastButtons tcell.ButtonMask
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				cols, rows = ev.Size()
				tank.Resize(float64(cols*cellWidth), float64(rows*cellHeight))
				screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
				if ev.Key() == tcell.KeyRune {
					tank.Apply(game.CommandForKey(ev.Rune()))
				}
			case *tcell.EventMouse:
				buttons := ev.Buttons()
				if buttons&tcell.Button1 != 0 && lastButtons&tcell.Button1 == 0 {
					x, y := ev.Position()
					pos := components.Position{
						X: float64(x*cellWidth + cellWidth/2),
						Y: float64(y*cellHeight + cellHeight/2),
					}
					tank.ClickAt(pos, clickRadius)
				}
				lastButtons = buttons
			}
		case <-frame.C:
			tank.Update()
			draw(screen, tank, cols, rows)
		}
	}
}

func draw(screen tcell.Screen, tank *game.Tank, cols, rows int) {
	screen.Clear()
	for _, f := range tank.Snapshot() {
		x := int(f.Pos.X) / cellWidth
		y := int(f.Pos.Y) / cellHeight
		glyph := "><>"
		if f.Facing == components.FacingLeft {
			glyph = "<><"
		}
		c := f.Color.Body[0]
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		if f.Escaping {
			style = style.Bold(true)
		}
		for i, r := range glyph {
			if cx := x - 1 + i; cx >= 0 && cx < cols && y >= 0 && y < rows {
				screen.SetContent(cx, y, r, nil, style)
			}
		}
	}

	s := tank.Stats()
	status := fmt.Sprintf(" fish %d  escaping %d  resting %d  [a]dd [r]emove [c]reset [x]colors [s]tats [q]uit ",
		s.Fish, s.Escaping, s.Resting)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, r := range status {
		if i >= cols {
			break
		}
		screen.SetContent(i, rows-1, r, nil, dim)
	}
	screen.Show()
}
