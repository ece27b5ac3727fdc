package main

import (
	"log/slog"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/flowfish/telemetry"
)

const (
	sampleRate = beep.SampleRate(44100)

	// Startles arrive in bursts; one chirp per gap is enough.
	chirpGap = 150 * time.Millisecond
)

// chirper plays a short rising chirp whenever a fish starts escaping.
type chirper struct {
	ready bool
	last  time.Time
}

func newChirper(logger *slog.Logger) *chirper {
	c := &chirper{}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		// Non-fatal, the tank runs without sound
		logger.Warn("audio initialization failed", "error", err)
		return c
	}
	c.ready = true
	return c
}

// Emit implements telemetry.Sink.
func (c *chirper) Emit(e telemetry.Event) {
	if !c.ready || e.Type != telemetry.EventEscapeStart {
		return
	}
	now := time.Now()
	if now.Sub(c.last) < chirpGap {
		return
	}
	c.last = now

	freq := 880
	if e.Detail == "startle" {
		freq = 660
	}
	low, err := generators.SineTone(sampleRate, float64(freq))
	if err != nil {
		return
	}
	high, err := generators.SineTone(sampleRate, float64(freq)*1.5)
	if err != nil {
		return
	}
	speaker.Play(&effects.Gain{
		Streamer: beep.Seq(
			beep.Take(sampleRate.N(40*time.Millisecond), low),
			beep.Take(sampleRate.N(60*time.Millisecond), high),
		),
		Gain: -0.7,
	})
}
