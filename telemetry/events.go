// Package telemetry provides the tank's event stream, window statistics and
// CSV output.
package telemetry

import (
	"time"

	"github.com/pthm-cable/flowfish/components"
)

// EventType identifies telemetry events.
type EventType uint8

const (
	EventSpawn EventType = iota
	EventDespawn
	EventClickReaction
	EventEscapeStart
	EventEscapeEnd
	EventColorChange
	EventSchoolingPulse
	EventPathStart
	EventPathComplete
	EventPathDegenerate
	EventCountChanged
	EventMove

	numEventTypes
)

var eventNames = [...]string{
	EventSpawn:          "spawn",
	EventDespawn:        "despawn",
	EventClickReaction:  "click_reaction",
	EventEscapeStart:    "escape_start",
	EventEscapeEnd:      "escape_end",
	EventColorChange:    "color_change",
	EventSchoolingPulse: "schooling_pulse",
	EventPathStart:      "path_start",
	EventPathComplete:   "path_complete",
	EventPathDegenerate: "path_degenerate",
	EventCountChanged:   "count_changed",
	EventMove:           "move",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is one notification from the core to its collaborators.
type Event struct {
	Type    EventType
	Time    time.Time
	FishID  components.FishID
	Pos     components.Position
	Heading float64
	Facing  components.Facing
	Mode    components.Mode
	Count   int    // roster size for count_changed
	Detail  string // e.g. "click" or "startle" for escape_start, scheme name for color_change
}

// NewMoveEvent creates a per-frame pose event.
func NewMoveEvent(now time.Time, f *components.Fish) Event {
	return Event{
		Type:    EventMove,
		Time:    now,
		FishID:  f.ID,
		Pos:     f.Pos,
		Heading: f.Heading,
		Facing:  f.Facing,
		Mode:    f.Mode,
	}
}

// NewFishEvent creates a discrete event about one fish.
func NewFishEvent(typ EventType, now time.Time, f *components.Fish, detail string) Event {
	return Event{
		Type:    typ,
		Time:    now,
		FishID:  f.ID,
		Pos:     f.Pos,
		Heading: f.Heading,
		Facing:  f.Facing,
		Mode:    f.Mode,
		Detail:  detail,
	}
}

// NewCountEvent creates a roster size notification.
func NewCountEvent(now time.Time, count int) Event {
	return Event{Type: EventCountChanged, Time: now, Count: count}
}

// Sink receives events. Emit is called on the tank's goroutine and must not
// call back into the tank.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) { f(e) }

// Bus fans events out to every subscribed sink in subscription order.
type Bus struct {
	sinks []Sink
}

// NewBus creates a bus with the given sinks. Nil sinks are skipped.
func NewBus(sinks ...Sink) *Bus {
	b := &Bus{}
	for _, s := range sinks {
		b.Subscribe(s)
	}
	return b
}

// Subscribe adds a sink.
func (b *Bus) Subscribe(s Sink) {
	if s != nil {
		b.sinks = append(b.sinks, s)
	}
}

// Emit delivers e to every sink.
func (b *Bus) Emit(e Event) {
	for _, s := range b.sinks {
		s.Emit(e)
	}
}

// Recorder keeps every event it receives. Used by tests and the headless report.
type Recorder struct {
	events []Event
	skip   map[EventType]bool
}

// NewRecorder creates a recorder ignoring the given types.
func NewRecorder(ignore ...EventType) *Recorder {
	r := &Recorder{skip: make(map[EventType]bool)}
	for _, t := range ignore {
		r.skip[t] = true
	}
	return r
}

// Emit records e.
func (r *Recorder) Emit(e Event) {
	if r.skip[e.Type] {
		return
	}
	r.events = append(r.events, e)
}

// Events returns all recorded events.
func (r *Recorder) Events() []Event { return r.events }

// OfType returns recorded events of type t.
func (r *Recorder) OfType(t EventType) []Event {
	var out []Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of recorded events of type t.
func (r *Recorder) Count(t EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Reset drops all recorded events.
func (r *Recorder) Reset() { r.events = r.events[:0] }
