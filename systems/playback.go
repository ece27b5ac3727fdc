package systems

import (
	"math"
	"time"

	"github.com/pthm-cable/flowfish/clock"
	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/config"
)

// EaseInOutSine maps linear progress to symmetric accelerate/decelerate progress.
func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*clamp01(t)) - 1) / 2
}

// Pose is one interpolated sample delivered to the pose callback.
type Pose struct {
	Pos      components.Position
	Heading  float64 // degrees, after smoothing
	Facing   components.Facing
	Turned   bool    // heading changed on this sample
	Progress float64 // linear progress in [0,1]
}

// PoseFunc receives every interpolated sample of a playback.
type PoseFunc func(id components.FishID, pose Pose)

// CompleteFunc is invoked once when a playback reaches its end.
type CompleteFunc func(id components.FishID)

type playback struct {
	id         components.FishID
	points     []Waypoint
	start      time.Time
	duration   time.Duration
	onPose     PoseFunc
	onComplete CompleteFunc
	done       bool
}

// SchedulerStats counts playback outcomes since creation.
type SchedulerStats struct {
	Active    int
	Started   int
	Completed int
	Canceled  int
}

// Scheduler drives at most one path playback per fish.
type Scheduler struct {
	clock   clock.Clock
	heading config.HeadingConfig

	order   []*playback // insertion order, for deterministic callbacks
	byID    map[components.FishID]*playback
	filters map[components.FishID]*HeadingFilter

	stats SchedulerStats
}

// NewScheduler creates a scheduler reading start times from c.
func NewScheduler(c clock.Clock, heading config.HeadingConfig) *Scheduler {
	return &Scheduler{
		clock:   c,
		heading: heading,
		byID:    make(map[components.FishID]*playback),
		filters: make(map[components.FishID]*HeadingFilter),
	}
}

// Play starts a playback of points over duration seconds, replacing any
// active playback for id without invoking its completion.
func (s *Scheduler) Play(id components.FishID, points []Waypoint, duration float64, onPose PoseFunc, onComplete CompleteFunc) error {
	if !usable(points) {
		return ErrDegeneratePath
	}
	s.Stop(id)

	pb := &playback{
		id:         id,
		points:     append([]Waypoint(nil), points...),
		start:      s.clock.Now(),
		duration:   time.Duration(math.Max(0, duration) * float64(time.Second)),
		onPose:     onPose,
		onComplete: onComplete,
	}
	s.byID[id] = pb
	s.order = append(s.order, pb)
	s.stats.Started++
	return nil
}

// Stop halts the playback for id. No completion callback is issued.
func (s *Scheduler) Stop(id components.FishID) bool {
	pb, ok := s.byID[id]
	if !ok {
		return false
	}
	s.discard(pb)
	s.stats.Canceled++
	return true
}

// Active reports whether id has a running playback.
func (s *Scheduler) Active(id components.FishID) bool {
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of running playbacks.
func (s *Scheduler) Len() int {
	return len(s.byID)
}

// Stats returns playback counters.
func (s *Scheduler) Stats() SchedulerStats {
	st := s.stats
	st.Active = len(s.byID)
	return st
}

// Filter returns the persistent heading filter for id, creating it on demand.
func (s *Scheduler) Filter(id components.FishID) *HeadingFilter {
	f, ok := s.filters[id]
	if !ok {
		f = NewHeadingFilter(s.heading, 0)
		s.filters[id] = f
	}
	return f
}

// SetHeading seeds the heading filter for id, e.g. at spawn.
func (s *Scheduler) SetHeading(id components.FishID, heading float64, facing components.Facing) {
	f := s.Filter(id)
	f.Heading = heading
	f.Facing = facing
}

// Forget stops any playback for id and drops its heading state.
func (s *Scheduler) Forget(id components.FishID) {
	s.Stop(id)
	delete(s.filters, id)
}

// Advance moves every playback to now. Playbacks started by callbacks
// during this call are first sampled on the next Advance.
func (s *Scheduler) Advance(now time.Time) {
	if len(s.order) == 0 {
		return
	}
	snapshot := append([]*playback(nil), s.order...)

	for _, pb := range snapshot {
		if pb.done {
			continue
		}
		progress := 1.0
		if pb.duration > 0 {
			progress = clamp01(float64(now.Sub(pb.start)) / float64(pb.duration))
		}

		pose := s.sample(pb, progress)
		if pb.onPose != nil {
			pb.onPose(pb.id, pose)
		}
		// The pose callback may have stopped or replaced this playback.
		if pb.done || progress < 1 {
			continue
		}

		s.discard(pb)
		s.stats.Completed++
		if pb.onComplete != nil {
			pb.onComplete(pb.id)
		}
	}
}

// sample interpolates position and smoothed heading at linear progress p.
func (s *Scheduler) sample(pb *playback, p float64) Pose {
	eased := EaseInOutSine(p)
	n := len(pb.points)

	idx := int(math.Floor(eased * float64(n-1)))
	if idx > n-2 {
		idx = n - 2
	}
	if idx < 0 {
		idx = 0
	}
	local := eased*float64(n-1) - float64(idx)

	a, b := pb.points[idx], pb.points[idx+1]
	filter := s.Filter(pb.id)
	heading, turned := filter.Update(b.X-a.X, b.Y-a.Y)

	return Pose{
		Pos:      a.Lerp(b, clamp01(local)),
		Heading:  heading,
		Facing:   filter.Facing,
		Turned:   turned,
		Progress: p,
	}
}

func (s *Scheduler) discard(pb *playback) {
	pb.done = true
	delete(s.byID, pb.id)
	for i, o := range s.order {
		if o == pb {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
