package clock

import (
	"container/heap"
	"time"
)

// TimerID identifies a pending one-shot callback.
type TimerID uint64

type timer struct {
	id       TimerID
	deadline time.Time
	seq      uint64
	fn       func()
	index    int
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Timers is a queue of deferred one-shot callbacks. Callbacks only run from
// Run, on the caller's goroutine, so they never race with the tick.
type Timers struct {
	clock   Clock
	pending timerHeap
	byID    map[TimerID]*timer
	nextID  TimerID
	seq     uint64
}

// NewTimers creates an empty queue reading deadlines from c.
func NewTimers(c Clock) *Timers {
	return &Timers{
		clock: c,
		byID:  make(map[TimerID]*timer),
	}
}

// After schedules fn to run once d has elapsed on the clock.
func (t *Timers) After(d time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	t.nextID++
	t.seq++
	tm := &timer{
		id:       t.nextID,
		deadline: t.clock.Now().Add(d),
		seq:      t.seq,
		fn:       fn,
	}
	heap.Push(&t.pending, tm)
	t.byID[tm.id] = tm
	return tm.id
}

// Cancel drops a pending callback. Unknown or fired ids are ignored.
func (t *Timers) Cancel(id TimerID) bool {
	tm, ok := t.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&t.pending, tm.index)
	delete(t.byID, id)
	return true
}

// Pending reports whether id is still scheduled.
func (t *Timers) Pending(id TimerID) bool {
	_, ok := t.byID[id]
	return ok
}

// Len returns the number of pending callbacks.
func (t *Timers) Len() int {
	return len(t.pending)
}

// Run fires every callback whose deadline is at or before now, earliest
// first. Callbacks scheduled by a callback are eligible in the same call.
// Returns the number fired.
func (t *Timers) Run(now time.Time) int {
	fired := 0
	for len(t.pending) > 0 {
		next := t.pending[0]
		if next.deadline.After(now) {
			break
		}
		heap.Pop(&t.pending)
		delete(t.byID, next.id)
		next.fn()
		fired++
	}
	return fired
}

// Clear drops every pending callback.
func (t *Timers) Clear() {
	t.pending = t.pending[:0]
	clear(t.byID)
}
