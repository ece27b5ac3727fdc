package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flowfish/components"
)

// Roster stores fish as ECS entities addressed by id. Insertion order is
// kept so removal pops the most recent fish and ticks are deterministic.
type Roster struct {
	world  *ecs.World
	mapper *ecs.Map1[components.Fish]
	filter *ecs.Filter1[components.Fish]

	index map[components.FishID]ecs.Entity
	order []components.FishID
}

// NewRoster creates an empty roster backed by a fresh world.
func NewRoster() *Roster {
	world := ecs.NewWorld()
	return &Roster{
		world:  world,
		mapper: ecs.NewMap1[components.Fish](world),
		filter: ecs.NewFilter1[components.Fish](world),
		index:  make(map[components.FishID]ecs.Entity),
	}
}

// Add stores f. Pointers previously returned by Get are invalid afterwards.
func (r *Roster) Add(f components.Fish) {
	e := r.mapper.NewEntity(&f)
	r.index[f.ID] = e
	r.order = append(r.order, f.ID)
}

// Get returns the live record for id, or nil if it was removed.
// The pointer is valid until the next Add or Remove.
func (r *Roster) Get(id components.FishID) *components.Fish {
	e, ok := r.index[id]
	if !ok || !r.world.Alive(e) {
		return nil
	}
	return r.mapper.Get(e)
}

// Has reports whether id is in the roster.
func (r *Roster) Has(id components.FishID) bool {
	_, ok := r.index[id]
	return ok
}

// Remove deletes id. It returns false if id is unknown.
func (r *Roster) Remove(id components.FishID) bool {
	e, ok := r.index[id]
	if !ok {
		return false
	}
	delete(r.index, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.world.Alive(e) {
		r.world.RemoveEntity(e)
	}
	return true
}

// Last returns the most recently added id.
func (r *Roster) Last() (components.FishID, bool) {
	if len(r.order) == 0 {
		return "", false
	}
	return r.order[len(r.order)-1], true
}

// IDs returns a snapshot of ids in insertion order. Mutating the roster
// while iterating the snapshot is safe.
func (r *Roster) IDs() []components.FishID {
	return append([]components.FishID(nil), r.order...)
}

// Len returns the number of fish.
func (r *Roster) Len() int {
	return len(r.order)
}

// Each visits every fish in storage order. fn must not add or remove fish.
func (r *Roster) Each(fn func(f *components.Fish)) {
	query := r.filter.Query()
	for query.Next() {
		fn(query.Get())
	}
}
