package systems

import (
	"math"
	"slices"

	"github.com/pthm-cable/flowfish/components"
	"github.com/pthm-cable/flowfish/config"
)

// Member is one fish as seen by the flock field for a single tick.
type Member struct {
	ID          components.FishID
	Pos         components.Position
	Target      components.Position
	Personality float64
	Escaping    bool
}

// Spatial grid sizing: cells are at least flockCellSize pixels and the
// grid is at most flockMaxCells cells on a side.
const (
	flockCellSize = 64.0
	flockMaxCells = 64
)

// FlockField answers neighbourhood queries over a frozen snapshot.
type FlockField struct {
	members []Member
	index   map[components.FishID]int
	grid    *SpatialGrid
	scratch []int
}

// NewFlockField snapshots members. The slice is not copied.
func NewFlockField(members []Member) *FlockField {
	index := make(map[components.FishID]int, len(members))
	var width, height float64
	for i, m := range members {
		index[m.ID] = i
		width = math.Max(width, m.Pos.X)
		height = math.Max(height, m.Pos.Y)
	}

	cell := math.Max(flockCellSize, math.Max(width, height)/flockMaxCells)
	grid := NewSpatialGrid(width, height, cell)
	for i, m := range members {
		grid.Insert(i, m.Pos)
	}
	return &FlockField{members: members, index: index, grid: grid}
}

// Len returns the snapshot size.
func (f *FlockField) Len() int { return len(f.members) }

// Member returns the i-th member.
func (f *FlockField) Member(i int) Member { return f.members[i] }

// Index returns the snapshot position of id.
func (f *FlockField) Index(id components.FishID) (int, bool) {
	i, ok := f.index[id]
	return i, ok
}

// Neighbor is another member within a query radius.
type Neighbor struct {
	Index    int
	Distance float64
}

// Neighbors returns every other member strictly closer than radius to
// member i, in snapshot order.
func (f *FlockField) Neighbors(i int, radius float64) []Neighbor {
	if radius <= 0 {
		return nil
	}
	self := f.members[i].Pos
	f.scratch = f.grid.CandidatesInto(f.scratch[:0], self, radius, i)
	slices.Sort(f.scratch)

	var out []Neighbor
	for _, j := range f.scratch {
		if d := self.Dist(f.members[j].Pos); d < radius {
			out = append(out, Neighbor{Index: j, Distance: d})
		}
	}
	return out
}

// SchoolingTarget nudges member i's target toward the centroid of itself and
// its neighbours. ok is false when the member does not school this time.
func (f *FlockField) SchoolingTarget(i int, radius float64, cfg config.FlockConfig) (components.Position, bool) {
	m := f.members[i]
	if m.Personality <= cfg.PersonalityThreshold {
		return m.Target, false
	}
	neighbors := f.Neighbors(i, radius)
	if len(neighbors) < cfg.MinNeighbors {
		return m.Target, false
	}

	sum := m.Pos
	for _, n := range neighbors {
		sum = sum.Add(f.members[n.Index].Pos)
	}
	centroid := sum.Scale(1 / float64(len(neighbors)+1))

	return m.Target.Lerp(centroid, cfg.Attraction), true
}

// AvoidanceOffset returns the additive push away from every member within
// radius. Coincident members contribute nothing.
func (f *FlockField) AvoidanceOffset(i int, radius, strength float64) components.Position {
	if radius <= 0 {
		return components.Position{}
	}
	self := f.members[i].Pos
	var offset components.Position
	for _, n := range f.Neighbors(i, radius) {
		if n.Distance == 0 {
			continue
		}
		away := self.Sub(f.members[n.Index].Pos).Scale(1 / n.Distance)
		force := (radius - n.Distance) / radius
		offset = offset.Add(away.Scale(force * strength))
	}
	return offset
}

// ScareProbability is the chance a neighbour at distance d joins a startle.
// It falls linearly from factor at d=0 to 0 at d=radius.
func ScareProbability(d, radius, factor float64) float64 {
	if radius <= 0 || d >= radius || d < 0 {
		return 0
	}
	return (1 - d/radius) * factor
}
