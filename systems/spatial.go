package systems

import (
	"math"

	"github.com/pthm-cable/flowfish/components"
)

// SpatialGrid buckets member indices by position for radius queries.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]int // flat grid of member indices
}

// NewSpatialGrid creates a grid covering [0,width] x [0,height].
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 4)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entries from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds member i at p.
func (g *SpatialGrid) Insert(i int, p components.Position) {
	idx := g.cellIndex(p)
	g.cells[idx] = append(g.cells[idx], i)
}

// CandidatesInto appends every member whose cell may lie within radius of
// p, excluding exclude. Callers filter by exact distance.
func (g *SpatialGrid) CandidatesInto(dst []int, p components.Position, radius float64, exclude int) []int {
	cellRadius := int(math.Ceil(radius / g.cellSize))
	centerCol, centerRow := g.colRow(p)

	for dr := -cellRadius; dr <= cellRadius; dr++ {
		row := centerRow + dr
		if row < 0 || row >= g.rows {
			continue
		}
		for dc := -cellRadius; dc <= cellRadius; dc++ {
			col := centerCol + dc
			if col < 0 || col >= g.cols {
				continue
			}
			for _, i := range g.cells[row*g.cols+col] {
				if i != exclude {
					dst = append(dst, i)
				}
			}
		}
	}
	return dst
}

func (g *SpatialGrid) colRow(p components.Position) (int, int) {
	col := int(p.X / g.cellSize)
	row := int(p.Y / g.cellSize)

	// Clamp to valid range
	col = max(0, min(col, g.cols-1))
	row = max(0, min(row, g.rows-1))
	return col, row
}

// cellIndex returns the flat index for a position.
func (g *SpatialGrid) cellIndex(p components.Position) int {
	col, row := g.colRow(p)
	return row*g.cols + col
}
