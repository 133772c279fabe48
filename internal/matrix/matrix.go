// Package matrix is the dense occupancy grid that backs legal-move checks,
// flood fill, and board hashing. It is updated incrementally from a turn's
// displacements and collisions rather than rebuilt from scratch.
package matrix

import (
	"github.com/brensch/slitherbrain/internal/collision"
	"github.com/brensch/slitherbrain/internal/geo"
)

// empty marks a cell with no snake on it. Occupied cells store id+1 so 0
// stays reserved for empty.
const empty = 0

// Matrix is a row-major width x height grid of byte-sized occupancy codes.
type Matrix struct {
	Width, Height int
	Cells         []uint8
}

// New allocates an empty width x height matrix.
func New(width, height int) Matrix {
	return Matrix{Width: width, Height: height, Cells: make([]uint8, width*height)}
}

func (m *Matrix) index(p geo.Point) int {
	return p.Y*m.Width + p.X
}

// Get returns the occupant id at p, or -1 if p is out of bounds or empty.
func (m *Matrix) Get(p geo.Point) int {
	if !geo.InBounds(p, m.Width, m.Height) {
		return -1
	}
	v := m.Cells[m.index(p)]
	if v == empty {
		return -1
	}
	return int(v) - 1
}

// Mark sets the occupant at p to id.
func (m *Matrix) Mark(p geo.Point, id int) {
	m.Cells[m.index(p)] = uint8(id + 1)
}

// Clear empties the cell at p.
func (m *Matrix) Clear(p geo.Point) {
	m.Cells[m.index(p)] = empty
}

// RemoveSnake clears every in-bounds cell of a dead snake's former body
// that the matrix still attributes to that snake, so flood fill and
// legal-move checks no longer see it. The ownership check is what keeps
// a killer's cell intact when the victim's head died on it: that cell
// carries the killer's id, not the victim's, and is left alone.
func (m *Matrix) RemoveSnake(body []geo.Point, id int) {
	for _, p := range body {
		if !geo.InBounds(p, m.Width, m.Height) {
			continue
		}
		if m.Get(p) == id {
			m.Clear(p)
		}
	}
}

// Update applies one turn's worth of per-snake displacements to the
// matrix. Tail vacancies are cleared for every snake that moved this
// turn, dead or alive, since a shed tail cell is stale either way; new
// heads are marked only for survivors, so a snake that died this turn
// never writes over a killer's existing body cell. Tails clear before
// heads mark so a snake moving into a just-vacated tail cell ends up
// owning it.
func (m *Matrix) Update(displacements []Displacement, deaths map[int]bool) {
	for _, d := range displacements {
		if d.Tail != nil && geo.InBounds(*d.Tail, m.Width, m.Height) && m.Get(*d.Tail) == d.ID {
			m.Clear(*d.Tail)
		}
	}
	for _, d := range displacements {
		if deaths[d.ID] {
			continue
		}
		m.Mark(d.NewHead, d.ID)
	}
}

// Displacement pairs a snake id with the tail/head delta its ApplyMove
// produced, so Update can skip snakes that died this turn.
type Displacement struct {
	ID      int
	Tail    *geo.Point
	NewHead geo.Point
}

// NewDisplacement is the constructor board.Step uses to build the slice
// passed to Update.
func NewDisplacement(id int, tail *geo.Point, newHead geo.Point) Displacement {
	return Displacement{ID: id, Tail: tail, NewHead: newHead}
}

// DeathSetFromCollisions turns a Classify result into the id-set Update
// needs, using CausesDeath to resolve head-to-head and other-body
// outcomes per subject.
func DeathSetFromCollisions(collisions []collision.Collision, numSnakes int) map[int]bool {
	deaths := make(map[int]bool, len(collisions))
	for id := 0; id < numSnakes; id++ {
		for _, c := range collisions {
			if collision.CausesDeath(c, id) {
				deaths[id] = true
				break
			}
		}
	}
	return deaths
}
