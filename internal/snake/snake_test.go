package snake

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brensch/slitherbrain/internal/geo"
)

func TestNewSnake(t *testing.T) {
	s := New("snake1", geo.Point{X: 2, Y: 2})

	assert.Equal(t, MaxHealth, s.Health)
	assert.Equal(t, StartLength, s.Length)
	assert.Equal(t, []geo.Point{{X: 2, Y: 2}}, s.Body)
	assert.Equal(t, geo.Point{X: 2, Y: 2}, s.Head)
	assert.False(t, s.IsDead())
}

func TestApplyMoveGrowsBodyUntilLength(t *testing.T) {
	// A fresh snake has a one-cell body but desired length 3, so the
	// first two moves retain the tail and the third starts shedding.
	s := New("snake1", geo.Point{X: 0, Y: 0})

	d := s.ApplyMove(geo.Right)
	assert.Nil(t, d.Tail, "body below desired length, tail retained")
	assert.Equal(t, geo.Point{X: 1, Y: 0}, d.NewHead)
	assert.Len(t, s.Body, 2)

	d = s.ApplyMove(geo.Right)
	assert.Nil(t, d.Tail)
	assert.Len(t, s.Body, 3)

	d = s.ApplyMove(geo.Right)
	assert.NotNil(t, d.Tail, "body at desired length, tail shed")
	assert.Equal(t, geo.Point{X: 0, Y: 0}, *d.Tail)
	assert.Len(t, s.Body, 3)
}

func TestApplyMoveDecrementsHealth(t *testing.T) {
	s := New("snake1", geo.Point{X: 0, Y: 0})
	s.ApplyMove(geo.Up)
	assert.Equal(t, MaxHealth-1, s.Health)
}

func TestApplyMoveKeepsHeadAtBodyEnd(t *testing.T) {
	s := New("snake1", geo.Point{X: 5, Y: 5})
	for _, m := range []geo.Move{geo.Right, geo.Up, geo.Right, geo.Down, geo.Down} {
		s.ApplyMove(m)
		assert.Equal(t, s.Head, s.Body[len(s.Body)-1])
	}
}

func TestFeedDelaysBodyGrowth(t *testing.T) {
	s := New("snake1", geo.Point{X: 0, Y: 0})
	s.ApplyMove(geo.Right)
	s.ApplyMove(geo.Right)
	s.ApplyMove(geo.Right) // body now at length 3
	assert.Len(t, s.Body, 3)

	s.Feed()
	assert.Equal(t, MaxHealth, s.Health)
	assert.Equal(t, 4, s.Length)
	assert.Len(t, s.Body, 3, "feed must not grow the body immediately")

	d := s.ApplyMove(geo.Right)
	assert.Nil(t, d.Tail, "tail retained on the move after feeding")
	assert.Len(t, s.Body, 4, "body grows on the next move")

	d = s.ApplyMove(geo.Right)
	assert.NotNil(t, d.Tail, "back to shedding once body matches length")
	assert.Len(t, s.Body, 4)
}

func TestLengthNeverDecreasesWhileAlive(t *testing.T) {
	s := New("snake1", geo.Point{X: 0, Y: 0})
	prev := s.Length
	moves := []geo.Move{geo.Right, geo.Up, geo.Right, geo.Up, geo.Right}
	for i, m := range moves {
		if i == 2 {
			s.Feed()
		}
		s.ApplyMove(m)
		assert.GreaterOrEqual(t, s.Length, prev)
		prev = s.Length
	}
}

func TestKill(t *testing.T) {
	s := New("snake1", geo.Point{X: 0, Y: 0})
	s.Kill()

	assert.True(t, s.IsDead())
	assert.Empty(t, s.Body)
	assert.Zero(t, s.Length)
}

func TestApplyMoveOnDeadSnakePanics(t *testing.T) {
	s := New("snake1", geo.Point{X: 0, Y: 0})
	s.Kill()
	assert.Panics(t, func() { s.ApplyMove(geo.Up) })
	assert.Panics(t, func() { s.Feed() })
	assert.Panics(t, func() { s.BodyWithoutHead() })
}

func TestBodyWithoutHead(t *testing.T) {
	s := New("snake1", geo.Point{X: 0, Y: 0})
	s.ApplyMove(geo.Right)
	s.ApplyMove(geo.Right)

	assert.Equal(t, []geo.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, s.BodyWithoutHead())
	assert.Len(t, s.Body, 3, "BodyWithoutHead must not mutate the body")
}

func TestCloneIsIndependent(t *testing.T) {
	s := New("snake1", geo.Point{X: 0, Y: 0})
	s.ApplyMove(geo.Right)

	c := s.Clone()
	c.ApplyMove(geo.Up)

	assert.Len(t, s.Body, 2)
	assert.Len(t, c.Body, 3)
	assert.Equal(t, geo.Point{X: 1, Y: 0}, s.Head)
	assert.Equal(t, geo.Point{X: 1, Y: 1}, c.Head)
}
