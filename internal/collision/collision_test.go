package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brensch/slitherbrain/internal/geo"
	"github.com/brensch/slitherbrain/internal/snake"
)

// aliveSnake builds a snake with the given body (tail first, head last)
// without going through New, since these tests need exact positions.
func aliveSnake(id string, body []geo.Point) snake.Snake {
	return snake.Snake{
		ID:     id,
		Health: 90,
		Body:   body,
		Head:   body[len(body)-1],
		Length: len(body),
	}
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		Description string
		Snakes      []snake.Snake
		Expected    []Collision
	}{
		{
			Description: "no collisions on an open board",
			Snakes: []snake.Snake{
				aliveSnake("a", []geo.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}),
				aliveSnake("b", []geo.Point{{X: 4, Y: 4}, {X: 3, Y: 4}}),
			},
			Expected: nil,
		},
		{
			Description: "head past the right wall",
			Snakes: []snake.Snake{
				aliveSnake("a", []geo.Point{{X: 3, Y: 2}, {X: 4, Y: 2}, {X: 5, Y: 2}}),
			},
			Expected: []Collision{
				{Kind: Wall, ID: 0, Loc: geo.Point{X: 5, Y: 2}},
			},
		},
		{
			Description: "head below the bottom wall",
			Snakes: []snake.Snake{
				aliveSnake("a", []geo.Point{{X: 2, Y: 1}, {X: 2, Y: 0}, {X: 2, Y: -1}}),
			},
			Expected: []Collision{
				{Kind: Wall, ID: 0, Loc: geo.Point{X: 2, Y: -1}},
			},
		},
		{
			Description: "head on own body",
			Snakes: []snake.Snake{
				aliveSnake("a", []geo.Point{
					{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2},
				}),
			},
			Expected: []Collision{
				{Kind: SelfBody, ID: 0, Loc: geo.Point{X: 2, Y: 2}},
			},
		},
		{
			Description: "head on another snake's body",
			Snakes: []snake.Snake{
				aliveSnake("a", []geo.Point{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}),
				aliveSnake("b", []geo.Point{{X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}}),
			},
			Expected: []Collision{
				{Kind: OtherBody, VictimID: 0, KillerID: 1, Loc: geo.Point{X: 2, Y: 2}},
			},
		},
		{
			Description: "head to head reported from both viewpoints",
			Snakes: []snake.Snake{
				aliveSnake("a", []geo.Point{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}),
				aliveSnake("b", []geo.Point{{X: 4, Y: 2}, {X: 3, Y: 2}, {X: 2, Y: 2}}),
			},
			Expected: []Collision{
				{Kind: HeadToHead, SnakeA: 0, SnakeB: 1, LengthA: 3, LengthB: 3, Loc: geo.Point{X: 2, Y: 2}},
				{Kind: HeadToHead, SnakeA: 1, SnakeB: 0, LengthA: 3, LengthB: 3, Loc: geo.Point{X: 2, Y: 2}},
			},
		},
		{
			Description: "body hit takes precedence over a shared head cell",
			Snakes: []snake.Snake{
				aliveSnake("a", []geo.Point{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}),
				aliveSnake("b", []geo.Point{{X: 4, Y: 2}, {X: 3, Y: 2}, {X: 2, Y: 2}}),
				aliveSnake("c", []geo.Point{{X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}}),
			},
			Expected: []Collision{
				{Kind: OtherBody, VictimID: 0, KillerID: 2, Loc: geo.Point{X: 2, Y: 2}},
				{Kind: OtherBody, VictimID: 1, KillerID: 2, Loc: geo.Point{X: 2, Y: 2}},
			},
		},
		{
			Description: "dead snakes are skipped entirely",
			Snakes: []snake.Snake{
				{ID: "dead"},
				aliveSnake("b", []geo.Point{{X: 1, Y: 1}, {X: 2, Y: 1}}),
			},
			Expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			got := Classify(tc.Snakes, 5, 5)
			assert.Equal(t, tc.Expected, got)
		})
	}
}

func TestCausesDeath(t *testing.T) {
	testCases := []struct {
		Description string
		Collision   Collision
		SelfID      int
		Expected    bool
	}{
		{
			Description: "wall always kills its subject",
			Collision:   Collision{Kind: Wall, ID: 1},
			SelfID:      1,
			Expected:    true,
		},
		{
			Description: "another snake's wall collision doesn't kill",
			Collision:   Collision{Kind: Wall, ID: 1},
			SelfID:      0,
			Expected:    false,
		},
		{
			Description: "self body always kills its subject",
			Collision:   Collision{Kind: SelfBody, ID: 2},
			SelfID:      2,
			Expected:    true,
		},
		{
			Description: "other body kills the victim",
			Collision:   Collision{Kind: OtherBody, VictimID: 0, KillerID: 1},
			SelfID:      0,
			Expected:    true,
		},
		{
			Description: "other body spares the killer",
			Collision:   Collision{Kind: OtherBody, VictimID: 0, KillerID: 1},
			SelfID:      1,
			Expected:    false,
		},
		{
			Description: "head to head equal length kills both",
			Collision:   Collision{Kind: HeadToHead, SnakeA: 0, SnakeB: 1, LengthA: 3, LengthB: 3},
			SelfID:      0,
			Expected:    true,
		},
		{
			Description: "head to head equal length kills the other side too",
			Collision:   Collision{Kind: HeadToHead, SnakeA: 0, SnakeB: 1, LengthA: 3, LengthB: 3},
			SelfID:      1,
			Expected:    true,
		},
		{
			Description: "head to head longer snake survives",
			Collision:   Collision{Kind: HeadToHead, SnakeA: 0, SnakeB: 1, LengthA: 4, LengthB: 3},
			SelfID:      0,
			Expected:    false,
		},
		{
			Description: "head to head shorter snake dies",
			Collision:   Collision{Kind: HeadToHead, SnakeA: 0, SnakeB: 1, LengthA: 4, LengthB: 3},
			SelfID:      1,
			Expected:    true,
		},
		{
			Description: "bystander unaffected by a head to head",
			Collision:   Collision{Kind: HeadToHead, SnakeA: 0, SnakeB: 1, LengthA: 4, LengthB: 3},
			SelfID:      2,
			Expected:    false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			assert.Equal(t, tc.Expected, CausesDeath(tc.Collision, tc.SelfID))
		})
	}
}
