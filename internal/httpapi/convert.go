package httpapi

import (
	"github.com/brensch/slitherbrain/internal/board"
	"github.com/brensch/slitherbrain/internal/game"
	"github.com/brensch/slitherbrain/internal/geo"
	"github.com/brensch/slitherbrain/internal/snake"
)

func toPoint(p PointPayload) geo.Point {
	return geo.Point{X: p.X, Y: p.Y}
}

func toPoints(ps []PointPayload) []geo.Point {
	out := make([]geo.Point, len(ps))
	for i, p := range ps {
		out[i] = toPoint(p)
	}
	return out
}

// toSnapshot converts a request's board into a game.Snapshot, reordering
// snakes so the recipient ("you") is always id 0. This matches the
// protocol's guarantee that the search tree always reasons about "my"
// moves as player 0 regardless of how the engine orders the snakes
// array.
func toSnapshot(req Request) game.Snapshot {
	youIndex := 0
	for i, s := range req.Board.Snakes {
		if s.ID == req.You.ID {
			youIndex = i
			break
		}
	}

	snakes := make([]snake.Snake, len(req.Board.Snakes))
	order := append([]int{youIndex}, without(len(req.Board.Snakes), youIndex)...)
	for newID, oldIdx := range order {
		sp := req.Board.Snakes[oldIdx]
		body := toPoints(sp.Body)
		// The wire format lists the body head-first; internally the
		// head is the newest (last) element.
		for i, j := 0, len(body)-1; i < j; i, j = i+1, j-1 {
			body[i], body[j] = body[j], body[i]
		}
		length := sp.Length
		if length == 0 {
			length = len(body)
		}
		snakes[newID] = snake.Snake{
			ID:     sp.ID,
			Health: sp.Health,
			Body:   body,
			Head:   toPoint(sp.Head),
			Length: length,
		}
	}

	b := board.New(req.Board.Width, req.Board.Height, snakes, toPoints(req.Board.Food))
	b.FoodMinAmount = req.Game.Ruleset.Settings.MinimumFood
	if b.FoodMinAmount == 0 {
		b.FoodMinAmount = len(snakes) - 1
	}

	return game.New(b, 0)
}

func without(n, exclude int) []int {
	out := make([]int, 0, n-1)
	for i := 0; i < n; i++ {
		if i != exclude {
			out = append(out, i)
		}
	}
	return out
}

// fromMove renders a geo.Move the way the protocol expects it, in the
// "move" response field.
func fromMove(m geo.Move) string {
	return m.String()
}
