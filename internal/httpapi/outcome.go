package httpapi

import "fmt"

// Outcome is how a finished game went for this snake.
type Outcome int

const (
	Win Outcome = iota
	Draw
	Loss
)

// DescribeOutcome inspects the final turn's payload and returns the
// outcome plus a human-readable explanation for the end-of-game alert.
// The engine stops sending dead snakes in the snakes array, so "we're
// still on the board at the end" is the win signal.
func DescribeOutcome(req Request) (Outcome, string) {
	you := req.You

	if you.Head.X < 0 || you.Head.X >= req.Board.Width || you.Head.Y < 0 || you.Head.Y >= req.Board.Height {
		return Loss, "crashed into a wall"
	}

	for _, sn := range req.Board.Snakes {
		if sn.ID != you.ID {
			for _, segment := range sn.Body {
				if you.Head == segment {
					return Loss, fmt.Sprintf("collided with %s", sn.Name)
				}
			}
			continue
		}
		if len(sn.Body) > 2 {
			for _, segment := range sn.Body[1 : len(sn.Body)-1] {
				if you.Head == segment {
					return Loss, "ran into own body"
				}
			}
		}
	}

	if you.Health <= 0 {
		return Loss, "starved to death"
	}

	living := 0
	for _, sn := range req.Board.Snakes {
		if sn.Health > 0 {
			living++
		}
	}
	if living == 0 {
		return Draw, "all snakes died"
	}

	if len(req.Board.Snakes) == 1 && req.Board.Snakes[0].ID == you.ID {
		return Win, "last snake standing"
	}

	return Loss, "eliminated"
}

// ColorFor maps an outcome to the embed accent color used in alerts.
func ColorFor(o Outcome) int {
	switch o {
	case Win:
		return 0x00FF00
	case Draw:
		return 0xFFFF00
	case Loss:
		return 0xFF0000
	default:
		return 0x0099FF
	}
}
