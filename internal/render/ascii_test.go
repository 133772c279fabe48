package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brensch/slitherbrain/internal/board"
	"github.com/brensch/slitherbrain/internal/geo"
	"github.com/brensch/slitherbrain/internal/snake"
)

func testSnake(id string, body []geo.Point) snake.Snake {
	return snake.Snake{
		ID:     id,
		Health: snake.MaxHealth,
		Body:   append([]geo.Point(nil), body...),
		Head:   body[len(body)-1],
		Length: len(body),
	}
}

func TestASCIIGrid(t *testing.T) {
	b := board.New(3, 3, []snake.Snake{
		testSnake("a", []geo.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}),
	}, []geo.Point{{X: 2, Y: 2}})

	got := ASCII(&b)

	// y=2 prints on top, the border is one cell thick all around, the
	// head is uppercased.
	expected := strings.Join([]string{
		"xxxxx",
		"x..♥x",
		"x...x",
		"xaA.x",
		"xxxxx",
		"",
	}, "\n")
	assert.Equal(t, expected, got)
}

func TestASCIISkipsDeadSnakes(t *testing.T) {
	dead := snake.Snake{ID: "dead"}
	b := board.New(3, 3, []snake.Snake{
		testSnake("a", []geo.Point{{X: 1, Y: 1}}),
		dead,
	}, nil)

	got := ASCII(&b)
	assert.NotContains(t, got, "b")
}

func TestASCIIWithIndentAndNewline(t *testing.T) {
	b := board.New(2, 2, []snake.Snake{
		testSnake("a", []geo.Point{{X: 0, Y: 0}}),
	}, nil)

	got := ASCII(&b, WithIndent("  "), WithNewlineCharacter("|"))

	assert.True(t, strings.HasPrefix(got, "  "), "every line is indented")
	assert.Contains(t, got, "|")
	assert.NotContains(t, got, "\n")
}

func TestASCIIWithMoveHeader(t *testing.T) {
	b := board.New(3, 3, []snake.Snake{
		testSnake("a", []geo.Point{{X: 1, Y: 1}}),
	}, nil)

	got := ASCII(&b, WithMove(0, geo.Right))
	assert.True(t, strings.HasPrefix(got, "a right\n"))
}
