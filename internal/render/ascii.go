// Package render turns a board into human-readable output: an ASCII
// grid for terminal/log debugging. It is not part of the decision path;
// it exists purely for a person looking at logs to understand what the
// engine saw. The PNG snapshot used for archival lives in
// internal/replay.
package render

import (
	"strings"
	"unicode"

	"github.com/brensch/slitherbrain/internal/board"
	"github.com/brensch/slitherbrain/internal/geo"
)

// options configures ASCII rendering via functional options.
type options struct {
	indent    string
	newline   string
	highlight int
	move      geo.Move
	hasMove   bool
}

// Option configures ASCII.
type Option func(*options)

// WithIndent prefixes every line with the given string.
func WithIndent(indent string) Option {
	return func(o *options) { o.indent = indent }
}

// WithNewlineCharacter overrides the line separator, useful when
// embedding the board in a single structured log field.
func WithNewlineCharacter(nl string) Option {
	return func(o *options) { o.newline = nl }
}

// WithMove annotates the rendering with the move a given snake id took,
// printed as a header line above the grid.
func WithMove(snakeID int, m geo.Move) Option {
	return func(o *options) {
		o.highlight = snakeID
		o.move = m
		o.hasMove = true
	}
}

// ASCII renders b as a text grid: '.' for empty, 'x' for the
// out-of-bounds border, '♥' for food, and a lowercase letter per snake
// (its head uppercased), with a one-cell border and a flipped y-axis so
// row 0 prints at the bottom, matching how the board is addressed
// (y increases upward).
func ASCII(b *board.Board, opts ...Option) string {
	cfg := &options{newline: "\n"}
	for _, o := range opts {
		o(cfg)
	}

	var sb strings.Builder

	if cfg.hasMove {
		sb.WriteString(cfg.indent)
		sb.WriteByte(byte('a' + cfg.highlight))
		sb.WriteByte(' ')
		sb.WriteString(cfg.move.String())
		sb.WriteString(cfg.newline)
	}

	height, width := b.Height+2, b.Width+2
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				grid[y][x] = 'x'
			} else {
				grid[y][x] = '.'
			}
		}
	}

	toGrid := func(p geo.Point) (int, int) {
		return height - 1 - (p.Y + 1), p.X + 1
	}

	for _, f := range b.Food {
		gy, gx := toGrid(f)
		if gy >= 0 && gy < height && gx >= 0 && gx < width {
			grid[gy][gx] = '♥'
		}
	}

	for id := range b.Snakes {
		s := &b.Snakes[id]
		if s.IsDead() {
			continue
		}
		letter := rune('a' + id%26)
		for i, p := range s.Body {
			gy, gx := toGrid(p)
			if gy < 0 || gy >= height || gx < 0 || gx >= width {
				continue
			}
			if i == len(s.Body)-1 {
				grid[gy][gx] = unicode.ToUpper(letter)
			} else {
				grid[gy][gx] = letter
			}
		}
	}

	for _, row := range grid {
		sb.WriteString(cfg.indent)
		sb.WriteString(string(row))
		sb.WriteString(cfg.newline)
	}

	return sb.String()
}

