// Package replay pulls a finished game's frame-by-frame event stream
// from the public engine and archives it — the raw frame log plus a
// rendered snapshot of the final position — to a cloud storage bucket.
// Nothing here is on the decision path; a move request never waits on
// an archive.
package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/brensch/slitherbrain/internal/geo"
)

// DefaultEngineURL is the public engine's websocket event endpoint root.
const DefaultEngineURL = "wss://engine.battlesnake.com"

// FrameSnake is one snake in a frame event, as the engine serializes it.
type FrameSnake struct {
	ID            string      `json:"ID"`
	Name          string      `json:"Name"`
	Body          []geo.Point `json:"Body"`
	Health        int         `json:"Health"`
	Color         string      `json:"Color"`
	HeadType      string      `json:"HeadType"`
	TailType      string      `json:"TailType"`
	Latency       string      `json:"Latency"`
	Shout         string      `json:"Shout"`
	IsBot         bool        `json:"IsBot"`
	IsEnvironment bool        `json:"IsEnvironment"`
	Author        string      `json:"Author"`
	Death         *Death      `json:"Death"`
}

// Death records when and how a snake was eliminated. Nil on a snake
// that survived to the end of the game.
type Death struct {
	Cause        string `json:"Cause"`
	Turn         int    `json:"Turn"`
	EliminatedBy string `json:"EliminatedBy"`
}

// FrameEvent is one message on the game's event stream.
type FrameEvent struct {
	Type string `json:"Type"`
	Data struct {
		ID     string       `json:"ID"`
		Turn   int          `json:"Turn"`
		Snakes []FrameSnake `json:"Snakes"`
		Food   []geo.Point  `json:"Food"`
		Width  int          `json:"Width"`
		Height int          `json:"Height"`
	} `json:"Data"`
}

// Frame is one turn of a finished game with the board dimensions filled
// in. The engine only reports dimensions on the game_end event, so
// frames are dimensionless until the whole stream has been read.
type Frame struct {
	Turn   int
	Width  int
	Height int
	Snakes []FrameSnake
	Food   []geo.Point
}

// CollectFrames connects to the engine's event stream for gameID and
// reads until the game_end event, returning every turn's frame with
// board dimensions applied. engineURL may be empty for the public
// engine.
func CollectFrames(ctx context.Context, engineURL, gameID string) ([]Frame, error) {
	if engineURL == "" {
		engineURL = DefaultEngineURL
	}
	wsURL := fmt.Sprintf("%s/games/%s/events", engineURL, gameID)

	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to engine event stream: %w", err)
	}
	defer conn.Close()

	var frames []Frame
	var boardWidth, boardHeight int

	for {
		_, message, err := conn.ReadMessage()
		if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("read frame event: %w", err)
		}

		var event FrameEvent
		if err := json.Unmarshal(message, &event); err != nil {
			slog.Error("failed to unmarshal frame event", "error", err.Error())
			continue
		}

		if event.Type == "game_end" {
			boardWidth = event.Data.Width
			boardHeight = event.Data.Height
			break
		}

		frames = append(frames, Frame{
			Turn:   event.Data.Turn,
			Snakes: event.Data.Snakes,
			Food:   event.Data.Food,
		})
	}

	for i := range frames {
		frames[i].Width = boardWidth
		frames[i].Height = boardHeight
	}

	return frames, nil
}
