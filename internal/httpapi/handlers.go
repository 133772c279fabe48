package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/brensch/slitherbrain/internal/agent"
	"github.com/brensch/slitherbrain/internal/render"
)

// Identity is the static metadata returned from the index endpoint,
// describing this snake's cosmetic appearance to the game engine.
type Identity struct {
	APIVersion string `json:"apiversion"`
	Author     string `json:"author"`
	Color      string `json:"color"`
	Head       string `json:"head"`
	Tail       string `json:"tail"`
	Version    string `json:"version"`
}

// Server wires the agent facade to the four protocol endpoints.
type Server struct {
	Identity Identity
	Agent    *agent.Agent
	Alerter  agent.Alerter
	Log      *slog.Logger

	// DeadlineSlack is subtracted from the engine-reported timeout
	// before a move's search deadline is set, leaving room for request
	// marshaling and network latency on the way back.
	DeadlineSlack time.Duration

	// OnGameEnd, when set, runs in its own goroutine after the end
	// payload is acknowledged. The process entrypoint hooks the replay
	// archiver in here so archival never delays the engine's webhook.
	OnGameEnd func(gameID string)
}

// Routes registers the four Battlesnake endpoints on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/start", s.handleStart)
	mux.HandleFunc("/move", s.handleMove)
	mux.HandleFunc("/end", s.handleEnd)
}

func (s *Server) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Identity)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var others []string
	for _, sn := range req.Board.Snakes {
		if sn.ID == req.You.ID {
			continue
		}
		others = append(others, sn.Name)
	}

	s.logger().Info("game started", "game_id", req.Game.ID, "opponents", strings.Join(others, ","))
	if s.Alerter != nil {
		s.Alerter.Alert(r.Context(), req.Game.ID, fmt.Sprintf("game started against %s", strings.Join(others, ",")))
	}

	writeJSON(w, map[string]string{})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	slack := s.DeadlineSlack
	if slack == 0 {
		slack = 100 * time.Millisecond
	}
	deadline := time.Duration(req.Game.Timeout)*time.Millisecond - slack

	ctx, cancel := context.WithTimeout(r.Context(), deadline)
	defer cancel()

	snap := toSnapshot(req)
	move := s.Agent.Decide(ctx, req.Game.ID, snap)

	writeJSON(w, map[string]string{
		"move":  fromMove(move),
		"shout": "calculated",
	})

	s.logger().Info("move processed",
		"game_id", req.Game.ID,
		"snake_id", req.You.ID,
		"move", fromMove(move),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.Agent.Forget(req.Game.ID)

	outcome, reason := DescribeOutcome(req)
	s.logger().Info("game ended",
		"game_id", req.Game.ID,
		"turn", req.Turn,
		"outcome", int(outcome),
		"reason", reason,
	)

	if s.Alerter != nil {
		// The engine drops dead snakes from the final board, so put
		// ours back before rendering.
		if !containsSnake(req.Board.Snakes, req.You.ID) {
			req.Board.Snakes = append(req.Board.Snakes, req.You)
		}
		snap := toSnapshot(req)
		grid := render.ASCII(&snap.Board)
		s.Alerter.Alert(r.Context(), req.Game.ID, fmt.Sprintf(
			"game finished on turn %d: %s\nhttps://play.battlesnake.com/game/%s\n```\n%s```",
			req.Turn, reason, req.Game.ID, grid,
		))
	}

	if s.OnGameEnd != nil {
		go s.OnGameEnd(req.Game.ID)
	}

	writeJSON(w, map[string]string{})
}

func containsSnake(snakes []SnakePayload, id string) bool {
	for _, sn := range snakes {
		if sn.ID == id {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
