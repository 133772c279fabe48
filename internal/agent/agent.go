// Package agent is the facade the HTTP layer calls: hand it a snapshot
// with Think, let the turn's budget elapse, and collect the move with
// NextMove. It owns the background search workers, the per-game
// warm-start cache, and the random-move fallback for when search comes
// back empty.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brensch/slitherbrain/internal/game"
	"github.com/brensch/slitherbrain/internal/geo"
	"github.com/brensch/slitherbrain/internal/mcts"
)

// Alerter receives a message when the agent has to fall back to a
// random move or missed its deadline entirely, so the process can push
// a diagnostic alert without this package knowing how alerts are sent.
type Alerter interface {
	Alert(ctx context.Context, gameID, message string)
}

// search is one in-flight Think: the workers' cancel handle, the tree
// they're growing, and enough metadata to log the run coherently.
type search struct {
	gameID string
	runID  string
	snap   game.Snapshot
	root   *mcts.Node
	start  time.Time
	halt   context.CancelFunc
	done   chan struct{}
}

// Agent runs search on behalf of one or more games, one search at a
// time, and keeps a small per-game cache so consecutive turns in the
// same game can warm start from the previous turn's search instead of
// starting from scratch.
//
// The lifecycle is Idle -> Searching -> Idle: Think spawns workers and
// NextMove halts them. Calling Think while already Searching is a
// programmer error; callers must interleave the two.
type Agent struct {
	cfg     mcts.Config
	log     *slog.Logger
	alerter Alerter

	mu      sync.Mutex
	current *search
	cache   map[string]*mcts.Node // gameID -> previous turn's root
}

// New builds an Agent. alerter may be nil, in which case fallbacks are
// only logged, not pushed anywhere external.
func New(cfg mcts.Config, log *slog.Logger, alerter Alerter) *Agent {
	if log == nil {
		log = slog.Default()
	}
	return &Agent{
		cfg:     cfg,
		log:     log,
		alerter: alerter,
		cache:   make(map[string]*mcts.Node),
	}
}

// Think hands the snapshot to the background workers and returns
// immediately. The search runs until NextMove halts it.
func (a *Agent) Think(gameID string, snap game.Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current != nil {
		panic("agent: Think called while a search is already running")
	}

	ctx, halt := context.WithCancel(context.Background())
	s := &search{
		gameID: gameID,
		runID:  uuid.New().String(),
		snap:   snap,
		start:  time.Now(),
		halt:   halt,
		done:   make(chan struct{}),
	}
	a.current = s

	root := a.warmStartLocked(gameID, snap)
	go func() {
		defer close(s.done)
		if root == nil {
			s.root = mcts.Search(ctx, snap, a.cfg)
		} else {
			s.root = mcts.Continue(ctx, root, a.cfg)
		}
	}()
}

// NextMove halts the running search and returns the best move found:
// the root child with the most visits, or a uniformly random legal move
// (logged, and alerted if an alerter is wired) when not a single
// playout completed before the halt.
func (a *Agent) NextMove(ctx context.Context) geo.Move {
	a.mu.Lock()
	s := a.current
	a.current = nil
	a.mu.Unlock()
	if s == nil {
		panic("agent: NextMove called with no search running")
	}

	s.halt()
	<-s.done

	a.mu.Lock()
	a.cache[s.gameID] = s.root
	a.mu.Unlock()

	log := a.log.With("game_id", s.gameID, "run_id", s.runID)
	elapsed := time.Since(s.start)

	move, ok := mcts.BestMove(s.root)
	if !ok {
		move = randomLegalMove(&s.snap)
		log.Warn("search returned no expanded children, falling back to a random move",
			"elapsed", elapsed, "fallback_move", move.String())
		if a.alerter != nil {
			a.alerter.Alert(ctx, s.gameID, fmt.Sprintf("search empty after %s, chose random move %s", elapsed, move))
		}
		return move
	}

	log.Info("search complete", "elapsed", elapsed, "visits", s.root.Visits(), "move", move.String())
	return move
}

// Decide is the synchronous composition the HTTP handler uses: Think,
// wait out ctx's deadline, NextMove. A ctx that is already done before
// the search even starts is a missed deadline: no workers are spawned
// and a random legal move goes straight back.
func (a *Agent) Decide(ctx context.Context, gameID string, snap game.Snapshot) geo.Move {
	if ctx.Err() != nil {
		move := randomLegalMove(&snap)
		a.log.Warn("deadline elapsed before search started, falling back to a random move",
			"game_id", gameID, "fallback_move", move.String())
		if a.alerter != nil {
			a.alerter.Alert(ctx, gameID, fmt.Sprintf("deadline missed, chose random move %s", move))
		}
		return move
	}

	a.Think(gameID, snap)
	<-ctx.Done()
	return a.NextMove(ctx)
}

func randomLegalMove(snap *game.Snapshot) geo.Move {
	moves := snap.LegalMoves()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return moves[rng.Intn(len(moves))]
}

// warmStartLocked looks for a cached child node whose board hash
// matches snap's, meaning the opponents' actual moves landed on a
// subtree this agent already explored last turn. Returns nil on a cache
// miss, a stale entry, or no previous search at all. Caller holds a.mu.
func (a *Agent) warmStartLocked(gameID string, snap game.Snapshot) *mcts.Node {
	prevRoot, ok := a.cache[gameID]
	if !ok {
		return nil
	}

	target := snap.Hash()
	for _, child := range childrenOf(prevRoot) {
		if child.Snapshot.Hash() == target {
			child.Parent = nil
			return child
		}
	}
	return nil
}

func childrenOf(n *mcts.Node) []*mcts.Node {
	if n == nil {
		return nil
	}
	return n.Children()
}

// Forget drops a finished game's cache entry. Callers should invoke this
// from the end-of-game webhook so long-running processes don't
// accumulate one tree per game ever played.
func (a *Agent) Forget(gameID string) {
	a.mu.Lock()
	delete(a.cache, gameID)
	a.mu.Unlock()
}
