// Joint-move search is an alternate tree strategy: instead of expanding
// one player's move per edge and sampling the rest, every edge is a
// full joint-action tuple (one move per alive snake). This is the
// branching-factor-4^N
// variant the default single-player Search avoids; it is kept here for
// side-by-side comparison on small snake counts, not as the agent's
// default.
package mcts

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/brensch/slitherbrain/internal/eval"
	"github.com/brensch/slitherbrain/internal/game"
	"github.com/brensch/slitherbrain/internal/geo"
)

// JointMove is one joint action: a move per snake id, unused entries for
// dead snakes ignored.
type JointMove []geo.Move

// JointNode is a node in the joint-action tree.
type JointNode struct {
	Action JointMove
	Parent *JointNode

	mu              sync.Mutex
	children        []*JointNode
	unexpandedMoves []JointMove
	Snapshot        game.Snapshot

	visits     int64
	rewardBits uint64
}

func newJointNode(parent *JointNode, action JointMove, snap game.Snapshot) *JointNode {
	n := &JointNode{Parent: parent, Action: action, Snapshot: snap}
	n.unexpandedMoves = jointActions(&snap)
	return n
}

// jointActions enumerates the cross product of every alive snake's
// legal moves. Kept small by construction: real games rarely have more
// than 3-4 snakes alive at once, and each has at most 4 legal moves.
func jointActions(s *game.Snapshot) []JointMove {
	b := &s.Board
	perSnake := make([][]geo.Move, len(b.Snakes))
	aliveIDs := make([]int, 0, len(b.Snakes))
	for id := range b.Snakes {
		if b.Snakes[id].IsDead() {
			continue
		}
		perSnake[id] = b.LegalMoves(id)
		if len(perSnake[id]) == 0 {
			perSnake[id] = []geo.Move{geo.Up}
		}
		aliveIDs = append(aliveIDs, id)
	}

	actions := []JointMove{make(JointMove, len(b.Snakes))}
	for _, id := range aliveIDs {
		var next []JointMove
		for _, partial := range actions {
			for _, m := range perSnake[id] {
				a := append(JointMove(nil), partial...)
				a[id] = m
				next = append(next, a)
			}
		}
		actions = next
	}
	return actions
}

func (n *JointNode) Visits() int64 { return atomic.LoadInt64(&n.visits) }

func (n *JointNode) addReward(delta float64) {
	for {
		old := atomic.LoadUint64(&n.rewardBits)
		newVal := math.Float64frombits(old) + delta
		if atomic.CompareAndSwapUint64(&n.rewardBits, old, math.Float64bits(newVal)) {
			return
		}
	}
}

func (n *JointNode) totalReward() float64 {
	return math.Float64frombits(atomic.LoadUint64(&n.rewardBits))
}

// SearchJoint runs the joint-action tree variant from root on behalf of
// player, returning the root node once ctx is done.
func SearchJoint(ctx context.Context, root game.Snapshot, player int, cfg Config) *JointNode {
	rootNode := newJointNode(nil, nil, root)
	n := cfg.numWorkers()
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		seed := cfg.Seed + int64(i) + 1
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			jointWorker(ctx, rootNode, player, cfg, rng)
		}(seed)
	}
	wg.Wait()
	return rootNode
}

func jointWorker(ctx context.Context, root *JointNode, player int, cfg Config, rng *rand.Rand) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		leaf, path := selectJoint(root, cfg)
		if leaf.Snapshot.IsTerminal() {
			score := eval.Scalar(eval.Evaluate(&leaf.Snapshot.Board), player)
			backpropagateJoint(path, score)
			continue
		}

		child := expandJoint(leaf, rng)
		score := eval.Scalar(eval.Evaluate(&child.Snapshot.Board), player)
		if child != leaf {
			path = append(path, child)
		}
		backpropagateJoint(path, score)
	}
}

func selectJoint(root *JointNode, cfg Config) (*JointNode, []*JointNode) {
	path := []*JointNode{root}
	current := root

	for {
		if current.Snapshot.IsTerminal() {
			return current, path
		}

		current.mu.Lock()
		hasUnexpanded := len(current.unexpandedMoves) > 0
		childCount := len(current.children)
		children := append([]*JointNode(nil), current.children...)
		current.mu.Unlock()

		if hasUnexpanded || childCount == 0 {
			return current, path
		}

		best := children[0]
		bestScore := ucb1Joint(best, current.Visits(), cfg.explorationConstant())
		for _, ch := range children[1:] {
			s := ucb1Joint(ch, current.Visits(), cfg.explorationConstant())
			if s > bestScore {
				best, bestScore = ch, s
			}
		}

		current = best
		path = append(path, current)
	}
}

func ucb1Joint(child *JointNode, parentVisits int64, c float64) float64 {
	v := child.Visits()
	if v == 0 {
		return math.Inf(1)
	}
	exploit := child.totalReward() / float64(v)
	explore := c * math.Sqrt(math.Log(float64(parentVisits))/float64(v))
	return exploit + explore
}

func expandJoint(leaf *JointNode, rng *rand.Rand) *JointNode {
	leaf.mu.Lock()
	if len(leaf.unexpandedMoves) == 0 {
		leaf.mu.Unlock()
		return leaf
	}
	i := rng.Intn(len(leaf.unexpandedMoves))
	action := leaf.unexpandedMoves[i]
	leaf.unexpandedMoves = append(leaf.unexpandedMoves[:i], leaf.unexpandedMoves[i+1:]...)
	leaf.mu.Unlock()

	board := leaf.Snapshot.Board.Clone()
	board.Step(action, true, rng)
	childSnap := game.Snapshot{Board: board, CurrentPlayer: leaf.Snapshot.CurrentPlayer}
	child := newJointNode(leaf, action, childSnap)

	leaf.mu.Lock()
	leaf.children = append(leaf.children, child)
	leaf.mu.Unlock()

	return child
}

func backpropagateJoint(path []*JointNode, score float64) {
	for _, n := range path {
		atomic.AddInt64(&n.visits, 1)
		n.addReward(score)
	}
}

// BestJointMove returns the move player took in the root's most-visited
// child action, mirroring BestMove for the single-player tree.
func BestJointMove(root *JointNode, player int) (geo.Move, bool) {
	root.mu.Lock()
	children := append([]*JointNode(nil), root.children...)
	root.mu.Unlock()

	if len(children) == 0 {
		return 0, false
	}

	best := children[0]
	for _, ch := range children[1:] {
		if ch.Visits() > best.Visits() {
			best = ch
		}
	}
	return best.Action[player], true
}
