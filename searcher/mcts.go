package searcher

import (
	"golang.org/x/exp/rand"

	"github.com/eitancoronel/AI-Rummikub/game"
)

// Default search budget.
const (
	DefaultEpisodes        = 50
	DefaultRolloutsPerNode = 8
	DefaultRolloutDepth    = 5
)

type Option func(*MCTS)

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithRolloutsPerNode(rollouts int) Option {
	return func(m *MCTS) {
		if rollouts > 0 {
			m.rolloutsPerNode = rollouts
		}
	}
}

func WithRolloutDepth(plies int) Option {
	return func(m *MCTS) {
		if plies > 0 {
			m.rolloutDepth = plies
		}
	}
}

func WithCollector(c Collector) Option {
	return func(m *MCTS) {
		if c != nil {
			m.metrics = c
		}
	}
}

// MCTS owns a search tree for one seat across one game. The tree persists
// between turns: when FindMove is handed the exact state its previous pick
// produced, the retained child is promoted to root instead of searching
// from scratch.
type MCTS struct {
	episodes        int
	rolloutsPerNode int
	rolloutDepth    int

	sim     simulator
	metrics Collector

	nodes []node
	root  int // index into nodes, -1 when no tree exists
}

// New builds a searcher. own plays the searched seat during rollouts and
// opp the hidden opponent; both must have the opening-meld gate already
// satisfied.
func New(rng *rand.Rand, own, opp Policy, options ...Option) *MCTS {
	m := &MCTS{
		episodes:        DefaultEpisodes,
		rolloutsPerNode: DefaultRolloutsPerNode,
		rolloutDepth:    DefaultRolloutDepth,
		sim:             simulator{rng: rng, own: own, opp: opp},
		metrics:         NewNoCollector(),
		root:            -1,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Reset drops the retained tree, for reuse across games.
func (m *MCTS) Reset() {
	m.nodes = m.nodes[:0]
	m.root = -1
}

// Metrics returns the stats of the most recent FindMove call.
func (m *MCTS) Metrics() SearchMetrics {
	return m.metrics.Complete()
}

// FindMove runs the simulation budget from the given state and returns the
// best child's move by average value (UCB1 with the exploration term
// dropped). ok is false when no legal move exists.
func (m *MCTS) FindMove(board game.Board, hand game.Hand) (game.Move, bool) {
	m.metrics.Start()
	m.findRoot(board, hand)

	for i := 0; i < m.episodes; i++ {
		m.simulate()
		m.metrics.AddEpisode()
	}

	root := &m.nodes[m.root]
	if len(root.children) == 0 {
		return game.Move{}, false
	}

	best := m.bestChild(m.root, 0)
	m.root = best // retain for next turn
	m.nodes[best].parent = -1
	return m.nodes[best].move, true
}

// findRoot reuses the retained subtree when it matches the observed state,
// otherwise rebuilds the tree from scratch.
func (m *MCTS) findRoot(board game.Board, hand game.Hand) {
	if m.root >= 0 {
		r := &m.nodes[m.root]
		if game.Signature(r.board, r.hand) == game.Signature(board, hand) {
			m.metrics.SetTreeReused(true)
			return
		}
	}
	m.nodes = m.nodes[:0]
	m.nodes = append(m.nodes, newNode(board.Clone(), hand.Clone(), game.Move{}, -1))
	m.root = 0
	m.metrics.SetTreeReused(false)
}

// simulate runs one episode: select down the tree, expand one child, score
// it with nested rollouts and back the reward up to the root.
func (m *MCTS) simulate() {
	idx := m.root
	for !m.nodes[idx].terminal() && m.nodes[idx].fullyExpanded() {
		idx = m.bestChild(idx, explorationConstant(len(m.nodes[idx].hand)))
	}

	if !m.nodes[idx].terminal() {
		child, ok := m.expand(idx)
		if !ok {
			return // pruned: the episode carries no statistics
		}
		idx = child
	}

	reward := 0.0
	for i := 0; i < m.rolloutsPerNode; i++ {
		r, full := m.sim.rollout(m.nodes[idx].board, m.nodes[idx].hand, m.rolloutDepth)
		reward += r
		m.metrics.AddRollout()
		if full {
			m.metrics.AddFullPlayout()
		}
	}
	m.backup(idx, reward, m.rolloutsPerNode)
}

// expand pops one untried move and attaches the resulting child, unless the
// dead-hand heuristic rejects it: a hand left with fewer than two potential
// future melds is not worth a subtree.
func (m *MCTS) expand(idx int) (int, bool) {
	n := &m.nodes[idx]
	move := n.untried[len(n.untried)-1]
	n.untried = n.untried[:len(n.untried)-1]

	if len(move.Hand) > 0 && game.PotentialMelds(move.Hand) < 2 {
		m.metrics.AddPruned()
		return 0, false
	}

	child := len(m.nodes)
	m.nodes = append(m.nodes, newNode(move.Board, move.Hand, move, idx))
	m.nodes[idx].children = append(m.nodes[idx].children, child)
	return child, true
}

func (m *MCTS) bestChild(idx int, c float64) int {
	n := &m.nodes[idx]
	bestIdx := n.children[0]
	bestScore := ucb1(m.nodes[bestIdx].value, m.nodes[bestIdx].visits, n.visits, c)
	for _, child := range n.children[1:] {
		score := ucb1(m.nodes[child].value, m.nodes[child].visits, n.visits, c)
		if score > bestScore {
			bestScore = score
			bestIdx = child
		}
	}
	return bestIdx
}

// backup accumulates the rollout batch at the node and every ancestor.
func (m *MCTS) backup(idx int, reward float64, simulations int) {
	for idx >= 0 {
		m.nodes[idx].visits += simulations
		m.nodes[idx].value += reward
		idx = m.nodes[idx].parent
	}
}
