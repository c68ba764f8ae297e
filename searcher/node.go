package searcher

import "github.com/eitancoronel/AI-Rummikub/game"

// node is one searchable state. Nodes live in the MCTS arena slice and
// reference each other by index; parent is -1 at the root.
type node struct {
	board game.Board
	hand  game.Hand
	move  game.Move // the move that produced this state; zero at the root

	parent   int
	children []int
	untried  []game.Move

	visits int
	value  float64
}

func (n *node) fullyExpanded() bool {
	return len(n.untried) == 0
}

// terminal nodes end selection: the hand emptied (a won game) or the node
// is a dead end with nothing tried and nothing left to try.
func (n *node) terminal() bool {
	return len(n.hand) == 0 || (len(n.untried) == 0 && len(n.children) == 0)
}

func newNode(board game.Board, hand game.Hand, move game.Move, parent int) node {
	return node{
		board:   board,
		hand:    hand,
		move:    move,
		parent:  parent,
		untried: game.Moves(board, hand),
	}
}
