package engine

import "github.com/lgbarn/chessboy-go/internal/chess"

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Draw rules are ignored, as is usual for perft.
func Perft(state *GameState, depth int) uint64 {
	return perft(&state.Position, depth)
}

func perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := p.legalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		next, _ := p.advance(m)
		nodes += perft(&next, depth-1)
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by the move
// in long algebraic form.
func Divide(state *GameState, depth int) map[string]uint64 {
	counts := make(map[string]uint64)
	if depth <= 0 {
		return counts
	}
	for _, m := range state.Position.legalMoves() {
		next, _ := state.Position.advance(m)
		counts[m.String()] = perft(&next, depth-1)
	}
	return counts
}

// Child is the position one legal move below a root, so perft work can
// be split across goroutines.
type Child struct {
	Move chess.Move
	pos  Position
}

// Children lists the positions reachable in one legal move from state.
func Children(state *GameState) []Child {
	moves := state.Position.legalMoves()
	children := make([]Child, 0, len(moves))
	for _, m := range moves {
		next, _ := state.Position.advance(m)
		children = append(children, Child{Move: m, pos: next})
	}
	return children
}

// Perft counts the leaves depth plies below the child.
func (c Child) Perft(depth int) uint64 {
	return perft(&c.pos, depth)
}
