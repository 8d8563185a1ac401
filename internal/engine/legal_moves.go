package engine

import "github.com/lgbarn/chessboy-go/internal/chess"

// LegalMoves returns every legal move for the side to move.
// An empty result means checkmate if that side is in check, else stalemate.
func LegalMoves(state *GameState) []chess.Move {
	return state.Position.legalMoves()
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(state *GameState) bool {
	return state.Position.hasLegalMoves()
}

// pseudoLegalMoves generates moves that follow piece movement rules but
// may leave the mover's king in check.
func (p *Position) pseudoLegalMoves() []chess.Move {
	colour := p.SideToMove
	board := &p.Board
	moves := make([]chess.Move, 0, 48)

	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := board.Squares[sq]
		if piece == chess.Empty || chess.ExtractColour(piece) != colour {
			continue
		}

		switch chess.ExtractPiece(piece) {
		case chess.Pawn:
			moves = p.appendPawnMoves(moves, sq, colour)
		case chess.Knight:
			moves = appendStepMoves(moves, board, sq, colour, knightOffsets)
		case chess.Bishop:
			moves = appendSlidingMoves(moves, board, sq, colour, diagonalDirs)
		case chess.Rook:
			moves = appendSlidingMoves(moves, board, sq, colour, straightDirs)
		case chess.Queen:
			moves = appendSlidingMoves(moves, board, sq, colour, diagonalDirs)
			moves = appendSlidingMoves(moves, board, sq, colour, straightDirs)
		case chess.King:
			moves = appendStepMoves(moves, board, sq, colour, kingOffsets)
			moves = p.appendCastlingMoves(moves, sq, colour)
		}
	}
	return moves
}

// legalMoves filters the pseudo-legal moves down to the legal ones.
func (p *Position) legalMoves() []chess.Move {
	pseudo := p.pseudoLegalMoves()
	legal := pseudo[:0]
	for _, m := range pseudo {
		if p.isLegal(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// hasLegalMoves stops at the first legal move found.
func (p *Position) hasLegalMoves() bool {
	for _, m := range p.pseudoLegalMoves() {
		if p.isLegal(m) {
			return true
		}
	}
	return false
}

// isLegal checks a pseudo-legal move for king safety.
func (p *Position) isLegal(m chess.Move) bool {
	if m.Kind == chess.CastlingMove && !p.castlingSafe(m) {
		return false
	}
	return tryMove(&p.Board, m, p.SideToMove)
}

// tryMove makes a move on a copied board and checks if it leaves the king in check.
func tryMove(board *chess.Board, m chess.Move, colour chess.Colour) bool {
	testBoard := *board
	testBoard.Apply(m)
	return !kingAttacked(&testBoard, colour)
}
