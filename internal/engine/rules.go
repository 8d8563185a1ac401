// Package engine provides chess move generation, validation and game state.
package engine

import (
	"github.com/lgbarn/chessboy-go/internal/chess"
)

// drawReason returns the first draw rule the state satisfies, checked in
// the order fifty-move, insufficient material, repetition.
func drawReason(s *GameState) DrawReason {
	if s.HalfmoveClock >= FiftyMoveLimit {
		return FiftyMove
	}
	if HasInsufficientMaterial(&s.Board) {
		return InsufficientMaterial
	}
	if s.RepetitionCount() >= RepetitionLimit {
		return Repetition
	}
	return NoDraw
}

// HasInsufficientMaterial reports whether neither side can mate: bare
// kings, a lone bishop or knight against a bare king, or a bishop each
// with both bishops on squares of the same colour.
func HasInsufficientMaterial(board *chess.Board) bool {
	type material struct {
		minors  int
		bishops int
		light   bool // Square colour of the last bishop seen
	}
	var sides [2]material

	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece, ok := board.PieceAt(sq)
		if !ok {
			continue
		}
		m := &sides[chess.ExtractColour(piece)]
		switch chess.ExtractPiece(piece) {
		case chess.King:
		case chess.Knight:
			m.minors++
		case chess.Bishop:
			m.minors++
			m.bishops++
			m.light = sq.IsLight()
		default:
			return false
		}
	}

	white, black := sides[chess.White], sides[chess.Black]
	if white.minors+black.minors <= 1 {
		return true
	}
	if white.minors == 1 && black.minors == 1 && white.bishops == 1 && black.bishops == 1 {
		return white.light == black.light
	}
	return false
}
