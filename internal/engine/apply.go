package engine

import (
	"github.com/lgbarn/chessboy-go/internal/chess"
	"github.com/lgbarn/chessboy-go/internal/errors"
)

// ApplyMove validates m against state and returns the state after it.
// state itself is never modified: on error the returned state is state.
func ApplyMove(state *GameState, m chess.Move) (*GameState, error) {
	if err := ValidateMove(state, m); err != nil {
		return state, err
	}
	return state.play(m), nil
}

// Undo takes back the last applied move, restoring the board, castling
// rights, en passant target, clocks and outcome exactly. With no history
// it returns state unchanged and an *errors.UndoError.
func Undo(state *GameState) (*GameState, error) {
	n := len(state.plies)
	if n == 0 {
		return state, &errors.UndoError{}
	}
	last := state.plies[n-1]

	prev := &GameState{
		Position: state.Position,
		Outcome:  last.outcome,
		plies:    state.plies[: n-1 : n-1],
		keys:     state.keys[:n:n],
	}
	prev.Position.unapply(last)
	return prev, nil
}

// play advances state by a move already known to be legal.
func (s *GameState) play(m chess.Move) *GameState {
	pos, record := s.Position.advance(m)
	record.outcome = s.Outcome

	n := len(s.plies)
	next := &GameState{
		Position: pos,
		plies:    append(s.plies[:n:n], record),
		keys:     append(s.keys[:n+1:n+1], pos.key()),
	}
	next.Outcome = evaluateOutcome(next)
	return next
}

// advance returns the position after m together with the record needed
// to take it back. Legality is not checked.
func (p Position) advance(m chess.Move) (Position, ply) {
	record := ply{
		move:           m,
		moved:          p.Board.At(m.From),
		castling:       p.Castling,
		enPassant:      p.EnPassant,
		halfmoveClock:  p.HalfmoveClock,
		fullmoveNumber: p.FullmoveNumber,
	}
	switch m.Kind {
	case chess.EnPassantMove:
		record.captured = p.Board.At(m.CapturedSquare())
	case chess.CastlingMove:
		record.captured = chess.Empty
	default:
		record.captured = p.Board.At(m.To)
	}

	mover := p.SideToMove
	next := p
	next.Board.Apply(m)

	next.Castling.touch(m.From)
	next.Castling.touch(m.To)

	next.EnPassant = chess.NoSquare
	isPawn := chess.ExtractPiece(record.moved) == chess.Pawn
	if isPawn && abs(m.To.Row()-m.From.Row()) == 2 {
		next.EnPassant = offset(m.From, 0, chess.ColourOffset(mover))
	}

	if isPawn || record.captured != chess.Empty {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}
	if mover == chess.Black {
		next.FullmoveNumber++
	}
	next.SideToMove = mover.Opposite()

	return next, record
}

// unapply reverses advance using the recorded ply.
func (p *Position) unapply(record ply) {
	board := &p.Board
	m := record.move

	switch m.Kind {
	case chess.RegularMove, chess.PromotionMove:
		board.Put(m.From, record.moved)
		board.Put(m.To, record.captured)
	case chess.EnPassantMove:
		board.Put(m.From, record.moved)
		board.Put(m.To, chess.Empty)
		board.Put(m.CapturedSquare(), record.captured)
	case chess.CastlingMove:
		rookFrom, rookTo := m.CastlingRookSquares()
		rook := board.At(rookTo)
		board.Put(rookTo, chess.Empty)
		board.Put(m.To, chess.Empty)
		board.Put(rookFrom, rook)
		board.Put(m.From, record.moved)
	}

	p.SideToMove = p.SideToMove.Opposite()
	p.Castling = record.castling
	p.EnPassant = record.enPassant
	p.HalfmoveClock = record.halfmoveClock
	p.FullmoveNumber = record.fullmoveNumber
}
