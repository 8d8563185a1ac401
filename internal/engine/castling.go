package engine

import "github.com/lgbarn/chessboy-go/internal/chess"

// castlingMove returns the king move for castling on the given side.
func castlingMove(colour chess.Colour, kingSide bool) chess.Move {
	rank := chess.HomeRank(colour)
	to := chess.NewSquare('c', rank)
	if kingSide {
		to = chess.NewSquare('g', rank)
	}
	return chess.NewCastling(chess.NewSquare('e', rank), to)
}

// appendCastlingMoves adds castling candidates for a king on from: the
// right is held, the rook is on its corner and the squares between are
// empty. Attack checks are left to castlingSafe.
func (p *Position) appendCastlingMoves(moves []chess.Move, from chess.Square, colour chess.Colour) []chess.Move {
	if from != chess.NewSquare('e', chess.HomeRank(colour)) {
		return moves
	}
	for _, kingSide := range []bool{true, false} {
		if !p.Castling.Has(colour, kingSide) {
			continue
		}
		m := castlingMove(colour, kingSide)
		if p.castlingPathClear(m, colour) {
			moves = append(moves, m)
		}
	}
	return moves
}

// castlingPathClear checks the rook is in place and every square strictly
// between king and rook is empty.
func (p *Position) castlingPathClear(m chess.Move, colour chess.Colour) bool {
	rookFrom, _ := m.CastlingRookSquares()
	if p.Board.At(rookFrom) != chess.MakeColouredPiece(colour, chess.Rook) {
		return false
	}
	step := sign(rookFrom.File() - m.From.File())
	for sq := offset(m.From, step, 0); sq != rookFrom; sq = offset(sq, step, 0) {
		if !p.Board.SquareEmpty(sq) {
			return false
		}
	}
	return true
}

// castlingSafe checks the king is not in check and neither the square it
// crosses nor its destination is attacked.
func (p *Position) castlingSafe(m chess.Move) bool {
	enemy := p.SideToMove.Opposite()
	step := sign(m.To.File() - m.From.File())
	for sq := m.From; ; sq = offset(sq, step, 0) {
		if IsSquareAttacked(&p.Board, sq, enemy) {
			return false
		}
		if sq == m.To {
			return true
		}
	}
}
