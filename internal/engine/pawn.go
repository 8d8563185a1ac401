package engine

import "github.com/lgbarn/chessboy-go/internal/chess"

// promotionPieces lists the pieces a pawn may become, strongest first.
var promotionPieces = []chess.Piece{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// appendPawnMoves adds the pseudo-legal moves of the pawn on from.
func (p *Position) appendPawnMoves(moves []chess.Move, from chess.Square, colour chess.Colour) []chess.Move {
	board := &p.Board
	dir := chess.ColourOffset(colour)

	// Forward moves
	one := offset(from, 0, dir)
	if one != chess.NoSquare && board.SquareEmpty(one) {
		moves = appendPawnAdvance(moves, board, from, one)

		// Double push from starting rank
		if from.Rank() == chess.PawnRank(colour) {
			two := offset(from, 0, 2*dir)
			if board.SquareEmpty(two) {
				moves = append(moves, chess.NewRegularMove(from, two))
			}
		}
	}

	// Captures
	for _, dc := range []int{-1, 1} {
		to := offset(from, dc, dir)
		if to == chess.NoSquare {
			continue
		}
		if board.DestinationHasEnemy(to, colour) {
			moves = appendPawnAdvance(moves, board, from, to)
		} else if to == p.EnPassant && p.enPassantVictim(from, to, colour) {
			moves = append(moves, chess.NewEnPassant(from, to))
		}
	}
	return moves
}

// appendPawnAdvance adds a pawn move, expanded into the four promotions
// when it lands on the back rank.
func appendPawnAdvance(moves []chess.Move, board *chess.Board, from, to chess.Square) []chess.Move {
	if !board.IsBackRank(to) {
		return append(moves, chess.NewRegularMove(from, to))
	}
	for _, piece := range promotionPieces {
		moves = append(moves, chess.NewPromotion(from, to, piece))
	}
	return moves
}

// enPassantVictim reports whether an enemy pawn stands where an en passant
// capture from -> to would take it.
func (p *Position) enPassantVictim(from, to chess.Square, colour chess.Colour) bool {
	captured := chess.NewEnPassant(from, to).CapturedSquare()
	return p.Board.At(captured) == chess.MakeColouredPiece(colour.Opposite(), chess.Pawn)
}
