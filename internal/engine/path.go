package engine

import "github.com/lgbarn/chessboy-go/internal/chess"

// fitsGeometry reports whether a piece type could travel from one square
// to another on an empty board. Pawns and castling are handled elsewhere.
func fitsGeometry(pieceType chess.Piece, from, to chess.Square) bool {
	colDiff := abs(to.File() - from.File())
	rankDiff := abs(to.Row() - from.Row())
	if colDiff == 0 && rankDiff == 0 {
		return false
	}

	switch pieceType {
	case chess.Knight:
		return (colDiff == 1 && rankDiff == 2) || (colDiff == 2 && rankDiff == 1)
	case chess.Bishop:
		return colDiff == rankDiff
	case chess.Rook:
		return colDiff == 0 || rankDiff == 0
	case chess.Queen:
		return colDiff == rankDiff || colDiff == 0 || rankDiff == 0
	case chess.King:
		return colDiff <= 1 && rankDiff <= 1
	}
	return false
}

// isPathClear checks every square strictly between from and to along a
// straight or diagonal line is empty.
func isPathClear(board *chess.Board, from, to chess.Square) bool {
	colDir := sign(to.File() - from.File())
	rankDir := sign(to.Row() - from.Row())

	for sq := offset(from, colDir, rankDir); sq != to && sq != chess.NoSquare; sq = offset(sq, colDir, rankDir) {
		if !board.SquareEmpty(sq) {
			return false
		}
	}
	return true
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
