package engine

import "github.com/lgbarn/chessboy-go/internal/chess"

var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// offset returns the square reached from sq by moving dc files and dr
// ranks, or NoSquare if that leaves the board.
func offset(sq chess.Square, dc, dr int) chess.Square {
	return chess.NewSquare(chess.Col(int(sq.Col())+dc), chess.Rank(int(sq.Rank())+dr))
}

// IsInCheck returns true if the given side's king is attacked.
func IsInCheck(state *GameState, side chess.Colour) bool {
	return kingAttacked(&state.Board, side)
}

// kingAttacked returns true if colour's king is attacked on board.
// A board without that king is never in check.
func kingAttacked(board *chess.Board, colour chess.Colour) bool {
	sq, ok := board.KingSquare(colour)
	if !ok {
		return false
	}
	return IsSquareAttacked(board, sq, colour.Opposite())
}

// IsSquareAttacked returns true if the square is attacked by the given colour.
// Each piece's movement is run in reverse from the target square; pawns
// attack only along their capture diagonals.
func IsSquareAttacked(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	// Check pawn attacks
	pawn := chess.MakeColouredPiece(byColour, chess.Pawn)
	pawnDir := -chess.ColourOffset(byColour)
	for _, dc := range []int{-1, 1} {
		if board.At(offset(sq, dc, pawnDir)) == pawn {
			return true
		}
	}

	// Check knight attacks
	knight := chess.MakeColouredPiece(byColour, chess.Knight)
	for _, move := range knightOffsets {
		if board.At(offset(sq, move[0], move[1])) == knight {
			return true
		}
	}

	// Check king attacks
	king := chess.MakeColouredPiece(byColour, chess.King)
	for _, move := range kingOffsets {
		if board.At(offset(sq, move[0], move[1])) == king {
			return true
		}
	}

	// Sliding pieces along diagonals and straight lines
	queen := chess.MakeColouredPiece(byColour, chess.Queen)
	bishop := chess.MakeColouredPiece(byColour, chess.Bishop)
	rook := chess.MakeColouredPiece(byColour, chess.Rook)
	if rayHits(board, sq, diagonalDirs, bishop, queen) {
		return true
	}
	return rayHits(board, sq, straightDirs, rook, queen)
}

// rayHits casts rays from sq and reports whether the first piece met on
// any of them is one of the two attackers.
func rayHits(board *chess.Board, sq chess.Square, dirs [][2]int, attacker, queen chess.Piece) bool {
	for _, dir := range dirs {
		for to := offset(sq, dir[0], dir[1]); to != chess.NoSquare; to = offset(to, dir[0], dir[1]) {
			piece := board.At(to)
			if piece == chess.Empty {
				continue
			}
			if piece == attacker || piece == queen {
				return true
			}
			break // Blocked
		}
	}
	return false
}
