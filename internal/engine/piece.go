package engine

import "github.com/lgbarn/chessboy-go/internal/chess"

// appendStepMoves adds single-step moves (knight or king) to squares that
// are empty or hold an enemy piece.
func appendStepMoves(moves []chess.Move, board *chess.Board, from chess.Square, colour chess.Colour, offsets [][2]int) []chess.Move {
	for _, o := range offsets {
		to := offset(from, o[0], o[1])
		if to != chess.NoSquare && board.DestinationIsEmptyOrEnemy(to, colour) {
			moves = append(moves, chess.NewRegularMove(from, to))
		}
	}
	return moves
}

// appendSlidingMoves ray-casts a bishop, rook or queen. A ray stops at the
// first occupied square, which is included only if it holds an enemy.
func appendSlidingMoves(moves []chess.Move, board *chess.Board, from chess.Square, colour chess.Colour, dirs [][2]int) []chess.Move {
	for _, dir := range dirs {
		for to := offset(from, dir[0], dir[1]); to != chess.NoSquare; to = offset(to, dir[0], dir[1]) {
			target := board.At(to)
			if target == chess.Empty {
				moves = append(moves, chess.NewRegularMove(from, to))
				continue
			}
			if chess.ExtractColour(target) != colour {
				moves = append(moves, chess.NewRegularMove(from, to))
			}
			break // Blocked
		}
	}
	return moves
}
