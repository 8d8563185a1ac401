package bridge

import (
	"context"
	"fmt"

	"github.com/notnil/chess"

	cb "github.com/lgbarn/chessboy-go/internal/chess"
	"github.com/lgbarn/chessboy-go/internal/engine"
	"github.com/lgbarn/chessboy-go/internal/errors"
)

// BuiltinName is the engine name of BuiltinEngine.
const BuiltinName = "builtin"

// Search scores in centipawns.
const (
	mateScore = 100000
	infinity  = mateScore * 2
)

var pieceValues = map[chess.PieceType]int{
	chess.Pawn:   100,
	chess.Knight: 320,
	chess.Bishop: 330,
	chess.Rook:   500,
	chess.Queen:  900,
}

// BuiltinEngine is an in-process engine: a fixed-depth negamax over
// material, running on the notnil/chess move generator. It needs no
// external program and is deterministic.
type BuiltinEngine struct {
	level int
}

// NewBuiltinEngine creates a builtin engine with a default level.
func NewBuiltinEngine(level int) *BuiltinEngine {
	return &BuiltinEngine{level: ClampLevel(level)}
}

// ID returns the engine identity, e.g. "builtin-level=5".
func (b *BuiltinEngine) ID() string {
	return EngineID(BuiltinName, b.level)
}

// Init does nothing; the engine is always ready.
func (b *BuiltinEngine) Init(ctx context.Context) error {
	return nil
}

// Quit does nothing.
func (b *BuiltinEngine) Quit() error {
	return nil
}

// searchDepth maps a level to a search depth in plies.
func searchDepth(level int) int {
	switch {
	case level <= 2:
		return 1
	case level <= 5:
		return 2
	default:
		return 3
	}
}

// BestMove searches the position and returns the best scoring move.
// Ties go to the first move generated.
func (b *BuiltinEngine) BestMove(ctx context.Context, fen string, level int) (engine.EncodedMove, bool, error) {
	if level <= 0 {
		level = b.level
	}
	depth := searchDepth(ClampLevel(level))

	opt, err := chess.FEN(fen)
	if err != nil {
		return engine.EncodedMove{}, false, &errors.EngineError{Engine: b.ID(), Op: "bestmove", Err: err}
	}
	pos := chess.NewGame(opt).Position()

	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return engine.EncodedMove{}, false, nil
	}

	var best *chess.Move
	bestScore := -infinity
	for _, m := range moves {
		if err := ctx.Err(); err != nil {
			return engine.EncodedMove{}, false, &errors.EngineError{Engine: b.ID(), Op: "bestmove", Err: err}
		}
		score := -negamax(pos.Update(m), depth-1, -infinity, -bestScore)
		if best == nil || score > bestScore {
			best, bestScore = m, score
		}
	}
	return encodeNotnilMove(best), true, nil
}

// negamax returns the score of pos for the side to move.
func negamax(pos *chess.Position, depth, alpha, beta int) int {
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		if pos.Status() == chess.Checkmate {
			// Prefer quicker mates.
			return -mateScore - depth
		}
		return 0
	}
	if depth <= 0 {
		return material(pos)
	}
	for _, m := range moves {
		score := -negamax(pos.Update(m), depth-1, -beta, -alpha)
		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// material counts piece values from the side to move's view.
func material(pos *chess.Position) int {
	score := 0
	for _, piece := range pos.Board().SquareMap() {
		value := pieceValues[piece.Type()]
		if piece.Color() == pos.Turn() {
			score += value
		} else {
			score -= value
		}
	}
	return score
}

// encodeNotnilMove converts a notnil/chess move to the exchange form,
// reading castling and en passant from the move's tags.
func encodeNotnilMove(m *chess.Move) engine.EncodedMove {
	em := engine.EncodedMove{From: int(m.S1()), To: int(m.S2())}
	switch {
	case m.Promo() != chess.NoPieceType:
		em.Flag = engine.FlagPromotion
		em.Promotion = promotionPiece(m.Promo())
	case m.HasTag(chess.EnPassant):
		em.Flag = engine.FlagEnPassant
	case m.HasTag(chess.KingSideCastle):
		em.Flag = engine.FlagCastleKingSide
	case m.HasTag(chess.QueenSideCastle):
		em.Flag = engine.FlagCastleQueenSide
	}
	return em
}

// promotionPiece maps a notnil/chess piece type to ours.
func promotionPiece(pt chess.PieceType) cb.Piece {
	switch pt {
	case chess.Queen:
		return cb.Queen
	case chess.Rook:
		return cb.Rook
	case chess.Bishop:
		return cb.Bishop
	case chess.Knight:
		return cb.Knight
	}
	panic(fmt.Sprintf("unexpected promotion piece %v", pt))
}
