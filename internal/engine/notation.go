package engine

import (
	"github.com/lgbarn/chessboy-go/internal/chess"
	"github.com/lgbarn/chessboy-go/internal/errors"
)

// ParseLongAlgebraic reads a move such as "e2e4" or "e7e8q" without
// looking at a board. Everything except a promotion comes back as a
// RegularMove; ResolveUCI fixes up the kind against a position.
func ParseLongAlgebraic(text string) (chess.Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return chess.Move{}, &errors.IllegalMoveError{Move: text, Reason: errors.ReasonMalformed, Detail: "expected 4 or 5 characters"}
	}
	from, okFrom := chess.ParseSquare(text[0:2])
	to, okTo := chess.ParseSquare(text[2:4])
	if !okFrom || !okTo {
		return chess.Move{}, &errors.IllegalMoveError{Move: text, Reason: errors.ReasonMalformed, Detail: "invalid square"}
	}
	if len(text) == 5 {
		piece := chess.PieceFromLetter(text[4])
		if !chess.IsPromotionPiece(piece) {
			return chess.Move{}, &errors.IllegalMoveError{Move: text, Reason: errors.ReasonMalformed, Detail: "invalid promotion piece"}
		}
		return chess.NewPromotion(from, to, piece), nil
	}
	return chess.NewRegularMove(from, to), nil
}

// ResolveUCI turns a long algebraic move into the legal move it names in
// state, deciding castling and en passant from the position. A move that
// matches nothing legal is reported with the validator's reason.
func ResolveUCI(state *GameState, text string) (chess.Move, error) {
	parsed, err := ParseLongAlgebraic(text)
	if err != nil {
		return chess.Move{}, err
	}
	for _, m := range state.Position.legalMoves() {
		if m.From == parsed.From && m.To == parsed.To && m.Promotion == parsed.Promotion {
			return m, nil
		}
	}

	// Give the validator the most plausible shape so its reason is useful.
	guess := parsed
	if piece, ok := state.Board.PieceAt(parsed.From); ok && parsed.Kind == chess.RegularMove {
		switch {
		case chess.ExtractPiece(piece) == chess.King && abs(parsed.To.File()-parsed.From.File()) == 2:
			guess = chess.NewCastling(parsed.From, parsed.To)
		case chess.ExtractPiece(piece) == chess.Pawn && parsed.To == state.EnPassant:
			guess = chess.NewEnPassant(parsed.From, parsed.To)
		}
	}
	if err := ValidateMove(state, guess); err != nil {
		return chess.Move{}, err
	}
	return guess, nil
}
