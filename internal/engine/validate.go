package engine

import (
	"github.com/lgbarn/chessboy-go/internal/chess"
	"github.com/lgbarn/chessboy-go/internal/errors"
)

// reject builds an IllegalMoveError for m.
func reject(m chess.Move, reason errors.MoveRejection, detail string) error {
	return &errors.IllegalMoveError{Move: m.String(), Reason: reason, Detail: detail}
}

// ValidateMove returns nil if m is legal in state, or an
// *errors.IllegalMoveError saying why it is not.
func ValidateMove(state *GameState, m chess.Move) error {
	if state.Outcome.Terminal() {
		return reject(m, errors.ReasonGameOver, state.Outcome.String())
	}
	if detail := checkShape(m); detail != "" {
		return reject(m, errors.ReasonMalformed, detail)
	}

	piece, ok := state.Board.PieceAt(m.From)
	if !ok {
		return reject(m, errors.ReasonNoPiece, m.From.String())
	}
	if chess.ExtractColour(piece) != state.SideToMove {
		return reject(m, errors.ReasonWrongSide, state.SideToMove.String()+" to move")
	}

	for _, legal := range state.Position.legalMoves() {
		if legal == m {
			return nil
		}
	}
	return state.Position.diagnose(m, piece)
}

// checkShape catches moves that are wrong regardless of the position.
func checkShape(m chess.Move) string {
	if !m.From.Valid() || !m.To.Valid() {
		return "square out of range"
	}
	if m.From == m.To {
		return "origin and destination are the same square"
	}
	switch m.Kind {
	case chess.RegularMove, chess.EnPassantMove, chess.CastlingMove:
		if m.Promotion != chess.Empty {
			return "promotion piece on a non-promotion move"
		}
	case chess.PromotionMove:
		if !chess.IsPromotionPiece(m.Promotion) {
			return "cannot promote to " + m.Promotion.String()
		}
	default:
		return "unknown move kind"
	}
	return ""
}

// diagnose explains why a well-formed move by the side to move is not in
// the legal set.
func (p *Position) diagnose(m chess.Move, piece chess.Piece) error {
	colour := p.SideToMove
	pieceType := chess.ExtractPiece(piece)

	for _, candidate := range p.pseudoLegalMoves() {
		if candidate == m {
			if m.Kind == chess.CastlingMove {
				return reject(m, errors.ReasonCastlingNotAllowed, "king is in check or crosses an attacked square")
			}
			return reject(m, errors.ReasonLeavesKingInCheck, "")
		}
		if candidate.From == m.From && candidate.To == m.To && candidate.Kind != m.Kind {
			return reject(m, errors.ReasonMalformed, "expected a "+candidate.Kind.String()+" move")
		}
	}

	switch m.Kind {
	case chess.CastlingMove:
		if pieceType != chess.King {
			return reject(m, errors.ReasonMalformed, "only the king castles")
		}
		if !p.Castling.Has(colour, m.IsKingSide()) {
			return reject(m, errors.ReasonCastlingNotAllowed, "castling right lost")
		}
		return reject(m, errors.ReasonCastlingNotAllowed, "path between king and rook is not clear")
	case chess.EnPassantMove:
		if pieceType != chess.Pawn {
			return reject(m, errors.ReasonMalformed, "only pawns capture en passant")
		}
		return reject(m, errors.ReasonUnreachable, "no en passant capture available")
	case chess.PromotionMove:
		if pieceType != chess.Pawn || !p.Board.IsBackRank(m.To) {
			return reject(m, errors.ReasonMalformed, "only a pawn reaching the back rank promotes")
		}
	case chess.RegularMove:
		if pieceType == chess.Pawn && p.Board.IsBackRank(m.To) {
			return reject(m, errors.ReasonMalformed, "pawn reaching the back rank must promote")
		}
	}

	if !p.Board.DestinationIsEmptyOrEnemy(m.To, colour) {
		return reject(m, errors.ReasonFriendlyDestination, m.To.String())
	}

	if pieceType == chess.Pawn {
		dir := chess.ColourOffset(colour)
		if m.From.File() == m.To.File() && (m.To.Row()-m.From.Row())*dir > 0 {
			for sq := offset(m.From, 0, dir); sq != chess.NoSquare; sq = offset(sq, 0, dir) {
				if !p.Board.SquareEmpty(sq) {
					return reject(m, errors.ReasonBlockedPath, sq.String()+" is occupied")
				}
				if sq == m.To {
					break
				}
			}
		}
		return reject(m, errors.ReasonUnreachable, "pawn cannot reach "+m.To.String())
	}

	if fitsGeometry(pieceType, m.From, m.To) && pieceType != chess.Knight && !isPathClear(&p.Board, m.From, m.To) {
		return reject(m, errors.ReasonBlockedPath, "")
	}
	return reject(m, errors.ReasonUnreachable, pieceType.String()+" cannot reach "+m.To.String())
}
