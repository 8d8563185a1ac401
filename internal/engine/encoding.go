package engine

import (
	"encoding/json"
	"fmt"

	"github.com/lgbarn/chessboy-go/internal/chess"
	"github.com/lgbarn/chessboy-go/internal/errors"
)

// MoveFlag tells the receiver of an encoded move which move shape it is.
type MoveFlag uint8

const (
	FlagNone MoveFlag = iota
	FlagPromotion
	FlagEnPassant
	FlagCastleKingSide
	FlagCastleQueenSide
)

var flagNames = []string{"none", "promotion", "enPassant", "castleKingSide", "castleQueenSide"}

// String returns the wire name of the flag.
func (f MoveFlag) String() string {
	if int(f) < len(flagNames) {
		return flagNames[f]
	}
	return fmt.Sprintf("MoveFlag(%d)", uint8(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f MoveFlag) MarshalText() ([]byte, error) {
	if int(f) >= len(flagNames) {
		return nil, fmt.Errorf("unknown move flag %d", uint8(f))
	}
	return []byte(flagNames[f]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *MoveFlag) UnmarshalText(text []byte) error {
	for i, name := range flagNames {
		if name == string(text) {
			*f = MoveFlag(i)
			return nil
		}
	}
	return fmt.Errorf("unknown move flag %q", text)
}

// EncodedMove is the move form exchanged with engines and remote peers:
// origin and destination as 0-63 square indices plus a flag. Promotion is
// only set with FlagPromotion.
type EncodedMove struct {
	From      int
	To        int
	Flag      MoveFlag
	Promotion chess.Piece
}

// encodedMoveJSON is the wire layout of an EncodedMove.
type encodedMoveJSON struct {
	From      int      `json:"from"`
	To        int      `json:"to"`
	Flag      MoveFlag `json:"flag"`
	Promotion string   `json:"promotion,omitempty"`
}

// MarshalJSON writes the promotion piece as a lower case letter.
func (em EncodedMove) MarshalJSON() ([]byte, error) {
	wire := encodedMoveJSON{From: em.From, To: em.To, Flag: em.Flag}
	if em.Flag == FlagPromotion {
		wire.Promotion = string([]byte{em.Promotion.Letter() + ('a' - 'A')})
	}
	return json.Marshal(wire)
}

// UnmarshalJSON reads the layout written by MarshalJSON.
func (em *EncodedMove) UnmarshalJSON(data []byte) error {
	var wire encodedMoveJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*em = EncodedMove{From: wire.From, To: wire.To, Flag: wire.Flag}
	if wire.Promotion != "" {
		if len(wire.Promotion) != 1 {
			return fmt.Errorf("invalid promotion piece %q", wire.Promotion)
		}
		em.Promotion = chess.PieceFromLetter(wire.Promotion[0])
	}
	return nil
}

// String renders the encoded move, e.g. "12-28:none" or "52-60:promotion=q".
func (em EncodedMove) String() string {
	s := fmt.Sprintf("%d-%d:%s", em.From, em.To, em.Flag)
	if em.Flag == FlagPromotion {
		s += "=" + string([]byte{em.Promotion.Letter() + ('a' - 'A')})
	}
	return s
}

// EncodeMove converts a move to its exchange form.
func EncodeMove(m chess.Move) EncodedMove {
	em := EncodedMove{From: m.From.Index(), To: m.To.Index()}
	switch m.Kind {
	case chess.PromotionMove:
		em.Flag = FlagPromotion
		em.Promotion = m.Promotion
	case chess.EnPassantMove:
		em.Flag = FlagEnPassant
	case chess.CastlingMove:
		em.Flag = FlagCastleQueenSide
		if m.IsKingSide() {
			em.Flag = FlagCastleKingSide
		}
	default:
		em.Flag = FlagNone
	}
	return em
}

// DecodeMove converts an encoded move back into a Move using only its
// flag; no board is consulted. Whether the move is legal is for the
// caller to check.
func DecodeMove(em EncodedMove) (chess.Move, error) {
	from := chess.SquareFromIndex(em.From)
	to := chess.SquareFromIndex(em.To)
	if from == chess.NoSquare || to == chess.NoSquare {
		return chess.Move{}, &errors.IllegalMoveError{Move: em.String(), Reason: errors.ReasonMalformed, Detail: "square index out of range"}
	}

	switch em.Flag {
	case FlagNone:
		return chess.NewRegularMove(from, to), nil
	case FlagPromotion:
		if !chess.IsPromotionPiece(em.Promotion) {
			return chess.Move{}, &errors.IllegalMoveError{Move: em.String(), Reason: errors.ReasonMalformed, Detail: "invalid promotion piece"}
		}
		return chess.NewPromotion(from, to, em.Promotion), nil
	case FlagEnPassant:
		return chess.NewEnPassant(from, to), nil
	case FlagCastleKingSide, FlagCastleQueenSide:
		m := chess.NewCastling(from, to)
		if from.Row() != to.Row() || m.IsKingSide() != (em.Flag == FlagCastleKingSide) {
			return chess.Move{}, &errors.IllegalMoveError{Move: em.String(), Reason: errors.ReasonMalformed, Detail: "castling flag does not match squares"}
		}
		return m, nil
	default:
		return chess.Move{}, &errors.IllegalMoveError{Move: em.String(), Reason: errors.ReasonMalformed, Detail: "unknown flag"}
	}
}

// Bit layout of a packed move.
const (
	packFromShift  = 0
	packToShift    = 6
	packFlagShift  = 12
	packPromoShift = 15
	packSquareMask = 0x3f
	packFlagMask   = 0x07
	packPromoMask  = 0x07
)

// Pack stores the move in a single integer: from in bits 0-5, to in bits
// 6-11, flag in bits 12-14 and promotion piece in bits 15-17. The zero
// value never encodes a real move since from and to would be equal.
func (em EncodedMove) Pack() uint32 {
	return uint32(em.From&packSquareMask)<<packFromShift |
		uint32(em.To&packSquareMask)<<packToShift |
		uint32(em.Flag&packFlagMask)<<packFlagShift |
		uint32(int(em.Promotion)&packPromoMask)<<packPromoShift
}

// UnpackMove reverses Pack.
func UnpackMove(packed uint32) EncodedMove {
	return EncodedMove{
		From:      int(packed >> packFromShift & packSquareMask),
		To:        int(packed >> packToShift & packSquareMask),
		Flag:      MoveFlag(packed >> packFlagShift & packFlagMask),
		Promotion: chess.Piece(packed >> packPromoShift & packPromoMask),
	}
}
