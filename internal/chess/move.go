package chess

// MoveKind tags the shape of a move.
type MoveKind int

const (
	RegularMove MoveKind = iota
	PromotionMove
	EnPassantMove
	CastlingMove
)

// String returns the name of the move kind.
func (k MoveKind) String() string {
	switch k {
	case RegularMove:
		return "regular"
	case PromotionMove:
		return "promotion"
	case EnPassantMove:
		return "enPassant"
	case CastlingMove:
		return "castling"
	default:
		return "unknown"
	}
}

// Move is a tagged variant over the four move shapes. From and To are
// always the moving piece's origin and destination; for castling that is
// the king, and the rook's movement is implied by the side. Promotion is
// only meaningful for PromotionMove.
//
// Move values are comparable and can be used as map keys.
type Move struct {
	Kind      MoveKind
	From      Square
	To        Square
	Promotion Piece
}

// NewRegularMove creates a plain relocation, with or without capture.
func NewRegularMove(from, to Square) Move {
	return Move{Kind: RegularMove, From: from, To: to}
}

// NewPromotion creates a pawn move onto the back rank that becomes piece.
func NewPromotion(from, to Square, piece Piece) Move {
	return Move{Kind: PromotionMove, From: from, To: to, Promotion: piece}
}

// NewEnPassant creates an en passant capture onto the skipped square.
func NewEnPassant(from, to Square) Move {
	return Move{Kind: EnPassantMove, From: from, To: to}
}

// NewCastling creates a castling move from the king's origin and destination.
func NewCastling(from, to Square) Move {
	return Move{Kind: CastlingMove, From: from, To: to}
}

// IsKingSide reports whether a castling move goes towards the h-file.
func (m Move) IsKingSide() bool {
	return m.To.File() > m.From.File()
}

// CastlingRookSquares returns the rook's origin and destination for a
// castling move.
func (m Move) CastlingRookSquares() (from, to Square) {
	rank := m.From.Rank()
	if m.IsKingSide() {
		return NewSquare('h', rank), NewSquare('f', rank)
	}
	return NewSquare('a', rank), NewSquare('d', rank)
}

// CapturedSquare returns the square of the pawn taken by an en passant
// capture: beside the origin, on the destination file.
func (m Move) CapturedSquare() Square {
	return NewSquare(m.To.Col(), m.From.Rank())
}

// String renders the move in long algebraic form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Kind == PromotionMove {
		letter := m.Promotion.Letter() + ('a' - 'A')
		s += string([]byte{letter})
	}
	return s
}
