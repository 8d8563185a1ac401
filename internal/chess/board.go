package chess

// Board holds the contents of every square. A zero Board is empty.
type Board struct {
	Squares [NumSquares]Piece
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{}
}

// NewInitialBoard creates a board set up with the standard starting position.
func NewInitialBoard() *Board {
	b := NewBoard()
	b.SetupInitialPosition()
	return b
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	b.Squares = [NumSquares]Piece{}

	backRank := []Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for i, piece := range backRank {
		col := Col(FirstCol + i)
		b.Set(col, '1', W(piece))
		b.Set(col, '2', W(Pawn))
		b.Set(col, '7', B(Pawn))
		b.Set(col, '8', B(piece))
	}
}

// Get returns the piece at the given coordinates (using char coords 'a'-'h', '1'-'8').
// Coordinates off the board return Off.
func (b *Board) Get(col Col, rank Rank) Piece {
	if !OnBoard(col, rank) {
		return Off
	}
	return b.Squares[NewSquare(col, rank)]
}

// Set places a piece at the given coordinates.
func (b *Board) Set(col Col, rank Rank, piece Piece) {
	if OnBoard(col, rank) {
		b.Squares[NewSquare(col, rank)] = piece
	}
}

// At returns the content of a square. Invalid squares return Off.
func (b *Board) At(sq Square) Piece {
	if !sq.Valid() {
		return Off
	}
	return b.Squares[sq]
}

// Put places a piece, or Empty, on a square.
func (b *Board) Put(sq Square, piece Piece) {
	if sq.Valid() {
		b.Squares[sq] = piece
	}
}

// SquareEmpty reports whether nothing stands on the square.
func (b *Board) SquareEmpty(sq Square) bool {
	return b.At(sq) == Empty
}

// PieceAt returns the piece on a square and whether there is one.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	p := b.At(sq)
	if p == Empty || p == Off {
		return Empty, false
	}
	return p, true
}

// DestinationIsEmptyOrEnemy reports whether a piece of the given colour
// could land on sq: it is empty or holds an opposing piece.
func (b *Board) DestinationIsEmptyOrEnemy(sq Square, colour Colour) bool {
	p := b.At(sq)
	if p == Off {
		return false
	}
	return p == Empty || ExtractColour(p) != colour
}

// DestinationHasEnemy reports whether sq holds a piece of the opposing colour.
func (b *Board) DestinationHasEnemy(sq Square, colour Colour) bool {
	p, ok := b.PieceAt(sq)
	return ok && ExtractColour(p) != colour
}

// IsBackRank reports whether sq is on the first or last rank, where pawns promote.
func (b *Board) IsBackRank(sq Square) bool {
	return sq.Valid() && (sq.Row() == 0 || sq.Row() == BoardSize-1)
}

// KingSquare finds the king of the given colour.
func (b *Board) KingSquare(colour Colour) (Square, bool) {
	king := MakeColouredPiece(colour, King)
	for sq := A1; sq <= H8; sq++ {
		if b.Squares[sq] == king {
			return sq, true
		}
	}
	return NoSquare, false
}

// Apply carries out a move on the board without checking legality.
// The caller is trusted to supply a move of the right shape.
func (b *Board) Apply(m Move) {
	piece := b.At(m.From)
	switch m.Kind {
	case RegularMove:
		b.Put(m.From, Empty)
		b.Put(m.To, piece)
	case PromotionMove:
		b.Put(m.From, Empty)
		b.Put(m.To, MakeColouredPiece(ExtractColour(piece), m.Promotion))
	case EnPassantMove:
		b.Put(m.From, Empty)
		b.Put(m.CapturedSquare(), Empty)
		b.Put(m.To, piece)
	case CastlingMove:
		rookFrom, rookTo := m.CastlingRookSquares()
		rook := b.At(rookFrom)
		b.Put(m.From, Empty)
		b.Put(rookFrom, Empty)
		b.Put(m.To, piece)
		b.Put(rookTo, rook)
	}
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}
