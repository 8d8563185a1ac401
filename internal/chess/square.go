package chess

// Square is a board square addressed as a single index, rank*8 + file,
// so a1 is 0 and h8 is 63.
type Square int8

// NoSquare marks the absence of a square, e.g. no en passant target.
const NoSquare Square = -1

// Named squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NewSquare returns the square at the given coordinates, or NoSquare if
// they are off the board.
func NewSquare(col Col, rank Rank) Square {
	if !OnBoard(col, rank) {
		return NoSquare
	}
	return Square(int(rank-FirstRank)*BoardSize + int(col-FirstCol))
}

// SquareFromIndex converts a 0-63 index to a square.
func SquareFromIndex(index int) Square {
	if index < 0 || index >= NumSquares {
		return NoSquare
	}
	return Square(index)
}

// ParseSquare parses a square in file-rank form such as "e4".
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 {
		return NoSquare, false
	}
	sq := NewSquare(Col(s[0]), Rank(s[1]))
	return sq, sq != NoSquare
}

// Valid reports whether the square is on the board.
func (s Square) Valid() bool {
	return s >= 0 && int(s) < NumSquares
}

// Index returns the 0-63 index of the square.
func (s Square) Index() int {
	return int(s)
}

// File returns the 0-based file of the square.
func (s Square) File() int {
	return int(s) % BoardSize
}

// Row returns the 0-based rank of the square.
func (s Square) Row() int {
	return int(s) / BoardSize
}

// Col returns the file letter of the square.
func (s Square) Col() Col {
	return Col(FirstCol + s.File())
}

// Rank returns the rank digit of the square.
func (s Square) Rank() Rank {
	return Rank(FirstRank + s.Row())
}

// IsLight reports whether the square is a light square.
func (s Square) IsLight() bool {
	return (s.File()+s.Row())%2 == 1
}

// String returns the square in file-rank form, or "-" for NoSquare.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte(s.Col()), byte(s.Rank())})
}
