package engine

import (
	"fmt"

	"github.com/lgbarn/chessboy-go/internal/chess"
	"github.com/lgbarn/chessboy-go/internal/hashing"
)

// Draw thresholds.
const (
	// FiftyMoveLimit is the halfmove clock value at which the game is drawn.
	FiftyMoveLimit = 100

	// RepetitionLimit is the number of occurrences of a position that draws the game.
	RepetitionLimit = 3
)

// CastlingRights records which castling moves each side may still make.
type CastlingRights struct {
	WhiteKingSide  bool
	WhiteQueenSide bool
	BlackKingSide  bool
	BlackQueenSide bool
}

// AllCastlingRights is the castling availability of the starting position.
var AllCastlingRights = CastlingRights{true, true, true, true}

// Has reports whether colour may still castle on the given side.
func (c CastlingRights) Has(colour chess.Colour, kingSide bool) bool {
	switch {
	case colour == chess.White && kingSide:
		return c.WhiteKingSide
	case colour == chess.White:
		return c.WhiteQueenSide
	case kingSide:
		return c.BlackKingSide
	default:
		return c.BlackQueenSide
	}
}

// touch clears any right that depends on a king or rook standing on sq.
// It is called with both the origin and destination of every move, which
// covers the king moving, a rook moving and a rook being captured.
func (c *CastlingRights) touch(sq chess.Square) {
	switch sq {
	case chess.E1:
		c.WhiteKingSide, c.WhiteQueenSide = false, false
	case chess.H1:
		c.WhiteKingSide = false
	case chess.A1:
		c.WhiteQueenSide = false
	case chess.E8:
		c.BlackKingSide, c.BlackQueenSide = false, false
	case chess.H8:
		c.BlackKingSide = false
	case chess.A8:
		c.BlackQueenSide = false
	}
}

// bits packs the rights for hashing.
func (c CastlingRights) bits() uint8 {
	var b uint8
	if c.WhiteKingSide {
		b |= hashing.WhiteKingSide
	}
	if c.WhiteQueenSide {
		b |= hashing.WhiteQueenSide
	}
	if c.BlackKingSide {
		b |= hashing.BlackKingSide
	}
	if c.BlackQueenSide {
		b |= hashing.BlackQueenSide
	}
	return b
}

// String returns the FEN castling field, e.g. "KQkq" or "-".
func (c CastlingRights) String() string {
	s := ""
	if c.WhiteKingSide {
		s += "K"
	}
	if c.WhiteQueenSide {
		s += "Q"
	}
	if c.BlackKingSide {
		s += "k"
	}
	if c.BlackQueenSide {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// OutcomeKind classifies the state of a game.
type OutcomeKind int

const (
	InProgress OutcomeKind = iota
	Check
	Checkmate
	Stalemate
	Draw
)

// String returns the name of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case InProgress:
		return "inProgress"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// DrawReason explains a Draw outcome.
type DrawReason int

const (
	NoDraw DrawReason = iota
	FiftyMove
	InsufficientMaterial
	Repetition
)

// String returns the name of the draw reason.
func (r DrawReason) String() string {
	switch r {
	case FiftyMove:
		return "fiftyMove"
	case InsufficientMaterial:
		return "insufficientMaterial"
	case Repetition:
		return "repetition"
	default:
		return "none"
	}
}

// Outcome is the result of evaluating a position after a move.
// For Check, Side is the side in check; for Checkmate, Side is the winner.
type Outcome struct {
	Kind   OutcomeKind
	Side   chess.Colour
	Reason DrawReason
}

// Terminal reports whether the game has ended.
func (o Outcome) Terminal() bool {
	return o.Kind != InProgress && o.Kind != Check
}

// String returns a human readable outcome.
func (o Outcome) String() string {
	switch o.Kind {
	case Check:
		return fmt.Sprintf("check (%s)", o.Side)
	case Checkmate:
		return fmt.Sprintf("checkmate (%s wins)", o.Side)
	case Draw:
		return fmt.Sprintf("draw (%s)", o.Reason)
	default:
		return o.Kind.String()
	}
}

// Position is everything FEN describes: placement, side to move, castling
// availability, en passant target and the two clocks.
type Position struct {
	Board          chess.Board
	SideToMove     chess.Colour
	Castling       CastlingRights
	EnPassant      chess.Square
	HalfmoveClock  int
	FullmoveNumber int
}

// key returns the repetition key of the position.
func (p *Position) key() uint64 {
	return hashing.GenerateZobristHash(&p.Board, p.SideToMove, p.Castling.bits(), p.EnPassant)
}

// ply is one applied move plus what is needed to take it back.
type ply struct {
	move     chess.Move
	moved    chess.Piece
	captured chess.Piece

	castling       CastlingRights
	enPassant      chess.Square
	halfmoveClock  int
	fullmoveNumber int
	outcome        Outcome
}

// GameState is a position together with its history and outcome.
// A GameState is never modified once returned; ApplyMove and Undo
// return new values.
type GameState struct {
	Position
	Outcome Outcome

	plies []ply
	// keys[i] is the repetition key before plies[i]; the last entry is
	// the current position, so len(keys) == len(plies)+1.
	keys []uint64
}

// NewGame returns the standard initial position.
func NewGame() *GameState {
	return newGameState(Position{
		Board:          *chess.NewInitialBoard(),
		SideToMove:     chess.White,
		Castling:       AllCastlingRights,
		EnPassant:      chess.NoSquare,
		FullmoveNumber: 1,
	})
}

// newGameState starts a history at pos and evaluates its outcome.
func newGameState(pos Position) *GameState {
	s := &GameState{Position: pos}
	s.keys = []uint64{pos.key()}
	s.Outcome = evaluateOutcome(s)
	return s
}

// History returns the moves applied so far, oldest first.
func (s *GameState) History() []chess.Move {
	moves := make([]chess.Move, len(s.plies))
	for i, p := range s.plies {
		moves[i] = p.move
	}
	return moves
}

// Ply returns the number of moves applied since the game was created.
func (s *GameState) Ply() int {
	return len(s.plies)
}

// RepetitionCount returns how many times the current position has occurred.
func (s *GameState) RepetitionCount() int {
	if len(s.keys) == 0 {
		return 0
	}
	current := s.keys[len(s.keys)-1]
	count := 0
	for _, k := range s.keys {
		if k == current {
			count++
		}
	}
	return count
}
