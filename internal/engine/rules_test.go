package engine

import (
	"errors"
	"testing"

	"github.com/lgbarn/chessboy-go/internal/chess"
	chesserrors "github.com/lgbarn/chessboy-go/internal/errors"
)

// rejection returns the reason of an *IllegalMoveError, failing otherwise.
func rejection(t *testing.T, err error) chesserrors.MoveRejection {
	t.Helper()
	var illegal *chesserrors.IllegalMoveError
	if !errors.As(err, &illegal) {
		t.Fatalf("error = %v, want *IllegalMoveError", err)
	}
	return illegal.Reason
}

func TestCastling_Rejected(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move chess.Move
	}{
		{
			name: "king in check",
			fen:  "4r1k1/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			move: chess.NewCastling(chess.E1, chess.G1),
		},
		{
			name: "crossed square attacked",
			fen:  "5rk1/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			move: chess.NewCastling(chess.E1, chess.G1),
		},
		{
			name: "destination attacked",
			fen:  "2r3k1/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			move: chess.NewCastling(chess.E1, chess.C1),
		},
		{
			name: "right missing",
			fen:  "6k1/8/8/8/8/8/8/R3K2R w Q - 0 1",
			move: chess.NewCastling(chess.E1, chess.G1),
		},
		{
			name: "path blocked",
			fen:  "6k1/8/8/8/8/8/8/RN2K2R w KQ - 0 1",
			move: chess.NewCastling(chess.E1, chess.C1),
		},
		{
			name: "black right missing",
			fen:  "r3k2r/8/8/8/8/8/8/6K1 b k - 0 1",
			move: chess.NewCastling(chess.E8, chess.C8),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := mustDecode(t, tt.fen)
			next, err := ApplyMove(state, tt.move)
			if got := rejection(t, err); got != chesserrors.ReasonCastlingNotAllowed {
				t.Errorf("reason = %q, want %q", got, chesserrors.ReasonCastlingNotAllowed)
			}
			if next != state {
				t.Error("ApplyMove() returned a new state for a rejected move")
			}
			if containsMove(LegalMoves(state), tt.move.String()) {
				t.Errorf("LegalMoves() contains %s", tt.move)
			}
		})
	}
}

func TestCastling_OtherSideStillAllowed(t *testing.T) {
	state := mustDecode(t, "5rk1/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	moves := LegalMoves(state)
	if containsMove(moves, "e1g1") {
		t.Error("king side castling through f1 should be illegal")
	}
	if !containsMove(moves, "e1c1") {
		t.Error("queen side castling should be legal")
	}
}

func TestCastling_MovesRookAndClearsRights(t *testing.T) {
	tests := []struct {
		name       string
		fen        string
		move       string
		king, rook chess.Square
		rights     string
	}{
		{"white king side", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", chess.G1, chess.F1, "kq"},
		{"white queen side", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", chess.C1, chess.D1, "kq"},
		{"black king side", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8g8", chess.G8, chess.F8, "KQ"},
		{"black queen side", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8", chess.C8, chess.D8, "KQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := mustDecode(t, tt.fen)
			m, err := ResolveUCI(state, tt.move)
			if err != nil {
				t.Fatalf("ResolveUCI(%q) failed: %v", tt.move, err)
			}
			if m.Kind != chess.CastlingMove {
				t.Fatalf("ResolveUCI(%q).Kind = %v, want castling", tt.move, m.Kind)
			}
			next := mustPlay(t, state, tt.move)
			mover := state.SideToMove
			if got := next.Board.At(tt.king); got != chess.MakeColouredPiece(mover, chess.King) {
				t.Errorf("king square %s holds %v", tt.king, got)
			}
			if got := next.Board.At(tt.rook); got != chess.MakeColouredPiece(mover, chess.Rook) {
				t.Errorf("rook square %s holds %v", tt.rook, got)
			}
			if got := next.Castling.String(); got != tt.rights {
				t.Errorf("Castling = %q, want %q", got, tt.rights)
			}
			if next.HalfmoveClock != 1 {
				t.Errorf("HalfmoveClock = %d, want 1", next.HalfmoveClock)
			}
		})
	}
}

func TestCastlingRights_LostByRookAndKing(t *testing.T) {
	tests := []struct {
		name   string
		moves  []string
		rights string
	}{
		{"king side rook moves", []string{"h1h2"}, "Qkq"},
		{"queen side rook moves", []string{"a1a2"}, "Kkq"},
		{"king moves", []string{"e1f1"}, "kq"},
		{"rook captured", []string{"a1a8"}, "Kk"},
		{"king returns", []string{"e1f1", "e8f8", "f1e1"}, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := mustPlay(t, mustDecode(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"), tt.moves...)
			if got := state.Castling.String(); got != tt.rights {
				t.Errorf("Castling = %q, want %q", got, tt.rights)
			}
		})
	}
}

func TestEnPassant_NextPlyOnly(t *testing.T) {
	state := mustPlay(t, NewGame(), "e2e4", "a7a6", "e4e5", "d7d5")
	if state.EnPassant != chess.D6 {
		t.Fatalf("EnPassant = %v, want d6", state.EnPassant)
	}

	m, err := ResolveUCI(state, "e5d6")
	if err != nil {
		t.Fatalf("ResolveUCI(e5d6) failed: %v", err)
	}
	if m.Kind != chess.EnPassantMove {
		t.Fatalf("ResolveUCI(e5d6).Kind = %v, want enPassant", m.Kind)
	}
	captured := mustPlay(t, state, "e5d6")
	if !captured.Board.SquareEmpty(chess.D5) {
		t.Error("captured pawn still on d5")
	}
	if got := captured.Board.At(chess.D6); got != chess.W(chess.Pawn) {
		t.Errorf("d6 holds %v, want white pawn", got)
	}
	if captured.HalfmoveClock != 0 {
		t.Errorf("HalfmoveClock = %d, want 0", captured.HalfmoveClock)
	}

	late := mustPlay(t, state, "g1f3", "a6a5")
	if late.EnPassant != chess.NoSquare {
		t.Errorf("EnPassant = %v, want none", late.EnPassant)
	}
	_, err = ApplyMove(late, chess.NewEnPassant(chess.E5, chess.D6))
	if got := rejection(t, err); got != chesserrors.ReasonUnreachable {
		t.Errorf("reason = %q, want %q", got, chesserrors.ReasonUnreachable)
	}
	if _, err := ResolveUCI(late, "e5d6"); !errors.Is(err, chesserrors.ErrIllegalMove) {
		t.Errorf("ResolveUCI(e5d6) error = %v, want ErrIllegalMove", err)
	}
}

func TestEnPassant_PinnedPawn(t *testing.T) {
	// Taking on d6 would expose the king on the fifth rank.
	state := mustDecode(t, "8/8/8/K2pP2r/8/8/8/7k w - d6 0 1")
	_, err := ApplyMove(state, chess.NewEnPassant(chess.E5, chess.D6))
	if got := rejection(t, err); got != chesserrors.ReasonLeavesKingInCheck {
		t.Errorf("reason = %q, want %q", got, chesserrors.ReasonLeavesKingInCheck)
	}
}

func TestPromotion(t *testing.T) {
	state := mustDecode(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")

	for _, piece := range []chess.Piece{chess.Queen, chess.Rook, chess.Bishop, chess.Knight} {
		next, err := ApplyMove(state, chess.NewPromotion(chess.A7, chess.B8, piece))
		if err != nil {
			t.Fatalf("promotion to %v failed: %v", piece, err)
		}
		if got := next.Board.At(chess.B8); got != chess.W(piece) {
			t.Errorf("b8 holds %v, want white %v", got, piece)
		}
	}

	tests := []struct {
		name string
		move chess.Move
	}{
		{"missing promotion", chess.NewRegularMove(chess.A7, chess.A8)},
		{"promote to king", chess.NewPromotion(chess.A7, chess.A8, chess.King)},
		{"promote to pawn", chess.NewPromotion(chess.A7, chess.A8, chess.Pawn)},
		{"promotion off the back rank", chess.NewPromotion(chess.H1, chess.H2, chess.Queen)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyMove(state, tt.move)
			if got := rejection(t, err); got != chesserrors.ReasonMalformed {
				t.Errorf("reason = %q, want %q", got, chesserrors.ReasonMalformed)
			}
		})
	}
}

func TestOutcome_ScholarsMate(t *testing.T) {
	state := mustPlay(t, NewGame(), "e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7")
	want := Outcome{Kind: Checkmate, Side: chess.White}
	if state.Outcome != want {
		t.Errorf("Outcome = %v, want %v", state.Outcome, want)
	}
	if !IsCheckmate(state) {
		t.Error("IsCheckmate() = false, want true")
	}

	_, err := ApplyMove(state, chess.NewRegularMove(chess.E8, chess.F7))
	if got := rejection(t, err); got != chesserrors.ReasonGameOver {
		t.Errorf("reason = %q, want %q", got, chesserrors.ReasonGameOver)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves []string
		want  Outcome
	}{
		{
			name: "in progress",
			fen:  InitialFEN,
			want: Outcome{Kind: InProgress},
		},
		{
			name:  "check",
			fen:   InitialFEN,
			moves: []string{"e2e4", "f7f6", "d1h5"},
			want:  Outcome{Kind: Check, Side: chess.Black},
		},
		{
			name: "stalemate",
			fen:  "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
			want: Outcome{Kind: Stalemate},
		},
		{
			name: "kings only",
			fen:  "4k3/8/8/8/8/8/8/4K3 w - - 0 1",
			want: Outcome{Kind: Draw, Reason: InsufficientMaterial},
		},
		{
			name:  "capture leaves kings only",
			fen:   "4k3/8/8/8/8/8/3q4/4K3 w - - 0 1",
			moves: []string{"e1d2"},
			want:  Outcome{Kind: Draw, Reason: InsufficientMaterial},
		},
		{
			name: "king and knight",
			fen:  "4k3/8/8/8/8/8/8/4KN2 b - - 0 1",
			want: Outcome{Kind: Draw, Reason: InsufficientMaterial},
		},
		{
			name: "bishops on same colour",
			fen:  "4kb2/8/8/8/8/8/8/2B1K3 w - - 0 1",
			want: Outcome{Kind: Draw, Reason: InsufficientMaterial},
		},
		{
			name: "bishops on opposite colours",
			fen:  "4k1b1/8/8/8/8/8/8/2B1K3 w - - 0 1",
			want: Outcome{Kind: InProgress},
		},
		{
			name:  "fifty move rule",
			fen:   "4k3/8/8/8/8/8/8/R3K3 w - - 99 60",
			moves: []string{"a1a2"},
			want:  Outcome{Kind: Draw, Reason: FiftyMove},
		},
		{
			name:  "pawn move resets the clock",
			fen:   "4k3/8/8/8/8/8/P7/4K3 w - - 99 60",
			moves: []string{"a2a3"},
			want:  Outcome{Kind: InProgress},
		},
		{
			name:  "threefold repetition",
			fen:   InitialFEN,
			moves: []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"},
			want:  Outcome{Kind: Draw, Reason: Repetition},
		},
		{
			name:  "twofold repetition",
			fen:   InitialFEN,
			moves: []string{"g1f3", "g8f6", "f3g1", "f6g8"},
			want:  Outcome{Kind: InProgress},
		},
		{
			name:  "checkmate beats fifty move rule",
			fen:   "6k1/5ppp/8/8/8/8/8/R5K1 w - - 99 80",
			moves: []string{"a1a8"},
			want:  Outcome{Kind: Checkmate, Side: chess.White},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := mustPlay(t, mustDecode(t, tt.fen), tt.moves...)
			if state.Outcome != tt.want {
				t.Errorf("Outcome = %v, want %v", state.Outcome, tt.want)
			}
			if got, want := IsCheckmate(state), tt.want.Kind == Checkmate; got != want {
				t.Errorf("IsCheckmate() = %v, want %v", got, want)
			}
			if got, want := IsStalemate(state), tt.want.Kind == Stalemate; got != want {
				t.Errorf("IsStalemate() = %v, want %v", got, want)
			}
		})
	}
}

func TestRepetitionCount(t *testing.T) {
	state := NewGame()
	if got := state.RepetitionCount(); got != 1 {
		t.Errorf("RepetitionCount() = %d, want 1", got)
	}
	state = mustPlay(t, state, "g1f3", "g8f6", "f3g1", "f6g8")
	if got := state.RepetitionCount(); got != 2 {
		t.Errorf("RepetitionCount() = %d, want 2", got)
	}
}

func TestDrawnGameRejectsMoves(t *testing.T) {
	state := mustDecode(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	_, err := ApplyMove(state, chess.NewRegularMove(chess.E1, chess.E2))
	if got := rejection(t, err); got != chesserrors.ReasonGameOver {
		t.Errorf("reason = %q, want %q", got, chesserrors.ReasonGameOver)
	}
}

func TestHasInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{"initial", InitialFEN, false},
		{"kings only", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"king and bishop", "4k3/8/8/8/8/8/8/2B1K3 w - - 0 1", true},
		{"king and pawn", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", false},
		{"king and rook", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", false},
		{"two knights", "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := mustDecode(t, tt.fen)
			if got := HasInsufficientMaterial(&state.Board); got != tt.want {
				t.Errorf("HasInsufficientMaterial() = %v, want %v", got, tt.want)
			}
		})
	}
}
