package engine

import (
	"sort"
	"testing"

	"github.com/lgbarn/chessboy-go/internal/chess"
)

// mustDecode decodes fen or fails the test.
func mustDecode(t testing.TB, fen string) *GameState {
	t.Helper()
	state, err := Decode(fen)
	if err != nil {
		t.Fatalf("Decode(%q) failed: %v", fen, err)
	}
	return state
}

// mustPlay applies moves given in long algebraic form or fails the test.
func mustPlay(t testing.TB, state *GameState, moves ...string) *GameState {
	t.Helper()
	for _, text := range moves {
		m, err := ResolveUCI(state, text)
		if err != nil {
			t.Fatalf("ResolveUCI(%q) in %s failed: %v", text, Encode(state), err)
		}
		next, err := ApplyMove(state, m)
		if err != nil {
			t.Fatalf("ApplyMove(%s) in %s failed: %v", m, Encode(state), err)
		}
		state = next
	}
	return state
}

// moveStrings returns the moves in long algebraic form, sorted.
func moveStrings(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

// containsMove reports whether text names one of moves.
func containsMove(moves []chess.Move, text string) bool {
	for _, m := range moves {
		if m.String() == text {
			return true
		}
	}
	return false
}
