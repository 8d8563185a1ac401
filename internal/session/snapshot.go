package session

import (
	"strings"

	"github.com/lgbarn/chessboy-go/internal/chess"
	"github.com/lgbarn/chessboy-go/internal/engine"
)

// Snapshot is a serialisable view of a game at one moment.
type Snapshot struct {
	FEN           string               `json:"fen"`
	SideToMove    string               `json:"sideToMove"`
	Status        string               `json:"status"`
	Side          string               `json:"side,omitempty"` // In check, or the winner after checkmate
	DrawReason    string               `json:"drawReason,omitempty"`
	Ply           int                  `json:"ply"`
	History       []engine.EncodedMove `json:"history"`
	LegalMoves    []engine.EncodedMove `json:"legalMoves"`
	Generation    uint64               `json:"generation"`
	EngineWorking bool                 `json:"engineWorking"`
}

func newSnapshot(state *engine.GameState, generation uint64, engineWorking bool) Snapshot {
	snap := Snapshot{
		FEN:           engine.Encode(state),
		SideToMove:    colourName(state.SideToMove),
		Status:        state.Outcome.Kind.String(),
		Ply:           state.Ply(),
		History:       encodeAll(state.History()),
		LegalMoves:    []engine.EncodedMove{},
		Generation:    generation,
		EngineWorking: engineWorking,
	}
	switch state.Outcome.Kind {
	case engine.Check, engine.Checkmate:
		snap.Side = colourName(state.Outcome.Side)
	case engine.Draw:
		snap.DrawReason = state.Outcome.Reason.String()
	}
	if !state.Outcome.Terminal() {
		snap.LegalMoves = encodeAll(engine.LegalMoves(state))
	}
	return snap
}

// Over reports whether the game has ended.
func (s Snapshot) Over() bool {
	switch s.Status {
	case engine.Checkmate.String(), engine.Stalemate.String(), engine.Draw.String():
		return true
	}
	return false
}

func encodeAll(moves []chess.Move) []engine.EncodedMove {
	out := make([]engine.EncodedMove, len(moves))
	for i, m := range moves {
		out[i] = engine.EncodeMove(m)
	}
	return out
}

func colourName(c chess.Colour) string {
	return strings.ToLower(c.String())
}
