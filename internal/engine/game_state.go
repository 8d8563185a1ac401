package engine

// evaluateOutcome classifies the state for the side to move. Checkmate
// and stalemate end the game before any draw rule is looked at; a draw
// rule in turn outranks a plain check.
func evaluateOutcome(s *GameState) Outcome {
	mover := s.SideToMove
	inCheck := kingAttacked(&s.Board, mover)

	if !s.Position.hasLegalMoves() {
		if inCheck {
			return Outcome{Kind: Checkmate, Side: mover.Opposite()}
		}
		return Outcome{Kind: Stalemate}
	}
	if reason := drawReason(s); reason != NoDraw {
		return Outcome{Kind: Draw, Reason: reason}
	}
	if inCheck {
		return Outcome{Kind: Check, Side: mover}
	}
	return Outcome{Kind: InProgress}
}

// IsCheckmate returns true if the side to move is checkmated.
func IsCheckmate(state *GameState) bool {
	return state.Outcome.Kind == Checkmate
}

// IsStalemate returns true if the side to move has no legal move and is not in check.
func IsStalemate(state *GameState) bool {
	return state.Outcome.Kind == Stalemate
}
