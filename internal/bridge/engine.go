// Package bridge connects games to move-searching engines. An engine is
// asked for a move in a position given as FEN and answers with an
// encoded move, or with nothing when it has no move to offer.
package bridge

import (
	"context"
	"fmt"

	"github.com/lgbarn/chessboy-go/internal/engine"
	"github.com/lgbarn/chessboy-go/internal/errors"
)

// Strength levels accepted by every engine.
const (
	MinLevel     = 1
	MaxLevel     = 7
	DefaultLevel = 5
)

// Engine is a move-searching opponent.
//
// BestMove returns false when the engine has no move for the position;
// that is an answer, not an error. Failures are reported as
// *errors.EngineError.
type Engine interface {
	ID() string
	Init(ctx context.Context) error
	BestMove(ctx context.Context, fen string, level int) (engine.EncodedMove, bool, error)
	Quit() error
}

// Evaluator is implemented by engines that report a score for their last
// search.
type Evaluator interface {
	LastEvaluation() Evaluation
}

// ClampLevel keeps level within MinLevel and MaxLevel. Zero or a negative
// level selects DefaultLevel.
func ClampLevel(level int) int {
	switch {
	case level <= 0:
		return DefaultLevel
	case level > MaxLevel:
		return MaxLevel
	}
	return level
}

// EngineID formats an engine identity, e.g. "stockfish-level=5".
func EngineID(name string, level int) string {
	return fmt.Sprintf("%s-level=%d", name, ClampLevel(level))
}

// resolveMove turns a long algebraic reply into the encoded move it names
// in fen. A reply that is not legal there is an error.
func resolveMove(fen, text string) (engine.EncodedMove, error) {
	state, err := engine.Decode(fen)
	if err != nil {
		return engine.EncodedMove{}, err
	}
	m, err := engine.ResolveUCI(state, text)
	if err != nil {
		return engine.EncodedMove{}, errors.Wrapf(err, "engine replied %q", text)
	}
	return engine.EncodeMove(m), nil
}
