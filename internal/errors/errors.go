// Package errors provides sentinel errors and error types for chessboy.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNothingToUndo indicates an undo on a game with no moves played.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrEngine indicates a failure inside an engine adapter.
	ErrEngine = errors.New("engine failure")

	// ErrEngineBusy indicates an engine request is already outstanding.
	ErrEngineBusy = errors.New("engine request already pending")

	// ErrStaleResponse indicates an engine answer for a position that is no longer current.
	ErrStaleResponse = errors.New("stale engine response")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGameNotFound indicates an unknown game id.
	ErrGameNotFound = errors.New("game not found")

	// ErrTooManyGames indicates the server's game limit has been reached.
	ErrTooManyGames = errors.New("too many games")
)

// MoveRejection explains why a move was refused.
type MoveRejection string

// Reasons a move can be refused.
const (
	ReasonGameOver            MoveRejection = "game is over"
	ReasonMalformed           MoveRejection = "malformed move"
	ReasonNoPiece             MoveRejection = "no piece on origin square"
	ReasonWrongSide           MoveRejection = "piece belongs to the side not on move"
	ReasonFriendlyDestination MoveRejection = "destination holds a friendly piece"
	ReasonBlockedPath         MoveRejection = "path is blocked"
	ReasonUnreachable         MoveRejection = "piece cannot move that way"
	ReasonCastlingNotAllowed  MoveRejection = "castling not allowed"
	ReasonLeavesKingInCheck   MoveRejection = "leaves own king in check"
)

// IllegalMoveError reports a move that was refused, and why.
// It unwraps to ErrIllegalMove.
type IllegalMoveError struct {
	Move   string        // The move in long algebraic form (if known)
	Reason MoveRejection // Why the move was refused
	Detail string        // Extra context (optional)
}

// Error returns a formatted error message.
func (e *IllegalMoveError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrIllegalMove.Error())
	if e.Move != "" {
		fmt.Fprintf(&sb, " %s", e.Move)
	}
	if e.Reason != "" {
		fmt.Fprintf(&sb, ": %s", e.Reason)
	}
	if e.Detail != "" {
		fmt.Fprintf(&sb, " (%s)", e.Detail)
	}
	return sb.String()
}

// Unwrap returns ErrIllegalMove so callers can test with errors.Is().
func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}

// ParseError represents a notation decoding error for one field.
type ParseError struct {
	Field  string // Which FEN field failed, e.g. "castling"
	Value  string // The offending text
	Detail string // What was wrong with it
}

// Error returns a formatted error message with the field and context.
func (e *ParseError) Error() string {
	var parts []string
	parts = append(parts, ErrInvalidFEN.Error())
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	if e.Value != "" {
		parts = append(parts, fmt.Sprintf("%q", e.Value))
	}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns ErrInvalidFEN.
func (e *ParseError) Unwrap() error {
	return ErrInvalidFEN
}

// EngineError wraps a failure from an engine adapter with the engine
// identity and the operation that failed.
type EngineError struct {
	Engine string // Engine id, e.g. "stockfish-level=5"
	Op     string // "init", "bestmove" or "quit"
	Err    error  // The underlying error
}

// Error returns a formatted error message.
func (e *EngineError) Error() string {
	msg := "engine"
	if e.Engine != "" {
		msg += " " + e.Engine
	}
	if e.Op != "" {
		msg += " " + e.Op
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg + ": " + ErrEngine.Error()
}

// Unwrap returns the underlying error.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// Is makes every EngineError match ErrEngine.
func (e *EngineError) Is(target error) bool {
	return target == ErrEngine
}

// UndoError reports an undo on a game with an empty history.
// The game is left untouched. It unwraps to ErrNothingToUndo.
type UndoError struct{}

// Error returns the error message.
func (e *UndoError) Error() string {
	return ErrNothingToUndo.Error()
}

// Unwrap returns ErrNothingToUndo.
func (e *UndoError) Unwrap() error {
	return ErrNothingToUndo
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return pkgerrors.WithMessage(err, context)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return pkgerrors.WithMessagef(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
