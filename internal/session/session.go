// Package session owns one game and its engine opponent. It is the only
// place where a game changes, so transports and engine replies go through
// the same legality checks, and engine replies for a position that has
// since changed are dropped.
package session

import (
	"context"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"github.com/lgbarn/chessboy-go/internal/bridge"
	"github.com/lgbarn/chessboy-go/internal/chess"
	"github.com/lgbarn/chessboy-go/internal/engine"
	"github.com/lgbarn/chessboy-go/internal/errors"
)

// Result is the outcome of an engine request.
type Result struct {
	Move       engine.EncodedMove // The move played, when Applied
	Evaluation string             // Engine's score for the move, e.g. "+0.42", if it reports one
	NoMove     bool               // The engine had no move to offer
	Stale      bool               // The game changed while the engine was thinking
	Err        error              // Why no move was played; ErrStaleResponse when Stale
	State      Snapshot           // The game after the request completed
}

// Applied reports whether the engine's move was played.
func (r Result) Applied() bool {
	return !r.NoMove && r.Err == nil
}

// request tags an outstanding engine request with the position it was
// asked about.
type request struct {
	id         uint64
	generation uint64
	fen        string
	cancel     context.CancelFunc
}

// Session is a game plus at most one outstanding engine request. All
// methods are safe for concurrent use.
type Session struct {
	mu         sync.Mutex
	state      *engine.GameState
	generation uint64
	engine     bridge.Engine
	level      int
	pending    *request
	requests   uint64
	listeners  []func(Snapshot)

	notifyMu sync.Mutex // Serialises listener calls
	notified uint64     // Generation of the last snapshot delivered
}

// New starts a session at the initial position. eng may be nil, in which
// case engine requests fail.
func New(eng bridge.Engine, level int) *Session {
	return &Session{
		state:  engine.NewGame(),
		engine: eng,
		level:  bridge.ClampLevel(level),
	}
}

// OnChange registers fn to be called with the new snapshot after every
// change, including moves played by the engine. fn runs without the
// session lock held and must not change the session. Calls never overlap
// and their generations never go down: a snapshot overtaken by a newer
// one before it could be delivered is skipped.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// SetLevel changes the level used for later engine requests.
func (s *Session) SetLevel(level int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = bridge.ClampLevel(level)
}

// State returns the current game state. GameState values are immutable.
func (s *Session) State() *engine.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Generation returns a counter that changes whenever the game does.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// CurrentNotation returns the FEN of the current position.
func (s *Session) CurrentNotation() string {
	return engine.Encode(s.State())
}

// Snapshot returns a serialisable view of the game.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return newSnapshot(s.state, s.generation, s.pending != nil)
}

// ApplyEncodedMove plays a move received from a peer or an engine. The
// move is checked against the rules whatever the sender claims.
func (s *Session) ApplyEncodedMove(em engine.EncodedMove) (Snapshot, error) {
	return s.mutate(func(state *engine.GameState) (*engine.GameState, error) {
		return playEncoded(state, em)
	})
}

// ApplyUCI plays a move given in long algebraic form, e.g. "e7e8q".
func (s *Session) ApplyUCI(text string) (Snapshot, error) {
	s.mu.Lock()
	m, err := engine.ResolveUCI(s.state, text)
	s.mu.Unlock()
	if err != nil {
		return s.Snapshot(), err
	}
	return s.ApplyMove(m)
}

// ApplyMove plays m. A rejected move leaves the game unchanged.
func (s *Session) ApplyMove(m chess.Move) (Snapshot, error) {
	return s.mutate(func(state *engine.GameState) (*engine.GameState, error) {
		return engine.ApplyMove(state, m)
	})
}

// Undo takes back the last move.
func (s *Session) Undo() (Snapshot, error) {
	return s.mutate(engine.Undo)
}

// Load replaces the game with the position in fen.
func (s *Session) Load(fen string) (Snapshot, error) {
	return s.mutate(func(*engine.GameState) (*engine.GameState, error) {
		return engine.Decode(fen)
	})
}

// Reset returns the game to the initial position.
func (s *Session) Reset() Snapshot {
	snap, _ := s.mutate(func(*engine.GameState) (*engine.GameState, error) {
		return engine.NewGame(), nil
	})
	return snap
}

// mutate replaces the state with the result of change. Any engine
// request still thinking about the old position is abandoned.
func (s *Session) mutate(change func(*engine.GameState) (*engine.GameState, error)) (Snapshot, error) {
	s.mu.Lock()
	next, err := change(s.state)
	if err != nil {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, err
	}
	s.state = next
	s.generation++
	s.abandonLocked()
	snap := s.snapshotLocked()
	listeners := s.listeners
	s.mu.Unlock()

	s.notify(listeners, snap)
	return snap, nil
}

// abandonLocked cancels the outstanding request, if any. Its reply will
// be reported as stale.
func (s *Session) abandonLocked() {
	if s.pending == nil {
		return
	}
	s.pending.cancel()
	s.pending = nil
}

// CancelEngine abandons the outstanding engine request. The game is not
// changed; the request completes with a stale result.
func (s *Session) CancelEngine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abandonLocked()
}

// EnginePending reports whether an engine request is outstanding.
func (s *Session) EnginePending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// RequestEngineMove asks the engine to move in the current position. It
// returns at once; the result arrives on the channel, which is closed
// afterwards. Only one request may be outstanding.
func (s *Session) RequestEngineMove(ctx context.Context) (<-chan Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		return nil, &errors.EngineError{Op: "bestmove", Err: errors.Wrap(errors.ErrEngine, "no engine configured")}
	}
	if s.pending != nil {
		return nil, errors.ErrEngineBusy
	}
	if s.state.Outcome.Terminal() {
		return nil, &errors.IllegalMoveError{Reason: errors.ReasonGameOver, Detail: s.state.Outcome.String()}
	}

	ctx, cancel := context.WithCancel(ctx)
	s.requests++
	req := &request{
		id:         s.requests,
		generation: s.generation,
		fen:        engine.Encode(s.state),
		cancel:     cancel,
	}
	s.pending = req

	results := make(chan Result, 1)
	go s.think(ctx, req, s.engine, s.level, results)
	return results, nil
}

// think runs one engine request and delivers its result.
func (s *Session) think(ctx context.Context, req *request, eng bridge.Engine, level int, results chan<- Result) {
	defer close(results)
	defer req.cancel()

	em, ok, err := eng.BestMove(ctx, req.fen, level)
	var score string
	if ev, isEval := eng.(bridge.Evaluator); isEval && err == nil && ok {
		last := ev.LastEvaluation()
		score = bridge.FormatEvaluation(&last)
	}
	results <- s.complete(req, em, ok, err, score)
}

// complete applies an engine reply if the game is still where the engine
// was asked about it. The engine's move goes through the same checks as
// anyone else's.
func (s *Session) complete(req *request, em engine.EncodedMove, ok bool, err error, score string) Result {
	s.mu.Lock()
	if s.pending != req || s.generation != req.generation {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		log.Debugf("discarding engine reply for %q", req.fen)
		return Result{Stale: true, Err: errors.ErrStaleResponse, State: snap}
	}
	s.pending = nil

	var result Result
	switch {
	case err != nil:
		log.Warnf("engine request failed: %v", err)
		result.Err = err
	case !ok:
		result.NoMove = true
	default:
		next, applyErr := playEncoded(s.state, em)
		if applyErr != nil {
			log.Warnf("engine move %v rejected: %v", em, applyErr)
			result.Err = applyErr
			break
		}
		s.state = next
		s.generation++
		result.Move = em
		result.Evaluation = score
		if score != "" {
			log.Debugf("engine played %v, evaluation %s", em, score)
		}
	}
	result.State = s.snapshotLocked()
	listeners := s.listeners
	s.mu.Unlock()

	s.notify(listeners, result.State)
	return result
}

// playEncoded decodes em and applies it to state.
func playEncoded(state *engine.GameState, em engine.EncodedMove) (*engine.GameState, error) {
	m, err := engine.DecodeMove(em)
	if err != nil {
		return state, err
	}
	return engine.ApplyMove(state, m)
}

// notify calls every listener with snap unless a newer snapshot has
// already been delivered.
func (s *Session) notify(listeners []func(Snapshot), snap Snapshot) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if snap.Generation < s.notified {
		log.Debugf("skipping superseded snapshot %d, already at %d", snap.Generation, s.notified)
		return
	}
	s.notified = snap.Generation
	for _, fn := range listeners {
		fn(snap)
	}
}
