package bridge

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/chessboy-go/internal/engine"
	"github.com/lgbarn/chessboy-go/internal/errors"
)

// quitTimeout bounds how long Quit waits for the process to exit.
const quitTimeout = 3 * time.Second

// abandonTimeout bounds how long a cancelled search waits for its bestmove
// before leaving it for the next request to drain.
var abandonTimeout = 3 * time.Second

// Evaluation holds what an engine reported about its last search.
type Evaluation struct {
	Score    int    // Centipawns from the side to move's view
	IsMate   bool   // Score is a mate distance
	MateIn   int    // Moves to mate; negative when being mated
	Depth    int    // Search depth reached
	BestMove string // Best move in long algebraic form
}

// FormatEvaluation formats an evaluation for display, e.g. "+1.23" or "-M5".
func FormatEvaluation(eval *Evaluation) string {
	if eval.IsMate {
		if eval.MateIn < 0 {
			return fmt.Sprintf("-M%d", -eval.MateIn)
		}
		return fmt.Sprintf("+M%d", eval.MateIn)
	}
	sign := "+"
	score := eval.Score
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}

// UCIConfig describes how to start a UCI engine process.
type UCIConfig struct {
	Name       string    // Engine name used in its id
	Path       string    // Executable
	Args       []string  // Extra command line arguments
	Env        []string  // Extra environment, KEY=VALUE
	Level      int       // Level used when BestMove is given 0
	Transcript io.Writer // Receives every line sent and received (optional)
}

// UCIEngine drives an external engine speaking the Universal Chess
// Interface over its standard input and output. Calls are serialised.
type UCIEngine struct {
	name       string
	path       string
	args       []string
	env        []string
	depth      int
	transcript io.Writer
	tmu        sync.Mutex

	mu    sync.Mutex
	cmd   *exec.Cmd
	stdin io.WriteCloser
	lines chan string
	last  Evaluation

	// A cancelled search whose bestmove has not been read yet.
	pending bool
}

// NewUCIEngine creates an engine; the process is started by Init.
func NewUCIEngine(cfg UCIConfig) *UCIEngine {
	name := cfg.Name
	if name == "" {
		name = cfg.Path
	}
	return &UCIEngine{
		name:       name,
		path:       cfg.Path,
		args:       cfg.Args,
		env:        cfg.Env,
		depth:      ClampLevel(cfg.Level),
		transcript: cfg.Transcript,
	}
}

// ID returns the engine identity, e.g. "stockfish-level=5".
func (e *UCIEngine) ID() string {
	return EngineID(e.name, e.depth)
}

// fail wraps err as an *errors.EngineError for op.
func (e *UCIEngine) fail(op string, err error) error {
	return &errors.EngineError{Engine: e.ID(), Op: op, Err: err}
}

// Init starts the process and completes the uci/isready handshake.
func (e *UCIEngine) Init(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd != nil {
		return nil
	}

	cmd := exec.Command(e.path, e.args...) //nolint:gosec // G204: engine path comes from configuration
	if len(e.env) > 0 {
		cmd.Env = append(os.Environ(), e.env...)
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return e.fail("init", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return e.fail("init", err)
	}
	if err := cmd.Start(); err != nil {
		return e.fail("init", err)
	}

	e.cmd = cmd
	e.stdin = stdin
	e.lines = make(chan string, 64)
	go e.readLines(stdout, e.lines)

	if err := e.handshake(ctx); err != nil {
		e.kill()
		return e.fail("init", err)
	}
	return nil
}

// handshake sends uci and isready and waits for both acknowledgements.
func (e *UCIEngine) handshake(ctx context.Context) error {
	if err := e.send("uci"); err != nil {
		return err
	}
	if _, err := e.waitFor(ctx, "uciok", nil); err != nil {
		return err
	}
	if err := e.send("isready"); err != nil {
		return err
	}
	_, err := e.waitFor(ctx, "readyok", nil)
	return err
}

// readLines copies the engine's output into lines until EOF.
func (e *UCIEngine) readLines(r io.Reader, lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		e.record("<", line)
		lines <- line
	}
}

// send writes one command line to the engine.
func (e *UCIEngine) send(command string) error {
	e.record(">", command)
	_, err := io.WriteString(e.stdin, command+"\n")
	return err
}

// record appends a line to the transcript, if there is one.
func (e *UCIEngine) record(direction, line string) {
	if e.transcript == nil {
		return
	}
	e.tmu.Lock()
	defer e.tmu.Unlock()
	fmt.Fprintf(e.transcript, "%s %s\n", direction, line)
}

// waitFor reads lines until one starts with prefix and returns it. Other
// lines are passed to onLine if it is not nil.
func (e *UCIEngine) waitFor(ctx context.Context, prefix string, onLine func(string)) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case line, ok := <-e.lines:
			if !ok {
				return "", io.ErrUnexpectedEOF
			}
			if strings.HasPrefix(line, prefix) {
				return line, nil
			}
			if onLine != nil {
				onLine(line)
			}
		}
	}
}

// BestMove searches fen to a depth equal to the level. A reply of
// "(none)" or "0000" means the engine has no move.
func (e *UCIEngine) BestMove(ctx context.Context, fen string, level int) (engine.EncodedMove, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd == nil {
		return engine.EncodedMove{}, false, e.fail("bestmove", fmt.Errorf("engine not started"))
	}
	depth := e.depth
	if level > 0 {
		depth = ClampLevel(level)
	}

	if err := e.resync(ctx); err != nil {
		return engine.EncodedMove{}, false, e.fail("bestmove", err)
	}
	if err := e.send("position fen " + fen); err != nil {
		return engine.EncodedMove{}, false, e.fail("bestmove", err)
	}
	if err := e.send("go depth " + strconv.Itoa(depth)); err != nil {
		return engine.EncodedMove{}, false, e.fail("bestmove", err)
	}

	eval := Evaluation{}
	parse := func(line string) {
		if strings.HasPrefix(line, "info") {
			e.parseInfo(line, &eval)
		}
	}
	line, err := e.waitFor(ctx, "bestmove", parse)
	if err != nil {
		if ctx.Err() != nil {
			e.abandonSearch()
		}
		return engine.EncodedMove{}, false, e.fail("bestmove", err)
	}

	fields := strings.Fields(line)
	if len(fields) < 2 || fields[1] == "(none)" || fields[1] == "0000" {
		e.last = eval
		return engine.EncodedMove{}, false, nil
	}
	eval.BestMove = fields[1]
	e.last = eval

	em, err := resolveMove(fen, fields[1])
	if err != nil {
		return engine.EncodedMove{}, false, e.fail("bestmove", err)
	}
	return em, true, nil
}

// abandonSearch stops a search whose caller has gone away and discards
// its bestmove so the next request starts in step.
func (e *UCIEngine) abandonSearch() {
	if err := e.send("stop"); err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), abandonTimeout)
	defer cancel()
	if _, err := e.waitFor(ctx, "bestmove", nil); err != nil {
		e.pending = true
	}
}

// resync brings the engine back in step before a new search: the bestmove
// of an abandoned search is read and dropped, then isready is answered.
// Every line read before readyok belongs to earlier commands.
func (e *UCIEngine) resync(ctx context.Context) error {
	if e.pending {
		if _, err := e.waitFor(ctx, "bestmove", nil); err != nil {
			return err
		}
		e.pending = false
	}
	if err := e.send("isready"); err != nil {
		return err
	}
	_, err := e.waitFor(ctx, "readyok", nil)
	return err
}

var _ Evaluator = (*UCIEngine)(nil)

// LastEvaluation returns what the engine reported during the last search.
func (e *UCIEngine) LastEvaluation() Evaluation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// parseInfo updates eval from an "info" line. Fields missing from the
// line leave eval unchanged.
func (e *UCIEngine) parseInfo(line string, eval *Evaluation) {
	parts := strings.Fields(line)
	for i := 0; i < len(parts); i++ {
		switch parts[i] {
		case "depth":
			if i+1 < len(parts) {
				if d, err := strconv.Atoi(parts[i+1]); err == nil {
					eval.Depth = d
				}
				i++
			}
		case "score":
			if i+2 < len(parts) {
				n, err := strconv.Atoi(parts[i+2])
				if err == nil {
					switch parts[i+1] {
					case "cp":
						eval.Score = n
						eval.IsMate = false
					case "mate":
						eval.MateIn = n
						eval.IsMate = true
					}
				}
				i += 2
			}
		case "pv":
			return
		}
	}
}

// Quit asks the engine to exit and releases the process. Every failure
// along the way is reported.
func (e *UCIEngine) Quit() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd == nil {
		return nil
	}

	var result *multierror.Error
	if err := e.send("quit"); err != nil {
		result = multierror.Append(result, err)
	}
	if err := e.stdin.Close(); err != nil {
		result = multierror.Append(result, err)
	}

	timer := time.NewTimer(quitTimeout)
	defer timer.Stop()
drain:
	for {
		select {
		case _, ok := <-e.lines:
			if !ok {
				break drain
			}
		case <-timer.C:
			result = multierror.Append(result, fmt.Errorf("engine did not exit within %s", quitTimeout))
			if err := e.cmd.Process.Kill(); err != nil {
				result = multierror.Append(result, err)
			}
			for range e.lines {
			}
			break drain
		}
	}

	if err := e.cmd.Wait(); err != nil && result.ErrorOrNil() == nil {
		result = multierror.Append(result, err)
	}
	e.cmd = nil
	e.pending = false

	if err := result.ErrorOrNil(); err != nil {
		return e.fail("quit", err)
	}
	return nil
}

// kill stops a process that failed its handshake.
func (e *UCIEngine) kill() {
	_ = e.stdin.Close()
	if e.cmd.Process != nil {
		e.cmd.Process.Kill() //nolint:errcheck,gosec // G104: cleanup after failed start
	}
	for range e.lines {
	}
	e.cmd.Wait() //nolint:errcheck,gosec // G104: cleanup after failed start
	e.cmd = nil
}
