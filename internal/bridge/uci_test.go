package bridge

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/lgbarn/chessboy-go/internal/engine"
	chesserrors "github.com/lgbarn/chessboy-go/internal/errors"
	"github.com/lgbarn/chessboy-go/internal/testutil"
)

func TestFormatEvaluation(t *testing.T) {
	tests := []struct {
		name string
		eval *Evaluation
		want string
	}{
		{"positive centipawns", &Evaluation{Score: 123}, "+1.23"},
		{"negative centipawns", &Evaluation{Score: -45}, "-0.45"},
		{"zero", &Evaluation{Score: 0}, "+0.00"},
		{"large", &Evaluation{Score: 1250}, "+12.50"},
		{"small negative", &Evaluation{Score: -8}, "-0.08"},
		{"minus one pawn", &Evaluation{Score: -100}, "-1.00"},
		{"mate in one", &Evaluation{IsMate: true, MateIn: 1}, "+M1"},
		{"mate in many", &Evaluation{IsMate: true, MateIn: 15}, "+M15"},
		{"getting mated", &Evaluation{IsMate: true, MateIn: -5}, "-M5"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatEvaluation(tt.eval); got != tt.want {
				t.Errorf("FormatEvaluation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseInfo(t *testing.T) {
	tests := []struct {
		name  string
		start Evaluation
		line  string
		want  Evaluation
	}{
		{
			name: "realistic line",
			line: "info depth 22 seldepth 31 multipv 1 score cp 35 nodes 2145678 nps 2500000 time 858 pv e2e4 e7e5 g1f3",
			want: Evaluation{Depth: 22, Score: 35},
		},
		{
			name: "mate score",
			line: "info depth 18 seldepth 12 score mate 7 nodes 500000 pv e1g1",
			want: Evaluation{Depth: 18, IsMate: true, MateIn: 7},
		},
		{
			name: "getting mated",
			line: "info depth 20 score mate -3 nodes 300000",
			want: Evaluation{Depth: 20, IsMate: true, MateIn: -3},
		},
		{
			name:  "missing score keeps old values",
			start: Evaluation{Depth: 10, Score: 50, BestMove: "e2e4"},
			line:  "info nodes 100000 time 500",
			want:  Evaluation{Depth: 10, Score: 50, BestMove: "e2e4"},
		},
		{
			name:  "empty line",
			start: Evaluation{Depth: 10, Score: 25},
			line:  "",
			want:  Evaluation{Depth: 10, Score: 25},
		},
		{
			name: "score without value",
			line: "info depth 10 score",
			want: Evaluation{Depth: 10},
		},
		{
			name: "depth without value",
			line: "info nodes 100000 depth",
			want: Evaluation{},
		},
		{
			name: "pv words are not fields",
			line: "info depth 4 pv depth 9",
			want: Evaluation{Depth: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &UCIEngine{}
			eval := tt.start
			e.parseInfo(tt.line, &eval)
			testutil.AssertEqual(t, eval, tt.want)
		})
	}
}

// TestHelperProcess is not a real test. It is the fake UCI engine that
// the tests below start as a child process.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("CHESSBOY_FAKE_ENGINE") != "1" {
		return
	}
	runFakeEngine(os.Stdin, os.Stdout, os.Getenv("CHESSBOY_FAKE_REPLY"))
	os.Exit(0)
}

// runFakeEngine answers the UCI handshake and replies to every search
// with reply. The reply "hang" makes the first search wait for stop. The
// reply "late" does the same, but answers stop with e2e4 only after a
// delay and plays d2d4 from then on.
func runFakeEngine(in io.Reader, out io.Writer, reply string) {
	hang := reply == "hang" || reply == "late"
	late := reply == "late"
	if hang {
		reply = "e2e4"
	}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "uci":
			fmt.Fprintln(out, "id name fake")
			fmt.Fprintln(out, "uciok")
		case "isready":
			fmt.Fprintln(out, "readyok")
		case "go":
			depth := "1"
			if len(fields) > 2 {
				depth = fields[2]
			}
			fmt.Fprintf(out, "info depth %s score cp 42 nodes 10 pv %s\n", depth, reply)
			if hang {
				hang = false
				continue
			}
			fmt.Fprintf(out, "bestmove %s\n", reply)
		case "stop":
			if late {
				time.Sleep(300 * time.Millisecond)
				fmt.Fprintf(out, "bestmove %s\n", reply)
				late = false
				reply = "d2d4"
				continue
			}
			fmt.Fprintf(out, "bestmove %s\n", reply)
		case "quit":
			return
		}
	}
}

// fakeEngine starts a fake engine that always replies with reply.
func fakeEngine(t *testing.T, reply string, transcript io.Writer) *UCIEngine {
	t.Helper()
	e := NewUCIEngine(UCIConfig{
		Name:       "fake",
		Path:       os.Args[0],
		Args:       []string{"-test.run=^TestHelperProcess$"},
		Env:        []string{"CHESSBOY_FAKE_ENGINE=1", "CHESSBOY_FAKE_REPLY=" + reply},
		Level:      3,
		Transcript: transcript,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := e.Quit(); err != nil {
			t.Errorf("Quit() failed: %v", err)
		}
	})
	return e
}

func TestUCIEngine_BestMove(t *testing.T) {
	var transcript bytes.Buffer
	e := fakeEngine(t, "e2e4", &transcript)

	em, ok, err := e.BestMove(context.Background(), engine.InitialFEN, 0)
	if err != nil {
		t.Fatalf("BestMove() failed: %v", err)
	}
	if !ok {
		t.Fatal("BestMove() found no move")
	}
	testutil.AssertEqual(t, em, engine.EncodedMove{From: 12, To: 28, Flag: engine.FlagNone})
	testutil.AssertEqual(t, e.LastEvaluation(), Evaluation{Depth: 3, Score: 42, BestMove: "e2e4"})

	if e.ID() != "fake-level=3" {
		t.Errorf("ID() = %q, want fake-level=3", e.ID())
	}
	if err := e.Quit(); err != nil {
		t.Fatalf("Quit() failed: %v", err)
	}
	testutil.AssertContains(t, transcript.String(), "< uciok")
	testutil.AssertContains(t, transcript.String(), "> position fen "+engine.InitialFEN)
	testutil.AssertContains(t, transcript.String(), "> go depth 3")
}

func TestUCIEngine_LevelSetsDepth(t *testing.T) {
	var transcript bytes.Buffer
	e := fakeEngine(t, "e2e4", &transcript)
	if _, _, err := e.BestMove(context.Background(), engine.InitialFEN, 99); err != nil {
		t.Fatalf("BestMove() failed: %v", err)
	}
	if err := e.Quit(); err != nil {
		t.Fatalf("Quit() failed: %v", err)
	}
	testutil.AssertContains(t, transcript.String(), fmt.Sprintf("> go depth %d", MaxLevel))
}

func TestUCIEngine_Replies(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		reply  string
		want   engine.EncodedMove
		wantOK bool
	}{
		{"castling", testutil.KiwipeteFEN, "e1g1", engine.EncodedMove{From: 4, To: 6, Flag: engine.FlagCastleKingSide}, true},
		{"en passant", testutil.EnPassantFEN, "e5d6", engine.EncodedMove{From: 36, To: 43, Flag: engine.FlagEnPassant}, true},
		{"none", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", "(none)", engine.EncodedMove{}, false},
		{"null move", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", "0000", engine.EncodedMove{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := fakeEngine(t, tt.reply, nil)
			em, ok, err := e.BestMove(context.Background(), tt.fen, 1)
			if err != nil {
				t.Fatalf("BestMove() failed: %v", err)
			}
			if ok != tt.wantOK {
				t.Errorf("BestMove() ok = %v, want %v", ok, tt.wantOK)
			}
			testutil.AssertEqual(t, em, tt.want)
		})
	}
}

func TestUCIEngine_IllegalReply(t *testing.T) {
	e := fakeEngine(t, "e2e5", nil)
	_, ok, err := e.BestMove(context.Background(), engine.InitialFEN, 1)
	if ok {
		t.Error("BestMove() ok = true for an illegal reply")
	}
	testutil.AssertErrorIs(t, err, chesserrors.ErrEngine)
	testutil.AssertErrorIs(t, err, chesserrors.ErrIllegalMove)

	var engineErr *chesserrors.EngineError
	if !errors.As(err, &engineErr) || engineErr.Op != "bestmove" {
		t.Errorf("error = %v, want EngineError for bestmove", err)
	}
}

func TestUCIEngine_CancelledSearchStaysInStep(t *testing.T) {
	e := fakeEngine(t, "hang", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, _, err := e.BestMove(ctx, engine.InitialFEN, 1)
	testutil.AssertErrorIs(t, err, context.DeadlineExceeded)

	em, ok, err := e.BestMove(context.Background(), engine.InitialFEN, 1)
	if err != nil || !ok {
		t.Fatalf("BestMove() after cancel = %v, %v", ok, err)
	}
	testutil.AssertEqual(t, em, engine.EncodedMove{From: 12, To: 28})
}

func TestUCIEngine_LateReplyToStopIsDropped(t *testing.T) {
	saved := abandonTimeout
	abandonTimeout = 20 * time.Millisecond
	t.Cleanup(func() { abandonTimeout = saved })

	var transcript bytes.Buffer
	e := fakeEngine(t, "late", &transcript)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, _, err := e.BestMove(ctx, engine.InitialFEN, 1)
	testutil.AssertErrorIs(t, err, context.DeadlineExceeded)

	// The e2e4 for the cancelled search arrives after abandonSearch gave up.
	em, ok, err := e.BestMove(context.Background(), engine.InitialFEN, 1)
	if err != nil || !ok {
		t.Fatalf("BestMove() after late stop = %v, %v", ok, err)
	}
	testutil.AssertEqual(t, em, engine.EncodedMove{From: 11, To: 27})
	if err := e.Quit(); err != nil {
		t.Fatalf("Quit() failed: %v", err)
	}
	testutil.AssertContains(t, transcript.String(), "> isready")
}

func TestUCIEngine_NotStarted(t *testing.T) {
	e := NewUCIEngine(UCIConfig{Path: "stockfish"})
	_, _, err := e.BestMove(context.Background(), engine.InitialFEN, 1)
	testutil.AssertErrorIs(t, err, chesserrors.ErrEngine)
	testutil.AssertNoError(t, e.Quit(), "Quit() on an engine that never started")
}

func TestUCIEngine_BadPath(t *testing.T) {
	e := NewUCIEngine(UCIConfig{Path: "/nonexistent/chess-engine"})
	err := e.Init(context.Background())
	testutil.AssertErrorIs(t, err, chesserrors.ErrEngine)

	var engineErr *chesserrors.EngineError
	if !errors.As(err, &engineErr) || engineErr.Op != "init" {
		t.Errorf("error = %v, want EngineError for init", err)
	}
}

func TestEngineID(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "stockfish-level=1"},
		{0, "stockfish-level=5"},
		{12, "stockfish-level=7"},
	}
	for _, tt := range tests {
		if got := EngineID("stockfish", tt.level); got != tt.want {
			t.Errorf("EngineID(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
