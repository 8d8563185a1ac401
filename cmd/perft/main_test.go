package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/lgbarn/chessboy-go/internal/config"
	chesserrors "github.com/lgbarn/chessboy-go/internal/errors"
	"github.com/lgbarn/chessboy-go/internal/testutil"
)

func init() {
	color.NoColor = true
}

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		depth   int
		divide  bool
		expect  uint64
		wantErr bool
		want    []string
	}{
		{
			name:  "initial depth 2",
			depth: 2,
			want:  []string{"Nodes: 400", "Depth: 2", "FEN:   " + testutil.InitialFEN},
		},
		{
			name:   "expect pass",
			depth:  3,
			expect: 8902,
			want:   []string{"Nodes: 8902", "PASS"},
		},
		{
			name:    "expect fail",
			depth:   1,
			expect:  21,
			wantErr: true,
			want:    []string{"FAIL expected 21"},
		},
		{
			name:   "divide",
			fen:    testutil.EnPassantFEN,
			depth:  2,
			divide: true,
			want:   []string{"e5d6   ", "Nodes: 19"},
		},
		{
			name:    "bad fen",
			fen:     "8/8/8 w - - 0 1",
			depth:   1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cfg := config.NewConfigBuilder().
				WithPerft(tt.fen, tt.depth, tt.divide).
				WithWorkers(2).
				WithOutput(&out).
				Build()

			err := run(context.Background(), cfg, tt.expect)
			if (err != nil) != tt.wantErr {
				t.Fatalf("run() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	cfg := config.NewConfigBuilder().WithPerft("", 1, false).WithOutput(&bytes.Buffer{}).Build()

	err := run(context.Background(), cfg, 19)
	if !errors.Is(err, errMismatch) {
		t.Errorf("run() error = %v, want errMismatch", err)
	}

	cfg.Perft.FEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1"
	err = run(context.Background(), cfg, 0)
	if !errors.Is(err, chesserrors.ErrInvalidFEN) {
		t.Errorf("run() error = %v, want ErrInvalidFEN", err)
	}
}
