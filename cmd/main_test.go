package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/powchain/config"
	"github.com/luca-patrignani/powchain/ledger"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Chain.Difficulty = 1
	cfg.Demo.Blocks = 4
	cfg.Demo.TransactionsPerBlock = 3
	cfg.Demo.TamperPosition = 2
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestRun verifies that the demo mines the configured number of blocks, accepts the
// chain and rejects the tampered copy.
func TestRun(t *testing.T) {
	pterm.DisableOutput()
	defer pterm.EnableOutput()

	r, err := run(context.Background(), testConfig(), discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.chain.Len() != 5 {
		t.Fatalf("expected 5 blocks, got %d", r.chain.Len())
	}
	if err := r.chain.VerifyWork(); err != nil {
		t.Fatalf("mined chain should be valid: %v", err)
	}
	if r.tamperedValid {
		t.Fatal("tampered copy should be rejected")
	}
	for _, b := range r.chain.Blocks()[1:] {
		if !strings.HasPrefix(b.Hash.Hex(), "0") {
			t.Fatalf("block %d hash %s does not meet difficulty 1", b.Index, b.Hash)
		}
	}
}

// TestRunWithoutTamper verifies that tamper position 0 skips the tampering step.
func TestRunWithoutTamper(t *testing.T) {
	pterm.DisableOutput()
	defer pterm.EnableOutput()

	cfg := testConfig()
	cfg.Demo.TamperPosition = 0
	r, err := run(context.Background(), cfg, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.tamperPosition != 0 || r.tamperedValid {
		t.Fatalf("unexpected tamper report: %+v", r)
	}
}

// TestRunCancelled verifies that a cancelled context aborts mining.
func TestRunCancelled(t *testing.T) {
	pterm.DisableOutput()
	defer pterm.EnableOutput()

	cfg := testConfig()
	cfg.Chain.Difficulty = ledger.MaxDifficulty
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := run(ctx, cfg, discardLogger())
	if !errors.Is(err, ledger.ErrMiningAborted) {
		t.Fatalf("expected ErrMiningAborted, got %v", err)
	}
}

// TestLogLevel verifies the mapping from config names to PTerm levels.
func TestLogLevel(t *testing.T) {
	tests := map[string]pterm.LogLevel{
		"debug": pterm.LogLevelDebug,
		"INFO":  pterm.LogLevelInfo,
		"warn":  pterm.LogLevelWarn,
		"error": pterm.LogLevelError,
		"":      pterm.LogLevelInfo,
	}
	for in, want := range tests {
		if got := logLevel(in); got != want {
			t.Fatalf("logLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}

// TestExitCode verifies that a failed run or an undetected tampering exits with 1.
func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		r    report
		err  error
		want int
	}{
		{"success", report{tamperPosition: 2}, nil, 0},
		{"error", report{}, ledger.ErrMiningAborted, 1},
		{"tamper accepted", report{tamperPosition: 2, tamperedValid: true}, nil, 1},
	}
	for _, tt := range tests {
		if got := exitCode(tt.r, tt.err); got != tt.want {
			t.Fatalf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}
