package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luca-patrignani/powchain/ledger"
)

// TestLoadConfigEmptyPath verifies that no file means the defaults.
func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Chain.Difficulty != ledger.DefaultDifficulty {
		t.Fatalf("expected difficulty %d, got %d", ledger.DefaultDifficulty, cfg.Chain.Difficulty)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}
}

// TestLoadConfigFile verifies that values from the file override the defaults and
// missing values keep them.
func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "chain:\n  difficulty: 2\n  max_attempts: 5000\ndemo:\n  blocks: 4\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Chain.Difficulty != 2 {
		t.Fatalf("expected difficulty 2, got %d", cfg.Chain.Difficulty)
	}
	if cfg.Chain.MaxAttempts != 5000 {
		t.Fatalf("expected max attempts 5000, got %d", cfg.Chain.MaxAttempts)
	}
	if cfg.Demo.Blocks != 4 {
		t.Fatalf("expected 4 blocks, got %d", cfg.Demo.Blocks)
	}
	if cfg.Demo.TransactionsPerBlock != 8 {
		t.Fatalf("expected default 8 transactions per block, got %d", cfg.Demo.TransactionsPerBlock)
	}
}

// TestLoadConfigMissingFile verifies that a wrong path is reported.
func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

// TestDecodeEmpty verifies that an empty document is accepted.
func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Demo.Blocks != 10 {
		t.Fatalf("expected default 10 blocks, got %d", cfg.Demo.Blocks)
	}
}

// TestDecodeInvalid verifies that malformed YAML and out of range values are
// rejected.
func TestDecodeInvalid(t *testing.T) {
	inputs := []string{
		"chain: [",
		"chain:\n  difficulty: 65\n",
		"chain:\n  difficulty: -1\n",
		"demo:\n  blocks: 0\n",
		"demo:\n  transactions_per_block: 0\n",
		"demo:\n  max_amount: 0\n",
		"demo:\n  blocks: 2\n  tamper_position: 3\n",
		"log:\n  level: verbose\n",
	}
	for _, in := range inputs {
		if _, err := Decode(strings.NewReader(in)); err == nil {
			t.Fatalf("expected error for %q, got nil", in)
		}
	}
}

// TestLedgerOptions verifies that the chain section configures the blockchain.
func TestLedgerOptions(t *testing.T) {
	cfg := Default()
	cfg.Chain.Difficulty = 1
	bc, err := ledger.NewBlockchain(cfg.LedgerOptions()...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bc.Difficulty() != 1 {
		t.Fatalf("expected difficulty 1, got %d", bc.Difficulty())
	}
}
