package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v2"

	"github.com/luca-patrignani/powchain/ledger"
)

// Config is the YAML configuration of the demo driver.
type Config struct {
	Chain struct {
		Difficulty  int    `yaml:"difficulty"`
		MaxAttempts uint64 `yaml:"max_attempts"`
	} `yaml:"chain"`

	Demo struct {
		Blocks               int    `yaml:"blocks"`
		TransactionsPerBlock int    `yaml:"transactions_per_block"`
		MaxAmount            uint64 `yaml:"max_amount"`
		TamperPosition       int    `yaml:"tamper_position"`
	} `yaml:"demo"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is given: ten blocks of
// eight transactions mined at difficulty 3, with the third block tampered with.
func Default() *Config {
	var cfg Config
	cfg.Chain.Difficulty = ledger.DefaultDifficulty
	cfg.Demo.Blocks = 10
	cfg.Demo.TransactionsPerBlock = 8
	cfg.Demo.MaxAmount = 1_000_000
	cfg.Demo.TamperPosition = 3
	cfg.Log.Level = "info"
	return &cfg
}

// LoadConfig reads a YAML file. Fields missing from the file keep their default
// value. An empty filename returns the defaults.
func LoadConfig(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads YAML from r on top of the defaults and validates the result.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every field is in range.
func (c *Config) Validate() error {
	if c.Chain.Difficulty < 0 || c.Chain.Difficulty > ledger.MaxDifficulty {
		return fmt.Errorf("chain.difficulty must be in [0, %d], got %d", ledger.MaxDifficulty, c.Chain.Difficulty)
	}
	if c.Demo.Blocks < 1 {
		return fmt.Errorf("demo.blocks must be at least 1, got %d", c.Demo.Blocks)
	}
	if c.Demo.TransactionsPerBlock < 1 {
		return fmt.Errorf("demo.transactions_per_block must be at least 1, got %d", c.Demo.TransactionsPerBlock)
	}
	if c.Demo.MaxAmount == 0 {
		return errors.New("demo.max_amount must be positive")
	}
	if c.Demo.TamperPosition < 0 || c.Demo.TamperPosition > c.Demo.Blocks {
		return fmt.Errorf("demo.tamper_position must be in [0, %d], got %d", c.Demo.Blocks, c.Demo.TamperPosition)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}

// LedgerOptions translates the chain section into ledger options.
func (c *Config) LedgerOptions() []ledger.Option {
	return []ledger.Option{
		ledger.WithDifficulty(c.Chain.Difficulty),
		ledger.WithMaxAttempts(c.Chain.MaxAttempts),
	}
}
