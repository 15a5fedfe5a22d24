package ledger

import (
	"log/slog"
	"time"
)

// DefaultDifficulty is the number of leading hex zeros required when no
// WithDifficulty option is given.
const DefaultDifficulty = 3

// Option configures a Blockchain at construction.
type Option func(*Blockchain)

// WithDifficulty sets the number of leading hex zeros required of appended
// blocks. Values outside [0, MaxDifficulty] make the constructor fail.
func WithDifficulty(difficulty int) Option {
	return func(bc *Blockchain) {
		bc.difficulty = difficulty
	}
}

// WithLogger sets the logger for genesis, mining and validation events. A nil
// logger keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(bc *Blockchain) {
		if logger != nil {
			bc.logger = logger
		}
	}
}

// WithClock sets the time source used for the genesis block and NextBlock.
func WithClock(now func() time.Time) Option {
	return func(bc *Blockchain) {
		if now != nil {
			bc.now = now
		}
	}
}

// WithMaxAttempts bounds the number of hashes tried per appended block. Append
// fails with ErrMiningExhausted when the bound is hit. 0 removes the bound.
func WithMaxAttempts(attempts uint64) Option {
	return func(bc *Blockchain) {
		bc.maxAttempts = attempts
	}
}
