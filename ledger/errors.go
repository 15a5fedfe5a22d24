package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyChain means the chain lost its genesis block. NewBlockchain never
	// produces such a chain.
	ErrEmptyChain = errors.New("blockchain is empty")

	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrMiningAborted     = errors.New("mining aborted")
	ErrMiningExhausted   = errors.New("mining attempts exhausted")

	ErrPayloadTooLarge = errors.New("payload too large")

	ErrHashMismatch     = errors.New("hash does not match block content")
	ErrBrokenLink       = errors.New("previous hash does not match previous block")
	ErrInvalidGenesis   = errors.New("genesis previous hash is not zero")
	ErrInsufficientWork = errors.New("hash does not meet difficulty")
)

// ValidationError reports the first block found to break the chain.
type ValidationError struct {
	Position int
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("block %d invalid: %v", e.Position, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
