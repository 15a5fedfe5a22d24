package ledger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Blockchain is an append-only sequence of blocks starting at a genesis block.
// It is safe for concurrent use: appends are serialized and readers see copies.
type Blockchain struct {
	mu          sync.RWMutex
	blocks      []Block
	difficulty  int
	maxAttempts uint64
	logger      *slog.Logger
	now         func() time.Time
}

// NewBlockchain creates a chain holding only its genesis block. The genesis block
// has index 0, an empty payload and a zero previous hash, and it is not mined.
// An error is returned if the configured difficulty could never be met.
func NewBlockchain(opts ...Option) (*Blockchain, error) {
	bc := &Blockchain{
		blocks:     make([]Block, 0, 1),
		difficulty: DefaultDifficulty,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(bc)
	}
	if err := checkDifficulty(bc.difficulty); err != nil {
		return nil, err
	}

	genesis := NewBlock(0, bc.now().UnixMilli(), Bytes(""), Digest{})
	bc.blocks = append(bc.blocks, genesis)
	bc.logger.Debug("genesis block created", "hash", genesis.Hash.Hex(), "difficulty", bc.difficulty)

	return bc, nil
}

// NewBlockchainFromBlocks wraps an existing sequence of blocks, genesis first, for
// example a copy received from elsewhere. The blocks are not checked: call Verify
// to find out whether they form a valid chain. Further blocks can be appended.
func NewBlockchainFromBlocks(blocks []Block, opts ...Option) (*Blockchain, error) {
	if len(blocks) == 0 {
		return nil, ErrEmptyChain
	}
	bc := &Blockchain{
		blocks:     make([]Block, len(blocks)),
		difficulty: DefaultDifficulty,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
	copy(bc.blocks, blocks)
	for _, opt := range opts {
		opt(bc)
	}
	if err := checkDifficulty(bc.difficulty); err != nil {
		return nil, err
	}
	return bc, nil
}

// Difficulty returns the number of leading hex zeros every appended block must have.
func (bc *Blockchain) Difficulty() int {
	return bc.difficulty
}

// Len returns the number of blocks, genesis included.
func (bc *Blockchain) Len() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.blocks)
}

// LastBlock returns a copy of the most recently appended block.
func (bc *Blockchain) LastBlock() (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.last()
}

func (bc *Blockchain) last() (Block, error) {
	if len(bc.blocks) == 0 {
		return Block{}, ErrEmptyChain
	}
	return bc.blocks[len(bc.blocks)-1], nil
}

// GetByIndex returns a copy of the block at the given position in the chain.
func (bc *Blockchain) GetByIndex(position int) (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if position < 0 || position >= len(bc.blocks) {
		return Block{}, fmt.Errorf("position %d out of range [0, %d)", position, len(bc.blocks))
	}
	return bc.blocks[position], nil
}

// Blocks returns a copy of the chain, genesis first.
func (bc *Blockchain) Blocks() []Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	out := make([]Block, len(bc.blocks))
	copy(out, bc.blocks)
	return out
}

// NextBlock builds a draft following the current tail: its index is the tail's
// index plus one, its previous hash is the tail's hash and its timestamp is taken
// from the chain clock.
func (bc *Blockchain) NextBlock(payload Payload) Block {
	var index uint64
	var prevHash Digest
	if latest, err := bc.LastBlock(); err == nil {
		index = latest.Index + 1
		prevHash = latest.Hash
	}
	return NewBlock(index, bc.now().UnixMilli(), payload, prevHash)
}

// Append links the draft to the current tail, mines it at the chain difficulty and
// stores it. The draft's PrevHash, Hash and Nonce are ignored and the sealed block
// is returned. Append blocks until a valid nonce is found, unless WithMaxAttempts
// bounds the search.
func (bc *Blockchain) Append(draft Block) (Block, error) {
	return bc.AppendContext(context.Background(), draft)
}

// AppendContext is Append with cancellation. When ctx is done before a nonce is
// found the error wraps both ErrMiningAborted and ctx.Err(), and the chain is left
// unchanged.
func (bc *Blockchain) AppendContext(ctx context.Context, draft Block) (Block, error) {
	// The write lock is held while mining so that the tail cannot change between
	// linking and storing.
	bc.mu.Lock()
	defer bc.mu.Unlock()

	latest, err := bc.last()
	if err != nil {
		return Block{}, err
	}

	block := draft
	block.PrevHash = latest.Hash
	block.Nonce = 0

	start := time.Now()
	attempts, err := block.mine(ctx, bc.difficulty, bc.maxAttempts)
	if err != nil {
		bc.logger.Warn("mining failed", "index", block.Index, "attempts", attempts, "error", err)
		return Block{}, fmt.Errorf("append block %d: %w", block.Index, err)
	}

	bc.blocks = append(bc.blocks, block)
	bc.logger.Debug("block mined",
		"index", block.Index,
		"nonce", block.Nonce,
		"attempts", attempts,
		"hash", block.Hash.Hex(),
		"elapsed", time.Since(start),
	)
	return block, nil
}

// IsValid reports whether every block matches its own hash and every block after
// genesis points to the hash of the block before it.
func (bc *Blockchain) IsValid() bool {
	return bc.Verify() == nil
}

// Verify scans the whole chain and returns a *ValidationError for the first block
// whose hash does not match its content or whose previous hash does not match the
// preceding block. Genesis is checked against its own content and must carry the
// zero previous hash.
func (bc *Blockchain) Verify() error {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if len(bc.blocks) == 0 {
		return ErrEmptyChain
	}

	for i := range bc.blocks {
		current := bc.blocks[i]
		expected, err := current.ComputeHash()
		if err != nil {
			return bc.invalid(i, err)
		}
		if current.Hash != expected {
			return bc.invalid(i, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, expected.Hex(), current.Hash.Hex()))
		}
		if i == 0 {
			if !current.PrevHash.IsZero() {
				return bc.invalid(0, fmt.Errorf("%w: got %s", ErrInvalidGenesis, current.PrevHash.Hex()))
			}
			continue
		}
		previous := bc.blocks[i-1]
		if current.PrevHash != previous.Hash {
			return bc.invalid(i, fmt.Errorf("%w: expected %s, got %s", ErrBrokenLink, previous.Hash.Hex(), current.PrevHash.Hex()))
		}
	}
	return nil
}

// VerifyWork runs Verify and also checks that every block after genesis meets the
// chain difficulty.
func (bc *Blockchain) VerifyWork() error {
	if err := bc.Verify(); err != nil {
		return err
	}

	bc.mu.RLock()
	defer bc.mu.RUnlock()
	for i := 1; i < len(bc.blocks); i++ {
		if !MeetsDifficulty(bc.blocks[i].Hash, bc.difficulty) {
			return bc.invalid(i, fmt.Errorf("%w %d: %s", ErrInsufficientWork, bc.difficulty, bc.blocks[i].Hash.Hex()))
		}
	}
	return nil
}

func (bc *Blockchain) invalid(position int, err error) error {
	bc.logger.Warn("chain validation failed", "position", position, "error", err)
	return &ValidationError{Position: position, Err: err}
}
