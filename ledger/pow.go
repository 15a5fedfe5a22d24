package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// MaxDifficulty is the number of hex characters in a digest. No hash can have more
// leading zeros than that, so a higher difficulty would never be satisfied.
const MaxDifficulty = 2 * DigestSize

// ctxCheckInterval is how many nonces are tried between two context checks.
const ctxCheckInterval = 1 << 12

// MeetsDifficulty reports whether the hex form of d starts with at least
// difficulty '0' characters.
func MeetsDifficulty(d Digest, difficulty int) bool {
	if difficulty < 0 || difficulty > MaxDifficulty {
		return false
	}
	full := difficulty / 2
	for i := 0; i < full; i++ {
		if d[i] != 0 {
			return false
		}
	}
	if difficulty%2 == 1 && d[full]>>4 != 0 {
		return false
	}
	return true
}

func checkDifficulty(difficulty int) error {
	if difficulty < 0 || difficulty > MaxDifficulty {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidDifficulty, difficulty, MaxDifficulty)
	}
	return nil
}

// Mine searches for a nonce that makes the block hash meet the given difficulty,
// updating Nonce and Hash in place. The search starts from the current nonce and
// only returns once it succeeds, so it can run for a long time at high difficulty.
// An error is returned only for an out of range difficulty or a payload that
// cannot be serialized.
func (b *Block) Mine(difficulty int) error {
	if err := checkDifficulty(difficulty); err != nil {
		return err
	}
	_, err := b.mine(context.Background(), difficulty, 0)
	return err
}

// mine is the proof-of-work loop. The payload is serialized once and only the
// trailing nonce is rewritten between attempts. It returns the number of hashes
// computed. A maxAttempts of 0 means no limit.
func (b *Block) mine(ctx context.Context, difficulty int, maxAttempts uint64) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMiningAborted, err)
	}
	data, err := payloadBytes(b.Payload)
	if err != nil {
		return 0, err
	}
	buf := b.encode(data)
	nonceAt := len(buf) - 8

	var attempts uint64
	for {
		binary.LittleEndian.PutUint64(buf[nonceAt:], b.Nonce)
		b.Hash = sha256.Sum256(buf)
		attempts++
		if MeetsDifficulty(b.Hash, difficulty) {
			return attempts, nil
		}
		if maxAttempts > 0 && attempts >= maxAttempts {
			return attempts, fmt.Errorf("%w after %d attempts", ErrMiningExhausted, attempts)
		}
		if attempts%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return attempts, fmt.Errorf("%w: %w", ErrMiningAborted, err)
			}
		}
		b.Nonce++
	}
}
