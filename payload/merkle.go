package payload

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/luca-patrignani/powchain/ledger"
)

// Summary is the Merkle root of a transaction list together with its size.
type Summary struct {
	Root  ledger.Digest `json:"root"`
	Count int           `json:"count"`
}

func (s Summary) CanonicalBytes() ([]byte, error) {
	return json.Marshal(s)
}

// Summarize computes the Merkle summary of l.
func (l *List) Summarize() (Summary, error) {
	root, err := MerkleRoot(l.txs)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Root: root, Count: len(l.txs)}, nil
}

// MerkleRoot hashes every transaction into a leaf and combines pairs of nodes
// until one remains. A level with an odd number of nodes pairs its last node
// with itself. The root of no transactions is the zero digest.
func MerkleRoot(txs []Transaction) (ledger.Digest, error) {
	if len(txs) == 0 {
		return ledger.Digest{}, nil
	}

	level := make([]ledger.Digest, len(txs))
	for i, tx := range txs {
		data, err := tx.CanonicalBytes()
		if err != nil {
			return ledger.Digest{}, fmt.Errorf("transaction %d: %w", i, err)
		}
		level[i] = sha256.Sum256(data)
	}

	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([]ledger.Digest, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next = append(next, hashPair(level[i], level[i+1]))
		}
		level = next
	}
	return level[0], nil
}

func hashPair(left, right ledger.Digest) ledger.Digest {
	var buf [2 * ledger.DigestSize]byte
	copy(buf[:ledger.DigestSize], left[:])
	copy(buf[ledger.DigestSize:], right[:])
	return sha256.Sum256(buf[:])
}
