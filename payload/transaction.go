package payload

import (
	"crypto/cipher"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math/big"

	"go.dedis.ch/kyber/v4/suites"
	"go.dedis.ch/kyber/v4/util/random"
)

// AddressBits is the size of a generated address.
const AddressBits = 256

var suite suites.Suite = suites.MustFind("Ed25519")

// Transaction moves Amount from one address to another.
type Transaction struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

func (tx Transaction) CanonicalBytes() ([]byte, error) {
	return json.Marshal(tx)
}

// List is an ordered set of transactions waiting to be put in a block.
type List struct {
	txs []Transaction
}

// Add appends txs to the end of the list.
func (l *List) Add(txs ...Transaction) {
	l.txs = append(l.txs, txs...)
}

// Len returns the number of transactions in the list.
func (l *List) Len() int {
	return len(l.txs)
}

// Transactions returns a copy of the list content.
func (l *List) Transactions() []Transaction {
	out := make([]Transaction, len(l.txs))
	copy(out, l.txs)
	return out
}

// Reset empties the list, keeping its capacity.
func (l *List) Reset() {
	l.txs = l.txs[:0]
}

// CanonicalBytes encodes the whole list, so a block can carry every transaction
// instead of only the summary.
func (l *List) CanonicalBytes() ([]byte, error) {
	return json.Marshal(l.Transactions())
}

// Generator draws random transactions from a stream.
type Generator struct {
	stream    cipher.Stream
	maxAmount *big.Int
}

// NewGenerator returns a generator reading from stream, with amounts in
// [0, maxAmount). A nil stream selects the Ed25519 suite's random stream.
func NewGenerator(stream cipher.Stream, maxAmount uint64) (*Generator, error) {
	if maxAmount == 0 {
		return nil, errors.New("max amount must be positive")
	}
	if stream == nil {
		stream = suite.RandomStream()
	}
	return &Generator{
		stream:    stream,
		maxAmount: new(big.Int).SetUint64(maxAmount),
	}, nil
}

// Transaction returns a transaction between two fresh random addresses.
func (g *Generator) Transaction() Transaction {
	return Transaction{
		From:   g.address(),
		To:     g.address(),
		Amount: random.Int(g.maxAmount, g.stream).Uint64(),
	}
}

// Fill resets l and adds n random transactions to it.
func (g *Generator) Fill(l *List, n int) {
	l.Reset()
	for i := 0; i < n; i++ {
		l.Add(g.Transaction())
	}
}

func (g *Generator) address() string {
	return hex.EncodeToString(random.Bits(AddressBits, false, g.stream))
}
