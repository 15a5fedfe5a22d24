package ledger

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
)

// DigestSize is the length in bytes of a block hash.
const DigestSize = sha256.Size

// Digest is the SHA-256 hash of a block. The zero Digest is used as the previous
// hash of the genesis block.
type Digest [DigestSize]byte

// Hex returns the lowercase hexadecimal form of the digest.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

func (d Digest) String() string {
	return d.Hex()
}

// IsZero reports whether d is the genesis sentinel.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// MarshalText encodes the digest as hex, so blocks serialize to readable JSON.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.Hex()), nil
}

// Block is a single record of the chain. A Block built with NewBlock is a draft:
// its PrevHash, Hash and Nonce are assigned by Blockchain.Append, which stores a
// sealed copy once mining completes.
type Block struct {
	Index     uint64  `json:"index"`
	Timestamp int64   `json:"timestamp"`
	Payload   Payload `json:"payload"`
	PrevHash  Digest  `json:"prev_hash"`
	Hash      Digest  `json:"hash"`
	Nonce     uint64  `json:"nonce"`
}

// NewBlock creates a block carrying the given index, timestamp (Unix
// milliseconds), payload and previous hash. The nonce starts at 0 and the hash is
// computed right away; if the payload cannot be serialized the hash is left zero
// and the error surfaces again when the block is appended. Append replaces
// prevHash with the hash of the chain tail, so drafts may pass the zero Digest.
func NewBlock(index uint64, timestamp int64, payload Payload, prevHash Digest) Block {
	b := Block{
		Index:     index,
		Timestamp: timestamp,
		Payload:   payload,
		PrevHash:  prevHash,
	}
	if h, err := b.ComputeHash(); err == nil {
		b.Hash = h
	}
	return b
}

// ComputeHash returns the SHA-256 digest of the block's index, previous hash,
// timestamp, payload and nonce. Every variable-length field is length-prefixed, so
// two different blocks cannot share an encoding.
func (b Block) ComputeHash() (Digest, error) {
	data, err := payloadBytes(b.Payload)
	if err != nil {
		return Digest{}, err
	}
	return sha256.Sum256(b.encode(data)), nil
}

// encode writes the header fields around an already serialized payload.
func (b Block) encode(payload []byte) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, 8+DigestSize+8+4+len(payload)+8))
	writeUint64(buf, b.Index)
	buf.Write(b.PrevHash[:])
	writeUint64(buf, uint64(b.Timestamp))
	writeBytes(buf, payload)
	writeUint64(buf, b.Nonce)
	return buf.Bytes()
}

// maxPayloadLen is the largest payload whose length fits the uint32 prefix.
var maxPayloadLen uint64 = math.MaxUint32

func payloadBytes(p Payload) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	data, err := p.CanonicalBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize payload: %w", err)
	}
	if uint64(len(data)) > maxPayloadLen {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, len(data), maxPayloadLen)
	}
	return data, nil
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeBytes(buf *bytes.Buffer, b []byte) {
	writeUint32(buf, uint32(len(b)))
	buf.Write(b)
}
