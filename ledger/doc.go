// Package ledger implements an append-only blockchain secured by proof of work.
//
// # Core Components
//
// Blockchain: An in-memory sequence of blocks, starting from a genesis block,
// with a fixed difficulty. Appending a block links it to the current tail and
// mines it before it is stored.
//
// Block: An index, a timestamp, an opaque payload, the hash of the previous
// block, its own hash and the nonce found while mining.
//
// Payload: Anything with a deterministic byte encoding. The ledger hashes the
// encoding and never inspects the content.
//
// # Security Properties
//
// The blockchain provides:
//   - Tamper detection: changing any field of a stored block breaks either its
//     own hash or the link held by the next block
//   - Proof of work: every block after genesis has a hash starting with as many
//     hex zeros as the difficulty
//   - Unambiguous hashing: variable-length fields are length-prefixed before
//     hashing
//
// # Usage
//
// Create a blockchain with NewBlockchain, build drafts with NewBlock or
// Blockchain.NextBlock and store them with Append. IsValid and Verify scan the
// whole chain and can be called at any time.
package ledger
