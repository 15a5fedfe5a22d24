// Package payload produces block payloads made of transactions.
//
// A List collects transactions, a Generator fills it with random ones and
// Summary condenses it into a Merkle root. Both List and Summary satisfy
// ledger.Payload, so either the full transaction set or only its root can be
// stored in a block.
package payload
