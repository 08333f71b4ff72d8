// Package utils hosts the ambient stack around the core STARK pipeline: the on-chain
// data commitment (K), its Merkle-Patricia-Trie proof-walker collaborator, and prover/
// verifier configuration.
package utils

import (
	"golang.org/x/crypto/sha3"

	"github.com/2026Arbitriumhackthon/starkverifier/internal/starkverifier/core"
)

// ComputeDatasetCommitmentOnChain computes
// keccak(block_hash || keccak(receipts_root || keccak(receipt_rlp))) and reduces the
// result mod p, binding a block hash, receipts root, and a single receipt's RLP bytes
// into one field element. Inputs are raw bytes as returned by the MPT walker /
// RPC-fetch collaborators; this function treats them as opaque blobs.
func ComputeDatasetCommitmentOnChain(blockHash, receiptsRoot, receiptRLP []byte) core.FieldElement {
	inner := rawKeccak256(receiptRLP)
	middle := rawKeccak256(append(append([]byte(nil), receiptsRoot...), inner...))
	outer := rawKeccak256(append(append([]byte(nil), blockHash...), middle...))
	return core.NewFromBigIntBytes(outer)
}

// Fold left-folds keccak (via core.H, already field-reduced at each step) over a flat
// list of hashes, producing the same commitment form both sides of the system use to
// cross-check the commitment column against a vector of receipt hashes.
func Fold(hashes []core.FieldElement) core.FieldElement {
	acc := core.Zero
	for _, h := range hashes {
		acc = core.H(acc, h)
	}
	return acc
}

func rawKeccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}
