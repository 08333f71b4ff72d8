// Package starkverifier provides a transparent, hash-based zero-knowledge STARK proving
// pipeline for a single claim: given a private sequence of signed trading returns
// r_1..r_n, the scaled squared Sharpe ratio equals a publicly declared integer, with the
// return sequence optionally bound to an on-chain data commitment.
//
// # Features
//
// - Complete STARK prover and verifier over a BN254-scalar-field six-column AIR
// - Keccak256-based Fiat-Shamir transcript matching the on-chain verifier's hash
// - FRI low-degree test over a disjoint multiplicative coset domain
// - Optional commitment-bound verification against a vector of on-chain receipt hashes
//
// # Quick Start
//
// Generating a proof:
//
//	proof, err := starkverifier.Prove(returns, starkverifier.NewFieldElement(0), starkverifier.DefaultProverConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Verifying a proof:
//
//	ok, err := starkverifier.Verify(proof, nil)
//	if !ok {
//		log.Fatal(err)
//	}
//
// Verifying a proof bound to on-chain receipt hashes:
//
//	ok, err := starkverifier.VerifyCommitBound(proof, receiptHashes, nil)
//
// # Architecture
//
// starkverifier uses a hybrid public/private layout:
//
//   - pkg/starkverifier/: public API (this package)
//   - internal/starkverifier/: private implementation (not importable)
//
// The public API is stable; internal/ packages (core field/hash/domain/Merkle
// primitives, the transcript/trace/AIR/FRI protocol, and the on-chain commitment/MPT
// utilities) can change without breaking it.
//
// # Non-goals
//
// No confidentiality of return values (the claim is transparent, not confidential), no
// recursive proof composition, no trusted setup, no post-quantum claims beyond Keccak's.
package starkverifier
