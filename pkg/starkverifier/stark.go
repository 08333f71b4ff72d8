package starkverifier

import (
	"strings"

	"github.com/2026Arbitriumhackthon/starkverifier/internal/starkverifier/core"
	"github.com/2026Arbitriumhackthon/starkverifier/internal/starkverifier/protocols"
)

// Prove runs the Sharpe-ratio STARK prover over a private sequence of signed returns
// and an optional data commitment (core.Zero if none). cfg configures the query count
// and trace length bound; a nil cfg uses DefaultProverConfig().
func Prove(returns []int64, commitment FieldElement, cfg *ProverConfig) (*Proof, error) {
	if cfg == nil {
		cfg = DefaultProverConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ProverError{Code: ErrInvalidConfig, Message: "invalid prover config", Cause: err}
	}

	opts := ProverOptions{NumQueries: cfg.NumQueries, MaxLogTraceLen: cfg.MaxLogTraceLen}
	proof, err := protocols.Prove(returns, commitment, opts)
	if err != nil {
		return nil, &ProverError{Code: classifyProveError(err), Message: "prove failed", Cause: err}
	}
	return proof, nil
}

// Verify checks a Proof against the Sharpe-ratio STARK AIR and the FRI low-degree test.
// The boolean return is the only outcome an on-chain caller should act on; a non-nil
// error carries the rejection reason for off-chain diagnostics only. cfg bounds the
// trace length and query count the verifier will accept; a nil cfg uses
// DefaultVerifierConfig().
func Verify(proof *Proof, cfg *VerifierConfig) (bool, error) {
	ok, err := protocols.Verify(proof, cfg)
	if err != nil {
		return false, &VerifierError{Code: classifyVerifyError(err), Message: "verification rejected", Cause: err}
	}
	return ok, nil
}

// VerifyCommitBound additionally checks that the proof's trace witnessed a commitment
// column folding exactly to the given receipt hashes via core.H.
func VerifyCommitBound(proof *Proof, receiptHashes []FieldElement, cfg *VerifierConfig) (bool, error) {
	ok, err := protocols.VerifyCommitBound(proof, receiptHashes, cfg)
	if err != nil {
		return false, &VerifierError{Code: classifyVerifyError(err), Message: "commit-bound verification rejected", Cause: err}
	}
	return ok, nil
}

// NewFieldElement wraps a uint64 into a canonical field element, for callers building
// receipt hash lists or data commitments outside the package.
func NewFieldElement(v uint64) FieldElement {
	return core.NewFromUint64(v)
}

// FieldElementFromBytes decodes a canonical big-endian 32-byte field element, rejecting
// any representative not strictly less than the field modulus.
func FieldElementFromBytes(b [32]byte) (FieldElement, error) {
	return core.FromBytes(b)
}

// DecodeProofWords reconstructs a Proof from its flattened word encoding (as produced
// by Proof.EncodeWords) and the accompanying query_metadata.
func DecodeProofWords(words []FieldElement, metadata []int) (*Proof, error) {
	proof, err := protocols.DecodeWords(words, metadata)
	if err != nil {
		return nil, &VerifierError{Code: ErrMalformedProof, Message: "failed to decode proof words", Cause: err}
	}
	return proof, nil
}

func classifyProveError(err error) ErrorCode {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "degenerate input"):
		return ErrDegenerateInput
	case strings.Contains(msg, "exceeds configured max_log_trace_len"):
		return ErrInvalidConfig
	default:
		return ErrUnknown
	}
}

func classifyVerifyError(err error) ErrorCode {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "malformed proof"):
		return ErrMalformedProof
	case strings.Contains(msg, "transcript mismatch"):
		return ErrTranscriptMismatch
	case strings.Contains(msg, "AIR failure"):
		return ErrAIRFailure
	case strings.Contains(msg, "FRI failure"), strings.Contains(msg, "FRI malformed proof"), strings.Contains(msg, "FRI transcript mismatch"):
		return ErrFRIFailure
	case strings.Contains(msg, "commitment mismatch"):
		return ErrCommitmentMismatch
	default:
		return ErrUnknown
	}
}
