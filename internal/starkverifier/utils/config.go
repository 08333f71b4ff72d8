package utils

import "fmt"

// ProverConfig configures the prover pipeline. It generalizes the teacher's flat
// Config into prover/verifier-specific shapes, since the two sides no longer share a
// VM execution configuration.
type ProverConfig struct {
	// NumQueries is the number of FRI queries drawn per proof; security scales
	// roughly as 4*NumQueries bits given the fixed blowup factor of 4.
	NumQueries int

	// MaxLogTraceLen bounds the padded trace length the prover will accept, to
	// match the verifier's own bound (spec.md's log_trace_len <= 26).
	MaxLogTraceLen int

	// HashFunction is fixed to "keccak": the Poseidon/Rescue/SHA-256 variants the
	// teacher's Config exposed are rejected here rather than silently
	// reinterpreted, since this pipeline's on-chain contract requires Keccak.
	HashFunction string
}

// DefaultProverConfig returns the default prover configuration.
func DefaultProverConfig() *ProverConfig {
	return &ProverConfig{
		NumQueries:     24,
		MaxLogTraceLen: 26,
		HashFunction:   "keccak",
	}
}

// Validate checks the configuration's invariants.
func (c *ProverConfig) Validate() error {
	if c.NumQueries <= 0 || c.NumQueries > 64 {
		return fmt.Errorf("utils: num_queries must be in [1,64], got %d", c.NumQueries)
	}
	if c.MaxLogTraceLen <= 0 || c.MaxLogTraceLen > 26 {
		return fmt.Errorf("utils: max_log_trace_len must be in (0,26], got %d", c.MaxLogTraceLen)
	}
	if c.HashFunction != "keccak" {
		return fmt.Errorf("utils: unsupported hash function %q; only \"keccak\" is implemented (poseidon/rescue/sha256 are historical variants of this pipeline, not this one)", c.HashFunction)
	}
	return nil
}

// WithNumQueries sets the FRI query count.
func (c *ProverConfig) WithNumQueries(n int) *ProverConfig {
	c.NumQueries = n
	return c
}

// Clone returns a copy of the configuration.
func (c *ProverConfig) Clone() *ProverConfig {
	cp := *c
	return &cp
}

// VerifierConfig configures the verifier's bound checks. It has no security knobs of
// its own: every parameter is read from the proof and checked against these bounds.
type VerifierConfig struct {
	MaxLogTraceLen int
	MaxNumQueries  int
}

// DefaultVerifierConfig returns the default verifier configuration.
func DefaultVerifierConfig() *VerifierConfig {
	return &VerifierConfig{MaxLogTraceLen: 26, MaxNumQueries: 64}
}
