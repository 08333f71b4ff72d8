package starkverifier

import (
	"github.com/2026Arbitriumhackthon/starkverifier/internal/starkverifier/core"
	"github.com/2026Arbitriumhackthon/starkverifier/internal/starkverifier/protocols"
	"github.com/2026Arbitriumhackthon/starkverifier/internal/starkverifier/utils"
)

// FieldElement is a BN254 scalar field element in Montgomery form.
// This is the public type used wherever a proof or public input surfaces a field value.
type FieldElement = core.FieldElement

// Proof is the seven-array wire-format STARK proof for the Sharpe ratio claim.
type Proof = protocols.Proof

// ProverOptions configures the prover's security/performance knobs.
type ProverOptions = protocols.ProverOptions

// ProverConfig configures the prover pipeline (query count, trace length bound, hash
// function).
type ProverConfig = utils.ProverConfig

// VerifierConfig configures the verifier's bound checks.
type VerifierConfig = utils.VerifierConfig

// MPTWalker is the external collaborator contract for Merkle-Patricia-Trie proof
// verification, exported for callers that extract receipt data themselves.
// VerifyCommitBound takes receipt hashes directly and does not call it.
type MPTWalker = utils.MPTWalker

// DefaultProverOptions returns a reasonable default FRI query count.
func DefaultProverOptions() ProverOptions {
	return protocols.DefaultProverOptions()
}

// DefaultProverConfig returns the default prover configuration.
func DefaultProverConfig() *ProverConfig {
	return utils.DefaultProverConfig()
}

// DefaultVerifierConfig returns the default verifier configuration.
func DefaultVerifierConfig() *VerifierConfig {
	return utils.DefaultVerifierConfig()
}

// NewMPTWalker returns the reference MPTWalker implementation.
func NewMPTWalker() MPTWalker {
	return utils.NewMPTWalker()
}
