package protocols

import (
	"fmt"

	"github.com/2026Arbitriumhackthon/starkverifier/internal/starkverifier/core"
	"github.com/2026Arbitriumhackthon/starkverifier/internal/starkverifier/utils"
)

// Proof is the seven-array wire-format proof object shared between prover and
// verifier. All arrays hold canonical field elements except QueryMetadata, which holds
// plain integers (query/layer counts, log trace length, query indices).
type Proof struct {
	PublicInputs  [4]core.FieldElement
	Commitments   []core.FieldElement // [trace_root, composition_root, fri_layer_root_0, ...]
	OODValues     [13]core.FieldElement
	FRIFinalPoly  []core.FieldElement
	QueryValues   []core.FieldElement // flattened: per query, per layer: f(x), f(-x)
	QueryPaths    []core.FieldElement // flattened: per query, per layer, siblings leaf-to-root
	QueryMetadata []int               // [Q, L, log_trace_len, query_idx_0, ..., query_idx_{Q-1}]
}

// NumOODValues is the fixed OOD tuple length for the Sharpe AIR: 6 columns at z, 6 at
// z*omega, plus the composition value at z.
const NumOODValues = 2*NumColumns + 1

// Validate bound-checks the proof's declared shapes before any cryptographic check is
// attempted, matching the verifier's bound-check pass. A nil cfg uses
// utils.DefaultVerifierConfig().
func (p *Proof) Validate(cfg *utils.VerifierConfig) error {
	if cfg == nil {
		cfg = utils.DefaultVerifierConfig()
	}
	if len(p.QueryMetadata) < 3 {
		return fmt.Errorf("protocols: malformed proof: query_metadata too short")
	}
	q := p.QueryMetadata[0]
	l := p.QueryMetadata[1]
	logTrace := p.QueryMetadata[2]

	if logTrace < 0 || logTrace > cfg.MaxLogTraceLen {
		return fmt.Errorf("protocols: malformed proof: log_trace_len %d out of bounds [0,%d]", logTrace, cfg.MaxLogTraceLen)
	}
	if l < 1 || l > logTrace+2 {
		return fmt.Errorf("protocols: malformed proof: num_fri_layers %d out of bounds [1,%d]", l, logTrace+2)
	}
	if q < 1 || q > cfg.MaxNumQueries {
		return fmt.Errorf("protocols: malformed proof: num_queries %d out of bounds [1,%d]", q, cfg.MaxNumQueries)
	}
	if len(p.QueryMetadata) != 3+q {
		return fmt.Errorf("protocols: malformed proof: query_metadata length %d != 3+%d", len(p.QueryMetadata), q)
	}
	if len(p.OODValues) != NumOODValues {
		return fmt.Errorf("protocols: malformed proof: ood_values length %d != %d", len(p.OODValues), NumOODValues)
	}
	if len(p.QueryValues) != q*l*2 {
		return fmt.Errorf("protocols: malformed proof: query_values length %d != %d*%d*2", len(p.QueryValues), q, l)
	}

	expectedPaths := 0
	logDomain := logTrace + 2
	for layer := 0; layer < l; layer++ {
		expectedPaths += logDomain - layer
	}
	expectedPaths *= q
	if len(p.QueryPaths) != expectedPaths {
		return fmt.Errorf("protocols: malformed proof: query_paths length %d != %d", len(p.QueryPaths), expectedPaths)
	}
	// commitments = trace_root, composition_root, and L fri layer roots
	if len(p.Commitments) != 2+l {
		return fmt.Errorf("protocols: malformed proof: commitments length %d != 2+%d", len(p.Commitments), l)
	}
	return nil
}

// LogTraceLen returns the declared log2 of the padded trace length.
func (p *Proof) LogTraceLen() int { return p.QueryMetadata[2] }

// NumQueries returns the declared number of FRI queries.
func (p *Proof) NumQueries() int { return p.QueryMetadata[0] }

// NumFRILayers returns the declared number of FRI layers.
func (p *Proof) NumFRILayers() int { return p.QueryMetadata[1] }

// QueryIndices returns the declared query indices.
func (p *Proof) QueryIndices() []int { return p.QueryMetadata[3:] }

// TraceRoot returns the committed trace Merkle root.
func (p *Proof) TraceRoot() core.FieldElement { return p.Commitments[0] }

// CompositionRoot returns the committed composition polynomial Merkle root.
func (p *Proof) CompositionRoot() core.FieldElement { return p.Commitments[1] }

// FRILayerRoots returns the committed FRI layer roots (one per layer).
func (p *Proof) FRILayerRoots() []core.FieldElement { return p.Commitments[2:] }

// UnflattenQueries reconstructs per-query FRIQueryProof structures from the flattened
// QueryValues/QueryPaths arrays, using the shape declared in QueryMetadata.
func (p *Proof) UnflattenQueries() []FRIQueryProof {
	q := p.NumQueries()
	l := p.NumFRILayers()
	logDomain := p.LogTraceLen() + 2

	out := make([]FRIQueryProof, q)
	vi, pi := 0, 0
	for query := 0; query < q; query++ {
		proof := FRIQueryProof{Values: make([][2]core.FieldElement, l), Paths: make([][]core.FieldElement, l)}
		for layer := 0; layer < l; layer++ {
			proof.Values[layer] = [2]core.FieldElement{p.QueryValues[vi], p.QueryValues[vi+1]}
			vi += 2
			depth := logDomain - layer
			proof.Paths[layer] = append([]core.FieldElement(nil), p.QueryPaths[pi:pi+depth]...)
			pi += depth
		}
		out[query] = proof
	}
	return out
}

// FlattenQueries serializes per-query FRIQueryProof structures into the flattened
// QueryValues/QueryPaths arrays.
func FlattenQueries(proofs []FRIQueryProof) (values, paths []core.FieldElement) {
	for _, p := range proofs {
		for _, v := range p.Values {
			values = append(values, v[0], v[1])
		}
		for _, s := range p.Paths {
			paths = append(paths, s...)
		}
	}
	return values, paths
}

// EncodeWords flattens the proof's six field-element arrays into a single wire-order
// slice (public_inputs, commitments, ood_values, fri_final_poly, query_values,
// query_paths); query_metadata travels separately as plain integers.
func (p *Proof) EncodeWords() []core.FieldElement {
	words := make([]core.FieldElement, 0, 4+len(p.Commitments)+len(p.OODValues)+len(p.FRIFinalPoly)+len(p.QueryValues)+len(p.QueryPaths))
	words = append(words, p.PublicInputs[:]...)
	words = append(words, p.Commitments...)
	words = append(words, p.OODValues[:]...)
	words = append(words, p.FRIFinalPoly...)
	words = append(words, p.QueryValues...)
	words = append(words, p.QueryPaths...)
	return words
}

// DecodeWords reconstructs a Proof from a flat word slice (as produced by EncodeWords)
// and the accompanying query_metadata, using the metadata's declared shapes to split
// the word slice back into its six arrays.
func DecodeWords(words []core.FieldElement, metadata []int) (*Proof, error) {
	if len(metadata) < 3 {
		return nil, fmt.Errorf("protocols: decode: query_metadata too short")
	}
	q, l, logTrace := metadata[0], metadata[1], metadata[2]
	if q < 1 || l < 1 || logTrace < 0 {
		return nil, fmt.Errorf("protocols: decode: malformed query_metadata shape")
	}

	numCommitments := 2 + l
	numFinalPoly := (1 << uint(logTrace+2)) >> uint(l)
	numQueryValues := q * l * 2
	logDomain := logTrace + 2
	numQueryPaths := 0
	for layer := 0; layer < l; layer++ {
		numQueryPaths += logDomain - layer
	}
	numQueryPaths *= q

	want := 4 + numCommitments + NumOODValues + numFinalPoly + numQueryValues + numQueryPaths
	if len(words) != want {
		return nil, fmt.Errorf("protocols: decode: word count %d does not match expected %d for declared shape", len(words), want)
	}

	p := &Proof{QueryMetadata: append([]int(nil), metadata...)}
	off := 0
	copy(p.PublicInputs[:], words[off:off+4])
	off += 4
	p.Commitments = append([]core.FieldElement(nil), words[off:off+numCommitments]...)
	off += numCommitments
	copy(p.OODValues[:], words[off:off+NumOODValues])
	off += NumOODValues
	p.FRIFinalPoly = append([]core.FieldElement(nil), words[off:off+numFinalPoly]...)
	off += numFinalPoly
	p.QueryValues = append([]core.FieldElement(nil), words[off:off+numQueryValues]...)
	off += numQueryValues
	p.QueryPaths = append([]core.FieldElement(nil), words[off:off+numQueryPaths]...)
	off += numQueryPaths

	return p, nil
}
