package protocols

import (
	"fmt"

	"github.com/2026Arbitriumhackthon/starkverifier/internal/starkverifier/core"
)

// twoInv is the precomputed constant 2^-1 mod p used by FRI folding.
var twoInv = core.NewFromUint64(2).Inv()

// FRIParams bundles the FRI protocol's public parameters.
type FRIParams struct {
	LogDomainSize int // log2 of the initial (composition) LDE domain size
	NumLayers     int
	NumQueries    int
	Blowup        int // fixed 4 (log_blowup 2)
}

// DefaultFRIParams derives sensible FRI parameters from a trace's log size, following
// num_layers = log_domain - 2, with a configurable query count.
func DefaultFRIParams(logTraceLen, numQueries int) FRIParams {
	logBlowup := 2
	logDomain := logTraceLen + logBlowup
	numLayers := logDomain - 2
	if numLayers < 1 {
		numLayers = 1
	}
	return FRIParams{
		LogDomainSize: logDomain,
		NumLayers:     numLayers,
		NumQueries:    numQueries,
		Blowup:        1 << uint(logBlowup),
	}
}

// friLayer holds one commit-phase layer's state.
type friLayer struct {
	evals  []core.FieldElement
	tree   *core.MerkleTree
	gen    core.FieldElement
	offset core.FieldElement
}

// FRICommitPhase runs the commit phase of FRI over the given initial evaluations
// (which must already be the composition polynomial's LDE evaluations). It commits
// each layer root and draws its folding challenge from transcript, then IFFTs the
// residual layer into coefficients and commits each coefficient individually.
//
// Returns the layer Merkle trees (needed to build query authentication paths), the
// per-layer (generator, offset, evaluations), and the final polynomial's coefficients.
func FRICommitPhase(initialEvals []core.FieldElement, gen, offset core.FieldElement, params FRIParams, transcript *Transcript) (layers []*friLayer, finalCoeffs []core.FieldElement, err error) {
	if len(initialEvals) != 1<<uint(params.LogDomainSize) {
		return nil, nil, fmt.Errorf("protocols: FRI initial evaluation count %d does not match log_domain_size %d", len(initialEvals), params.LogDomainSize)
	}

	layers = make([]*friLayer, 0, params.NumLayers+1)
	cur := &friLayer{evals: initialEvals, gen: gen, offset: offset}

	for l := 0; l < params.NumLayers; l++ {
		tree, buildErr := core.BuildMerkleTree(cur.evals)
		if buildErr != nil {
			return nil, nil, fmt.Errorf("protocols: FRI layer %d merkle build: %w", l, buildErr)
		}
		cur.tree = tree
		layers = append(layers, cur)

		transcript.Commit(tree.Root())
		alpha := transcript.DrawFelt()

		folded := foldLayer(cur.evals, cur.offset, cur.gen, alpha)
		cur = &friLayer{
			evals:  folded,
			gen:    cur.gen.Mul(cur.gen),
			offset: cur.offset.Mul(cur.offset),
		}
	}
	layers = append(layers, cur) // residual layer, no tree needed for it

	finalCoeffs = append([]core.FieldElement(nil), cur.evals...)
	if err := core.IFFTCoset(finalCoeffs, cur.gen, cur.offset); err != nil {
		return nil, nil, fmt.Errorf("protocols: FRI final IFFT: %w", err)
	}
	for _, c := range finalCoeffs {
		transcript.Commit(c)
	}
	return layers, finalCoeffs, nil
}

// foldLayer computes next_layer[i] = even(i) + alpha*odd(i)/x_i for i in [0,half),
// where even(i)=(f(x)+f(-x))/2, odd(i)=(f(x)-f(-x))/2, f(-x) = evals[i+half], and x_i
// is the i-th element of the current layer's coset domain.
func foldLayer(evals []core.FieldElement, offset, gen core.FieldElement, alpha core.FieldElement) []core.FieldElement {
	half := len(evals) / 2
	out := make([]core.FieldElement, half)
	x := offset
	for i := 0; i < half; i++ {
		fx := evals[i]
		fNegX := evals[i+half]
		even := fx.Add(fNegX).Mul(twoInv)
		odd := fx.Sub(fNegX).Mul(twoInv)
		out[i] = even.Add(alpha.Mul(odd.Div(x)))
		x = x.Mul(gen)
	}
	return out
}

// FRIQueryProof is the per-query data: for each layer, the pair (f(x), f(-x)) and the
// Merkle authentication path of f(x) under that layer's root.
type FRIQueryProof struct {
	Values [][2]core.FieldElement // indexed by layer
	Paths  [][]core.FieldElement  // indexed by layer, sibling list
}

// FRIQueryPhase draws query indices from transcript and builds the authentication data
// for each.
func FRIQueryPhase(layers []*friLayer, params FRIParams, transcript *Transcript) (indices []int, proofs []FRIQueryProof, err error) {
	domainSize := 1 << uint(params.LogDomainSize)
	indices, err = transcript.DrawQueries(params.NumQueries, domainSize)
	if err != nil {
		return nil, nil, err
	}

	proofs = make([]FRIQueryProof, len(indices))
	for qi, idx := range indices {
		proof := FRIQueryProof{
			Values: make([][2]core.FieldElement, params.NumLayers),
			Paths:  make([][]core.FieldElement, params.NumLayers),
		}
		curIdx := idx
		for l := 0; l < params.NumLayers; l++ {
			layer := layers[l]
			half := len(layer.evals) / 2
			i := curIdx
			negI := (i + half) % len(layer.evals)

			// The Merkle tree is built over the full layer; the authenticated leaf
			// is evals[i] at its true index i.
			siblings, _, pErr := layer.tree.AuthPath(i)
			if pErr != nil {
				return nil, nil, fmt.Errorf("protocols: FRI query %d layer %d auth path: %w", qi, l, pErr)
			}
			proof.Values[l] = [2]core.FieldElement{layer.evals[i], layer.evals[negI]}
			proof.Paths[l] = siblings
			curIdx = curIdx % half
		}
		proofs[qi] = proof
	}
	return indices, proofs, nil
}

// FRIVerify replays the commit phase against provided layer roots and the final
// polynomial, re-derives query indices, and checks every query's Merkle path and
// fold-consistency, finally checking the final polynomial evaluation.
func FRIVerify(
	layerRoots []core.FieldElement,
	finalCoeffs []core.FieldElement,
	queryIndices []int,
	queryProofs []FRIQueryProof,
	initialGen, initialOffset core.FieldElement,
	params FRIParams,
	transcript *Transcript,
) error {
	if len(layerRoots) != params.NumLayers {
		return fmt.Errorf("protocols: FRI malformed proof: expected %d layer roots, got %d", params.NumLayers, len(layerRoots))
	}

	gens := make([]core.FieldElement, params.NumLayers+1)
	offsets := make([]core.FieldElement, params.NumLayers+1)
	gens[0], offsets[0] = initialGen, initialOffset
	alphas := make([]core.FieldElement, params.NumLayers)

	for l := 0; l < params.NumLayers; l++ {
		transcript.Commit(layerRoots[l])
		alphas[l] = transcript.DrawFelt()
		gens[l+1] = gens[l].Mul(gens[l])
		offsets[l+1] = offsets[l].Mul(offsets[l])
	}

	for _, c := range finalCoeffs {
		transcript.Commit(c)
	}

	domainSize := 1 << uint(params.LogDomainSize)
	rederived, err := transcript.DrawQueries(params.NumQueries, domainSize)
	if err != nil {
		return fmt.Errorf("protocols: FRI transcript mismatch: %w", err)
	}
	if len(rederived) != len(queryIndices) {
		return fmt.Errorf("protocols: FRI transcript mismatch: query count differs")
	}
	for i := range rederived {
		if rederived[i] != queryIndices[i] {
			return fmt.Errorf("protocols: FRI transcript mismatch: query index %d differs (got %d want %d)", i, queryIndices[i], rederived[i])
		}
	}

	for qi, idx := range queryIndices {
		proof := queryProofs[qi]
		curIdx := idx
		curDomainSize := domainSize

		for l := 0; l < params.NumLayers; l++ {
			half := curDomainSize / 2
			fx := proof.Values[l][0]

			if !core.VerifyMerklePath(layerRoots[l], fx, proof.Paths[l], bitsFromIndex(curIdx, len(proof.Paths[l]))) {
				return fmt.Errorf("protocols: FRI failure: invalid merkle path at query %d layer %d", qi, l)
			}

			x := computeLayerPoint(offsets[l], gens[l], curIdx)
			folded := foldPair(proof.Values[l][0], proof.Values[l][1], alphas[l], x)

			if l+1 < params.NumLayers {
				if !proof.Values[l+1][0].Equal(folded) {
					return fmt.Errorf("protocols: FRI failure: fold mismatch at query %d layer %d", qi, l)
				}
			} else {
				xFinal := computeLayerPoint(offsets[l+1], gens[l+1], curIdx%half)
				finalVal := evaluatePolyHorner(finalCoeffs, xFinal)
				if !finalVal.Equal(folded) {
					return fmt.Errorf("protocols: FRI failure: final polynomial mismatch at query %d", qi)
				}
			}
			curIdx = curIdx % half
			curDomainSize = half
		}
	}
	return nil
}

// computeLayerPoint returns offset * gen^index.
func computeLayerPoint(offset, gen core.FieldElement, index int) core.FieldElement {
	return offset.Mul(gen.Pow(uint64(index)))
}

// foldPair applies the same fold formula as foldLayer to a single (f(x), f(-x)) pair.
func foldPair(fx, fNegX, alpha, x core.FieldElement) core.FieldElement {
	even := fx.Add(fNegX).Mul(twoInv)
	odd := fx.Sub(fNegX).Mul(twoInv)
	return even.Add(alpha.Mul(odd.Div(x)))
}

// bitsFromIndex returns the left/right bit decomposition (LSB first, matching the
// Merkle tree's leaf-to-root convention) of index over depth levels.
func bitsFromIndex(index, depth int) []bool {
	out := make([]bool, depth)
	for d := 0; d < depth; d++ {
		out[d] = (index>>uint(d))&1 == 0
	}
	return out
}

// evaluatePolyHorner evaluates coefficients (ascending degree) at x via Horner's method.
func evaluatePolyHorner(coeffs []core.FieldElement, x core.FieldElement) core.FieldElement {
	acc := core.Zero
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = acc.Mul(x).Add(coeffs[i])
	}
	return acc
}
