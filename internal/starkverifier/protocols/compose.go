package protocols

import (
	"fmt"

	"github.com/2026Arbitriumhackthon/starkverifier/internal/starkverifier/core"
)

// NumChallenges is the number of random coefficients alpha_0..alpha_8 used to combine
// the five transition quotients and four boundary quotients into the composition
// polynomial.
const NumChallenges = 9

// EvaluateQuotients evaluates the five transition quotients and four boundary
// quotients of the Sharpe AIR at a single point x, given the current and next row
// values there (next is read at the appropriately shifted LDE index by the caller).
// Division by a vanishing zerofier yields 0 (the Div convention), which FRI's
// low-degree check will catch if it occurs where it should not.
//
// This single-point path uses plain Div (one Fermat-exponentiation inverse per
// zerofier); EvaluateCompositionLDE batch-inverts across the whole domain instead,
// since that is the path actually exercised at proving/verifying time.
func EvaluateQuotients(cur, next Row, x core.FieldElement, n int, omegaLast, totalReturn, sharpeSqScaled core.FieldElement) (transition [5]core.FieldElement, boundary [4]core.FieldElement) {
	tcs := EvaluateTransitionConstraints(cur, next)
	zt := TransitionZerofier(x, n, omegaLast)
	for i, c := range tcs {
		transition[i] = c.Div(zt)
	}

	zFirst := BoundaryZerofierFirst(x)
	zLast := BoundaryZerofierLast(x, omegaLast)

	bFirst := EvaluateBoundaryFirstRow(cur)
	bLast := EvaluateBoundaryLastRow(cur, totalReturn, sharpeSqScaled)

	boundary[0] = bFirst[0].Div(zFirst)
	boundary[1] = bFirst[1].Div(zFirst)
	boundary[2] = bLast[0].Div(zLast)
	boundary[3] = bLast[1].Div(zLast)
	return transition, boundary
}

// CombineQuotients folds the transition and boundary quotients into the single
// composition value comp(x) = sum_j alpha_j * q_j(x), transition quotients first.
func CombineQuotients(transition [5]core.FieldElement, boundary [4]core.FieldElement, alphas [NumChallenges]core.FieldElement) core.FieldElement {
	acc := core.Zero
	for i := 0; i < 5; i++ {
		acc = acc.Add(alphas[i].Mul(transition[i]))
	}
	for i := 0; i < 4; i++ {
		acc = acc.Add(alphas[5+i].Mul(boundary[i]))
	}
	return acc
}

// EvaluateCompositionAtPoint evaluates the full composition polynomial at a single
// point x, given the current/next row values there.
func EvaluateCompositionAtPoint(cur, next Row, x core.FieldElement, n int, omegaLast, totalReturn, sharpeSqScaled core.FieldElement, alphas [NumChallenges]core.FieldElement) core.FieldElement {
	transition, boundary := EvaluateQuotients(cur, next, x, n, omegaLast, totalReturn, sharpeSqScaled)
	return CombineQuotients(transition, boundary, alphas)
}

// EvaluateCompositionLDE builds the composition polynomial's evaluations over the full
// LDE domain. ldeColumns holds the six trace columns already evaluated on the LDE
// domain (length must be a multiple of traceLen, the ratio being the blowup factor).
//
// The three denominators (Z_T's numerator z^N-1, z-1, z-omega^(N-1)) are collected for
// every point first and inverted with a single core.BatchInvert call over the flattened
// 3*|LDE| vector; 1/Z_T is then (z-omega^(N-1)) * (z^N-1)^-1. This replaces the 10
// Fermat-exponentiation inversions per point of the single-point path (one inside
// TransitionZerofier, 5 transition quotients re-inverting the same Z_T, plus 2+2
// boundary quotients re-inverting z-1 and z-omega^(N-1)) with one inversion plus
// multiplications.
func EvaluateCompositionLDE(
	ldeColumns [NumColumns][]core.FieldElement,
	ldeDomain *core.Domain,
	traceGen core.FieldElement,
	traceLen int,
	totalReturn, sharpeSqScaled core.FieldElement,
	alphas [NumChallenges]core.FieldElement,
) ([]core.FieldElement, error) {
	ldeSize := ldeDomain.Size()
	if ldeSize%traceLen != 0 {
		return nil, fmt.Errorf("protocols: LDE size %d is not a multiple of trace length %d", ldeSize, traceLen)
	}
	blowup := ldeSize / traceLen
	omegaLast := traceGen.Pow(uint64(traceLen - 1))

	points := ldeDomain.All()

	denominators := make([]core.FieldElement, 3*ldeSize)
	for i, x := range points {
		denominators[3*i] = x.Pow(uint64(traceLen)).Sub(core.One)
		denominators[3*i+1] = BoundaryZerofierFirst(x)
		denominators[3*i+2] = BoundaryZerofierLast(x, omegaLast)
	}
	inverses := batchInvertZeroSafe(denominators)

	out := make([]core.FieldElement, ldeSize)
	for i := 0; i < ldeSize; i++ {
		var cur, next Row
		nextIdx := (i + blowup) % ldeSize
		for c := 0; c < NumColumns; c++ {
			cur[c] = ldeColumns[c][i]
			next[c] = ldeColumns[c][nextIdx]
		}
		ztInv := inverses[3*i].Mul(points[i].Sub(omegaLast))
		zFirstInv, zLastInv := inverses[3*i+1], inverses[3*i+2]

		tcs := EvaluateTransitionConstraints(cur, next)
		var transition [5]core.FieldElement
		for j, c := range tcs {
			transition[j] = c.Mul(ztInv)
		}

		bFirst := EvaluateBoundaryFirstRow(cur)
		bLast := EvaluateBoundaryLastRow(cur, totalReturn, sharpeSqScaled)
		boundary := [4]core.FieldElement{
			bFirst[0].Mul(zFirstInv),
			bFirst[1].Mul(zFirstInv),
			bLast[0].Mul(zLastInv),
			bLast[1].Mul(zLastInv),
		}

		out[i] = CombineQuotients(transition, boundary, alphas)
	}
	return out, nil
}

// batchInvertZeroSafe inverts vs via core.BatchInvert, preserving Div's convention that
// dividing by zero yields 0. core.BatchInvert's running-product trick cannot be fed a
// zero directly (it would force every subsequent inverse to zero), so zero entries are
// excluded from the batch and mapped back to zero afterward.
func batchInvertZeroSafe(vs []core.FieldElement) []core.FieldElement {
	nonZeroIdx := make([]int, 0, len(vs))
	nonZeroVals := make([]core.FieldElement, 0, len(vs))
	for i, v := range vs {
		if !v.IsZero() {
			nonZeroIdx = append(nonZeroIdx, i)
			nonZeroVals = append(nonZeroVals, v)
		}
	}
	inverted := core.BatchInvert(nonZeroVals)
	out := make([]core.FieldElement, len(vs))
	for k, i := range nonZeroIdx {
		out[i] = inverted[k]
	}
	return out
}
