package protocols

import "github.com/2026Arbitriumhackthon/starkverifier/internal/starkverifier/core"

// Row is a single trace row: the six column values in Trace column order.
type Row = [NumColumns]core.FieldElement

// EvaluateTransitionConstraints evaluates the five transition constraints TC0..TC4 of
// the Sharpe AIR between a row (cur) and its successor (next). Each must vanish on
// every consecutive pair except the last (enforced by the transition zerofier).
func EvaluateTransitionConstraints(cur, next Row) [5]core.FieldElement {
	tc0 := next[ColCumRet].Sub(cur[ColCumRet]).Sub(next[ColRet])
	tc1 := cur[ColRetSq].Sub(cur[ColRet].Mul(cur[ColRet]))
	tc2 := next[ColCumSq].Sub(cur[ColCumSq]).Sub(next[ColRetSq])
	tc3 := next[ColTradeCount].Sub(cur[ColTradeCount])
	tc4 := next[ColCommitment].Sub(cur[ColCommitment])
	return [5]core.FieldElement{tc0, tc1, tc2, tc3, tc4}
}

// EvaluateBoundaryFirstRow evaluates BC0 and BC1 at row 0.
func EvaluateBoundaryFirstRow(row0 Row) [2]core.FieldElement {
	bc0 := row0[ColCumRet].Sub(row0[ColRet])
	bc1 := row0[ColCumSq].Sub(row0[ColRetSq])
	return [2]core.FieldElement{bc0, bc1}
}

// EvaluateBoundaryLastRow evaluates BC2 and BC3 at row N-1. The trade count used by
// the BC3 identity is read from the row's own trade_count column, not the padded
// trace length: padding rows beyond the actual trade count must not dilute the
// Sharpe identity's denominator.
func EvaluateBoundaryLastRow(rowLast Row, totalReturn, sharpeSqScaled core.FieldElement) [2]core.FieldElement {
	bc2 := rowLast[ColCumRet].Sub(totalReturn)

	tradeCount := rowLast[ColTradeCount]
	cumRet := rowLast[ColCumRet]
	cumRetSq := cumRet.Mul(cumRet)
	scale := core.NewFromUint64(SharpeScale)

	lhs := cumRetSq.Mul(scale)
	rhs := sharpeSqScaled.Mul(tradeCount.Mul(rowLast[ColCumSq]).Sub(cumRetSq))
	bc3 := lhs.Sub(rhs)

	return [2]core.FieldElement{bc2, bc3}
}

// TransitionZerofier evaluates Z_T(z) = (z^N - 1) / (z - ω^(N-1)), the polynomial
// vanishing on every trace row except the last.
func TransitionZerofier(z core.FieldElement, n int, omegaLast core.FieldElement) core.FieldElement {
	num := z.Pow(uint64(n)).Sub(core.One)
	den := z.Sub(omegaLast)
	if den.IsZero() {
		// z^N - 1 = (z - a) * sum_{k<N} z^(N-1-k) a^k for any N-th root of unity a, so
		// at z = a the quotient is N * a^(N-1).
		return core.NewFromUint64(uint64(n)).Mul(omegaLast.Pow(uint64(n - 1)))
	}
	return num.Div(den)
}

// BoundaryZerofierFirst evaluates z - 1.
func BoundaryZerofierFirst(z core.FieldElement) core.FieldElement {
	return z.Sub(core.One)
}

// BoundaryZerofierLast evaluates z - ω^(N-1).
func BoundaryZerofierLast(z, omegaLast core.FieldElement) core.FieldElement {
	return z.Sub(omegaLast)
}
