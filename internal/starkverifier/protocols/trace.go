package protocols

import (
	"fmt"
	"math/big"

	"github.com/2026Arbitriumhackthon/starkverifier/internal/starkverifier/core"
)

// SharpeScale is the fixed-point scale factor S used by the integer Sharpe² identity.
const SharpeScale = 10000

// Column indices into Trace.Columns.
const (
	ColRet = iota
	ColRetSq
	ColCumRet
	ColCumSq
	ColTradeCount
	ColCommitment
	NumColumns
)

// Trace is the six-column execution trace of the Sharpe computation, padded to the
// next power of two. Padding rows carry the cumulative columns forward unchanged.
type Trace struct {
	Columns          [NumColumns][]core.FieldElement
	Len              int // padded length N, a power of two
	ActualTradeCount int

	// cumRetInt/cumSqInt are the real (non-field-reduced) running sums over the
	// actual trades, kept alongside the field columns so the prover can derive the
	// claimed Sharpe² value via real integer (floor) division.
	cumRetInt *big.Int
	cumSqInt  *big.Int
}

// liftSigned lifts a signed integer return into the field: non-negative values map
// directly, negative values map to p - |v|.
func liftSigned(v int64) core.FieldElement {
	if v >= 0 {
		return core.NewFromUint64(uint64(v))
	}
	return core.NewFromUint64(uint64(-v)).Neg()
}

// GenerateTrace builds the Sharpe trace from a private sequence of signed returns and
// an optional data commitment field element (core.Zero if none). #trades must be >= 2.
func GenerateTrace(returns []int64, commitment core.FieldElement) (*Trace, error) {
	if len(returns) < 2 {
		return nil, fmt.Errorf("protocols: degenerate input: need at least 2 trades, got %d", len(returns))
	}

	actual := len(returns)
	n := core.NextPowerOfTwo(actual)

	tr := &Trace{Len: n, ActualTradeCount: actual, cumRetInt: big.NewInt(0), cumSqInt: big.NewInt(0)}
	for c := 0; c < NumColumns; c++ {
		tr.Columns[c] = make([]core.FieldElement, n)
	}

	tradeCountField := core.NewFromUint64(uint64(actual))

	var cumRet, cumSq core.FieldElement
	for i := 0; i < n; i++ {
		if i < actual {
			ret := liftSigned(returns[i])
			retSq := ret.Mul(ret)
			if i == 0 {
				cumRet, cumSq = ret, retSq
			} else {
				cumRet = cumRet.Add(ret)
				cumSq = cumSq.Add(retSq)
			}
			tr.Columns[ColRet][i] = ret
			tr.Columns[ColRetSq][i] = retSq

			tr.cumRetInt.Add(tr.cumRetInt, big.NewInt(returns[i]))
			sq := new(big.Int).Mul(big.NewInt(returns[i]), big.NewInt(returns[i]))
			tr.cumSqInt.Add(tr.cumSqInt, sq)
		} else {
			tr.Columns[ColRet][i] = core.Zero
			tr.Columns[ColRetSq][i] = core.Zero
			// cumRet, cumSq unchanged: carried forward below.
		}
		tr.Columns[ColCumRet][i] = cumRet
		tr.Columns[ColCumSq][i] = cumSq
		tr.Columns[ColTradeCount][i] = tradeCountField
		tr.Columns[ColCommitment][i] = commitment
	}

	return tr, nil
}

// TotalReturn returns the last cum_ret value within the actual (non-padded) rows.
func (tr *Trace) TotalReturn() core.FieldElement {
	return tr.Columns[ColCumRet][tr.ActualTradeCount-1]
}

// ComputeSharpeSqScaled derives the integer claimed value
// floor((Σr)^2 * S / (n*Σr^2 - (Σr)^2)) using real (non-field) integer arithmetic, the
// way the prover decides what to claim before building the trace's boundary
// constraint. Returns an error (DegenerateInput) when the denominator is zero, i.e.
// zero return variance.
func (tr *Trace) ComputeSharpeSqScaled() (*big.Int, error) {
	n := big.NewInt(int64(tr.ActualTradeCount))
	sumSq := new(big.Int).Mul(tr.cumRetInt, tr.cumRetInt)
	denom := new(big.Int).Mul(n, tr.cumSqInt)
	denom.Sub(denom, sumSq)
	if denom.Sign() == 0 {
		return nil, fmt.Errorf("protocols: degenerate input: zero-variance denominator in Sharpe identity")
	}
	num := new(big.Int).Mul(sumSq, big.NewInt(SharpeScale))
	return new(big.Int).Div(num, denom), nil
}

// PublicInputs returns [trade_count, total_return, claimed_sharpe_sq_scaled,
// merkle_root_of_commitment_column].
func (tr *Trace) PublicInputs(claimedSharpeSqScaled core.FieldElement) [4]core.FieldElement {
	logN := core.Log2(tr.Len)
	commitmentRoot := core.ConstantColumnRoot(tr.Columns[ColCommitment][0], logN)
	return [4]core.FieldElement{
		core.NewFromUint64(uint64(tr.ActualTradeCount)),
		tr.TotalReturn(),
		claimedSharpeSqScaled,
		commitmentRoot,
	}
}
