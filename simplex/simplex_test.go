// SPDX-License-Identifier: MIT
package simplex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mcflow"
	"github.com/katalvlaran/mcflow/simplex"
)

// triangleTransportation builds the same 3-node instance used across the
// solver test suites: node 1 supplies 10, nodes 2 and 3 each demand 5;
// arcs 1->2 cost 1, 1->3 cost 4, 2->3 cost 1. The cheapest routing sends
// all 10 units via 1->2 and relays 5 of them onward via 2->3, leaving the
// expensive direct arc 1->3 unused, for an optimal objective of 15. Per
// spec's deficit convention (positive b = demand, negative b = supply),
// node 1's deficit is -10 and nodes 2/3's are +5 each.
func triangleTransportation(t *testing.T, opts ...simplex.Option) *simplex.Solver {
	t.Helper()
	s := simplex.NewSolver(opts...)
	u := []float64{mcflow.PosInf(), mcflow.PosInf(), mcflow.PosInf()}
	c := []float64{1, 4, 1}
	b := []float64{-10, 5, 5}
	tail := []mcflow.Index{1, 1, 2}
	head := []mcflow.Index{2, 3, 3}
	require.NoError(t, s.LoadNet(3, 3, 3, 3, u, c, b, tail, head))
	return s
}

func TestSolveMCF_Primal_AllPricingRules(t *testing.T) {
	rules := []simplex.PricingKind{
		simplex.PricingDantzig,
		simplex.PricingFirstEligible,
		simplex.PricingCandidateList,
	}
	for _, rule := range rules {
		s := triangleTransportation(t, simplex.WithPricing(rule))
		require.NoError(t, s.SolveMCF())
		require.Equal(t, mcflow.StatusOK, s.Status())
		assert.InDelta(t, 15.0, s.FO(), 1e-6)
	}
}

func TestSolveMCF_Dual(t *testing.T) {
	s := triangleTransportation(t, simplex.WithAlgorithm(simplex.AlgorithmDual))
	require.NoError(t, s.SolveMCF())
	require.Equal(t, mcflow.StatusOK, s.Status())
	assert.InDelta(t, 15.0, s.FO(), 1e-6)
}

func TestSolveMCF_DualRejectsQuadratic(t *testing.T) {
	s := triangleTransportation(t, simplex.WithAlgorithm(simplex.AlgorithmDual), simplex.WithQuadratic())
	err := s.SolveMCF()
	require.ErrorIs(t, err, simplex.ErrQuadraticDual)
}

func TestSolveMCF_Unbalanced(t *testing.T) {
	s := simplex.NewSolver()
	u := []float64{mcflow.PosInf()}
	c := []float64{1}
	b := []float64{-10, 3}
	tail := []mcflow.Index{1}
	head := []mcflow.Index{2}
	require.NoError(t, s.LoadNet(2, 1, 2, 1, u, c, b, tail, head))
	require.NoError(t, s.SolveMCF())
	assert.Equal(t, mcflow.StatusInfeasible, s.Status())
}

func TestSolveMCF_CapacityBinding(t *testing.T) {
	s := simplex.NewSolver()
	// node 1 supplies 10, node 3 demands 10, node 2 is transshipment only.
	// The direct arc 1->3 is capped at 4, so the remaining 6 units must
	// detour through 1->2->3, making both routes carry flow at optimality.
	u := []float64{4, mcflow.PosInf(), mcflow.PosInf()}
	c := []float64{1, 1, 1}
	b := []float64{-10, 0, 10}
	tail := []mcflow.Index{1, 1, 2}
	head := []mcflow.Index{3, 2, 3}
	require.NoError(t, s.LoadNet(3, 3, 3, 3, u, c, b, tail, head))
	require.NoError(t, s.SolveMCF())
	require.Equal(t, mcflow.StatusOK, s.Status())
	assert.InDelta(t, 16.0, s.FO(), 1e-6)
	assert.InDelta(t, 4.0, s.SubsetX([]mcflow.Index{0})[0], 1e-6)
}

func TestQuadraticPrimal(t *testing.T) {
	s := simplex.NewSolver(simplex.WithQuadratic())
	u := []float64{mcflow.PosInf(), mcflow.PosInf()}
	c := []float64{0, 0}
	b := []float64{-10, 0, 10}
	tail := []mcflow.Index{1, 2}
	head := []mcflow.Index{2, 3}
	require.NoError(t, s.LoadNet(3, 2, 3, 2, u, c, b, tail, head))
	require.NoError(t, s.ChgQCoef(0, 1))
	require.NoError(t, s.ChgQCoef(1, 1))
	require.NoError(t, s.SolveMCF())
	assert.Equal(t, mcflow.StatusOK, s.Status())
}

func TestSparseX_SkipsZeroFlowArcs(t *testing.T) {
	s := triangleTransportation(t)
	require.NoError(t, s.SolveMCF())
	vals, names := s.SparseX()
	require.Equal(t, len(vals), len(names))
	for _, v := range vals {
		assert.NotZero(t, v)
	}
}

func TestState_RoundTrip(t *testing.T) {
	s := triangleTransportation(t)
	require.NoError(t, s.SolveMCF())
	st := s.State()

	require.NoError(t, s.ChgCost(0, 9))
	require.NoError(t, s.SolveMCF())
	fo2 := s.FO()
	assert.NotEqual(t, 15.0, fo2)

	require.NoError(t, s.PutState(st))
	assert.Equal(t, mcflow.StatusUnsolved, s.Status())
}
