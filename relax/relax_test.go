// SPDX-License-Identifier: MIT
package relax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mcflow"
	"github.com/katalvlaran/mcflow/relax"
)

// triangleTransportation builds a 1-source/2-sink uncapacitated instance:
// node 1 supplies 10, nodes 2 and 3 each demand 5; cheapest routing is 10
// units via 1->2 with 5 relayed onward via 2->3, for an optimal cost of 15.
// Per spec's deficit convention (positive b = demand, negative b = supply),
// node 1's deficit is -10 and nodes 2/3's are +5 each.
func triangleTransportation(t *testing.T, opts ...relax.Option) *relax.Solver {
	t.Helper()
	s := relax.NewSolver(opts...)
	u := []float64{mcflow.PosInf(), mcflow.PosInf(), mcflow.PosInf()}
	c := []float64{1, 4, 1}
	b := []float64{-10, 5, 5}
	tail := []mcflow.Index{1, 1, 2}
	head := []mcflow.Index{2, 3, 3}
	require.NoError(t, s.LoadNet(3, 3, 3, 3, u, c, b, tail, head))
	return s
}

func TestSolveMCF_Basic(t *testing.T) {
	s := triangleTransportation(t)
	require.NoError(t, s.SolveMCF())
	require.Equal(t, mcflow.StatusOK, s.Status())
	assert.InDelta(t, 15.0, s.FO(), 1e-6)
}

func TestSolveMCF_Auction(t *testing.T) {
	s := triangleTransportation(t, relax.WithAuction())
	require.NoError(t, s.SolveMCF())
	require.Equal(t, mcflow.StatusOK, s.Status())
	assert.InDelta(t, 15.0, s.FO(), 1e-6)
}

func TestSolveMCF_CapacityBinding(t *testing.T) {
	s := relax.NewSolver()
	u := []float64{4, mcflow.PosInf(), mcflow.PosInf()}
	c := []float64{1, 1, 1}
	b := []float64{-10, 0, 10}
	tail := []mcflow.Index{1, 1, 2}
	head := []mcflow.Index{3, 2, 3}
	require.NoError(t, s.LoadNet(3, 3, 3, 3, u, c, b, tail, head))
	require.NoError(t, s.SolveMCF())
	require.Equal(t, mcflow.StatusOK, s.Status())
	assert.InDelta(t, 16.0, s.FO(), 1e-6)
}

func TestSolveMCF_Unbalanced(t *testing.T) {
	s := relax.NewSolver()
	u := []float64{mcflow.PosInf()}
	c := []float64{1}
	b := []float64{-10, 3}
	tail := []mcflow.Index{1}
	head := []mcflow.Index{2}
	require.NoError(t, s.LoadNet(2, 1, 2, 1, u, c, b, tail, head))
	require.NoError(t, s.SolveMCF())
	assert.Equal(t, mcflow.StatusInfeasible, s.Status())
}

func TestSolveMCF_Infeasible_Disconnected(t *testing.T) {
	s := relax.NewSolver()
	u := []float64{mcflow.PosInf()}
	c := []float64{1}
	b := []float64{-5, 0, 0, 5}
	tail := []mcflow.Index{1}
	head := []mcflow.Index{2}
	require.NoError(t, s.LoadNet(4, 1, 4, 1, u, c, b, tail, head))
	require.NoError(t, s.SolveMCF())
	assert.Equal(t, mcflow.StatusInfeasible, s.Status())
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
	snap := s.State()

	require.NoError(t, s.ChgCost(1, 100))
	require.NoError(t, s.PutState(snap))
	assert.Equal(t, mcflow.StatusUnsolved, s.Status())
}

// TestWarmStart_NoNewIterationsOnNonBindingCostEdit exercises the warm-start
// property spec.md §4.4 requires: an edit that does not flip any arc's
// complementary-slackness bound status should resume from the already-
// optimal pseudoflow without any further augmenting search.
func TestWarmStart_NoNewIterationsOnNonBindingCostEdit(t *testing.T) {
	s := triangleTransportation(t)
	require.NoError(t, s.SolveMCF())
	iter1 := s.Iterations()

	require.NoError(t, s.ChgCost(1, 4.0000001))
	require.NoError(t, s.SolveMCF())

	assert.Equal(t, iter1, s.Iterations())
	assert.Equal(t, mcflow.StatusOK, s.Status())
}

func TestAddArc_ReusesSmallestFreedName(t *testing.T) {
	s := relax.NewSolver()
	u := []float64{mcflow.PosInf(), mcflow.PosInf()}
	c := []float64{1, 1}
	b := []float64{0, 0}
	tail := []mcflow.Index{1, 1}
	head := []mcflow.Index{2, 2}
	require.NoError(t, s.LoadNet(2, 4, 2, 2, u, c, b, tail, head))
	require.NoError(t, s.DelArc(0))
	name, err := s.AddArc(1, 2, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, mcflow.Index(0), name)
}
