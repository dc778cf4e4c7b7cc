package sptree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mcflow"
	"github.com/katalvlaran/mcflow/sptree"
)

// triangleTransportation builds a 1-source/2-sink uncapacitated instance:
// node 1 supplies 10, nodes 2 and 3 each demand 5. Per spec's deficit
// convention (positive b = demand, negative b = supply), node 1's deficit
// is -10 and nodes 2/3's are +5 each.
func triangleTransportation(t *testing.T, variant sptree.Variant) *sptree.Solver {
	t.Helper()
	s := sptree.NewSolver(sptree.WithVariant(variant))
	u := []float64{mcflow.PosInf(), mcflow.PosInf(), mcflow.PosInf()}
	c := []float64{1, 4, 1}
	b := []float64{-10, 5, 5}
	tail := []mcflow.Index{1, 1, 2}
	head := []mcflow.Index{2, 3, 3}
	require.NoError(t, s.LoadNet(3, 3, 3, 3, u, c, b, tail, head))
	return s
}

func TestSolveMCF_AllVariants(t *testing.T) {
	for _, variant := range []sptree.Variant{
		sptree.VariantLQueue,
		sptree.VariantLDeque,
		sptree.VariantDijkstra,
		sptree.VariantHeap,
	} {
		t.Run(variant.String(), func(t *testing.T) {
			s := triangleTransportation(t, variant)
			require.NoError(t, s.SolveMCF())
			require.Equal(t, mcflow.StatusOK, s.Status())

			// Optimal: send 5 to node 2 at cost 1 and 5 on to node 3 via node 2
			// at cost 1+1=2; the direct arc 1->3 (cost 4) stays empty.
			assert.InDelta(t, 15.0, s.FO(), 1e-6)

			x := s.DenseX(0, 3)
			require.Len(t, x, 3)
			// Flow conservation: node 1's total outflow (x[0]+x[1]) equals
			// its supply, the negation of its deficit (-(-10) = 10).
			assert.InDelta(t, 10.0, x[0]+x[1], 1e-6, "total outflow from source equals its supply")
		})
	}
}

func TestSolveMCF_Unbalanced(t *testing.T) {
	s := sptree.NewSolver()
	u := []float64{mcflow.PosInf()}
	c := []float64{1}
	b := []float64{-10, 3} // does not sum to zero
	tail := []mcflow.Index{1}
	head := []mcflow.Index{2}
	require.NoError(t, s.LoadNet(2, 1, 2, 1, u, c, b, tail, head))
	require.NoError(t, s.SolveMCF())
	assert.Equal(t, mcflow.StatusInfeasible, s.Status())
}

func TestSolveMCF_Infeasible_Disconnected(t *testing.T) {
	s := sptree.NewSolver()
	// Node 1 supplies 5 and node 4 demands 5, but the only arc is 1->2, so
	// no path reaches node 4.
	u := []float64{mcflow.PosInf()}
	c := []float64{1}
	b := []float64{-5, 0, 0, 5}
	tail := []mcflow.Index{1}
	head := []mcflow.Index{2}
	require.NoError(t, s.LoadNet(4, 1, 4, 1, u, c, b, tail, head))
	require.NoError(t, s.SolveMCF())
	assert.Equal(t, mcflow.StatusInfeasible, s.Status())
}

func TestDijkstraVariant_RejectsNegativeCost(t *testing.T) {
	s := sptree.NewSolver(sptree.WithVariant(sptree.VariantHeap))
	u := []float64{mcflow.PosInf()}
	c := []float64{-1}
	b := []float64{-5, 5}
	tail := []mcflow.Index{1}
	head := []mcflow.Index{2}
	require.NoError(t, s.LoadNet(2, 1, 2, 1, u, c, b, tail, head))
	err := s.SolveMCF()
	assert.ErrorIs(t, err, sptree.ErrNegativeCost)
}

func TestSparseX_SkipsZeroFlowArcs(t *testing.T) {
	s := triangleTransportation(t, sptree.VariantHeap)
	require.NoError(t, s.SolveMCF())
	vals, names := s.SparseX()
	for _, v := range vals {
		assert.NotZero(t, v)
	}
	assert.Equal(t, len(vals), len(names))
}

func TestState_RoundTrip(t *testing.T) {
	s := triangleTransportation(t, sptree.VariantHeap)
	require.NoError(t, s.SolveMCF())
	snap := s.State()

	// Mutate a cost, forcing a dirty rebuild, then restore the snapshot.
	require.NoError(t, s.ChgCost(1, 100))
	require.NoError(t, s.PutState(snap))
	assert.Equal(t, mcflow.StatusUnsolved, s.Status())
}

func TestAddArc_ReusesSmallestFreedName(t *testing.T) {
	s := sptree.NewSolver()
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
