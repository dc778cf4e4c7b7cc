// SPDX-License-Identifier: MIT
package clone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mcflow"
	"github.com/katalvlaran/mcflow/clone"
	"github.com/katalvlaran/mcflow/relax"
	"github.com/katalvlaran/mcflow/simplex"
	"github.com/katalvlaran/mcflow/sptree"
)

// loadTriangle builds the same 1-source/2-sink uncapacitated instance used
// across the sptree/simplex/relax test suites: node 1 supplies 10, nodes 2
// and 3 each demand 5, optimal cost 15. Per spec's deficit convention
// (positive b = demand, negative b = supply), node 1's deficit is -10 and
// nodes 2/3's are +5 each. mMax is 4 so one more arc can be added.
func loadTriangle(t *testing.T, s mcflow.Solver) {
	t.Helper()
	u := []float64{mcflow.PosInf(), mcflow.PosInf(), mcflow.PosInf()}
	c := []float64{1, 4, 1}
	b := []float64{-10, 5, 5}
	tail := []mcflow.Index{1, 1, 2}
	head := []mcflow.Index{2, 3, 3}
	require.NoError(t, s.LoadNet(3, 4, 3, 3, u, c, b, tail, head))
}

func TestAdapter_MasterSlaveAgree(t *testing.T) {
	a := clone.NewAdapter(
		func() mcflow.Solver { return sptree.NewSolver() },
		func() mcflow.Solver { return simplex.NewSolver() },
	)
	loadTriangle(t, a)
	require.NoError(t, a.SolveMCF())
	require.Equal(t, mcflow.StatusOK, a.Status())
	assert.InDelta(t, 15.0, a.FO(), 1e-6)
	assert.InDelta(t, a.Master().FO(), a.Slave().FO(), 1e-6)
	assert.Equal(t, a.Master().Status(), a.Slave().Status())
}

func TestAdapter_TimeMCFSumsBoth(t *testing.T) {
	a := clone.NewAdapter(
		func() mcflow.Solver { return sptree.NewSolver() },
		func() mcflow.Solver { return relax.NewSolver() },
	)
	loadTriangle(t, a)
	require.NoError(t, a.SolveMCF())
	assert.Equal(t, a.Master().TimeMCF()+a.Slave().TimeMCF(), a.TimeMCF())
}

func TestAdapter_EditsForwardToBoth(t *testing.T) {
	a := clone.NewAdapter(
		func() mcflow.Solver { return sptree.NewSolver() },
		func() mcflow.Solver { return simplex.NewSolver() },
	)
	loadTriangle(t, a)
	require.NoError(t, a.ChgCost(1, 2))
	assert.InDelta(t, 2.0, a.Master().Costs([]mcflow.Index{1}, 0, 0)[0], 1e-9)
	assert.InDelta(t, 2.0, a.Slave().Costs([]mcflow.Index{1}, 0, 0)[0], 1e-9)

	require.NoError(t, a.SolveMCF())
	assert.InDelta(t, a.Master().FO(), a.Slave().FO(), 1e-6)
}

func TestAdapter_AddArcReturnsMasterName(t *testing.T) {
	a := clone.NewAdapter(
		func() mcflow.Solver { return sptree.NewSolver() },
		func() mcflow.Solver { return simplex.NewSolver() },
	)
	loadTriangle(t, a)

	name, err := a.AddArc(2, 1, 10, 1)
	require.NoError(t, err)

	masterTail, masterHead := a.Master().Arcs([]mcflow.Index{name}, 0, 0)
	assert.Equal(t, []mcflow.Index{2}, masterTail)
	assert.Equal(t, []mcflow.Index{1}, masterHead)
}

func TestAdapter_StateRoundTripsOnMasterOnly(t *testing.T) {
	a := clone.NewAdapter(
		func() mcflow.Solver { return sptree.NewSolver() },
		func() mcflow.Solver { return simplex.NewSolver() },
	)
	loadTriangle(t, a)
	require.NoError(t, a.SolveMCF())
	snap := a.State()

	require.NoError(t, a.ChgCost(1, 100))
	require.NoError(t, a.PutState(snap))
	assert.Equal(t, mcflow.StatusUnsolved, a.Status())
}

var _ mcflow.Solver = (*clone.Adapter)(nil)
