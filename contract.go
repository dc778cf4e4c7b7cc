// SPDX-License-Identifier: MIT
package mcflow

import "time"

// State is an opaque, solver-specific snapshot produced by Solver.State and
// consumed by Solver.PutState, used to restore a solver to a previously
// captured basis/flow/potential configuration (spec §4.1, §8 property 6).
// Callers must not inspect or mutate a State's internals; its only valid
// uses are passing it back to PutState on a compatible solver instance, or
// discarding it.
type State interface {
	// Algorithm names the solver family that produced this snapshot
	// ("sptree", "simplex", "relax"), so PutState can reject a
	// foreign/incompatible State instead of silently misbehaving.
	Algorithm() string
}

// Solver is the uniform contract every minimum-cost-flow implementation in
// this module satisfies: sptree.Solver, simplex.Solver, relax.Solver, and
// clone.Adapter are all mcflow.Solver values. It mirrors the combined
// load/solve/query/edit/reoptimize lifecycle of spec §4.1, split into
// idiomatic Go method groups.
type Solver interface {
	// LoadNet installs a fresh instance, discarding any previous solution.
	// u, c, b, tail, head follow the dense LoadNet convention of Net.LoadNet.
	LoadNet(nMax, mMax, n, m int, u, c, b []float64, tail, head []Index) error

	// PreProcess runs any one-time preprocessing a solver benefits from
	// (e.g. building the forward star, or an initial spanning tree) ahead
	// of the first SolveMCF call. Calling SolveMCF without a prior
	// PreProcess is always valid; PreProcess is purely an optimization
	// hook.
	PreProcess() error

	// SetParamInt and SetParamFloat configure a ParamKey. The solvers in
	// this module accept every key through either method and always return
	// nil; keys are not classified as int-only or float-only.
	SetParamInt(key ParamKey, value int) error
	SetParamFloat(key ParamKey, value float64) error

	// ParamInt and ParamFloat echo back a previously set parameter, or zero
	// if it was never set (not the solver's effective default).
	ParamInt(key ParamKey) int
	ParamFloat(key ParamKey) float64

	// SolveMCF runs (or resumes) the solver to termination, a StatusStopped
	// MaxIter cap, or a detected StatusInfeasible/StatusUnbounded
	// condition. It is always safe to call again after an edit.
	SolveMCF() error

	// Status reports the outcome of the most recent SolveMCF call.
	Status() Status

	// FO returns the current objective value. Valid only once Status is
	// StatusOK; a SolveMCF call that ends in StatusStopped does not update
	// it.
	FO() float64

	// DenseX returns primal flow values for every arc slot in [start,stop)
	// (0 for a deleted slot). stop <= 0 means "through the end of the arc
	// range".
	DenseX(start, stop int) []float64
	// SubsetX returns primal flow values for exactly the named arcs, in
	// the order given.
	SubsetX(names []Index) []float64
	// SparseX returns every nonzero-flow arc as parallel (values, names)
	// slices, skipping zero-flow arcs entirely.
	SparseX() (values []float64, names []Index)

	// DensePi and SubsetPi are DenseX/SubsetX's node-potential analogues.
	DensePi(start, stop int) []float64
	SubsetPi(names []Index) []float64

	// DenseRC and SubsetRC report reduced costs of arcs i->j; a closed arc
	// reports +Inf per spec §6. sptree and simplex compute c_ij - pi_i +
	// pi_j from their own potentials; relax keeps potentials of the
	// opposite sign and computes c_ij - pi_j + pi_i. The reduced costs
	// agree across solvers, while DensePi values differ in sign.
	DenseRC(start, stop int) []float64
	SubsetRC(names []Index) []float64

	// Arcs, Costs, UCaps, Dfcts, QCoef are Net's bulk accessors, exposed on
	// every solver so a caller need not reach into an embedded Net.
	Arcs(names []Index, start, stop int) (tails, heads []Index)
	Costs(names []Index, start, stop int) []float64
	UCaps(names []Index, start, stop int) []float64
	Dfcts(names []Index, start, stop int) []float64
	QCoef(names []Index, start, stop int) []float64
	SNode(arc Index) Index
	ENode(arc Index) Index

	// ChgCost, ChgQCoef, ChgUCap, ChgDfct, CloseArc, OpenArc, DelArc,
	// DelNode, AddArc, AddNode, ChangeArc are Net's topology/data edits,
	// exposed so a solver can intercept an edit to invalidate or
	// warm-start its derived structure before delegating to Net.
	ChgCost(arc Index, c float64) error
	ChgQCoef(arc Index, q float64) error
	ChgUCap(arc Index, u float64) error
	ChgDfct(node Index, b float64) error
	CloseArc(arc Index) error
	OpenArc(arc Index) error
	DelArc(arc Index) error
	DelNode(node Index) error
	AddArc(tail, head Index, u, c float64) (Index, error)
	AddNode(b float64) (Index, error)
	ChangeArc(arc Index, nSS, nEN Index) error

	// State captures enough of the current configuration to resume from
	// later via PutState; PutState rejects a State from an incompatible
	// algorithm, or one whose size does not match the current instance.
	State() State
	PutState(s State) error

	// TimeMCF reports cumulative wall-clock time spent inside SolveMCF
	// across the solver's lifetime, mirroring RelaxIV/MCFSimplex's timer
	// fields.
	TimeMCF() time.Duration
}
