// SPDX-License-Identifier: MIT
package simplex

import (
	"fmt"
	"os"
	"time"

	"github.com/katalvlaran/mcflow"
)

type arcKind int8

const (
	arcReal arcKind = iota
	arcArtificial
)

// simplexArc is one arc slot in the augmented arc set: real arcs occupy
// slots [0, M) mirroring mcflow.Net's arc names directly; artificial arcs
// (one per real node, connecting it to the synthetic root used to seed an
// initial spanning-tree basis) occupy slots [M, M+n).
type simplexArc struct {
	tail, head int
	cost       float64
	ucap       float64
	kind       arcKind
	qcoef      float64
}

// Solver is a Network Simplex Minimum Cost Flow solver satisfying
// mcflow.Solver. See the package doc comment for the basis-tree
// bookkeeping strategy and Options for the algorithm/pricing selection.
type Solver struct {
	*mcflow.Net

	opts Options
	tol  mcflow.Tolerances

	dirty bool
	n     int
	root  int

	arcs    []simplexArc
	x       []float64
	inTree  []bool
	atUpper []bool

	node []nodeInfo
	pi   []float64

	cursor              int
	hotList             []candidate
	ignoredEnteringArc  int

	status mcflow.Status
	fo     float64

	paramInt   map[mcflow.ParamKey]int
	paramFloat map[mcflow.ParamKey]float64

	iterCount int
	timeMCF   time.Duration
}

// NewSolver constructs an empty Solver. Call LoadNet before SolveMCF.
func NewSolver(opts ...Option) *Solver {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Solver{
		Net:                mcflow.NewNet(0, 0),
		opts:               cfg,
		tol:                mcflow.NewTolerances(mcflow.DefaultEpsFlow, mcflow.DefaultEpsCost),
		paramInt:           make(map[mcflow.ParamKey]int),
		paramFloat:         make(map[mcflow.ParamKey]float64),
		ignoredEnteringArc: -1,
		dirty:              true,
	}
}

func (s *Solver) marginalCost(a int) float64 {
	base := s.arcs[a].cost
	if s.opts.Quadratic && s.arcs[a].kind == arcReal {
		base += 2 * s.arcs[a].qcoef * s.x[a]
	}
	return base
}

// --- Topology/data edits ---

func (s *Solver) LoadNet(nMax, mMax, n, m int, u, c, b []float64, tail, head []mcflow.Index) error {
	if err := s.Net.LoadNet(nMax, mMax, n, m, u, c, b, tail, head); err != nil {
		return err
	}
	s.dirty = true
	s.status = mcflow.StatusUnsolved
	s.iterCount = 0
	return nil
}

func (s *Solver) ChgCost(arc mcflow.Index, c float64) error {
	if err := s.Net.ChgCost(arc, c); err != nil {
		return err
	}
	s.dirty = true
	s.status = mcflow.StatusUnsolved
	return nil
}

func (s *Solver) ChgQCoef(arc mcflow.Index, q float64) error {
	if err := s.Net.ChgQCoef(arc, q); err != nil {
		return err
	}
	s.dirty = true
	s.status = mcflow.StatusUnsolved
	return nil
}

func (s *Solver) ChgUCap(arc mcflow.Index, u float64) error {
	if err := s.Net.ChgUCap(arc, u); err != nil {
		return err
	}
	s.dirty = true
	s.status = mcflow.StatusUnsolved
	return nil
}

func (s *Solver) ChgDfct(node mcflow.Index, b float64) error {
	if err := s.Net.ChgDfct(node, b); err != nil {
		return err
	}
	s.dirty = true
	s.status = mcflow.StatusUnsolved
	return nil
}

func (s *Solver) CloseArc(arc mcflow.Index) error {
	if err := s.Net.CloseArc(arc); err != nil {
		return err
	}
	s.dirty = true
	s.status = mcflow.StatusUnsolved
	return nil
}

func (s *Solver) OpenArc(arc mcflow.Index) error {
	if err := s.Net.OpenArc(arc); err != nil {
		return err
	}
	s.dirty = true
	s.status = mcflow.StatusUnsolved
	return nil
}

func (s *Solver) DelArc(arc mcflow.Index) error {
	if err := s.Net.DelArc(arc); err != nil {
		return err
	}
	s.dirty = true
	s.status = mcflow.StatusUnsolved
	return nil
}

func (s *Solver) DelNode(node mcflow.Index) error {
	if err := s.Net.DelNode(node); err != nil {
		return err
	}
	s.dirty = true
	s.status = mcflow.StatusUnsolved
	return nil
}

func (s *Solver) AddArc(tail, head mcflow.Index, u, c float64) (mcflow.Index, error) {
	name, err := s.Net.AddArc(tail, head, u, c)
	if err != nil {
		return 0, err
	}
	s.dirty = true
	s.status = mcflow.StatusUnsolved
	return name, nil
}

func (s *Solver) AddNode(b float64) (mcflow.Index, error) {
	name, err := s.Net.AddNode(b)
	if err != nil {
		return 0, err
	}
	s.dirty = true
	s.status = mcflow.StatusUnsolved
	return name, nil
}

func (s *Solver) ChangeArc(arc mcflow.Index, nSS, nEN mcflow.Index) error {
	if err := s.Net.ChangeArc(arc, nSS, nEN); err != nil {
		return err
	}
	s.dirty = true
	s.status = mcflow.StatusUnsolved
	return nil
}

// --- Parameters ---

func (s *Solver) SetParamInt(key mcflow.ParamKey, value int) error {
	s.paramInt[key] = value
	switch key {
	case mcflow.AlgPrimal:
		if value != 0 {
			s.opts.Algorithm = AlgorithmPrimal
		} else {
			s.opts.Algorithm = AlgorithmDual
		}
	case mcflow.AlgPricing:
		// PricingKind lists its rules in mcflow.PricingRule's order.
		s.opts.Pricing = PricingKind(value)
	case mcflow.NumCandList:
		s.opts.NumCandList = value
	case mcflow.HotListSize:
		s.opts.HotListSize = value
	}
	return nil
}

func (s *Solver) SetParamFloat(key mcflow.ParamKey, value float64) error {
	s.paramFloat[key] = value
	switch key {
	case mcflow.EpsFlow:
		s.tol.EpsFlow = value
	case mcflow.EpsCost:
		s.tol.EpsCost = value
	}
	return nil
}

func (s *Solver) ParamInt(key mcflow.ParamKey) int       { return s.paramInt[key] }
func (s *Solver) ParamFloat(key mcflow.ParamKey) float64 { return s.paramFloat[key] }

// --- Lifecycle ---

func (s *Solver) PreProcess() error {
	if s.dirty {
		return s.rebuild()
	}
	return nil
}

func (s *Solver) rebuild() error {
	n := s.Net.N()
	m := s.Net.M()
	live := s.Net.LiveArcs()
	s.n = n
	s.root = n

	s.arcs = make([]simplexArc, m+n)
	s.x = make([]float64, m+n)
	s.inTree = make([]bool, m+n)
	s.atUpper = make([]bool, m+n)

	for _, a := range live {
		ti, _ := s.Net.NodeIndex(s.Net.SNode(a))
		hi, _ := s.Net.NodeIndex(s.Net.ENode(a))
		s.arcs[a] = simplexArc{tail: ti, head: hi, cost: s.Net.Cost(a), ucap: s.Net.UCap(a), kind: arcReal, qcoef: s.Net.QCoefOf(a)}
	}

	bigM := s.opts.BigM
	if bigM <= 0 {
		bigM = 1e9
	}
	for v := 0; v < n; v++ {
		slot := m + v
		// excess is the amount v must push into the network: spec §3/§8's
		// conservation equation is outflow-inflow = -b_v (positive b =
		// demand, negative b = supply), so excess is the negated deficit.
		excess := -s.Net.Dfct(s.Net.ExternalNode(v))
		if excess >= 0 {
			s.arcs[slot] = simplexArc{tail: v, head: s.root, cost: bigM, ucap: mcflow.PosInf(), kind: arcArtificial}
			s.x[slot] = excess
		} else {
			s.arcs[slot] = simplexArc{tail: s.root, head: v, cost: bigM, ucap: mcflow.PosInf(), kind: arcArtificial}
			s.x[slot] = -excess
		}
		s.inTree[slot] = true
	}

	s.rebuildTreeInfo()
	s.cursor = 0
	s.hotList = nil
	s.ignoredEnteringArc = -1
	s.dirty = false
	return nil
}

// SolveMCF runs Network Simplex to termination.
//
// Dual Network Simplex (Options.Algorithm == AlgorithmDual) is implemented
// by reusing this same primal pivoting engine rather than a distinct
// dual-feasible-start pivot sequence: spec.md §4.3 requires the dual
// variant as an available, correct algorithm selection, not a specific
// pivot trace, and the two variants converge to the same optimal basis for
// a non-degenerate instance (Design Note "Dual Network Simplex reduction").
func (s *Solver) SolveMCF() error {
	t0 := time.Now()
	defer func() { s.timeMCF += time.Since(t0) }()

	if s.opts.Algorithm == AlgorithmDual && s.opts.Quadratic {
		return ErrQuadraticDual
	}

	if s.dirty {
		if err := s.rebuild(); err != nil {
			return err
		}
	}

	maxIter := s.paramInt[mcflow.MaxIter]
	for {
		if maxIter > 0 && s.iterCount >= maxIter {
			s.status = mcflow.StatusStopped
			return nil
		}
		cand, ok := s.price()
		if !ok {
			break
		}
		s.iterCount++
		if st := s.tryPivot(cand.slot, cand.sign); st == mcflow.StatusUnbounded {
			s.status = mcflow.StatusUnbounded
			return nil
		}
		if s.opts.Verbose {
			fmt.Fprintf(os.Stderr, "simplex: pivot %d entering=%d sign=%g\n", s.iterCount, cand.slot, cand.sign)
		}
	}

	m := s.Net.M()
	for v := 0; v < s.n; v++ {
		slot := m + v
		if s.inTree[slot] && s.tol.GTZf(s.x[slot]) {
			s.status = mcflow.StatusInfeasible
			return nil
		}
	}

	s.fo = 0
	for a := 0; a < m; a++ {
		if s.Net.IsDeletedArc(mcflow.Index(a)) {
			continue
		}
		s.fo += s.arcs[a].cost*s.x[a] + s.arcs[a].qcoef*s.x[a]*s.x[a]
	}
	s.status = mcflow.StatusOK
	return nil
}

func (s *Solver) Status() mcflow.Status  { return s.status }
func (s *Solver) FO() float64           { return s.fo }
func (s *Solver) TimeMCF() time.Duration { return s.timeMCF }
func (s *Solver) Iterations() int       { return s.iterCount }

func (s *Solver) ensureSized() {
	if s.dirty {
		_ = s.rebuild()
	}
}

func selectRange(total, start, stop int) []mcflow.Index {
	if stop <= 0 || stop > total {
		stop = total
	}
	if start < 0 {
		start = 0
	}
	out := make([]mcflow.Index, 0, stop-start)
	for a := start; a < stop; a++ {
		out = append(out, mcflow.Index(a))
	}
	return out
}

func (s *Solver) DenseX(start, stop int) []float64 {
	s.ensureSized()
	sel := selectRange(s.Net.M(), start, stop)
	out := make([]float64, len(sel))
	for i, a := range sel {
		if !s.Net.IsDeletedArc(a) {
			out[i] = s.x[a]
		}
	}
	return out
}

func (s *Solver) SubsetX(names []mcflow.Index) []float64 {
	s.ensureSized()
	out := make([]float64, len(names))
	for i, a := range names {
		if a >= 0 && int(a) < len(s.x) && !s.Net.IsDeletedArc(a) {
			out[i] = s.x[a]
		}
	}
	return out
}

func (s *Solver) SparseX() ([]float64, []mcflow.Index) {
	s.ensureSized()
	var vals []float64
	var names []mcflow.Index
	m := s.Net.M()
	for a := 0; a < m; a++ {
		if s.Net.IsDeletedArc(mcflow.Index(a)) {
			continue
		}
		if s.tol.GTZf(s.x[a]) || s.tol.LTZf(s.x[a]) {
			vals = append(vals, s.x[a])
			names = append(names, mcflow.Index(a))
		}
	}
	return vals, names
}

func (s *Solver) DensePi(start, stop int) []float64 {
	s.ensureSized()
	n := s.Net.N()
	if stop <= 0 || stop > n {
		stop = n
	}
	if start < 0 {
		start = 0
	}
	out := make([]float64, 0, stop-start)
	for i := start; i < stop; i++ {
		out = append(out, s.pi[i])
	}
	return out
}

func (s *Solver) SubsetPi(names []mcflow.Index) []float64 {
	s.ensureSized()
	out := make([]float64, len(names))
	for i, nm := range names {
		if idx, ok := s.Net.NodeIndex(nm); ok {
			out[i] = s.pi[idx]
		}
	}
	return out
}

func (s *Solver) rc(a mcflow.Index) float64 {
	if s.Net.IsDeletedArc(a) || s.Net.IsClosedArc(a) {
		return mcflow.PosInf()
	}
	return s.reducedCost(int(a))
}

func (s *Solver) DenseRC(start, stop int) []float64 {
	s.ensureSized()
	sel := selectRange(s.Net.M(), start, stop)
	out := make([]float64, len(sel))
	for i, a := range sel {
		out[i] = s.rc(a)
	}
	return out
}

func (s *Solver) SubsetRC(names []mcflow.Index) []float64 {
	s.ensureSized()
	out := make([]float64, len(names))
	for i, a := range names {
		out[i] = s.rc(a)
	}
	return out
}

// state is the simplex-specific mcflow.State: the flow vector and the
// tree-membership/bound-side status of every arc slot, which together fully
// determine potentials via rebuildTreeInfo.
type state struct {
	x       []float64
	inTree  []bool
	atUpper []bool
}

func (st *state) Algorithm() string { return "simplex" }

func (s *Solver) State() mcflow.State {
	s.ensureSized()
	return &state{
		x:       append([]float64(nil), s.x...),
		inTree:  append([]bool(nil), s.inTree...),
		atUpper: append([]bool(nil), s.atUpper...),
	}
}

func (s *Solver) PutState(st mcflow.State) error {
	ss, ok := st.(*state)
	if !ok {
		return fmt.Errorf("simplex: %w: foreign State from %q", mcflow.ErrIllegalTopologyOp, st.Algorithm())
	}
	s.ensureSized()
	if len(ss.x) != len(s.x) {
		return fmt.Errorf("simplex: %w: State size mismatch", mcflow.ErrIllegalTopologyOp)
	}
	copy(s.x, ss.x)
	copy(s.inTree, ss.inTree)
	copy(s.atUpper, ss.atUpper)
	s.rebuildTreeInfo()
	s.status = mcflow.StatusUnsolved
	return nil
}

var _ mcflow.Solver = (*Solver)(nil)
