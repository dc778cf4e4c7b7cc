// SPDX-License-Identifier: MIT
package sptree

import (
	"fmt"
	"os"
	"time"

	"github.com/katalvlaran/mcflow"
)

// Solver is a Shortest-Path-Tree Minimum Cost Flow solver: it satisfies
// mcflow.Solver by running successive shortest augmenting paths over the
// residual network, maintaining node potentials so every residual reduced
// cost stays non-negative after the first round (Ahuja-Magnanti-Orlin
// "successive shortest paths"; the Variant controls only how each round's
// single-source shortest-path computation is organized).
//
// A Solver recomputes its flow from scratch whenever the topology, a cost,
// or a capacity changes (Design Note "sptree-specific design note: no
// incremental re-solve");
// only a deficit-only edit between solves is cheap to detect but is not
// specially fast-pathed here either, for the same reason: nothing short of
// a full round-by-round restart is sound once an old shortest-path tree
// might no longer be valid against new potentials.
type Solver struct {
	*mcflow.Net

	opts Options
	tol  mcflow.Tolerances

	dirty bool
	fs    *forwardStar

	tailIdx []int
	headIdx []int
	costArr []float64
	ucapArr []float64

	x  []float64
	pi []float64

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
		Net:        mcflow.NewNet(0, 0),
		opts:       cfg,
		tol:        mcflow.NewTolerances(mcflow.DefaultEpsFlow, mcflow.DefaultEpsCost),
		paramInt:   make(map[mcflow.ParamKey]int),
		paramFloat: make(map[mcflow.ParamKey]float64),
		dirty:      true,
	}
}

// --- Topology/data edits: delegate to Net, then mark the derived
// structures stale so the next PreProcess/SolveMCF rebuilds them. ---

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
	// Quadratic costs are out of scope for this solver (spec carries
	// separable-quadratic costs only on simplex); stored for API
	// compatibility but never consulted by SolveMCF.
	return s.Net.ChgQCoef(arc, q)
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

func (s *Solver) ParamInt(key mcflow.ParamKey) int      { return s.paramInt[key] }
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

	s.tailIdx = make([]int, m)
	s.headIdx = make([]int, m)
	s.costArr = make([]float64, m)
	s.ucapArr = make([]float64, m)
	for _, a := range live {
		ti, _ := s.Net.NodeIndex(s.Net.SNode(a))
		hi, _ := s.Net.NodeIndex(s.Net.ENode(a))
		s.tailIdx[a] = ti
		s.headIdx[a] = hi
		s.costArr[a] = s.Net.Cost(a)
		s.ucapArr[a] = s.Net.UCap(a)
	}
	s.fs = build(s.Net, n, live,
		func(a mcflow.Index) int { return s.tailIdx[a] },
		func(a mcflow.Index) int { return s.headIdx[a] })

	s.x = make([]float64, m)
	s.pi = make([]float64, n)
	s.dirty = false
	return nil
}

func (s *Solver) neighbors(v int, visit func(to int, a mcflow.Index, forward bool, rc float64)) {
	for _, a := range s.fs.outArcs[v] {
		cap := s.ucapArr[a] - s.x[a]
		if cap > s.tol.EpsFlow {
			to := s.headIdx[a]
			rc := s.costArr[a] - s.pi[v] + s.pi[to]
			visit(to, a, true, rc)
		}
	}
	for _, a := range s.fs.inArcs[v] {
		if s.x[a] > s.tol.EpsFlow {
			to := s.tailIdx[a]
			rc := -s.costArr[a] - s.pi[v] + s.pi[to]
			visit(to, a, false, rc)
		}
	}
}

// labelState is the per-round scratch state every variant fills in.
type labelState struct {
	dist        []float64
	predArc     []mcflow.Index
	predForward []bool
	reached     []bool
}

func newLabelState(n, src int) *labelState {
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = mcflow.PosInf()
	}
	dist[src] = 0
	predArc := make([]mcflow.Index, n)
	for i := range predArc {
		predArc[i] = -1
	}
	reached := make([]bool, n)
	reached[src] = true
	return &labelState{dist: dist, predArc: predArc, predForward: make([]bool, n), reached: reached}
}

func (st *labelState) relax(v, to int, a mcflow.Index, forward bool, rc float64, tol mcflow.Tolerances) bool {
	nd := st.dist[v] + rc
	if nd < st.dist[to]-tol.EpsCost {
		st.dist[to] = nd
		st.predArc[to] = a
		st.predForward[to] = forward
		st.reached[to] = true
		return true
	}
	return false
}

func (s *Solver) runRound(src int) *labelState {
	switch s.opts.Variant {
	case VariantLQueue:
		return s.solveLQueue(src)
	case VariantLDeque:
		return s.solveLDeque(src)
	case VariantDijkstra:
		return s.solveDijkstraLinear(src)
	default:
		return s.solveHeap(src)
	}
}

func (s *Solver) solveLQueue(src int) *labelState {
	n := len(s.pi)
	st := newLabelState(n, src)
	q := newFIFOQueue(n)
	q.push(mcflow.Index(src))
	for {
		v, ok := q.pop()
		if !ok {
			break
		}
		s.neighbors(v, func(to int, a mcflow.Index, forward bool, rc float64) {
			if st.relax(v, to, a, forward, rc, s.tol) {
				q.push(mcflow.Index(to))
			}
		})
	}
	return st
}

func (s *Solver) solveLDeque(src int) *labelState {
	n := len(s.pi)
	st := newLabelState(n, src)
	q := newDequeQueue(n)
	q.push(mcflow.Index(src))
	for {
		v, ok := q.pop()
		if !ok {
			break
		}
		s.neighbors(v, func(to int, a mcflow.Index, forward bool, rc float64) {
			if st.relax(v, to, a, forward, rc, s.tol) {
				q.push(mcflow.Index(to))
			}
		})
	}
	return st
}

func (s *Solver) solveDijkstraLinear(src int) *labelState {
	n := len(s.pi)
	st := newLabelState(n, src)
	done := make([]bool, n)
	for {
		u := -1
		best := mcflow.PosInf()
		for v := 0; v < n; v++ {
			if !done[v] && st.reached[v] && st.dist[v] < best {
				best = st.dist[v]
				u = v
			}
		}
		if u < 0 {
			break
		}
		done[u] = true
		s.neighbors(u, func(to int, a mcflow.Index, forward bool, rc float64) {
			st.relax(u, to, a, forward, rc, s.tol)
		})
	}
	return st
}

func (s *Solver) solveHeap(src int) *labelState {
	n := len(s.pi)
	st := newLabelState(n, src)
	done := make([]bool, n)
	h := newDHeap(s.opts.HeapArity)
	h.push(mcflow.Index(src), 0)
	for !h.empty() {
		v, d, _ := h.pop()
		if done[v] {
			continue
		}
		if d > st.dist[v]+s.tol.EpsCost {
			continue // stale lazy-decrease-key entry
		}
		done[v] = true
		s.neighbors(v, func(to int, a mcflow.Index, forward bool, rc float64) {
			if st.relax(v, to, a, forward, rc, s.tol) {
				h.push(mcflow.Index(to), st.dist[to])
			}
		})
	}
	return st
}

func (s *Solver) bottleneck(sink int, st *labelState) float64 {
	delta := mcflow.PosInf()
	v := sink
	for st.predArc[v] != -1 {
		a := st.predArc[v]
		var cap float64
		if st.predForward[v] {
			cap = s.ucapArr[a] - s.x[a]
			v = s.tailIdx[a]
		} else {
			cap = s.x[a]
			v = s.headIdx[a]
		}
		if cap < delta {
			delta = cap
		}
	}
	return delta
}

func (s *Solver) augment(sink int, delta float64, st *labelState) {
	v := sink
	for st.predArc[v] != -1 {
		a := st.predArc[v]
		if st.predForward[v] {
			s.x[a] += delta
			v = s.tailIdx[a]
		} else {
			s.x[a] -= delta
			v = s.headIdx[a]
		}
	}
}

// SolveMCF runs successive shortest augmenting paths to termination.
func (s *Solver) SolveMCF() error {
	t0 := time.Now()
	defer func() { s.timeMCF += time.Since(t0) }()

	if s.dirty {
		if err := s.rebuild(); err != nil {
			return err
		}
	}

	if s.opts.Variant == VariantDijkstra || s.opts.Variant == VariantHeap {
		for _, a := range s.Net.LiveArcs() {
			if s.Net.Cost(a) < 0 {
				return fmt.Errorf("sptree: %w", ErrNegativeCost)
			}
		}
	}

	n := s.Net.N()
	excess := make([]float64, n)
	total := 0.0
	for v := 0; v < n; v++ {
		// excess is the amount v must push into the network: spec §3/§8's
		// conservation equation is outflow-inflow = -b_v (positive b = demand,
		// negative b = supply), so excess is the negated deficit.
		excess[v] = -s.Net.Dfct(s.Net.ExternalNode(v))
		total += excess[v]
	}
	if !s.tol.ETZf(total) {
		s.status = mcflow.StatusInfeasible
		return nil
	}

	maxIter := s.paramInt[mcflow.MaxIter]
	for {
		src := -1
		for v := 0; v < n; v++ {
			if excess[v] > s.tol.EpsFlow {
				src = v
				break
			}
		}
		if src < 0 {
			break
		}
		if maxIter > 0 && s.iterCount >= maxIter {
			s.status = mcflow.StatusStopped
			return nil
		}
		s.iterCount++

		st := s.runRound(src)

		sink := -1
		for v := 0; v < n; v++ {
			if st.reached[v] && excess[v] < -s.tol.EpsFlow {
				sink = v
				break
			}
		}
		if sink < 0 {
			s.status = mcflow.StatusInfeasible
			return nil
		}

		delta := s.bottleneck(sink, st)
		if excess[src] < delta {
			delta = excess[src]
		}
		if -excess[sink] < delta {
			delta = -excess[sink]
		}
		s.augment(sink, delta, st)
		excess[src] -= delta
		excess[sink] += delta

		// rc = c - pi[tail] + pi[head], so subtracting the round's distances
		// keeps every residual reduced cost non-negative.
		for v := 0; v < n; v++ {
			if st.reached[v] {
				s.pi[v] -= st.dist[v]
			}
		}

		if s.opts.Verbose {
			fmt.Fprintf(os.Stderr, "sptree: round %d src=%d sink=%d delta=%g\n", s.iterCount, src, sink, delta)
		}
	}

	s.fo = 0
	for _, a := range s.Net.LiveArcs() {
		s.fo += s.costArr[a] * s.x[a]
	}
	s.status = mcflow.StatusOK
	return nil
}

func (s *Solver) Status() mcflow.Status      { return s.status }
func (s *Solver) FO() float64                { return s.fo }
func (s *Solver) TimeMCF() time.Duration     { return s.timeMCF }
func (s *Solver) Iterations() int            { return s.iterCount }

func (s *Solver) ensureSized() {
	if s.dirty {
		_ = s.rebuild()
	}
}

func selectRange(total int, start, stop int) []mcflow.Index {
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
	for a := 0; a < len(s.x); a++ {
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
	return s.costArr[a] - s.pi[s.tailIdx[a]] + s.pi[s.headIdx[a]]
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

// state is the sptree-specific mcflow.State realization: just the flow and
// potential vectors, since the forward star is cheaply rebuilt from Net.
type state struct {
	x, pi []float64
}

func (st *state) Algorithm() string { return "sptree" }

func (s *Solver) State() mcflow.State {
	s.ensureSized()
	return &state{x: append([]float64(nil), s.x...), pi: append([]float64(nil), s.pi...)}
}

func (s *Solver) PutState(st mcflow.State) error {
	ss, ok := st.(*state)
	if !ok {
		return fmt.Errorf("sptree: %w: foreign State from %q", mcflow.ErrIllegalTopologyOp, st.Algorithm())
	}
	s.ensureSized()
	if len(ss.x) != len(s.x) || len(ss.pi) != len(s.pi) {
		return fmt.Errorf("sptree: %w: State size mismatch", mcflow.ErrIllegalTopologyOp)
	}
	copy(s.x, ss.x)
	copy(s.pi, ss.pi)
	s.status = mcflow.StatusUnsolved
	return nil
}

var _ mcflow.Solver = (*Solver)(nil)
