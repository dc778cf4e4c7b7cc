// SPDX-License-Identifier: MIT
package relax

import (
	"fmt"
	"os"
	"time"

	"github.com/katalvlaran/mcflow"
)

// Solver is a RELAX-IV Minimum Cost Flow solver satisfying mcflow.Solver.
// See the package doc comment for the primal-dual pseudoflow invariant it
// maintains between SolveMCF calls.
//
// Unlike sptree.Solver, dirty here means only "the cached per-arc arrays and
// forward star are stale and need resyncing from Net" — rebuild preserves
// the potential and flow vectors across the resync (Design Note "RELAX-IV
// warm start"), which is what lets a ChgCost/ChgUCap/ChgDfct edit resume
// from close to its previous solution instead of restarting cold.
type Solver struct {
	*mcflow.Net

	opts Options
	tol  mcflow.Tolerances

	dirty   bool
	crashed bool
	fs      *forwardStar

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
	augCount  int
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

// --- Topology/data edits ---

func (s *Solver) LoadNet(nMax, mMax, n, m int, u, c, b []float64, tail, head []mcflow.Index) error {
	if err := s.Net.LoadNet(nMax, mMax, n, m, u, c, b, tail, head); err != nil {
		return err
	}
	// A fresh LoadNet discards any prior instance entirely: this is not a
	// warm-startable edit, it is a new problem, so the cached potentials
	// and flow are reset rather than resynced.
	s.pi = nil
	s.x = nil
	s.crashed = false
	s.iterCount = 0
	s.augCount = 0
	s.dirty = true
	s.status = mcflow.StatusUnsolved
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
	// RELAX-IV is a linear-cost algorithm; quadratic coefficients are
	// stored on Net for contract uniformity but never consulted here.
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
	if key == mcflow.Auction {
		s.opts.Auction = value != 0
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

	tailIdx := make([]int, m)
	headIdx := make([]int, m)
	costArr := make([]float64, m)
	ucapArr := make([]float64, m)
	for _, a := range live {
		ti, _ := s.Net.NodeIndex(s.Net.SNode(a))
		hi, _ := s.Net.NodeIndex(s.Net.ENode(a))
		tailIdx[a] = ti
		headIdx[a] = hi
		costArr[a] = s.Net.Cost(a)
		ucapArr[a] = s.Net.UCap(a)
	}
	fs := build(n, live,
		func(a mcflow.Index) int { return tailIdx[a] },
		func(a mcflow.Index) int { return headIdx[a] })

	// Warm start: node/arc slot names are stable across edits (Net never
	// renumbers a survivor), so copying into the new, correctly-sized
	// arrays preserves every surviving potential/flow value; only newly
	// added slots start at the neutral zero.
	pi := make([]float64, n)
	copy(pi, s.pi)
	x := make([]float64, m)
	copy(x, s.x)

	s.tailIdx, s.headIdx, s.costArr, s.ucapArr = tailIdx, headIdx, costArr, ucapArr
	s.fs = fs
	s.pi = pi
	s.x = x
	s.dirty = false
	return nil
}

// crashInit seeds potentials with single-source-ascent shortest-path
// distances from every currently-supplying node, ignoring capacity: a
// simplified stand-in for RelaxIV.h's auction/epsilon-relaxation crash
// (Design Note "Auction crash simplification").
func (s *Solver) crashInit() {
	n := s.Net.N()
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = mcflow.PosInf()
	}
	for v := 0; v < n; v++ {
		// A supplying node has a negative deficit per spec §3/§8 (positive
		// b = demand, negative b = supply).
		if s.tol.LTZf(s.Net.Dfct(s.Net.ExternalNode(v))) {
			dist[v] = 0
		}
	}
	for iter := 0; iter < n; iter++ {
		changed := false
		for a := 0; a < s.Net.M(); a++ {
			na := mcflow.Index(a)
			if s.Net.IsDeletedArc(na) || s.Net.IsClosedArc(na) {
				continue
			}
			t, h := s.tailIdx[a], s.headIdx[a]
			if mcflow.IsPosInf(dist[t]) {
				continue
			}
			nd := dist[t] + s.costArr[a]
			if nd < dist[h]-s.tol.EpsCost {
				dist[h] = nd
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	for v := 0; v < n; v++ {
		if !mcflow.IsPosInf(dist[v]) {
			s.pi[v] = dist[v]
		}
	}
}

func (s *Solver) rcOf(a int) float64 {
	return s.costArr[a] - s.pi[s.headIdx[a]] + s.pi[s.tailIdx[a]]
}

// fixNonBasic restores complementary slackness for every live arc against
// the current potentials: an arc with rc > 0 carries no flow, rc < 0 is
// saturated (if its capacity is finite), rc == 0 keeps its current flow
// clamped into bounds. This is what lets a cost/capacity edit resume from
// a perturbation of the last solution instead of from scratch.
func (s *Solver) fixNonBasic() {
	for a := 0; a < s.Net.M(); a++ {
		na := mcflow.Index(a)
		if s.Net.IsDeletedArc(na) || s.Net.IsClosedArc(na) {
			s.x[a] = 0
			continue
		}
		rc := s.rcOf(a)
		switch {
		case s.tol.GTZc(rc):
			s.x[a] = 0
		case s.tol.LTZc(rc):
			if !mcflow.IsPosInf(s.ucapArr[a]) {
				s.x[a] = s.ucapArr[a]
			}
			// An infinite-capacity arc with persistently negative reduced
			// cost signals an unbounded instance; this solver does not
			// detect that case explicitly and instead relies on the
			// MaxIter cap (Design Note "Unboundedness is not detected").
		default:
			if s.x[a] < 0 {
				s.x[a] = 0
			}
			if !mcflow.IsPosInf(s.ucapArr[a]) && s.x[a] > s.ucapArr[a] {
				s.x[a] = s.ucapArr[a]
			}
		}
	}
}

// searchState is the admissible-subgraph reachability scan from one
// positive-excess node, built fresh every inner iteration since a dual
// ascent step changes which arcs are admissible.
type searchState struct {
	reached     []bool
	order       []int
	predArc     []mcflow.Index
	predForward []bool
}

func (s *Solver) search(src int) *searchState {
	n := s.Net.N()
	st := &searchState{
		reached:     make([]bool, n),
		predArc:     make([]mcflow.Index, n),
		predForward: make([]bool, n),
	}
	for i := range st.predArc {
		st.predArc[i] = -1
	}
	st.reached[src] = true
	st.order = append(st.order, src)
	queue := []int{src}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, a := range s.fs.outArcs[v] {
			h := s.headIdx[a]
			if st.reached[h] || !s.tol.ETZc(s.rcOf(a)) || !s.tol.GTZf(s.ucapArr[a]-s.x[a]) {
				continue
			}
			st.reached[h] = true
			st.predArc[h] = a
			st.predForward[h] = true
			st.order = append(st.order, h)
			queue = append(queue, h)
		}
		for _, a := range s.fs.inArcs[v] {
			t := s.tailIdx[a]
			if st.reached[t] || !s.tol.ETZc(s.rcOf(a)) || !s.tol.GTZf(s.x[a]) {
				continue
			}
			st.reached[t] = true
			st.predArc[t] = a
			st.predForward[t] = false
			st.order = append(st.order, t)
			queue = append(queue, t)
		}
	}
	return st
}

func (s *Solver) bottleneck(sink int, st *searchState) float64 {
	delta := mcflow.PosInf()
	v := sink
	for st.predArc[v] != -1 {
		a := st.predArc[v]
		if st.predForward[v] {
			cap := s.ucapArr[a] - s.x[a]
			if cap < delta {
				delta = cap
			}
			v = s.tailIdx[a]
		} else {
			if s.x[a] < delta {
				delta = s.x[a]
			}
			v = s.headIdx[a]
		}
	}
	return delta
}

func (s *Solver) augment(sink int, delta float64, st *searchState) {
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

// dualAscent computes the minimum potential decrease on the reached set
// that admits a new crossing arc, per the saturated-cut step of the
// package doc comment. ok is false if the cut has no spare capacity at any
// potential, proving infeasibility.
func (s *Solver) dualAscent(st *searchState) (float64, bool) {
	delta := mcflow.PosInf()
	for a := 0; a < s.Net.M(); a++ {
		na := mcflow.Index(a)
		if s.Net.IsDeletedArc(na) || s.Net.IsClosedArc(na) {
			continue
		}
		t, h := s.tailIdx[a], s.headIdx[a]
		switch {
		case st.reached[t] && !st.reached[h] && s.tol.GTZf(s.ucapArr[a]-s.x[a]):
			rc := s.rcOf(a)
			if s.tol.GTZc(rc) && rc < delta {
				delta = rc
			}
		case st.reached[h] && !st.reached[t] && s.tol.GTZf(s.x[a]):
			rc := s.rcOf(a)
			if s.tol.LTZc(rc) && -rc < delta {
				delta = -rc
			}
		}
	}
	if mcflow.IsPosInf(delta) {
		return 0, false
	}
	return delta, true
}

// SolveMCF runs the primal-dual relaxation loop to termination.
func (s *Solver) SolveMCF() error {
	t0 := time.Now()
	defer func() { s.timeMCF += time.Since(t0) }()

	if s.dirty {
		if err := s.rebuild(); err != nil {
			return err
		}
	}
	if s.opts.Auction && !s.crashed {
		s.crashInit()
		s.crashed = true
	}
	s.fixNonBasic()

	n := s.Net.N()
	excess := make([]float64, n)
	total := 0.0
	for v := 0; v < n; v++ {
		// excess is the amount v must push into the network: spec §3/§8's
		// conservation equation is outflow-inflow = -b_v (positive b =
		// demand, negative b = supply), so excess is the negated deficit.
		excess[v] = -s.Net.Dfct(s.Net.ExternalNode(v))
		total += excess[v]
	}
	if !s.tol.ETZf(total) {
		s.status = mcflow.StatusInfeasible
		return nil
	}
	for a := 0; a < s.Net.M(); a++ {
		na := mcflow.Index(a)
		if s.Net.IsDeletedArc(na) || s.Net.IsClosedArc(na) {
			continue
		}
		t, h := s.tailIdx[a], s.headIdx[a]
		excess[t] -= s.x[a]
		excess[h] += s.x[a]
	}

	maxIter := s.paramInt[mcflow.MaxIter]
	for {
		src := -1
		for v := 0; v < n; v++ {
			if s.tol.GTZf(excess[v]) {
				src = v
				break
			}
		}
		if src < 0 {
			break
		}
		for s.tol.GTZf(excess[src]) {
			if maxIter > 0 && s.iterCount >= maxIter {
				s.status = mcflow.StatusStopped
				return nil
			}
			s.iterCount++

			st := s.search(src)
			sink := -1
			for _, v := range st.order {
				if s.tol.LTZf(excess[v]) {
					sink = v
					break
				}
			}
			if sink < 0 {
				delta, ok := s.dualAscent(st)
				if !ok {
					s.status = mcflow.StatusInfeasible
					return nil
				}
				for v := 0; v < n; v++ {
					if st.reached[v] {
						s.pi[v] -= delta
					}
				}
				continue
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
			s.augCount++

			if s.opts.Verbose {
				fmt.Fprintf(os.Stderr, "relax: aug %d src=%d sink=%d delta=%g\n", s.augCount, src, sink, delta)
			}
		}
	}

	s.fo = 0
	for _, a := range s.Net.LiveArcs() {
		s.fo += s.costArr[a] * s.x[a]
	}
	s.status = mcflow.StatusOK
	return nil
}

func (s *Solver) Status() mcflow.Status   { return s.status }
func (s *Solver) FO() float64            { return s.fo }
func (s *Solver) TimeMCF() time.Duration { return s.timeMCF }
func (s *Solver) Iterations() int        { return s.iterCount }
func (s *Solver) Augmentations() int     { return s.augCount }

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
	return s.rcOf(int(a))
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

// state is the relax-specific mcflow.State: the flow and potential
// vectors, exactly what fixNonBasic needs to resume complementary
// slackness after a restore.
type state struct {
	x, pi []float64
}

func (st *state) Algorithm() string { return "relax" }

func (s *Solver) State() mcflow.State {
	s.ensureSized()
	return &state{x: append([]float64(nil), s.x...), pi: append([]float64(nil), s.pi...)}
}

func (s *Solver) PutState(st mcflow.State) error {
	ss, ok := st.(*state)
	if !ok {
		return fmt.Errorf("relax: %w: foreign State from %q", mcflow.ErrIllegalTopologyOp, st.Algorithm())
	}
	s.ensureSized()
	if len(ss.x) != len(s.x) || len(ss.pi) != len(s.pi) {
		return fmt.Errorf("relax: %w: State size mismatch", mcflow.ErrIllegalTopologyOp)
	}
	copy(s.x, ss.x)
	copy(s.pi, ss.pi)
	s.status = mcflow.StatusUnsolved
	return nil
}

var _ mcflow.Solver = (*Solver)(nil)
