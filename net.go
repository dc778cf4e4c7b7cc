// SPDX-License-Identifier: MIT
package mcflow

import "fmt"

// arcState is the three-state lifecycle flag of spec §3: live, closed
// (logically zero-capacity, restorable), deleted (slot free for reuse).
type arcState int8

const (
	arcLive arcState = iota
	arcClosed
	arcDeleted
)

type arcRecord struct {
	tail, head Index // internal (0-based) node indices
	u          float64
	c          float64
	q          float64
	state      arcState
	freeNext   int // next free arc slot when state == arcDeleted; -1 if none
}

type nodeRecord struct {
	b       float64
	deleted bool
}

// Net is the shared mutable arc/node store every solver in this module
// builds on: it owns the topology (freelist-backed arc names, logically
// deleted nodes), the raw per-entity data (capacity, cost, quadratic
// coefficient, deficit), and the live/closed/deleted tripartition. Each
// solver derives its own algorithm-specific structure (basis tree, forward
// star, balanced adjacency lists) from a Net and rebuilds that derived
// structure on LoadNet or whenever an edit it cannot warm-start arrives.
//
// Net itself carries no concurrency guarantees: a solver (and therefore its
// embedded Net) is single-threaded-cooperative per spec §5.
type Net struct {
	Tol Tolerances

	zeroBased bool
	nMax      int
	mMax      int

	nodes []nodeRecord
	arcs  []arcRecord

	freeHead int // head of the deleted-arc freelist, -1 if empty
}

// NetOption configures a Net at construction.
type NetOption func(*Net)

// WithZeroBasedNames makes node names 0-based instead of the default
// 1-based convention (spec §6).
func WithZeroBasedNames() NetOption {
	return func(n *Net) { n.zeroBased = true }
}

// WithTolerances overrides the default flow/cost epsilons.
func WithTolerances(t Tolerances) NetOption {
	return func(n *Net) { n.Tol = t }
}

// NewNet allocates an empty Net with the given capacity hints.
func NewNet(nMax, mMax int, opts ...NetOption) *Net {
	n := &Net{
		Tol:      NewTolerances(DefaultEpsFlow, DefaultEpsCost),
		nMax:     nMax,
		mMax:     mMax,
		freeHead: -1,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// nodeOffset returns 0 for zero-based naming, 1 otherwise.
func (net *Net) nodeOffset() Index {
	if net.zeroBased {
		return 0
	}
	return 1
}

// N returns the current number of allocated node slots (including logically
// deleted ones, whose names remain reserved).
func (net *Net) N() int { return len(net.nodes) }

// M returns the current number of allocated arc slots (including closed and
// deleted ones; deleted slots may be reused by a future AddArc).
func (net *Net) M() int { return len(net.arcs) }

// NMax and MMax report the capacity hints.
func (net *Net) NMax() int { return net.nMax }
func (net *Net) MMax() int { return net.mMax }

func (net *Net) validNode(name Index) (int, bool) {
	i := name - net.nodeOffset()
	if i < 0 || i >= len(net.nodes) || net.nodes[i].deleted {
		return 0, false
	}
	return i, true
}

func (net *Net) validArc(name Index) (int, bool) {
	if name < 0 || name >= len(net.arcs) || net.arcs[name].state == arcDeleted {
		return 0, false
	}
	return name, true
}

// LoadNet reconfigures capacities if needed and installs n nodes and m arcs
// from dense arrays, per spec §4.1. Arcs with c[i] == +Inf are closed; among
// those, arcs with u[i] == +Inf are deleted outright (slot freed). Passing
// m == 0 yields an empty but usable instance of n nodes.
func (net *Net) LoadNet(nMax, mMax, n, m int, u, c, b []float64, tail, head []Index) error {
	if nMax > 0 {
		net.nMax = nMax
	}
	if mMax > 0 {
		net.mMax = mMax
	}
	if net.nMax < n {
		net.nMax = n
	}
	if net.mMax < m {
		net.mMax = m
	}

	net.nodes = make([]nodeRecord, n)
	for i := 0; i < n; i++ {
		if b != nil {
			net.nodes[i].b = b[i]
		}
	}

	net.arcs = make([]arcRecord, m)
	net.freeHead = -1
	for i := m - 1; i >= 0; i-- {
		ui := float64(0)
		if u != nil {
			ui = u[i]
		}
		ci := float64(0)
		if c != nil {
			ci = c[i]
		}
		a := arcRecord{tail: tail[i] - net.nodeOffset(), head: head[i] - net.nodeOffset(), u: ui, c: ci}
		switch {
		case IsPosInf(ci) && IsPosInf(ui):
			a.state = arcDeleted
			a.freeNext = net.freeHead
			net.freeHead = i
		case IsPosInf(ci):
			a.state = arcClosed
		default:
			a.state = arcLive
		}
		net.arcs[i] = a
	}
	return nil
}

// AddNode appends a new node with deficit aDfct and returns its name.
func (net *Net) AddNode(aDfct float64) (Index, error) {
	if net.nMax > 0 && len(net.nodes) >= net.nMax {
		return 0, wrapf("AddNode", ErrCapacityExceeded, "nMax=%d reached", net.nMax)
	}
	net.nodes = append(net.nodes, nodeRecord{b: aDfct})
	return Index(len(net.nodes)-1) + net.nodeOffset(), nil
}

// DelNode logically deletes a node: incident arcs are closed, its deficit
// is zeroed, and its name remains reserved (never reused).
func (net *Net) DelNode(name Index) error {
	i, ok := net.validNode(name)
	if !ok {
		return wrapf("DelNode", ErrInvalidName, "node %d", name)
	}
	for a := range net.arcs {
		if net.arcs[a].state == arcDeleted {
			continue
		}
		if net.arcs[a].tail == Index(i) || net.arcs[a].head == Index(i) {
			net.arcs[a].state = arcClosed
		}
	}
	net.nodes[i].deleted = true
	net.nodes[i].b = 0
	return nil
}

// AddArc installs a new live arc (tail,head,U,C) reusing the smallest freed
// slot if one exists, else appending. Returns the new arc's stable name.
func (net *Net) AddArc(tail, head Index, u, c float64) (Index, error) {
	ti, ok := net.validNode(tail)
	if !ok {
		return 0, wrapf("AddArc", ErrInvalidName, "tail %d", tail)
	}
	hi, ok := net.validNode(head)
	if !ok {
		return 0, wrapf("AddArc", ErrInvalidName, "head %d", head)
	}

	rec := arcRecord{tail: Index(ti), head: Index(hi), u: u, c: c, state: arcLive}
	if IsPosInf(c) {
		rec.state = arcClosed
	}

	if net.freeHead >= 0 {
		name := net.freeHead
		net.freeHead = net.arcs[name].freeNext
		rec.freeNext = 0
		net.arcs[name] = rec
		return Index(name), nil
	}

	if net.mMax > 0 && len(net.arcs) >= net.mMax {
		return 0, wrapf("AddArc", ErrCapacityExceeded, "mMax=%d reached", net.mMax)
	}
	net.arcs = append(net.arcs, rec)
	return Index(len(net.arcs) - 1), nil
}

// DelArc frees the arc's slot; a subsequent AddArc reuses the smallest
// freed name first (spec §8 property 7).
func (net *Net) DelArc(name Index) error {
	i, ok := net.validArc(name)
	if !ok {
		return wrapf("DelArc", ErrInvalidName, "arc %d", name)
	}
	net.arcs[i].state = arcDeleted
	// Insert into the freelist in increasing-name order so that reuse is
	// always smallest-free-first, independent of deletion order.
	if net.freeHead < 0 || name < Index(net.freeHead) {
		net.arcs[i].freeNext = net.freeHead
		net.freeHead = i
		return nil
	}
	prev := net.freeHead
	for net.arcs[prev].freeNext >= 0 && net.arcs[prev].freeNext < i {
		prev = net.arcs[prev].freeNext
	}
	net.arcs[i].freeNext = net.arcs[prev].freeNext
	net.arcs[prev].freeNext = i
	return nil
}

// CloseArc sets an arc to logically zero-capacity (restorable via OpenArc).
func (net *Net) CloseArc(name Index) error {
	i, ok := net.validArc(name)
	if !ok {
		return wrapf("CloseArc", ErrInvalidName, "arc %d", name)
	}
	net.arcs[i].state = arcClosed
	return nil
}

// OpenArc restores a closed arc to live. Calling it on a deleted arc fails
// with ErrIllegalTopologyOp (spec §4.1).
func (net *Net) OpenArc(name Index) error {
	if name < 0 || name >= len(net.arcs) {
		return wrapf("OpenArc", ErrInvalidName, "arc %d", name)
	}
	switch net.arcs[name].state {
	case arcDeleted:
		return wrapf("OpenArc", ErrIllegalTopologyOp, "arc %d is deleted", name)
	case arcClosed:
		net.arcs[name].state = arcLive
		return nil
	default:
		return nil // already live: idempotent
	}
}

// IsLiveArc, IsClosedArc, IsDeletedArc classify an arc's lifecycle state.
func (net *Net) IsLiveArc(name Index) bool {
	return name >= 0 && name < len(net.arcs) && net.arcs[name].state == arcLive
}
func (net *Net) IsClosedArc(name Index) bool {
	return name >= 0 && name < len(net.arcs) && net.arcs[name].state == arcClosed
}
func (net *Net) IsDeletedArc(name Index) bool {
	return name < 0 || name >= len(net.arcs) || net.arcs[name].state == arcDeleted
}

// ChgCost changes an arc's linear cost. Setting it to +Inf closes the arc.
func (net *Net) ChgCost(arc Index, c float64) error {
	i, ok := net.validArc(arc)
	if !ok {
		return wrapf("ChgCost", ErrInvalidName, "arc %d", arc)
	}
	net.arcs[i].c = c
	if IsPosInf(c) {
		net.arcs[i].state = arcClosed
	} else if net.arcs[i].state == arcClosed {
		net.arcs[i].state = arcLive
	}
	return nil
}

// ChgQCoef changes an arc's separable quadratic coefficient.
func (net *Net) ChgQCoef(arc Index, q float64) error {
	i, ok := net.validArc(arc)
	if !ok {
		return wrapf("ChgQCoef", ErrInvalidName, "arc %d", arc)
	}
	net.arcs[i].q = q
	return nil
}

// ChgUCap changes an arc's upper capacity.
func (net *Net) ChgUCap(arc Index, u float64) error {
	i, ok := net.validArc(arc)
	if !ok {
		return wrapf("ChgUCap", ErrInvalidName, "arc %d", arc)
	}
	net.arcs[i].u = u
	return nil
}

// ChgDfct changes a node's deficit.
func (net *Net) ChgDfct(node Index, b float64) error {
	i, ok := net.validNode(node)
	if !ok {
		return wrapf("ChgDfct", ErrInvalidName, "node %d", node)
	}
	net.nodes[i].b = b
	return nil
}

// ChangeArc reassigns an arc's endpoints. Passing InfIndex for nSS or nEN
// leaves that endpoint unchanged.
func (net *Net) ChangeArc(name Index, nSS, nEN Index) error {
	i, ok := net.validArc(name)
	if !ok {
		return wrapf("ChangeArc", ErrInvalidName, "arc %d", name)
	}
	if nSS != InfIndex {
		ti, ok := net.validNode(nSS)
		if !ok {
			return wrapf("ChangeArc", ErrInvalidName, "tail %d", nSS)
		}
		net.arcs[i].tail = Index(ti)
	}
	if nEN != InfIndex {
		hi, ok := net.validNode(nEN)
		if !ok {
			return wrapf("ChangeArc", ErrInvalidName, "head %d", nEN)
		}
		net.arcs[i].head = Index(hi)
	}
	return nil
}

// SNode and ENode return the tail/head node names of an arc, or InfIndex
// for a deleted one (spec §6 "Sentinel values").
func (net *Net) SNode(arc Index) Index {
	if net.IsDeletedArc(arc) {
		return InfIndex
	}
	return net.arcs[arc].tail + net.nodeOffset()
}

func (net *Net) ENode(arc Index) Index {
	if net.IsDeletedArc(arc) {
		return InfIndex
	}
	return net.arcs[arc].head + net.nodeOffset()
}

// Cost, QCoefOf, UCap report an arc's data; a closed arc reports +Inf cost and
// reduced cost per invariant 1, a deleted one reports +Inf for both.
func (net *Net) Cost(arc Index) float64 {
	if net.IsDeletedArc(arc) {
		return PosInf()
	}
	if net.arcs[arc].state == arcClosed {
		return PosInf()
	}
	return net.arcs[arc].c
}

func (net *Net) QCoefOf(arc Index) float64 {
	if net.IsDeletedArc(arc) {
		return 0
	}
	return net.arcs[arc].q
}

func (net *Net) UCap(arc Index) float64 {
	if net.IsDeletedArc(arc) {
		return 0
	}
	return net.arcs[arc].u
}

// Dfct reports a node's deficit (0 for a deleted node).
func (net *Net) Dfct(node Index) float64 {
	i, ok := net.validNode(node)
	if !ok {
		return 0
	}
	return net.nodes[i].b
}

// selectRange resolves the (nms, strt, stp) triple of spec §4.1 into a
// concrete list of arc indices to visit, in the order they should be
// reported. nms, when non-nil, must be strictly increasing.
func (net *Net) selectRange(nms []Index, strt, stp int) []Index {
	if stp <= 0 || stp > len(net.arcs) {
		stp = len(net.arcs)
	}
	if nms != nil {
		out := make([]Index, 0, len(nms))
		for _, a := range nms {
			if int(a) >= strt && int(a) < stp {
				out = append(out, a)
			}
		}
		return out
	}
	out := make([]Index, 0, stp-strt)
	for a := strt; a < stp; a++ {
		out = append(out, Index(a))
	}
	return out
}

// Arcs returns the tail/head node names for the selected arc range.
func (net *Net) Arcs(nms []Index, strt, stp int) (tails, heads []Index) {
	sel := net.selectRange(nms, strt, stp)
	tails = make([]Index, len(sel))
	heads = make([]Index, len(sel))
	for k, a := range sel {
		tails[k] = net.SNode(a)
		heads[k] = net.ENode(a)
	}
	return
}

// Costs, UCaps, Dfcts, QCoef return dense vectors over the selected range.
func (net *Net) Costs(nms []Index, strt, stp int) []float64 {
	sel := net.selectRange(nms, strt, stp)
	out := make([]float64, len(sel))
	for k, a := range sel {
		out[k] = net.Cost(a)
	}
	return out
}

func (net *Net) UCaps(nms []Index, strt, stp int) []float64 {
	sel := net.selectRange(nms, strt, stp)
	out := make([]float64, len(sel))
	for k, a := range sel {
		out[k] = net.UCap(a)
	}
	return out
}

func (net *Net) QCoef(nms []Index, strt, stp int) []float64 {
	sel := net.selectRange(nms, strt, stp)
	out := make([]float64, len(sel))
	for k, a := range sel {
		out[k] = net.QCoefOf(a)
	}
	return out
}

func (net *Net) Dfcts(nms []Index, strt, stp int) []float64 {
	if stp <= 0 || stp > len(net.nodes) {
		stp = len(net.nodes)
	}
	var sel []Index
	if nms != nil {
		for _, nd := range nms {
			if int(nd) >= strt && int(nd) < stp {
				sel = append(sel, nd)
			}
		}
	} else {
		for nd := strt; nd < stp; nd++ {
			sel = append(sel, Index(nd))
		}
	}
	out := make([]float64, len(sel))
	for k, nd := range sel {
		out[k] = net.Dfct(nd + net.nodeOffset())
	}
	return out
}

// Tails and Heads return the dense tail/head name slices of every allocated
// arc slot (deleted slots report InfIndex), mirroring RelaxIV's MCFSNdes/
// MCFENdes bulk accessors.
func (net *Net) Tails() []Index {
	out := make([]Index, len(net.arcs))
	for a := range net.arcs {
		out[a] = net.SNode(Index(a))
	}
	return out
}

func (net *Net) Heads() []Index {
	out := make([]Index, len(net.arcs))
	for a := range net.arcs {
		out[a] = net.ENode(Index(a))
	}
	return out
}

// LiveArcs returns the names of every currently live arc, in ascending
// order.
func (net *Net) LiveArcs() []Index {
	out := make([]Index, 0, len(net.arcs))
	for a := range net.arcs {
		if net.arcs[a].state == arcLive {
			out = append(out, Index(a))
		}
	}
	return out
}

// LiveNodes returns the names of every currently live (non-deleted) node.
func (net *Net) LiveNodes() []Index {
	out := make([]Index, 0, len(net.nodes))
	for i := range net.nodes {
		if !net.nodes[i].deleted {
			out = append(out, Index(i)+net.nodeOffset())
		}
	}
	return out
}

// NodeIndex converts an external node name to its internal 0-based slot,
// reporting false for an unknown or deleted node. Algorithm packages use
// this to build their own derived structures (forward stars, basis trees)
// indexed by small dense integers rather than by external name.
func (net *Net) NodeIndex(name Index) (int, bool) { return net.validNode(name) }

// ArcIndex validates an arc name, reporting false if it is out of range or
// deleted. A closed arc is still a valid ArcIndex (its capacity is
// logically zero, but it is not a free slot).
func (net *Net) ArcIndex(name Index) (int, bool) { return net.validArc(name) }

// ExternalNode converts an internal 0-based node slot back to its external
// name, honoring the zero-based/one-based naming convention.
func (net *Net) ExternalNode(i int) Index { return Index(i) + net.nodeOffset() }

// String implements fmt.Stringer for quick debugging.
func (net *Net) String() string {
	return fmt.Sprintf("mcflow.Net{n=%d, m=%d, nMax=%d, mMax=%d}", net.N(), net.M(), net.nMax, net.mMax)
}
