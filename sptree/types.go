// SPDX-License-Identifier: MIT

// Package sptree implements a Shortest-Path-Tree specialization of the
// successive-shortest-path Minimum Cost Flow algorithm: at each round it
// grows a shortest-path tree from a node with residual supply toward nodes
// with residual demand (over the current residual network and node
// potentials), then augments flow along the discovered path. Maintaining
// valid node potentials keeps every residual reduced cost non-negative
// after the first round, which is what lets the Dijkstra and Heap variants
// use label-setting instead of label-correcting.
//
// Four variants control how the frontier of "labeled but unscanned" nodes
// is organized, mirroring the classical SPT family:
//
//	LQueue    — FIFO queue (Bellman-Ford / SPFA); tolerates negative costs
//	LDeque    — D'Esopo-Pape deque; re-scanned nodes jump to the front
//	Dijkstra  — label-setting via linear minimum scan
//	Heap      — label-setting via a d-ary heap (arity configurable)
//
// Dijkstra and Heap additionally require every original arc cost to be
// non-negative (see Options.Variant doc); LQueue and LDeque do not.
package sptree

import "errors"

// Variant selects the frontier data structure used to grow each round's
// shortest-path tree.
type Variant int

const (
	// VariantLQueue uses a FIFO queue (label-correcting, negative costs OK).
	VariantLQueue Variant = iota
	// VariantLDeque uses a D'Esopo-Pape deque (label-correcting, negative
	// costs OK, usually fewer re-scans than LQueue in practice).
	VariantLDeque
	// VariantDijkstra uses label-setting via a linear minimum scan.
	// Requires non-negative original arc costs.
	VariantDijkstra
	// VariantHeap uses label-setting via a d-ary heap. Requires
	// non-negative original arc costs.
	VariantHeap
)

// String implements fmt.Stringer.
func (v Variant) String() string {
	switch v {
	case VariantLQueue:
		return "LQueue"
	case VariantLDeque:
		return "LDeque"
	case VariantDijkstra:
		return "Dijkstra"
	case VariantHeap:
		return "Heap"
	default:
		return "Variant(?)"
	}
}

// Sentinel errors specific to this package; mcflow's shared sentinels
// (ErrInvalidName, ErrIllegalTopologyOp, ErrCapacityExceeded) are reused
// directly for Net-delegated operations.
var (
	// ErrNegativeCost is returned by SolveMCF when Variant is Dijkstra or
	// Heap but a negative original arc cost is present.
	ErrNegativeCost = errors.New("sptree: Dijkstra/Heap variants require non-negative arc costs")

	// ErrUnbalanced names the case where total supply and total demand do
	// not sum to zero within EpsFlow. SolveMCF does not return it: it
	// reports that case as StatusInfeasible with a nil error.
	ErrUnbalanced = errors.New("sptree: total node deficits do not sum to zero")
)

// Options configures a Solver at construction.
type Options struct {
	Variant   Variant
	HeapArity int  // arity for VariantHeap, default 2
	Verbose   bool // gate fmt.Fprintf(os.Stderr, ...) round diagnostics
}

// Option is a functional option for Options.
type Option func(*Options)

// WithVariant selects the frontier variant.
func WithVariant(v Variant) Option { return func(o *Options) { o.Variant = v } }

// WithHeapArity sets the d-ary heap arity used by VariantHeap (ignored by
// other variants). Values < 2 are clamped to 2.
func WithHeapArity(d int) Option {
	return func(o *Options) {
		if d < 2 {
			d = 2
		}
		o.HeapArity = d
	}
}

// WithVerbose enables stderr round diagnostics.
func WithVerbose() Option { return func(o *Options) { o.Verbose = true } }

// DefaultOptions returns the package defaults: VariantHeap, arity 2, silent.
func DefaultOptions() Options {
	return Options{Variant: VariantHeap, HeapArity: 2}
}
