// SPDX-License-Identifier: MIT

// Package simplex implements the Network Simplex method for Minimum Cost
// Flow: primal (Dantzig, First-Eligible, and Candidate-List pricing) and
// dual (linear costs only), plus a separable-quadratic extension of the
// primal variant. The spanning-tree basis is represented with plain
// arena-index parent pointers rather than the intrusive postorder
// doubly-linked list MCFSimplex.h uses for its UpdateT/CutAndPaste
// subtree surgery: every pivot recomputes the affected bookkeeping by a
// full tree walk instead of an incremental subtree splice (Design Note
// "Basis-tree bookkeeping"). This trades an asymptotically worse per-pivot
// cost for a much simpler, more obviously correct implementation, which is
// the right trade for a from-scratch Go port.
package simplex

import "errors"

// Algorithm selects Primal vs Dual Network Simplex.
type Algorithm int

const (
	// AlgorithmPrimal runs Primal Network Simplex (linear or quadratic
	// costs, selectable pricing rule).
	AlgorithmPrimal Algorithm = iota
	// AlgorithmDual runs Dual Network Simplex (linear costs only).
	AlgorithmDual
)

// Sentinel errors specific to this package.
var (
	// ErrQuadraticDual is returned if Options.Quadratic is set together
	// with AlgorithmDual: the dual variant only supports linear costs.
	ErrQuadraticDual = errors.New("simplex: dual algorithm does not support quadratic costs")
)

// Options configures a Solver at construction.
type Options struct {
	Algorithm  Algorithm
	Pricing    PricingKind
	Quadratic  bool // separable-quadratic primal extension (primal only)
	NumCandList int // candidate-list group size G
	HotListSize int // candidate-list hot-list size H
	BigM       float64
	Verbose    bool
}

// PricingKind selects the primal entering-arc rule.
type PricingKind int

const (
	PricingDantzig PricingKind = iota
	PricingFirstEligible
	PricingCandidateList
)

// Option is a functional option for Options.
type Option func(*Options)

func WithAlgorithm(a Algorithm) Option    { return func(o *Options) { o.Algorithm = a } }
func WithPricing(p PricingKind) Option    { return func(o *Options) { o.Pricing = p } }
func WithQuadratic() Option               { return func(o *Options) { o.Quadratic = true } }
func WithCandList(g, h int) Option        { return func(o *Options) { o.NumCandList = g; o.HotListSize = h } }
func WithBigM(m float64) Option           { return func(o *Options) { o.BigM = m } }
func WithVerbose() Option                 { return func(o *Options) { o.Verbose = true } }

// DefaultOptions returns the package defaults: primal, candidate-list
// pricing (G=10, H=3), linear costs, BigM = 1e9.
func DefaultOptions() Options {
	return Options{
		Algorithm:   AlgorithmPrimal,
		Pricing:     PricingCandidateList,
		NumCandList: 10,
		HotListSize: 3,
		BigM:        1e9,
	}
}
