// SPDX-License-Identifier: MIT

// Package relax implements RELAX-IV, a primal-dual relaxation algorithm for
// Minimum Cost Flow: it maintains a pseudoflow satisfying complementarity
// with the current node potentials and alternates an augmenting search over
// the admissible (zero-reduced-cost) subgraph with a dual ascent step that
// enlarges that subgraph whenever the search gets stuck on a saturated cut.
// Unlike sptree, it is designed to warm-start: an edit only invalidates the
// complementary-slackness fixing of arcs it actually touches, not the whole
// potential vector (Design Note "RELAX-IV warm start").
package relax

import "errors"

// Sentinel errors specific to this package.
var (
	// ErrUnbalanced indicates the total deficit does not sum to zero.
	ErrUnbalanced = errors.New("relax: deficits do not sum to zero")
)

// Options configures a Solver at construction.
type Options struct {
	// Auction seeds the initial potentials with a Bellman-Ford shortest-
	// path crash from a virtual super-source instead of starting from
	// all-zero potentials (spec.md §4.4's auction/epsilon-relaxation
	// crash, simplified — see Design Note "Auction crash simplification").
	Auction bool
	Verbose bool
}

// Option is a functional option for Options.
type Option func(*Options)

// WithAuction enables the crash initialization.
func WithAuction() Option { return func(o *Options) { o.Auction = true } }

// WithVerbose enables per-iteration diagnostics on os.Stderr.
func WithVerbose() Option { return func(o *Options) { o.Verbose = true } }

// DefaultOptions returns the package defaults: no auction crash, silent.
func DefaultOptions() Options {
	return Options{}
}
