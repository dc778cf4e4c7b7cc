// SPDX-License-Identifier: MIT
package mcflow

import "math"

// Index names a node or an arc. Node names are 1-based by default (see
// WithZeroBasedNames); arc names are always 0-based. Both are stable across
// incremental edits: DelArc/DelNode never renumber surviving entities.
type Index = int

// InfIndex is the sentinel "no such entity" index, returned e.g. by
// SNode/ENode for a deleted arc.
const InfIndex Index = math.MaxInt32

// Status is the outcome of the most recent SolveMCF call.
type Status int

const (
	// StatusUnsolved means SolveMCF has not yet been (successfully) run
	// since the last edit that invalidated the previous solution.
	StatusUnsolved Status = iota

	// StatusOK means a primal-dual optimal solution is available.
	StatusOK

	// StatusInfeasible means the instance has no feasible flow (e.g. the
	// deficits do not sum to zero, or a capacity bottleneck blocks
	// conservation).
	StatusInfeasible

	// StatusUnbounded means the objective is unbounded below (only
	// possible with a negative-cost infinite-capacity cycle).
	StatusUnbounded

	// StatusStopped means the MaxIter iteration cap was hit before
	// termination; SolveMCF may be called again to resume. No solver in
	// this module checks MaxTime.
	StatusStopped
)

// String implements fmt.Stringer for readable test failure messages.
func (s Status) String() string {
	switch s {
	case StatusUnsolved:
		return "Unsolved"
	case StatusOK:
		return "Ok"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	case StatusStopped:
		return "Stopped"
	default:
		return "Status(?)"
	}
}

// ParamKey enumerates the parameter registry keys shared by every solver
// (see spec §6). Not every solver honors every key: a solver that ignores a
// key simply stores and echoes it back from ParamInt/ParamFloat.
type ParamKey int

const (
	// MaxIter caps the number of pivots/relaxation iterations (0 = none).
	MaxIter ParamKey = iota
	// MaxTime is stored and echoed only; no solver in this module reads
	// it, so SolveMCF has no time cap.
	MaxTime
	// EpsFlow is the flow-tolerance epsilon (ETZ on flow-typed values).
	EpsFlow
	// EpsCost is the cost/reduced-cost tolerance epsilon.
	EpsCost
	// Reopt is stored and echoed only; no solver reads it. relax always
	// warm-starts after edits, sptree and simplex always rebuild.
	Reopt
	// AlgPrimal selects Primal (1) vs Dual (0) Network Simplex.
	AlgPrimal
	// AlgPricing selects a PricingRule (simplex only).
	AlgPricing
	// NumCandList sets the candidate-list bucket size G, the number of
	// arcs scanned per hot-list refill (simplex only).
	NumCandList
	// HotListSize sets the candidate-list hot-list size H (simplex only).
	HotListSize
	// RecomputeFOLimits is stored and echoed only: simplex computes the
	// objective once, at the end of SolveMCF.
	RecomputeFOLimits
	// EpsOpt is stored and echoed only; no solver reads it.
	EpsOpt
	// Auction enables the auction/epsilon-relaxation crash initialization
	// (relax only).
	Auction
	// QPMethod selects an external LP/QP backend; out of scope for every
	// solver in this module, reserved for API compatibility.
	QPMethod
)

// PricingRule enumerates the Network Simplex entering-arc pricing rules of
// spec §4.3.
type PricingRule int

const (
	// PricingDantzig scans every arc and picks the most-violated dual
	// condition (primal linear simplex only).
	PricingDantzig PricingRule = iota
	// PricingFirstEligible resumes a round-robin cursor and returns the
	// first violating arc found.
	PricingFirstEligible
	// PricingCandidateList (the default) maintains a bounded hot list
	// refreshed from ordered buckets of the arc set.
	PricingCandidateList
)

// String implements fmt.Stringer for PricingRule.
func (r PricingRule) String() string {
	switch r {
	case PricingDantzig:
		return "Dantzig"
	case PricingFirstEligible:
		return "FirstEligible"
	case PricingCandidateList:
		return "CandidateList"
	default:
		return "PricingRule(?)"
	}
}
