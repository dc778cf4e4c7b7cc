// SPDX-License-Identifier: MIT
package mcflow

import "math"

// Default tolerances used when a solver is constructed without explicit
// EpsFlow/EpsCost parameters.
const (
	DefaultEpsFlow = 1e-7
	DefaultEpsCost = 1e-7
)

// Tolerances bundles the flow- and cost-typed epsilon used by the
// zero-comparisons in this module. Not every comparison goes through these
// methods: some solver code compares against EpsFlow/EpsCost inline, and a
// few checks compare a float to 0 directly (e.g. sptree's negative-cost
// check, simplex's artificial-arc orientation, relax's flow clamping).
type Tolerances struct {
	EpsFlow float64
	EpsCost float64
}

// NewTolerances returns a Tolerances with the given epsilons, falling back
// to the package defaults for any non-positive value.
func NewTolerances(epsFlow, epsCost float64) Tolerances {
	t := Tolerances{EpsFlow: epsFlow, EpsCost: epsCost}
	if t.EpsFlow <= 0 {
		t.EpsFlow = DefaultEpsFlow
	}
	if t.EpsCost <= 0 {
		t.EpsCost = DefaultEpsCost
	}
	return t
}

// ETZf reports whether x is zero within the flow tolerance ("equal to
// zero").
func (t Tolerances) ETZf(x float64) bool { return math.Abs(x) <= t.EpsFlow }

// GTZf reports whether x is strictly positive beyond the flow tolerance.
func (t Tolerances) GTZf(x float64) bool { return x > t.EpsFlow }

// LTZf reports whether x is strictly negative beyond the flow tolerance.
func (t Tolerances) LTZf(x float64) bool { return x < -t.EpsFlow }

// ETZc is ETZf's cost-tolerance counterpart.
func (t Tolerances) ETZc(x float64) bool { return math.Abs(x) <= t.EpsCost }

// GTZc is GTZf's cost-tolerance counterpart.
func (t Tolerances) GTZc(x float64) bool { return x > t.EpsCost }

// LTZc is LTZf's cost-tolerance counterpart.
func (t Tolerances) LTZc(x float64) bool { return x < -t.EpsCost }

// EqFlow reports whether a and b are equal within the flow tolerance.
func (t Tolerances) EqFlow(a, b float64) bool { return t.ETZf(a - b) }

// EqCost reports whether a and b are equal within the cost tolerance,
// scaled by max(1, |b|) as spec §8 invariant 2 requires for objective
// comparisons.
func (t Tolerances) EqCost(a, b float64) bool {
	scale := math.Max(1, math.Abs(b))
	return math.Abs(a-b) <= t.EpsCost*scale
}

// PosInf and NegInf are the sentinel values used for unreachable
// potentials, unbounded objectives, and closed-arc costs/reduced costs
// (spec §6 "Sentinel values").
func PosInf() float64 { return math.Inf(1) }
func NegInf() float64 { return math.Inf(-1) }

// IsPosInf reports whether x is the +Inf sentinel.
func IsPosInf(x float64) bool { return math.IsInf(x, 1) }

// IsNegInf reports whether x is the -Inf sentinel.
func IsNegInf(x float64) bool { return math.IsInf(x, -1) }
