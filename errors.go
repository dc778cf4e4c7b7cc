// SPDX-License-Identifier: MIT
package mcflow

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by every mcflow.Solver implementation.
//
// Callers MUST use errors.Is(err, ErrX) to branch on semantics; sentinels
// are never wrapped with formatted strings at definition site, only at the
// call site via fmt.Errorf("%w", ...).
var (
	// ErrInvalidName indicates an arc or node index outside the current
	// live range (never added, or already deleted).
	ErrInvalidName = errors.New("mcflow: invalid entity name")

	// ErrIllegalTopologyOp indicates a topology edit that the contract
	// forbids in the current state, e.g. OpenArc on a deleted arc.
	ErrIllegalTopologyOp = errors.New("mcflow: illegal topology operation")

	// ErrCapacityExceeded indicates an AddNode/AddArc that would exceed
	// the nMax/mMax allocation hints given at construction or LoadNet.
	ErrCapacityExceeded = errors.New("mcflow: capacity exceeded")

	// ErrExternalBackend indicates a failure reported by an external
	// LP/QP backend; no solver in this module raises it directly, but it
	// is part of the shared contract for adapters that do.
	ErrExternalBackend = errors.New("mcflow: external backend failure")

	// ErrNumerical is reserved for detectable degeneracy or loss of
	// tolerance during a pivot or relaxation step.
	ErrNumerical = errors.New("mcflow: numerical degeneracy detected")
)

// wrapf prefixes an inner error with a method/operation tag while
// preserving the sentinel for errors.Is via %w.
func wrapf(op string, sentinel error, format string, args ...interface{}) error {
	inner := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %s: %w", op, inner, sentinel)
}
