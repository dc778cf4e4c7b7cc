// SPDX-License-Identifier: MIT

// Package mcfio reads and writes the DIMACS "min" text format for minimum-
// cost-flow instances. It is an external collaborator of mcflow.Solver, not
// a solver itself: ReadDIMACS returns plain dense arrays a caller feeds to
// LoadNet, and WriteDIMACS dumps a solver's topology and (if solved) flow
// back out using only the mcflow.Solver contract (Status and the bulk
// Arcs/Costs/UCaps/Dfcts/DenseX accessors) — it never reaches into a
// solver's internals, mirroring RelaxIV.h's documented kMPS/kCLP/kRIV
// WriteMCF formats and the builder package's preference for small,
// validated, composable constructors.
//
// Format (one problem line, any number of node and arc lines; blank lines
// and lines starting with 'c' are ignored):
//
//	c  this is a comment
//	p min <nodeCount> <arcCount>
//	n <id> <deficit>            (demand > 0, supply < 0; omitted nodes are 0)
//	a <tail> <head> <lowerBound> <upperBound> <cost>
//
// Lower bounds other than 0 are rejected with ErrLowerBoundUnsupported:
// mcflow.Net has no arc-lower-bound field (spec §1's LoadNet convention is
// capacity-only), so a nonzero lower bound cannot be represented.
package mcfio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/mcflow"
)

// ErrMalformedLine indicates a non-comment, non-blank line that is not a
// valid 'p', 'n', or 'a' record.
var ErrMalformedLine = errors.New("mcfio: malformed line")

// ErrMissingProblemLine indicates arc or node records were read before a
// 'p min <n> <m>' problem line declared the instance size.
var ErrMissingProblemLine = errors.New("mcfio: missing problem line")

// ErrLowerBoundUnsupported indicates an 'a' record declared a nonzero lower
// bound, which mcflow.Net cannot represent.
var ErrLowerBoundUnsupported = errors.New("mcfio: nonzero arc lower bound unsupported")

// ReadDIMACS parses a DIMACS "min" format instance into the dense arrays
// mcflow.Net.LoadNet expects. Returned tail/head are 1-based external node
// names, matching the file's own node numbering; the caller passes them to
// LoadNet verbatim (or translates them first via WithZeroBasedNames if it
// wants 0-based internal naming instead).
func ReadDIMACS(r io.Reader) (n, m int, u, c, b []float64, tail, head []int, err error) {
	scanner := bufio.NewScanner(r)
	declared := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "p":
			if len(fields) != 4 || fields[1] != "min" {
				return 0, 0, nil, nil, nil, nil, nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
			}
			n, err = strconv.Atoi(fields[2])
			if err != nil {
				return 0, 0, nil, nil, nil, nil, nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
			}
			m, err = strconv.Atoi(fields[3])
			if err != nil {
				return 0, 0, nil, nil, nil, nil, nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
			}
			b = make([]float64, n)
			u = make([]float64, 0, m)
			c = make([]float64, 0, m)
			tail = make([]int, 0, m)
			head = make([]int, 0, m)
			declared = true

		case "n":
			if !declared {
				return 0, 0, nil, nil, nil, nil, nil, ErrMissingProblemLine
			}
			if len(fields) != 3 {
				return 0, 0, nil, nil, nil, nil, nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
			}
			id, errID := strconv.Atoi(fields[1])
			deficit, errS := strconv.ParseFloat(fields[2], 64)
			if errID != nil || errS != nil || id < 1 || id > n {
				return 0, 0, nil, nil, nil, nil, nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
			}
			b[id-1] = deficit

		case "a":
			if !declared {
				return 0, 0, nil, nil, nil, nil, nil, ErrMissingProblemLine
			}
			if len(fields) != 6 {
				return 0, 0, nil, nil, nil, nil, nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
			}
			at, errT := strconv.Atoi(fields[1])
			ah, errH := strconv.Atoi(fields[2])
			low, errL := strconv.ParseFloat(fields[3], 64)
			up, errU := strconv.ParseFloat(fields[4], 64)
			cost, errC := strconv.ParseFloat(fields[5], 64)
			if errT != nil || errH != nil || errL != nil || errU != nil || errC != nil {
				return 0, 0, nil, nil, nil, nil, nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
			}
			if low != 0 {
				return 0, 0, nil, nil, nil, nil, nil, fmt.Errorf("%w: arc %d->%d", ErrLowerBoundUnsupported, at, ah)
			}
			tail = append(tail, at)
			head = append(head, ah)
			u = append(u, up)
			c = append(c, cost)

		default:
			return 0, 0, nil, nil, nil, nil, nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
		}
	}
	if err = scanner.Err(); err != nil {
		return 0, 0, nil, nil, nil, nil, nil, fmt.Errorf("mcfio: scan: %w", err)
	}
	if !declared {
		return 0, 0, nil, nil, nil, nil, nil, ErrMissingProblemLine
	}
	return n, m, u, c, b, tail, head, nil
}

// WriteDIMACS dumps s's current topology (and, if s.Status() is StatusOK or
// StatusStopped, its flow as trailing 'c flow' comments) in DIMACS "min"
// format. It reads s exclusively through the mcflow.Solver contract: the
// node count is the length of Dfcts(nil,0,0) and the arc count the length
// of Costs(nil,0,0), both requested with stop=0 for "through the end of
// the range" per spec §4.1's selectRange convention. A deleted arc slot
// (reported as mcflow.InfIndex tail/head) is skipped.
func WriteDIMACS(w io.Writer, s mcflow.Solver) error {
	dfcts := s.Dfcts(nil, 0, 0)
	costs := s.Costs(nil, 0, 0)
	ucaps := s.UCaps(nil, 0, 0)
	tails, heads := s.Arcs(nil, 0, 0)

	n := len(dfcts)
	live := make([]int, 0, len(costs))
	for a := range costs {
		if tails[a] != mcflow.InfIndex && heads[a] != mcflow.InfIndex {
			live = append(live, a)
		}
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p min %d %d\n", n, len(live)); err != nil {
		return fmt.Errorf("mcfio: write problem line: %w", err)
	}
	for i, d := range dfcts {
		if d == 0 {
			continue
		}
		if _, err := fmt.Fprintf(bw, "n %d %s\n", i+1, formatFloat(d)); err != nil {
			return fmt.Errorf("mcfio: write node line: %w", err)
		}
	}

	var x []float64
	haveFlow := s.Status() == mcflow.StatusOK || s.Status() == mcflow.StatusStopped
	if haveFlow {
		x = s.DenseX(0, 0)
	}

	for _, a := range live {
		if _, err := fmt.Fprintf(bw, "a %d %d 0 %s %s\n", tails[a], heads[a], formatFloat(ucaps[a]), formatFloat(costs[a])); err != nil {
			return fmt.Errorf("mcfio: write arc line: %w", err)
		}
		if haveFlow && x[a] != 0 {
			if _, err := fmt.Fprintf(bw, "c flow %d %d %s\n", tails[a], heads[a], formatFloat(x[a])); err != nil {
				return fmt.Errorf("mcfio: write flow comment: %w", err)
			}
		}
	}
	return bw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
