// SPDX-License-Identifier: MIT
package sptree

import "github.com/katalvlaran/mcflow"

// forwardStar is the adjacency structure a round's shortest-path search
// walks: outArcs[v] lists arcs with tail v (usable forward while x < u),
// inArcs[v] lists arcs with head v (usable backward, residual reverse,
// while x > 0). Both are sorted by arc name for deterministic iteration,
// the same convention dijkstra.go relies on via core.Graph's sorted
// Neighbors.
type forwardStar struct {
	outArcs [][]mcflow.Index
	inArcs  [][]mcflow.Index
}

// build constructs a forwardStar over every live arc of net. nodeCount is
// the number of internal (0-based) node slots.
func build(net *mcflow.Net, nodeCount int, liveArcs []mcflow.Index, tailOf, headOf func(mcflow.Index) int) *forwardStar {
	fs := &forwardStar{
		outArcs: make([][]mcflow.Index, nodeCount),
		inArcs:  make([][]mcflow.Index, nodeCount),
	}
	for _, a := range liveArcs {
		t := tailOf(a)
		h := headOf(a)
		fs.outArcs[t] = append(fs.outArcs[t], a)
		fs.inArcs[h] = append(fs.inArcs[h], a)
	}
	return fs
}
