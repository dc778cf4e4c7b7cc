// SPDX-License-Identifier: MIT
package relax

import "github.com/katalvlaran/mcflow"

// forwardStar is the balanced-subgraph adjacency RELAX-IV walks: outArcs[v]
// lists arcs with tail v (forward residual while x < u), inArcs[v] lists
// arcs with head v (backward residual while x > 0). This mirrors
// RelaxIV.h's tfstou/tnxtou (outgoing) and tfstin/tnxtin (incoming)
// doubly-linked adjacency lists, realized as plain sorted slices: the
// C doubly-linked list exists so arcs can be spliced out in O(1) when an
// edit removes them, but mcflow.Net already owns that removal bookkeeping
// (the freelist), so relax only needs read-only adjacency, not a splice-
// capable list of its own.
type forwardStar struct {
	outArcs [][]mcflow.Index
	inArcs  [][]mcflow.Index
}

func build(nodeCount int, liveArcs []mcflow.Index, tailOf, headOf func(mcflow.Index) int) *forwardStar {
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
