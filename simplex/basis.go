// SPDX-License-Identifier: MIT
package simplex

import "github.com/katalvlaran/mcflow"

// nodeInfo is one node's position in the current spanning-tree basis.
// index n (s.root) is the synthetic root; real nodes are 0..n-1.
type nodeInfo struct {
	parent    int
	parentArc int  // arc slot connecting this node to its parent, -1 at root
	fromChild bool // true if the tree arc is oriented this-node -> parent
	depth     int
}

// rebuildTreeInfo walks the current tree arc set (s.inTree) from the root
// and recomputes parent/depth for every node, then derives potentials from
// the walk order. This is the "recompute instead of splice" bookkeeping
// strategy documented in the package doc comment: O(n) per pivot instead
// of MCFSimplex.h's incremental postorder-list subtree surgery.
func (s *Solver) rebuildTreeInfo() {
	total := s.n + 1
	adj := make([][]int, total)
	for a := range s.arcs {
		if !s.inTree[a] {
			continue
		}
		t := s.arcs[a].tail
		h := s.arcs[a].head
		adj[t] = append(adj[t], a)
		adj[h] = append(adj[h], a)
	}

	s.node = make([]nodeInfo, total)
	visited := make([]bool, total)
	s.node[s.root] = nodeInfo{parent: -1, parentArc: -1, depth: 0}
	visited[s.root] = true
	order := make([]int, 0, total)
	order = append(order, s.root)

	queue := []int{s.root}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, a := range adj[v] {
			arc := s.arcs[a]
			other := arc.head
			if other == v {
				other = arc.tail
			}
			if visited[other] {
				continue
			}
			visited[other] = true
			s.node[other] = nodeInfo{
				parent:    v,
				parentArc: a,
				fromChild: arc.tail == other,
				depth:     s.node[v].depth + 1,
			}
			order = append(order, other)
			queue = append(queue, other)
		}
	}

	s.pi = make([]float64, total)
	for _, v := range order {
		if v == s.root {
			continue
		}
		ni := s.node[v]
		c := s.marginalCost(ni.parentArc)
		if ni.fromChild {
			s.pi[v] = s.pi[ni.parent] + c
		} else {
			s.pi[v] = s.pi[ni.parent] - c
		}
	}
}

func (s *Solver) reducedCost(a int) float64 {
	return s.marginalCost(a) - s.pi[s.arcs[a].tail] + s.pi[s.arcs[a].head]
}

func (s *Solver) findLCA(u, v int) int {
	du, dv := s.node[u].depth, s.node[v].depth
	for du > dv {
		u = s.node[u].parent
		du--
	}
	for dv > du {
		v = s.node[v].parent
		dv--
	}
	for u != v {
		u = s.node[u].parent
		v = s.node[v].parent
	}
	return u
}

type pathArc struct {
	slot      int
	fromChild bool
}

func (s *Solver) pathUpTo(node, lca int) []pathArc {
	var out []pathArc
	for node != lca {
		ni := s.node[node]
		out = append(out, pathArc{slot: ni.parentArc, fromChild: ni.fromChild})
		node = ni.parent
	}
	return out
}

type cycleEntry struct {
	slot  int
	coeff float64
}

// tryPivot executes one primal simplex pivot on entering arc slot e with
// the given sign (+1 enter-increasing from lower, -1 enter-decreasing from
// upper). Returns mcflow.StatusUnbounded if the cycle has no blocking
// constraint in the improving direction, else mcflow.StatusUnsolved to
// signal "continue iterating".
func (s *Solver) tryPivot(e int, sign float64) mcflow.Status {
	u := s.arcs[e].tail
	v := s.arcs[e].head
	lca := s.findLCA(u, v)

	vSide := s.pathUpTo(v, lca)
	uSide := s.pathUpTo(u, lca)

	cycle := make([]cycleEntry, 0, len(vSide)+len(uSide))
	for _, a := range vSide {
		coeff := sign
		if !a.fromChild {
			coeff = -sign
		}
		cycle = append(cycle, cycleEntry{a.slot, coeff})
	}
	for _, a := range uSide {
		coeff := -sign
		if !a.fromChild {
			coeff = sign
		}
		cycle = append(cycle, cycleEntry{a.slot, coeff})
	}

	delta := s.arcs[e].ucap
	leaving := e
	for _, ce := range cycle {
		var cap float64
		if ce.coeff > 0 {
			cap = s.arcs[ce.slot].ucap - s.x[ce.slot]
		} else {
			cap = s.x[ce.slot]
		}
		if cap < delta {
			delta = cap
			leaving = ce.slot
		}
	}

	if mcflow.IsPosInf(delta) {
		return mcflow.StatusUnbounded
	}

	s.x[e] += sign * delta
	for _, ce := range cycle {
		s.x[ce.slot] += ce.coeff * delta
	}

	if leaving == e {
		s.atUpper[e] = !s.atUpper[e]
		if s.atUpper[e] {
			s.x[e] = s.arcs[e].ucap
		} else {
			s.x[e] = 0
		}
		s.ignoredEnteringArc = -1
		return mcflow.StatusUnsolved
	}

	var leavingCoeff float64
	for _, ce := range cycle {
		if ce.slot == leaving {
			leavingCoeff = ce.coeff
			break
		}
	}
	s.inTree[leaving] = false
	if leavingCoeff > 0 {
		s.atUpper[leaving] = true
		s.x[leaving] = s.arcs[leaving].ucap
	} else {
		s.atUpper[leaving] = false
		s.x[leaving] = 0
	}
	s.inTree[e] = true
	s.rebuildTreeInfo()
	s.ignoredEnteringArc = e
	return mcflow.StatusUnsolved
}
