// SPDX-License-Identifier: MIT
package simplex

// candidate describes a non-tree arc eligible to enter the basis: sign is
// +1 if it should enter increasing from its lower bound, -1 if it should
// enter decreasing from its (finite) upper bound.
type candidate struct {
	slot      int
	sign      float64
	violation float64 // |reduced cost|, used to rank candidates
}

// eligible reports whether non-tree arc a currently violates optimality,
// returning the candidate and true if so.
func (s *Solver) eligible(a int) (candidate, bool) {
	if s.inTree[a] || a == s.ignoredEnteringArc {
		return candidate{}, false
	}
	rc := s.reducedCost(a)
	if !s.atUpper[a] {
		if rc < -s.tol.EpsCost {
			return candidate{slot: a, sign: 1, violation: -rc}, true
		}
		return candidate{}, false
	}
	if rc > s.tol.EpsCost {
		return candidate{slot: a, sign: -1, violation: rc}, true
	}
	return candidate{}, false
}

// priceDantzig scans every non-tree arc and returns the most-violated one.
func (s *Solver) priceDantzig() (candidate, bool) {
	best := candidate{}
	found := false
	for a := range s.arcs {
		c, ok := s.eligible(a)
		if !ok {
			continue
		}
		if !found || c.violation > best.violation {
			best = c
			found = true
		}
	}
	return best, found
}

// priceFirstEligible resumes a round-robin cursor across arc slots and
// returns the first violating arc found, wrapping around at most once.
func (s *Solver) priceFirstEligible() (candidate, bool) {
	m := len(s.arcs)
	for i := 0; i < m; i++ {
		a := (s.cursor + i) % m
		if c, ok := s.eligible(a); ok {
			s.cursor = (a + 1) % m
			return c, true
		}
	}
	return candidate{}, false
}

// priceCandidateList maintains a small hot list refreshed from successive
// buckets of G arcs; it returns the most-violated entry of the current hot
// list, refilling the list from the next bucket whenever it runs dry.
func (s *Solver) priceCandidateList() (candidate, bool) {
	m := len(s.arcs)
	if m == 0 {
		return candidate{}, false
	}
	g := s.opts.NumCandList
	if g <= 0 {
		g = 10
	}
	h := s.opts.HotListSize
	if h <= 0 {
		h = 3
	}

	refill := func() {
		s.hotList = s.hotList[:0]
		scanned := 0
		for scanned < m && len(s.hotList) < h*4 {
			a := s.cursor
			s.cursor = (s.cursor + 1) % m
			scanned++
			if c, ok := s.eligible(a); ok {
				s.hotList = append(s.hotList, c)
			}
			if scanned >= g {
				break
			}
		}
	}

	attempts := 0
	for attempts < m+g {
		attempts++
		if len(s.hotList) == 0 {
			refill()
			if len(s.hotList) == 0 {
				// Nothing found in a full bucket; if we've wrapped the
				// whole arc set with no candidate, we're optimal.
				if attempts >= m {
					return candidate{}, false
				}
				continue
			}
		}
		// Pop the best of the current hot list.
		bestIdx := 0
		for i := 1; i < len(s.hotList); i++ {
			if s.hotList[i].violation > s.hotList[bestIdx].violation {
				bestIdx = i
			}
		}
		best := s.hotList[bestIdx]
		s.hotList = append(s.hotList[:bestIdx], s.hotList[bestIdx+1:]...)
		// Re-validate: the arc may have become ineligible since it was
		// buffered (an earlier pivot in this same search could have
		// changed its reduced cost — in this solver candidates are always
		// consumed immediately after pricing, so this mainly guards
		// against stale entries surviving past a refill boundary).
		if c, ok := s.eligible(best.slot); ok {
			return c, true
		}
	}
	return candidate{}, false
}

// price dispatches to the configured pricing rule.
func (s *Solver) price() (candidate, bool) {
	switch s.opts.Pricing {
	case PricingDantzig:
		return s.priceDantzig()
	case PricingFirstEligible:
		return s.priceFirstEligible()
	default:
		return s.priceCandidateList()
	}
}
