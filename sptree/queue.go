// SPDX-License-Identifier: MIT
package sptree

import "github.com/katalvlaran/mcflow"

// fifoQueue implements VariantLQueue: a FIFO queue with an inQueue guard so
// a node is never enqueued twice concurrently (classic SPFA).
type fifoQueue struct {
	items   []mcflow.Index
	inQueue []bool
}

func newFIFOQueue(n int) *fifoQueue {
	return &fifoQueue{inQueue: make([]bool, n)}
}

func (q *fifoQueue) push(v mcflow.Index) {
	if q.inQueue[v] {
		return
	}
	q.inQueue[v] = true
	q.items = append(q.items, v)
}

func (q *fifoQueue) pop() (mcflow.Index, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	v := q.items[0]
	q.items = q.items[1:]
	q.inQueue[v] = false
	return v, true
}

func (q *fifoQueue) empty() bool { return len(q.items) == 0 }

// dequeQueue implements VariantLDeque: the D'Esopo-Pape heuristic. A node
// being (re-)labeled jumps to the front of the deque if it has already
// been popped (scanned) at least once before; otherwise it goes to the
// back. This tends to finalize nodes in closer-to-topological order than
// plain FIFO.
type dequeQueue struct {
	items     []mcflow.Index
	inQueue   []bool
	everPoped []bool
}

func newDequeQueue(n int) *dequeQueue {
	return &dequeQueue{inQueue: make([]bool, n), everPoped: make([]bool, n)}
}

func (q *dequeQueue) push(v mcflow.Index) {
	if q.inQueue[v] {
		return
	}
	q.inQueue[v] = true
	if q.everPoped[v] {
		// Prepend.
		q.items = append([]mcflow.Index{v}, q.items...)
	} else {
		q.items = append(q.items, v)
	}
}

func (q *dequeQueue) pop() (mcflow.Index, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	v := q.items[0]
	q.items = q.items[1:]
	q.inQueue[v] = false
	q.everPoped[v] = true
	return v, true
}

func (q *dequeQueue) empty() bool { return len(q.items) == 0 }

// dHeapItem is one entry of a dHeap, carrying the node and its current
// tentative distance at push time. Like dijkstra.go's nodePQ, dHeap uses a
// lazy-decrease-key discipline: stale entries are detected and skipped by
// the caller via a "scanned" flag rather than removed from the heap.
type dHeapItem struct {
	node mcflow.Index
	dist float64
}

// dHeap is an array-based d-ary min-heap ordered by dist ascending,
// generalizing dijkstra.go's binary nodePQ to an arbitrary arity.
type dHeap struct {
	arity int
	items []dHeapItem
}

func newDHeap(arity int) *dHeap {
	if arity < 2 {
		arity = 2
	}
	return &dHeap{arity: arity}
}

func (h *dHeap) empty() bool { return len(h.items) == 0 }

func (h *dHeap) push(node mcflow.Index, dist float64) {
	h.items = append(h.items, dHeapItem{node: node, dist: dist})
	h.siftUp(len(h.items) - 1)
}

func (h *dHeap) pop() (mcflow.Index, float64, bool) {
	if len(h.items) == 0 {
		return 0, 0, false
	}
	top := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return top.node, top.dist, true
}

func (h *dHeap) parent(i int) int { return (i - 1) / h.arity }

func (h *dHeap) firstChild(i int) int { return i*h.arity + 1 }

func (h *dHeap) siftUp(i int) {
	for i > 0 {
		p := h.parent(i)
		if h.items[p].dist <= h.items[i].dist {
			break
		}
		h.items[p], h.items[i] = h.items[i], h.items[p]
		i = p
	}
}

func (h *dHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		first := h.firstChild(i)
		for c := first; c < first+h.arity && c < n; c++ {
			if h.items[c].dist < h.items[smallest].dist {
				smallest = c
			}
		}
		if smallest == i {
			return
		}
		h.items[smallest], h.items[i] = h.items[i], h.items[smallest]
		i = smallest
	}
}
