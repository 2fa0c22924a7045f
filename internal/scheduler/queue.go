package scheduler

import (
	"container/heap"
	"sync"
)

// requestQueue is a priority queue ordered by priority rank, then by the
// submission sequence counter. Safe for concurrent push with a single popper.
type requestQueue struct {
	mu    sync.Mutex
	items requestHeap
}

func newRequestQueue() *requestQueue {
	return &requestQueue{}
}

// push inserts the request in O(log n).
func (q *requestQueue) push(r *Request) {
	q.mu.Lock()
	heap.Push(&q.items, r)
	q.mu.Unlock()
}

// popHighest removes and returns the request with the greatest priority,
// ties broken by smallest sequence. Returns false when the queue is empty.
func (q *requestQueue) popHighest() (*Request, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	r := heap.Pop(&q.items).(*Request)
	return r, true
}

// size is a non-blocking snapshot of the queue length.
func (q *requestQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// requestHeap implements heap.Interface. Not safe for concurrent use;
// requestQueue holds the lock.
type requestHeap []*Request

func (h requestHeap) Len() int { return len(h) }

func (h requestHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].seq < h[j].seq
}

func (h requestHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *requestHeap) Push(x any) { *h = append(*h, x.(*Request)) }

func (h *requestHeap) Pop() any {
	old := *h
	n := len(old)
	r := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return r
}
