package quadrature

import "container/heap"

// regionHeap is a max-heap on region error, so the worst region pops first.
type regionHeap []region

func (h regionHeap) Len() int           { return len(h) }
func (h regionHeap) Less(i, j int) bool { return h[i].err > h[j].err }
func (h regionHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *regionHeap) Push(x any) { *h = append(*h, x.(region)) }

func (h *regionHeap) Pop() any {
	old := *h
	n := len(old)
	r := old[n-1]
	*h = old[:n-1]
	return r
}

func (h *regionHeap) push(r region) { heap.Push(h, r) }
func (h *regionHeap) pop() region   { return heap.Pop(h).(region) }
func (h regionHeap) top() region    { return h[0] }
