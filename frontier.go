package kabooom

import "container/heap"

// frontier holds discovered nodes awaiting expansion. It may hold several
// entries for the same state.
type frontier interface {
	push(node *Node)
	pop() *Node
	len() int
}

func newFrontier(mode Mode) frontier {
	if mode == Dijkstra {
		queue := make(PriorityQueue, 0)
		heap.Init(&queue)
		return &priorityFrontier{queue: queue}
	}
	return &fifoFrontier{}
}

// fifoFrontier is the breadth-first queue.
type fifoFrontier struct {
	items []*Node
	head  int
}

func (f *fifoFrontier) push(node *Node) { f.items = append(f.items, node) }

func (f *fifoFrontier) pop() *Node {
	node := f.items[f.head]
	f.items[f.head] = nil
	f.head++
	// compact once the consumed prefix dominates the backing array
	if f.head > 1024 && f.head*2 > len(f.items) {
		f.items = append(f.items[:0], f.items[f.head:]...)
		f.head = 0
	}
	return node
}

func (f *fifoFrontier) len() int { return len(f.items) - f.head }

// priorityFrontier pops the cheapest node; equal costs pop in insertion order.
type priorityFrontier struct {
	queue    PriorityQueue
	sequence uint64
}

func (f *priorityFrontier) push(node *Node) {
	heap.Push(&f.queue, &PriorityQueueItem{Node: node, Cost: node.Cost, Sequence: f.sequence})
	f.sequence++
}

func (f *priorityFrontier) pop() *Node {
	return heap.Pop(&f.queue).(*PriorityQueueItem).Node
}

func (f *priorityFrontier) len() int { return f.queue.Len() }
