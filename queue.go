package rpq

// PriorityQueue is a binary heap ordered by a caller supplied predicate.
// less(a, b) reports whether a has to leave the queue before b, so the same
// type serves as min- or max-heap. less must be a strict weak ordering.
type PriorityQueue[T any] struct {
	heap []T
	less func(a, b T) bool
}

func NewPriorityQueue[T any](less func(a, b T) bool) *PriorityQueue[T] {
	return &PriorityQueue[T]{less: less}
}

// NewJobQueue returns a queue of jobs served in the given comparison order.
func NewJobQueue(cmp JobComparator, capacity int) *PriorityQueue[Job] {
	pq := NewPriorityQueue[Job](cmp.Less)
	pq.heap = make([]Job, 0, capacity)
	return pq
}

func (pq *PriorityQueue[T]) Len() int {
	return len(pq.heap)
}

func (pq *PriorityQueue[T]) Push(element T) {
	pq.heap = append(pq.heap, element)
	pq.up(len(pq.heap) - 1)
}

func (pq *PriorityQueue[T]) Pop() (T, error) {
	var zero T
	n := len(pq.heap)
	if n == 0 {
		return zero, ErrEmptyQueue
	}
	best := pq.heap[0]
	last := pq.heap[n-1]
	pq.heap[n-1] = zero
	pq.heap = pq.heap[:n-1]
	if n == 1 {
		return best, nil
	}
	pq.heap[0] = last
	pq.down(0)
	return best, nil
}

// MustPop pops the best element and panics on an empty queue. The engines
// only call it after checking Len.
func (pq *PriorityQueue[T]) MustPop() T {
	v, err := pq.Pop()
	if err != nil {
		panic(err)
	}
	return v
}

func (pq *PriorityQueue[T]) Peek() (T, bool) {
	if len(pq.heap) == 0 {
		var zero T
		return zero, false
	}
	return pq.heap[0], true
}

func (pq *PriorityQueue[T]) up(child int) {
	for child > 0 {
		parent := (child - 1) / 2
		if !pq.less(pq.heap[child], pq.heap[parent]) {
			return
		}
		pq.heap[parent], pq.heap[child] = pq.heap[child], pq.heap[parent]
		child = parent
	}
}

func (pq *PriorityQueue[T]) down(parent int) {
	n := len(pq.heap)
	for {
		child := 2*parent + 1
		if child >= n {
			return
		}
		if right := child + 1; right < n && pq.less(pq.heap[right], pq.heap[child]) {
			child = right
		}
		if !pq.less(pq.heap[child], pq.heap[parent]) {
			return
		}
		pq.heap[parent], pq.heap[child] = pq.heap[child], pq.heap[parent]
		parent = child
	}
}

// JobComparator selects which job a queue serves first.
type JobComparator int

const (
	// ByMinRelease serves the smallest release time, lowest index on ties.
	ByMinRelease JobComparator = iota
	// ByMaxDelivery serves the largest delivery time, lowest index on ties.
	ByMaxDelivery
)

func (c JobComparator) Less(a, b Job) bool {
	switch c {
	case ByMinRelease:
		if a.R != b.R {
			return a.R < b.R
		}
	case ByMaxDelivery:
		if a.Q != b.Q {
			return a.Q > b.Q
		}
	}
	return a.Index < b.Index
}

func (c JobComparator) String() string {
	switch c {
	case ByMinRelease:
		return "MinRelease"
	case ByMaxDelivery:
		return "MaxDelivery"
	}
	return "Unknown"
}
