package rpq

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"gotest.tools/v3/assert"
)

func TestPriorityQueueEmpty(t *testing.T) {
	pq := NewPriorityQueue(func(a, b int) bool { return a < b })
	_, err := pq.Pop()
	assert.Assert(t, errors.Is(err, ErrEmptyQueue), "got %v", err)
	v, ok := pq.Peek()
	assert.Equal(t, ok, false)
	assert.Equal(t, v, 0)
	assert.Equal(t, pq.Len(), 0)
}

func TestPriorityQueueSingleton(t *testing.T) {
	pq := NewPriorityQueue(func(a, b int) bool { return a < b })
	pq.Push(7)
	v, ok := pq.Peek()
	assert.Equal(t, ok, true)
	assert.Equal(t, v, 7)
	v, err := pq.Pop()
	assert.NilError(t, err)
	assert.Equal(t, v, 7)
	assert.Equal(t, pq.Len(), 0)
}

func TestPriorityQueueMaxHeap(t *testing.T) {
	pq := NewPriorityQueue(func(a, b int) bool { return a > b })
	for _, v := range []int{3, 9, 1, 9, 4} {
		pq.Push(v)
	}
	var got []int
	for pq.Len() > 0 {
		got = append(got, pq.MustPop())
	}
	assert.DeepEqual(t, got, []int{9, 9, 4, 3, 1})
}

func TestPriorityQueueInterleaved(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pq := NewPriorityQueue(func(a, b int) bool { return a < b })
	var ref []int
	pushes, pops := 0, 0
	for i := 0; i < 2000; i++ {
		if len(ref) == 0 || rng.Intn(3) > 0 {
			v := rng.Intn(100)
			pq.Push(v)
			ref = append(ref, v)
			pushes++
		} else {
			sort.Ints(ref)
			v, err := pq.Pop()
			assert.NilError(t, err)
			assert.Equal(t, v, ref[0])
			ref = ref[1:]
			pops++
		}
		assert.Equal(t, pq.Len(), pushes-pops)
	}
}

func TestJobComparator(t *testing.T) {
	a := Job{Index: 0, R: 5, Q: 3}
	b := Job{Index: 1, R: 5, Q: 3}
	c := Job{Index: 2, R: 1, Q: 9}

	assert.Assert(t, ByMinRelease.Less(c, a))
	assert.Assert(t, ByMinRelease.Less(a, b), "ties go to the lower index")
	assert.Assert(t, !ByMinRelease.Less(b, a))

	assert.Assert(t, ByMaxDelivery.Less(c, a))
	assert.Assert(t, ByMaxDelivery.Less(a, b), "ties go to the lower index")
	assert.Assert(t, !ByMaxDelivery.Less(b, a))

	pq := NewJobQueue(ByMaxDelivery, 3)
	pq.Push(b)
	pq.Push(a)
	pq.Push(c)
	assert.Equal(t, pq.MustPop().Index, 2)
	assert.Equal(t, pq.MustPop().Index, 0)
	assert.Equal(t, pq.MustPop().Index, 1)
}
