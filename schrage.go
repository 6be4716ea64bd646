package rpq

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// jobPool is the set of jobs an engine selects from. The heap pool gives the
// O(n log n) Schrage, the scan pool the O(n^2) one. Both serve jobs in
// exactly the same order.
type jobPool interface {
	Len() int
	Peek() (Job, bool)
	Pop() Job
	Push(Job)
}

type heapPool struct {
	*PriorityQueue[Job]
}

func (h heapPool) Pop() Job {
	return h.MustPop()
}

type scanPool struct {
	jobs []Job
	cmp  JobComparator
}

func (s *scanPool) Len() int {
	return len(s.jobs)
}

func (s *scanPool) best() int {
	b := 0
	for i := 1; i < len(s.jobs); i++ {
		if s.cmp.Less(s.jobs[i], s.jobs[b]) {
			b = i
		}
	}
	return b
}

func (s *scanPool) Peek() (Job, bool) {
	if len(s.jobs) == 0 {
		return Job{}, false
	}
	return s.jobs[s.best()], true
}

func (s *scanPool) Pop() Job {
	if len(s.jobs) == 0 {
		panic(ErrEmptyQueue)
	}
	b := s.best()
	j := s.jobs[b]
	last := len(s.jobs) - 1
	s.jobs[b] = s.jobs[last]
	s.jobs = s.jobs[:last]
	return j
}

func (s *scanPool) Push(j Job) {
	s.jobs = append(s.jobs, j)
}

// newPools returns the not yet released pool N and the ready pool G.
func newPools(engine string, n int) (pending jobPool, ready jobPool, err error) {
	switch engine {
	case ENGINE_LOGN, "":
		return heapPool{NewJobQueue(ByMinRelease, n)}, heapPool{NewJobQueue(ByMaxDelivery, n)}, nil
	case ENGINE_N2:
		return &scanPool{jobs: make([]Job, 0, n), cmp: ByMinRelease}, &scanPool{jobs: make([]Job, 0, n), cmp: ByMaxDelivery}, nil
	}
	return nil, nil, errors.Wrapf(ErrUnknownOption, "engine %q", engine)
}

func Schrage(jobs JobSet) (Ordering, error) {
	return schrage(jobs, ENGINE_LOGN)
}

func SchrageN2(jobs JobSet) (Ordering, error) {
	return schrage(jobs, ENGINE_N2)
}

func SchragePmtn(jobs JobSet) (Ordering, error) {
	return schragePmtn(jobs, ENGINE_LOGN)
}

func SchragePmtnN2(jobs JobSet) (Ordering, error) {
	return schragePmtn(jobs, ENGINE_N2)
}

// ListSchedule runs the heap based Schrage heuristic. The preemptive variant
// yields a lower bound for the optimum of jobs, the other one a feasible
// ordering.
func ListSchedule(jobs JobSet, preemptive bool) (Ordering, error) {
	if preemptive {
		return SchragePmtn(jobs)
	}
	return Schrage(jobs)
}

// RunSchrage dispatches on engine and mode.
func RunSchrage(jobs JobSet, engine string, preemptive bool) (Ordering, error) {
	if preemptive {
		return schragePmtn(jobs, engine)
	}
	return schrage(jobs, engine)
}

func schrage(jobs JobSet, engine string) (Ordering, error) {
	if err := jobs.Validate(); err != nil {
		return Ordering{}, err
	}
	pending, ready, err := newPools(engine, len(jobs))
	if err != nil {
		return Ordering{}, err
	}
	for _, j := range jobs {
		pending.Push(j)
	}

	order := make([]int, 0, len(jobs))
	t, cmax := 0, 0
	for ready.Len() > 0 || pending.Len() > 0 {
		for pending.Len() > 0 {
			if j, _ := pending.Peek(); j.R > t {
				break
			}
			ready.Push(pending.Pop())
		}

		if ready.Len() == 0 {
			j, _ := pending.Peek()
			t = j.R
			continue
		}

		j := ready.Pop()
		order = append(order, j.Index)
		t += j.P
		if t+j.Q > cmax {
			cmax = t + j.Q
		}
	}
	return Ordering{Order: order, Obj: cmax}, nil
}

// schragePmtn is the preemptive Schrage. A job released strictly inside the
// run of the current job with a strictly larger delivery time interrupts it,
// the remainder goes back to the ready pool under the same index. The
// returned order lists jobs by completion.
func schragePmtn(jobs JobSet, engine string) (Ordering, error) {
	if err := jobs.Validate(); err != nil {
		return Ordering{}, err
	}
	pending, ready, err := newPools(engine, len(jobs))
	if err != nil {
		return Ordering{}, err
	}
	for _, j := range jobs {
		pending.Push(j)
	}

	var (
		order   = make([]int, 0, len(jobs))
		t, cmax int
		current Job
		running bool
	)
	complete := func() {
		if !running {
			return
		}
		running = false
		order = append(order, current.Index)
		if t+current.Q > cmax {
			cmax = t + current.Q
		}
	}

	for ready.Len() > 0 || pending.Len() > 0 {
		for pending.Len() > 0 {
			if j, _ := pending.Peek(); j.R > t {
				break
			}
			j := pending.Pop()
			ready.Push(j)
			if running && j.R < t && j.Q > current.Q {
				rest := current
				rest.P = t - j.R
				t = j.R
				running = false
				ready.Push(rest)
			}
		}
		complete()

		if ready.Len() == 0 {
			j, _ := pending.Peek()
			t = j.R
			continue
		}

		current = ready.Pop()
		running = true
		t += current.P
	}
	complete()

	if len(order) != len(jobs) {
		return Ordering{}, errors.Wrapf(ErrBoundingInvariant, "preemptive schedule completed %d of %d jobs", len(order), len(jobs))
	}
	return Ordering{Order: order, Obj: cmax}, nil
}

// Scheduler is the Schrage heuristic as a Resolver.
type Scheduler struct {
	Engine     string
	Preemptive bool
}

func (s Scheduler) Resolve(ctx context.Context, jobs JobSet) (Ordering, error) {
	if err := ctx.Err(); err != nil {
		return Ordering{}, err
	}
	return RunSchrage(jobs, s.Engine, s.Preemptive)
}

func (s Scheduler) String() string {
	engine := s.Engine
	if engine == "" {
		engine = ENGINE_LOGN
	}
	if s.Preemptive {
		return fmt.Sprintf("SchragePmtn[%s]", engine)
	}
	return fmt.Sprintf("Schrage[%s]", engine)
}
