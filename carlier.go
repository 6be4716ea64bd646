package rpq

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/golang-collections/collections/queue"
	"github.com/pkg/errors"
)

type CarlierOptions struct {
	// Strategy is one of STRAT_DFS, STRAT_BEST or STRAT_BFS.
	Strategy string
	// Engine selects the Schrage form used for both bounds.
	Engine string
	// MaxNodes caps the number of expanded nodes, 0 means no limit.
	MaxNodes int
	// DisablePruning explores every child regardless of its lower bound.
	// Only useful to measure the effect of the bound.
	DisablePruning bool
}

func DefaultCarlierOptions() CarlierOptions {
	return CarlierOptions{
		Strategy: STRAT_DFS,
		Engine:   ENGINE_LOGN,
	}
}

func (o CarlierOptions) Validate() error {
	switch o.Strategy {
	case STRAT_DFS, STRAT_BEST, STRAT_BFS:
	default:
		return errors.Wrapf(ErrUnknownOption, "strategy %q", o.Strategy)
	}
	switch o.Engine {
	case ENGINE_LOGN, ENGINE_N2:
	default:
		return errors.Wrapf(ErrUnknownOption, "engine %q", o.Engine)
	}
	if o.MaxNodes < 0 {
		return errors.Wrapf(ErrInvalidOption, "max nodes must be >= 0 (got %d)", o.MaxNodes)
	}
	return nil
}

type CarlierStats struct {
	Nodes    int `json:"nodes"`
	Pruned   int `json:"pruned"`
	Leaves   int `json:"leaves"`
	MaxDepth int `json:"max_depth"`
}

type CarlierResult struct {
	Ordering
	LBound   int
	Optimal  bool
	Stats    CarlierStats
	Duration time.Duration
}

// incumbent is the best ordering of one search. It is the only state shared
// between nodes; the mutex lets a parallel frontier reuse it unchanged.
type incumbent struct {
	mu   sync.Mutex
	best Ordering
}

func newIncumbent() *incumbent {
	return &incumbent{best: Ordering{Obj: math.MaxInt}}
}

func (in *incumbent) bound() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.best.Obj
}

// offer replaces the incumbent if o is strictly better.
func (in *incumbent) offer(o Ordering) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	if o.Obj >= in.best.Obj {
		return false
	}
	in.best = o.Clone()
	return true
}

func (in *incumbent) snapshot() Ordering {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.best.Clone()
}

// searchNode is a job set waiting for expansion. sched is its Schrage
// schedule, computed when the node is created; lb bounds every ordering
// below it.
type searchNode struct {
	jobs  JobSet
	sched Ordering
	lb    int
	depth int
	seq   int
}

type frontier interface {
	Len() int
	push(n searchNode)
	pop() searchNode
}

// bestFirst serves the node whose Schrage schedule is smallest, oldest
// first.
type bestFirst struct {
	pq *PriorityQueue[searchNode]
}

func newBestFirst() *bestFirst {
	return &bestFirst{pq: NewPriorityQueue(func(a, b searchNode) bool {
		if a.sched.Obj != b.sched.Obj {
			return a.sched.Obj < b.sched.Obj
		}
		return a.seq < b.seq
	})}
}

func (f *bestFirst) Len() int          { return f.pq.Len() }
func (f *bestFirst) push(n searchNode) { f.pq.Push(n) }
func (f *bestFirst) pop() searchNode   { return f.pq.MustPop() }

type breadthFirst struct {
	q *queue.Queue
}

func (f *breadthFirst) Len() int          { return f.q.Len() }
func (f *breadthFirst) push(n searchNode) { f.q.Enqueue(n) }
func (f *breadthFirst) pop() searchNode   { return f.q.Dequeue().(searchNode) }

type carlierSearch struct {
	ctx      context.Context
	opts     CarlierOptions
	best     *incumbent
	frontier frontier
	stats    CarlierStats
	seq      int
}

// Carlier solves 1|r_j,q_j|Cmax exactly. It returns ErrIterationBudget or
// the context error together with the best ordering found when the search
// was cut short; Optimal is false in that case.
func Carlier(ctx context.Context, jobs JobSet, opts CarlierOptions) (CarlierResult, error) {
	startTime := time.Now()
	if err := opts.Validate(); err != nil {
		return CarlierResult{}, err
	}
	if err := jobs.Validate(); err != nil {
		return CarlierResult{}, err
	}
	rootLB, err := RunSchrage(jobs, opts.Engine, true)
	if err != nil {
		return CarlierResult{}, err
	}

	s := &carlierSearch{
		ctx:  ctx,
		opts: opts,
		best: newIncumbent(),
	}
	switch opts.Strategy {
	case STRAT_BEST:
		s.frontier = newBestFirst()
	case STRAT_BFS:
		s.frontier = &breadthFirst{q: queue.New()}
	}

	root, err := RunSchrage(jobs, opts.Engine, false)
	if err != nil {
		return CarlierResult{}, err
	}
	err = s.expand(searchNode{jobs: jobs.Clone(), sched: root, lb: rootLB.Obj})
	if err == nil && s.frontier != nil {
		err = s.drain()
	}

	res := CarlierResult{
		Ordering: s.best.snapshot(),
		LBound:   rootLB.Obj,
		Stats:    s.stats,
		Duration: time.Since(startTime),
	}
	switch {
	case err == nil:
		res.Optimal = true
		res.LBound = res.Obj
	case IsUnproven(err):
		if res.Obj == math.MaxInt {
			return CarlierResult{}, err
		}
		Log(2, "Carlier stopped after %d nodes: %s. Best Cmax %d, lower bound %d", s.stats.Nodes, err.Error(), res.Obj, res.LBound)
	default:
		return CarlierResult{}, err
	}
	Log(3, "Carlier[%s] finished: Cmax=%d nodes=%d pruned=%d leaves=%d depth=%d in %s",
		opts.Strategy, res.Obj, s.stats.Nodes, s.stats.Pruned, s.stats.Leaves, s.stats.MaxDepth, res.Duration)
	return res, err
}

// BranchAndBound runs Carlier with the given strategy and default options.
func BranchAndBound(jobs JobSet, strategy string) (Ordering, error) {
	opts := DefaultCarlierOptions()
	opts.Strategy = strategy
	res, err := Carlier(context.Background(), jobs, opts)
	if err != nil {
		return Ordering{}, err
	}
	return res.Ordering, nil
}

func (s *carlierSearch) admissible(lb int) bool {
	return s.opts.DisablePruning || lb < s.best.bound()
}

func (s *carlierSearch) drain() error {
	for s.frontier.Len() > 0 {
		n := s.frontier.pop()
		if !s.admissible(n.lb) {
			s.stats.Pruned++
			continue
		}
		if err := s.expand(n); err != nil {
			return err
		}
	}
	return nil
}

func (s *carlierSearch) expand(n searchNode) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	if s.opts.MaxNodes > 0 && s.stats.Nodes >= s.opts.MaxNodes {
		return ErrIterationBudget
	}
	s.stats.Nodes++
	if n.depth > s.stats.MaxDepth {
		s.stats.MaxDepth = n.depth
	}

	sched := n.sched
	if s.best.offer(sched) {
		Log(3, "New best Cmax %d at depth %d: %v", sched.Obj, n.depth, sched.Order)
	}

	byIndex := n.jobs.ByIndex()
	blk, err := findCriticalBlock(byIndex, sched)
	if err != nil {
		return err
	}
	Log(4, "Node %d depth %d: U=%d lb=%d block=[%d,%d] c=%d", s.stats.Nodes, n.depth, sched.Obj, n.lb, blk.a, blk.b, blk.c)
	if blk.c < 0 {
		s.stats.Leaves++
		return nil
	}

	k := blk.summarize(byIndex, sched.Order)
	jc := byIndex[sched.Order[blk.c]]
	for _, modified := range [2]Job{
		jc.WithRelease(max(jc.R, k.r+k.p)),
		jc.WithDelivery(max(jc.Q, k.q+k.p)),
	} {
		child := n.jobs.Replace(modified)
		lb, err := s.lowerBound(child, k, modified)
		if err != nil {
			return err
		}
		if !s.admissible(lb) {
			s.stats.Pruned++
			continue
		}
		childSched, err := RunSchrage(child, s.opts.Engine, false)
		if err != nil {
			return err
		}
		s.seq++
		cn := searchNode{jobs: child, sched: childSched, lb: lb, depth: n.depth + 1, seq: s.seq}
		if s.frontier != nil {
			s.frontier.push(cn)
			continue
		}
		if err := s.expand(cn); err != nil {
			return err
		}
	}
	return nil
}

// lowerBound combines the preemptive Schrage of the child with the block
// bounds h(K) and h(K+c).
func (s *carlierSearch) lowerBound(child JobSet, k blockSummary, c Job) (int, error) {
	pmtn, err := RunSchrage(child, s.opts.Engine, true)
	if err != nil {
		return 0, err
	}
	hK := k.r + k.p + k.q
	hKc := min(k.r, c.R) + k.p + c.P + min(k.q, c.Q)
	return max(pmtn.Obj, hK, hKc), nil
}

// criticalBlock holds positions in a Schrage ordering: jobs a..b run without
// idle time and job b attains Cmax. c is the last job in [a,b) whose delivery
// time is below that of b, -1 if there is none.
type criticalBlock struct {
	a, b, c int
}

type blockSummary struct {
	r, p, q int
}

func findCriticalBlock(byIndex []Job, sched Ordering) (criticalBlock, error) {
	blk := criticalBlock{a: -1, b: -1, c: -1}
	_, completion := timetable(byIndex, sched.Order)
	for pos := len(sched.Order) - 1; pos >= 0; pos-- {
		if completion[pos]+byIndex[sched.Order[pos]].Q == sched.Obj {
			blk.b = pos
			break
		}
	}
	if blk.b < 0 {
		return blk, errors.Wrapf(ErrBoundingInvariant, "no job attains Cmax %d in %v", sched.Obj, sched.Order)
	}

	qb := byIndex[sched.Order[blk.b]].Q
	sum := 0
	for pos := blk.b; pos >= 0; pos-- {
		j := byIndex[sched.Order[pos]]
		sum += j.P
		if j.R+sum+qb == sched.Obj {
			blk.a = pos
		}
	}
	if blk.a < 0 {
		return blk, errors.Wrapf(ErrBoundingInvariant, "no block start for b=%d in %v", blk.b, sched.Order)
	}

	for pos := blk.b - 1; pos >= blk.a; pos-- {
		if byIndex[sched.Order[pos]].Q < qb {
			blk.c = pos
			break
		}
	}
	return blk, nil
}

// summarize returns min release, total processing and min delivery of the
// jobs c+1..b.
func (blk criticalBlock) summarize(byIndex []Job, order []int) blockSummary {
	k := blockSummary{r: math.MaxInt, q: math.MaxInt}
	for pos := blk.c + 1; pos <= blk.b; pos++ {
		j := byIndex[order[pos]]
		k.r = min(k.r, j.R)
		k.q = min(k.q, j.Q)
		k.p += j.P
	}
	return k
}

// CarlierResolver is the branch and bound as a Resolver.
type CarlierResolver struct {
	Options CarlierOptions
}

func (c CarlierResolver) Resolve(ctx context.Context, jobs JobSet) (Ordering, error) {
	res, err := Carlier(ctx, jobs, c.Options)
	return res.Ordering, err
}

func (c CarlierResolver) String() string {
	return fmt.Sprintf("Carlier[%s,%s]", c.Options.Strategy, c.Options.Engine)
}
