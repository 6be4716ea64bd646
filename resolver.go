package rpq

import (
	"context"
	"math"

	"github.com/pkg/errors"
)

// MaxBruteForceJobs limits BruteForceResolver, 10! prefixes is already slow.
const MaxBruteForceJobs = 10

// Resolver produces an ordering for a job set. Schrage, Carlier and the
// exhaustive search all implement it.
type Resolver interface {
	Resolve(ctx context.Context, jobs JobSet) (Ordering, error)
	String() string
}

// NewResolver builds a resolver by its RESOLVER_* name.
func NewResolver(name string, cfg Config) (Resolver, error) {
	switch name {
	case RESOLVER_SCHRAGE:
		return Scheduler{Engine: cfg.Engine}, nil
	case RESOLVER_SCHRAGE_PMTN:
		return Scheduler{Engine: cfg.Engine, Preemptive: true}, nil
	case RESOLVER_CARLIER:
		return CarlierResolver{Options: cfg.CarlierOptions()}, nil
	case RESOLVER_BRUTEFORCE:
		return BruteForceResolver{}, nil
	}
	return nil, errors.Wrapf(ErrUnknownOption, "resolver %q", name)
}

// BruteForceResolver is a pruned enumeration of all permutations: it extends
// orderings job by job and drops a prefix as soon as its partial Cmax reaches
// the best complete one. Partial Cmax never decreases along a prefix, so the
// result is optimal. Ties keep the lexicographically first ordering.
type BruteForceResolver struct{}

func (BruteForceResolver) Resolve(ctx context.Context, jobs JobSet) (Ordering, error) {
	if err := jobs.Validate(); err != nil {
		return Ordering{}, err
	}
	n := len(jobs)
	if n > MaxBruteForceJobs {
		return Ordering{}, errors.Errorf("brute force supports at most %d jobs (got %d)", MaxBruteForceJobs, n)
	}
	byIndex := jobs.ByIndex()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	best := Ordering{Obj: math.MaxInt}
	used := make([]bool, n)

	var walk func(pos, t, cmax int) error
	walk = func(pos, t, cmax int) error {
		if cmax >= best.Obj {
			return nil
		}
		if pos == n {
			best = Ordering{Order: append([]int(nil), perm...), Obj: cmax}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		for idx := 0; idx < n; idx++ {
			if used[idx] {
				continue
			}
			j := byIndex[idx]
			end := max(t, j.R) + j.P
			used[idx] = true
			perm[pos] = idx
			if err := walk(pos+1, end, max(cmax, end+j.Q)); err != nil {
				return err
			}
			used[idx] = false
		}
		return nil
	}
	if err := walk(0, 0, 0); err != nil {
		return Ordering{}, err
	}
	return best, nil
}

func (BruteForceResolver) String() string {
	return "BruteForce"
}
