package rpq

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Solve runs the configured resolver on inst and attaches the solution to
// it. Both Schrage bounds are always recorded. An unproven Carlier result
// is stored with Optimal=false and does not make Solve fail.
func Solve(ctx context.Context, inst *RPQInstance, cfg Config, sys SysInfo) (*RPQSolution, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	jobs, err := inst.Jobs()
	if err != nil {
		return nil, err
	}
	Log(4, "Jobs of %s:\n%s", inst.Name, PrintJobs(jobs))

	sol := &RPQSolution{
		RunID:    uuid.New().String(),
		Strategy: cfg.Resolver,
		System:   sys,
	}
	upper, err := RunSchrage(jobs, cfg.Engine, false)
	if err != nil {
		return nil, err
	}
	lower, err := RunSchrage(jobs, cfg.Engine, true)
	if err != nil {
		return nil, err
	}
	sol.Schrage = upper.Obj
	sol.SchragePmtn = lower.Obj

	startTime := time.Now()
	switch cfg.Resolver {
	case RESOLVER_CARLIER:
		sol.Strategy = fmt.Sprintf("%s_%s", cfg.Resolver, cfg.Strategy)
		res, err := Carlier(ctx, jobs, cfg.CarlierOptions())
		if err != nil && (!IsUnproven(err) || len(res.Order) == 0) {
			return nil, errors.Wrapf(err, "instance %s", inst.Name)
		}
		if err != nil {
			sol.Comment += fmt.Sprintf("Search stopped early: %s. ", err.Error())
		}
		sol.Obj = res.Obj
		sol.Order = res.Order
		sol.LBound = res.LBound
		sol.Optimal = res.Optimal
		sol.Nodes = res.Stats.Nodes
		sol.Pruned = res.Stats.Pruned
	default:
		resolver, err := NewResolver(cfg.Resolver, cfg)
		if err != nil {
			return nil, err
		}
		res, err := resolver.Resolve(ctx, jobs)
		if err != nil {
			return nil, errors.Wrapf(err, "instance %s", inst.Name)
		}
		sol.Obj = res.Obj
		sol.Order = res.Order
		sol.LBound = lower.Obj
		sol.Optimal = cfg.Resolver == RESOLVER_BRUTEFORCE || res.Obj == lower.Obj
	}
	sol.Time = time.Since(startTime).String()
	sol.UBound = sol.Obj
	if cfg.Resolver == RESOLVER_SCHRAGE_PMTN {
		// a preemptive schedule is only a bound, its order is not feasible as is
		sol.UBound = upper.Obj
		sol.Optimal = upper.Obj == lower.Obj
	}

	if cfg.Verify && cfg.Resolver != RESOLVER_SCHRAGE_PMTN {
		if valid, comment := CheckSolutionValidity(jobs, sol.Order, sol.Obj); !valid {
			Log(1, "%s: %s", inst.Name, comment)
			sol.Comment += comment
		}
	}
	Log(2, "Found a solution for %s with Cmax %d (lower bound %d, optimal=%t) in %s", inst.Name, sol.Obj, sol.LBound, sol.Optimal, sol.Time)
	inst.Solution = sol
	return sol, nil
}

// SolveBatch solves the instances concurrently, at most cfg.Parallelism at a
// time. Every instance gets its own search state. The first hard error
// cancels the remaining solves.
func SolveBatch(ctx context.Context, insts []*RPQInstance, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	sys := GetSysInfo()
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Parallelism)
	for _, inst := range insts {
		inst := inst
		eg.Go(func() error {
			_, err := Solve(egCtx, inst, cfg, sys)
			return err
		})
	}
	return eg.Wait()
}
