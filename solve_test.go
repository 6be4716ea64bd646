package rpq

import (
	"context"
	"fmt"
	"io/ioutil"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gotest.tools/v3/assert"
)

func TestMain(m *testing.M) {
	InitLoggers(1)
	SetLogOutput(ioutil.Discard)
	m.Run()
}

func TestSolveCarlier(t *testing.T) {
	inst := NewInstance("seven", sevenJobs(t))
	sol, err := Solve(context.Background(), inst, DefaultConfig(), SysInfo{Platform: "test"})
	assert.NilError(t, err)
	assert.Equal(t, inst.Solution, sol)
	assert.Equal(t, sol.Obj, 50)
	assert.Equal(t, sol.LBound, 50)
	assert.Equal(t, sol.UBound, 50)
	assert.Equal(t, sol.Optimal, true)
	assert.Equal(t, sol.Schrage, 53)
	assert.Equal(t, sol.SchragePmtn, 49)
	assert.Equal(t, sol.Strategy, "CARLIER_DFS")
	assert.Equal(t, sol.System.Platform, "test")
	assert.Equal(t, sol.Comment, "")
	assert.Assert(t, sol.Nodes > 1)
	_, err = uuid.Parse(sol.RunID)
	assert.NilError(t, err)
}

func TestSolveSchrage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolver = RESOLVER_SCHRAGE
	inst := NewInstance("seven", sevenJobs(t))
	sol, err := Solve(context.Background(), inst, cfg, SysInfo{})
	assert.NilError(t, err)
	assert.Equal(t, sol.Obj, 53)
	assert.Equal(t, sol.LBound, 49)
	assert.Equal(t, sol.UBound, 53)
	assert.Equal(t, sol.Optimal, false)
	assert.DeepEqual(t, sol.Order, []int{5, 0, 1, 2, 3, 4, 6})
}

func TestSolveSchragePmtn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolver = RESOLVER_SCHRAGE_PMTN
	inst := NewInstance("seven", sevenJobs(t))
	sol, err := Solve(context.Background(), inst, cfg, SysInfo{})
	assert.NilError(t, err)
	assert.Equal(t, sol.Obj, 49)
	assert.Equal(t, sol.LBound, 49)
	assert.Equal(t, sol.UBound, 53)
	assert.Equal(t, sol.Optimal, false)
	assert.Equal(t, sol.Comment, "")
}

func TestSolveBruteForce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolver = RESOLVER_BRUTEFORCE
	sol, err := Solve(context.Background(), NewInstance("three", threeJobs(t)), cfg, SysInfo{})
	assert.NilError(t, err)
	assert.Equal(t, sol.Obj, 9)
	assert.Equal(t, sol.Optimal, true)
}

func TestSolveNodeBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxNodes = 1
	inst := NewInstance("seven", sevenJobs(t))
	sol, err := Solve(context.Background(), inst, cfg, SysInfo{})
	assert.NilError(t, err)
	assert.Equal(t, sol.Optimal, false)
	assert.Equal(t, sol.Obj, 53)
	assert.Equal(t, sol.LBound, 49)
	assert.Assert(t, strings.Contains(sol.Comment, "stopped early"), sol.Comment)

	s, err := Summarize(inst)
	assert.NilError(t, err)
	assert.Equal(t, s.Valid, true)
	assert.Equal(t, s.Gap, 0.082)
}

func TestSolveErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = "SIDEWAYS"
	_, err := Solve(context.Background(), NewInstance("three", threeJobs(t)), cfg, SysInfo{})
	assert.ErrorContains(t, err, "strategy")

	inst := &RPQInstance{Name: "broken", Release: []int{1}, Processing: []int{1, 2}, Delivery: []int{1}}
	_, err = Solve(context.Background(), inst, DefaultConfig(), SysInfo{})
	assert.ErrorContains(t, err, "broken")
	assert.Assert(t, inst.Solution == nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Solve(ctx, NewInstance("seven", sevenJobs(t)), DefaultConfig(), SysInfo{})
	assert.ErrorContains(t, err, "canceled")
}

func TestSolveBatch(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	var insts []*RPQInstance
	for i := 0; i < 12; i++ {
		inst, err := RandomInstance(fmt.Sprintf("batch_%d", i), 1+rng.Intn(7), 1, 40, rng)
		assert.NilError(t, err)
		insts = append(insts, inst)
	}
	cfg := DefaultConfig()
	cfg.Parallelism = 4
	cfg.Strategy = STRAT_BEST
	assert.NilError(t, SolveBatch(context.Background(), insts, cfg))

	runIDs := map[string]bool{}
	for _, inst := range insts {
		assert.Assert(t, inst.Solution != nil, inst.Name)
		jobs, err := inst.Jobs()
		assert.NilError(t, err)
		assert.Equal(t, inst.Solution.Obj, exhaustiveOptimum(t, jobs), inst.Name)
		assert.Equal(t, inst.Solution.Optimal, true)
		runIDs[inst.Solution.RunID] = true

		s, err := Summarize(inst)
		assert.NilError(t, err)
		assert.Equal(t, s.Valid, true)
		assert.Equal(t, s.Gap, 0.0)
	}
	assert.Equal(t, len(runIDs), len(insts))
}

func TestSolveBatchInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Parallelism = 0
	err := SolveBatch(context.Background(), nil, cfg)
	assert.ErrorContains(t, err, "parallelism")
}

func TestSummarize(t *testing.T) {
	inst := NewInstance("three", threeJobs(t))
	_, err := Summarize(inst)
	assert.ErrorContains(t, err, "no solution")
	assert.Assert(t, errors.Is(err, ErrNoSolution), "got %v", err)

	inst.Solution = &RPQSolution{Obj: 9, LBound: 9, Optimal: true, Order: []int{1, 0, 2}, Strategy: "CARLIER_DFS", Time: "1ms", Nodes: 2}
	s, err := Summarize(inst)
	assert.NilError(t, err)
	assert.Equal(t, s.Valid, true)
	assert.Equal(t, s.CSV(), "three,true,1ms,9,9,0.0000,3,2,")
	assert.Equal(t, len(strings.Split(SummaryHeader, ",")), len(strings.Split(s.CSV(), ",")))

	inst.Solution.Obj = 8
	s, err = Summarize(inst)
	assert.NilError(t, err)
	assert.Equal(t, s.Valid, false)
	assert.Assert(t, strings.Contains(s.Comment, "Cmax 9"), s.Comment)
}
