package rpq

import (
	"math"
	"math/rand"
	"testing"

	"gotest.tools/v3/assert"
)

func mustJobs(t *testing.T, r, p, q []int) JobSet {
	t.Helper()
	jobs, err := NewJobSet(r, p, q)
	assert.NilError(t, err)
	return jobs
}

// threeJobs is small enough to follow Carlier by hand: Schrage gives 11,
// the optimum is 9.
func threeJobs(t *testing.T) JobSet {
	return mustJobs(t, []int{0, 1, 2}, []int{3, 2, 1}, []int{2, 6, 1})
}

// sevenJobs is the usual textbook instance: Schrage 53, preemptive Schrage
// 49, optimum 50.
func sevenJobs(t *testing.T) JobSet {
	return mustJobs(t,
		[]int{10, 13, 11, 20, 30, 0, 30},
		[]int{5, 6, 7, 4, 3, 6, 2},
		[]int{7, 26, 24, 21, 8, 17, 0},
	)
}

func randomJobs(t *testing.T, rng *rand.Rand, n, maxValue int) JobSet {
	t.Helper()
	inst, err := RandomInstance("random", n, 0, maxValue, rng)
	assert.NilError(t, err)
	jobs, err := inst.Jobs()
	assert.NilError(t, err)
	return jobs
}

// exhaustiveOptimum evaluates all n! orderings with GetCMax.
func exhaustiveOptimum(t *testing.T, jobs JobSet) int {
	t.Helper()
	perm := make([]int, len(jobs))
	for i := range perm {
		perm[i] = i
	}
	best := math.MaxInt
	var permute func(k int)
	permute = func(k int) {
		if k == len(perm) {
			cmax, err := GetCMax(jobs, perm)
			assert.NilError(t, err)
			if cmax < best {
				best = cmax
			}
			return
		}
		for i := k; i < len(perm); i++ {
			perm[k], perm[i] = perm[i], perm[k]
			permute(k + 1)
			perm[k], perm[i] = perm[i], perm[k]
		}
	}
	permute(0)
	return best
}
