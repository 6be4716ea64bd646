package rpq

import "github.com/pkg/errors"

// JobSet holds the jobs of one instance. Indices are a permutation of
// 0..n-1; the slice position is not required to match the index.
type JobSet []Job

func NewJobSet(r, p, q []int) (JobSet, error) {
	if len(r) != len(p) || len(r) != len(q) {
		return nil, errors.Wrapf(ErrInvalidJobSet, "length mismatch r=%d p=%d q=%d", len(r), len(p), len(q))
	}
	jobs := make(JobSet, len(r))
	for i := range r {
		jobs[i] = Job{Index: i, R: r[i], P: p[i], Q: q[i]}
	}
	return jobs, jobs.Validate()
}

func (js JobSet) Validate() error {
	if len(js) == 0 {
		return ErrEmptyInput
	}
	seen := make([]bool, len(js))
	for _, j := range js {
		if j.Index < 0 || j.Index >= len(js) {
			return errors.Wrapf(ErrInvalidJobSet, "job index %d out of range [0,%d)", j.Index, len(js))
		}
		if seen[j.Index] {
			return errors.Wrapf(ErrInvalidJobSet, "duplicate job index %d", j.Index)
		}
		seen[j.Index] = true
		if j.R < 0 || j.P < 0 || j.Q < 0 {
			return errors.Wrapf(ErrInvalidJobSet, "job %s has a negative field", j)
		}
	}
	return nil
}

func (js JobSet) Clone() JobSet {
	c := make(JobSet, len(js))
	copy(c, js)
	return c
}

// Replace returns a copy of the set with the job of the same index swapped
// for j. The receiver is left untouched.
func (js JobSet) Replace(j Job) JobSet {
	c := js.Clone()
	for i := range c {
		if c[i].Index == j.Index {
			c[i] = j
			break
		}
	}
	return c
}

// ByIndex returns the jobs addressed by their index.
func (js JobSet) ByIndex() []Job {
	res := make([]Job, len(js))
	for _, j := range js {
		res[j.Index] = j
	}
	return res
}

func (js JobSet) Release() []int {
	return js.field(func(j Job) int { return j.R })
}

func (js JobSet) Processing() []int {
	return js.field(func(j Job) int { return j.P })
}

func (js JobSet) Delivery() []int {
	return js.field(func(j Job) int { return j.Q })
}

func (js JobSet) field(get func(Job) int) []int {
	res := make([]int, len(js))
	for _, j := range js {
		res[j.Index] = get(j)
	}
	return res
}
