package rpq

import (
	"fmt"

	"github.com/pkg/errors"
)

// GetCMax evaluates the objective of processing the jobs in the given order
// without preemption.
func GetCMax(jobs JobSet, order []int) (int, error) {
	if err := jobs.Validate(); err != nil {
		return 0, err
	}
	if err := ValidateOrder(order, len(jobs)); err != nil {
		return 0, err
	}
	byIndex := jobs.ByIndex()
	_, completion := timetable(byIndex, order)
	cmax := 0
	for pos, idx := range order {
		if c := completion[pos] + byIndex[idx].Q; c > cmax {
			cmax = c
		}
	}
	return cmax, nil
}

func ValidateOrder(order []int, n int) error {
	if len(order) != n {
		return errors.Wrapf(ErrInvalidOrder, "length must be %d (got %d)", n, len(order))
	}
	seen := make([]bool, n)
	for i, v := range order {
		if v < 0 || v >= n {
			return errors.Wrapf(ErrInvalidOrder, "order[%d]=%d out of range [0,%d)", i, v, n)
		}
		if seen[v] {
			return errors.Wrapf(ErrInvalidOrder, "duplicate job %d", v)
		}
		seen[v] = true
	}
	return nil
}

// timetable returns start and completion time per position of order.
// byIndex must be addressable by job index.
func timetable(byIndex []Job, order []int) (start []int, completion []int) {
	start = make([]int, len(order))
	completion = make([]int, len(order))
	t := 0
	for pos, idx := range order {
		j := byIndex[idx]
		if t < j.R {
			t = j.R
		}
		start[pos] = t
		t += j.P
		completion[pos] = t
	}
	return start, completion
}

func CheckSolutionValidity(jobs JobSet, order []int, obj int) (bool, string) {
	cmax, err := GetCMax(jobs, order)
	if err != nil {
		return false, fmt.Sprintf("The computed order is invalid: %s", err.Error())
	}
	if cmax != obj {
		return false, fmt.Sprintf("The computed order has Cmax %d but the solution claims %d!", cmax, obj)
	}
	return true, ""
}
