package rpq

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyInput is returned by every resolver when the job set has no jobs.
	ErrEmptyInput = errors.New("rpq: empty job set")

	// ErrEmptyQueue is returned when popping from an empty priority queue.
	ErrEmptyQueue = errors.New("rpq: pop from empty priority queue")

	// ErrBoundingInvariant means the bookkeeping of a Schrage schedule is
	// inconsistent, e.g. its critical block could not be located. The search is
	// aborted, its results would be unreliable.
	ErrBoundingInvariant = errors.New("rpq: bounding invariant violated")

	// ErrIterationBudget is returned together with a usable result when the
	// branch and bound hit its node limit before proving optimality.
	ErrIterationBudget = errors.New("rpq: node budget exceeded, optimality unproven")

	ErrInvalidJobSet = errors.New("rpq: invalid job set")
	ErrInvalidOrder  = errors.New("rpq: invalid ordering")
	ErrUnknownOption = errors.New("rpq: unknown option")
	// ErrInvalidOption is a known setting with a value out of its range.
	ErrInvalidOption = errors.New("rpq: option out of range")
	ErrNoSolution    = errors.New("rpq: no solution")
)

// IsUnproven reports whether err only signals that a returned result is not
// proven optimal.
func IsUnproven(err error) bool {
	return errors.Is(err, ErrIterationBudget) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
