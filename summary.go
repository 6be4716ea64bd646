package rpq

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Summary is one analyzer row for a solved instance.
type Summary struct {
	Name     string
	Optimal  bool
	Time     string
	Obj      int
	LBound   int
	Gap      float64
	JobCount int
	Nodes    int
	Valid    bool
	Comment  string
}

func Summarize(inst *RPQInstance) (Summary, error) {
	if inst.Solution == nil {
		return Summary{}, errors.Wrapf(ErrNoSolution, "instance %s", inst.Name)
	}
	sol := *inst.Solution
	s := Summary{
		Name:     inst.Name,
		Optimal:  sol.Optimal,
		Time:     sol.Time,
		Obj:      sol.Obj,
		LBound:   sol.LBound,
		JobCount: inst.JobCount,
		Nodes:    sol.Nodes,
		Valid:    true,
		Comment:  sol.Comment,
	}
	if sol.LBound > 0 {
		s.Gap = math.Round((float64(sol.Obj-sol.LBound)/float64(sol.LBound))*1000) / 1000.0
	}
	jobs, err := inst.Jobs()
	if err != nil {
		return s, err
	}
	if len(sol.Order) > 0 && sol.Strategy != RESOLVER_SCHRAGE_PMTN {
		if valid, comment := CheckSolutionValidity(jobs, sol.Order, sol.Obj); !valid {
			s.Valid = false
			s.Comment = fmt.Sprintf("%s %s", s.Comment, comment)
		}
	}
	return s, nil
}

func (s Summary) CSV() string {
	return fmt.Sprintf("%s,%t,%s,%d,%d,%.4f,%d,%d,%s", s.Name, s.Optimal, s.Time, s.Obj, s.LBound, s.Gap, s.JobCount, s.Nodes, s.Comment)
}

const SummaryHeader = "Name,Optimal,Time,CMax_Obj,LBound,Gap,JobCount,Nodes,Comment"
