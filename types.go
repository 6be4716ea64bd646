package rpq

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	STRAT_DFS   = "DFS"
	STRAT_BEST  = "BEST"
	STRAT_BFS   = "BFS"
	ENGINE_LOGN = "LOGN"
	ENGINE_N2   = "N2"

	RESOLVER_SCHRAGE      = "SCHRAGE"
	RESOLVER_SCHRAGE_PMTN = "SCHRAGE_PMTN"
	RESOLVER_CARLIER      = "CARLIER"
	RESOLVER_BRUTEFORCE   = "BRUTEFORCE"
	INSTANCE_TYPE         = "RPQ"
)

// Job is a single task of the 1|r_j,q_j|Cmax problem. Values are never
// modified in place, the branch and bound derives new jobs instead.
type Job struct {
	Index int `json:"index"`
	R     int `json:"r"`
	P     int `json:"p"`
	Q     int `json:"q"`
}

func (j Job) WithRelease(r int) Job {
	j.R = r
	return j
}

func (j Job) WithDelivery(q int) Job {
	j.Q = q
	return j
}

func (j Job) String() string {
	return fmt.Sprintf("%d(r=%d,p=%d,q=%d)", j.Index, j.R, j.P, j.Q)
}

// Ordering is a sequence of job indices together with its objective value.
type Ordering struct {
	Order []int `json:"order"`
	Obj   int   `json:"obj"`
}

func (o Ordering) Equal(other Ordering) bool {
	if len(o.Order) != len(other.Order) {
		return false
	}
	for i := range o.Order {
		if o.Order[i] != other.Order[i] {
			return false
		}
	}
	return true
}

func (o Ordering) Clone() Ordering {
	order := make([]int, len(o.Order))
	copy(order, o.Order)
	return Ordering{Order: order, Obj: o.Obj}
}

type RPQInstance struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
	Type    string `json:"type"`

	JobCount   int   `json:"job_count"`
	Release    []int `json:"release"`
	Processing []int `json:"processing"`
	Delivery   []int `json:"delivery"`

	Solution *RPQSolution `json:"solution,omitempty"`
}

type RPQSolution struct {
	Obj         int   `json:"obj"`
	LBound      int   `json:"lbound"`
	UBound      int   `json:"ubound"`
	Optimal     bool  `json:"optimal"`
	Order       []int `json:"order"`
	Schrage     int   `json:"schrage"`
	SchragePmtn int   `json:"schrage_pmtn"`
	Nodes       int   `json:"nodes"`
	Pruned      int   `json:"pruned"`

	Strategy string  `json:"strategy"`
	RunID    string  `json:"run_id"`
	Time     string  `json:"time"`
	System   SysInfo `json:"system"`
	Comment  string  `json:"comment"`
}

// SysInfo saves the basic system information
type SysInfo struct {
	Platform string
	CPU      string
	RAM      string
}

// ArrayStringFlags collects a repeatable string flag.
type ArrayStringFlags []string

func (a *ArrayStringFlags) String() string {
	return strings.Join(*a, ",")
}

func (a *ArrayStringFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

// ArrayIntFlags collects a repeatable integer flag.
type ArrayIntFlags []int

func (a *ArrayIntFlags) String() string {
	s := make([]string, len(*a))
	for i, v := range *a {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, ",")
}

func (a *ArrayIntFlags) Set(value string) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*a = append(*a, v)
	return nil
}
