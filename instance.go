package rpq

import (
	"bufio"
	"encoding/json"
	"io"
	"io/ioutil"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

func NewInstance(name string, jobs JobSet) *RPQInstance {
	return &RPQInstance{
		Name:       name,
		Type:       INSTANCE_TYPE,
		JobCount:   len(jobs),
		Release:    jobs.Release(),
		Processing: jobs.Processing(),
		Delivery:   jobs.Delivery(),
	}
}

func (inst *RPQInstance) Jobs() (JobSet, error) {
	jobs, err := NewJobSet(inst.Release, inst.Processing, inst.Delivery)
	if err != nil {
		return nil, errors.Wrapf(err, "instance %s", inst.Name)
	}
	if inst.JobCount != 0 && inst.JobCount != len(jobs) {
		return nil, errors.Wrapf(ErrInvalidJobSet, "instance %s declares %d jobs but lists %d", inst.Name, inst.JobCount, len(jobs))
	}
	return jobs, nil
}

// LoadFile reads a json instance, or the plain "n 3" followed by "r p q"
// lines format for any other extension.
func LoadFile(fileName string) (*RPQInstance, error) {
	if strings.HasSuffix(fileName, ".json") {
		raw, err := ioutil.ReadFile(fileName)
		if err != nil {
			return nil, err
		}
		inst := &RPQInstance{}
		if err := json.Unmarshal(raw, inst); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", fileName)
		}
		if inst.Name == "" {
			inst.Name = baseName(fileName)
		}
		return inst, nil
	}

	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	jobs, err := ParseText(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", fileName)
	}
	return NewInstance(baseName(fileName), jobs), nil
}

// ParseText reads the plain text format. The header holds the job count and
// optionally the column count, which must be 3.
func ParseText(r io.Reader) (JobSet, error) {
	sc := bufio.NewScanner(r)
	var header []string
	for len(header) == 0 && sc.Scan() {
		header = strings.Fields(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(header) == 0 {
		return nil, ErrEmptyInput
	}
	if len(header) > 2 {
		return nil, errors.Wrapf(ErrInvalidJobSet, "header must be \"n\" or \"n 3\", got %q", strings.Join(header, " "))
	}
	n, err := strconv.Atoi(header[0])
	if err != nil || n < 0 {
		return nil, errors.Wrapf(ErrInvalidJobSet, "invalid job count %q", header[0])
	}
	if len(header) == 2 && header[1] != "3" {
		return nil, errors.Wrapf(ErrInvalidJobSet, "expected 3 columns, header says %s", header[1])
	}

	rel, p, q := make([]int, 0, n), make([]int, 0, n), make([]int, 0, n)
	for len(rel) < n && sc.Scan() {
		line := strings.Fields(sc.Text())
		if len(line) == 0 {
			continue
		}
		if len(line) != 3 {
			return nil, errors.Wrapf(ErrInvalidJobSet, "job %d: expected 3 values, got %d", len(rel), len(line))
		}
		vals := make([]int, 3)
		for i, tok := range line {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, errors.Wrapf(ErrInvalidJobSet, "job %d: token %q is not an integer", len(rel), tok)
			}
			vals[i] = v
		}
		rel = append(rel, vals[0])
		p = append(p, vals[1])
		q = append(q, vals[2])
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(rel) != n {
		return nil, errors.Wrapf(ErrInvalidJobSet, "header says %d jobs, found %d", n, len(rel))
	}
	return NewJobSet(rel, p, q)
}

// RandomInstance draws r, p and q uniformly from [minValue, maxValue).
func RandomInstance(name string, n, minValue, maxValue int, rng *rand.Rand) (*RPQInstance, error) {
	if rng == nil {
		return nil, errors.Wrap(ErrInvalidOption, "random generator is nil")
	}
	if n <= 0 {
		return nil, ErrEmptyInput
	}
	if minValue < 0 || maxValue <= minValue {
		return nil, errors.Wrapf(ErrInvalidOption, "invalid value range [%d,%d)", minValue, maxValue)
	}
	r, p, q := make([]int, n), make([]int, n), make([]int, n)
	span := maxValue - minValue
	for i := 0; i < n; i++ {
		r[i] = minValue + rng.Intn(span)
		p[i] = minValue + rng.Intn(span)
		q[i] = minValue + rng.Intn(span)
	}
	jobs, err := NewJobSet(r, p, q)
	if err != nil {
		return nil, err
	}
	return NewInstance(name, jobs), nil
}

func MarshalInstance(inst *RPQInstance) ([]byte, error) {
	jsonInst, err := json.MarshalIndent(inst, "", "\t")
	if err != nil {
		return nil, err
	}
	return []byte(SanitizeJsonArrayLineBreaks(string(jsonInst))), nil
}

func WriteInstance(fileName string, inst *RPQInstance) error {
	jsonInst, err := MarshalInstance(inst)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(fileName, jsonInst, 0644)
}

func baseName(fileName string) string {
	name := fileName
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".json")
}
