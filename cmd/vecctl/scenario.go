package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/rawvec/vector"
	"github.com/joshuapare/rawvec/vector/elem/elemtest"
)

// Scenario is a scripted sequence of vector operations loaded from YAML:
//
//	name: strong guarantee on growth
//	element:
//	  nofail_move: false
//	steps:
//	  - op: push
//	    values: [1, 2, 3, 4]
//	  - op: insert
//	    index: 1
//	    value: 9
//	    fail: {op: copy, at: 3}
type Scenario struct {
	Name    string        `yaml:"name"`
	Element ElementConfig `yaml:"element"`
	Steps   []Step        `yaml:"steps"`
}

// ElementConfig declares the capabilities of the probe elements.
type ElementConfig struct {
	NoFailMove bool `yaml:"nofail_move"`
	NoCopy     bool `yaml:"no_copy"`
}

// Step is one operation. Which fields apply depends on Op.
type Step struct {
	Op     string   `yaml:"op"`
	Value  int      `yaml:"value"`
	Values []int    `yaml:"values"`
	Index  int      `yaml:"index"`
	N      int      `yaml:"n"`
	Fail   *Failure `yaml:"fail"`
}

// Failure injects an error into the at-th call of a lifecycle hook during
// the step.
type Failure struct {
	Op string `yaml:"op"`
	At int    `yaml:"at"`
}

// StepResult is the state after a step.
type StepResult struct {
	Step        int    `json:"step"`
	Op          string `json:"op"`
	Len         int    `json:"len"`
	Cap         int    `json:"cap"`
	Values      []int  `json:"values"`
	Relocations int    `json:"relocations"`
	Error       string `json:"error,omitempty"`
}

// Report is the outcome of a whole scenario.
type Report struct {
	Name       string       `json:"name"`
	Policy     string       `json:"policy"`
	Steps      []StepResult `json:"steps"`
	Leaked     int          `json:"leaked"`
	Violations []string     `json:"violations,omitempty"`
}

var errUnknownOp = errors.New("unknown op")

var knownOps = map[string]bool{
	"push": true, "pop": true, "reserve": true, "resize": true,
	"insert": true, "erase": true, "assign": true, "clone": true,
	"swap": true, "release": true,
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a YAML scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	for i, st := range sc.Steps {
		if !knownOps[st.Op] {
			return nil, fmt.Errorf("step %d: %w %q", i+1, errUnknownOp, st.Op)
		}
		if st.Fail != nil {
			if _, err := elemtest.ParseOp(st.Fail.Op); err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
			if st.Fail.At < 1 {
				return nil, fmt.Errorf("step %d: fail.at must be >= 1", i+1)
			}
		}
	}
	return &sc, nil
}

// Runner executes steps against a vector of probes.
type Runner struct {
	tr  *elemtest.Tracker
	v   *vector.Vector[elemtest.Probe]
	log *slog.Logger
}

// NewRunner returns a Runner over an empty vector.
func NewRunner(cfg ElementConfig, logger *slog.Logger) *Runner {
	tr := elemtest.NewTracker()
	tr.NoFailMove = cfg.NoFailMove
	tr.NoCopy = cfg.NoCopy
	r := &Runner{tr: tr, log: logger}
	r.v = r.newVector()
	return r
}

func (r *Runner) newVector() *vector.Vector[elemtest.Probe] {
	return vector.New(&vector.Options[elemtest.Probe]{Lifecycle: r.tr, Logger: r.log})
}

// Run executes every step of sc and releases the vector.
func (r *Runner) Run(sc *Scenario) *Report {
	rep := &Report{Name: sc.Name, Policy: r.v.Policy().String()}
	for i, st := range sc.Steps {
		res := r.Apply(st)
		res.Step = i + 1
		rep.Steps = append(rep.Steps, res)
	}
	r.v.Release()
	rep.Leaked = r.tr.Live()
	rep.Violations = r.tr.Violations()
	return rep
}

// Apply executes one step and reports the resulting state.
func (r *Runner) Apply(st Step) StepResult {
	r.tr.ResetCounts()
	if st.Fail != nil {
		op, _ := elemtest.ParseOp(st.Fail.Op)
		r.tr.FailOn(op, st.Fail.At)
	}

	err := r.apply(st)
	if err != nil {
		r.log.Debug("step failed", "op", st.Op, "error", err)
	}

	res := StepResult{
		Op:          st.Op,
		Len:         r.v.Len(),
		Cap:         r.v.Cap(),
		Values:      probeValues(r.v),
		Relocations: r.tr.Relocations(),
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

func (r *Runner) apply(st Step) error {
	v := r.v
	switch st.Op {
	case "push":
		vals := st.Values
		if vals == nil {
			vals = []int{st.Value}
		}
		for _, x := range vals {
			p := r.tr.Make(x)
			err := v.PushBackMove(&p)
			r.tr.Drop(&p)
			if err != nil {
				return err
			}
		}
		return nil
	case "pop":
		v.PopBack()
		return nil
	case "reserve":
		return v.Reserve(st.N)
	case "resize":
		return v.Resize(st.N)
	case "insert":
		if err := r.checkIndex(st.Index, v.Len()); err != nil {
			return err
		}
		p := r.tr.Make(st.Value)
		defer r.tr.Drop(&p)
		_, err := v.Insert(v.CursorAt(st.Index), p)
		return err
	case "erase":
		if err := r.checkIndex(st.Index, v.Len()); err != nil {
			return err
		}
		_, err := v.Erase(v.CursorAt(st.Index))
		return err
	case "assign":
		src, err := r.build(st.Values)
		if err != nil {
			return err
		}
		defer src.Release()
		return v.Assign(src)
	case "clone":
		cp, err := v.Clone()
		if err != nil {
			return err
		}
		cp.Release()
		return nil
	case "swap":
		other, err := r.build(st.Values)
		if err != nil {
			return err
		}
		v.Swap(other)
		other.Release()
		return nil
	case "release":
		v.Release()
		return nil
	default:
		return fmt.Errorf("%w %q", errUnknownOp, st.Op)
	}
}

// checkIndex rejects positions the vector would treat as a contract violation.
func (r *Runner) checkIndex(i, n int) error {
	if i < 0 || i > n {
		return fmt.Errorf("index %d out of range [0,%d]", i, n)
	}
	return nil
}

// build returns a new vector holding vals, with no failure injected.
func (r *Runner) build(vals []int) (*vector.Vector[elemtest.Probe], error) {
	out := r.newVector()
	if err := out.Reserve(len(vals)); err != nil {
		return nil, err
	}
	for _, x := range vals {
		_, err := out.EmplaceBack(func(p *elemtest.Probe) error {
			*p = r.tr.Make(x)
			return nil
		})
		if err != nil {
			out.Release()
			return nil, err
		}
	}
	return out, nil
}

func probeValues(v *vector.Vector[elemtest.Probe]) []int {
	out := make([]int, 0, v.Len())
	for p := range v.Values() {
		out = append(out, p.Value)
	}
	return out
}
