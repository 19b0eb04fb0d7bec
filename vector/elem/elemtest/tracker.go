// Package elemtest provides an instrumented element lifecycle for testing
// containers: it counts every hook call, injects failures on demand and
// checks that no element is constructed twice, destroyed twice or leaked.
package elemtest

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/joshuapare/rawvec/vector/elem"
)

// ErrInjected is returned by a hook whose failure was requested with FailOn.
var ErrInjected = errors.New("elemtest: injected failure")

// Op identifies a lifecycle hook.
type Op int

const (
	OpConstruct Op = iota
	OpCopy
	OpMove
	OpCopyAssign
	OpMoveAssign
	OpDestroy
	numOps
)

var opNames = [numOps]string{"construct", "copy", "move", "copy-assign", "move-assign", "destroy"}

func (o Op) String() string {
	if o < 0 || o >= numOps {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// ParseOp returns the Op named s (as printed by Op.String).
func ParseOp(s string) (Op, error) {
	for i, name := range opNames {
		if name == s {
			return Op(i), nil
		}
	}
	return 0, fmt.Errorf("elemtest: unknown op %q", s)
}

// Probe is an element with an identity. A raw slot holds the zero Probe;
// every construction assigns a fresh ID, so a live probe is never shared
// between two slots.
type Probe struct {
	ID    uuid.UUID
	Value int
	Moved bool
}

// Tracker is an elem.Lifecycle for Probe values.
type Tracker struct {
	// NoFailMove declares moves infallible, selecting move relocation.
	NoFailMove bool

	// NoCopy disables copying; copy hooks return elem.ErrNotCopyable.
	NoCopy bool

	counts     [numOps]int
	failAt     [numOps]int
	live       map[uuid.UUID]struct{}
	violations []string
}

var (
	_ elem.Lifecycle[Probe] = (*Tracker)(nil)
	_ elem.NoFailMover      = (*Tracker)(nil)
	_ elem.CopyDisabler     = (*Tracker)(nil)
)

// NewTracker returns a Tracker with no live probes and no pending failures.
func NewTracker() *Tracker {
	return &Tracker{live: make(map[uuid.UUID]struct{})}
}

// FailOn makes the nth call of op, counted from now, return ErrInjected.
// n <= 0 cancels a pending failure for op.
func (t *Tracker) FailOn(op Op, n int) {
	if n <= 0 {
		t.failAt[op] = 0
		return
	}
	t.failAt[op] = t.counts[op] + n
}

// Count returns how many times op was called, failed calls included.
func (t *Tracker) Count(op Op) int { return t.counts[op] }

// Relocations returns the number of copy and move constructions.
func (t *Tracker) Relocations() int { return t.counts[OpCopy] + t.counts[OpMove] }

// ResetCounts zeroes the call counters and cancels pending failures.
func (t *Tracker) ResetCounts() {
	t.counts = [numOps]int{}
	t.failAt = [numOps]int{}
}

// Live returns the number of probes constructed and not yet destroyed.
func (t *Tracker) Live() int { return len(t.live) }

// Violations returns contract violations seen so far: construction into a
// live slot, use of a raw source, destruction of a raw slot.
func (t *Tracker) Violations() []string { return t.violations }

// Make returns a live probe holding v, as if constructed by the caller.
// It does not count as a hook call.
func (t *Tracker) Make(v int) Probe {
	p := Probe{ID: uuid.New(), Value: v}
	t.live[p.ID] = struct{}{}
	return p
}

// Drop destroys a probe obtained from Make.
func (t *Tracker) Drop(p *Probe) {
	t.release(p, "drop")
}

func (t *Tracker) Construct(dst *Probe) error {
	if err := t.enter(OpConstruct); err != nil {
		return err
	}
	t.checkRaw(dst, OpConstruct)
	t.born(dst, 0)
	return nil
}

func (t *Tracker) CopyConstruct(dst, src *Probe) error {
	if t.NoCopy {
		return elem.ErrNotCopyable
	}
	if err := t.enter(OpCopy); err != nil {
		return err
	}
	t.checkRaw(dst, OpCopy)
	t.checkLive(src, OpCopy)
	t.born(dst, src.Value)
	dst.Moved = src.Moved
	return nil
}

func (t *Tracker) MoveConstruct(dst, src *Probe) error {
	if err := t.enter(OpMove); err != nil {
		return err
	}
	t.checkRaw(dst, OpMove)
	t.checkLive(src, OpMove)
	t.born(dst, src.Value)
	src.Value, src.Moved = 0, true
	return nil
}

func (t *Tracker) CopyAssign(dst, src *Probe) error {
	if t.NoCopy {
		return elem.ErrNotCopyable
	}
	if err := t.enter(OpCopyAssign); err != nil {
		return err
	}
	t.checkLive(dst, OpCopyAssign)
	t.checkLive(src, OpCopyAssign)
	dst.Value, dst.Moved = src.Value, src.Moved
	return nil
}

func (t *Tracker) MoveAssign(dst, src *Probe) error {
	if err := t.enter(OpMoveAssign); err != nil {
		return err
	}
	t.checkLive(dst, OpMoveAssign)
	t.checkLive(src, OpMoveAssign)
	if dst == src {
		return nil
	}
	dst.Value, dst.Moved = src.Value, false
	src.Value, src.Moved = 0, true
	return nil
}

func (t *Tracker) Destroy(p *Probe) {
	t.counts[OpDestroy]++
	t.release(p, OpDestroy.String())
}

// MoveNeverFails reports the NoFailMove declaration.
func (t *Tracker) MoveNeverFails() bool { return t.NoFailMove }

// CopyDisabled reports the NoCopy declaration.
func (t *Tracker) CopyDisabled() bool { return t.NoCopy }

func (t *Tracker) enter(op Op) error {
	t.counts[op]++
	if t.failAt[op] != 0 && t.counts[op] == t.failAt[op] {
		t.failAt[op] = 0
		return fmt.Errorf("%s #%d: %w", op, t.counts[op], ErrInjected)
	}
	return nil
}

func (t *Tracker) born(dst *Probe, v int) {
	*dst = Probe{ID: uuid.New(), Value: v}
	t.live[dst.ID] = struct{}{}
}

func (t *Tracker) release(p *Probe, what string) {
	if _, ok := t.live[p.ID]; !ok {
		t.violations = append(t.violations, fmt.Sprintf("%s of raw slot (value %d)", what, p.Value))
	}
	delete(t.live, p.ID)
	*p = Probe{}
}

func (t *Tracker) checkRaw(dst *Probe, op Op) {
	if dst.ID != uuid.Nil {
		t.violations = append(t.violations, fmt.Sprintf("%s into live slot (value %d)", op, dst.Value))
	}
}

func (t *Tracker) checkLive(p *Probe, op Op) {
	if _, ok := t.live[p.ID]; !ok {
		t.violations = append(t.violations, fmt.Sprintf("%s from raw slot", op))
	}
}
