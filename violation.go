package iterprobe

import (
	"fmt"
	"sync"

	uuid "github.com/satori/go.uuid"

	"go.llib.dev/iterprobe/pkg/errorkit"
)

// ErrStaleIteratorUse is the error cause of every Violation.
// It signals that an operation was attempted on a single-pass iterator
// whose stamp no longer matches the current epoch of its lineage,
// because a sibling copy advanced after this instance was stamped.
const ErrStaleIteratorUse errorkit.Error = "iterprobe: use of a stale single-pass iterator"

// Violation describes a detected misuse of a single-pass iterator.
// It is a programming-contract violation in the code under test,
// not a recoverable runtime condition.
type Violation struct {
	// Op is the operation that was attempted on the stale iterator.
	Op string
	// Lineage identifies which iterator family the stale instance belongs to.
	Lineage uuid.UUID
	// Stamp is the epoch value the stale instance last observed as current.
	Stamp uint64
	// Epoch is the current epoch of the lineage at the time of misuse.
	Epoch uint64
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s on lineage %s (stamp: %d, epoch: %d)",
		ErrStaleIteratorUse.Error(), v.Op, v.Lineage, v.Stamp, v.Epoch)
}

func (v Violation) Unwrap() error { return ErrStaleIteratorUse }

// Handler is the sink that receives detected contract violations.
//
// The default handler panics with the Violation, halting the offending test
// at the point of misuse. A replacement handler that returns normally makes
// the failed operation degrade into a no-op yielding zero values;
// anything the code under test does with those values is unspecified.
type Handler func(Violation)

var violationSink struct {
	mutex   sync.RWMutex
	handler Handler
}

// HandleViolations replaces the violation sink, and returns a function that restores the previous one.
func HandleViolations(h Handler) (restore func()) {
	violationSink.mutex.Lock()
	defer violationSink.mutex.Unlock()
	og := violationSink.handler
	violationSink.handler = h
	return func() {
		violationSink.mutex.Lock()
		defer violationSink.mutex.Unlock()
		violationSink.handler = og
	}
}

func reportViolation(v Violation) {
	violationSink.mutex.RLock()
	h := violationSink.handler
	violationSink.mutex.RUnlock()
	if h == nil {
		panic(v)
	}
	h(v)
}

type testingTB interface {
	Helper()
	Cleanup(func())
}

// StubViolations replaces the violation sink for the duration of a test
// with one that records the received violations instead of panicking.
// StubViolations will restore the previous sink after the test.
func StubViolations(tb testingTB) *ViolationRecorder {
	tb.Helper()
	rec := &ViolationRecorder{}
	tb.Cleanup(HandleViolations(rec.record))
	return rec
}

// ViolationRecorder collects the violations a stubbed sink received.
// It is safe for concurrent use.
type ViolationRecorder struct {
	mutex      sync.Mutex
	violations []Violation
}

func (r *ViolationRecorder) record(v Violation) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.violations = append(r.violations, v)
}

// Violations returns a copy of the recorded violations in order of occurrence.
func (r *ViolationRecorder) Violations() []Violation {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]Violation(nil), r.violations...)
}

// Count returns how many violations were recorded so far.
func (r *ViolationRecorder) Count() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.violations)
}

// Last returns the most recently recorded violation.
func (r *ViolationRecorder) Last() (Violation, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if len(r.violations) == 0 {
		return Violation{}, false
	}
	return r.violations[len(r.violations)-1], true
}
