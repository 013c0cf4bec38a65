package iterprobe

import (
	"sync/atomic"

	uuid "github.com/satori/go.uuid"
)

// SinglePass returns a single-pass (input) iterator probe standing on buf[pos].
// pos == len(buf) is the one-past-end position.
//
// The probe establishes a fresh lineage: the set of all instances descended
// from it by Clone or Set share one epoch cell, and advancing any one of them
// invalidates every other live instance of the lineage. Using a stale
// instance is reported as a Violation at the point of misuse.
//
// Call Close on every instance once it is no longer needed,
// so the lineage cell is released exactly once per surviving reference.
func SinglePass[T any](buf []T, pos int) *SinglePassIterator[T] {
	return &SinglePassIterator[T]{buf: buf, pos: pos, cell: newLineage()}
}

// SinglePassIterator is an iterator probe that models the single-pass
// (input) iterator category: only one forward traversal is permitted,
// and reading through a copy made before a later advance is illegal use.
type SinglePassIterator[T any] struct {
	buf []T
	pos int
	// cell is shared by every instance of the lineage. nil after Close.
	cell *lineage
	// stamp is the epoch value this instance last observed as current.
	stamp uint64
}

// Valid reports whether the instance may still be used.
// An instance is valid while its stamp equals the current epoch of its
// lineage, that is, while no sibling copy advanced since it was stamped.
func (it *SinglePassIterator[T]) Valid() bool {
	return it.cell != nil && it.stamp == it.cell.epoch.Load()
}

// Value returns the current element by value.
// Single-pass iterators give no mutable access to the underlying buffer.
func (it *SinglePassIterator[T]) Value() T {
	if !it.check("Value") {
		var zero T
		return zero
	}
	return it.buf[it.pos]
}

// Next advances the iterator by one element and returns it.
// The advance bumps the lineage epoch, so every other live instance of the
// lineage becomes stale from this point on; the receiver remains valid.
func (it *SinglePassIterator[T]) Next() *SinglePassIterator[T] {
	if !it.check("Next") {
		return it
	}
	it.pos++
	it.stamp++
	it.cell.epoch.Add(1)
	return it
}

// Clone returns a copy of the iterator. The copy adopts the lineage of its
// origin, and both stay valid until either of them advances.
// Cloning a stale instance is a contract violation.
func (it *SinglePassIterator[T]) Clone() *SinglePassIterator[T] {
	if !it.check("Clone") {
		return nil
	}
	it.cell.acquire()
	return &SinglePassIterator[T]{buf: it.buf, pos: it.pos, cell: it.cell, stamp: it.stamp}
}

// Set assigns oth to the receiver and returns the receiver.
// Assigning within the same lineage only moves the position and the stamp.
// Assigning across lineages releases the receiver's current lineage
// and adopts the lineage of oth. Assigning from a stale instance is a
// contract violation.
func (it *SinglePassIterator[T]) Set(oth *SinglePassIterator[T]) *SinglePassIterator[T] {
	if !oth.check("Set") {
		return it
	}
	it.buf = oth.buf
	it.pos = oth.pos
	it.stamp = oth.stamp
	if it.cell == oth.cell {
		return it
	}
	if it.cell != nil {
		it.cell.release()
	}
	it.cell = oth.cell
	it.cell.acquire()
	return it
}

// Eq reports whether both iterators stand on the same position.
// Both operands must be valid; comparing a stale instance is a contract
// violation even when the positions would otherwise compare equal.
// Comparing probes of two different buffers is undefined,
// mirroring raw pointer comparison rules.
func (it *SinglePassIterator[T]) Eq(oth *SinglePassIterator[T]) bool {
	ok := it.check("Eq")
	if !oth.check("Eq") || !ok {
		return false
	}
	return it.pos == oth.pos
}

// Close releases the instance's reference on the lineage cell.
// The cell is freed when the last reference is gone. Close is idempotent,
// and closing a stale instance is not a violation: destruction is always legal.
func (it *SinglePassIterator[T]) Close() error {
	if it.cell == nil {
		return nil
	}
	it.cell.release()
	it.cell = nil
	return nil
}

// Category returns CategorySinglePass.
func (it *SinglePassIterator[T]) Category() Category { return CategorySinglePass }

// check reports a Violation when the instance is stale or closed.
// It returns whether the operation may proceed.
func (it *SinglePassIterator[T]) check(op string) bool {
	if it.cell == nil {
		reportViolation(Violation{Op: op, Stamp: it.stamp})
		return false
	}
	if epoch := it.cell.epoch.Load(); it.stamp != epoch {
		reportViolation(Violation{Op: op, Lineage: it.cell.id, Stamp: it.stamp, Epoch: epoch})
		return false
	}
	return true
}

// lineage is the reference counted cell shared by every instance descended
// from one originally constructed SinglePassIterator.
//
// The counters are atomic so independent lineages can be driven from
// concurrent test workers. Instances of one lineage are meant to be used
// from a single logical thread of control at a time; racing on the same
// lineage is misuse of the probe, not a supported pattern.
type lineage struct {
	id    uuid.UUID
	epoch atomic.Uint64
	refs  atomic.Int64
}

func newLineage() *lineage {
	l := &lineage{id: uuid.NewV4()}
	l.refs.Store(1)
	return l
}

func (l *lineage) acquire() { l.refs.Add(1) }

func (l *lineage) release() {
	// the garbage collector frees the cell once the last reference is dropped;
	// the count going negative would mean a release without a matching reference
	l.refs.Add(-1)
}
