// Package iterprobecontract provides contracts that validate iterator probe
// implementations against the behavioural requirements of the iterator
// capability level they declare.
package iterprobecontract

import (
	"errors"
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/iterprobe"
	"go.llib.dev/iterprobe/port/contract"
)

// SinglePass validates single-pass (input) iterator semantics.
//
// mk must return a buffer with at least two elements
// and a fresh probe standing on the buffer's head.
func SinglePass[T any](mk func(tb testing.TB) ([]T, *iterprobe.SinglePassIterator[T])) contract.Contract {
	s := testcase.NewSpec(nil)

	subject := testcase.Let(s, func(t *testcase.T) singlePassSubject[T] {
		vs, probe := mk(t)
		assert.True(t, 2 <= len(vs), "single-pass contract needs a buffer with at least two elements")
		t.Defer(probe.Close)
		return singlePassSubject[T]{Values: vs, Probe: probe}
	})

	s.Then("a freshly made probe is valid and reads the buffer head", func(t *testcase.T) {
		sub := subject.Get(t)
		assert.True(t, sub.Probe.Valid())
		assert.Equal(t, sub.Values[0], sub.Probe.Value())
	})

	s.Then("a copy shares the position and the value of its origin", func(t *testcase.T) {
		sub := subject.Get(t)
		cp := sub.Probe.Clone()
		defer cp.Close()
		assert.True(t, cp.Valid())
		assert.True(t, cp.Eq(sub.Probe))
		assert.Equal(t, sub.Probe.Value(), cp.Value())
	})

	s.Then("advancing one copy invalidates its sibling", func(t *testcase.T) {
		sub := subject.Get(t)
		cp := sub.Probe.Clone()
		defer cp.Close()

		sub.Probe.Next()

		assert.True(t, sub.Probe.Valid(), "the advanced instance must remain the valid one")
		assert.False(t, cp.Valid())

		rec := iterprobe.StubViolations(t)
		_ = cp.Value()
		assert.Equal(t, 1, rec.Count())
		v, ok := rec.Last()
		assert.True(t, ok)
		assert.True(t, errors.Is(v, iterprobe.ErrStaleIteratorUse))
	})

	s.Then("advancing moves the valid instance to the next element", func(t *testcase.T) {
		sub := subject.Get(t)
		sub.Probe.Next()
		assert.True(t, sub.Probe.Valid())
		assert.Equal(t, sub.Values[1], sub.Probe.Value())
	})

	s.Then("closing is idempotent", func(t *testcase.T) {
		sub := subject.Get(t)
		assert.NoError(t, sub.Probe.Close())
		assert.NoError(t, sub.Probe.Close())
	})

	return s.AsSuite("SinglePass")
}

type singlePassSubject[T any] struct {
	Values []T
	Probe  *iterprobe.SinglePassIterator[T]
}

// Forward validates forward iterator semantics for any probe type at or
// above the forward capability level.
//
// mk must return probes standing on the head and on the one-past-end
// position of a buffer with at least two elements, plus the buffer content.
func Forward[I iterprobe.ForwardCapable[I, T], T any](mk func(tb testing.TB) (first, last I, vs []T)) contract.Contract {
	s := testcase.NewSpec(nil)

	subject := testcase.Let(s, func(t *testcase.T) rangeSubject[I, T] {
		first, last, vs := mk(t)
		assert.True(t, 2 <= len(vs), "forward contract needs a buffer with at least two elements")
		return rangeSubject[I, T]{First: first, Last: last, Values: vs}
	})

	s.Then("traversal yields the buffer content", func(t *testcase.T) {
		sub := subject.Get(t)
		var got []T
		for it := sub.First.Clone(); !it.Eq(sub.Last); it.Next() {
			got = append(got, it.Value())
		}
		assert.Equal(t, sub.Values, got)
	})

	s.Then("copies traverse independently", func(t *testcase.T) {
		sub := subject.Get(t)
		it := sub.First.Clone()
		cp := it.Clone()

		for !it.Eq(sub.Last) {
			it.Next()
		}

		assert.Equal(t, sub.Values[0], cp.Value(),
			"a copy made before traversal must still read the original position")

		var again []T
		for ; !cp.Eq(sub.Last); cp.Next() {
			again = append(again, cp.Value())
		}
		assert.Equal(t, sub.Values, again, "a second pass from the copy must be possible")
	})

	s.Then("the mutable reference points at the current element", func(t *testcase.T) {
		sub := subject.Get(t)
		it := sub.First.Clone()
		assert.Equal(t, it.Value(), *it.At())
	})

	return s.AsSuite("Forward")
}

// Random validates the random-access iterator laws. It constrains on the
// read-only random-access surface, so it covers the mutable and the
// read-only probe alike; mutable access is covered by the Forward contract.
func Random[I iterprobe.ConstRandomCapable[I, T], T any](mk func(tb testing.TB) (first, last I, vs []T)) contract.Contract {
	s := testcase.NewSpec(nil)

	subject := testcase.Let(s, func(t *testcase.T) rangeSubject[I, T] {
		first, last, vs := mk(t)
		assert.True(t, 1 <= len(vs), "random-access contract needs a non-empty buffer")
		return rangeSubject[I, T]{First: first, Last: last, Values: vs}
	})

	s.Then("difference equals the buffer length", func(t *testcase.T) {
		sub := subject.Get(t)
		assert.Equal(t, len(sub.Values), sub.Last.Diff(sub.First))
	})

	s.Then("offsetting the head by the buffer length reaches the end", func(t *testcase.T) {
		sub := subject.Get(t)
		assert.True(t, sub.First.Add(len(sub.Values)).Eq(sub.Last))
	})

	s.Then("the head precedes and differs from the end", func(t *testcase.T) {
		sub := subject.Get(t)
		assert.True(t, sub.First.Less(sub.Last))
		assert.True(t, sub.First.Ne(sub.Last))
		assert.False(t, sub.Last.Less(sub.First))
	})

	s.Then("offset addition reaches the expected element", func(t *testcase.T) {
		sub := subject.Get(t)
		n := t.Random.IntB(0, len(sub.Values)-1)
		assert.Equal(t, sub.Values[n], sub.First.Add(n).Value())
	})

	return s.AsSuite("Random")
}

type rangeSubject[I, T any] struct {
	First  I
	Last   I
	Values []T
}
