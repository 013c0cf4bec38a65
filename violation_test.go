package iterprobe_test

import (
	"errors"
	"sync"
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/iterprobe"
	"go.llib.dev/iterprobe/internal/sandbox"
)

// makeStale returns a stale iterator instance:
// a copy whose sibling advanced after the copy was made.
func makeStale(tb testing.TB) *iterprobe.SinglePassIterator[int] {
	tb.Helper()
	it := iterprobe.SinglePass([]int{1, 2, 3}, 0)
	tb.Cleanup(func() { _ = it.Close() })
	cp := it.Clone()
	tb.Cleanup(func() { _ = cp.Close() })
	it.Next()
	return cp
}

func TestViolation(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("it is an error that unwraps to ErrStaleIteratorUse", func(t *testcase.T) {
		rec := iterprobe.StubViolations(t)
		_ = makeStale(t).Value()

		v, ok := rec.Last()
		assert.True(t, ok)
		var asErr error = v
		assert.ErrorIs(t, asErr, iterprobe.ErrStaleIteratorUse)
	})

	s.Test("it names the operation, the lineage and the counters", func(t *testcase.T) {
		rec := iterprobe.StubViolations(t)
		_ = makeStale(t).Value()

		v, ok := rec.Last()
		assert.True(t, ok)
		assert.Equal(t, "Value", v.Op)
		assert.Equal(t, uint64(0), v.Stamp)
		assert.Equal(t, uint64(1), v.Epoch)
		assert.Contain(t, v.Error(), v.Lineage.String())
		assert.Contain(t, v.Error(), iterprobe.ErrStaleIteratorUse.Error())
	})

	s.Test("the default sink panics at the point of misuse", func(t *testcase.T) {
		stale := makeStale(t)

		o := sandbox.Run(func() { _ = stale.Value() })

		assert.True(t, o.Panic)
		_, ok := o.PanicValue.(iterprobe.Violation)
		assert.True(t, ok)
	})

	s.Test("a replaced sink receives the violations synchronously", func(t *testcase.T) {
		var got []iterprobe.Violation
		restore := iterprobe.HandleViolations(func(v iterprobe.Violation) {
			got = append(got, v)
		})
		defer restore()

		stale := makeStale(t)
		_ = stale.Value()
		stale.Next()

		assert.Equal(t, 2, len(got))
		assert.Equal(t, "Value", got[0].Op)
		assert.Equal(t, "Next", got[1].Op)
	})

	s.Test("restore puts the previous sink back", func(t *testcase.T) {
		stale := makeStale(t)

		restore := iterprobe.HandleViolations(func(iterprobe.Violation) {})
		_ = stale.Value() // swallowed
		restore()

		o := sandbox.Run(func() { _ = stale.Value() })
		assert.True(t, o.Panic, "after restore the default panicking sink is active again")
	})

	s.Test("when the sink returns, the failed operation yields zero values", func(t *testcase.T) {
		iterprobe.StubViolations(t)

		stale := makeStale(t)

		assert.Equal(t, 0, stale.Value())
		assert.Nil(t, stale.Clone())
		assert.False(t, stale.Eq(stale))
	})

	s.Test("the recorder tolerates violations reported from concurrent workers", func(t *testcase.T) {
		const workers = 32
		rec := iterprobe.StubViolations(t)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				it := iterprobe.SinglePass([]int{1, 2}, 0)
				defer it.Close()
				cp := it.Clone()
				defer cp.Close()
				it.Next()
				_ = cp.Value()
			}()
		}
		wg.Wait()

		assert.Equal(t, workers, rec.Count())
		for _, v := range rec.Violations() {
			assert.True(t, errors.Is(v, iterprobe.ErrStaleIteratorUse))
		}
	})

	s.Test("the recorder starts empty", func(t *testcase.T) {
		rec := iterprobe.StubViolations(t)
		assert.Equal(t, 0, rec.Count())
		_, ok := rec.Last()
		assert.False(t, ok)
		assert.Empty(t, rec.Violations())
	})
}
