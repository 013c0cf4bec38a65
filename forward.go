package iterprobe

// Forward returns a forward iterator probe standing on buf[pos].
// pos == len(buf) is the one-past-end position.
//
// Forward iterators support repeatable, independent traversal:
// copies never interfere with each other, so an algorithm may keep a copy
// and traverse the range again from it.
func Forward[T any](buf []T, pos int) *ForwardIterator[T] {
	return &ForwardIterator[T]{buf: buf, pos: pos}
}

// ForwardIterator is an iterator probe that models the forward iterator
// category. It holds no shared state and has no invalidation rules.
type ForwardIterator[T any] struct {
	buf []T
	pos int
}

// Value returns the current element by value.
func (it *ForwardIterator[T]) Value() T { return it.buf[it.pos] }

// At returns a mutable reference to the current element.
// Dereferencing the one-past-end position is the caller's responsibility.
func (it *ForwardIterator[T]) At() *T { return &it.buf[it.pos] }

// Next advances the iterator by one element and returns it.
func (it *ForwardIterator[T]) Next() *ForwardIterator[T] {
	it.pos++
	return it
}

// Eq reports whether both iterators stand on the same position.
// Comparing probes of two different buffers is undefined.
func (it *ForwardIterator[T]) Eq(oth *ForwardIterator[T]) bool { return it.pos == oth.pos }

// Clone returns an independent copy; advancing either side leaves the other intact.
func (it *ForwardIterator[T]) Clone() *ForwardIterator[T] {
	c := *it
	return &c
}

// Close is a no-op, the probe holds no shared state.
func (it *ForwardIterator[T]) Close() error { return nil }

// Category returns CategoryForward.
func (it *ForwardIterator[T]) Category() Category { return CategoryForward }
