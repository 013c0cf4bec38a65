package iterprobe

// Random returns a mutable random-access iterator probe standing on buf[pos].
// pos == len(buf) is the one-past-end position.
func Random[T any](buf []T, pos int) *RandomAccessIterator[T] {
	return &RandomAccessIterator[T]{buf: buf, pos: pos}
}

// RandomAccessIterator is an iterator probe that models the random-access
// iterator category over a contiguous buffer. All operations are O(1),
// there is no shared state and no invalidation tracking.
type RandomAccessIterator[T any] struct {
	buf []T
	pos int
}

// Value returns the current element by value.
func (it *RandomAccessIterator[T]) Value() T { return it.buf[it.pos] }

// At returns a mutable reference to the current element.
// Dereferencing the one-past-end position is the caller's responsibility.
func (it *RandomAccessIterator[T]) At() *T { return &it.buf[it.pos] }

// Next advances the iterator by one element and returns it.
func (it *RandomAccessIterator[T]) Next() *RandomAccessIterator[T] {
	it.pos++
	return it
}

// Eq reports whether both iterators stand on the same position.
// Comparing probes of two different buffers is undefined.
func (it *RandomAccessIterator[T]) Eq(oth *RandomAccessIterator[T]) bool { return it.pos == oth.pos }

// Ne reports whether the iterators stand on different positions.
func (it *RandomAccessIterator[T]) Ne(oth *RandomAccessIterator[T]) bool { return it.pos != oth.pos }

// Diff returns the signed distance between the receiver and oth.
func (it *RandomAccessIterator[T]) Diff(oth *RandomAccessIterator[T]) int { return it.pos - oth.pos }

// Add returns a new iterator standing n elements after the receiver.
func (it *RandomAccessIterator[T]) Add(n int) *RandomAccessIterator[T] {
	return &RandomAccessIterator[T]{buf: it.buf, pos: it.pos + n}
}

// Less reports whether the receiver precedes oth.
func (it *RandomAccessIterator[T]) Less(oth *RandomAccessIterator[T]) bool { return it.pos < oth.pos }

// Clone returns an independent copy of the iterator.
func (it *RandomAccessIterator[T]) Clone() *RandomAccessIterator[T] {
	c := *it
	return &c
}

// Close is a no-op, the probe holds no shared state.
func (it *RandomAccessIterator[T]) Close() error { return nil }

// Category returns CategoryRandomAccess.
func (it *RandomAccessIterator[T]) Category() Category { return CategoryRandomAccess }

// ConstRandom returns a read-only random-access iterator probe standing on buf[pos].
// pos == len(buf) is the one-past-end position.
func ConstRandom[T any](buf []T, pos int) *ConstRandomAccessIterator[T] {
	return &ConstRandomAccessIterator[T]{buf: buf, pos: pos}
}

// ConstRandomAccessIterator is the read-only variant of RandomAccessIterator.
// It intentionally exposes no mutable access to the underlying buffer,
// which guards against mutation at compile time.
type ConstRandomAccessIterator[T any] struct {
	buf []T
	pos int
}

// Value returns the current element by value.
func (it *ConstRandomAccessIterator[T]) Value() T { return it.buf[it.pos] }

// Next advances the iterator by one element and returns it.
func (it *ConstRandomAccessIterator[T]) Next() *ConstRandomAccessIterator[T] {
	it.pos++
	return it
}

// Eq reports whether both iterators stand on the same position.
// Comparing probes of two different buffers is undefined.
func (it *ConstRandomAccessIterator[T]) Eq(oth *ConstRandomAccessIterator[T]) bool {
	return it.pos == oth.pos
}

// Ne reports whether the iterators stand on different positions.
func (it *ConstRandomAccessIterator[T]) Ne(oth *ConstRandomAccessIterator[T]) bool {
	return it.pos != oth.pos
}

// Diff returns the signed distance between the receiver and oth.
func (it *ConstRandomAccessIterator[T]) Diff(oth *ConstRandomAccessIterator[T]) int {
	return it.pos - oth.pos
}

// Add returns a new iterator standing n elements after the receiver.
func (it *ConstRandomAccessIterator[T]) Add(n int) *ConstRandomAccessIterator[T] {
	return &ConstRandomAccessIterator[T]{buf: it.buf, pos: it.pos + n}
}

// Less reports whether the receiver precedes oth.
func (it *ConstRandomAccessIterator[T]) Less(oth *ConstRandomAccessIterator[T]) bool {
	return it.pos < oth.pos
}

// Clone returns an independent copy of the iterator.
func (it *ConstRandomAccessIterator[T]) Clone() *ConstRandomAccessIterator[T] {
	c := *it
	return &c
}

// Close is a no-op, the probe holds no shared state.
func (it *ConstRandomAccessIterator[T]) Close() error { return nil }

// Category returns CategoryConstRandomAccess.
func (it *ConstRandomAccessIterator[T]) Category() Category { return CategoryConstRandomAccess }
