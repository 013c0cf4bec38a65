// Package iterprobe provides iterator adaptors ("probes") for exercising
// generic algorithms against different iterator capability levels.
//
// # Summary
//
// Generic algorithms are commonly specified against an iterator capability
// level rather than a concrete container: an algorithm written for forward
// iterators must not rely on random access, and an algorithm written for
// single-pass iterators must not read through a copy made before an advance.
// Writing a container per capability level just to test this is wasteful.
// Instead, iterprobe wraps a plain buffer into an adaptor that behaves
// exactly like the capability level it declares, so a test can hand the
// algorithm under test an iterator pair of the weakest category it claims to
// support.
//
// The single-pass probe is the interesting one: it detects use of a stale
// copy through a shared epoch counter and reports it as a contract
// violation, turning a documented but easy-to-break usage rule into a
// checked invariant.
//
// # Resources
//
// https://en.wikipedia.org/wiki/Iterator_pattern
package iterprobe

import "iter"

// Category is the capability level an iterator probe declares.
// It is a static property of the probe type; generic test code can use it
// to select behaviour appropriate for the category under test.
type Category string

const (
	// CategorySinglePass marks single-pass (input) iterators.
	// Only one forward traversal is permitted per lineage;
	// reading through an old copy after an advance is illegal use.
	CategorySinglePass Category = "single-pass"
	// CategoryForward marks forward iterators.
	// Copies traverse independently and never interfere.
	CategoryForward Category = "forward"
	// CategoryRandomAccess marks mutable random-access iterators.
	CategoryRandomAccess Category = "random-access"
	// CategoryConstRandomAccess marks read-only random-access iterators.
	CategoryConstRandomAccess Category = "const-random-access"
)

// InputCapable is the operation surface a single-pass (input) iterator probe
// guarantees. The type parameter I is the concrete probe type itself,
// which allows generic algorithms to accept any capability level
// at or above single-pass:
//
//	func count[T any, I iterprobe.InputCapable[I, T]](first, last I) int
type InputCapable[I, T any] interface {
	// Value returns the current element by value.
	Value() T
	// Next advances the iterator by one element and returns it.
	Next() I
	// Eq reports whether both iterators stand on the same position.
	Eq(I) bool
	// Clone returns an independent copy of the iterator.
	// For single-pass probes the copy shares the lineage of its origin,
	// and advancing either one invalidates the other.
	Clone() I
	// Close releases any shared state held by the iterator.
	// Probes without shared state simply return nil.
	Close() error
	// Category tells the capability level of the probe.
	Category() Category
}

// ForwardCapable is the operation surface of a forward iterator probe.
// On top of the single-pass surface it permits mutable access
// and repeated traversal from any copy.
type ForwardCapable[I, T any] interface {
	InputCapable[I, T]
	// At returns a mutable reference to the current element.
	At() *T
}

// RandomCapable is the operation surface of a mutable random-access
// iterator probe.
type RandomCapable[I, T any] interface {
	ForwardCapable[I, T]
	// Ne reports whether the iterators stand on different positions.
	Ne(I) bool
	// Diff returns the signed distance between the two iterators.
	Diff(I) int
	// Add returns a new iterator offset by n elements.
	Add(n int) I
	// Less reports whether the iterator precedes the other one.
	Less(I) bool
}

// ConstRandomCapable is the operation surface of a read-only random-access
// iterator probe. It is the random-access surface without mutable access;
// the missing At method is what prevents mutation at compile time.
type ConstRandomCapable[I, T any] interface {
	InputCapable[I, T]
	Ne(I) bool
	Diff(I) int
	Add(n int) I
	Less(I) bool
}

var _ InputCapable[*SinglePassIterator[int], int] = (*SinglePassIterator[int])(nil)
var _ ForwardCapable[*ForwardIterator[int], int] = (*ForwardIterator[int])(nil)
var _ RandomCapable[*RandomAccessIterator[int], int] = (*RandomAccessIterator[int])(nil)
var _ ConstRandomCapable[*ConstRandomAccessIterator[int], int] = (*ConstRandomAccessIterator[int])(nil)

// Values bridges a [first, last) probe pair into an iter.Seq.
// Each traversal walks a fresh copy of first, so probes of the forward
// category and above can be ranged over repeatedly. When first is a
// single-pass probe the sequence is single-use: the first traversal
// invalidates first's lineage, and ranging again is reported as a
// stale-use violation.
//
// The element type is not inferrable from the probe type,
// so it has to be spelled out:
//
//	for v := range iterprobe.Values[int](first, last) { ... }
func Values[T any, I InputCapable[I, T]](first, last I) iter.Seq[T] {
	return func(yield func(T) bool) {
		it := first.Clone()
		var zero I
		if any(it) == any(zero) {
			// cloning a stale single-pass probe already reported the violation
			return
		}
		defer it.Close()
		for ; !it.Eq(last); it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}
