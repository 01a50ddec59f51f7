// Package smalliter provides a consuming iterator over an owned slice
// that packs its whole state into three machine words.
//
// The obvious representation of "a slice being moved out of" is a slice
// header plus a cursor, which is four machine words. Iter stores the
// allocation start, the remaining element count and the allocation length
// instead, and derives the cursor from the difference of the two counts.
// The price of the smaller footprint is that Iter only walks forward.
//
// An Iter owns its elements and the backing allocation. Elements it already
// yielded belong to the caller; everything still inside must be destroyed by
// Close, which also releases the backing allocation exactly once.
package smalliter

import (
	"fmt"
	"io"
	"unsafe"

	"go.llib.dev/frameless/pkg/errorkit"
)

// From consumes the given slice and returns an iterator that moves out of it.
// The caller relinquishes the slice; using it after the call breaks the
// iterator's exclusive ownership of the elements.
//
// When the slice carries spare capacity, the elements are first copied into an
// exact fit allocation, so the iterator never tracks capacity beyond its
// length. Passing a slice where len(vs) == cap(vs) is free of copies.
func From[T any](vs []T) *Iter[T] {
	return FromSlice(exactFit(vs))
}

// FromSlice consumes a slice whose backing allocation already fits its length
// exactly, the cheap entry point: a len(vs) == cap(vs) slice is taken over
// without copying. A slice that still carries spare capacity is shrunk to an
// exact fit first, the same way From does it, so the iterator never owns
// capacity beyond its length.
func FromSlice[T any](vs []T) *Iter[T] {
	var i Iter[T]
	if zst[T]() {
		i.base = placeholder[T]()
		i.rem = len(vs)
		return &i
	}
	if len(vs) == 0 {
		return &i
	}
	vs = exactFit(vs)
	i.base = &vs[0]
	i.rem = len(vs)
	i.alloc = len(vs)
	return &i
}

func exactFit[T any](vs []T) []T {
	if len(vs) == cap(vs) {
		return vs
	}
	exact := make([]T, len(vs))
	copy(exact, vs)
	return exact
}

// Empty returns an iterator with no elements and no allocation.
func Empty[T any]() *Iter[T] { return FromSlice[T](nil) }

// Iter is a consuming iterator over an owned slice.
//
// If T is not zero sized:
//   - base points to the first element of the owned allocation and never moves
//   - alloc is the element count of the whole allocation and never changes
//   - the live, not yet yielded elements are [base+(alloc-rem), base+alloc)
//   - slots of already yielded elements are zeroed, the iterator never owns
//     an element twice
//
// If T is zero sized:
//   - base is a shared placeholder address, there is no real allocation
//   - alloc is always zero
//   - rem is the remaining element count on its own
//
// The zero value of Iter is a valid empty iterator; unlike a constructed
// zero-sized-element iterator its base is nil rather than the placeholder,
// and no operation dereferences base while rem is zero.
//
// Iter has no internal synchronisation. It can be handed over to another
// goroutine and used there, but a single Iter must not be consumed from
// multiple goroutines at once.
type Iter[T any] struct {
	base  *T
	rem   int
	alloc int
}

// Next moves the next element out of the iterator.
// Once the iterator is exhausted, Next reports false forever.
func (i *Iter[T]) Next() (T, bool) {
	var v T
	if i.rem == 0 {
		return v, false
	}
	if zst[T]() {
		// a zero sized value carries no bits, no memory is read
		i.rem--
		return v, true
	}
	p := i.head()
	v = *p
	var zero T
	*p = zero // the slot no longer owns the element
	i.rem--
	return v, true
}

// Len returns the exact number of remaining elements in O(1).
// It is both the lower and the upper bound of what Next will still yield.
func (i *Iter[T]) Len() int { return i.rem }

// AsSlice returns the remaining elements as a slice view.
// The view aliases the iterator's storage: it reflects every Next call
// immediately, writes through it modify the elements the iterator still owns,
// and it is invalidated by Close.
func (i *Iter[T]) AsSlice() []T {
	if i.rem == 0 {
		return nil
	}
	return unsafe.Slice(i.head(), i.rem)
}

// Close destroys the remaining elements, then releases the backing allocation.
//
// Elements implementing io.Closer are closed in forward order, and their
// errors are merged into the returned error; a failing destructor does not
// stop the destruction of the elements after it. The allocation release is
// registered before the first destructor runs, so the memory is let go of
// exactly once even when a destructor panics. Close is idempotent.
func (i *Iter[T]) Close() error {
	defer i.release()
	var errs []error
	for {
		v, ok := i.Next()
		if !ok {
			break
		}
		if c, ok := any(v).(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errorkit.Merge(errs...)
}

// Clone returns an independent iterator over a copy of the remaining
// elements. The copy is made with plain assignment, the same way copying a
// slice duplicates its elements.
func (i *Iter[T]) Clone() *Iter[T] {
	if zst[T]() {
		return &Iter[T]{base: placeholder[T](), rem: i.rem}
	}
	vs := make([]T, i.rem)
	copy(vs, i.AsSlice())
	return From(vs)
}

func (i *Iter[T]) String() string {
	return fmt.Sprintf("smalliter.Iter%v", i.AsSlice())
}

// head returns the address of the next element to yield.
// The address is derived as base plus the consumed element count.
func (i *Iter[T]) head() *T {
	offset := uintptr(i.alloc-i.rem) * sizeOf[T]()
	return (*T)(unsafe.Add(unsafe.Pointer(i.base), offset))
}

// release returns the iterator to the empty state and drops the backing
// allocation. Every slot is zeroed first, so no consumed or destroyed element
// is kept reachable through the region while it awaits collection.
func (i *Iter[T]) release() {
	if i.alloc != 0 {
		clear(unsafe.Slice(i.base, i.alloc))
		if releaseHook != nil {
			releaseHook(i.alloc)
		}
	}
	i.base = nil
	i.rem = 0
	i.alloc = 0
}

// releaseHook observes allocation releases. Tests stub it.
var releaseHook func(allocLen int)

func sizeOf[T any]() uintptr {
	var v T
	return unsafe.Sizeof(v)
}

func zst[T any]() bool { return sizeOf[T]() == 0 }

// zerobase stands in for the element address of zero sized types,
// which have no real address range of their own.
var zerobase struct{}

func placeholder[T any]() *T { return (*T)(unsafe.Pointer(&zerobase)) }
