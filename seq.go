package smalliter

import (
	"iter"

	"go.llib.dev/frameless/pkg/errorkit"
)

// Seq returns a single use sequence that drains the iterator.
// Breaking out of the range loop leaves the not yet yielded elements owned by
// the iterator; Close still has to run to destroy them and release the
// backing allocation.
func (i *Iter[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := i.Next()
			if !ok {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Collect moves every remaining element into a fresh slice, then closes the
// iterator. Ownership of the elements transfers to the returned slice.
func (i *Iter[T]) Collect() (_ []T, rErr error) {
	defer errorkit.Finish(&rErr, i.Close)
	vs := make([]T, 0, i.Len())
	for {
		v, ok := i.Next()
		if !ok {
			break
		}
		vs = append(vs, v)
	}
	return vs, nil
}

// Pull adapts the iterator to the Next/Value/Err/Close pull protocol used by
// database scanners and iterator toolkits.
func (i *Iter[T]) Pull() *PullIter[T] {
	return &PullIter[T]{iter: i}
}

// PullIter presents an Iter through the classic pull iterator protocol,
// shaped after encoding/json's Decoder.
type PullIter[T any] struct {
	iter  *Iter[T]
	value T
}

// Next ensures that Value returns the next element when executed.
func (p *PullIter[T]) Next() bool {
	v, ok := p.iter.Next()
	if !ok {
		return false
	}
	p.value = v
	return true
}

// Value returns the element moved out by the last successful Next.
func (p *PullIter[T]) Value() T { return p.value }

// Err is part of the pull protocol; yielding an owned element cannot fail.
func (p *PullIter[T]) Err() error { return nil }

// Close tears down the underlying iterator.
func (p *PullIter[T]) Close() error { return p.iter.Close() }
