// Package arena provides a flat, integer-handle-addressed node store.
//
// Instead of heap-allocating individual pointer nodes, nodes live in one
// contiguous slice and are addressed by a uint32 handle. Handle zero is
// reserved as the nil sentinel, so a freshly allocated Arena's zero value
// for any handle field already means "absent" without further
// initialization.
package arena

import "github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/pkg/safeconv"

// Handle addresses a node inside an Arena. The zero Handle means "absent".
type Handle uint32

// Nil is the sentinel handle meaning "no node".
const Nil Handle = 0

// Arena stores values of type T, addressed by Handle instead of pointers.
type Arena[T any] struct {
	storage []T
}

// New creates an empty Arena with handle 0 reserved as the nil sentinel.
func New[T any]() *Arena[T] {
	a := &Arena[T]{}
	a.storage = append(a.storage, *new(T))

	return a
}

// Alloc reserves a new zero-valued node and returns its handle.
func (a *Arena[T]) Alloc() Handle {
	a.storage = append(a.storage, *new(T))

	return Handle(safeconv.MustIntToUint32(len(a.storage) - 1))
}

// Get returns a pointer to the node addressed by h. The pointer is only
// valid until the next Alloc, which may reuse a's backing slice.
func (a *Arena[T]) Get(h Handle) *T {
	return &a.storage[h]
}

// Len returns the number of nodes in the arena, excluding the sentinel.
func (a *Arena[T]) Len() int {
	return len(a.storage) - 1
}
