// Package keyring rotates through a fixed set of credentials (or clients
// built from them) in round-robin order.
package keyring

import "sync"

type Ring[T any] struct {
	mu    sync.Mutex
	items []T
	next  int
}

// New copies items so later changes to the caller's slice have no effect.
func New[T any](items []T) *Ring[T] {
	cp := make([]T, len(items))
	copy(cp, items)
	return &Ring[T]{items: cp}
}

// Next returns the following item in the cycle. ok is false for an empty ring.
func (r *Ring[T]) Next() (item T, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return item, false
	}
	item = r.items[r.next]
	r.next = (r.next + 1) % len(r.items)
	return item, true
}

func (r *Ring[T]) Len() int {
	return len(r.items)
}
