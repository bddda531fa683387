// Package tasklist provides an ordered, owning list with O(1) insertion and
// removal by element reference.
//
// Elements live in a slot table and are linked by slot number instead of
// pointers. A Ref carries the slot's generation, so a reference to a removed
// element is detected rather than silently aliasing whatever reuses the slot.
package tasklist

import (
	"errors"
)

var (
	ErrNilRef     = errors.New("nil reference on non-empty list")
	ErrEmpty      = errors.New("list is empty")
	ErrInvalidRef = errors.New("reference does not belong to this list")
)

const none = -1

// Ref identifies an element. The zero Ref is the nil reference.
type Ref struct {
	slot int
	gen  uint32
}

// IsNil reports whether r is the nil reference.
func (r Ref) IsNil() bool {
	return r.gen == 0
}

type node[T any] struct {
	value T
	prev  int
	next  int
	gen   uint32
	live  bool
}

// List is an ordered sequence of owned values. The destroy callback, if set,
// runs on every element discarded by Destroy.
type List[T any] struct {
	nodes   []node[T]
	free    []int
	head    int
	tail    int
	size    int
	destroy func(T)
}

// New returns an empty list bound to destroy.
func New[T any](destroy func(T)) *List[T] {
	return &List[T]{head: none, tail: none, destroy: destroy}
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return l.size
}

// Front returns the first element, or the nil Ref.
func (l *List[T]) Front() Ref {
	return l.ref(l.head)
}

// Back returns the last element, or the nil Ref.
func (l *List[T]) Back() Ref {
	return l.ref(l.tail)
}

// Next returns the element after r, or the nil Ref.
func (l *List[T]) Next(r Ref) Ref {
	if !l.valid(r) {
		return Ref{}
	}
	return l.ref(l.nodes[r.slot].next)
}

// Prev returns the element before r, or the nil Ref.
func (l *List[T]) Prev(r Ref) Ref {
	if !l.valid(r) {
		return Ref{}
	}
	return l.ref(l.nodes[r.slot].prev)
}

// Value returns the payload at r.
func (l *List[T]) Value(r Ref) (T, bool) {
	if !l.valid(r) {
		var zero T
		return zero, false
	}
	return l.nodes[r.slot].value, true
}

// Set replaces the payload at r.
func (l *List[T]) Set(r Ref, v T) error {
	if !l.valid(r) {
		return ErrInvalidRef
	}
	l.nodes[r.slot].value = v
	return nil
}

// InsertAfter links v after r. r may be nil only when the list is empty.
func (l *List[T]) InsertAfter(r Ref, v T) (Ref, error) {
	prev, err := l.anchor(r)
	if err != nil {
		return Ref{}, err
	}
	next := none
	if prev != none {
		next = l.nodes[prev].next
	}
	return l.link(prev, next, v), nil
}

// InsertBefore links v before r. r may be nil only when the list is empty.
func (l *List[T]) InsertBefore(r Ref, v T) (Ref, error) {
	next, err := l.anchor(r)
	if err != nil {
		return Ref{}, err
	}
	prev := none
	if next != none {
		prev = l.nodes[next].prev
	}
	return l.link(prev, next, v), nil
}

// PushBack appends v at the tail.
func (l *List[T]) PushBack(v T) Ref {
	return l.link(l.tail, none, v)
}

// Remove unlinks r and hands its payload back to the caller, who decides
// whether to destroy it.
func (l *List[T]) Remove(r Ref) (T, error) {
	var zero T
	if l.size == 0 {
		return zero, ErrEmpty
	}
	if !l.valid(r) {
		return zero, ErrInvalidRef
	}

	n := &l.nodes[r.slot]
	if n.prev != none {
		l.nodes[n.prev].next = n.next
	} else {
		l.head = n.next
	}
	if n.next != none {
		l.nodes[n.next].prev = n.prev
	} else {
		l.tail = n.prev
	}

	v := n.value
	n.value = zero
	n.live = false
	n.prev, n.next = none, none
	l.free = append(l.free, r.slot)
	l.size--
	return v, nil
}

// Destroy removes every element, running the destroy callback on each, and
// leaves the list empty and reusable.
func (l *List[T]) Destroy() {
	for i := l.head; i != none; {
		n := l.nodes[i]
		if l.destroy != nil {
			l.destroy(n.value)
		}
		i = n.next
	}

	// Slots keep their generation so refs taken before Destroy stay invalid.
	var zero T
	l.free = l.free[:0]
	for i := len(l.nodes) - 1; i >= 0; i-- {
		l.nodes[i].value = zero
		l.nodes[i].live = false
		l.nodes[i].prev, l.nodes[i].next = none, none
		l.free = append(l.free, i)
	}
	l.head, l.tail = none, none
	l.size = 0
}

// Each calls fn for every element in order until fn returns false.
func (l *List[T]) Each(fn func(Ref, T) bool) {
	for i := l.head; i != none; i = l.nodes[i].next {
		if !fn(l.ref(i), l.nodes[i].value) {
			return
		}
	}
}

// Find returns the first element matching pred, or the nil Ref.
func (l *List[T]) Find(pred func(T) bool) Ref {
	found := Ref{}
	l.Each(func(r Ref, v T) bool {
		if pred(v) {
			found = r
			return false
		}
		return true
	})
	return found
}

// Values returns the payloads in order.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.size)
	l.Each(func(_ Ref, v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

func (l *List[T]) anchor(r Ref) (int, error) {
	if r.IsNil() {
		if l.size != 0 {
			return none, ErrNilRef
		}
		return none, nil
	}
	if !l.valid(r) {
		return none, ErrInvalidRef
	}
	return r.slot, nil
}

func (l *List[T]) link(prev, next int, v T) Ref {
	var slot int
	if k := len(l.free); k > 0 {
		slot = l.free[k-1]
		l.free = l.free[:k-1]
	} else {
		l.nodes = append(l.nodes, node[T]{})
		slot = len(l.nodes) - 1
	}

	n := &l.nodes[slot]
	n.value = v
	n.prev, n.next = prev, next
	n.gen++
	n.live = true

	if prev != none {
		l.nodes[prev].next = slot
	} else {
		l.head = slot
	}
	if next != none {
		l.nodes[next].prev = slot
	} else {
		l.tail = slot
	}
	l.size++
	return Ref{slot: slot, gen: n.gen}
}

func (l *List[T]) ref(slot int) Ref {
	if slot == none {
		return Ref{}
	}
	return Ref{slot: slot, gen: l.nodes[slot].gen}
}

func (l *List[T]) valid(r Ref) bool {
	if r.IsNil() || r.slot < 0 || r.slot >= len(l.nodes) {
		return false
	}
	n := l.nodes[r.slot]
	return n.live && n.gen == r.gen
}
