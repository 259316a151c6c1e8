/*
Package iteratable implements iteratable container data structures.

Set is a special purpose set type, suitable mainly for implementing
algorithms around scanners, parsers, etc. These kinds of algorithms are
often more straightforward to describe as set constructions and operations.
The sets of this package keep their elements in insertion order and
deduplicate on insert, which makes them usable as the work queues of
chart parsers: iterating over a set will visit elements which have been
appended after the iteration started.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package iteratable

import (
	"github.com/emirpasic/gods/lists/arraylist"
)

// Set is an ordered set of (comparable) values. The zero value is not
// usable; create sets with NewSet.
type Set struct {
	items  *arraylist.List
	index  map[interface{}]int
	cursor int
}

// NewSet creates a new set, pre-allocating space for a given capacity.
// A capacity of 0 is legal.
func NewSet(capacity int) *Set {
	if capacity < 0 {
		capacity = 0
	}
	return &Set{
		items:  arraylist.New(),
		index:  make(map[interface{}]int, capacity),
		cursor: -1,
	}
}

// Add appends a value to the set, if it is not already present.
// It returns true if the value has been appended.
func (s *Set) Add(value interface{}) bool {
	if s == nil {
		return false
	}
	if _, ok := s.index[value]; ok {
		return false
	}
	s.index[value] = s.items.Size()
	s.items.Add(value)
	return true
}

// Contains returns true if value is an element of the set.
func (s *Set) Contains(value interface{}) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[value]
	return ok
}

// Size returns the number of elements of the set.
func (s *Set) Size() int {
	if s == nil {
		return 0
	}
	return s.items.Size()
}

// Empty returns true if the set has no elements.
func (s *Set) Empty() bool {
	return s.Size() == 0
}

// At returns the element at position i, in insertion order.
func (s *Set) At(i int) interface{} {
	value, _ := s.items.Get(i)
	return value
}

// First returns the first element of the set, in insertion order.
func (s *Set) First() interface{} {
	return s.At(0)
}

// Values returns all elements of the set as a slice, in insertion order.
func (s *Set) Values() []interface{} {
	if s == nil {
		return nil
	}
	return s.items.Values()
}

// --- Work-queue iteration ---------------------------------------------------

// IterateOnce resets the set's iteration cursor. The following calls to
// Next will traverse the set in insertion order, including elements which
// are appended while the iteration is underway. This is the classical
// single-pass discipline of chart parsers.
func (s *Set) IterateOnce() {
	if s != nil {
		s.cursor = -1
	}
}

// Next advances the iteration cursor. It returns false if the set is
// exhausted.
func (s *Set) Next() bool {
	if s == nil {
		return false
	}
	s.cursor++
	return s.cursor < s.items.Size()
}

// Item returns the element at the iteration cursor.
func (s *Set) Item() interface{} {
	return s.At(s.cursor)
}

// Position returns the current iteration cursor, i.e. the index of the
// element which Item returns.
func (s *Set) Position() int {
	if s == nil {
		return -1
	}
	return s.cursor
}

// --- Set operations ---------------------------------------------------------

// Copy returns a shallow copy of the set.
func (s *Set) Copy() *Set {
	if s == nil {
		return nil
	}
	c := NewSet(s.Size())
	s.Each(func(value interface{}) {
		c.Add(value)
	})
	return c
}

// Subset removes all elements from the set which do not satisfy the
// predicate, returning the receiver. As with the teacher-set of algorithms
// this package is made for, the operation is destructive; call Copy first
// to preserve the original.
func (s *Set) Subset(predicate func(interface{}) bool) *Set {
	if s == nil {
		return nil
	}
	keep := arraylist.New()
	index := make(map[interface{}]int)
	s.Each(func(value interface{}) {
		if predicate(value) {
			index[value] = keep.Size()
			keep.Add(value)
		}
	})
	s.items = keep
	s.index = index
	s.cursor = -1
	return s
}

// Each calls f for every element of the set, in insertion order. Unlike
// the cursor-iteration, Each does not see elements appended during the
// traversal.
func (s *Set) Each(f func(interface{})) {
	if s == nil {
		return
	}
	s.items.Each(func(_ int, value interface{}) {
		f(value)
	})
}
