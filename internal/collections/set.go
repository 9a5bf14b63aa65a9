package collections

import "fmt"

// Set is an unordered membership set
type Set[T comparable] map[T]struct{}

// NewSet creates a Set holding vs
func NewSet[T comparable](vs ...T) Set[T] {
	s := make(Set[T], len(vs))
	s.Add(vs...)
	return s
}

// Add inserts every value in vs
func (s Set[T]) Add(vs ...T) {
	for _, v := range vs {
		s[v] = struct{}{}
	}
}

// Has reports whether v is a member
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// OrderedSet keeps the first-seen order of its members.
// The zero value is ready to use.
type OrderedSet[T comparable] struct {
	index   map[T]int
	members []T
}

// NewOrderedSet creates an OrderedSet holding vs, duplicates dropped
func NewOrderedSet[T comparable](vs ...T) *OrderedSet[T] {
	s := &OrderedSet[T]{}
	s.Add(vs...)
	return s
}

// Add appends each value not already present. It returns the number of
// values that were new.
func (s *OrderedSet[T]) Add(vs ...T) int {
	if s.index == nil {
		s.index = make(map[T]int)
	}
	added := 0
	for _, v := range vs {
		if _, ok := s.index[v]; ok {
			continue
		}
		s.index[v] = len(s.members)
		s.members = append(s.members, v)
		added++
	}
	return added
}

// Has reports whether v is a member
func (s *OrderedSet[T]) Has(v T) bool {
	_, ok := s.index[v]
	return ok
}

// IndexOf returns the insertion position of v, or -1
func (s *OrderedSet[T]) IndexOf(v T) int {
	if i, ok := s.index[v]; ok {
		return i
	}
	return -1
}

// Len returns the number of members
func (s *OrderedSet[T]) Len() int {
	return len(s.members)
}

// Members returns a copy of the members in insertion order
func (s *OrderedSet[T]) Members() []T {
	r := make([]T, len(s.members))
	copy(r, s.members)
	return r
}

func (s *OrderedSet[T]) String() string {
	return fmt.Sprintf("%v", s.members)
}

// Unique returns vs without duplicates, keeping first occurrences
func Unique[T comparable](vs []T) []T {
	return NewOrderedSet(vs...).Members()
}
