package domain

import "strings"

// Behavior bundles the per-element callbacks a List is created with.
// Stringify renders one element for List.String; Compare defines the order
// used by explicit lookups. Neither is ever used to re-sort a list.
type Behavior[T any] struct {
	Stringify func(T) string
	Compare   func(a, b T) int
}

// List is an ordered, owning sequence of entities. Insertion order is
// preserved and is the traversal and output order everywhere in the model.
// The zero value and a nil *List both behave as an empty list, so a partially
// constructed document is always safe to walk.
type List[T any] struct {
	behavior Behavior[T]
	items    []T
}

// NewList creates an empty list with the given element behavior.
func NewList[T any](b Behavior[T]) *List[T] {
	return &List[T]{behavior: b}
}

// Append adds v at the back.
func (l *List[T]) Append(v T) {
	l.items = append(l.items, v)
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Last returns the most recently appended element, if any.
func (l *List[T]) Last() (T, bool) {
	var zero T
	if l == nil || len(l.items) == 0 {
		return zero, false
	}
	return l.items[len(l.items)-1], true
}

// Find returns the first element comparing equal to target. Duplicates are
// allowed in lists; the earliest match wins.
func (l *List[T]) Find(target T) (T, bool) {
	var zero T
	if l == nil || l.behavior.Compare == nil {
		return zero, false
	}
	for _, v := range l.items {
		if l.behavior.Compare(v, target) == 0 {
			return v, true
		}
	}
	return zero, false
}

// Iter returns a restartable forward cursor over the list.
func (l *List[T]) Iter() *Cursor[T] {
	if l == nil {
		return &Cursor[T]{}
	}
	return &Cursor[T]{items: l.items}
}

// String catenates the stringification of every element, in order.
func (l *List[T]) String() string {
	if l == nil || l.behavior.Stringify == nil {
		return ""
	}
	var sb strings.Builder
	for _, v := range l.items {
		sb.WriteString(l.behavior.Stringify(v))
	}
	return sb.String()
}

// Cursor walks a sequence front to back. Reset rewinds it to the start.
type Cursor[T any] struct {
	items []T
	pos   int
}

// Next returns the next element, or ok=false once the sequence is exhausted.
func (c *Cursor[T]) Next() (T, bool) {
	var zero T
	if c.pos >= len(c.items) {
		return zero, false
	}
	v := c.items[c.pos]
	c.pos++
	return v, true
}

// Reset rewinds the cursor to the first element.
func (c *Cursor[T]) Reset() {
	c.pos = 0
}

// View is a non-owning ordered sequence aliasing entities owned elsewhere,
// used for query results. It is a distinct type from List by construction:
// a View never owns what it holds, so there is no destroy-or-not flag to get
// wrong.
type View[T any] struct {
	behavior Behavior[T]
	items    []T
}

// NewView creates an empty view with the given element behavior.
func NewView[T any](b Behavior[T]) *View[T] {
	return &View[T]{behavior: b}
}

// Add aliases v at the back of the view.
func (v *View[T]) Add(item T) {
	v.items = append(v.items, item)
}

// Len returns the number of aliased elements.
func (v *View[T]) Len() int {
	if v == nil {
		return 0
	}
	return len(v.items)
}

// At returns the i-th aliased element.
func (v *View[T]) At(i int) T {
	return v.items[i]
}

// Iter returns a restartable forward cursor over the view.
func (v *View[T]) Iter() *Cursor[T] {
	if v == nil {
		return &Cursor[T]{}
	}
	return &Cursor[T]{items: v.items}
}

// String catenates the stringification of every aliased element, in order.
func (v *View[T]) String() string {
	if v == nil || v.behavior.Stringify == nil {
		return ""
	}
	var sb strings.Builder
	for _, item := range v.items {
		sb.WriteString(v.behavior.Stringify(item))
	}
	return sb.String()
}
