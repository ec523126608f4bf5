package jtoken

import (
	"iter"
	"slices"
)

// Array is an ordered sequence of Token.
type Array struct {
	items []Token
}

// NewArray returns an Array holding items (nil items are stored as Null).
func NewArray(items ...Token) *Array {
	a := &Array{items: make([]Token, 0, len(items))}
	a.Append(items...)
	return a
}

func (a *Array) token() {}

// Kind returns KindArray.
func (a *Array) Kind() Kind { return KindArray }

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.items) }

// Append adds toks at the end.
func (a *Array) Append(toks ...Token) {
	for _, t := range toks {
		if isNil(t) {
			t = Null()
		}
		a.items = append(a.items, t)
	}
}

// At returns the element at index i, or nil when i is out of range.
func (a *Array) At(i int) Token {
	if i < 0 || i >= len(a.items) {
		return nil
	}
	return a.items[i]
}

// Items returns the elements as a new slice.
func (a *Array) Items() []Token { return slices.Clone(a.items) }

// All iterates (index, token) pairs in order.
func (a *Array) All() iter.Seq2[int, Token] { return slices.All(a.items) }

// Clone returns a deep copy of a.
func (a *Array) Clone() Token {
	c := &Array{items: make([]Token, len(a.items))}
	for i, t := range a.items {
		c.items[i] = t.Clone()
	}
	return c
}

// Equal reports element-wise, order-sensitive equality.
func (a *Array) Equal(other Token) bool {
	b, ok := other.(*Array)
	if !ok || b == nil || len(b.items) != len(a.items) {
		return false
	}
	for i, t := range a.items {
		if !t.Equal(b.items[i]) {
			return false
		}
	}
	return true
}
