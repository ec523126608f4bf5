package jtoken

import (
	"iter"
	"slices"
)

// Object is an ordered mapping from property name to Token. Iteration follows
// insertion order; replacing an existing name keeps its position.
type Object struct {
	names  []string
	values []Token
	index  map[string]int
}

// NewObject returns an empty Object.
func NewObject() *Object { return &Object{index: map[string]int{}} }

func (o *Object) token() {}

// Kind returns KindObject.
func (o *Object) Kind() Kind { return KindObject }

// Len returns the number of properties.
func (o *Object) Len() int { return len(o.names) }

// Get returns the token stored under name.
func (o *Object) Get(name string) (Token, bool) {
	i, ok := o.index[name]
	if !ok {
		return nil, false
	}
	return o.values[i], true
}

// Contains reports whether name is present.
func (o *Object) Contains(name string) bool {
	_, ok := o.index[name]
	return ok
}

// Set stores tok under name, replacing any previous value in place. A nil
// tok, typed or not, is stored as Null.
func (o *Object) Set(name string, tok Token) {
	if isNil(tok) {
		tok = Null()
	}
	if o.index == nil {
		o.index = map[string]int{}
	}
	if i, ok := o.index[name]; ok {
		o.values[i] = tok
		return
	}
	o.index[name] = len(o.names)
	o.names = append(o.names, name)
	o.values = append(o.values, tok)
}

// Remove deletes name and reports whether it was present.
func (o *Object) Remove(name string) bool {
	i, ok := o.index[name]
	if !ok {
		return false
	}
	o.names = slices.Delete(o.names, i, i+1)
	o.values = slices.Delete(o.values, i, i+1)
	delete(o.index, name)
	for j := i; j < len(o.names); j++ {
		o.index[o.names[j]] = j
	}
	return true
}

// Names returns the property names in insertion order.
func (o *Object) Names() []string { return slices.Clone(o.names) }

// All iterates (name, token) pairs in insertion order.
func (o *Object) All() iter.Seq2[string, Token] {
	return func(yield func(string, Token) bool) {
		for i, name := range o.names {
			if !yield(name, o.values[i]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of o.
func (o *Object) Clone() Token {
	c := &Object{
		names:  slices.Clone(o.names),
		values: make([]Token, len(o.values)),
		index:  make(map[string]int, len(o.names)),
	}
	for i, name := range o.names {
		c.index[name] = i
		c.values[i] = o.values[i].Clone()
	}
	return c
}

// Equal reports whether other is an Object with the same names mapped to
// equal tokens. Property order is not significant.
func (o *Object) Equal(other Token) bool {
	p, ok := other.(*Object)
	if !ok || p == nil || p.Len() != o.Len() {
		return false
	}
	for i, name := range o.names {
		pv, ok := p.Get(name)
		if !ok || !o.values[i].Equal(pv) {
			return false
		}
	}
	return true
}
