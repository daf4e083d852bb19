// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package val

// Value is a node of an S-expression tree. Values are never
// mutated after construction; filters build new values instead.
type Value interface {
	Equals(Value) bool
	Primitive() bool
	Type() Type
}

type Int int64

func (v Int) Equals(w Value) bool {
	q, ok := w.(Int)
	return ok && v == q
}

func (v Int) Primitive() bool {
	return true
}

type Float float64

func (v Float) Equals(w Value) bool {
	q, ok := w.(Float)
	return ok && v == q
}

func (v Float) Primitive() bool {
	return true
}

type String string

func (v String) Equals(w Value) bool {
	q, ok := w.(String)
	return ok && v == q
}

func (v String) Primitive() bool {
	return true
}

type Bool bool

func (v Bool) Equals(w Value) bool {
	q, ok := w.(Bool)
	return ok && v == q
}

func (v Bool) Primitive() bool {
	return true
}

// Symbol is an identifier. Symbols serve as lookup markers for
// key/head/tail filters and as function names for gate builtins.
type Symbol string

func (v Symbol) Equals(w Value) bool {
	q, ok := w.(Symbol)
	return ok && v == q
}

func (v Symbol) Primitive() bool {
	return true
}

type Char rune

func (v Char) Equals(w Value) bool {
	q, ok := w.(Char)
	return ok && v == q
}

func (v Char) Primitive() bool {
	return true
}

type nilValue struct{}

// Nil is the empty-list sentinel. It is distinct from an empty List.
var Nil = nilValue{}

func (v nilValue) Equals(w Value) bool {
	_, ok := w.(nilValue)
	return ok
}

func (v nilValue) Primitive() bool {
	return true
}

type Quote struct {
	Value Value
}

func (v Quote) Equals(w Value) bool {
	q, ok := w.(Quote)
	return ok && v.Value.Equals(q.Value)
}

func (v Quote) Primitive() bool {
	return false
}

type Quasiquote struct {
	Value Value
}

func (v Quasiquote) Equals(w Value) bool {
	q, ok := w.(Quasiquote)
	return ok && v.Value.Equals(q.Value)
}

func (v Quasiquote) Primitive() bool {
	return false
}

type Unquote struct {
	Value Value
}

func (v Unquote) Equals(w Value) bool {
	q, ok := w.(Unquote)
	return ok && v.Value.Equals(q.Value)
}

func (v Unquote) Primitive() bool {
	return false
}

type UnquoteSplicing struct {
	Value Value
}

func (v UnquoteSplicing) Equals(w Value) bool {
	q, ok := w.(UnquoteSplicing)
	return ok && v.Value.Equals(q.Value)
}

func (v UnquoteSplicing) Primitive() bool {
	return false
}

type List []Value

func (l List) Equals(v Value) bool {
	q, ok := v.(List)
	if !ok {
		return false
	}
	return elementsEqual(l, q)
}

func (l List) Primitive() bool {
	return false
}

// Vector is parallel to List but keeps a distinct tag.
type Vector []Value

func (l Vector) Equals(v Value) bool {
	q, ok := v.(Vector)
	if !ok {
		return false
	}
	return elementsEqual(l, q)
}

func (l Vector) Primitive() bool {
	return false
}

func elementsEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}

// Elements returns the children of a List or Vector. ok is false
// for every other value, including Nil.
func Elements(v Value) (elements []Value, ok bool) {
	switch v := v.(type) {
	case List:
		return v, true
	case Vector:
		return v, true
	}
	return nil, false
}

// Rebuild wraps elements in a new container carrying the same tag as like.
// like must be a List or a Vector.
func Rebuild(like Value, elements []Value) Value {
	c := make([]Value, len(elements), len(elements))
	copy(c, elements)
	if _, ok := like.(Vector); ok {
		return Vector(c)
	}
	return List(c)
}

// Unwrap returns the child of a quote form.
func Unwrap(v Value) (Value, bool) {
	switch v := v.(type) {
	case Quote:
		return v.Value, true
	case Quasiquote:
		return v.Value, true
	case Unquote:
		return v.Value, true
	case UnquoteSplicing:
		return v.Value, true
	}
	return nil, false
}
