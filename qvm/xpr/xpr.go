// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package xpr

import (
	"github.com/karmarun/lsq/qvm/val"
)

// Filter is one stage of a Query.
type Filter interface {
	Transform(f func(Filter) Filter) Filter
}

// Query is a pipeline of filters, applied left to right.
// The empty Query is the identity pipeline.
type Query []Filter

func (q Query) Transform(f func(Filter) Filter) Query {
	out := make(Query, len(q), len(q))
	for i, x := range q {
		out[i] = x.Transform(f)
	}
	return out
}

// Argument is a FuncCall argument: either a filter evaluated against
// the current branch or a literal value.
type Argument interface {
	_argument()
}

type FilterArgument struct {
	Filter Filter
}

func (FilterArgument) _argument() {}

type Literal struct {
	Value val.Value
}

func (Literal) _argument() {}

func transformArgument(a Argument, f func(Filter) Filter) Argument {
	if fa, ok := a.(FilterArgument); ok {
		return FilterArgument{fa.Filter.Transform(f)}
	}
	return a
}

type Identity struct{}

func (x Identity) Transform(f func(Filter) Filter) Filter {
	return f(x)
}

type Key struct {
	Name string
}

func (x Key) Transform(f func(Filter) Filter) Filter {
	return f(x)
}

type Head struct {
	Name string
}

func (x Head) Transform(f func(Filter) Filter) Filter {
	return f(x)
}

type Tail struct {
	Name string
}

func (x Tail) Transform(f func(Filter) Filter) Filter {
	return f(x)
}

type Index struct {
	Index int64
}

func (x Index) Transform(f func(Filter) Filter) Filter {
	return f(x)
}

// Slice selects [Start, End). A nil bound is open.
type Slice struct {
	Start *int64
	End   *int64
}

func (x Slice) Transform(f func(Filter) Filter) Filter {
	return f(x)
}

// Branch applies each filter to the full branch set and concatenates the results.
type Branch []Filter

func (x Branch) Transform(f func(Filter) Filter) Filter {
	out := make(Branch, len(x), len(x))
	for i, w := range x {
		out[i] = w.Transform(f)
	}
	return f(out)
}

type ListIter struct{}

func (x ListIter) Transform(f func(Filter) Filter) Filter {
	return f(x)
}

type FuncCall struct {
	Name      string
	Arguments []Argument
}

func (x FuncCall) Transform(f func(Filter) Filter) Filter {
	var args []Argument
	if x.Arguments != nil {
		args = make([]Argument, len(x.Arguments), len(x.Arguments))
		for i, a := range x.Arguments {
			args[i] = transformArgument(a, f)
		}
	}
	return f(FuncCall{x.Name, args})
}

// SubQuery runs Query once per input branch.
type SubQuery struct {
	Query Query
}

func (x SubQuery) Transform(f func(Filter) Filter) Filter {
	return f(SubQuery{x.Query.Transform(f)})
}

// Expr wraps an argument in filter position. The parser never emits it
// as a pipeline stage.
type Expr struct {
	Argument Argument
}

func (x Expr) Transform(f func(Filter) Filter) Filter {
	return f(Expr{transformArgument(x.Argument, f)})
}

// NameRune reports whether r may appear in an unquoted name.
func NameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r > 0x7f:
		return true
	}
	switch r {
	case '_', '!', '$', '%', '*', '/', '<', '=', '>', '?', '@', '^', '~', '+', '-', '#':
		return true
	}
	return false
}

// IsName reports whether s can be written without quotes.
func IsName(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '#' || (s[0] >= '0' && s[0] <= '9') {
		return false
	}
	if (s[0] == '+' || s[0] == '-') && len(s) > 1 && s[1] >= '0' && s[1] <= '9' {
		return false
	}
	for _, r := range s {
		if !NameRune(r) {
			return false
		}
	}
	return true
}
