// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
//
// Package qvm evaluates filter pipelines over branch sets.
package qvm

import (
	"fmt"

	"github.com/karmarun/lsq/qvm/builtin"
	"github.com/karmarun/lsq/qvm/err"
	"github.com/karmarun/lsq/qvm/val"
	"github.com/karmarun/lsq/qvm/xpr"
)

// Machine evaluates queries. The zero value uses the process-wide
// builtin registry and runs sequentially.
type Machine struct {
	Builtins builtin.Registry // nil means builtin.Builtins()
	Jobs     int              // max concurrent per-branch evaluations per stage
}

func (m Machine) registry() builtin.Registry {
	if m.Builtins == nil {
		return builtin.Builtins()
	}
	return m.Builtins
}

// Run folds q over branches, left to right. A failing stage aborts the run.
func (m Machine) Run(q xpr.Query, branches []val.Value) ([]val.Value, err.Error) {
	for i, f := range q {
		out, e := m.Step(f, branches)
		if e != nil {
			return nil, err.StageError{Stage: i, Filter: xpr.Format(f), Child_: e}
		}
		branches = out
	}
	return branches, nil
}

// Step applies a single filter to a branch set.
func (m Machine) Step(f xpr.Filter, branches []val.Value) ([]val.Value, err.Error) {
	switch f := f.(type) {

	case xpr.Identity:
		return branches, nil

	case xpr.Key:
		return m.each(len(branches), func(i int) ([]val.Value, err.Error) {
			v, e := key(f, branches[i])
			return one(v, e)
		})

	case xpr.Head:
		return m.each(len(branches), func(i int) ([]val.Value, err.Error) {
			return one(split(f, f.Name, branches[i], true))
		})

	case xpr.Tail:
		return m.each(len(branches), func(i int) ([]val.Value, err.Error) {
			return one(split(f, f.Name, branches[i], false))
		})

	case xpr.Index:
		return m.each(len(branches), func(i int) ([]val.Value, err.Error) {
			return one(index(f, branches[i]))
		})

	case xpr.Slice:
		return m.each(len(branches), func(i int) ([]val.Value, err.Error) {
			return one(slice(f, branches[i]))
		})

	case xpr.Branch:
		return m.each(len(f), func(i int) ([]val.Value, err.Error) {
			return m.Step(f[i], branches)
		})

	case xpr.ListIter:
		return m.each(len(branches), func(i int) ([]val.Value, err.Error) {
			elements, e := elementsOf(f, branches[i])
			if e != nil {
				return nil, e
			}
			out := make([]val.Value, len(elements), len(elements))
			copy(out, elements)
			return out, nil
		})

	case xpr.FuncCall:
		if len(branches) == 0 {
			return branches, nil
		}
		fn, e := m.registry().Lookup(f.Name)
		if e != nil {
			return nil, e
		}
		return m.each(len(branches), func(i int) ([]val.Value, err.Error) {
			return m.call(fn, f.Arguments, branches[i])
		})

	case xpr.SubQuery:
		return m.each(len(branches), func(i int) ([]val.Value, err.Error) {
			return m.Run(f.Query, []val.Value{branches[i]})
		})

	case xpr.Expr:
		return nil, err.InternalError{Problem: "argument expression in pipeline position: " + xpr.Format(f)}

	}
	return nil, err.InternalError{Problem: fmt.Sprintf("unhandled filter type %T", f)}
}

// call evaluates the arguments against the current branch alone and
// invokes fn. A function returning no value drops the branch.
func (m Machine) call(fn builtin.Func, arguments []xpr.Argument, branch val.Value) ([]val.Value, err.Error) {
	args := make([]val.Value, 0, len(arguments))
	for _, a := range arguments {
		switch a := a.(type) {
		case xpr.Literal:
			args = append(args, a.Value)
		case xpr.FilterArgument:
			out, e := m.Step(a.Filter, []val.Value{branch})
			if e != nil {
				return nil, e
			}
			if len(out) == 1 {
				args = append(args, out[0])
			} else {
				args = append(args, append(val.List{}, out...))
			}
		default:
			return nil, err.InternalError{Problem: fmt.Sprintf("unhandled argument type %T", a)}
		}
	}
	out, e := fn(branch, args)
	if e != nil {
		return nil, e
	}
	if out == nil {
		return nil, nil
	}
	return []val.Value{out}, nil
}

func one(v val.Value, e err.Error) ([]val.Value, err.Error) {
	if e != nil {
		return nil, e
	}
	return []val.Value{v}, nil
}
