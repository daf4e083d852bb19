// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package builtin

import (
	"github.com/karmarun/lsq/qvm/err"
	"github.com/karmarun/lsq/qvm/val"
)

// keep decides a gate. A Bool predicate is the decision itself; a Symbol
// names a registry function applied to subject, which keeps unless it
// returns #f or no value.
func keep(r Registry, gate string, predicate, subject val.Value, args []val.Value) (bool, err.Error) {
	switch p := predicate.(type) {
	case val.Bool:
		return bool(p), nil
	case val.Symbol:
		f, e := r.Lookup(string(p))
		if e != nil {
			return false, e
		}
		out, e := f(subject, args)
		if e != nil {
			return false, e
		}
		if out == nil {
			return false, nil
		}
		if b, ok := out.(val.Bool); ok && !bool(b) {
			return false, nil
		}
		return true, nil
	}
	return false, err.WrongTypeError{
		Problem:  gate + " expects a function name or a boolean",
		Expected: val.TypeSymbol | val.TypeBool,
		Actual:   predicate.Type(),
	}
}

// filter(predicate, args...) tests the receiver.
func filter(r Registry) Func {
	return func(receiver val.Value, args []val.Value) (val.Value, err.Error) {
		if e := arity("filter", args, 1); e != nil {
			return nil, e
		}
		ok, e := keep(r, "filter", args[0], receiver, args[1:])
		if e != nil || !ok {
			return nil, e
		}
		return receiver, nil
	}
}

// select(predicate, value, args...) tests value and passes the receiver.
func select_(r Registry) Func {
	return func(receiver val.Value, args []val.Value) (val.Value, err.Error) {
		if e := arity("select", args, 2); e != nil {
			return nil, e
		}
		ok, e := keep(r, "select", args[0], args[1], args[2:])
		if e != nil || !ok {
			return nil, e
		}
		return receiver, nil
	}
}

// map(value, predicate, args...) is select with its first two arguments swapped.
func map_(r Registry) Func {
	return func(receiver val.Value, args []val.Value) (val.Value, err.Error) {
		if e := arity("map", args, 2); e != nil {
			return nil, e
		}
		ok, e := keep(r, "map", args[1], args[0], args[2:])
		if e != nil || !ok {
			return nil, e
		}
		return receiver, nil
	}
}
