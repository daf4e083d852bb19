// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package builtin

import (
	"fmt"

	"github.com/karmarun/lsq/qvm/err"
	"github.com/karmarun/lsq/qvm/val"
)

func eqv(receiver val.Value, args []val.Value) (val.Value, err.Error) {
	if e := arity("eqv?", args, 1); e != nil {
		return nil, e
	}
	return val.Bool(receiver.Equals(args[0])), nil
}

// ordering builds a numeric comparison. Pairs outside the numeric
// partial order are a type error.
func ordering(name string, test func(int) bool) Func {
	return func(receiver val.Value, args []val.Value) (val.Value, err.Error) {
		if e := arity(name, args, 1); e != nil {
			return nil, e
		}
		c, ok := val.Compare(receiver, args[0])
		if !ok {
			return nil, err.WrongTypeError{
				Problem:  fmt.Sprintf("%s cannot order %s and %s", name, receiver.Type(), args[0].Type()),
				Expected: val.NumericType,
				Actual:   receiver.Type() | args[0].Type(),
			}
		}
		return val.Bool(test(c)), nil
	}
}
