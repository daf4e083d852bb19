// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package builtin

import (
	"fmt"
	"log"

	"github.com/karmarun/lsq/qvm/err"
	"github.com/karmarun/lsq/qvm/val"
)

// accessorNames lists car, cdr and all their compositions up to depth letters.
func accessorNames(depth int) []string {
	out := make([]string, 0, 32)
	paths := []string{""}
	for d := 1; d <= depth; d++ {
		next := make([]string, 0, len(paths)*2)
		for _, p := range paths {
			next = append(next, p+"a", p+"d")
		}
		for _, p := range next {
			out = append(out, "c"+p+"r")
		}
		paths = next
	}
	return out
}

// accessor builds the function named by a c[ad]+r name.
// Letters apply right to left.
func accessor(name string) Func {
	path := name[1 : len(name)-1]
	for _, c := range path {
		if c != 'a' && c != 'd' {
			log.Panicf("builtin.accessor: invalid name: %s", name)
		}
	}
	return func(receiver val.Value, _ []val.Value) (val.Value, err.Error) {
		v := receiver
		for i := len(path) - 1; i >= 0; i-- {
			elements, ok := val.Elements(v)
			if !ok {
				return nil, err.WrongTypeError{
					Problem:  fmt.Sprintf("%s: c%cr of a non-container", name, path[i]),
					Expected: val.ContainerType,
					Actual:   v.Type(),
				}
			}
			switch path[i] {
			case 'a':
				if len(elements) == 0 {
					return nil, err.IndexOutOfBoundsError{Index: 0, Length: 0}
				}
				v = elements[0]
			case 'd':
				rest := make(val.List, 0, len(elements))
				if len(elements) > 0 {
					rest = append(rest, elements[1:]...)
				}
				v = rest
			}
		}
		return v, nil
	}
}
