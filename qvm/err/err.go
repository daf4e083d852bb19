// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package err

import (
	"strings"

	"github.com/karmarun/lsq/qvm/val"
)

type Error interface {
	Value() val.Value // serializable
	Error() string    // should be proxy to String() (to implement error interface)
	String() string   // human readable string
	Child() Error     // may be nil
}

func title(s string) string {
	return s + "\n" + strings.Repeat("=", len(s)) + "\n"
}

func section(s, body string) string {
	return s + "\n" + strings.Repeat("-", len(s)) + "\n" + body + "\n\n"
}

func field(name string, v val.Value) val.Value {
	return val.List{val.Symbol(name), v}
}

func tagged(tag string, fields ...val.Value) val.List {
	l := make(val.List, 0, len(fields)+1)
	l = append(l, val.Symbol(tag))
	return append(l, fields...)
}

// Root follows the Child chain to the innermost error.
func Root(e Error) Error {
	for e != nil && e.Child() != nil {
		e = e.Child()
	}
	return e
}
