// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
//
// Package builtin holds the fixed table of native functions callable from
// FuncCall stages.
package builtin

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/karmarun/lsq/codec/sexp"
	"github.com/karmarun/lsq/qvm/err"
	"github.com/karmarun/lsq/qvm/val"
)

// Func is a native function. A nil result without error means "no value":
// the calling stage drops the branch.
type Func func(receiver val.Value, args []val.Value) (val.Value, err.Error)

// Registry maps function names to implementations. It is never written
// after construction.
type Registry map[string]Func

func (r Registry) Lookup(name string) (Func, err.Error) {
	f, ok := r[name]
	if !ok {
		return nil, err.UnknownFunctionError{Name: name}
	}
	return f, nil
}

// Names returns all registered names, sorted.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Diagnostics receives the output of debug.
var Diagnostics = log.New(os.Stderr, "", 0)

var (
	builtinsOnce sync.Once
	builtins     Registry
)

// Builtins returns the process-wide registry, building it on first use.
func Builtins() Registry {
	builtinsOnce.Do(func() {
		builtins = newRegistry()
	})
	return builtins
}

func newRegistry() Registry {
	r := make(Registry, 64)
	for _, name := range accessorNames(4) {
		r[name] = accessor(name)
	}
	r["eqv?"] = eqv
	r["=?"] = ordering("=?", func(c int) bool { return c == 0 })
	r[">=?"] = ordering(">=?", func(c int) bool { return c >= 0 })
	r[">?"] = ordering(">?", func(c int) bool { return c > 0 })
	r["<=?"] = ordering("<=?", func(c int) bool { return c <= 0 })
	r["<?"] = ordering("<?", func(c int) bool { return c < 0 })
	r["filter"] = filter(r)
	r["select"] = select_(r)
	r["map"] = map_(r)
	r["debug"] = debug
	return r
}

func arity(name string, args []val.Value, n int) err.Error {
	if len(args) >= n {
		return nil
	}
	return err.WrongTypeError{
		Problem: fmt.Sprintf("%s expects at least %d argument(s), got %d", name, n, len(args)),
	}
}

func debug(receiver val.Value, args []val.Value) (val.Value, err.Error) {
	ss := make([]string, len(args), len(args))
	for i, a := range args {
		ss[i] = sexp.Compact(a)
	}
	Diagnostics.Printf("; is '%s & args is '(%s)", sexp.Compact(receiver), strings.Join(ss, " "))
	return receiver, nil
}
