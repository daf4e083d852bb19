// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package builtin

import (
	"bytes"
	"os"
	"sort"
	"testing"

	"github.com/kr/pretty"

	"github.com/karmarun/lsq/qvm/err"
	"github.com/karmarun/lsq/qvm/val"
)

func call(t *testing.T, name string, receiver val.Value, args ...val.Value) (val.Value, err.Error) {
	t.Helper()
	f, e := Builtins().Lookup(name)
	if e != nil {
		t.Fatalf("lookup %s: %v", name, e)
	}
	return f(receiver, args)
}

func TestAccessorNames(t *testing.T) {
	names := accessorNames(4)
	if len(names) != 30 {
		t.Fatalf("expected 30 accessors, got %d", len(names))
	}
	for _, name := range []string{"car", "cdr", "cadr", "cddddr", "caaaar", "cdadar"} {
		if _, ok := Builtins()[name]; !ok {
			t.Fatalf("missing accessor %s", name)
		}
	}
	if _, ok := Builtins()["caaaaar"]; ok {
		t.Fatal("unexpected five letter accessor")
	}
}

func TestNames(t *testing.T) {
	names := Builtins().Names()
	if len(names) != len(Builtins()) {
		t.Fatalf("expected %d names, got %d", len(Builtins()), len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("names not sorted: %v", names)
	}
	for _, name := range []string{"car", "eqv?", "filter", "debug"} {
		if i := sort.SearchStrings(names, name); i == len(names) || names[i] != name {
			t.Fatalf("missing %s in %v", name, names)
		}
	}
}

func TestAccessors(t *testing.T) {
	l := val.List{val.Int(1), val.Int(2), val.Int(3)}
	{
		cdr, e := call(t, "cdr", l)
		if e != nil {
			t.Fatal(e)
		}
		car, e := call(t, "car", cdr)
		if e != nil {
			t.Fatal(e)
		}
		cadr, e := call(t, "cadr", l)
		if e != nil {
			t.Fatal(e)
		}
		if !car.Equals(val.Int(2)) || !cadr.Equals(car) {
			t.Fatalf("car(cdr(l)) = %v, cadr(l) = %v", car, cadr)
		}
	}
	{
		out, e := call(t, "cdr", val.Vector{val.Int(1), val.Int(2)})
		if e != nil {
			t.Fatal(e)
		}
		if !out.Equals(val.List{val.Int(2)}) {
			t.Fatalf("cdr of a vector should be a list: %# v", pretty.Formatter(out))
		}
	}
	{
		nested := val.List{val.List{val.Symbol("a"), val.Symbol("b")}, val.Symbol("c")}
		out, e := call(t, "cdar", nested)
		if e != nil {
			t.Fatal(e)
		}
		if !out.Equals(val.List{val.Symbol("b")}) {
			t.Fatalf("%# v", pretty.Formatter(out))
		}
	}
	{
		out, e := call(t, "cdr", val.List{})
		if e != nil || !out.Equals(val.List{}) {
			t.Fatalf("cdr of empty: %v %v", out, e)
		}
	}
	{
		_, e := call(t, "car", val.List{})
		if _, ok := e.(err.IndexOutOfBoundsError); !ok {
			t.Fatalf("expected IndexOutOfBoundsError, got %T", e)
		}
	}
	{
		_, e := call(t, "car", val.Int(1))
		if _, ok := e.(err.WrongTypeError); !ok {
			t.Fatalf("expected WrongTypeError, got %T", e)
		}
		_, e = call(t, "car", val.Nil)
		if _, ok := e.(err.WrongTypeError); !ok {
			t.Fatalf("nil is not a container, got %T", e)
		}
	}
}

func TestComparisons(t *testing.T) {
	cases := []struct {
		name     string
		receiver val.Value
		arg      val.Value
		expect   bool
	}{
		{"eqv?", val.List{val.Int(1)}, val.List{val.Int(1)}, true},
		{"eqv?", val.Int(1), val.Float(1), false},
		{"eqv?", val.Symbol("a"), val.String("a"), false},
		{"=?", val.Int(1), val.Float(1), true},
		{">?", val.Int(3), val.Int(2), true},
		{">?", val.Int(2), val.Int(2), false},
		{">=?", val.Int(2), val.Int(2), true},
		{"<?", val.Float(1.5), val.Int(2), true},
		{"<=?", val.Int(3), val.Float(2.5), false},
	}
	for i, c := range cases {
		out, e := call(t, c.name, c.receiver, c.arg)
		if e != nil {
			t.Fatalf("case %d: %v", i+1, e)
		}
		if !out.Equals(val.Bool(c.expect)) {
			t.Fatalf("case %d: %v %s %v = %v", i+1, c.receiver, c.name, c.arg, out)
		}
	}
	for _, name := range []string{"=?", ">?", "<=?"} {
		_, e := call(t, name, val.Symbol("a"), val.Int(1))
		if _, ok := e.(err.WrongTypeError); !ok {
			t.Fatalf("%s on incomparable pair: expected WrongTypeError, got %T", name, e)
		}
	}
	{
		_, e := call(t, "eqv?", val.Int(1))
		if _, ok := e.(err.WrongTypeError); !ok {
			t.Fatalf("missing argument: expected WrongTypeError, got %T", e)
		}
	}
}

func TestGates(t *testing.T) {
	{
		out, e := call(t, "filter", val.Int(3), val.Symbol(">?"), val.Int(2))
		if e != nil || !out.Equals(val.Int(3)) {
			t.Fatalf("filter keep: %v %v", out, e)
		}
		out, e = call(t, "filter", val.Int(1), val.Symbol(">?"), val.Int(2))
		if e != nil || out != nil {
			t.Fatalf("filter drop: %v %v", out, e)
		}
	}
	{
		out, e := call(t, "filter", val.Int(1), val.Bool(true))
		if e != nil || out == nil {
			t.Fatalf("filter #t: %v %v", out, e)
		}
		out, e = call(t, "filter", val.Int(1), val.Bool(false))
		if e != nil || out != nil {
			t.Fatalf("filter #f: %v %v", out, e)
		}
	}
	{
		_, e := call(t, "filter", val.Int(1), val.Symbol("not-found-fn"))
		if _, ok := e.(err.UnknownFunctionError); !ok {
			t.Fatalf("expected UnknownFunctionError, got %T", e)
		}
		_, e = call(t, "filter", val.Int(1), val.Int(2))
		if _, ok := e.(err.WrongTypeError); !ok {
			t.Fatalf("expected WrongTypeError, got %T", e)
		}
	}
	{
		out, e := call(t, "select", val.Symbol("r"), val.Symbol("eqv?"), val.Int(5), val.Int(5))
		if e != nil || !out.Equals(val.Symbol("r")) {
			t.Fatalf("select keep: %v %v", out, e)
		}
		out, e = call(t, "select", val.Symbol("r"), val.Symbol("eqv?"), val.Int(5), val.Int(6))
		if e != nil || out != nil {
			t.Fatalf("select drop: %v %v", out, e)
		}
	}
	{
		out, e := call(t, "map", val.Symbol("r"), val.Int(5), val.Symbol("<?"), val.Int(6))
		if e != nil || !out.Equals(val.Symbol("r")) {
			t.Fatalf("map keep: %v %v", out, e)
		}
		out, e = call(t, "map", val.Symbol("r"), val.Int(7), val.Symbol("<?"), val.Int(6))
		if e != nil || out != nil {
			t.Fatalf("map drop: %v %v", out, e)
		}
	}
	{
		out, e := call(t, "filter", val.Int(1), val.Symbol("filter"), val.Bool(false))
		if e != nil || out != nil {
			t.Fatalf("nested gate returning no value should drop: %v %v", out, e)
		}
	}
}

func TestDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	Diagnostics.SetOutput(buf)
	defer Diagnostics.SetOutput(os.Stderr)
	out, e := call(t, "debug", val.List{val.Int(1)}, val.String("x"))
	if e != nil || !out.Equals(val.List{val.Int(1)}) {
		t.Fatalf("%v %v", out, e)
	}
	if s := buf.String(); s != "; is '(1) & args is '(\"x\")\n" {
		t.Fatalf("%q", s)
	}
}
