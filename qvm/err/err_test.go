// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package err

import (
	"strings"
	"testing"

	"github.com/karmarun/lsq/qvm/val"
)

func TestStageErrorChain(t *testing.T) {
	inner := MissingKeyError{Key: "foo"}
	e := Error(StageError{Stage: 1, Filter: ".foo", Child_: inner})

	if Root(e) != Error(inner) {
		t.Fatalf("unexpected root: %#v", Root(e))
	}
	s := e.String()
	if !strings.Contains(s, "#2: .foo") || !strings.Contains(s, "Missing Key Error") {
		t.Fatalf("unexpected rendering:\n%s", s)
	}
	v := e.Value().(val.List)
	if !v[0].Equals(val.Symbol("stage-error")) {
		t.Fatalf("unexpected tag: %#v", v[0])
	}
	cause := v[3].(val.List)[1].(val.List)
	if !cause[0].Equals(val.Symbol("missing-key-error")) {
		t.Fatalf("unexpected cause: %#v", cause)
	}
}

func TestQuerySyntaxErrorMarker(t *testing.T) {
	e := QuerySyntaxError{Problem: "unexpected token", Offset: 3, Query: ".a[x]"}
	if !strings.Contains(e.String(), ".a[x]\n   ^") {
		t.Fatalf("marker misplaced:\n%s", e.String())
	}
}

func TestWrongTypeErrorSections(t *testing.T) {
	s := WrongTypeError{Expected: val.ContainerType, Actual: val.TypeInt}.String()
	if strings.Contains(s, "Problem") {
		t.Fatalf("empty problem rendered:\n%s", s)
	}
	if !strings.Contains(s, "list|vector") || !strings.Contains(s, "int") {
		t.Fatalf("types missing:\n%s", s)
	}
}
