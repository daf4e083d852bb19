// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package db

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/karmarun/lsq/qvm/err"
)

func open(t *testing.T) *Store {
	t.Helper()
	s, e := Open(filepath.Join(t.TempDir(), "lsq.db"))
	if e != nil {
		t.Fatal(e)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoad(t *testing.T) {
	s := open(t)
	if e := s.Save("names", ".items[] | .name"); e != nil {
		t.Fatal(e)
	}
	if e := s.Save("big", "filter(>? 100)"); e != nil {
		t.Fatal(e)
	}
	src, e := s.Load("names")
	if e != nil {
		t.Fatal(e)
	}
	if src != ".items[] | .name" {
		t.Fatalf("got %q", src)
	}
	names, e := s.List()
	if e != nil {
		t.Fatal(e)
	}
	if !reflect.DeepEqual(names, []string{"big", "names"}) {
		t.Fatalf("%v", names)
	}
	if e := s.Forget("big"); e != nil {
		t.Fatal(e)
	}
	if _, e := s.Load("big"); e == nil {
		t.Fatal("expected forgotten query to be gone")
	}
}

func TestErrors(t *testing.T) {
	s := open(t)
	{
		_, e := s.Load("missing")
		if _, ok := e.(err.StoreError); !ok {
			t.Fatalf("expected StoreError, got %T", e)
		}
	}
	{
		e := s.Forget("missing")
		if _, ok := e.(err.StoreError); !ok {
			t.Fatalf("expected StoreError, got %T", e)
		}
	}
	{
		e := s.Save("bad name", ".")
		if _, ok := e.(err.StoreError); !ok {
			t.Fatalf("expected StoreError, got %T", e)
		}
	}
	{
		e := s.Save("broken", ".a |")
		if _, ok := e.(err.QuerySyntaxError); !ok {
			t.Fatalf("expected QuerySyntaxError, got %T", e)
		}
	}
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lsq.db")
	s, e := Open(path)
	if e != nil {
		t.Fatal(e)
	}
	if e := s.Save("q", "[0]"); e != nil {
		t.Fatal(e)
	}
	if e := s.Close(); e != nil {
		t.Fatal(e)
	}
	s, e = Open(path)
	if e != nil {
		t.Fatal(e)
	}
	defer s.Close()
	if src, e := s.Load("q"); e != nil || src != "[0]" {
		t.Fatalf("%q %v", src, e)
	}
}
