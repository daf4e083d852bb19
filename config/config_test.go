// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package config

import (
	"testing"
)

func TestGetenv(t *testing.T) {
	t.Setenv("LSQ_TEST_STRING", "code")
	t.Setenv("LSQ_TEST_BOOL", "true")
	t.Setenv("LSQ_TEST_INT", "4")
	t.Setenv("LSQ_TEST_BAD", "many")

	if v := getenv("LSQ_TEST_STRING", "data"); v != "code" {
		t.Fatalf("getenv: %q", v)
	}
	if v := getenv("LSQ_TEST_UNSET", "data"); v != "data" {
		t.Fatalf("getenv default: %q", v)
	}
	if !getenvBool("LSQ_TEST_BOOL", false) {
		t.Fatal("getenvBool")
	}
	if getenvBool("LSQ_TEST_BAD", false) {
		t.Fatal("getenvBool should fall back on unparsable values")
	}
	if v := getenvInt("LSQ_TEST_INT", 1); v != 4 {
		t.Fatalf("getenvInt: %d", v)
	}
	if v := getenvInt("LSQ_TEST_BAD", 1); v != 1 {
		t.Fatalf("getenvInt default: %d", v)
	}
}
