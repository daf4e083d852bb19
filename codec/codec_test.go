// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package codec

import (
	"testing"

	"github.com/karmarun/lsq/qvm/err"
	"github.com/karmarun/lsq/qvm/val"
)

type nopCodec struct{}

func (nopCodec) Decode([]byte) ([]val.Value, err.Error) { return nil, nil }
func (nopCodec) Encode(val.Value, Options) []byte      { return nil }

func TestRegistry(t *testing.T) {
	Register("nop", func() Interface { return nopCodec{} })
	if Get("nop") == nil {
		t.Fatal("registered codec not found")
	}
	if Get("missing") != nil {
		t.Fatal("unexpected codec")
	}
	found := false
	for _, k := range Available() {
		found = found || k == "nop"
	}
	if !found {
		t.Fatalf("nop missing from %v", Available())
	}
	defer func() {
		if recover() == nil {
			t.Fatal("duplicate registration should panic")
		}
	}()
	Register("nop", func() Interface { return nopCodec{} })
}

func TestParseLayout(t *testing.T) {
	for _, l := range []Layout{LayoutData, LayoutCode, LayoutCompact} {
		if p, ok := ParseLayout(l.String()); !ok || p != l {
			t.Fatalf("%s: %v %v", l, p, ok)
		}
	}
	if _, ok := ParseLayout("pretty"); ok {
		t.Fatal("unexpected layout")
	}
}
