// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package sexp

import (
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"

	"github.com/karmarun/lsq/codec"
	"github.com/karmarun/lsq/qvm/val"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []val.Value
		wantErr bool
	}{
		{
			name:  "xpass: association list",
			input: "(foo 42)",
			want:  []val.Value{val.List{val.Symbol("foo"), val.Int(42)}},
		},
		{
			name:  "xpass: vector",
			input: "#(1 2 3)",
			want:  []val.Value{val.Vector{val.Int(1), val.Int(2), val.Int(3)}},
		},
		{
			name:  "xpass: empty list is nil, empty vector stays a vector",
			input: "() #() [ ]",
			want:  []val.Value{val.Nil, val.Vector{}, val.Nil},
		},
		{
			name:  "xpass: brackets read as lists",
			input: "[a (b)]",
			want:  []val.Value{val.List{val.Symbol("a"), val.List{val.Symbol("b")}}},
		},
		{
			name:  "xpass: quote forms",
			input: "'a `(b ,c ,@d)",
			want: []val.Value{
				val.Quote{Value: val.Symbol("a")},
				val.Quasiquote{Value: val.List{
					val.Symbol("b"),
					val.Unquote{Value: val.Symbol("c")},
					val.UnquoteSplicing{Value: val.Symbol("d")},
				}},
			},
		},
		{
			name:  "xpass: atoms",
			input: `"a\"b\n" #t #false #\a #\space 1.5 -3 1e3 .5 - ...`,
			want: []val.Value{
				val.String("a\"b\n"),
				val.Bool(true),
				val.Bool(false),
				val.Char('a'),
				val.Char(' '),
				val.Float(1.5),
				val.Int(-3),
				val.Float(1000),
				val.Float(0.5),
				val.Symbol("-"),
				val.Symbol("..."),
			},
		},
		{
			name:  "xpass: keywords read as symbols",
			input: "(:name a name: b #:name c)",
			want: []val.Value{val.List{
				val.Symbol("name"), val.Symbol("a"),
				val.Symbol("name"), val.Symbol("b"),
				val.Symbol("name"), val.Symbol("c"),
			}},
		},
		{
			name:  "xpass: pipe symbol",
			input: "|hello world|",
			want:  []val.Value{val.Symbol("hello world")},
		},
		{
			name:  "xpass: comments",
			input: "; line\n(a #| block |# b #;(skipped) c) ; trailing",
			want:  []val.Value{val.List{val.Symbol("a"), val.Symbol("b"), val.Symbol("c")}},
		},
		{
			name:  "xpass: empty input",
			input: " \n ",
			want:  []val.Value{},
		},
		{name: "xfail: unterminated list", input: "(a", wantErr: true},
		{name: "xfail: stray closer", input: ")", wantErr: true},
		{name: "xfail: mismatched closer", input: "(a]", wantErr: true},
		{name: "xfail: unterminated string", input: `"abc`, wantErr: true},
		{name: "xfail: bad hash", input: "#x", wantErr: true},
		{name: "xfail: unknown char name", input: `#\bogus`, wantErr: true},
		{name: "xfail: dangling quote", input: "'", wantErr: true},
		{name: "xfail: unterminated block comment", input: "#| abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, e := Decode([]byte(tt.input))
			if tt.wantErr {
				require.NotNil(t, e, "expected error, got %# v", pretty.Formatter(got))
				return
			}
			require.Nil(t, e)
			require.Equal(t, len(tt.want), len(got), "%# v", pretty.Formatter(got))
			for i := range got {
				require.True(t, tt.want[i].Equals(got[i]), "form %d: %v", i, pretty.Diff(tt.want[i], got[i]))
			}
		})
	}
}

func TestReadDatum(t *testing.T) {
	src := []byte("filter(eqv? '(1 2))")
	v, next, e := ReadDatum(src, 13)
	require.Nil(t, e)
	require.True(t, v.Equals(val.List{val.Int(1), val.Int(2)}))
	require.Equal(t, 18, next)
}

func TestCompactRoundTrip(t *testing.T) {
	for _, s := range []string{
		"(foo 42)",
		"#(1 (2 3) \"x\\ny\")",
		"()",
		"(a 'b `(c ,d ,@e))",
		"(#t #f #\\a #\\newline 1.5 2.0 -7)",
		"(|hello world| |42| |:k|)",
	} {
		vs, e := Decode([]byte(s))
		require.Nil(t, e, s)
		require.Len(t, vs, 1)
		require.Equal(t, s, Compact(vs[0]))
	}
}

func TestLayouts(t *testing.T) {
	v := val.List{
		val.Symbol("define"),
		val.List{val.Symbol("f"), val.Symbol("x")},
		val.List{val.Symbol("+"), val.Symbol("x"), val.Int(1)},
	}
	{
		got := string(Encode(v, codec.Options{Layout: codec.LayoutData}))
		require.Equal(t, "(define\n (f x)\n (+ x 1))", got)
	}
	{
		got := string(Encode(v, codec.Options{Layout: codec.LayoutCode}))
		require.Equal(t, "(define (f x) (+ x 1))", got)
	}
	{
		long := val.String(strings.Repeat("a", 90))
		w := val.List{val.Symbol("define"), val.Symbol("x"), long}
		got := string(Encode(w, codec.Options{Layout: codec.LayoutCode}))
		require.Equal(t, "(define x\n  \""+strings.Repeat("a", 90)+"\")", got)
	}
	{
		w := val.Vector{val.Int(1), val.List{val.Int(2), val.Int(3)}}
		got := string(Encode(w, codec.Options{Layout: codec.LayoutData}))
		require.Equal(t, "#(1\n  (2 3))", got)
	}
	{
		got := string(Encode(val.Quote{Value: val.List{val.Symbol("a"), val.Symbol("b")}}, codec.Options{}))
		require.Equal(t, "'(a b)", got)
	}
}

func TestRawAndColor(t *testing.T) {
	require.Equal(t, "hi", string(Encode(val.String("hi"), codec.Options{Raw: true})))
	require.Equal(t, `("hi")`, string(Encode(val.List{val.String("hi")}, codec.Options{Raw: true})))

	escape := regexp.MustCompile("\x1b\\[[0-9;]*m")
	for _, layout := range []codec.Layout{codec.LayoutData, codec.LayoutCode, codec.LayoutCompact} {
		v := val.List{
			val.Symbol("define"),
			val.List{val.Symbol("f"), val.Symbol("x")},
			val.Vector{val.String("s"), val.Int(1), val.Float(2.5), val.Bool(true), val.Char('c')},
			val.Quote{Value: val.Symbol("q")},
		}
		plain := string(Encode(v, codec.Options{Layout: layout}))
		got := string(Encode(v, codec.Options{Layout: layout, Color: true}))
		require.NotEqual(t, plain, got, "layout %v", layout)
		require.Equal(t, plain, escape.ReplaceAllString(got, ""), "layout %v", layout)
		require.Contains(t, got, "m(", "brackets are coloured")
	}
}

func TestNonFiniteAndPipeSymbols(t *testing.T) {
	for _, f := range []float64{math.Inf(1), math.Inf(-1)} {
		vs, e := Decode([]byte(Compact(val.Float(f))))
		require.Nil(t, e)
		require.True(t, val.Float(f).Equals(vs[0]), "%v", vs[0])
	}
	{
		s := Compact(val.Float(math.NaN()))
		require.Equal(t, "+nan.0", s)
		vs, e := Decode([]byte(s))
		require.Nil(t, e)
		f, ok := vs[0].(val.Float)
		require.True(t, ok)
		require.True(t, math.IsNaN(float64(f)))
	}
	for _, sym := range []string{"a|b", `a\b|`, "+inf.0", "-nan.0"} {
		s := Compact(val.Symbol(sym))
		vs, e := Decode([]byte(s))
		require.Nil(t, e, s)
		require.Len(t, vs, 1, s)
		require.True(t, val.Symbol(sym).Equals(vs[0]), "%s read back as %v", s, vs[0])
	}
	require.Equal(t, `|a\|b|`, Compact(val.Symbol("a|b")))

	_, e := Decode([]byte(`|abc\|`))
	require.NotNil(t, e)
}

func TestRegistered(t *testing.T) {
	require.NotNil(t, codec.Get("sexp"))
}
