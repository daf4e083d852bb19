// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package binary

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"

	"github.com/karmarun/lsq/codec"
	"github.com/karmarun/lsq/qvm/err"
	"github.com/karmarun/lsq/qvm/val"
)

func TestRoundTrip(t *testing.T) {
	vs := []val.Value{
		val.List{
			val.Symbol("define"),
			val.Vector{val.Int(-1), val.Float(2.5), val.Char('λ')},
			val.Quasiquote{Value: val.List{val.Unquote{Value: val.Symbol("x")}, val.UnquoteSplicing{Value: val.Nil}}},
			val.Quote{Value: val.String("str")},
			val.Bool(true),
			val.List{},
		},
		val.Nil,
		val.Int(10), // encodes a newline byte inside the payload
	}
	data := []byte{}
	for _, v := range vs {
		data = append(data, Encode(v)...)
		data = append(data, '\n')
	}
	out, e := Decode(data)
	require.Nil(t, e)
	require.Len(t, out, len(vs))
	for i := range vs {
		require.True(t, vs[i].Equals(out[i]), "%v", pretty.Diff(vs[i], out[i]))
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, data := range [][]byte{
		{byte(TagInt), 0, 0},
		{byte(TagList), 0, 0, 0, 2, byte(TagNil)},
		{byte(TagBool), 'x'},
		{99},
		{byte(TagString), 0, 0, 0, 9, 'a'},
	} {
		_, e := Decode(data)
		_, ok := e.(err.InputParsingError)
		require.True(t, ok, "%v: %T", data, e)
	}
}

func TestRegistered(t *testing.T) {
	require.NotNil(t, codec.Get("binary"))
}
