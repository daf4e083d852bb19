// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
//
// Package json maps JSON documents onto S-expression values and back.
// Objects become lists of alternating symbol keys and values, so that
// key filters address object members.
package json

import (
	"bytes"
	ej "encoding/json"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/karmarun/lsq/codec"
	"github.com/karmarun/lsq/qvm/err"
	"github.com/karmarun/lsq/qvm/val"
)

func init() {
	codec.Register("json", func() codec.Interface { return JsonCodec{} })
}

type JsonCodec struct{}

func (JsonCodec) Decode(json []byte) ([]val.Value, err.Error) {
	return Decode(json)
}

func (JsonCodec) Encode(v val.Value, opts codec.Options) []byte {
	return Encode(v, opts)
}

// Decode reads a stream of JSON documents, one value per document.
func Decode(json []byte) ([]val.Value, err.Error) {
	dec := ej.NewDecoder(bytes.NewReader(json))
	dec.UseNumber()
	out := make([]val.Value, 0, 8)
	for {
		v, e := decode(dec)
		if e == io.EOF {
			return out, nil
		}
		if e != nil {
			return nil, err.InputParsingError{Problem: e.Error(), Offset: int(dec.InputOffset())}
		}
		out = append(out, v)
	}
}

func decode(dec *ej.Decoder) (val.Value, error) {
	tok, e := dec.Token()
	if e != nil {
		return nil, e
	}
	switch tok := tok.(type) {
	case ej.Delim:
		switch tok {
		case '[':
			vs := make(val.Vector, 0, 8)
			for dec.More() {
				v, e := decode(dec)
				if e != nil {
					return nil, unexpectedEOF(e)
				}
				vs = append(vs, v)
			}
			if _, e := dec.Token(); e != nil {
				return nil, unexpectedEOF(e)
			}
			return vs, nil
		case '{':
			ls := make(val.List, 0, 8)
			for dec.More() {
				k, e := dec.Token()
				if e != nil {
					return nil, unexpectedEOF(e)
				}
				v, e := decode(dec)
				if e != nil {
					return nil, unexpectedEOF(e)
				}
				ls = append(ls, val.Symbol(k.(string)), v)
			}
			if _, e := dec.Token(); e != nil {
				return nil, unexpectedEOF(e)
			}
			return ls, nil
		}
		return nil, errors.New("unexpected " + tok.String())
	case ej.Number:
		if i, e := tok.Int64(); e == nil {
			return val.Int(i), nil
		}
		f, e := tok.Float64()
		if e != nil {
			return nil, e
		}
		return val.Float(f), nil
	case string:
		return val.String(tok), nil
	case bool:
		return val.Bool(tok), nil
	case nil:
		return val.Nil, nil
	}
	log.Panicf("json.Decode: unhandled token type: %T", tok)
	return nil, nil
}

func unexpectedEOF(e error) error {
	if e == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return e
}

func Encode(v val.Value, opts codec.Options) []byte {
	if s, ok := v.(val.String); ok && opts.Raw {
		return []byte(s)
	}
	indent := ""
	if opts.Layout != codec.LayoutCompact {
		indent = "  "
	}
	return encode(v, indent, 0, make([]byte, 0, 1024))
}

func encode(value val.Value, indent string, depth int, bs []byte) []byte {
	if value == nil {
		log.Panicln("json.Encode: value == nil")
	}
	if value == val.Nil {
		return append(bs, `null`...)
	}
	switch v := value.(type) {
	case val.List:
		return encodeArray(v, indent, depth, bs)
	case val.Vector:
		return encodeArray(v, indent, depth, bs)
	case val.Quote:
		return encodeArray([]val.Value{val.String("quote"), v.Value}, indent, depth, bs)
	case val.Quasiquote:
		return encodeArray([]val.Value{val.String("quasiquote"), v.Value}, indent, depth, bs)
	case val.Unquote:
		return encodeArray([]val.Value{val.String("unquote"), v.Value}, indent, depth, bs)
	case val.UnquoteSplicing:
		return encodeArray([]val.Value{val.String("unquote-splicing"), v.Value}, indent, depth, bs)
	case val.String:
		cs, _ := ej.Marshal(string(v))
		return append(bs, cs...)
	case val.Symbol:
		cs, _ := ej.Marshal(string(v))
		return append(bs, cs...)
	case val.Char:
		cs, _ := ej.Marshal(string(rune(v)))
		return append(bs, cs...)
	case val.Int:
		return strconv.AppendInt(bs, int64(v), 10)
	case val.Float:
		return strconv.AppendFloat(bs, float64(v), 'g', -1, 64)
	case val.Bool:
		return strconv.AppendBool(bs, bool(v))
	}
	log.Panicf("json.Encode: unhandled value type: %T", value)
	return nil
}

func encodeArray(vs []val.Value, indent string, depth int, bs []byte) []byte {
	bs = append(bs, '[')
	if len(vs) == 0 {
		return append(bs, ']')
	}
	for i, w := range vs {
		if i > 0 {
			bs = append(bs, ',')
		}
		if indent != "" {
			bs = append(bs, '\n')
			bs = append(bs, strings.Repeat(indent, depth+1)...)
		}
		bs = encode(w, indent, depth+1, bs)
	}
	if indent != "" {
		bs = append(bs, '\n')
		bs = append(bs, strings.Repeat(indent, depth)...)
	}
	return append(bs, ']')
}
