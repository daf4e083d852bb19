// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
//
// Package binary is a lossless tagged binary encoding of values, for piping
// data between lsq processes without re-reading text.
//
// Each value is a tag byte followed by its payload. Lengths and numbers are
// big-endian. Newlines between top-level values are skipped.
package binary

import (
	"fmt"
	"log"
	"math"

	"github.com/karmarun/lsq/codec"
	"github.com/karmarun/lsq/qvm/err"
	"github.com/karmarun/lsq/qvm/val"
)

type Tag byte

const (
	TagInt             Tag = 1
	TagFloat           Tag = 2
	TagString          Tag = 3
	TagBool            Tag = 4
	TagSymbol          Tag = 5
	TagChar            Tag = 6
	TagNil             Tag = 7
	TagQuote           Tag = 8
	TagQuasiquote      Tag = 9
	separator          = '\n' // never a tag
	TagUnquote         Tag = 11
	TagUnquoteSplicing Tag = 12
	TagList            Tag = 13
	TagVector          Tag = 14
)

func (t Tag) String() string {
	switch t {
	case TagInt:
		return "int"
	case TagFloat:
		return "float"
	case TagString:
		return "string"
	case TagBool:
		return "bool"
	case TagSymbol:
		return "symbol"
	case TagChar:
		return "char"
	case TagNil:
		return "nil"
	case TagQuote:
		return "quote"
	case TagQuasiquote:
		return "quasiquote"
	case TagUnquote:
		return "unquote"
	case TagUnquoteSplicing:
		return "unquote-splicing"
	case TagList:
		return "list"
	case TagVector:
		return "vector"
	}
	return "unknown"
}

var sharedInstance = BinaryCodec{}

func init() {
	codec.Register("binary", func() codec.Interface { return sharedInstance })
}

type BinaryCodec struct{}

func (BinaryCodec) Decode(data []byte) ([]val.Value, err.Error) {
	return Decode(data)
}

func (BinaryCodec) Encode(v val.Value, _ codec.Options) []byte {
	return Encode(v)
}

func Encode(v val.Value) []byte {
	return encode(v, make([]byte, 0, 1024*4))
}

func encode(v val.Value, buf []byte) []byte {
	if v == val.Nil {
		return append(buf, byte(TagNil))
	}
	switch v := v.(type) {

	case val.Int:
		buf = append(buf, byte(TagInt))
		return writeUint64(uint64(v), buf)

	case val.Float:
		buf = append(buf, byte(TagFloat))
		return writeUint64(math.Float64bits(float64(v)), buf)

	case val.String:
		buf = append(buf, byte(TagString))
		return writeString(string(v), buf)

	case val.Symbol:
		buf = append(buf, byte(TagSymbol))
		return writeString(string(v), buf)

	case val.Bool:
		buf = append(buf, byte(TagBool))
		if v {
			return append(buf, 't')
		}
		return append(buf, 'f')

	case val.Char:
		buf = append(buf, byte(TagChar))
		return writeUint32(uint32(v), buf)

	case val.Quote:
		return encode(v.Value, append(buf, byte(TagQuote)))

	case val.Quasiquote:
		return encode(v.Value, append(buf, byte(TagQuasiquote)))

	case val.Unquote:
		return encode(v.Value, append(buf, byte(TagUnquote)))

	case val.UnquoteSplicing:
		return encode(v.Value, append(buf, byte(TagUnquoteSplicing)))

	case val.List:
		buf = append(buf, byte(TagList))
		buf = writeLength(len(v), buf)
		for _, w := range v {
			buf = encode(w, buf)
		}
		return buf

	case val.Vector:
		buf = append(buf, byte(TagVector))
		buf = writeLength(len(v), buf)
		for _, w := range v {
			buf = encode(w, buf)
		}
		return buf
	}

	log.Panicf("binary.Encode: unhandled value type: %T", v)
	return nil
}

// Decode reads top-level values until data is exhausted.
func Decode(data []byte) ([]val.Value, err.Error) {
	out := make([]val.Value, 0, 8)
	rest := data
	for {
		for len(rest) > 0 && rest[0] == separator {
			rest = rest[1:]
		}
		if len(rest) == 0 {
			return out, nil
		}
		v, d, problem := decode(rest)
		if problem != "" {
			return nil, err.InputParsingError{Problem: problem, Offset: len(data) - len(d)}
		}
		out, rest = append(out, v), d
	}
}

// decode returns the remaining input, or a non-empty problem.
func decode(data []byte) (val.Value, []byte, string) {

	r, data, problem := readBytes(1, data)
	if problem != "" {
		return nil, data, problem
	}

	switch t := Tag(r[0]); t {

	case TagInt:
		u, data, problem := readUint64(data)
		return val.Int(int64(u)), data, problem

	case TagFloat:
		u, data, problem := readUint64(data)
		return val.Float(math.Float64frombits(u)), data, problem

	case TagString:
		s, data, problem := readString(data)
		return val.String(s), data, problem

	case TagSymbol:
		s, data, problem := readString(data)
		return val.Symbol(s), data, problem

	case TagBool:
		bs, data, problem := readBytes(1, data)
		if problem != "" {
			return nil, data, problem
		}
		switch bs[0] {
		case 't':
			return val.Bool(true), data, ""
		case 'f':
			return val.Bool(false), data, ""
		}
		return nil, data, fmt.Sprintf("invalid bool byte: %#x", bs[0])

	case TagChar:
		u, data, problem := readUint32(data)
		return val.Char(rune(u)), data, problem

	case TagNil:
		return val.Nil, data, ""

	case TagQuote, TagQuasiquote, TagUnquote, TagUnquoteSplicing:
		w, data, problem := decode(data)
		if problem != "" {
			return nil, data, problem
		}
		switch t {
		case TagQuote:
			return val.Quote{Value: w}, data, ""
		case TagQuasiquote:
			return val.Quasiquote{Value: w}, data, ""
		case TagUnquote:
			return val.Unquote{Value: w}, data, ""
		}
		return val.UnquoteSplicing{Value: w}, data, ""

	case TagList, TagVector:
		l, data, problem := readLength(data)
		if problem != "" {
			return nil, data, problem
		}
		if l > len(data) { // every element takes at least one byte
			return nil, data, fmt.Sprintf("length exceeds input bounds: %d", l)
		}
		vs := make([]val.Value, l, l)
		for i := 0; i < l; i++ {
			w, d, problem := decode(data)
			if problem != "" {
				return nil, d, problem
			}
			vs[i], data = w, d
		}
		if t == TagVector {
			return val.Vector(vs), data, ""
		}
		return val.List(vs), data, ""

	}

	return nil, data, fmt.Sprintf("unknown tag: %#x", r[0])
}
