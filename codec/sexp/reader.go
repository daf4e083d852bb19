// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package sexp

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/karmarun/lsq/qvm/err"
	"github.com/karmarun/lsq/qvm/val"
)

var charNames = map[string]rune{
	"newline": '\n',
	"space":   ' ',
	"tab":     '\t',
	"return":  '\r',
	"nul":     0,
}

type reader struct {
	src []byte
	pos int
}

// Decode reads every top-level form of src.
func Decode(src []byte) ([]val.Value, err.Error) {
	r := &reader{src: src}
	out := make([]val.Value, 0, 8)
	for {
		if e := r.skipAtmosphere(); e != nil {
			return nil, e
		}
		if r.eof() {
			return out, nil
		}
		v, e := r.datum()
		if e != nil {
			return nil, e
		}
		out = append(out, v)
	}
}

// ReadDatum reads a single form of src starting at offset and returns
// the offset just past it.
func ReadDatum(src []byte, offset int) (val.Value, int, err.Error) {
	r := &reader{src: src, pos: offset}
	if e := r.skipAtmosphere(); e != nil {
		return nil, offset, e
	}
	if r.eof() {
		return nil, offset, r.fail("expected datum, found end of input")
	}
	v, e := r.datum()
	if e != nil {
		return nil, offset, e
	}
	return v, r.pos, nil
}

func (r *reader) eof() bool {
	return r.pos >= len(r.src)
}

func (r *reader) peek() rune {
	if r.eof() {
		return utf8.RuneError
	}
	c, _ := utf8.DecodeRune(r.src[r.pos:])
	return c
}

func (r *reader) next() rune {
	c, w := utf8.DecodeRune(r.src[r.pos:])
	r.pos += w
	return c
}

func (r *reader) fail(problem string) err.Error {
	return err.InputParsingError{Problem: problem, Offset: r.pos}
}

func isDelimiter(c rune) bool {
	switch c {
	case '(', ')', '[', ']', '"', ';', '\'', '`', ',':
		return true
	}
	return unicode.IsSpace(c)
}

// skipAtmosphere skips whitespace and comments.
func (r *reader) skipAtmosphere() err.Error {
	for !r.eof() {
		c := r.peek()
		switch {
		case unicode.IsSpace(c):
			r.next()
		case c == ';':
			for !r.eof() && r.peek() != '\n' {
				r.next()
			}
		case c == '#' && r.pos+1 < len(r.src) && r.src[r.pos+1] == '|':
			start := r.pos
			end := strings.Index(string(r.src[r.pos+2:]), "|#")
			if end < 0 {
				r.pos = start
				return r.fail("unterminated block comment")
			}
			r.pos += 2 + end + 2
		case c == '#' && r.pos+1 < len(r.src) && r.src[r.pos+1] == ';':
			r.pos += 2
			if e := r.skipAtmosphere(); e != nil {
				return e
			}
			if r.eof() {
				return r.fail("datum comment without datum")
			}
			if _, e := r.datum(); e != nil {
				return e
			}
		default:
			return nil
		}
	}
	return nil
}

func (r *reader) datum() (val.Value, err.Error) {
	switch c := r.peek(); c {
	case '(':
		r.next()
		return r.list(')', false)
	case '[':
		r.next()
		return r.list(']', false)
	case ')', ']':
		return nil, r.fail("unexpected " + string(c))
	case '\'':
		r.next()
		v, e := r.quoted()
		return val.Quote{Value: v}, e
	case '`':
		r.next()
		v, e := r.quoted()
		return val.Quasiquote{Value: v}, e
	case ',':
		r.next()
		if r.peek() == '@' {
			r.next()
			v, e := r.quoted()
			return val.UnquoteSplicing{Value: v}, e
		}
		v, e := r.quoted()
		return val.Unquote{Value: v}, e
	case '"':
		r.next()
		return r.string()
	case '|':
		r.next()
		return r.pipeSymbol()
	case '#':
		return r.hash()
	}
	return r.atom()
}

func (r *reader) quoted() (val.Value, err.Error) {
	if e := r.skipAtmosphere(); e != nil {
		return nil, e
	}
	if r.eof() {
		return nil, r.fail("expected datum after quote")
	}
	return r.datum()
}

func (r *reader) list(closer rune, vector bool) (val.Value, err.Error) {
	start := r.pos
	elements := make([]val.Value, 0, 8)
	for {
		if e := r.skipAtmosphere(); e != nil {
			return nil, e
		}
		if r.eof() {
			r.pos = start
			return nil, r.fail("unterminated list")
		}
		c := r.peek()
		if c == closer {
			r.next()
			break
		}
		if c == ')' || c == ']' {
			return nil, r.fail("mismatched " + string(c))
		}
		v, e := r.datum()
		if e != nil {
			return nil, e
		}
		elements = append(elements, v)
	}
	if vector {
		return val.Vector(elements), nil
	}
	if len(elements) == 0 {
		return val.Nil, nil
	}
	return val.List(elements), nil
}

func (r *reader) string() (val.Value, err.Error) {
	start := r.pos - 1
	var sb strings.Builder
	for {
		if r.eof() {
			r.pos = start
			return nil, r.fail("unterminated string")
		}
		c := r.next()
		switch c {
		case '"':
			return val.String(sb.String()), nil
		case '\\':
			if r.eof() {
				r.pos = start
				return nil, r.fail("unterminated string")
			}
			switch d := r.next(); d {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '0':
				sb.WriteRune(0)
			default:
				sb.WriteRune(d)
			}
		default:
			sb.WriteRune(c)
		}
	}
}

func (r *reader) pipeSymbol() (val.Value, err.Error) {
	start := r.pos - 1
	sb := strings.Builder{}
	for !r.eof() {
		switch c := r.next(); c {
		case '|':
			return val.Symbol(sb.String()), nil
		case '\\':
			if r.eof() {
				break
			}
			sb.WriteRune(r.next())
		default:
			sb.WriteRune(c)
		}
	}
	r.pos = start
	return nil, r.fail("unterminated |symbol|")
}

func (r *reader) token() string {
	start := r.pos
	for !r.eof() && !isDelimiter(r.peek()) {
		r.next()
	}
	return string(r.src[start:r.pos])
}

func (r *reader) hash() (val.Value, err.Error) {
	start := r.pos
	r.next() // '#'
	if r.eof() {
		return nil, r.fail("unexpected end of input after #")
	}
	switch r.peek() {
	case '(':
		r.next()
		return r.list(')', true)
	case '\\':
		r.next()
		if r.eof() {
			return nil, r.fail("unexpected end of input in character")
		}
		c := r.next()
		rest := r.token()
		if rest == "" {
			return val.Char(c), nil
		}
		if named, ok := charNames[string(c)+rest]; ok {
			return val.Char(named), nil
		}
		r.pos = start
		return nil, r.fail("unknown character name: " + string(c) + rest)
	case ':':
		r.next()
		name := r.token()
		if name == "" {
			r.pos = start
			return nil, r.fail("empty keyword")
		}
		return val.Symbol(name), nil
	}
	switch tok := r.token(); tok {
	case "t", "true":
		return val.Bool(true), nil
	case "f", "false":
		return val.Bool(false), nil
	default:
		r.pos = start
		return nil, r.fail("bad # syntax: #" + tok)
	}
}

func (r *reader) atom() (val.Value, err.Error) {
	tok := r.token()
	if tok == "" {
		return nil, r.fail("unexpected character " + strconv.QuoteRune(r.peek()))
	}
	if f, ok := specialFloats[tok]; ok {
		return val.Float(f), nil
	}
	if looksNumeric(tok) {
		if i, e := strconv.ParseInt(tok, 10, 64); e == nil {
			return val.Int(i), nil
		}
		if f, e := strconv.ParseFloat(tok, 64); e == nil {
			return val.Float(f), nil
		}
	}
	if len(tok) > 1 && tok[0] == ':' {
		return val.Symbol(tok[1:]), nil
	}
	if len(tok) > 1 && tok[len(tok)-1] == ':' {
		return val.Symbol(tok[:len(tok)-1]), nil
	}
	return val.Symbol(tok), nil
}

var specialFloats = map[string]float64{
	"+nan.0": math.NaN(),
	"-nan.0": math.NaN(),
	"+inf.0": math.Inf(1),
	"-inf.0": math.Inf(-1),
}

func isSpecialFloat(tok string) bool {
	_, ok := specialFloats[tok]
	return ok
}

func looksNumeric(tok string) bool {
	c := tok[0]
	if c == '+' || c == '-' || c == '.' {
		if len(tok) < 2 {
			return false
		}
		c = tok[1]
		if c == '.' && len(tok) > 2 {
			c = tok[2]
		}
	}
	return c >= '0' && c <= '9'
}
