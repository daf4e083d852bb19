// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package sexp

import (
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/karmarun/lsq/codec"
	"github.com/karmarun/lsq/qvm/val"
)

// code layout breaks composites wider than this
const lineWidth = 80

type encoder struct {
	opts codec.Options
	buf  []byte
	flat int // > 0 while rendering on a single line
}

func Encode(v val.Value, opts codec.Options) []byte {
	if s, ok := v.(val.String); ok && opts.Raw {
		return []byte(s)
	}
	c := &encoder{opts: opts, buf: make([]byte, 0, 1024)}
	c.value(v, 0)
	if opts.Color {
		return highlight(c.buf)
	}
	return c.buf
}

// Compact renders v on one line without colours.
func Compact(v val.Value) string {
	return string(Encode(v, codec.Options{Layout: codec.LayoutCompact}))
}

func (c *encoder) value(v val.Value, column int) {
	if v == nil {
		log.Panicln("sexp.Encode: value == nil")
	}
	switch v := v.(type) {
	case val.List:
		c.composite("(", v, column)
	case val.Vector:
		c.composite("#(", v, column)
	case val.Quote:
		c.buf = append(c.buf, "'"...)
		c.value(v.Value, column+1)
	case val.Quasiquote:
		c.buf = append(c.buf, "`"...)
		c.value(v.Value, column+1)
	case val.Unquote:
		c.buf = append(c.buf, ","...)
		c.value(v.Value, column+1)
	case val.UnquoteSplicing:
		c.buf = append(c.buf, ",@"...)
		c.value(v.Value, column+2)
	default:
		c.atom(v)
	}
}

func (c *encoder) composite(open string, elements []val.Value, column int) {
	if c.flat > 0 || len(elements) == 0 || c.fits(open, elements, column) {
		c.flat++
		c.buf = append(c.buf, open...)
		for i, w := range elements {
			if i > 0 {
				c.buf = append(c.buf, ' ')
			}
			c.value(w, 0)
		}
		c.buf = append(c.buf, ')')
		c.flat--
		return
	}

	c.buf = append(c.buf, open...)
	inner := column + len(open)

	switch c.opts.Layout {
	case codec.LayoutCode:
		c.value(elements[0], inner)
		i := 1
		if isFlat(elements[0]) && len(elements) > 1 && isFlat(elements[1]) {
			c.buf = append(c.buf, ' ')
			c.value(elements[1], 0)
			i = 2
		}
		for ; i < len(elements); i++ {
			c.newline(column + 2)
			c.value(elements[i], column+2)
		}
	default:
		for i, w := range elements {
			if i > 0 {
				c.newline(inner)
			}
			c.value(w, inner)
		}
	}
	c.buf = append(c.buf, ')')
}

func (c *encoder) fits(open string, elements []val.Value, column int) bool {
	switch c.opts.Layout {
	case codec.LayoutCompact:
		return true
	case codec.LayoutCode:
		width := len(open) + 1
		for i, w := range elements {
			if i > 0 {
				width++
			}
			width += len(Compact(w))
			if column+width > lineWidth {
				return false
			}
		}
		return true
	}
	for _, w := range elements {
		if !isFlat(w) {
			return false
		}
	}
	return true
}

// isFlat reports whether v is an atom, possibly behind quote prefixes.
func isFlat(v val.Value) bool {
	if w, ok := val.Unwrap(v); ok {
		return isFlat(w)
	}
	return v.Primitive()
}

func (c *encoder) newline(column int) {
	c.buf = append(c.buf, '\n')
	for i := 0; i < column; i++ {
		c.buf = append(c.buf, ' ')
	}
}

func (c *encoder) atom(v val.Value) {
	switch v := v.(type) {
	case val.Int:
		c.buf = strconv.AppendInt(c.buf, int64(v), 10)
	case val.Float:
		c.buf = append(c.buf, formatFloat(float64(v))...)
	case val.String:
		c.buf = append(c.buf, quoteString(string(v))...)
	case val.Bool:
		if v {
			c.buf = append(c.buf, "#t"...)
		} else {
			c.buf = append(c.buf, "#f"...)
		}
	case val.Char:
		c.buf = append(c.buf, formatChar(rune(v))...)
	case val.Symbol:
		c.buf = append(c.buf, formatSymbol(string(v))...)
	default:
		if v == val.Nil {
			c.buf = append(c.buf, "()"...)
			return
		}
		log.Panicf("sexp.Encode: unhandled value type: %T", v)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "+nan.0"
	case math.IsInf(f, 1):
		return "+inf.0"
	case math.IsInf(f, -1):
		return "-inf.0"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}

func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case 0:
			sb.WriteString(`\0`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func formatChar(r rune) string {
	for name, named := range charNames {
		if r == named {
			return `#\` + name
		}
	}
	return `#\` + string(r)
}

// formatSymbol wraps symbols in pipes when they would not read back as themselves.
func formatSymbol(s string) string {
	if s == "" || s[0] == '#' || s[0] == ':' || s[len(s)-1] == ':' || looksNumeric(s) || isSpecialFloat(s) {
		return quoteSymbol(s)
	}
	for _, r := range s {
		if isDelimiter(r) || r == '|' {
			return quoteSymbol(s)
		}
	}
	return s
}

func quoteSymbol(s string) string {
	var sb strings.Builder
	sb.WriteByte('|')
	for _, r := range s {
		if r == '|' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('|')
	return sb.String()
}
