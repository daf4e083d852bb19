// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
//
// Package query compiles query source text into filter pipelines.
//
//	.name .<name .>name    key, head and tail lookups
//	[] [i] [a:b]           iteration, index, slice (optionally after '.')
//	f  f(arg ...)          function call
//	(query)                sub-query, run once per branch
//	a,b                    union
//	a | b   a b            pipe
package query

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/karmarun/lsq/codec/sexp"
	"github.com/karmarun/lsq/qvm/err"
	"github.com/karmarun/lsq/qvm/val"
	"github.com/karmarun/lsq/qvm/xpr"
)

type parser struct {
	src string
	pos int
}

// Parse compiles src. Blank input is the identity query.
func Parse(src string) (xpr.Query, err.Error) {
	p := &parser{src: src}
	q, e := p.pipe()
	if e != nil {
		return nil, e
	}
	if !p.eof() {
		return nil, p.fail("unexpected %q", p.peek())
	}
	if len(q) == 0 {
		q = xpr.Query{xpr.Identity{}}
	}
	return q, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string) xpr.Query {
	q, e := Parse(src)
	if e != nil {
		panic(e)
	}
	return q
}

func (p *parser) fail(format string, args ...interface{}) err.Error {
	return err.QuerySyntaxError{Problem: fmt.Sprintf(format, args...), Offset: p.pos, Query: p.src}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() rune {
	if p.eof() {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

func (p *parser) peekAt(offset int) byte {
	if p.pos+offset >= len(p.src) {
		return 0
	}
	return p.src[p.pos+offset]
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// skipSpace reports whether any whitespace was skipped.
func (p *parser) skipSpace() bool {
	start := p.pos
	for !p.eof() && isSpace(p.peek()) {
		p.pos++
	}
	return p.pos > start
}

// pipe parses unions separated by '|' or whitespace, up to ')' or end of input.
func (p *parser) pipe() (xpr.Query, err.Error) {
	q := make(xpr.Query, 0, 8)
	p.skipSpace()
	for !p.eof() && p.peek() != ')' {
		u, e := p.union()
		if e != nil {
			return nil, e
		}
		q = append(q, u...)
		p.skipSpace()
		if p.peek() == '|' {
			p.pos++
			p.skipSpace()
			if p.eof() || p.peek() == ')' {
				return nil, p.fail("expected filter after '|'")
			}
		}
	}
	return q, nil
}

// union returns the stages of a single chain, or one Branch.
func (p *parser) union() (xpr.Query, err.Error) {
	first, e := p.chain()
	if e != nil {
		return nil, e
	}
	save := p.pos
	p.skipSpace()
	if p.peek() != ',' {
		p.pos = save
		return first, nil
	}
	branch := xpr.Branch{wrap(first)}
	for p.peek() == ',' {
		p.pos++
		p.skipSpace()
		next, e := p.chain()
		if e != nil {
			return nil, e
		}
		branch = append(branch, wrap(next))
		save = p.pos
		p.skipSpace()
	}
	p.pos = save
	return xpr.Query{branch}, nil
}

// wrap turns a multi-term chain into a SubQuery.
func wrap(chain xpr.Query) xpr.Filter {
	if len(chain) == 1 {
		return chain[0]
	}
	return xpr.SubQuery{Query: chain}
}

func (p *parser) chain() (xpr.Query, err.Error) {
	chain := make(xpr.Query, 0, 4)
	for !p.eof() {
		r := p.peek()
		if isSpace(r) || r == '|' || r == ',' || r == ')' {
			break
		}
		f, e := p.term()
		if e != nil {
			return nil, e
		}
		chain = append(chain, f)
	}
	if len(chain) == 0 {
		return nil, p.fail("expected filter")
	}
	return chain, nil
}

func (p *parser) term() (xpr.Filter, err.Error) {
	switch c := p.src[p.pos]; {

	case c == '.':
		p.pos++
		switch n := p.peekAt(0); {
		case n == '<':
			p.pos++
			name, e := p.name()
			if e != nil {
				return nil, e
			}
			return xpr.Head{Name: name}, nil
		case n == '>':
			p.pos++
			name, e := p.name()
			if e != nil {
				return nil, e
			}
			return xpr.Tail{Name: name}, nil
		case n == '[':
			return p.bracket()
		case n == '"' || (n != 0 && xpr.NameRune(p.peek())):
			name, e := p.name()
			if e != nil {
				return nil, e
			}
			return xpr.Key{Name: name}, nil
		}
		return xpr.Identity{}, nil

	case c == '[':
		return p.bracket()

	case c == '(':
		p.pos++
		q, e := p.pipe()
		if e != nil {
			return nil, e
		}
		if p.peek() != ')' {
			return nil, p.fail("expected ')'")
		}
		p.pos++
		if len(q) == 0 {
			q = xpr.Query{xpr.Identity{}}
		}
		return xpr.SubQuery{Query: q}, nil

	case p.identStart():
		return p.call()

	}
	return nil, p.fail("unexpected %q", p.peek())
}

// identStart reports whether an identifier begins at the current position.
func (p *parser) identStart() bool {
	c := p.peekAt(0)
	if c == 0 || c == '#' || isDigit(c) || !xpr.NameRune(p.peek()) {
		return false
	}
	if (c == '+' || c == '-') && isDigit(p.peekAt(1)) {
		return false
	}
	return true
}

func (p *parser) ident() string {
	start := p.pos
	for !p.eof() {
		r, w := utf8.DecodeRuneInString(p.src[p.pos:])
		if !xpr.NameRune(r) {
			break
		}
		p.pos += w
	}
	return p.src[start:p.pos]
}

// name reads an unquoted name or a string literal.
func (p *parser) name() (string, err.Error) {
	if p.peekAt(0) == '"' {
		v, e := p.datum()
		if e != nil {
			return "", e
		}
		return string(v.(val.String)), nil
	}
	s := p.ident()
	if s == "" {
		return "", p.fail("expected name")
	}
	return s, nil
}

func (p *parser) datum() (val.Value, err.Error) {
	v, next, e := sexp.ReadDatum([]byte(p.src), p.pos)
	if e != nil {
		if ip, ok := e.(err.InputParsingError); ok {
			return nil, err.QuerySyntaxError{Problem: ip.Problem, Offset: ip.Offset, Query: p.src}
		}
		return nil, p.fail("%s", e.Error())
	}
	p.pos = next
	return v, nil
}

// bracket parses [], [i] or [a:b]; the current byte is '['.
func (p *parser) bracket() (xpr.Filter, err.Error) {
	p.pos++
	p.skipSpace()
	if p.peek() == ']' {
		p.pos++
		return xpr.ListIter{}, nil
	}
	start, e := p.integer()
	if e != nil {
		return nil, e
	}
	p.skipSpace()
	if p.peek() == ']' {
		p.pos++
		if start == nil {
			return nil, p.fail("expected index")
		}
		return xpr.Index{Index: *start}, nil
	}
	if p.peek() != ':' {
		return nil, p.fail("expected ':' or ']'")
	}
	p.pos++
	p.skipSpace()
	end, e := p.integer()
	if e != nil {
		return nil, e
	}
	p.skipSpace()
	if p.peek() != ']' {
		return nil, p.fail("expected ']'")
	}
	p.pos++
	return xpr.Slice{Start: start, End: end}, nil
}

// integer reads an optional signed integer; nil if none is present.
func (p *parser) integer() (*int64, err.Error) {
	start := p.pos
	if c := p.peekAt(0); c == '+' || c == '-' {
		p.pos++
	}
	for isDigit(p.peekAt(0)) {
		p.pos++
	}
	s := p.src[start:p.pos]
	if s == "" {
		return nil, nil
	}
	i, e := strconv.ParseInt(s, 10, 64)
	if e != nil {
		p.pos = start
		return nil, p.fail("invalid integer %q", s)
	}
	return &i, nil
}

// call parses ident or ident(args).
func (p *parser) call() (xpr.Filter, err.Error) {
	name := p.ident()
	if p.peek() != '(' {
		return xpr.FuncCall{Name: name}, nil
	}
	p.pos++
	args := make([]xpr.Argument, 0, 4)
	for {
		for !p.eof() && (isSpace(p.peek()) || p.peek() == ',') {
			p.pos++
		}
		if p.eof() {
			return nil, p.fail("expected ')'")
		}
		if p.peek() == ')' {
			p.pos++
			return xpr.FuncCall{Name: name, Arguments: args}, nil
		}
		a, e := p.argument()
		if e != nil {
			return nil, e
		}
		args = append(args, a)
		if r := p.peek(); !p.eof() && !isSpace(r) && r != ',' && r != ')' {
			return nil, p.fail("unexpected %q after argument", r)
		}
	}
}

func (p *parser) argument() (xpr.Argument, err.Error) {
	c := p.peekAt(0)
	switch {

	case c == '.' && isDigit(p.peekAt(1)):
		v, e := p.datum()
		if e != nil {
			return nil, e
		}
		return xpr.Literal{Value: v}, nil

	case c == '.' || c == '[' || c == '(':
		return p.filterArgument()

	case c == '\'':
		p.pos++
		v, e := p.datum()
		if e != nil {
			return nil, e
		}
		return xpr.Literal{Value: v}, nil

	case p.identStart():
		save := p.pos
		name := p.ident()
		if p.peek() == '(' {
			p.pos = save
			return p.filterArgument()
		}
		return xpr.Literal{Value: val.Symbol(name)}, nil

	}
	v, e := p.datum()
	if e != nil {
		return nil, e
	}
	switch v.(type) {
	case val.Int, val.Float, val.String, val.Bool, val.Char:
		return xpr.Literal{Value: v}, nil
	}
	return nil, p.fail("unexpected %s literal, quote it with '", v.Type())
}

func (p *parser) filterArgument() (xpr.Argument, err.Error) {
	chain, e := p.chain()
	if e != nil {
		return nil, e
	}
	return xpr.FilterArgument{Filter: wrap(chain)}, nil
}
