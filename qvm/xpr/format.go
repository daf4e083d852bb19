// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package xpr

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/karmarun/lsq/codec/sexp"
	"github.com/karmarun/lsq/qvm/val"
)

// FormatQuery renders q in query syntax.
func FormatQuery(q Query) string {
	if len(q) == 0 {
		return "."
	}
	ss := make([]string, len(q), len(q))
	for i, x := range q {
		ss[i] = Format(x)
	}
	return strings.Join(ss, " | ")
}

// Format renders a single filter in query syntax.
func Format(x Filter) string {
	switch x := x.(type) {
	case Identity:
		return "."
	case Key:
		return "." + formatName(x.Name)
	case Head:
		return ".<" + formatName(x.Name)
	case Tail:
		return ".>" + formatName(x.Name)
	case Index:
		return fmt.Sprintf("[%d]", x.Index)
	case Slice:
		out := "["
		if x.Start != nil {
			out += strconv.FormatInt(*x.Start, 10)
		}
		out += ":"
		if x.End != nil {
			out += strconv.FormatInt(*x.End, 10)
		}
		return out + "]"
	case ListIter:
		return "[]"
	case Branch:
		ss := make([]string, len(x), len(x))
		for i, w := range x {
			ss[i] = Format(w)
		}
		return strings.Join(ss, ",")
	case FuncCall:
		if len(x.Arguments) == 0 {
			return x.Name
		}
		ss := make([]string, len(x.Arguments), len(x.Arguments))
		for i, a := range x.Arguments {
			ss[i] = formatArgument(a)
		}
		return x.Name + "(" + strings.Join(ss, " ") + ")"
	case SubQuery:
		return "(" + FormatQuery(x.Query) + ")"
	case Expr:
		return formatArgument(x.Argument)
	}
	log.Panicf("xpr.Format: unhandled filter type: %T", x)
	return ""
}

func formatArgument(a Argument) string {
	switch a := a.(type) {
	case FilterArgument:
		switch f := a.Filter.(type) {
		case FuncCall:
			if len(f.Arguments) == 0 {
				return f.Name + "()"
			}
		case Branch:
			return "(" + Format(f) + ")"
		}
		return Format(a.Filter)
	case Literal:
		return formatLiteral(a.Value)
	}
	log.Panicf("xpr.Format: unhandled argument type: %T", a)
	return ""
}

func formatLiteral(v val.Value) string {
	switch v := v.(type) {
	case val.Symbol:
		if IsName(string(v)) {
			return string(v)
		}
	case val.Int, val.Float, val.String, val.Bool, val.Char:
		return sexp.Compact(v)
	}
	return "'" + sexp.Compact(v)
}

func formatName(s string) string {
	if IsName(s) {
		return s
	}
	return sexp.Compact(val.String(s))
}
