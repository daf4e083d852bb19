// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package val

import (
	"strings"
)

type Type uint64

const (
	TypeInt Type = 1 << iota
	TypeFloat
	TypeString
	TypeBool
	TypeSymbol
	TypeChar
	TypeNil
	TypeQuote
	TypeQuasiquote
	TypeUnquote
	TypeUnquoteSplicing
	TypeList
	TypeVector
	lastType // internal marker
)

const (
	NumericType   = TypeInt | TypeFloat
	ContainerType = TypeList | TypeVector
	QuoteType     = TypeQuote | TypeQuasiquote | TypeUnquote | TypeUnquoteSplicing
)

func (t Type) String() string {
	if t == 0 {
		return "unknown"
	}
	buf := make([]string, 0, 16)
	for q := Type(1); q < lastType; q <<= 1 {
		if q&t != 0 {
			buf = append(buf, typeToString(q))
		}
	}
	return strings.Join(buf, "|")
}

func typeToString(t Type) string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeSymbol:
		return "symbol"
	case TypeChar:
		return "char"
	case TypeNil:
		return "nil"
	case TypeQuote:
		return "quote"
	case TypeQuasiquote:
		return "quasiquote"
	case TypeUnquote:
		return "unquote"
	case TypeUnquoteSplicing:
		return "unquote-splicing"
	case TypeList:
		return "list"
	case TypeVector:
		return "vector"
	}
	return "unknown"
}

func (Int) Type() Type             { return TypeInt }
func (Float) Type() Type           { return TypeFloat }
func (String) Type() Type          { return TypeString }
func (Bool) Type() Type            { return TypeBool }
func (Symbol) Type() Type          { return TypeSymbol }
func (Char) Type() Type            { return TypeChar }
func (nilValue) Type() Type        { return TypeNil }
func (Quote) Type() Type           { return TypeQuote }
func (Quasiquote) Type() Type      { return TypeQuasiquote }
func (Unquote) Type() Type         { return TypeUnquote }
func (UnquoteSplicing) Type() Type { return TypeUnquoteSplicing }
func (List) Type() Type            { return TypeList }
func (Vector) Type() Type          { return TypeVector }
