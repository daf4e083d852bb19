// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package err

import (
	"fmt"

	"github.com/karmarun/lsq/qvm/val"
)

type QuerySyntaxError struct {
	Problem string
	Offset  int
	Query   string
}

func (e QuerySyntaxError) Value() val.Value {
	return tagged("query-syntax-error",
		field("problem", val.String(e.Problem)),
		field("offset", val.Int(e.Offset)),
	)
}
func (e QuerySyntaxError) Error() string {
	return e.String()
}
func (e QuerySyntaxError) String() string {
	out := title("Query Syntax Error")
	out += section("Problem", e.Problem)
	if e.Query != "" {
		marker := ""
		for i := 0; i < e.Offset && i < len(e.Query); i++ {
			marker += " "
		}
		out += section("Position", e.Query+"\n"+marker+"^")
	} else {
		out += section("Offset", fmt.Sprintf("%d", e.Offset))
	}
	return out
}
func (e QuerySyntaxError) Child() Error {
	return nil
}

type InputParsingError struct {
	Problem string
	Offset  int
}

func (e InputParsingError) Value() val.Value {
	return tagged("input-parsing-error",
		field("problem", val.String(e.Problem)),
		field("offset", val.Int(e.Offset)),
	)
}
func (e InputParsingError) Error() string {
	return e.String()
}
func (e InputParsingError) String() string {
	out := title("Input Parsing Error")
	out += section("Problem", e.Problem)
	out += section("Offset", fmt.Sprintf("%d", e.Offset))
	return out
}
func (e InputParsingError) Child() Error {
	return nil
}

type StoreError struct {
	Problem string
	Name    string // saved query name, may be empty
}

func (e StoreError) Value() val.Value {
	return tagged("store-error",
		field("problem", val.String(e.Problem)),
		field("name", val.Symbol(e.Name)),
	)
}
func (e StoreError) Error() string {
	return e.String()
}
func (e StoreError) String() string {
	out := title("Store Error")
	out += section("Problem", e.Problem)
	if e.Name != "" {
		out += section("Query", e.Name)
	}
	return out
}
func (e StoreError) Child() Error {
	return nil
}
