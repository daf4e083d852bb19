// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package err

import (
	"fmt"

	"github.com/karmarun/lsq/qvm/val"
)

type WrongTypeError struct {
	Problem  string
	Expected val.Type // zero if not applicable
	Actual   val.Type // zero if not applicable
}

func (e WrongTypeError) Value() val.Value {
	return tagged("wrong-type-error",
		field("problem", val.String(e.Problem)),
		field("expected", val.String(e.Expected.String())),
		field("actual", val.String(e.Actual.String())),
	)
}
func (e WrongTypeError) Error() string {
	return e.String()
}
func (e WrongTypeError) String() string {
	out := title("Wrong Type Error")
	if e.Problem != "" {
		out += section("Problem", e.Problem)
	}
	if e.Expected != 0 {
		out += section("Expected", e.Expected.String())
	}
	if e.Actual != 0 {
		out += section("Actual", e.Actual.String())
	}
	return out
}
func (e WrongTypeError) Child() Error {
	return nil
}

type IndexOutOfBoundsError struct {
	Index  int64 // as written, before normalization
	Length int
}

func (e IndexOutOfBoundsError) Value() val.Value {
	return tagged("index-out-of-bounds-error",
		field("index", val.Int(e.Index)),
		field("length", val.Int(e.Length)),
	)
}
func (e IndexOutOfBoundsError) Error() string {
	return e.String()
}
func (e IndexOutOfBoundsError) String() string {
	out := title("Index Out Of Bounds Error")
	out += section("Index", fmt.Sprintf("%d", e.Index))
	out += section("Length", fmt.Sprintf("%d", e.Length))
	return out
}
func (e IndexOutOfBoundsError) Child() Error {
	return nil
}

type MissingKeyError struct {
	Key string
}

func (e MissingKeyError) Value() val.Value {
	return tagged("missing-key-error", field("key", val.Symbol(e.Key)))
}
func (e MissingKeyError) Error() string {
	return e.String()
}
func (e MissingKeyError) String() string {
	out := title("Missing Key Error")
	out += section("Key", e.Key)
	return out
}
func (e MissingKeyError) Child() Error {
	return nil
}

type UnknownFunctionError struct {
	Name string
}

func (e UnknownFunctionError) Value() val.Value {
	return tagged("unknown-function-error", field("name", val.Symbol(e.Name)))
}
func (e UnknownFunctionError) Error() string {
	return e.String()
}
func (e UnknownFunctionError) String() string {
	out := title("Unknown Function Error")
	out += section("Function", e.Name)
	return out
}
func (e UnknownFunctionError) Child() Error {
	return nil
}

// InternalError marks an AST shape that the parser never produces.
type InternalError struct {
	Problem string
}

func (e InternalError) Value() val.Value {
	return tagged("internal-error", field("problem", val.String(e.Problem)))
}
func (e InternalError) Error() string {
	return e.String()
}
func (e InternalError) String() string {
	out := title("Internal Error")
	out += section("Problem", e.Problem)
	return out
}
func (e InternalError) Child() Error {
	return nil
}

// StageError locates a failure inside a query.
type StageError struct {
	Stage  int    // zero-based position in the query
	Filter string // source rendering of the failing stage
	Child_ Error
}

func (e StageError) Value() val.Value {
	cause := val.Value(val.Nil)
	if e.Child_ != nil {
		cause = e.Child_.Value()
	}
	return tagged("stage-error",
		field("stage", val.Int(e.Stage)),
		field("filter", val.String(e.Filter)),
		field("cause", cause),
	)
}
func (e StageError) Error() string {
	return e.String()
}
func (e StageError) String() string {
	out := title("Stage Error")
	out += section("Stage", fmt.Sprintf("#%d: %s", e.Stage+1, e.Filter))
	if e.Child_ != nil {
		out += e.Child_.String()
	}
	return out
}
func (e StageError) Child() Error {
	return e.Child_
}
