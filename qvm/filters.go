// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package qvm

import (
	"github.com/karmarun/lsq/qvm/err"
	"github.com/karmarun/lsq/qvm/val"
	"github.com/karmarun/lsq/qvm/xpr"
)

func elementsOf(f xpr.Filter, v val.Value) ([]val.Value, err.Error) {
	elements, ok := val.Elements(v)
	if !ok {
		return nil, err.WrongTypeError{
			Problem:  xpr.Format(f) + " expects a list or a vector",
			Expected: val.ContainerType,
			Actual:   v.Type(),
		}
	}
	return elements, nil
}

// marker returns the position of the first symbol name, or -1.
func marker(elements []val.Value, name string) int {
	for i, w := range elements {
		if s, ok := w.(val.Symbol); ok && string(s) == name {
			return i
		}
	}
	return -1
}

func key(f xpr.Key, v val.Value) (val.Value, err.Error) {
	elements, e := elementsOf(f, v)
	if e != nil {
		return nil, e
	}
	i := marker(elements, f.Name)
	if i < 0 || i+1 >= len(elements) {
		return nil, err.MissingKeyError{Key: f.Name}
	}
	return elements[i+1], nil
}

// split keeps the elements before (head) or after the first marker.
// An absent marker yields an empty container.
func split(f xpr.Filter, name string, v val.Value, head bool) (val.Value, err.Error) {
	elements, e := elementsOf(f, v)
	if e != nil {
		return nil, e
	}
	i := marker(elements, name)
	switch {
	case i < 0:
		return val.Rebuild(v, nil), nil
	case head:
		return val.Rebuild(v, elements[:i]), nil
	}
	return val.Rebuild(v, elements[i+1:]), nil
}

// normalize resolves a negative position against length.
func normalize(i int64, length int) int64 {
	if i < 0 {
		return int64(length) + i
	}
	return i
}

func index(f xpr.Index, v val.Value) (val.Value, err.Error) {
	elements, e := elementsOf(f, v)
	if e != nil {
		return nil, e
	}
	i := normalize(f.Index, len(elements))
	if i < 0 || i >= int64(len(elements)) {
		return nil, err.IndexOutOfBoundsError{Index: f.Index, Length: len(elements)}
	}
	return elements[i], nil
}

func slice(f xpr.Slice, v val.Value) (val.Value, err.Error) {
	elements, e := elementsOf(f, v)
	if e != nil {
		return nil, e
	}
	length := int64(len(elements))
	start, end := int64(0), length
	if f.Start != nil {
		start = normalize(*f.Start, len(elements))
		if start < 0 || start > length {
			return nil, err.IndexOutOfBoundsError{Index: *f.Start, Length: len(elements)}
		}
	}
	if f.End != nil {
		end = normalize(*f.End, len(elements))
		if end < 0 || end > length {
			return nil, err.IndexOutOfBoundsError{Index: *f.End, Length: len(elements)}
		}
	}
	if start > end {
		return val.Rebuild(v, nil), nil
	}
	return val.Rebuild(v, elements[start:end]), nil
}
