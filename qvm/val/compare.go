// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package val

// Compare orders two numeric values. Int/Float pairs are compared after
// promoting the Int side to Float. ok is false for any other pairing,
// and for NaN operands.
func Compare(a, b Value) (order int, ok bool) {
	switch a := a.(type) {
	case Int:
		switch b := b.(type) {
		case Int:
			return compareInts(int64(a), int64(b)), true
		case Float:
			return compareFloats(float64(a), float64(b))
		}
	case Float:
		switch b := b.(type) {
		case Int:
			return compareFloats(float64(a), float64(b))
		case Float:
			return compareFloats(float64(a), float64(b))
		}
	}
	return 0, false
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloats(a, b float64) (int, bool) {
	switch {
	case a < b:
		return -1, true
	case a > b:
		return 1, true
	case a == b:
		return 0, true
	}
	return 0, false // NaN
}
