// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package xpr

// Simplify returns a semantically identical query with redundant
// Identity stages and single-filter Branches removed.
func Simplify(q Query) Query {
	return simplifyQuery(q.Transform(simplifyFilter))
}

func simplifyFilter(x Filter) Filter {
	switch x := x.(type) {
	case Branch:
		if len(x) == 1 {
			return x[0]
		}
	case SubQuery:
		return SubQuery{simplifyQuery(x.Query)}
	}
	return x
}

func simplifyQuery(q Query) Query {
	if len(q) < 2 {
		return q
	}
	out := make(Query, 0, len(q))
	for _, x := range q {
		if _, ok := x.(Identity); ok {
			continue
		}
		out = append(out, x)
	}
	return out
}
