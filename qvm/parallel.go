// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package qvm

import (
	"golang.org/x/sync/errgroup"

	"github.com/karmarun/lsq/qvm/err"
	"github.com/karmarun/lsq/qvm/val"
)

// each runs f for 0..n-1 and concatenates the results in index order.
// With Jobs > 1 up to Jobs calls run at once; the reported error is the
// one with the lowest index, as in a sequential run.
func (m Machine) each(n int, f func(int) ([]val.Value, err.Error)) ([]val.Value, err.Error) {
	results := make([][]val.Value, n, n)

	if m.Jobs <= 1 || n < 2 {
		for i := 0; i < n; i++ {
			out, e := f(i)
			if e != nil {
				return nil, e
			}
			results[i] = out
		}
		return concat(results), nil
	}

	errs := make([]err.Error, n, n)
	g := &errgroup.Group{}
	g.SetLimit(m.Jobs)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			results[i], errs[i] = f(i)
			return nil
		})
	}
	g.Wait()
	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}
	return concat(results), nil
}

func concat(results [][]val.Value) []val.Value {
	size := 0
	for _, r := range results {
		size += len(r)
	}
	out := make([]val.Value, 0, size)
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}
