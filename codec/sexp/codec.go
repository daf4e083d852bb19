// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
//
// Package sexp reads and renders S-expression text.
//
// Reader syntax: lists in () or [], vectors in #(), the empty list () as nil,
// quote forms ' ` , ,@, integers, floats, strings with \" \\ \n \t \r escapes,
// booleans #t #f #true #false, characters #\c #\space #\newline #\tab,
// keywords :name name: #:name (read as the symbol name), |any text| symbols,
// line comments ; and block comments #| |#, datum comments #;.
package sexp

import (
	"github.com/karmarun/lsq/codec"
	"github.com/karmarun/lsq/qvm/err"
	"github.com/karmarun/lsq/qvm/val"
)

func init() {
	codec.Register("sexp", func() codec.Interface { return SexpCodec{} })
}

type SexpCodec struct{}

func (SexpCodec) Decode(src []byte) ([]val.Value, err.Error) {
	return Decode(src)
}

func (SexpCodec) Encode(v val.Value, opts codec.Options) []byte {
	return Encode(v, opts)
}
