// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package sexp

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
)

var (
	lexer = schemeLexer()

	palette = chroma.MustNewStyle("lsq", chroma.StyleEntries{
		chroma.Punctuation:       "#cd0000",
		chroma.LiteralString:     "#00cd00",
		chroma.LiteralStringChar: "#cdcd00",
		chroma.LiteralNumber:     "#00cdcd",
		chroma.NameConstant:      "#cdcd00",
		chroma.NameFunction:      "#0000ee",
		chroma.NameBuiltin:       "#0000ee",
		chroma.Keyword:           "#0000ee",
		chroma.Operator:          "#cd00cd",
	})
)

// highlight colours rendered text for a terminal. The text itself is left
// untouched; on failure it is returned without colours.
func highlight(plain []byte) []byte {
	it, e := lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, string(plain))
	if e != nil {
		return plain
	}
	tokens := it.Tokens()
	// some lexers terminate their input with a newline
	if n := len(tokens); n > 0 && !bytes.HasSuffix(plain, []byte("\n")) {
		last := &tokens[n-1]
		last.Value = strings.TrimSuffix(last.Value, "\n")
	}
	buf := &bytes.Buffer{}
	if e := formatters.TTY16.Format(buf, palette, chroma.Literator(tokens...)); e != nil {
		return plain
	}
	return buf.Bytes()
}

func schemeLexer() chroma.Lexer {
	l := lexers.Get("scheme")
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}
