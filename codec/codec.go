// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package codec

import (
	"log"
	"sort"

	"github.com/karmarun/lsq/qvm/err"
	"github.com/karmarun/lsq/qvm/val"
)

type Layout int

const (
	LayoutData Layout = iota
	LayoutCode
	LayoutCompact
)

func (l Layout) String() string {
	switch l {
	case LayoutData:
		return "data"
	case LayoutCode:
		return "code"
	case LayoutCompact:
		return "compact"
	}
	return "unknown"
}

func ParseLayout(s string) (Layout, bool) {
	switch s {
	case "data":
		return LayoutData, true
	case "code":
		return LayoutCode, true
	case "compact":
		return LayoutCompact, true
	}
	return 0, false
}

type Options struct {
	Layout Layout
	Raw    bool // top-level strings without quotes
	Color  bool // ANSI colouring, ignored by codecs without highlighting
}

type Instantiator func() Interface

type Interface interface {
	// Decode returns one value per top-level form.
	Decode([]byte) ([]val.Value, err.Error)
	Encode(val.Value, Options) []byte
}

// Not thread-safe
var registry = make(map[string]Instantiator)

func Register(key string, itr Instantiator) {
	if _, ok := registry[key]; ok {
		log.Panicf(`Codec already registered for key: %s`, key)
	}
	registry[key] = itr
}

func Available() []string {
	decs := make([]string, 0, len(registry))
	for k, _ := range registry {
		decs = append(decs, k)
	}
	sort.Strings(decs)
	return decs
}

func Get(key string) Interface {
	i := registry[key]
	if i == nil {
		return nil
	}
	return i()
}
