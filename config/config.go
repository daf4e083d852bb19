// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"strconv"
)

var (
	Format        string = "data" // explicit default
	Monochrome    bool
	Color         bool
	Raw           bool
	Ast           bool
	Input         string = "sexp" // explicit default
	Output        string = "sexp" // explicit default
	Slurp         bool
	Jobs          int = 1 // explicit default
	StoreFile     string
	Save          string
	Forget        string
	List          bool
	MachineErrors bool
)

func init() {
	if home, e := os.UserHomeDir(); e == nil {
		StoreFile = filepath.Join(home, ".lsq.db")
	}

	Format = getenv("LSQ_FORMAT", Format)
	flag.StringVar(&Format, "format", Format, "Output layout: data, code or compact. Defaults to environment variable LSQ_FORMAT.")
	flag.StringVar(&Format, "f", Format, "Shorthand for --format.")

	Monochrome = getenvBool("LSQ_MONOCHROME", Monochrome)
	flag.BoolVar(&Monochrome, "monochrome", Monochrome, "Disable syntax colouring. Defaults to environment variable LSQ_MONOCHROME.")
	flag.BoolVar(&Monochrome, "M", Monochrome, "Shorthand for --monochrome.")

	Color = getenvBool("LSQ_COLOR", Color)
	flag.BoolVar(&Color, "color", Color, "Colour output even if stdout is not a terminal. Defaults to environment variable LSQ_COLOR.")
	flag.BoolVar(&Color, "C", Color, "Shorthand for --color.")

	flag.BoolVar(&Raw, "raw", Raw, "Print top-level strings without quotes.")
	flag.BoolVar(&Raw, "r", Raw, "Shorthand for --raw.")

	flag.BoolVar(&Ast, "ast", Ast, "Print the parsed query and exit.")

	flag.StringVar(
		&Input,
		"input",
		getenv("LSQ_INPUT", Input),
		"Input codec: sexp, json or binary. Defaults to environment variable LSQ_INPUT.",
	)
	flag.StringVar(
		&Output,
		"output",
		getenv("LSQ_OUTPUT", Output),
		"Output codec: sexp, json or binary. Defaults to environment variable LSQ_OUTPUT.",
	)

	flag.BoolVar(&Slurp, "slurp", Slurp, "Read all top-level forms into a single list.")
	flag.BoolVar(&Slurp, "s", Slurp, "Shorthand for --slurp.")

	Jobs = getenvInt("LSQ_JOBS", Jobs)
	flag.IntVar(&Jobs, "jobs", Jobs, "Maximum concurrent evaluations per stage. Defaults to environment variable LSQ_JOBS.")
	flag.IntVar(&Jobs, "j", Jobs, "Shorthand for --jobs.")

	flag.StringVar(
		&StoreFile,
		"store",
		getenv("LSQ_STORE", StoreFile),
		"Path to the saved query store. Defaults to environment variable LSQ_STORE, then $HOME/.lsq.db.",
	)
	flag.StringVar(&Save, "save", Save, "Save the query under this name instead of running it.")
	flag.StringVar(&Forget, "forget", Forget, "Delete the saved query with this name.")
	flag.BoolVar(&List, "list", List, "List saved queries.")

	flag.BoolVar(
		&MachineErrors,
		"machine-errors",
		getenvBool("LSQ_MACHINE_ERRORS", MachineErrors),
		"Print errors as data in the output codec. Defaults to environment variable LSQ_MACHINE_ERRORS.",
	)
}

func getenv(key string, deflt string) string {
	v := os.Getenv(key)
	if v == "" {
		return deflt
	}
	return v
}

func getenvBool(key string, deflt bool) bool {
	b, e := strconv.ParseBool(os.Getenv(key))
	if e != nil {
		return deflt
	}
	return b
}

func getenvInt(key string, deflt int) int {
	i, e := strconv.Atoi(os.Getenv(key))
	if e != nil {
		return deflt
	}
	return i
}
