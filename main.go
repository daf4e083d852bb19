// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/kr/pretty"
	"golang.org/x/term"

	"github.com/karmarun/lsq/codec"
	_ "github.com/karmarun/lsq/codec/binary"
	_ "github.com/karmarun/lsq/codec/json"
	_ "github.com/karmarun/lsq/codec/sexp"
	"github.com/karmarun/lsq/config"
	"github.com/karmarun/lsq/db"
	"github.com/karmarun/lsq/qvm"
	"github.com/karmarun/lsq/qvm/builtin"
	"github.com/karmarun/lsq/qvm/err"
	"github.com/karmarun/lsq/qvm/val"
	"github.com/karmarun/lsq/qvm/xpr"
	"github.com/karmarun/lsq/query"
)

var (
	output codec.Interface
	opts   codec.Options
)

func main() {

	log.SetFlags(0)
	log.SetPrefix("lsq: ")

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: lsq [flags] QUERY [FILE]")
		fmt.Fprintln(flag.CommandLine.Output(), "       lsq [flags] @NAME [FILE]")
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), "\nfunctions:", strings.Join(builtin.Builtins().Names(), " "))
	}
	flag.Parse()

	{ // output setup
		output = codec.Get(config.Output)
		if output == nil {
			log.Fatalf("unknown output codec %q, available: %s\n", config.Output, strings.Join(codec.Available(), ", "))
		}
		layout, ok := codec.ParseLayout(config.Format)
		if !ok {
			log.Fatalf("unknown format %q, available: data, code, compact\n", config.Format)
		}
		opts = codec.Options{
			Layout: layout,
			Raw:    config.Raw,
			Color:  config.Color || (!config.Monochrome && term.IsTerminal(int(os.Stdout.Fd()))),
		}
	}

	args := flag.Args()

	if config.List || config.Forget != "" || config.Save != "" {
		manageStore(args)
		return
	}

	if len(args) < 1 || len(args) > 2 {
		flag.Usage()
		os.Exit(2)
	}

	source := args[0]
	if strings.HasPrefix(source, "@") {
		source = loadQuery(source[1:])
	}

	q, e := query.Parse(source)
	if e != nil {
		fail(e)
	}
	q = xpr.Simplify(q)

	if config.Ast {
		pretty.Println(q)
		return
	}

	branches := readInput(args[1:])

	out, e := qvm.Machine{Jobs: config.Jobs}.Run(q, branches)
	if e != nil {
		fail(e)
	}

	w := bufio.NewWriter(os.Stdout)
	for _, v := range out {
		w.Write(output.Encode(v, opts))
		w.WriteByte('\n')
	}
	if e := w.Flush(); e != nil {
		log.Fatalln(e)
	}
}

func readInput(paths []string) []val.Value {
	r := io.Reader(os.Stdin)
	if len(paths) > 0 && paths[0] != "-" {
		f, e := os.Open(paths[0])
		if e != nil {
			log.Fatalln(e)
		}
		defer f.Close()
		r = f
	}
	bs, e := io.ReadAll(r)
	if e != nil {
		log.Fatalln(e)
	}
	input := codec.Get(config.Input)
	if input == nil {
		log.Fatalf("unknown input codec %q, available: %s\n", config.Input, strings.Join(codec.Available(), ", "))
	}
	vs, ee := input.Decode(bs)
	if ee != nil {
		fail(ee)
	}
	if !config.Slurp {
		return vs
	}
	if len(vs) == 0 {
		return []val.Value{val.Nil}
	}
	return []val.Value{val.List(vs)}
}

func openStore() *db.Store {
	if config.StoreFile == "" {
		log.Fatalln("no store file, set --store or LSQ_STORE")
	}
	s, e := db.Open(config.StoreFile)
	if e != nil {
		fail(e)
	}
	return s
}

func loadQuery(name string) string {
	s := openStore()
	defer s.Close()
	source, e := s.Load(name)
	if e != nil {
		s.Close()
		fail(e)
	}
	return source
}

func manageStore(args []string) {
	s := openStore()
	defer s.Close()

	e := err.Error(nil)
	switch {
	case config.Save != "":
		if len(args) != 1 {
			flag.Usage()
			s.Close()
			os.Exit(2)
		}
		e = s.Save(config.Save, args[0])
	case config.Forget != "":
		e = s.Forget(config.Forget)
	case config.List:
		names, le := s.List()
		for _, name := range names {
			fmt.Println(name)
		}
		e = le
	}
	if e != nil {
		s.Close()
		fail(e)
	}
}

// fail reports e and exits with status 1.
func fail(e err.Error) {
	if config.MachineErrors {
		o := opts
		o.Color = false
		os.Stderr.Write(output.Encode(e.Value(), o))
		os.Stderr.Write([]byte{'\n'})
		os.Exit(1)
	}
	log.Fatalln("\n" + e.String())
}
