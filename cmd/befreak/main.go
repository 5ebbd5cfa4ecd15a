// This file is part of befreak - https://github.com/db47h/befreak
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/db47h/befreak/asm"
	"github.com/db47h/befreak/lang/befreak"
	"github.com/db47h/befreak/vm"
	"github.com/pkg/errors"
	"github.com/tebeka/atexit"
	"github.com/xyproto/env/v2"
)

type fileList []string

func (f *fileList) String() string     { return "" }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }
func (f *fileList) Get() interface{}   { return *f }

var (
	noRawIO     bool
	debug       bool
	dump        bool
	run         bool
	showGraph   bool
	asmInput    bool
	stackSize   int
	outFileName string
)

func newLogger(w io.Writer) *slog.Logger {
	lvl := slog.LevelWarn
	if debug {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// setupIO returns the machine input. If stdin is a terminal, it tries to
// switch it to raw mode and registers the restore function with atexit.
func setupIO(stdout *bufio.Writer) io.Reader {
	if !isTerminal(os.Stdin) {
		return bufio.NewReader(os.Stdin)
	}
	raw := false
	if !noRawIO {
		tearDown, err := setRawIO(os.Stdin)
		if err == nil {
			atexit.Register(tearDown)
			raw = true
		}
	}
	return &ttyInput{bufio.NewReader(os.Stdin), stdout, raw}
}

func load(name string, r io.Reader, log *slog.Logger) (*vm.Program, error) {
	if asmInput {
		return asm.Assemble(name, r)
	}
	return befreak.Compile(name, r, befreak.Logger(log))
}

func emit(p *vm.Program, stdout io.Writer) (err error) {
	if outFileName == "" || outFileName == "-" {
		return asm.Format(stdout, p)
	}
	f, err := os.Create(outFileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = errors.Wrap(e, "close failed")
		}
	}()
	w := bufio.NewWriter(f)
	if err = asm.Format(w, p); err != nil {
		return err
	}
	return errors.Wrap(w.Flush(), "write failed")
}

func atExit(i *vm.Instance, p *vm.Program, err error) {
	if err == nil {
		atexit.Exit(0)
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		atexit.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil {
		fmt.Fprintf(os.Stderr, "Instructions: %d\n", i.InstructionCount())
		befreak.DumpVM(i, os.Stderr)
		if p != nil && i.Proc() >= 0 {
			asm.Disassemble(os.Stderr, p, i.Proc())
		}
	}
	atexit.Exit(1)
}

func main() {
	// check exit condition
	var err error
	var i *vm.Instance
	var p *vm.Program

	stdout := bufio.NewWriter(os.Stdout)

	// flush output, catch and log errors
	defer func() {
		if e := stdout.Flush(); e != nil && err == nil {
			err = errors.Wrap(e, "write failed")
		}
		if err == nil && dump && i != nil {
			err = befreak.DumpVM(i, os.Stdout)
		}
		atExit(i, p, err)
	}()

	var withFiles fileList

	flag.BoolVar(&run, "run", false, "run the program instead of writing the generated code")
	flag.BoolVar(&showGraph, "graph", false, "print the control flow graph and exit")
	flag.BoolVar(&asmInput, "asm", false, "the input file is assembly, as generated by befreak")
	flag.IntVar(&stackSize, "stack", env.Int("BEFREAK_STACK_SIZE", vm.DefaultStackSize), "stack size in cells")
	flag.BoolVar(&dump, "dump", false, "dump stacks upon exit")
	flag.Var(&withFiles, "with", "Add `filename` to the input list (can be specified multiple times)")
	flag.BoolVar(&noRawIO, "noraw", env.Bool("BEFREAK_NORAW"), "disable raw terminal IO")
	flag.BoolVar(&debug, "debug", env.Bool("BEFREAK_DEBUG"), "enable debug diagnostics")
	flag.StringVar(&outFileName, "o", "", "write generated code to `filename` (default stdout)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] file\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		err = errors.New("expected exactly one input file")
		return
	}
	log := newLogger(os.Stderr)
	name := flag.Arg(0)
	var f *os.File
	if f, err = os.Open(name); err != nil {
		return
	}
	defer f.Close()

	if showGraph {
		if asmInput {
			err = errors.New("-graph cannot be used with -asm")
			return
		}
		g, e := befreak.Graph(name, f, befreak.Logger(log))
		if e != nil {
			err = e
			return
		}
		err = printGraph(stdout, g)
		return
	}

	if p, err = load(name, f, log); err != nil {
		return
	}
	if !run {
		err = emit(p, stdout)
		return
	}

	var opts = []vm.Option{
		vm.StackSize(stackSize),
		vm.Input(setupIO(stdout)),
		vm.Output(stdout),
	}
	// append -with files to input stack in reverse order so that they load
	// in order of appearance on the command line.
	for n := len(withFiles) - 1; n >= 0; n-- {
		var wf *os.File
		wf, err = os.Open(withFiles[n])
		if err != nil {
			return
		}
		opts = append(opts, vm.Input(bufio.NewReader(wf)))
	}

	if i, err = vm.New(opts...); err != nil {
		return
	}
	log.Debug("run", "procs", len(p.Procs), "stack", stackSize)
	if err = i.Run(p); errors.Cause(err) == io.EOF {
		err = nil
	}
}
