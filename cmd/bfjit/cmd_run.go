package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lcox74/bfjit/internal/codegen/asmjit"
	"github.com/lcox74/bfjit/internal/codegen/cranejit"
	"github.com/lcox74/bfjit/internal/core"
	"github.com/lcox74/bfjit/internal/jitexec"
	"github.com/lcox74/bfjit/internal/vm"
)

func cmdRun(args []string) {
	fs := flag.NewFlagSet("bfjit", flag.ExitOnError)
	useAsm := fs.Bool("asm", false, "run with the direct assembler JIT backend")
	useCompiler := fs.Bool("compiler", false, "run with the retargetable compiler JIT backend")
	fs.Usage = usage
	fs.Parse(args)

	if fs.NArg() != 1 {
		usage()
	}
	if *useAsm && *useCompiler {
		fmt.Fprintln(os.Stderr, "Compile error: -asm and -compiler are mutually exclusive")
		os.Exit(1)
	}

	file := filepath.Clean(fs.Arg(0))
	src := readSource(file)

	prog, err := core.Parse(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compile error: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *useAsm:
		runJIT(prog, buildAsm)
	case *useCompiler:
		runJIT(prog, buildCompiler)
	default:
		runInterpreter(prog)
	}
}

func runInterpreter(prog core.Program) {
	interpreter := vm.New()
	if err := interpreter.Run(prog); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}

// backendBuild lowers prog to machine code for one JIT backend.
type backendBuild func(prog core.Program, writeAddr, readAddr uint64) ([]byte, error)

func buildAsm(prog core.Program, writeAddr, readAddr uint64) ([]byte, error) {
	return asmjit.NewGenerator(prog, writeAddr, readAddr).Generate()
}

func buildCompiler(prog core.Program, writeAddr, readAddr uint64) ([]byte, error) {
	fn, err := cranejit.Lower(prog, writeAddr, readAddr)
	if err != nil {
		return nil, err
	}
	if err := cranejit.Verify(fn); err != nil {
		fmt.Fprintf(os.Stderr, "Compile error: internal: %v\n", err)
		os.Exit(1)
	}
	return cranejit.Generate(fn), nil
}

func runJIT(prog core.Program, build backendBuild) {
	writeAddr, readAddr := jitexec.ShimAddresses()

	code, err := build(prog, writeAddr, readAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compile error: %v\n", err)
		os.Exit(1)
	}

	program, err := jitexec.Compile(code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compile error: %v\n", err)
		os.Exit(1)
	}
	defer program.Close()

	if err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}
