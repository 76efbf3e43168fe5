package main

import (
	"fmt"
	"os"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: bfjit [-asm | -compiler] <file>
       bfjit ir <file>

  (no flag)   run with the interpreter
  -asm        run with the direct assembler JIT backend
  -compiler   run with the retargetable compiler JIT backend
  ir          dump the folded intermediate representation and exit`)
	os.Exit(1)
}

func readSource(file string) []byte {
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load program error: %v\n", err)
		os.Exit(1)
	}
	return src
}

func main() {
	if len(os.Args) >= 2 && os.Args[1] == "ir" {
		cmdIR(os.Args[2:])
		return
	}
	cmdRun(os.Args[1:])
}
