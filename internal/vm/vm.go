// Package vm provides a direct interpreter over core.Program. It exists as
// the baseline oracle the two JIT backends are tested against; it is not
// itself part of the compilation pipeline.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/lcox74/bfjit/internal/core"
)

// VM executes a folded core.Program directly against a growable byte tape.
type VM struct {
	memSize int
	input   io.Reader
	output  io.Writer

	memory []byte
	dp     int
	pc     int
	ioBuf  [1]byte
}

// Option configures a VM.
type Option func(*VM)

// WithInput overrides the input reader (default os.Stdin).
func WithInput(r io.Reader) Option { return func(v *VM) { v.input = r } }

// WithOutput overrides the output writer (default os.Stdout).
func WithOutput(w io.Writer) Option { return func(v *VM) { v.output = w } }

// New creates a VM with the given options.
func New(opts ...Option) *VM {
	v := &VM{
		memSize: core.TapeSize,
		input:   os.Stdin,
		output:  os.Stdout,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Run interprets prog to completion. Loop brackets are matched up front so
// that an unmatched bracket is reported the same way the JIT backends
// report it.
func (v *VM) Run(prog core.Program) error {
	targets, err := core.MatchLoops(prog)
	if err != nil {
		return err
	}

	v.memory = make([]byte, v.memSize)
	v.dp = 0
	v.pc = 0

	for v.pc < len(prog) {
		n := prog[v.pc]

		// Out-of-bounds to the right grows the tape rather than faulting,
		// matching the baseline oracle's documented growth policy: double,
		// or grow exactly to dp, whichever is larger.
		if need := v.dp; need >= len(v.memory) {
			newLen := len(v.memory) * 2
			if need >= newLen {
				newLen = need + 1
			}
			grown := make([]byte, newLen)
			copy(grown, v.memory)
			v.memory = grown
		}

		switch n.Kind {
		case core.KindAdd:
			v.memory[v.dp] += n.Byte
		case core.KindSub:
			v.memory[v.dp] -= n.Byte
		case core.KindRight:
			v.dp += int(n.Count)
		case core.KindLeft:
			if v.dp < int(n.Count) {
				return &RuntimeError{Msg: "data pointer underflow", Pos: n.Pos, PC: v.pc}
			}
			v.dp -= int(n.Count)
		case core.KindIn:
			nr, err := v.input.Read(v.ioBuf[:])
			if err == io.EOF || nr == 0 {
				v.memory[v.dp] = 0
			} else if err != nil {
				return &RuntimeError{Msg: fmt.Sprintf("input error: %v", err), Pos: n.Pos, PC: v.pc}
			} else {
				v.memory[v.dp] = v.ioBuf[0]
			}
		case core.KindOut:
			v.ioBuf[0] = v.memory[v.dp]
			if _, err := v.output.Write(v.ioBuf[:]); err != nil {
				return &RuntimeError{Msg: fmt.Sprintf("output error: %v", err), Pos: n.Pos, PC: v.pc}
			}
		case core.KindLoopBegin:
			if v.memory[v.dp] == 0 {
				v.pc = targets[v.pc]
			}
		case core.KindLoopEnd:
			if v.memory[v.dp] != 0 {
				v.pc = targets[v.pc]
			}
		}

		v.pc++
	}

	return nil
}
