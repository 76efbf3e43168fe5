// Package asmjit is the direct assembler backend: it lowers a folded
// core.Program straight to x86-64 machine code via a streaming assembler
// with a two-phase label/fixup table, with no intermediate representation
// of its own.
//
// The emitted function has the signature entry(tape *byte) -> *ioshim.ErrorCell
// under the host C calling convention, with TAPE in r12 and DP in r13.
package asmjit

import (
	"encoding/binary"

	"github.com/lcox74/bfjit/internal/core"
	"github.com/lcox74/bfjit/pkg/amd64"
)

// fixup records a code offset holding a placeholder rel32 that must be
// patched once the jump target's address is known.
type fixup struct {
	offset    int // offset of the rel32 field within code
	targetIdx int // core.Program index whose bound address resolves this
}

// Generator assembles one core.Program into a single machine-code function.
type Generator struct {
	prog    core.Program
	targets map[int]int // from core.MatchLoops: LoopBegin index <-> LoopEnd index

	writeAddr uint64 // captured address of ioshim.WriteByte
	readAddr  uint64 // captured address of ioshim.ReadByte

	code          []byte
	labelAddr     map[int]int // core.Program index -> bound code offset
	fixups        []fixup
	exitLabelAddr int
}

// NewGenerator builds a Generator for prog. writeAddr and readAddr are the
// absolute addresses of the host write_byte/read_byte shims, captured by the
// caller (see internal/jitexec) since this package has no business knowing
// how those addresses were obtained.
func NewGenerator(prog core.Program, writeAddr, readAddr uint64) *Generator {
	return &Generator{
		prog:      prog,
		writeAddr: writeAddr,
		readAddr:  readAddr,
		code:      make([]byte, 0, 256+len(prog)*8),
		labelAddr: make(map[int]int),
	}
}

// Generate emits the function body and returns the resulting bytes.
// core.ErrUnmatchedBracket is returned if prog's brackets do not balance.
func (g *Generator) Generate() ([]byte, error) {
	targets, err := core.MatchLoops(g.prog)
	if err != nil {
		return nil, err
	}
	g.targets = targets

	g.emitPrologue()
	for i, n := range g.prog {
		g.emitNode(i, n)
	}
	g.emitEpilogue()
	g.resolveFixups()

	return g.code, nil
}

func (g *Generator) emit(b []byte) { g.code = append(g.code, b...) }

// emitPrologue saves callee-saved registers and establishes TAPE/DP.
func (g *Generator) emitPrologue() {
	g.emit(amd64.PushRbp())
	g.emit(amd64.MovRbpRsp())
	g.emit(amd64.PushR12())
	g.emit(amd64.PushR13())
	g.emit(amd64.MovR12Rdi())
	g.emit(amd64.XorR13R13())
}

// emitEpilogue zeros the success return value, binds the exit label (the
// success path falls straight into it), and restores registers.
func (g *Generator) emitEpilogue() {
	g.emit(amd64.XorEaxEax())
	// exitLabel: every I/O call-site jump lands here too.
	g.exitLabelAddr = len(g.code)
	g.emit(amd64.PopR13())
	g.emit(amd64.PopR12())
	g.emit(amd64.PopRbp())
	g.emit(amd64.Ret())
}

func (g *Generator) emitNode(i int, n core.Node) {
	switch n.Kind {
	case core.KindAdd:
		if n.Byte != 0 {
			g.emit(amd64.AddbImm8Mem(n.Byte))
		}
	case core.KindSub:
		if n.Byte != 0 {
			g.emit(amd64.SubbImm8Mem(n.Byte))
		}
	case core.KindRight:
		if n.Count != 0 {
			g.emit(amd64.AddqImm32R13(int32(n.Count)))
		}
	case core.KindLeft:
		if n.Count != 0 {
			g.emit(amd64.SubqImm32R13(int32(n.Count)))
		}
	case core.KindOut:
		g.emit(amd64.MovDilMem())
		g.emit(amd64.MovabsRax(g.writeAddr))
		g.emit(amd64.CallRax())
		g.emitErrorCheck()
	case core.KindIn:
		g.emit(amd64.LeaqMemToRdi())
		g.emit(amd64.MovabsRax(g.readAddr))
		g.emit(amd64.CallRax())
		g.emitErrorCheck()
	case core.KindLoopBegin:
		g.emit(amd64.TestbMem())
		g.fixups = append(g.fixups, fixup{offset: len(g.code) + 2, targetIdx: g.targets[i]})
		g.emit(amd64.JzRel32(0))
		g.labelAddr[i] = len(g.code)
	case core.KindLoopEnd:
		g.emit(amd64.TestbMem())
		g.fixups = append(g.fixups, fixup{offset: len(g.code) + 2, targetIdx: g.targets[i]})
		g.emit(amd64.JnzRel32(0))
		g.labelAddr[i] = len(g.code)
	}
}

// emitErrorCheck tests rax (the shim's return value) and jumps to the exit
// label, carrying it through unmodified, if it is non-zero.
func (g *Generator) emitErrorCheck() {
	g.emit(amd64.TestRaxRax())
	g.fixups = append(g.fixups, fixup{offset: len(g.code) + 2, targetIdx: exitTarget})
	g.emit(amd64.JnzRel32(0))
}

// exitTarget is a targetIdx sentinel outside the range of valid core.Program
// indices, meaning "the function's single exit label".
const exitTarget = -1

func (g *Generator) resolveFixups() {
	for _, f := range g.fixups {
		var targetAddr int
		if f.targetIdx == exitTarget {
			targetAddr = g.exitLabelAddr
		} else {
			targetAddr = g.labelAddr[f.targetIdx]
		}
		instrEnd := f.offset + 4
		rel32 := int32(targetAddr - instrEnd)
		binary.LittleEndian.PutUint32(g.code[f.offset:], uint32(rel32))
	}
}
