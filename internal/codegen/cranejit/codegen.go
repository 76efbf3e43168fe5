package cranejit

import (
	"encoding/binary"

	"github.com/lcox74/bfjit/pkg/amd64"
)

// branchFixup records a code offset holding a placeholder rel32 that must
// be patched once target's block address is known.
type branchFixup struct {
	offset int
	target *Block
}

// generator walks a verified Function's blocks and emits x86-64 machine
// code. It shares the TAPE=r12/DP=r13 register convention with asmjit but
// drives emission from the block graph rather than a flat node list with a
// precomputed loop-target map.
type generator struct {
	code    []byte
	blockAt map[*Block]int
	fixups  []branchFixup
}

// Generate lowers a verified Function to machine code implementing
// entry(tape *byte) -> *ioshim.ErrorCell under the host C calling
// convention.
func Generate(fn *Function) []byte {
	peephole(fn)

	g := &generator{blockAt: make(map[*Block]int, len(fn.Blocks))}
	g.emitPrologue()

	for _, b := range layout(fn) {
		g.blockAt[b] = len(g.code)
		g.emitBlock(b)
	}

	g.resolveFixups()
	return g.code
}

// layout orders blocks for emission: entry first, then every other block in
// the order Lower created them, with the exit block placed last so the
// common case (no error) doesn't need to jump over it.
func layout(fn *Function) []*Block {
	out := make([]*Block, 0, len(fn.Blocks))
	out = append(out, fn.Entry)
	for _, b := range fn.Blocks {
		if b != fn.Entry && b != fn.Exit {
			out = append(out, b)
		}
	}
	out = append(out, fn.Exit)
	return out
}

func (g *generator) emit(b []byte) { g.code = append(g.code, b...) }

func (g *generator) emitPrologue() {
	g.emit(amd64.PushRbp())
	g.emit(amd64.MovRbpRsp())
	g.emit(amd64.PushR12())
	g.emit(amd64.PushR13())
	g.emit(amd64.MovR12Rdi())
	g.emit(amd64.XorR13R13())
}

// emitReturn restores callee-saved registers and returns. If zero, rax is
// cleared first; otherwise the caller must already have left the value to
// return in rax.
func (g *generator) emitReturn(zero bool) {
	if zero {
		g.emit(amd64.XorEaxEax())
	}
	g.emit(amd64.PopR13())
	g.emit(amd64.PopR12())
	g.emit(amd64.PopRbp())
	g.emit(amd64.Ret())
}

// branch emits an unconditional jump to target with a fixup. The jump is
// emitted even when target is laid out immediately after the current
// position.
func (g *generator) branch(target *Block) {
	g.fixups = append(g.fixups, branchFixup{offset: len(g.code) + 1, target: target})
	g.emit(amd64.JmpRel32(0))
}

func (g *generator) branchIfNonZero(target *Block) {
	g.fixups = append(g.fixups, branchFixup{offset: len(g.code) + 2, target: target})
	g.emit(amd64.JnzRel32(0))
}

func (g *generator) emitBlock(b *Block) {
	for _, op := range b.Ops {
		switch o := op.(type) {
		case AddCellOp:
			g.emit(amd64.AddbImm8Mem(o.N))
		case SubCellOp:
			g.emit(amd64.SubbImm8Mem(o.N))
		case ShiftOp:
			if o.Delta > 0 {
				g.emit(amd64.AddqImm32R13(int32(o.Delta)))
			} else if o.Delta < 0 {
				g.emit(amd64.SubqImm32R13(int32(-o.Delta)))
			}
		}
	}

	switch t := b.Term.(type) {
	case JumpTerm:
		g.branch(t.Target)
	case CondTerm:
		g.emit(amd64.TestbMem())
		g.branchIfNonZero(t.IfNonZero)
		g.branch(t.IfZero)
	case CallCheckTerm:
		if t.ArgIsCellAddr {
			g.emit(amd64.LeaqMemToRdi())
		} else {
			g.emit(amd64.MovDilMem())
		}
		g.emit(amd64.MovabsRax(t.FuncAddr))
		g.emit(amd64.CallRax())
		g.emit(amd64.TestRaxRax())
		g.branchIfNonZero(t.OnError)
		g.branch(t.OnSuccess)
	case ReturnTerm:
		g.emitReturn(t.Zero)
	}
}

func (g *generator) resolveFixups() {
	for _, f := range g.fixups {
		targetAddr := g.blockAt[f.target]
		instrEnd := f.offset + 4
		rel32 := int32(targetAddr - instrEnd)
		binary.LittleEndian.PutUint32(g.code[f.offset:], uint32(rel32))
	}
}
