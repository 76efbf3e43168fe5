package cranejit

import "github.com/lcox74/bfjit/internal/core"

// loopFrame pairs the two blocks a LoopBegin opens: the loop body's entry
// and the block control reaches after the loop exits.
type loopFrame struct {
	inner *Block
	after *Block
}

// Lower builds the compiler-IR Function for prog. writeAddr and readAddr
// are the captured absolute addresses of the host I/O shims.
//
// core.ErrUnmatchedBracket is returned if a LoopEnd has no open LoopBegin or
// the program ends with one still open — the same validation asmjit
// performs, done independently here rather than shared, since each backend
// owns its own emission-time bookkeeping.
func Lower(prog core.Program, writeAddr, readAddr uint64) (*Function, error) {
	fn := &Function{}
	fn.Entry = newBlock(fn, "entry")
	fn.Exit = newBlock(fn, "exit")
	fn.Exit.Term = ReturnTerm{Zero: false}

	cur := fn.Entry
	var stack []loopFrame

	for _, n := range prog {
		switch n.Kind {
		case core.KindAdd:
			if n.Byte != 0 {
				cur.Ops = append(cur.Ops, AddCellOp{N: n.Byte})
			}
		case core.KindSub:
			if n.Byte != 0 {
				cur.Ops = append(cur.Ops, SubCellOp{N: n.Byte})
			}
		case core.KindRight:
			if n.Count != 0 {
				cur.Ops = append(cur.Ops, ShiftOp{Delta: int64(n.Count)})
			}
		case core.KindLeft:
			if n.Count != 0 {
				cur.Ops = append(cur.Ops, ShiftOp{Delta: -int64(n.Count)})
			}
		case core.KindOut:
			after := newBlock(fn, "after_out")
			cur.Term = CallCheckTerm{
				FuncAddr:      writeAddr,
				ArgIsCellAddr: false,
				OnError:       fn.Exit,
				OnSuccess:     after,
			}
			cur = after
		case core.KindIn:
			after := newBlock(fn, "after_in")
			cur.Term = CallCheckTerm{
				FuncAddr:      readAddr,
				ArgIsCellAddr: true,
				OnError:       fn.Exit,
				OnSuccess:     after,
			}
			cur = after
		case core.KindLoopBegin:
			inner := newBlock(fn, "loop_inner")
			after := newBlock(fn, "loop_after")
			cur.Term = CondTerm{IfNonZero: inner, IfZero: after}
			stack = append(stack, loopFrame{inner: inner, after: after})
			cur = inner
		case core.KindLoopEnd:
			if len(stack) == 0 {
				return nil, core.ErrUnmatchedBracket
			}
			frame := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			cur.Term = CondTerm{IfNonZero: frame.inner, IfZero: frame.after}
			cur = frame.after
		}
	}

	if len(stack) != 0 {
		return nil, core.ErrUnmatchedBracket
	}

	cur.Term = ReturnTerm{Zero: true}
	return fn, nil
}
