package cranejit

// peephole runs local simplifications over each block's straight-line ops,
// ahead of instruction selection. It only merges ShiftOps: Right and Left
// both lower to a signed ShiftOp, so a Right immediately followed by a Left
// (distinct core.Kinds, and therefore never folded by core.Parse) becomes
// two adjacent ShiftOps here that sum to one pointer move with identical
// observable effect. Add/Sub are never merged across kinds, matching the
// documented folding policy.
func peephole(fn *Function) {
	for _, b := range fn.Blocks {
		b.Ops = mergeShifts(b.Ops)
	}
}

func mergeShifts(ops []Op) []Op {
	out := make([]Op, 0, len(ops))
	for _, op := range ops {
		if s, ok := op.(ShiftOp); ok {
			if n := len(out); n > 0 {
				if prev, ok := out[n-1].(ShiftOp); ok {
					merged := prev.Delta + s.Delta
					if merged == 0 {
						out = out[:n-1]
					} else {
						out[n-1] = ShiftOp{Delta: merged}
					}
					continue
				}
			}
		}
		out = append(out, op)
	}
	return out
}
