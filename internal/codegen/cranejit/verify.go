package cranejit

import "fmt"

// Verify checks the structural invariants a well-formed Function must hold
// before it is safe to hand to the code generator. A failure here is a bug
// in Lower, not in the source program — the caller should treat it as a
// fatal compile error rather than a user-facing one.
func Verify(fn *Function) error {
	if fn.Entry == nil {
		return fmt.Errorf("cranejit: function has no entry block")
	}
	if fn.Exit == nil {
		return fmt.Errorf("cranejit: function has no exit block")
	}
	if _, ok := fn.Exit.Term.(ReturnTerm); !ok {
		return fmt.Errorf("cranejit: exit block does not terminate in ReturnTerm")
	}

	known := make(map[*Block]bool, len(fn.Blocks))
	for _, b := range fn.Blocks {
		known[b] = true
	}

	checkTarget := func(from *Block, to *Block) error {
		if to == nil {
			return fmt.Errorf("cranejit: block %q has a nil successor", from.Name)
		}
		if !known[to] {
			return fmt.Errorf("cranejit: block %q branches to a block outside the function", from.Name)
		}
		return nil
	}

	for _, b := range fn.Blocks {
		if b.Term == nil {
			return fmt.Errorf("cranejit: block %q has no terminator", b.Name)
		}
		switch t := b.Term.(type) {
		case JumpTerm:
			if err := checkTarget(b, t.Target); err != nil {
				return err
			}
		case CondTerm:
			if err := checkTarget(b, t.IfNonZero); err != nil {
				return err
			}
			if err := checkTarget(b, t.IfZero); err != nil {
				return err
			}
		case CallCheckTerm:
			if err := checkTarget(b, t.OnError); err != nil {
				return err
			}
			if err := checkTarget(b, t.OnSuccess); err != nil {
				return err
			}
			if t.FuncAddr == 0 {
				return fmt.Errorf("cranejit: block %q calls a nil function address", b.Name)
			}
		case ReturnTerm:
			if b != fn.Exit && !t.Zero {
				return fmt.Errorf("cranejit: block %q returns a non-zero value outside the exit block", b.Name)
			}
		default:
			return fmt.Errorf("cranejit: block %q has an unrecognized terminator", b.Name)
		}
	}

	return nil
}
