package cranejit

import (
	"errors"
	"testing"

	"github.com/lcox74/bfjit/internal/core"
)

const fakeWriteAddr, fakeReadAddr = 0x1000, 0x2000

func buildVerified(t *testing.T, source string) *Function {
	t.Helper()
	prog, err := core.Parse([]byte(source))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	fn, err := Lower(prog, fakeWriteAddr, fakeReadAddr)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	if err := Verify(fn); err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	return fn
}

func TestLowerAndVerifyNestedLoops(t *testing.T) {
	fn := buildVerified(t, "+++++[>+++++[>++<-]<-]>>.")
	if fn.Entry == nil || fn.Exit == nil {
		t.Fatalf("expected entry and exit blocks")
	}
	if len(fn.Blocks) < 3 {
		t.Fatalf("expected multiple blocks for nested loops, got %d", len(fn.Blocks))
	}
}

func TestLowerRejectsUnmatchedBracket(t *testing.T) {
	prog, err := core.Parse([]byte("]"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	_, err = Lower(prog, fakeWriteAddr, fakeReadAddr)
	if !errors.Is(err, core.ErrUnmatchedBracket) {
		t.Fatalf("expected ErrUnmatchedBracket, got %v", err)
	}
}

func TestLowerRejectsTrailingOpenBracket(t *testing.T) {
	prog, err := core.Parse([]byte("[[]"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	_, err = Lower(prog, fakeWriteAddr, fakeReadAddr)
	if !errors.Is(err, core.ErrUnmatchedBracket) {
		t.Fatalf("expected ErrUnmatchedBracket, got %v", err)
	}
}

func TestVerifyRejectsDanglingBranch(t *testing.T) {
	fn := &Function{}
	entry := newBlock(fn, "entry")
	fn.Entry = entry
	fn.Exit = newBlock(fn, "exit")
	fn.Exit.Term = ReturnTerm{Zero: false}

	// entry jumps to a block that isn't part of fn.Blocks
	entry.Term = JumpTerm{Target: &Block{Name: "orphan", Term: ReturnTerm{Zero: true}}}

	if err := Verify(fn); err == nil {
		t.Fatalf("expected Verify to reject a branch to an unknown block")
	}
}

func TestPeepholeMergesOppositeShifts(t *testing.T) {
	// Right(2) then Left(1) lower to ShiftOp{2} then ShiftOp{-1}; the
	// correct merge is a single ShiftOp{1}, not just "fewer ops".
	fn := buildVerified(t, "+>><.")
	peephole(fn)

	var shifts []ShiftOp
	for _, b := range fn.Blocks {
		for i, op := range b.Ops {
			s, ok := op.(ShiftOp)
			if !ok {
				continue
			}
			shifts = append(shifts, s)
			if i > 0 {
				if _, prevIsShift := b.Ops[i-1].(ShiftOp); prevIsShift {
					t.Fatalf("peephole left two adjacent ShiftOps unmerged in block %q", b.Name)
				}
			}
		}
	}

	if len(shifts) != 1 {
		t.Fatalf("expected exactly one merged ShiftOp, got %d: %v", len(shifts), shifts)
	}
	if shifts[0].Delta != 1 {
		t.Fatalf("expected merged Delta 1 (Right(2) + Left(1)), got %d", shifts[0].Delta)
	}
}

func TestGenerateProducesNonEmptyCode(t *testing.T) {
	fn := buildVerified(t, "++++++++[>++++++++<-]>+.")
	code := Generate(fn)
	if len(code) == 0 {
		t.Fatalf("expected non-empty machine code")
	}
}
