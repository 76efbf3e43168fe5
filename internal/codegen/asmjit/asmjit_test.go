package asmjit

import (
	"errors"
	"testing"

	"github.com/lcox74/bfjit/internal/core"
)

const fakeWriteAddr, fakeReadAddr = 0x1000, 0x2000

func TestGenerateProducesNonEmptyCode(t *testing.T) {
	prog, err := core.Parse([]byte("++++++++[>++++++++<-]>+."))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	code, err := NewGenerator(prog, fakeWriteAddr, fakeReadAddr).Generate()
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(code) == 0 {
		t.Fatalf("expected non-empty machine code")
	}
}

func TestGenerateRejectsUnmatchedBracket(t *testing.T) {
	prog, err := core.Parse([]byte("]"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	_, err = NewGenerator(prog, fakeWriteAddr, fakeReadAddr).Generate()
	if !errors.Is(err, core.ErrUnmatchedBracket) {
		t.Fatalf("expected ErrUnmatchedBracket, got %v", err)
	}
}

func TestGenerateRejectsTrailingOpenBracket(t *testing.T) {
	prog, err := core.Parse([]byte("[[]"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	_, err = NewGenerator(prog, fakeWriteAddr, fakeReadAddr).Generate()
	if !errors.Is(err, core.ErrUnmatchedBracket) {
		t.Fatalf("expected ErrUnmatchedBracket, got %v", err)
	}
}

func TestGenerateEmptyProgramStillReturns(t *testing.T) {
	code, err := NewGenerator(nil, fakeWriteAddr, fakeReadAddr).Generate()
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	// prologue + epilogue is always emitted, even with no nodes
	if len(code) == 0 {
		t.Fatalf("expected prologue/epilogue bytes for an empty program")
	}
}
