package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lcox74/bfjit/internal/core"
)

func runSource(t *testing.T, source, stdin string) string {
	t.Helper()
	prog, err := core.Parse([]byte(source))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	var out bytes.Buffer
	machine := New(WithInput(strings.NewReader(stdin)), WithOutput(&out))
	if err := machine.Run(prog); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return out.String()
}

func TestHelloA(t *testing.T) {
	got := runSource(t, "++++++++[>++++++++<-]>+.", "")
	if got != "A" {
		t.Fatalf("got %q, want %q", got, "A")
	}
}

func TestNestedLoopsProduce50(t *testing.T) {
	got := runSource(t, "+++++[>+++++[>++<-]<-]>>.", "")
	if len(got) != 1 || got[0] != 0x32 {
		t.Fatalf("got %v, want byte 0x32", []byte(got))
	}
}

func TestEchoByte(t *testing.T) {
	got := runSource(t, ",.", "x")
	if got != "x" {
		t.Fatalf("got %q, want %q", got, "x")
	}
}

func TestReadEOFYieldsZero(t *testing.T) {
	got := runSource(t, ",.", "")
	if len(got) != 1 || got[0] != 0x00 {
		t.Fatalf("got %v, want single zero byte", []byte(got))
	}
}

func TestUnmatchedBracketMessage(t *testing.T) {
	prog, err := core.Parse([]byte("]"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	machine := New()
	err = machine.Run(prog)
	if err == nil {
		t.Fatalf("expected an error for unmatched bracket")
	}
	if err.Error() != "Unclosing loop found." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestEmptyProgramProducesNoOutput(t *testing.T) {
	got := runSource(t, "this has no bf instructions at all", "")
	if got != "" {
		t.Fatalf("expected no output, got %q", got)
	}
}

func TestLeftUnderflowIsRuntimeError(t *testing.T) {
	prog, err := core.Parse([]byte("<"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	machine := New()
	err = machine.Run(prog)
	if err == nil {
		t.Fatalf("expected a runtime error for data pointer underflow")
	}
	if _, ok := err.(*RuntimeError); !ok {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
}
