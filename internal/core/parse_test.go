package core

import "testing"

func assertEqual(t *testing.T, got, want int, what string) {
	t.Helper()
	if got != want {
		t.Fatalf("%s: got %d, want %d", what, got, want)
	}
}

func TestParseSkipsComments(t *testing.T) {
	prog, err := Parse([]byte("hello world, this is not bf"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	// 'i' 'o' etc are all comments except the single comma
	wantLen := 1
	assertEqual(t, len(prog), wantLen, "program length")
	for _, n := range prog {
		if n.Kind != KindIn {
			t.Fatalf("expected only KindIn nodes, got %v", n.Kind)
		}
	}
}

func TestParseEmptySource(t *testing.T) {
	prog, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	assertEqual(t, len(prog), 0, "empty program length")
}

func TestFoldCollapsesAdjacentSameKind(t *testing.T) {
	prog, err := Parse([]byte("+++"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	assertEqual(t, len(prog), 1, "folded program length")
	if prog[0].Kind != KindAdd || prog[0].Byte != 3 {
		t.Fatalf("expected Add(3), got %v(%d)", prog[0].Kind, prog[0].Byte)
	}
}

func TestFoldWrapsMod256(t *testing.T) {
	src := make([]byte, 256)
	for i := range src {
		src[i] = '+'
	}
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	assertEqual(t, len(prog), 1, "folded program length")
	if prog[0].Byte != 0 {
		t.Fatalf("expected 256 '+' to wrap to Add(0), got Add(%d)", prog[0].Byte)
	}
}

func TestFoldDoesNotCancelUnlikeKinds(t *testing.T) {
	prog, err := Parse([]byte("+-><"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	assertEqual(t, len(prog), 4, "unfolded program length for unlike-kind runs")
}

func TestNoAdjacentSameFoldableKindInvariant(t *testing.T) {
	prog, err := Parse([]byte("+++--->><<<[+]+"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	for i := 1; i < len(prog); i++ {
		if prog[i].Kind == prog[i-1].Kind && prog[i].Kind.foldable() {
			t.Fatalf("adjacent nodes at %d/%d share foldable kind %v", i-1, i, prog[i].Kind)
		}
	}
}

func TestDumpRoundTripsNodeShape(t *testing.T) {
	prog, err := Parse([]byte("++>>,.[-]"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	dumped := Dump(prog)
	if dumped == "" {
		t.Fatalf("Dump produced empty output for non-empty program")
	}
	want := "0000: Add 2\n0001: Right 2\n0002: In\n0003: Out\n0004: LoopBegin\n0005: Sub 1\n0006: LoopEnd\n"
	if dumped != want {
		t.Fatalf("Dump shape mismatch:\ngot:\n%s\nwant:\n%s", dumped, want)
	}
}
