package ioshim

import (
	"bytes"
	"testing"
)

// withBuffers temporarily swaps the package-level stdio wrappers for
// in-memory buffers so WriteByte/ReadByte can be tested without touching
// the real console.
func withBuffers(t *testing.T, in string) (out *bytes.Buffer, restore func()) {
	t.Helper()
	out = &bytes.Buffer{}
	restore = SetStreams(out, bytes.NewBufferString(in))
	return out, restore
}

func TestWriteByteWritesExactlyOneByte(t *testing.T) {
	out, restore := withBuffers(t, "")
	defer restore()

	if err := WriteByte('A'); err != nil {
		t.Fatalf("WriteByte returned error: %v", err)
	}
	if out.String() != "A" {
		t.Fatalf("got %q, want %q", out.String(), "A")
	}
}

func TestReadByteStoresOneByte(t *testing.T) {
	_, restore := withBuffers(t, "xy")
	defer restore()

	var dest byte
	if err := ReadByte(&dest); err != nil {
		t.Fatalf("ReadByte returned error: %v", err)
	}
	if dest != 'x' {
		t.Fatalf("got %q, want %q", dest, 'x')
	}
}

func TestReadByteEOFStoresZero(t *testing.T) {
	_, restore := withBuffers(t, "")
	defer restore()

	dest := byte(0xFF)
	if err := ReadByte(&dest); err != nil {
		t.Fatalf("ReadByte returned error: %v", err)
	}
	if dest != 0 {
		t.Fatalf("got %d, want 0 on EOF", dest)
	}
}

func TestErrorCellNilIsSafe(t *testing.T) {
	var cell *ErrorCell
	if cell.Error() != "<nil>" {
		t.Fatalf("expected nil ErrorCell to report <nil>, got %q", cell.Error())
	}
}
