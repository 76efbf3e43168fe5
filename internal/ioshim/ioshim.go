// Package ioshim provides the two host I/O routines that JIT-emitted code
// calls into: write_byte and read_byte. Both use a uniform error-return
// convention — a nil *ErrorCell means success — so generated machine code
// only ever has to check one register against zero.
package ioshim

import (
	"bufio"
	"io"
	"os"
	"runtime"
	"sync"
)

// ErrorCell carries a host I/O error across the JIT boundary. The JIT
// contract represents it to generated code as a raw pointer-width value
// that is null on success; in Go it is simply a *ErrorCell, since a single
// pointer return already lands in the same register a null check expects.
type ErrorCell struct {
	Err error
}

func (e *ErrorCell) Error() string {
	if e == nil || e.Err == nil {
		return "<nil>"
	}
	return e.Err.Error()
}

var (
	stdoutMu sync.Mutex
	stdout   = bufio.NewWriter(os.Stdout)

	stdinMu sync.Mutex
	stdin   = bufio.NewReader(os.Stdin)
)

// SetStreams temporarily redirects the streams WriteByte and ReadByte
// operate on, for tests that need to drive or observe JIT-generated code's
// I/O without touching the real console. It returns a func that restores
// the previous streams; callers must invoke it once done.
func SetStreams(out io.Writer, in io.Reader) (restore func()) {
	stdoutMu.Lock()
	oldOut := stdout
	stdout = bufio.NewWriter(out)
	stdoutMu.Unlock()

	stdinMu.Lock()
	oldIn := stdin
	stdin = bufio.NewReader(in)
	stdinMu.Unlock()

	return func() {
		stdoutMu.Lock()
		stdout = oldOut
		stdoutMu.Unlock()

		stdinMu.Lock()
		stdin = oldIn
		stdinMu.Unlock()
	}
}

// WriteByte writes exactly one byte to standard output and flushes it.
//
// On Windows, bytes ≥128 are silently dropped: stdio there would otherwise
// reject a non-UTF-8 byte sequence. On success it returns nil; on any
// underlying I/O error it returns a heap-allocated ErrorCell.
func WriteByte(value uint8) *ErrorCell {
	if runtime.GOOS == "windows" && value >= 128 {
		return nil
	}

	stdoutMu.Lock()
	defer stdoutMu.Unlock()

	if err := stdout.WriteByte(value); err != nil {
		return &ErrorCell{Err: err}
	}
	if err := stdout.Flush(); err != nil {
		return &ErrorCell{Err: err}
	}
	return nil
}

// ReadByte reads exactly one byte from standard input into *dest.
//
// EOF stores 0 in *dest and returns nil — the standard Brainfuck
// convention. On Windows, a \r byte is discarded and the read retried, to
// normalize CRLF to LF. Any other I/O failure returns an ErrorCell.
func ReadByte(dest *byte) *ErrorCell {
	stdinMu.Lock()
	defer stdinMu.Unlock()

	for {
		b, err := stdin.ReadByte()
		if err == io.EOF {
			*dest = 0
			return nil
		}
		if err != nil {
			return &ErrorCell{Err: err}
		}

		if runtime.GOOS == "windows" && b == '\r' {
			continue
		}

		*dest = b
		return nil
	}
}
