// Package jitexec maps a compiled byte buffer into executable memory and
// invokes it, translating the generated code's raw error-pointer return
// into a Go error.
//
// The executable memory lifecycle follows a strict W^X discipline: a
// mapping is writable while the emitted bytes are copied in, then
// transitioned to read+execute and never made writable again.
package jitexec

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/lcox74/bfjit/internal/core"
	"github.com/lcox74/bfjit/internal/ioshim"
)

// ShimAddresses returns the absolute addresses of the host I/O shims, for a
// backend's code generator to embed as immediate call targets. This is the
// one place the native-call-boundary ABI assumption lives: Go exposes no
// stable way to obtain a System-V-callable entry point for an arbitrary Go
// function, so the function's runtime program counter is captured via
// reflect and treated as a plain C function pointer. ioshim.WriteByte and
// ioshim.ReadByte are fixed, non-generic, non-interface functions, which in
// practice keeps this assumption safe under the current compiler.
func ShimAddresses() (writeAddr, readAddr uint64) {
	writeAddr = uint64(reflect.ValueOf(ioshim.WriteByte).Pointer())
	readAddr = uint64(reflect.ValueOf(ioshim.ReadByte).Pointer())
	return
}

// entryFunc is the signature every backend's emitted bytes implement:
// receive the tape base, return nil on success or a non-nil ErrorCell.
type entryFunc func(tape *byte) *ioshim.ErrorCell

// Program holds one compiled, mapped function. It may be invoked
// repeatedly; each Run gets a fresh, zeroed tape.
type Program struct {
	mapping executableMapping
	entry   entryFunc
}

// Compile maps code into executable memory and prepares it for Run.
func Compile(code []byte) (*Program, error) {
	mapping, base, err := mapExecutable(code)
	if err != nil {
		return nil, fmt.Errorf("jitexec: %w", err)
	}
	return &Program{
		mapping: mapping,
		entry:   makeEntryFunc(base),
	}, nil
}

// Run allocates a fresh tape and invokes the compiled entry point with it.
// A non-nil *ioshim.ErrorCell returned by generated code is translated into
// a plain Go error; the cell itself needs no separate release in Go (the
// garbage collector reclaims it once this function returns), unlike a
// systems-language host where the executor must free it explicitly.
func (p *Program) Run() error {
	tape := make([]byte, core.TapeSize)
	if cell := p.entry(&tape[0]); cell != nil {
		return cell
	}
	return nil
}

// Close releases the mapped executable memory. A Program must not be used
// after Close.
func (p *Program) Close() error {
	return p.mapping.close()
}

// makeEntryFunc builds a callable Go function value whose body is the
// native code at base. Go gives no public API for this; the technique
// constructs a "funcval" by hand — a Go func value is represented at
// runtime as a pointer to a struct whose first word is the code's entry
// address — the same trick used to turn a raw mmap'd code pointer into a
// Go func value for a JIT elsewhere in this corpus (see DESIGN.md).
func makeEntryFunc(base uintptr) entryFunc {
	funcval := &struct{ code uintptr }{code: base}
	return *(*entryFunc)(unsafe.Pointer(&funcval))
}
