// Package core provides the front-end for the Brainfuck compiler: source
// scanning, the folded intermediate representation, and the loop-matching
// logic shared by the interpreter and the asmjit backend.
//
// Brainfuck has eight commands, each a single character:
//
//	> : advance the data pointer
//	< : retreat the data pointer
//	+ : add to the byte at the data pointer (wraps mod 256)
//	- : subtract from the byte at the data pointer (wraps mod 256)
//	. : output the byte at the data pointer
//	, : read a byte into the data pointer
//	[ : jump past the matching ] if the current byte is zero
//	] : jump back to the matching [ if the current byte is nonzero
//
// Every other character is a comment and is ignored.
package core

// TapeSize is the size of the tape backing one program invocation.
const TapeSize = 4096000

// Position identifies where in the source an IR node originated, kept for
// diagnostics only; nothing in the data model depends on it.
type Position struct {
	Offset int
	Line   int
	Column int
}
