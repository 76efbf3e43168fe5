package vm

import (
	"fmt"

	"github.com/lcox74/bfjit/internal/core"
)

// RuntimeError reports a failure while interpreting a program.
type RuntimeError struct {
	Msg string
	Pos core.Position
	PC  int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at pc %d (line %d, col %d): %s",
		e.PC, e.Pos.Line, e.Pos.Column, e.Msg)
}
