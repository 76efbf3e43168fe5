package core

// charKind maps an instruction character to the Kind it lexes to. Any byte
// absent from this map is a comment and is skipped.
var charKind = map[byte]Kind{
	'+': KindAdd,
	'-': KindSub,
	'>': KindRight,
	'<': KindLeft,
	'.': KindOut,
	',': KindIn,
	'[': KindLoopBegin,
	']': KindLoopEnd,
}

// Parse scans source one character at a time, mapping each instruction
// character to its initial-count node and silently skipping everything
// else, then runs a fold pass that collapses runs of adjacent Add/Sub/
// Right/Left nodes into a single node carrying the wrapping sum.
//
// Parse cannot fail on character content; bracket balance is validated by
// each backend at emission time, not here.
func Parse(source []byte) (Program, error) {
	prog := make(Program, 0, len(source))

	line, col := 1, 1
	for i := 0; i < len(source); i++ {
		b := source[i]
		pos := Position{Offset: i, Line: line, Column: col}

		if kind, ok := charKind[b]; ok {
			prog = fold(prog, kind, pos)
		} else if b == '\n' {
			line++
			col = 0
		}
		col++
	}

	return prog, nil
}

// fold appends a node of kind at pos, merging it into the last emitted node
// when both are foldable and of the same kind. Folding is strictly local:
// only adjacent pairs are considered, and unlike kinds are never combined
// (e.g. Add immediately followed by Sub is not canceled).
func fold(prog Program, kind Kind, pos Position) Program {
	if n := len(prog); n > 0 && prog[n-1].Kind == kind && kind.foldable() {
		last := &prog[n-1]
		switch kind {
		case KindAdd, KindSub:
			last.Byte += 1 // wraps mod 256 via uint8 arithmetic
		case KindRight, KindLeft:
			last.Count += 1
		}
		return prog
	}

	switch kind {
	case KindAdd:
		return append(prog, Add(1, pos))
	case KindSub:
		return append(prog, Sub(1, pos))
	case KindRight:
		return append(prog, Right(1, pos))
	case KindLeft:
		return append(prog, Left(1, pos))
	case KindOut:
		return append(prog, Out(pos))
	case KindIn:
		return append(prog, In(pos))
	case KindLoopBegin:
		return append(prog, LoopBegin(pos))
	case KindLoopEnd:
		return append(prog, LoopEnd(pos))
	default:
		return prog
	}
}
