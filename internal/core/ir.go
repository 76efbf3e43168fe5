package core

import (
	"fmt"
	"strings"
)

// Kind identifies the tag of an IR node.
type Kind int

const (
	KindAdd       Kind = iota // Add(n): cell += n, wraps mod 256
	KindSub                   // Sub(n): cell -= n, wraps mod 256
	KindRight                 // Right(n): dp += n
	KindLeft                  // Left(n): dp -= n
	KindOut                   // Out: emit cell
	KindIn                    // In: read into cell
	KindLoopBegin             // LoopBegin: paired with a later LoopEnd
	KindLoopEnd               // LoopEnd: paired with the preceding LoopBegin
)

var kindNames = [...]string{
	KindAdd:       "Add",
	KindSub:       "Sub",
	KindRight:     "Right",
	KindLeft:      "Left",
	KindOut:       "Out",
	KindIn:        "In",
	KindLoopBegin: "LoopBegin",
	KindLoopEnd:   "LoopEnd",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// foldable reports whether two nodes of this kind with additive counts may
// be merged into one (Add, Sub, Right, Left).
func (k Kind) foldable() bool {
	switch k {
	case KindAdd, KindSub, KindRight, KindLeft:
		return true
	default:
		return false
	}
}

// Node is one IR instruction. Byte is the wrapped mod-256 count used by
// Add/Sub; Count is the unsigned machine-word count used by Right/Left.
// LoopBegin and LoopEnd carry no argument here: bracket matching is a
// backend-time concern, not a parse-time one.
type Node struct {
	Kind  Kind
	Byte  uint8
	Count uint
	Pos   Position
}

func Add(n uint8, pos Position) Node  { return Node{Kind: KindAdd, Byte: n, Pos: pos} }
func Sub(n uint8, pos Position) Node  { return Node{Kind: KindSub, Byte: n, Pos: pos} }
func Right(n uint, pos Position) Node { return Node{Kind: KindRight, Count: n, Pos: pos} }
func Left(n uint, pos Position) Node  { return Node{Kind: KindLeft, Count: n, Pos: pos} }
func Out(pos Position) Node           { return Node{Kind: KindOut, Pos: pos} }
func In(pos Position) Node            { return Node{Kind: KindIn, Pos: pos} }
func LoopBegin(pos Position) Node     { return Node{Kind: KindLoopBegin, Pos: pos} }
func LoopEnd(pos Position) Node       { return Node{Kind: KindLoopEnd, Pos: pos} }

// Program is the ordered, folded IR sequence produced by Parse.
type Program []Node

// Dump renders the IR in a textual form suitable for debugging. Parsing
// Dump's output back through a trivial re-lexer agrees on node shape with
// the folded IR it was produced from.
func Dump(prog Program) string {
	var out strings.Builder
	for i, n := range prog {
		switch n.Kind {
		case KindAdd:
			fmt.Fprintf(&out, "%04d: Add %d\n", i, n.Byte)
		case KindSub:
			fmt.Fprintf(&out, "%04d: Sub %d\n", i, n.Byte)
		case KindRight:
			fmt.Fprintf(&out, "%04d: Right %d\n", i, n.Count)
		case KindLeft:
			fmt.Fprintf(&out, "%04d: Left %d\n", i, n.Count)
		case KindOut:
			fmt.Fprintf(&out, "%04d: Out\n", i)
		case KindIn:
			fmt.Fprintf(&out, "%04d: In\n", i)
		case KindLoopBegin:
			fmt.Fprintf(&out, "%04d: LoopBegin\n", i)
		case KindLoopEnd:
			fmt.Fprintf(&out, "%04d: LoopEnd\n", i)
		}
	}
	return out.String()
}
