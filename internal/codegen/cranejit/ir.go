// Package cranejit is the retargetable compiler backend: it lowers a folded
// core.Program into a small compiler IR — a control-flow graph of blocks
// holding straight-line ops and a single terminator each — verifies it
// structurally, then emits host-native machine code from the verified
// graph. It is a second, independent implementation path from asmjit: the
// two backends must agree on observable behavior but share no code beyond
// pkg/amd64's instruction encoders.
package cranejit

// Op is a straight-line compiler-IR instruction: one that never transfers
// control. Every concrete op embeds baseOp so only types declared in this
// package satisfy the interface.
type Op interface {
	op()
}

type baseOp struct{}

func (baseOp) op() {}

// AddCellOp adds N (wrapping mod 256) to the cell at the current pointer.
type AddCellOp struct {
	baseOp
	N uint8
}

// SubCellOp subtracts N (wrapping mod 256) from the cell at the current
// pointer.
type SubCellOp struct {
	baseOp
	N uint8
}

// ShiftOp adds Delta to the pointer variable. Right(n) lowers to +n,
// Left(n) to -n.
type ShiftOp struct {
	baseOp
	Delta int64
}

// Term is a block terminator: every block ends in exactly one.
type Term interface {
	term()
}

type baseTerm struct{}

func (baseTerm) term() {}

// JumpTerm transfers control unconditionally.
type JumpTerm struct {
	baseTerm
	Target *Block
}

// CondTerm branches on whether the cell at the current pointer is zero.
type CondTerm struct {
	baseTerm
	IfNonZero *Block
	IfZero    *Block
}

// CallCheckTerm calls a host shim at FuncAddr (captured at lowering time),
// then branches: to OnError if the call's result is non-zero, to OnSuccess
// otherwise. ArgIsCellAddr selects the argument convention: false passes
// the cell's current value (write_byte), true passes the cell's address
// (read_byte).
type CallCheckTerm struct {
	baseTerm
	FuncAddr      uint64
	ArgIsCellAddr bool
	OnError       *Block
	OnSuccess     *Block
}

// ReturnTerm ends the function. Zero returns the literal success value 0;
// otherwise it returns whatever error value is live at this point (by
// construction, only the single exit block reached from a CallCheckTerm's
// OnError edge returns non-zero, and the value live there is exactly the
// result of the call that branched here).
type ReturnTerm struct {
	baseTerm
	Zero bool
}

// Block is a basic block: straight-line ops followed by one terminator.
type Block struct {
	Name string
	Ops  []Op
	Term Term
}

// Function is the compiler-IR form of one compiled program: a pointer-width
// parameter (tape base) in, a pointer-width result (null iff no error) out.
type Function struct {
	Blocks []*Block // in emission order
	Entry  *Block
	Exit   *Block // the sole ReturnTerm{Zero:false} block
}

func newBlock(fn *Function, name string) *Block {
	b := &Block{Name: name}
	fn.Blocks = append(fn.Blocks, b)
	return b
}
