package cpu

// InstructionType identifies the operation an Instruction performs. The
// numeric ranges below partition the set into ALU, IPU and MMU categories;
// the categoryOf table is used rather than a range comparison so reordering
// this block can't silently misclassify an opcode.
type InstructionType int

const (
	Add InstructionType = iota
	Sub
	Mul
	Div
	And
	Or
	Xor
	Not
	Shl
	Shr
	Cmp

	Jmp
	Jeq
	Jne
	Jlt
	Jle
	Jgt
	Jge
	Call
	Ret

	Mov
	Push
	Pop
)

type category int

const (
	categoryALU category = iota
	categoryIPU
	categoryMMU
)

var categoryOf = map[InstructionType]category{
	Add: categoryALU, Sub: categoryALU, Mul: categoryALU, Div: categoryALU,
	And: categoryALU, Or: categoryALU, Xor: categoryALU, Not: categoryALU,
	Shl: categoryALU, Shr: categoryALU, Cmp: categoryALU,

	Jmp: categoryIPU, Jeq: categoryIPU, Jne: categoryIPU, Jlt: categoryIPU,
	Jle: categoryIPU, Jgt: categoryIPU, Jge: categoryIPU, Call: categoryIPU,
	Ret: categoryIPU,

	Mov: categoryMMU, Push: categoryMMU, Pop: categoryMMU,
}

// IsALU reports whether the instruction is executed by the ALU.
func (t InstructionType) IsALU() bool { return categoryOf[t] == categoryALU }

// IsIPU reports whether the instruction is executed by the IPU.
func (t InstructionType) IsIPU() bool { return categoryOf[t] == categoryIPU }

// IsMMU reports whether the instruction is executed by the MMU.
func (t InstructionType) IsMMU() bool { return categoryOf[t] == categoryMMU }

var typeNames = map[InstructionType]string{
	Add: "add", Sub: "sub", Mul: "mul", Div: "div", And: "and", Or: "or",
	Xor: "xor", Not: "not", Shl: "shl", Shr: "shr", Cmp: "cmp",
	Jmp: "jmp", Jeq: "jeq", Jne: "jne", Jlt: "jlt", Jle: "jle", Jgt: "jgt",
	Jge: "jge", Call: "call", Ret: "ret",
	Mov: "mov", Push: "push", Pop: "pop",
}

func (t InstructionType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// MinArgs and MaxArgs give the allowed operand-count range for an
// instruction type, mirroring the original's instructionOpCount table.
func (t InstructionType) MinArgs() int { return arity[t].min }
func (t InstructionType) MaxArgs() int { return arity[t].max }

type arityRange struct{ min, max int }

var arity = map[InstructionType]arityRange{
	Add: {2, 2}, Sub: {2, 2}, Mul: {2, 2}, Div: {2, 2}, And: {2, 2}, Or: {2, 2},
	Xor: {2, 2}, Shl: {2, 2}, Shr: {2, 2}, Cmp: {2, 2}, Mov: {2, 2},
	Not: {1, 1}, Jmp: {1, 1}, Jeq: {1, 1}, Jne: {1, 1}, Jlt: {1, 1},
	Jle: {1, 1}, Jgt: {1, 1}, Jge: {1, 1}, Call: {1, 1}, Push: {1, 1},
	Pop: {0, 1},
	Ret: {0, 0},
}

// Instruction is a fully resolved, ready-to-execute operation: a type plus
// up to two operands. P0 and P1 are the zero Parameter when NumParams
// doesn't reach them; NumParams distinguishes a POP with its one optional
// operand supplied from a bare POP, which both otherwise look alike.
type Instruction struct {
	Type      InstructionType
	P0        Parameter
	P1        Parameter
	NumParams int
}
