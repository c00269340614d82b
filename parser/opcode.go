package parser

import "asm16/cpu"

// opcodes is the closed mnemonic table a token is checked against before
// falling back to label validation. It matches the original's iTypeMap
// exactly: 23 mnemonics.
var opcodes = map[string]cpu.InstructionType{
	"add": cpu.Add, "sub": cpu.Sub, "mul": cpu.Mul, "div": cpu.Div,
	"and": cpu.And, "or": cpu.Or, "xor": cpu.Xor, "not": cpu.Not,
	"shl": cpu.Shl, "shr": cpu.Shr, "cmp": cpu.Cmp,
	"jmp": cpu.Jmp, "jeq": cpu.Jeq, "jne": cpu.Jne, "jlt": cpu.Jlt,
	"jle": cpu.Jle, "jgt": cpu.Jgt, "jge": cpu.Jge,
	"call": cpu.Call, "ret": cpu.Ret,
	"mov": cpu.Mov, "push": cpu.Push, "pop": cpu.Pop,
}

func lookupOpcode(token string) (cpu.InstructionType, bool) {
	t, ok := opcodes[token]
	return t, ok
}
