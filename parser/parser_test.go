package parser

import (
	"testing"

	"asm16/cpu"

	"github.com/stretchr/testify/require"
)

func registerMap(count int) RegisterMap {
	m := make(RegisterMap, count)
	cells := make([]uint16, count)
	for i := 0; i < count; i++ {
		m[regName(i)] = &cells[i]
	}
	return m
}

func regName(i int) string {
	return "r" + string(rune('0'+i))
}

func TestCountScenario(t *testing.T) {
	src := "mov r0 r1;\n" +
		"mov r1 r2;\n" +
		"// comment\n" +
		"add r3 r4;\n" +
		"add r3 2;\n" +
		"sub r2 0;\n" +
		"mul r4, 3;\n"
	p, err := FromString(src)
	require.NoError(t, err)

	instrs, err := p.Resolve(registerMap(8))
	require.NoError(t, err)
	require.Len(t, instrs, 6)

	types := make([]cpu.InstructionType, len(instrs))
	for i, instr := range instrs {
		types[i] = instr.Type
	}
	require.Equal(t, []cpu.InstructionType{cpu.Mov, cpu.Mov, cpu.Add, cpu.Add, cpu.Sub, cpu.Mul}, types)
}

func TestConstantBasesScenario(t *testing.T) {
	src := "mov r0 0b1011; mov r1 0766; mov r2 0xDEAD;"
	p, err := FromString(src)
	require.NoError(t, err)

	regs := registerMap(8)
	instrs, err := p.Resolve(regs)
	require.NoError(t, err)
	require.Len(t, instrs, 3)

	expected := []uint16{11, 502, 57005}
	for i, instr := range instrs {
		v, err := instr.P1.Value()
		require.NoError(t, err)
		require.Equal(t, expected[i], v)
	}
}

func TestInvalidTokenScenario(t *testing.T) {
	src := "\nmov r0 10abc;\n"
	_, err := FromString(src)
	require.Error(t, err)
	info, ok := InvalidTokenDetail(err)
	require.True(t, ok)
	require.Equal(t, 2, info.Line)
	require.Equal(t, 8, info.Column)
	require.Equal(t, "10abc", info.Token)
}

func TestTooManyParamsScenario(t *testing.T) {
	src := "\nmov r0 10 20;\n"
	_, err := FromString(src)
	require.Error(t, err)
	info, ok := InvalidTokenDetail(err)
	require.True(t, ok)
	require.Equal(t, 2, info.Line)
	require.Equal(t, 11, info.Column)
	require.Equal(t, "20", info.Token)
}

func TestTooFewParamsScenario(t *testing.T) {
	_, err := FromString("mov r0;")
	require.Error(t, err)
	info, ok := InvalidTokenDetail(err)
	require.True(t, ok)
	require.Equal(t, ";", info.Token)
	require.Equal(t, 7, info.Column)
}

func TestTooFewParamsEOFScenario(t *testing.T) {
	_, err := FromString("mov r0")
	require.Error(t, err)
	info, ok := InvalidTokenDetail(err)
	require.True(t, ok)
	require.Equal(t, "<EOF>", info.Token)
}

func TestLabelsAndJumpsScenario(t *testing.T) {
	src := "mov r0 10; test: mov r1 20; jmp test; mov r2 30;"
	p, err := FromString(src)
	require.NoError(t, err)

	instrs, err := p.Resolve(registerMap(8))
	require.NoError(t, err)
	require.Len(t, instrs, 4)
	require.Equal(t, cpu.Jmp, instrs[2].Type)

	target, err := instrs[2].P0.Value()
	require.NoError(t, err)
	require.Equal(t, uint16(1), target)
}

func TestUndefinedReferenceScenario(t *testing.T) {
	src := "mov r0 10; add r1 r2;"
	p, err := FromString(src)
	require.NoError(t, err)

	regs := RegisterMap{}
	r0, r1 := uint16(0), uint16(0)
	regs["r0"] = &r0
	regs["r1"] = &r1

	_, err = p.Resolve(regs)
	require.Error(t, err)
	info, ok := UndefinedReferenceDetail(err)
	require.True(t, ok)
	require.Equal(t, 1, info.ReferencingInstructionIndex)
	require.Equal(t, "r2", info.Token)
}

func TestBufferSizingTwoCallProtocol(t *testing.T) {
	p, err := FromString("mov r0 r1; add r1 r2;")
	require.NoError(t, err)
	regs := registerMap(8)

	count, err := p.InstructionCount(regs)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	small := make([]cpu.Instruction, 1)
	required, err := p.FillInstructions(regs, small)
	require.ErrorIs(t, err, ErrArrayTooSmall)
	require.Equal(t, 2, required)

	buf := make([]cpu.Instruction, 2)
	required, err = p.FillInstructions(regs, buf)
	require.NoError(t, err)
	require.Equal(t, 2, required)
}

func TestResolveIsCachedByRegisterMapIdentity(t *testing.T) {
	p, err := FromString("mov r0 r1;")
	require.NoError(t, err)
	regs := registerMap(8)

	first, err := p.Resolve(regs)
	require.NoError(t, err)
	second, err := p.Resolve(regs)
	require.NoError(t, err)
	require.Same(t, &first[0], &second[0])

	other := registerMap(8)
	third, err := p.Resolve(other)
	require.NoError(t, err)
	require.NotSame(t, &first[0], &third[0])
}

func TestDuplicateLabelFirstDefinitionWins(t *testing.T) {
	src := "here: mov r0 10; here: mov r1 20; jmp here;"
	p, err := FromString(src)
	require.NoError(t, err)

	instrs, err := p.Resolve(registerMap(8))
	require.NoError(t, err)
	target, err := instrs[2].P0.Value()
	require.NoError(t, err)
	require.Equal(t, uint16(0), target)
}
