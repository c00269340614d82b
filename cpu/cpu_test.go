package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlagsClearedBeforeNonIPUInstruction(t *testing.T) {
	c := New()
	c.FlagRegister().Set(Equal)

	dst := c.Register(0)
	src := c.Register(1)
	require.NoError(t, c.Execute(Instruction{Type: Add, P0: dst, P1: src, NumParams: 2}))

	require.False(t, c.FlagRegister().IsSet(Equal))
}

func TestFlagsSurviveBeforeIPUInstruction(t *testing.T) {
	c := New()
	c.FlagRegister().Set(Equal)
	target := NewConstantParameter(3)

	require.NoError(t, c.Execute(Instruction{Type: Jeq, P0: target, NumParams: 1}))

	require.Equal(t, uint16(2), c.ProgramCounter())
}

func TestIPUJumpLandsOnTargetAfterOuterIncrement(t *testing.T) {
	c := New()
	target := NewConstantParameter(5)
	require.NoError(t, c.Execute(Instruction{Type: Jmp, P0: target, NumParams: 1}))
	c.SetProgramCounter(c.ProgramCounter() + 1)
	require.Equal(t, uint16(5), c.ProgramCounter())
}

func TestCallAndRetReportNotImplemented(t *testing.T) {
	c := New()
	target := NewConstantParameter(0)
	require.ErrorIs(t, c.Execute(Instruction{Type: Call, P0: target, NumParams: 1}), ErrNotImplemented)
	require.ErrorIs(t, c.Execute(Instruction{Type: Ret}), ErrNotImplemented)
}

func TestMMUMovPushPop(t *testing.T) {
	c := New()
	dst := c.Register(0)
	src := c.Register(1)
	require.NoError(t, src.Set(9))
	require.NoError(t, c.Execute(Instruction{Type: Mov, P0: dst, P1: src, NumParams: 2}))
	v, _ := dst.Value()
	require.Equal(t, uint16(9), v)

	require.NoError(t, c.Execute(Instruction{Type: Push, P0: dst, NumParams: 1}))
	dst2 := c.Register(2)
	require.NoError(t, c.Execute(Instruction{Type: Pop, P0: dst2, NumParams: 1}))
	v2, _ := dst2.Value()
	require.Equal(t, uint16(9), v2)
}

func TestMMUPopZeroArgsDiscardsTop(t *testing.T) {
	c := New()
	src := c.Register(0)
	require.NoError(t, src.Set(42))
	require.NoError(t, c.Execute(Instruction{Type: Push, P0: src, NumParams: 1}))
	require.NoError(t, c.Execute(Instruction{Type: Pop}))
	require.Error(t, c.Execute(Instruction{Type: Pop}))
}

func TestMemoryLocationParameterIsUnreadableAndUnwritable(t *testing.T) {
	p := NewMemoryLocationParameter(4)
	_, err := p.Value()
	require.ErrorIs(t, err, ErrIllegalOperation)
	require.ErrorIs(t, p.Set(1), ErrIllegalOperation)
}

func TestConstantParameterIsReadOnly(t *testing.T) {
	p := NewConstantParameter(4)
	v, err := p.Value()
	require.NoError(t, err)
	require.Equal(t, uint16(4), v)
	require.ErrorIs(t, p.Set(1), ErrIllegalOperation)
}
