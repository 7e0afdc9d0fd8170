package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_AddrMode_AbsoluteX_PageCross(t *testing.T) {
	t.Run("crossing costs a cycle", func(t *testing.T) {
		cpu, m := newTestCPU(t, 0x8000, 0xbd, 0xff, 0x20) // LDA $20FF,X
		cpu.X = 1
		m.Write8(0x2100, 0x55)

		n, err := cpu.Step()
		require.NoError(t, err)

		assert.Equal(t, uint8(5), n)
		assert.Equal(t, uint8(0x55), cpu.A)
	})

	t.Run("same page does not", func(t *testing.T) {
		cpu, m := newTestCPU(t, 0x8000, 0xbd, 0x00, 0x20) // LDA $2000,X
		cpu.X = 1
		m.Write8(0x2001, 0x66)

		n, err := cpu.Step()
		require.NoError(t, err)

		assert.Equal(t, uint8(4), n)
		assert.Equal(t, uint8(0x66), cpu.A)
	})

	t.Run("resolver reports the crossing", func(t *testing.T) {
		cpu, _ := newTestCPU(t, 0x8000, 0xff, 0x20, 0x00, 0x20)
		cpu.X = 1

		o := cpu.resolve(AddrModeABSX)
		assert.Equal(t, uint16(0x2100), o.addr)
		assert.True(t, o.pageCrossed)

		o = cpu.resolve(AddrModeABSX)
		assert.Equal(t, uint16(0x2001), o.addr)
		assert.False(t, o.pageCrossed)
	})

	t.Run("stores always pay the extra cycle", func(t *testing.T) {
		for _, base := range []uint8{0x00, 0xff} {
			cpu, m := newTestCPU(t, 0x8000, 0x9d, base, 0x20) // STA $20xx,X
			cpu.X = 1
			cpu.A = 0x77

			n, err := cpu.Step()
			require.NoError(t, err)

			assert.Equal(t, uint8(5), n)
			assert.Equal(t, uint8(0x77), m.Read8(0x2000+uint16(base)+1))
		}
	})
}

func Test_AddrMode_AbsoluteY(t *testing.T) {
	cpu, m := newTestCPU(t, 0x8000, 0xbe, 0xf0, 0x30) // LDX $30F0,Y
	cpu.Y = 0x20
	m.Write8(0x3110, 0x01)

	n, err := cpu.Step()
	require.NoError(t, err)

	assert.Equal(t, uint8(5), n)
	assert.Equal(t, uint8(0x01), cpu.X)
}

func Test_AddrMode_Indirect_PageWrapBug(t *testing.T) {
	cpu, m := newTestCPU(t, 0x8000, 0x6c, 0xff, 0x30) // JMP ($30FF)
	m.Write8(0x30ff, 0x80)
	m.Write8(0x3000, 0x50)
	m.Write8(0x3100, 0x40)

	n, err := cpu.Step()
	require.NoError(t, err)

	assert.Equal(t, uint8(5), n)
	assert.Equal(t, uint16(0x5080), cpu.PC)
}

func Test_AddrMode_Indirect(t *testing.T) {
	cpu, m := newTestCPU(t, 0x8000, 0x6c, 0x20, 0x30) // JMP ($3020)
	m.Write8(0x3020, 0x34)
	m.Write8(0x3021, 0x12)

	_, err := cpu.Step()
	require.NoError(t, err)

	assert.Equal(t, uint16(0x1234), cpu.PC)
}

func Test_AddrMode_ZeroPageIndexed_Wraps(t *testing.T) {
	t.Run("ZPX", func(t *testing.T) {
		cpu, m := newTestCPU(t, 0x8000, 0xb5, 0xf0) // LDA $F0,X
		cpu.X = 0x20
		m.Write8(0x0010, 0xab)
		m.Write8(0x0110, 0xcd)

		n, err := cpu.Step()
		require.NoError(t, err)

		assert.Equal(t, uint8(4), n, "no page-cross penalty")
		assert.Equal(t, uint8(0xab), cpu.A)
	})

	t.Run("ZPY", func(t *testing.T) {
		cpu, m := newTestCPU(t, 0x8000, 0x96, 0xff) // STX $FF,Y
		cpu.Y = 0x02
		cpu.X = 0x99

		_, err := cpu.Step()
		require.NoError(t, err)

		assert.Equal(t, uint8(0x99), m.Read8(0x0001))
		assert.Equal(t, uint8(0x00), m.Read8(0x0101))
	})
}

func Test_AddrMode_IndexedIndirect(t *testing.T) {
	t.Run("pointer at operand + X", func(t *testing.T) {
		cpu, m := newTestCPU(t, 0x8000, 0xa1, 0x20) // LDA ($20,X)
		cpu.X = 0x04
		m.Write8(0x0024, 0x74)
		m.Write8(0x0025, 0x20)
		m.Write8(0x2074, 0x42)

		n, err := cpu.Step()
		require.NoError(t, err)

		assert.Equal(t, uint8(6), n)
		assert.Equal(t, uint8(0x42), cpu.A)
	})

	t.Run("pointer bytes wrap in the zero page", func(t *testing.T) {
		cpu, m := newTestCPU(t, 0x8000, 0xa1, 0xfe) // LDA ($FE,X)
		cpu.X = 0x01
		m.Write8(0x00ff, 0x00)
		m.Write8(0x0000, 0x30)
		m.Write8(0x0100, 0x40)
		m.Write8(0x3000, 0x11)

		_, err := cpu.Step()
		require.NoError(t, err)

		assert.Equal(t, uint8(0x11), cpu.A)
	})
}

func Test_AddrMode_IndirectIndexed(t *testing.T) {
	t.Run("page cross costs a cycle", func(t *testing.T) {
		cpu, m := newTestCPU(t, 0x8000, 0xb1, 0x40) // LDA ($40),Y
		cpu.Y = 0x01
		m.Write8(0x0040, 0xff)
		m.Write8(0x0041, 0x20)
		m.Write8(0x2100, 0x99)

		n, err := cpu.Step()
		require.NoError(t, err)

		assert.Equal(t, uint8(6), n)
		assert.Equal(t, uint8(0x99), cpu.A)
	})

	t.Run("same page", func(t *testing.T) {
		cpu, m := newTestCPU(t, 0x8000, 0xb1, 0x40) // LDA ($40),Y
		cpu.Y = 0x01
		m.Write8(0x0040, 0x00)
		m.Write8(0x0041, 0x20)
		m.Write8(0x2001, 0x98)

		n, err := cpu.Step()
		require.NoError(t, err)

		assert.Equal(t, uint8(5), n)
		assert.Equal(t, uint8(0x98), cpu.A)
	})

	t.Run("pointer at $FF wraps to $00", func(t *testing.T) {
		cpu, m := newTestCPU(t, 0x8000, 0x91, 0xff) // STA ($FF),Y
		cpu.Y = 0x00
		cpu.A = 0x5a
		m.Write8(0x00ff, 0x10)
		m.Write8(0x0000, 0x30)

		n, err := cpu.Step()
		require.NoError(t, err)

		assert.Equal(t, uint8(6), n)
		assert.Equal(t, uint8(0x5a), m.Read8(0x3010))
	})
}

func Test_AddrMode_Relative(t *testing.T) {
	t.Run("backward across a page", func(t *testing.T) {
		cpu, _ := newTestCPU(t, 0x8100, 0xd0, 0xfc) // BNE -4
		cpu.P &^= flagZ

		n, err := cpu.Step()
		require.NoError(t, err)

		assert.Equal(t, uint16(0x80fe), cpu.PC)
		assert.Equal(t, uint8(4), n)
	})

	t.Run("forward same page", func(t *testing.T) {
		cpu, _ := newTestCPU(t, 0x8000, 0xf0, 0x10) // BEQ +16
		cpu.P |= flagZ

		n, err := cpu.Step()
		require.NoError(t, err)

		assert.Equal(t, uint16(0x8012), cpu.PC)
		assert.Equal(t, uint8(3), n)
	})

	t.Run("not taken", func(t *testing.T) {
		cpu, _ := newTestCPU(t, 0x8000, 0xf0, 0x10) // BEQ +16
		cpu.P &^= flagZ

		n, err := cpu.Step()
		require.NoError(t, err)

		assert.Equal(t, uint16(0x8002), cpu.PC)
		assert.Equal(t, uint8(2), n)
	})
}

func Test_AddrMode_Accumulator(t *testing.T) {
	cpu, m := newTestCPU(t, 0x8000, 0x4a) // LSR A
	cpu.A = 0x02
	before := m.Dump()

	n, err := cpu.Step()
	require.NoError(t, err)

	assert.Equal(t, uint8(2), n)
	assert.Equal(t, uint8(0x01), cpu.A)
	assert.Equal(t, before, m.Dump(), "accumulator mode writes no memory")
}

func Test_AddrMode_String(t *testing.T) {
	assert.Equal(t, "INDY", AddrModeINDY.String())
	assert.Equal(t, "???", AddrMode(0).String())
	assert.Equal(t, 2, AddrModeIND.Size())
	assert.Equal(t, 1, AddrModeREL.Size())
	assert.Equal(t, 0, AddrModeACC.Size())
}
