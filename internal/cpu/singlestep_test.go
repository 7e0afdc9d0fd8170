package cpu

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"path"
	"strconv"
	"testing"

	"golang.org/x/exp/maps"
)

// Test_CPU_SingleStepTest runs the per-opcode JSON suites from
// SingleStepTests/65x02 when SINGLE_STEP_TEST_DIR points at them.
func Test_CPU_SingleStepTest(t *testing.T) {
	t.Parallel()

	type cpuState struct {
		PC uint16 `json:"pc"`
		S  uint8  `json:"s"`
		A  uint8  `json:"a"`
		X  uint8  `json:"x"`
		Y  uint8  `json:"y"`
		P  uint8  `json:"p"`

		// [address, value]
		RAM [][]uint16 `json:"ram"`
	}

	type testInstance struct {
		Name    string   `json:"name"`
		Initial cpuState `json:"initial"`
		Final   cpuState `json:"final"`

		// [address, value, "read"|"write"]
		Cycles [][]any `json:"cycles"`
	}

	dir := os.Getenv("SINGLE_STEP_TEST_DIR")
	if dir == "" {
		t.Skip("skipping test because SINGLE_STEP_TEST_DIR is not set")
		return
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	m := newStepMem(t)
	quiet := log.New(io.Discard, "", 0)
	doTest := func(t *testing.T, test testInstance) {
		m.t = t
		m.reset()
		for _, addrVal := range test.Initial.RAM {
			m.set(addrVal[0], uint8(addrVal[1]))
		}
		for _, cyc := range test.Cycles {
			m.allow(uint16(cyc[0].(float64)), uint8(cyc[1].(float64)))
		}

		cpu := New(m, WithLogger(quiet))
		cpu.state = StateFetching
		cpu.PC = test.Initial.PC
		cpu.SP = test.Initial.S
		cpu.A = test.Initial.A
		cpu.X = test.Initial.X
		cpu.Y = test.Initial.Y
		cpu.P = test.Initial.P

		n, err := cpu.Step()
		if err != nil {
			t.Fatalf("%s: %v", test.Name, err)
		}

		if int(n) != len(test.Cycles) {
			t.Fatalf("%s: expected %d cycles, got %d", test.Name, len(test.Cycles), n)
		}
		if cpu.PC != test.Final.PC {
			t.Fatalf("%s: expected PC %04X, got %04X", test.Name, test.Final.PC, cpu.PC)
		}
		if cpu.SP != test.Final.S {
			t.Fatalf("%s: expected S %02X, got %02X", test.Name, test.Final.S, cpu.SP)
		}
		if cpu.A != test.Final.A {
			t.Fatalf("%s: expected A %02X, got %02X", test.Name, test.Final.A, cpu.A)
		}
		if cpu.X != test.Final.X {
			t.Fatalf("%s: expected X %02X, got %02X", test.Name, test.Final.X, cpu.X)
		}
		if cpu.Y != test.Final.Y {
			t.Fatalf("%s: expected Y %02X, got %02X", test.Name, test.Final.Y, cpu.Y)
		}
		if cpu.Status() != test.Final.P|flagU {
			t.Fatalf("%s: expected P %02X, got %02X", test.Name, test.Final.P|flagU, cpu.Status())
		}

		for _, addrVal := range test.Final.RAM {
			m.mustBe(addrVal[0], uint8(addrVal[1]))
		}
	}

	var tests []testInstance
	for _, file := range files {
		opcodeStr := path.Base(file.Name())[:2]
		opcode, err := strconv.ParseUint(opcodeStr, 16, 8)
		if err != nil {
			t.Fatalf("failed to parse opcode from file name %s: %v", file.Name(), err)
		}

		in := Lookup(uint8(opcode))
		if in.Illegal {
			continue
		}

		fileData, err := os.ReadFile(path.Join(dir, file.Name()))
		if err != nil {
			t.Fatalf("failed to read file %s: %v", file.Name(), err)
		}

		tests = tests[:0]
		if err := json.Unmarshal(fileData, &tests); err != nil {
			t.Fatalf("failed to unmarshal file %s: %v", file.Name(), err)
		}

		t.Run(file.Name(), func(t *testing.T) {
			for _, test := range tests {
				// decimal mode is not emulated
				if (in.Name == "ADC" || in.Name == "SBC") && test.Initial.P&flagD != 0 {
					continue
				}
				doTest(t, test)
			}
		})
	}
}

// stepMem is flat RAM that fails the test on writes the suite does not
// list for the current case.
type stepMem struct {
	t       *testing.T
	data    []uint8
	allowed map[uint32]struct{}
}

func newStepMem(t *testing.T) *stepMem {
	return &stepMem{
		t:       t,
		data:    make([]uint8, 0x10000),
		allowed: make(map[uint32]struct{}),
	}
}

func key(addr uint16, data uint8) uint32 {
	return uint32(addr) | uint32(data)<<16
}

func (m *stepMem) allow(addr uint16, data uint8) {
	m.allowed[key(addr, data)] = struct{}{}
}

func (m *stepMem) mustBe(addr uint16, data uint8) {
	if m.data[addr] != data {
		m.t.Fatalf("expected %02X at address %04X, got %02X", data, addr, m.data[addr])
	}
}

func (m *stepMem) set(addr uint16, data uint8) {
	m.data[addr] = data
}

func (m *stepMem) reset() {
	clear(m.data)
	maps.Clear(m.allowed)
}

func (m *stepMem) Read8(addr uint16) uint8 {
	return m.data[addr]
}

func (m *stepMem) Write8(addr uint16, data uint8) {
	if _, ok := m.allowed[key(addr, data)]; !ok {
		m.t.Fatalf("not allowed write to address %04X with value %02X", addr, data)
	}
	m.data[addr] = data
}
