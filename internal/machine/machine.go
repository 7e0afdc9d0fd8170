package machine

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/nevisdale/emu6502/internal/cpu"
	"github.com/nevisdale/emu6502/internal/mem"
)

// ProgramWindow is the number of bytes Snapshot copies around PC.
const ProgramWindow = 0x40

// IOFailure is returned when an image or dump file can't be read or written.
type IOFailure struct {
	Path string
	Op   string
	Err  error
}

func (e *IOFailure) Error() string {
	return fmt.Sprintf("couldn't %s %s: %s", e.Op, e.Path, e.Err)
}

func (e *IOFailure) Unwrap() error {
	return e.Err
}

// Machine ties one address space to one CPU.
type Machine struct {
	mem *mem.Memory
	cpu *cpu.CPU
	log *log.Logger
}

type Option func(*Machine)

// WithLogger sets the logger used by the machine and its CPU.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		m.log = l
	}
}

func New(opts ...Option) *Machine {
	m := &Machine{
		mem: mem.New(),
		log: log.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.cpu = cpu.New(m.mem, cpu.WithLogger(m.log))
	return m
}

func (m *Machine) CPU() *cpu.CPU {
	return m.cpu
}

func (m *Machine) Memory() *mem.Memory {
	return m.mem
}

// LoadImage copies img to origin and resets the CPU.
func (m *Machine) LoadImage(img []byte, origin uint16, opts ...mem.LoadOption) error {
	if err := m.mem.LoadImage(img, origin, opts...); err != nil {
		return err
	}
	m.log.Printf("loaded %d bytes at $%04X", len(img), origin)
	m.cpu.Reset()
	return nil
}

// LoadFile reads an image from path and loads it at origin.
func (m *Machine) LoadFile(path string, origin uint16, opts ...mem.LoadOption) error {
	img, err := os.ReadFile(path)
	if err != nil {
		return &IOFailure{Path: path, Op: "read", Err: err}
	}
	return m.LoadImage(img, origin, opts...)
}

// LoadExample loads the built-in 10*3 program.
func (m *Machine) LoadExample() error {
	return m.LoadImage(example, ExampleOrigin)
}

func (m *Machine) Reset() {
	m.cpu.Reset()
}

func (m *Machine) Step() (uint8, error) {
	return m.cpu.Step()
}

func (m *Machine) Run(ctx context.Context) error {
	return m.cpu.Run(ctx)
}

func (m *Machine) Stop() {
	m.cpu.Stop()
}

// Dump returns all 65536 bytes in address order.
func (m *Machine) Dump() []byte {
	return m.mem.Dump()
}

func (m *Machine) WriteDump(w io.Writer) error {
	_, err := w.Write(m.mem.Dump())
	return err
}

func (m *Machine) DumpToFile(path string) error {
	if err := os.WriteFile(path, m.mem.Dump(), 0o644); err != nil {
		return &IOFailure{Path: path, Op: "write", Err: err}
	}
	m.log.Printf("memory dumped to %s", path)
	return nil
}

// RestoreFile replaces memory with a dump written by DumpToFile and resets
// the CPU from the restored RESET vector.
func (m *Machine) RestoreFile(path string) error {
	dump, err := os.ReadFile(path)
	if err != nil {
		return &IOFailure{Path: path, Op: "read", Err: err}
	}
	if err := m.mem.Restore(dump); err != nil {
		return fmt.Errorf("couldn't restore %s: %w", path, err)
	}
	m.cpu.Reset()
	return nil
}

// Snapshot is a copy of everything a monitor shows.
type Snapshot struct {
	cpu.Snapshot
	ZeroPage    []byte
	Stack       []byte
	ProgramAddr uint16
	Program     []byte
}

func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{
		Snapshot: m.cpu.Snapshot(),
		ZeroPage: m.mem.Range(mem.ZeroPageStart, 0x100),
		Stack:    m.mem.Range(mem.StackStart, 0x100),
	}
	// start one row before the row holding PC
	s.ProgramAddr = s.PC&0xfff0 - 0x10
	s.Program = m.mem.Range(s.ProgramAddr, ProgramWindow)
	return s
}

// Disassemble decodes count instructions starting at PC.
func (m *Machine) Disassemble(count int) []cpu.Line {
	return cpu.Disassemble(m.mem, m.cpu.PC, count)
}
