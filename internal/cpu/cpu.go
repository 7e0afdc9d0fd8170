package cpu

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/nevisdale/emu6502/internal/mem"
)

// ReadWriter is the address space the CPU runs against.
type ReadWriter interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, data uint8)
}

const (
	// The stack is located in the fixed memory page $0100 to $01FF.
	stackStartAddr = mem.StackStart

	resetSP         = uint8(0xfd)
	resetCycles     = uint8(7)
	interruptCycles = uint8(7)
)

type State uint8

const (
	StateIdle State = iota
	StateFetching
	StateExecuting
	StateInterruptPending
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateFetching:
		return "FETCHING"
	case StateExecuting:
		return "EXECUTING"
	case StateInterruptPending:
		return "INTERRUPT"
	case StateHalted:
		return "HALTED"
	}
	return "???"
}

var (
	// ErrNotReset is returned by Step and Run before the first Reset.
	ErrNotReset = errors.New("cpu has not been reset")
	// ErrBreakpoint is wrapped by Run when it stops in front of a breakpoint.
	ErrBreakpoint = errors.New("breakpoint")
)

// DecodeFault is returned when an opcode with no instruction is fetched.
// The CPU halts and keeps returning the same fault until Reset.
type DecodeFault struct {
	Opcode uint8
	PC     uint16
}

func (e *DecodeFault) Error() string {
	return fmt.Sprintf("illegal opcode $%02X at $%04X", e.Opcode, e.PC)
}

// CPU is a 6502 with its register file, cycle counter and interrupt latches.
// It is not safe for concurrent use, except for Stop.
type CPU struct {
	Registers

	mem    ReadWriter
	log    *log.Logger
	cycles uint64
	state  State
	fault  *DecodeFault

	nmiLatched   bool
	irqLine      bool
	resetPending bool

	breakpoints map[uint16]struct{}
	stopReq     atomic.Bool
}

type Option func(*CPU)

func WithLogger(l *log.Logger) Option {
	return func(c *CPU) {
		c.log = l
	}
}

// New returns an idle CPU. Reset must be called before Step.
func New(rw ReadWriter, opts ...Option) *CPU {
	c := &CPU{
		mem:         rw,
		log:         log.Default(),
		breakpoints: make(map[uint16]struct{}),
	}
	c.P = flagU
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CPU) read8(addr uint16) uint8 {
	return c.mem.Read8(addr)
}

func (c *CPU) read16(addr uint16) uint16 {
	return uint16(c.read8(addr)) | uint16(c.read8(addr+1))<<8
}

func (c *CPU) write8(addr uint16, data uint8) {
	c.mem.Write8(addr, data)
}

func (c *CPU) stackPop8() uint8 {
	c.SP++
	return c.read8(stackStartAddr | uint16(c.SP))
}

func (c *CPU) stackPop16() uint16 {
	lo := uint16(c.stackPop8())
	hi := uint16(c.stackPop8())
	return lo | hi<<8
}

func (c *CPU) stackPush8(data uint8) {
	c.write8(stackStartAddr|uint16(c.SP), data)
	c.SP--
}

func (c *CPU) stackPush16(data uint16) {
	c.stackPush8(uint8(data >> 8))
	c.stackPush8(uint8(data))
}

// Reset loads PC from the RESET vector and puts the CPU in its power-on state.
// It also clears a halt and any latched interrupts.
func (c *CPU) Reset() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.P = flagU | flagI
	c.SP = resetSP
	c.PC = c.read16(uint16(mem.VectorReset))
	c.cycles = uint64(resetCycles)
	c.state = StateFetching
	c.fault = nil
	c.nmiLatched = false
	c.resetPending = false
}

// RequestReset latches a reset that is serviced by the next Step.
func (c *CPU) RequestReset() {
	c.resetPending = true
}

// TriggerNMI latches a non-maskable interrupt. It is taken after the
// current instruction regardless of the I flag.
func (c *CPU) TriggerNMI() {
	c.nmiLatched = true
}

// SetIRQ drives the level-sensitive interrupt request line. While it is
// held and I is clear, an interrupt is taken after every instruction.
func (c *CPU) SetIRQ(active bool) {
	c.irqLine = active
}

func (c *CPU) State() State {
	return c.state
}

// Cycles is the number of cycles consumed since the last Reset, reset included.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Fault returns the decode fault that halted the CPU, if any.
func (c *CPU) Fault() error {
	if c.fault == nil {
		return nil
	}
	return c.fault
}

// Snapshot is a copy of the CPU state for observers.
type Snapshot struct {
	Registers
	Cycles uint64
	State  State
}

func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		Registers: c.Registers,
		Cycles:    c.cycles,
		State:     c.state,
	}
}

// Step runs one full instruction, including any interrupt entry that
// follows it, and returns the cycles consumed.
func (c *CPU) Step() (uint8, error) {
	if c.state == StateHalted {
		return 0, c.fault
	}
	if c.resetPending {
		c.Reset()
		return resetCycles, nil
	}
	if c.state == StateIdle {
		return 0, ErrNotReset
	}

	c.state = StateFetching
	opcode := c.read8(c.PC)
	in := &instructions[opcode]
	if in.Illegal {
		c.state = StateHalted
		c.fault = &DecodeFault{Opcode: opcode, PC: c.PC}
		c.log.Printf("unsupported opcode %02X. PC: %04X. halting...\n", opcode, c.PC)
		return 0, c.fault
	}
	c.PC++

	c.state = StateExecuting
	o := c.resolve(in.Mode)
	cycles := in.Cycles + in.op(c, o)
	if in.PageCycle && o.pageCrossed {
		cycles++
	}

	if v, ok := c.pendingInterrupt(); ok {
		c.state = StateInterruptPending
		cycles += c.interrupt(v)
	}

	c.state = StateFetching
	c.cycles += uint64(cycles)
	return cycles, nil
}

func (c *CPU) pendingInterrupt() (mem.Vector, bool) {
	if c.nmiLatched {
		c.nmiLatched = false
		return mem.VectorNMI, true
	}
	if c.irqLine && !c.getFlag(flagI) {
		return mem.VectorIRQ, true
	}
	return 0, false
}

// interrupt enters a hardware interrupt handler. Unlike BRK, the pushed
// status has B clear.
func (c *CPU) interrupt(v mem.Vector) uint8 {
	c.stackPush16(c.PC)
	c.stackPush8((c.P | flagU) & ^flagB)
	c.setFlag(flagI, true)
	c.PC = c.read16(uint16(v))
	return interruptCycles
}

// Run steps until ctx is done, Stop is called, the CPU halts, a breakpoint
// is reached, or an instruction leaves PC where it was (a JMP * trap).
//
// It returns nil for Stop and traps, ctx.Err() on cancellation, the
// DecodeFault on halt and an error wrapping ErrBreakpoint on breakpoints.
// The instruction at PC when Run starts is never treated as a breakpoint.
func (c *CPU) Run(ctx context.Context) error {
	defer c.stopReq.Store(false)
	done := ctx.Done()

	for first := true; ; first = false {
		select {
		case <-done:
			return ctx.Err()
		default:
		}
		if c.stopReq.Swap(false) {
			return nil
		}
		if !first && c.HasBreakpoint(c.PC) {
			return fmt.Errorf("%w at $%04X", ErrBreakpoint, c.PC)
		}

		pc := c.PC
		if _, err := c.Step(); err != nil {
			return err
		}
		if c.PC == pc {
			return nil
		}
	}
}

// Stop asks Run to return before its next instruction. A Stop made before
// Run starts is honoured by that Run. It is safe to call from any goroutine.
func (c *CPU) Stop() {
	c.stopReq.Store(true)
}
