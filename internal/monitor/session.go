package monitor

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/nevisdale/emu6502/internal/cpu"
	"github.com/nevisdale/emu6502/internal/machine"
)

// Command is a monitor action bound to a key.
type Command int

const (
	CmdNone Command = iota
	CmdStep
	CmdRun // toggles between running and paused
	CmdReset
	CmdDump
	CmdQuit
)

// Keys is the help line shown under the panels.
const Keys = "ENTER/N step  SPACE run/pause  R reset  D dump  Q quit"

// DisasmLines is how many instructions the disassembly panel shows.
const DisasmLines = 16

// CommandForKey maps a typed character to a command.
func CommandForKey(r rune) Command {
	switch r {
	case '\r', '\n', 'n', 'N':
		return CmdStep
	case ' ':
		return CmdRun
	case 'r', 'R':
		return CmdReset
	case 'd', 'D':
		return CmdDump
	case 'q', 'Q', 0x03: // ctrl+c arrives as a byte in raw mode
		return CmdQuit
	}
	return CmdNone
}

// Session drives a machine from monitor commands. It is not safe for
// concurrent use; front ends call it from their own loop.
type Session struct {
	m        *machine.Machine
	dumpPath string
	log      *log.Logger

	running bool
	message string
}

func NewSession(m *machine.Machine, dumpPath string, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		m:        m,
		dumpPath: dumpPath,
		log:      logger,
		message:  "ready",
	}
}

func (s *Session) Running() bool {
	return s.running
}

func (s *Session) Message() string {
	return s.message
}

// Do applies cmd and reports whether the front end should quit.
// Quitting writes the dump file first.
func (s *Session) Do(cmd Command) (bool, error) {
	switch cmd {
	case CmdStep:
		s.running = false
		s.step()
	case CmdRun:
		s.running = !s.running
		if s.running {
			s.message = "running"
		} else {
			s.message = "paused"
		}
	case CmdReset:
		s.running = false
		s.m.Reset()
		s.message = fmt.Sprintf("reset to $%04X", s.m.CPU().PC)
	case CmdDump:
		if err := s.m.DumpToFile(s.dumpPath); err != nil {
			s.message = err.Error()
			return false, err
		}
		s.message = "dumped to " + s.dumpPath
	case CmdQuit:
		s.running = false
		if err := s.m.DumpToFile(s.dumpPath); err != nil {
			return true, err
		}
		return true, nil
	}
	return false, nil
}

// Tick runs up to n instructions while the session is running. It pauses
// on a decode fault or when the program traps itself.
func (s *Session) Tick(n int) {
	for i := 0; i < n && s.running; i++ {
		s.step()
	}
}

func (s *Session) step() {
	c := s.m.CPU()
	pc := c.PC
	if _, err := s.m.Step(); err != nil {
		s.running = false
		s.message = err.Error()
		var fault *cpu.DecodeFault
		if !errors.As(err, &fault) {
			s.log.Printf("step failed: %s", err)
		}
		return
	}
	if c.PC == pc {
		s.running = false
		s.message = fmt.Sprintf("trapped at $%04X", pc)
		return
	}
	if !s.running {
		s.message = fmt.Sprintf("stepped $%04X", pc)
	}
}

// Left returns the status, flags, zero page and stack panels.
func (s *Session) Left() []string {
	snap := s.m.Snapshot()
	lines := []string{StatusLine(snap), ""}
	lines = append(lines, Flags(snap)...)
	lines = append(lines, "", "ZERO PAGE")
	lines = append(lines, HexRows(0x0000, snap.ZeroPage)...)
	lines = append(lines, "", "STACK")
	lines = append(lines, HexRows(0x0100, snap.Stack)...)
	return lines
}

// Right returns the program and disassembly panels.
func (s *Session) Right() []string {
	snap := s.m.Snapshot()
	lines := []string{"PROGRAM"}
	lines = append(lines, HexRows(snap.ProgramAddr, snap.Program)...)
	lines = append(lines, "", "DISASSEMBLY")
	lines = append(lines, Disassembly(s.m.Disassemble(DisasmLines), snap.PC)...)
	return lines
}

// Render returns the whole screen as text, two columns wide.
func (s *Session) Render() string {
	lines := Columns(s.Left(), s.Right(), 62)
	lines = append(lines, "", s.message, Keys)
	return strings.Join(lines, "\n")
}
