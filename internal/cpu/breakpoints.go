package cpu

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func (c *CPU) AddBreakpoint(addr uint16) {
	c.breakpoints[addr] = struct{}{}
}

func (c *CPU) RemoveBreakpoint(addr uint16) {
	delete(c.breakpoints, addr)
}

func (c *CPU) ClearBreakpoints() {
	maps.Clear(c.breakpoints)
}

func (c *CPU) HasBreakpoint(addr uint16) bool {
	_, ok := c.breakpoints[addr]
	return ok
}

// Breakpoints returns the breakpoint addresses in ascending order.
func (c *CPU) Breakpoints() []uint16 {
	addrs := maps.Keys(c.breakpoints)
	slices.Sort(addrs)
	return addrs
}
