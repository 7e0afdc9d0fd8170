package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/nevisdale/emu6502/internal/monitor"
)

// clear screen and move the cursor home
const clearScreen = "\x1b[2J\x1b[H"

// stepsPerTick is how many instructions run between redraws while running.
const stepsPerTick = 1000

// Console is the terminal front end. Keys are read one byte at a time from
// in; the screen is redrawn to out after every command.
type Console struct {
	session *monitor.Session
	in      io.Reader
	out     io.Writer
	tick    time.Duration
}

func New(session *monitor.Session, in io.Reader, out io.Writer) *Console {
	return &Console{
		session: session,
		in:      in,
		out:     out,
		tick:    50 * time.Millisecond,
	}
}

// RunTerminal puts stdin in raw mode when it is a terminal and runs the
// console on stdin/stdout until quit. The terminal is restored on return.
func RunTerminal(session *monitor.Session) error {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("couldn't set raw mode: %w", err)
		}
		defer term.Restore(fd, oldState)
	}
	return New(session, os.Stdin, os.Stdout).Run()
}

// Run reads keys until quit or end of input. End of input is treated as
// quit so the dump is still written.
func (c *Console) Run() error {
	keys := make(chan rune)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		r := bufio.NewReader(c.in)
		for {
			key, _, err := r.ReadRune()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case keys <- key:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	c.draw()
	for {
		select {
		case key := <-keys:
			quit, err := c.session.Do(monitor.CommandForKey(key))
			if quit {
				return err
			}
			c.draw()
		case err := <-readErr:
			if !errors.Is(err, io.EOF) {
				return fmt.Errorf("couldn't read key: %w", err)
			}
			_, qerr := c.session.Do(monitor.CmdQuit)
			return qerr
		case <-ticker.C:
			if c.session.Running() {
				c.session.Tick(stepsPerTick)
				c.draw()
			}
		}
	}
}

func (c *Console) draw() {
	// raw mode needs explicit carriage returns
	screen := strings.ReplaceAll(c.session.Render(), "\n", "\r\n")
	fmt.Fprint(c.out, clearScreen+screen+"\r\n")
}
