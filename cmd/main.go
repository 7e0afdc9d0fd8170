package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/pkg/profile"

	"github.com/nevisdale/emu6502/internal/console"
	"github.com/nevisdale/emu6502/internal/cpu"
	"github.com/nevisdale/emu6502/internal/machine"
	"github.com/nevisdale/emu6502/internal/mem"
	"github.com/nevisdale/emu6502/internal/monitor"
	"github.com/nevisdale/emu6502/internal/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalln(err)
	}
}

// run returns instead of exiting so deferred profile writes always happen.
func run(args []string) error {
	flags := flag.NewFlagSet("emu6502", flag.ContinueOnError)
	binPath := flags.String("bin", "", "program image to load; the built-in example is used when empty or unreadable")
	originStr := flags.String("origin", fmt.Sprintf("0x%04X", mem.DefaultOrigin), "load address of the image")
	vectors := flags.Bool("vectors", false, "allow the image to cover the vector region $FFFA-$FFFF")
	dumpPath := flags.String("dump", "dump.bin", "memory dump file written on quit")
	mode := flags.String("ui", "window", "front end: window, term or headless")
	profileMode := flags.String("profile", "", "write a cpu or mem profile to -profile-dir")
	timeout := flags.Duration("timeout", 10*time.Second, "headless run limit")
	profileDir := flags.String("profile-dir", ".", "directory the profile is written to")
	if err := flags.Parse(args); err != nil {
		return err
	}

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profileDir), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(*profileDir), profile.Quiet).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", *profileMode)
	}

	origin, err := strconv.ParseUint(*originStr, 0, 16)
	if err != nil {
		return fmt.Errorf("couldn't parse origin %q: %w", *originStr, err)
	}

	m := machine.New()
	if err := load(m, *binPath, uint16(origin), *vectors); err != nil {
		return fmt.Errorf("couldn't load the program: %w", err)
	}

	session := monitor.NewSession(m, *dumpPath, log.Default())
	switch *mode {
	case "window":
		return ui.RunUI(ui.New(session))
	case "term":
		return console.RunTerminal(session)
	case "headless":
		return runHeadless(m, *dumpPath, *timeout)
	}
	return fmt.Errorf("unknown ui %q", *mode)
}

func load(m *machine.Machine, path string, origin uint16, vectors bool) error {
	if path == "" {
		return m.LoadExample()
	}

	var opts []mem.LoadOption
	if vectors {
		opts = append(opts, mem.AllowVectors())
	}
	err := m.LoadFile(path, origin, opts...)
	var ioErr *machine.IOFailure
	if errors.As(err, &ioErr) {
		log.Printf("%s, loading the built-in example\n", err)
		return m.LoadExample()
	}
	return err
}

func runHeadless(m *machine.Machine, dumpPath string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := m.Run(ctx)
	var fault *cpu.DecodeFault
	switch {
	case err == nil:
	case errors.As(err, &fault):
		log.Printf("halted: %s\n", err)
	case errors.Is(err, context.DeadlineExceeded):
		log.Printf("stopped after %s\n", timeout)
	default:
		return err
	}

	snap := m.Snapshot()
	fmt.Println(monitor.StatusLine(snap))
	for _, l := range monitor.Flags(snap) {
		fmt.Println(l)
	}
	return m.DumpToFile(dumpPath)
}
