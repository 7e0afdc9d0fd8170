package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/nevisdale/emu6502/internal/monitor"
)

// Enter/N - one step
// Space - run/pause
// R - reset
// D - dump memory
// Q - dump and quit

const (
	// instructions per frame while running
	stepsPerUpdate = 1000

	lineHeight = 16
	charWidth  = 6
	margin     = 8

	leftWidth  = 62 * charWidth
	rightWidth = 52 * charWidth

	screenWidth  = leftWidth + rightWidth + 3*margin
	screenHeight = 44*lineHeight + 2*margin
)

var (
	panelColor  = color.RGBA{50, 50, 50, 255}
	runColor    = color.RGBA{40, 120, 40, 255}
	pausedColor = color.RGBA{120, 40, 40, 255}
)

var keyCommands = []struct {
	key ebiten.Key
	cmd monitor.Command
}{
	{ebiten.KeyEnter, monitor.CmdStep},
	{ebiten.KeyN, monitor.CmdStep},
	{ebiten.KeySpace, monitor.CmdRun},
	{ebiten.KeyR, monitor.CmdReset},
	{ebiten.KeyD, monitor.CmdDump},
	{ebiten.KeyQ, monitor.CmdQuit},
}

type UI struct {
	session *monitor.Session
	err     error
}

func New(session *monitor.Session) *UI {
	return &UI{session: session}
}

func (ui *UI) Update() error {
	for _, kc := range keyCommands {
		if !inpututil.IsKeyJustPressed(kc.key) {
			continue
		}
		quit, err := ui.session.Do(kc.cmd)
		if quit {
			ui.err = err
			return ebiten.Termination
		}
	}

	ui.session.Tick(stepsPerUpdate)
	return nil
}

func (ui *UI) Draw(screen *ebiten.Image) {
	left := ui.session.Left()
	right := ui.session.Right()

	vector.DrawFilledRect(screen, margin/2, margin/2, leftWidth+margin, float32(len(left)*lineHeight+margin), panelColor, false)
	vector.DrawFilledRect(screen, leftWidth+2*margin-margin/2, margin/2, rightWidth+margin, float32(len(right)*lineHeight+margin), panelColor, false)

	ebitenutil.DebugPrintAt(screen, strings.Join(left, "\n"), margin, margin)
	ebitenutil.DebugPrintAt(screen, strings.Join(right, "\n"), leftWidth+2*margin, margin)

	statusY := screenHeight - 2*lineHeight - margin
	indicator := pausedColor
	if ui.session.Running() {
		indicator = runColor
	}
	vector.DrawFilledRect(screen, margin, float32(statusY+4), 8, 8, indicator, false)
	ebitenutil.DebugPrintAt(screen, ui.session.Message()+"\n"+monitor.Keys, margin+12, statusY)
}

func (ui *UI) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

// Err returns the error from the dump written on quit, if any.
func (ui *UI) Err() error {
	return ui.err
}

func RunUI(ui *UI) error {
	ebiten.SetWindowTitle("emu6502")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(ui); err != nil {
		return err
	}
	return ui.err
}
