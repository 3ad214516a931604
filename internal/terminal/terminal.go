// Package terminal is the in-app console: an input bar at the bottom of
// the screen plus the recent output lines above it. Toggled with ESC; while
// open it captures all typing.
package terminal

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-sandbox/internal/commands"
	"physics-sandbox/internal/logger"
)

const (
	barHeight        = 40
	prompt           = "> "
	fontSize         = 20
	padding          = 8
	maxLinesOnScreen = 12
	lineHeight       = fontSize + 4
)

// Reused every frame to avoid per-frame color allocations.
var (
	barColor     = rl.NewColor(40, 40, 40, 255)
	barLineColor = rl.NewColor(80, 80, 80, 255)
	historyBg    = rl.NewColor(24, 24, 24, 240)
)

// Terminal is the console input bar. Every submitted line runs through the
// command registry; errors come back as console lines.
type Terminal struct {
	console  *logger.Console
	reg      *commands.Registry
	inputBuf string
	open     bool
}

// New returns a closed terminal writing to console and executing through
// reg. Press ESC to open.
func New(console *logger.Console, reg *commands.Registry) *Terminal {
	return &Terminal{console: console, reg: reg}
}

// IsOpen reports whether the terminal is capturing input (camera input
// should be suspended while it is).
func (t *Terminal) IsOpen() bool {
	return t.open
}

// Update handles ESC (toggle) and, when open, typing, paste, backspace,
// and enter. Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = !t.open
		if t.open {
			rl.EnableCursor()
		} else {
			rl.DisableCursor()
		}
	}
	if !t.open {
		return
	}
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			t.inputBuf += pasted
		}
	} else {
		for {
			c := rl.GetCharPressed()
			if c == 0 {
				break
			}
			t.inputBuf += string(rune(c))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(t.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && t.inputBuf != "" {
		line := t.inputBuf
		t.inputBuf = ""
		t.console.Log(line)
		if err := t.reg.Execute(commands.Split(line)); err != nil {
			t.console.Log(err.Error())
		}
	}
}

// Draw draws the input bar and the recent output lines above it when open.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := int(rl.GetScreenWidth())
	screenH := int(rl.GetScreenHeight())
	barY := screenH - barHeight

	historyHeight := maxLinesOnScreen * lineHeight
	historyY := barY - historyHeight
	if historyY < 0 {
		historyHeight = barY
		historyY = 0
	}
	if historyHeight > 0 {
		rl.DrawRectangle(0, int32(historyY), int32(screenW), int32(historyHeight), historyBg)
	}
	lines := t.console.Lines()
	start := 0
	if len(lines) > maxLinesOnScreen {
		start = len(lines) - maxLinesOnScreen
	}
	for i := start; i < len(lines); i++ {
		y := historyY + (i-start)*lineHeight + padding
		line := lines[i]
		if len(line) > 200 {
			line = line[:197] + "..."
		}
		rl.DrawText(line, int32(padding), int32(y), fontSize, rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), barHeight, barColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, barLineColor)
	rl.DrawText(prompt+t.inputBuf+"|", padding, int32(barY+padding), fontSize, rl.White)
}
