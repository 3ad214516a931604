// Package graphics owns the window and the main loop.
package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	windowTitle    = "physics sandbox"
	windowedWidth  = 1440
	windowedHeight = 900
	targetFPS      = 60
)

// Run opens the window and drives the frame loop: update (input +
// simulation step with the frame delta) then draw, until the window is
// closed. ESC is reserved for the terminal toggle, not for quitting.
func Run(fullscreen bool, update func(dt float32), draw func()) {
	if fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode)
		rl.InitWindow(int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0)), windowTitle)
	} else {
		rl.InitWindow(windowedWidth, windowedHeight, windowTitle)
	}
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(targetFPS)

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(18, 18, 22, 255))
		draw()
		rl.EndDrawing()
	}
}
