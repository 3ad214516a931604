// Package scene owns the 3D camera and the editor grid the sandbox world
// sits on.
package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 40
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// Scene holds the free camera and draws the 3D frame. Update runs camera
// input; Draw renders between BeginMode3D and EndMode3D with the given body
// of 3D drawing in between.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool
	cursorDone  bool
}

// New returns a scene with a perspective camera above and outside the spawn
// volume, looking at the origin. Grid is visible by default.
func New() *Scene {
	s := &Scene{GridVisible: true}
	s.Camera.Position = rl.NewVector3(14, 10, 14)
	s.Camera.Target = rl.NewVector3(0, 2, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// SetGridVisible sets whether the floor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Update runs once per frame: captures the cursor on the first frame and
// applies raylib free-camera input (mouse + keyboard). Skip while the
// terminal is open so typing does not move the camera.
func (s *Scene) Update() {
	if !s.cursorDone {
		rl.DisableCursor()
		s.cursorDone = true
	}
	rl.UpdateCamera(&s.Camera, rl.CameraFree)
}

// Draw renders one 3D frame: grid first, then the caller's 3D content
// (entities) via body.
func (s *Scene) Draw(body func()) {
	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawFloorGrid()
	}
	if body != nil {
		body()
	}
	rl.EndMode3D()
}

// drawFloorGrid draws the XZ-plane grid with major/minor lines and colored
// axis lines through the origin (X red, Y green, Z blue).
func drawFloorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = float32(-gridExtent), 0, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}
