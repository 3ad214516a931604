// Package debug draws runtime overlays: FPS, heap usage, and the live
// entity population. It also acts as the sandbox's diagnostics observer so
// the last lifecycle event is visible on screen.
package debug

import (
	"fmt"
	"runtime"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-sandbox/internal/sim"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// Overlay text is recomputed every updateInterval frames to limit
	// per-frame allocations.
	updateInterval = 30
)

// Overlay holds the overlay state. All overlays are off by default except
// the population readout.
type Overlay struct {
	ShowFPS        bool
	ShowMemAlloc   bool
	ShowPopulation bool

	snapshot func() []sim.Entity

	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastPopText  string
	lastEvent    string
	lastMemStats runtime.MemStats
}

// New returns an overlay reading entity counts from snapshot.
func New(snapshot func() []sim.Entity) *Overlay {
	return &Overlay{ShowPopulation: true, snapshot: snapshot}
}

// SetShowFPS sets whether the FPS counter is drawn.
func (o *Overlay) SetShowFPS(show bool) {
	o.ShowFPS = show
}

// SetShowMemAlloc sets whether the heap-alloc counter is drawn.
func (o *Overlay) SetShowMemAlloc(show bool) {
	o.ShowMemAlloc = show
}

// EntityAdmitted implements sim.Observer.
func (o *Overlay) EntityAdmitted(e sim.Entity) {
	o.lastEvent = "spawned " + e.Category.String()
}

// EntitiesEvicted implements sim.Observer.
func (o *Overlay) EntitiesEvicted(ids []string) {
	o.lastEvent = fmt.Sprintf("evicted %d oldest", len(ids))
}

// ShapeDerived implements sim.Observer.
func (o *Overlay) ShapeDerived(source string, degraded bool, reason string) {
	if degraded {
		o.lastEvent = "shape fallback: " + reason
	} else {
		o.lastEvent = "shape derived for " + source
	}
}

// Draw renders the enabled overlays at the top-right. Call after the 3D
// scene and terminal in the draw loop.
func (o *Overlay) Draw() {
	o.frameCount++
	update := o.frameCount%updateInterval == 0 || o.lastPopText == ""

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)

	if o.ShowFPS {
		if update || o.lastFpsText == "" {
			o.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(o.lastFpsText, screenW, y, rl.Green)
		y += lineHeight
	}
	if o.ShowMemAlloc {
		if update || o.lastMemText == "" {
			runtime.ReadMemStats(&o.lastMemStats)
			o.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(o.lastMemStats.Alloc)/(1024*1024))
		}
		drawRight(o.lastMemText, screenW, y, rl.Green)
		y += lineHeight
	}
	if o.ShowPopulation {
		if update {
			o.lastPopText = o.populationText()
		}
		drawRight(o.lastPopText, screenW, y, rl.SkyBlue)
		y += lineHeight
		if o.lastEvent != "" {
			drawRight(o.lastEvent, screenW, y, rl.LightGray)
		}
	}
}

// populationText formats total and per-category counts from a snapshot.
func (o *Overlay) populationText() string {
	entities := o.snapshot()
	counts := make(map[sim.Category]int)
	for _, e := range entities {
		counts[e.Category]++
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d objects", len(entities))
	for _, c := range sim.Categories() {
		fmt.Fprintf(&b, "  %s:%d", c, counts[c])
	}
	return b.String()
}

func drawRight(text string, screenW, y int32, color rl.Color) {
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, color)
}
