package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"

	"physics-sandbox/internal/collider"
	"physics-sandbox/internal/commands"
	"physics-sandbox/internal/debug"
	"physics-sandbox/internal/engineconfig"
	"physics-sandbox/internal/graphics"
	"physics-sandbox/internal/logger"
	"physics-sandbox/internal/render"
	"physics-sandbox/internal/sandbox"
	"physics-sandbox/internal/scene"
	"physics-sandbox/internal/sim"
	"physics-sandbox/internal/terminal"
)

func main() {
	cfg, _ := engineconfig.Load()
	zlog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer zlog.Sync()

	console := logger.NewConsole()

	// The overlay doubles as the sandbox's diagnostics observer; it reads
	// population counts straight from the store snapshot.
	var sb *sandbox.Sandbox
	overlay := debug.New(func() []sim.Entity {
		return sb.Store().Snapshot()
	})
	overlay.SetShowFPS(cfg.ShowFPS)
	overlay.SetShowMemAlloc(cfg.ShowMemAlloc)

	sb = sandbox.New(sandbox.Options{
		Limits:      cfg.Limits,
		SpawnVolume: cfg.SpawnVolume,
		Observer:    overlay,
		Log:         zlog,
	})
	defer sb.Dispose()

	scn := scene.New()
	scn.SetGridVisible(cfg.GridVisible)
	renderer := render.New(sb.Cache())
	defer renderer.Dispose()

	reg := commands.NewRegistry()
	registerCommands(reg, console, sb, scn, overlay, &cfg)
	term := terminal.New(console, reg)
	console.Log("physics sandbox — press ESC for this console, \"help\" for commands")

	update := func(dt float32) {
		term.Update()
		if !term.IsOpen() {
			scn.Update()
		}
		sb.Step(dt)
	}
	draw := func() {
		scn.Draw(func() {
			renderer.Draw(sb.Store().Snapshot())
		})
		term.Draw()
		overlay.Draw()
	}
	graphics.Run(cfg.Fullscreen, update, draw)
}

// registerCommands wires the console command set to the sandbox core.
func registerCommands(reg *commands.Registry, console *logger.Console, sb *sandbox.Sandbox, scn *scene.Scene, overlay *debug.Overlay, cfg *engineconfig.Config) {
	reg.Register("help", "list commands", nil, func() error {
		for _, line := range reg.Usage() {
			console.Log(line)
		}
		return nil
	})

	sphereFS := flag.NewFlagSet("sphere", flag.ContinueOnError)
	reg.Register("sphere", "spawn a sphere: sphere [radius]", sphereFS, func() error {
		radius := parseFloat(sphereFS.Args(), 0, 0.5)
		e, err := sb.SpawnSphere(radius)
		if err != nil {
			return err
		}
		console.Log(fmt.Sprintf("sphere %s (r=%.2f)", shortID(e.ID), e.Sphere.Radius))
		return nil
	})

	boxFS := flag.NewFlagSet("box", flag.ContinueOnError)
	reg.Register("box", "spawn a box: box [w h d]", boxFS, func() error {
		args := boxFS.Args()
		w := parseFloat(args, 0, 1)
		h := parseFloat(args, 1, 1)
		d := parseFloat(args, 2, 1)
		e, err := sb.SpawnBox(w, h, d)
		if err != nil {
			return err
		}
		console.Log(fmt.Sprintf("box %s (%.2f x %.2f x %.2f)", shortID(e.ID), e.Box.Width, e.Box.Height, e.Box.Depth))
		return nil
	})

	modelFS := flag.NewFlagSet("model", flag.ContinueOnError)
	modelHull := modelFS.Bool("hull", false, "derive a convex point-cloud shape instead of a box")
	modelScale := modelFS.Float64("scale", 1, "uniform scale for the model")
	reg.Register("model", "spawn a model: model [--hull] [--scale s] <path>", modelFS, func() error {
		defer func() {
			*modelHull = false
			*modelScale = 1
		}()
		if modelFS.NArg() < 1 {
			return fmt.Errorf("model: path required")
		}
		kind := collider.KindBox
		if *modelHull {
			kind = collider.KindConvexApprox
		}
		e, err := sb.SpawnModel(modelFS.Arg(0), kind, float32(*modelScale))
		if err != nil {
			return err
		}
		console.Log(fmt.Sprintf("model %s (%s, %s shape)", shortID(e.ID), e.Model.Source, e.Model.Collision))
		return nil
	})

	reg.Register("reset", "remove all objects and dispose cached resources", nil, func() error {
		sb.Reset()
		console.Log("scene cleared")
		return nil
	})

	reg.Register("limits", "show population ceilings", nil, func() error {
		l := sb.Limits()
		console.Log(fmt.Sprintf("global %d (cleanup at %d) — sphere %d, box %d, model %d",
			l.GlobalMax, l.CleanupThreshold, l.MaxSpheres, l.MaxBoxes, l.MaxModels))
		return nil
	})

	reg.Register("stats", "show population and resource-cache stats", nil, func() error {
		snap := sb.Store().Snapshot()
		console.Log(fmt.Sprintf("%d objects live", len(snap)))
		stats := sb.Cache().Stats()
		kinds := make([]string, 0, len(stats))
		for kind := range stats {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			console.Log(fmt.Sprintf("cache %s: %d", kind, stats[kind]))
		}
		if len(kinds) == 0 {
			console.Log("cache empty")
		}
		return nil
	})

	gridFS := flag.NewFlagSet("grid", flag.ContinueOnError)
	gridShow := gridFS.Bool("show", false, "show the floor grid")
	gridHide := gridFS.Bool("hide", false, "hide the floor grid")
	reg.Register("grid", "toggle the floor grid: grid --show|--hide", gridFS, func() error {
		return toggle(gridShow, gridHide, func(v bool) { scn.SetGridVisible(v); cfg.GridVisible = v })
	})

	fpsFS := flag.NewFlagSet("fps", flag.ContinueOnError)
	fpsShow := fpsFS.Bool("show", false, "show the FPS counter")
	fpsHide := fpsFS.Bool("hide", false, "hide the FPS counter")
	reg.Register("fps", "toggle the FPS counter: fps --show|--hide", fpsFS, func() error {
		return toggle(fpsShow, fpsHide, func(v bool) { overlay.SetShowFPS(v); cfg.ShowFPS = v })
	})

	memFS := flag.NewFlagSet("memalloc", flag.ContinueOnError)
	memShow := memFS.Bool("show", false, "show heap usage")
	memHide := memFS.Bool("hide", false, "hide heap usage")
	reg.Register("memalloc", "toggle heap usage: memalloc --show|--hide", memFS, func() error {
		return toggle(memShow, memHide, func(v bool) { overlay.SetShowMemAlloc(v); cfg.ShowMemAlloc = v })
	})

	reg.Register("save", "persist current preferences to "+engineconfig.ConfigPath, nil, func() error {
		if err := engineconfig.Save(*cfg); err != nil {
			return err
		}
		console.Log("preferences saved")
		return nil
	})
}

// toggle applies a --show/--hide flag pair and resets both for the next
// invocation.
func toggle(show, hide *bool, apply func(bool)) error {
	defer func() {
		*show = false
		*hide = false
	}()
	switch {
	case *show && *hide:
		return fmt.Errorf("pick one of --show or --hide")
	case *show:
		apply(true)
	case *hide:
		apply(false)
	default:
		return fmt.Errorf("need --show or --hide")
	}
	return nil
}

// parseFloat reads args[i] as a float, falling back to def when missing or
// malformed.
func parseFloat(args []string, i int, def float32) float32 {
	if i >= len(args) {
		return def
	}
	v, err := strconv.ParseFloat(args[i], 32)
	if err != nil {
		return def
	}
	return float32(v)
}

// shortID trims a uuid for console display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
