// Package viewer shows a map on a terminal screen, optionally animating its
// generation one step per frame.
package viewer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"mapforge/internal/blueprint"
	"mapforge/internal/ecs"
	"mapforge/internal/factory"
	"mapforge/internal/pipeline"
	"mapforge/internal/render"

	"github.com/gdamore/tcell/v2"
)

// DefaultDelay is the wall-clock time between animation steps.
const DefaultDelay = 40 * time.Millisecond

// panStep is how many cells one pan key moves the view.
const panStep = 4

// Options configure a Viewer. Runner supplies the registry, policy, data
// source and logger; its Registrar is replaced for every run.
type Options struct {
	Blueprint blueprint.Blueprint
	Seed      int64
	Animate   bool
	Delay     time.Duration
	Theme     render.Theme
	Runner    pipeline.Runner
	Message   string // shown until the first restart
}

// Viewer owns one screen and the map currently shown on it.
type Viewer struct {
	screen   tcell.Screen
	opts     Options
	renderer *render.Renderer
	rng      *rand.Rand // picks seeds for ActionReseed
	seed     int64
	world    *ecs.World
	pipe     *pipeline.Pipeline
	paused   bool
	message  string
}

// New creates a Viewer on an initialized screen.
func New(screen tcell.Screen, opts Options) *Viewer {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Theme.CellWidth == 0 {
		opts.Theme = render.EmojiTheme
	}
	return &Viewer{
		screen:   screen,
		opts:     opts,
		renderer: render.NewRenderer(screen, opts.Theme),
		rng:      rand.New(rand.NewSource(opts.Seed)),
		seed:     opts.Seed,
		message:  opts.Message,
	}
}

// start begins a new map with the given seed, discarding the current one.
func (v *Viewer) start(seed int64) error {
	world := ecs.NewWorld()
	runner := v.opts.Runner
	runner.Registrar = factory.NewRegistrar(world)
	p, err := runner.Start(v.opts.Blueprint, seed)
	if err != nil {
		return err
	}
	v.seed = seed
	v.world = world
	v.pipe = p
	if !v.opts.Animate {
		v.finish()
	}
	return nil
}

func (v *Viewer) finish() {
	for v.pipe.Advance() {
	}
}

// Pipeline returns the map under construction.
func (v *Viewer) Pipeline() *pipeline.Pipeline { return v.pipe }

// World returns the entities of the finished map.
func (v *Viewer) World() *ecs.World { return v.world }

// Run shows the map until the user quits, the screen closes or ctx ends.
// An error is returned only when the blueprint cannot be started.
func (v *Viewer) Run(ctx context.Context) error {
	if err := v.start(v.seed); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(v.opts.Delay)
	defer ticker.Stop()

	v.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil // screen closed
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				v.screen.Sync()
				v.renderer.Resize()
			case *tcell.EventKey:
				if !v.handle(keyToAction(ev)) {
					return nil
				}
			}
			v.draw()
		case <-ticker.C:
			if v.paused || v.pipe.Done() {
				continue
			}
			v.pipe.Advance()
			v.draw()
		}
	}
}

// handle applies one action. It returns false when the viewer should exit.
func (v *Viewer) handle(a Action) bool {
	cam := v.renderer.Camera()
	switch a {
	case ActionQuit:
		return false
	case ActionPanN:
		cam.Pan(0, -panStep)
	case ActionPanS:
		cam.Pan(0, panStep)
	case ActionPanE:
		cam.Pan(panStep, 0)
	case ActionPanW:
		cam.Pan(-panStep, 0)
	case ActionPause:
		v.paused = !v.paused
	case ActionStep:
		v.paused = true
		v.pipe.Advance()
	case ActionFinish:
		v.finish()
	case ActionRestart:
		v.restart(v.seed)
	case ActionReseed:
		v.restart(v.rng.Int63())
	case ActionTheme:
		t := render.ASCIITheme
		if v.renderer.Theme().Name == t.Name {
			t = render.EmojiTheme
		}
		v.renderer.SetTheme(t)
		v.message = "theme " + t.Name
	}
	return true
}

func (v *Viewer) restart(seed int64) {
	if err := v.start(seed); err != nil {
		v.message = err.Error()
		return
	}
	v.message = fmt.Sprintf("restarted with seed %d", v.pipe.Report().Seed)
}

func (v *Viewer) draw() {
	v.renderer.DrawFrame(v.pipe.Map(), v.world)
	v.renderer.DrawHUD(render.Status{
		Progress: v.pipe.Progress(),
		Report:   v.pipe.Report(),
		Paused:   v.paused,
		Err:      v.pipe.Err(),
		Message:  v.message,
		Help:     Help,
	})
}
