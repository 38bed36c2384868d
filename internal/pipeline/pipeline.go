// Package pipeline drives a blueprint through the generation stages and the
// final pass, either all at once or one step at a time for animation.
package pipeline

import (
	"fmt"
	"log/slog"

	"mapforge/internal/blueprint"
	"mapforge/internal/factory"
	"mapforge/internal/gamemap"
	"mapforge/internal/generate"
)

// Policy holds the driver decisions the generators leave open.
type Policy struct {
	// StallRetries is how many consecutive no-progress steps of a stalling
	// generator are retried before its stage is considered complete.
	StallRetries int
}

// DefaultPolicy retries a stalled step three times.
var DefaultPolicy = Policy{StallRetries: 3}

// Runner builds maps from blueprints. The zero value is usable: it runs
// the built-in generators with DefaultPolicy and no data maps.
type Runner struct {
	Registry  *generate.Registry
	Policy    *Policy
	Data      generate.DataSource
	Registrar generate.FeatureRegistrar
	Log       *slog.Logger
}

func (r *Runner) logger() *slog.Logger {
	if r.Log == nil {
		return slog.Default()
	}
	return r.Log
}

func (r *Runner) registry() *generate.Registry {
	if r.Registry == nil {
		r.Registry = generate.NewDefaultRegistry()
	}
	return r.Registry
}

func (r *Runner) policy() Policy {
	if r.Policy == nil {
		return DefaultPolicy
	}
	return *r.Policy
}

// Start validates bp, sizes the map and prepares every stage. Nothing runs
// until Advance is called. seed is used unless the blueprint pins one.
func (r *Runner) Start(bp blueprint.Blueprint, seed int64) (*Pipeline, error) {
	if err := bp.Validate(); err != nil {
		return nil, err
	}
	if bp.Seed != nil {
		seed = *bp.Seed
	}
	reg := r.registry()
	log := r.logger().With("map", bp.Name, "seed", seed)

	env := generate.NewEnv(seed)
	env.Data = r.Data
	env.Doors = factory.NewDoors(env.Rand)
	env.Log = log

	cfgs, err := bp.Configs(reg, env.Rand)
	if err != nil {
		return nil, err
	}
	w, h, err := bp.Size(reg, env)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{
		env:       env,
		m:         gamemap.New(w, h),
		registrar: r.Registrar,
		log:       log,
		report:    Report{Name: bp.Name, Seed: seed, Width: w, Height: h},
	}
	pol := r.policy()
	for i, cfg := range cfgs {
		gen, err := reg.CreateByName(cfg.Generator)
		if err != nil {
			return nil, fmt.Errorf("%q stage %d: %w", bp.Name, i, err)
		}
		st := generate.NewStage(gen, cfg)
		st.SetStallRetries(pol.StallRetries)
		p.stages = append(p.stages, st)
	}
	log.Info("generation started", "width", w, "height", h, "stages", len(p.stages))
	return p, nil
}

// Run builds the whole map and finalizes it.
func (r *Runner) Run(bp blueprint.Blueprint, seed int64) (*gamemap.GameMap, Report, error) {
	p, err := r.Start(bp, seed)
	if err != nil {
		return nil, Report{}, err
	}
	for p.Advance() {
	}
	return p.Map(), p.Report(), p.Err()
}

// Pipeline is one map under construction.
type Pipeline struct {
	env       *generate.Env
	m         *gamemap.GameMap
	stages    []*generate.Stage
	cur       int
	rooms     int // rooms recorded when the current stage started
	registrar generate.FeatureRegistrar
	log       *slog.Logger
	done      bool
	err       error
	report    Report
}

// Advance performs one generator step. When the last stage completes it
// runs the final pass. It reports whether more work remains.
func (p *Pipeline) Advance() bool {
	if p.done {
		return false
	}
	if p.cur >= len(p.stages) {
		p.finish()
		return false
	}
	st := p.stages[p.cur]
	if st.State() == generate.StageUninitialized {
		p.rooms = len(p.m.Rooms)
		p.log.Debug("stage started", "stage", p.cur, "generator", st.Generator().Name(), "budget", st.Config().Steps)
		st.Initialize(p.env, p.m)
	}
	if st.Step(p.env, p.m) {
		return true
	}
	p.endStage(st)
	if p.err != nil {
		p.done = true
		return false
	}
	p.cur++
	return true
}

func (p *Pipeline) endStage(st *generate.Stage) {
	sr := StageReport{
		Generator: st.Generator().Name(),
		Steps:     st.Steps(),
		Stalls:    st.Stalls(),
		Rooms:     max(len(p.m.Rooms)-p.rooms, 0),
	}
	if !st.Config().Initialize {
		sr.Layered = true
	}
	p.report.Stages = append(p.report.Stages, sr)
	if err := st.Err(); err != nil {
		p.err = fmt.Errorf("%q stage %d (%s): %w", p.report.Name, p.cur, sr.Generator, err)
		p.log.Error("stage failed", "stage", p.cur, "generator", sr.Generator, "err", err)
		return
	}
	p.log.Info("stage complete", "stage", p.cur, "generator", sr.Generator,
		"steps", sr.Steps, "stalls", sr.Stalls, "rooms", sr.Rooms)
}

func (p *Pipeline) finish() {
	p.done = true
	p.report.Finalize = generate.FinalizeMap(p.m, p.registrar)
	p.report.summarize(p.m)
	p.log.Info("map finalized",
		"rooms", len(p.m.Rooms), "doors", p.report.Doors,
		"hidden", p.report.Finalize.Hidden, "pruned", p.report.Finalize.Pruned,
		"regions", p.report.Regions, "largest", p.report.Largest)
}

// Map returns the map being built. It is safe to draw between calls to
// Advance.
func (p *Pipeline) Map() *gamemap.GameMap { return p.m }

// Done reports whether the map is finished or failed.
func (p *Pipeline) Done() bool { return p.done }

// Err returns the stage error that stopped the pipeline, if any.
func (p *Pipeline) Err() error { return p.err }

// Report returns what has been recorded so far.
func (p *Pipeline) Report() Report { return p.report }

// Progress describes the current position for display.
type Progress struct {
	Stage, Stages int
	Generator     string
	Step          int
	Budget        int // 0 when the generator decides
	Finalized     bool
}

// Progress returns the stage and step currently running.
func (p *Pipeline) Progress() Progress {
	pr := Progress{Stages: len(p.stages), Finalized: p.done && p.err == nil}
	if p.cur < len(p.stages) {
		st := p.stages[p.cur]
		pr.Stage = p.cur
		pr.Generator = st.Generator().Name()
		pr.Step = st.Steps()
		pr.Budget = st.Config().Steps
	} else {
		pr.Stage = len(p.stages)
	}
	return pr
}
