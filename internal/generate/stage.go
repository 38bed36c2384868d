package generate

import (
	"mapforge/internal/gamemap"
)

// StageState tracks one stage through its lifecycle.
type StageState uint8

const (
	StageUninitialized StageState = iota
	StageInitialized
	StageStepping
	StageComplete
)

func (s StageState) String() string {
	switch s {
	case StageUninitialized:
		return "uninitialized"
	case StageInitialized:
		return "initialized"
	case StageStepping:
		return "stepping"
	}
	return "complete"
}

// Stage runs one generator for one ProcessConfig. It completes when the
// generator returns false or the configured step budget is spent, whichever
// comes first.
type Stage struct {
	gen          Generator
	cfg          ProcessConfig
	state        StageState
	step         int
	stallRetries int
	stalls       int // consecutive stalls
	totalStalls  int
	err          error
}

// NewStage prepares a stage. Nothing touches the map until Initialize.
func NewStage(gen Generator, cfg ProcessConfig) *Stage {
	return &Stage{gen: gen, cfg: cfg}
}

// SetStallRetries sets how many consecutive no-progress steps of a Stalling
// generator are retried before the stage is considered complete. Retried
// steps do not consume the step budget.
func (s *Stage) SetStallRetries(n int) {
	s.stallRetries = n
}

// Initialize runs the generator's one-time setup unless the config asks the
// stage to layer on top of the current map.
func (s *Stage) Initialize(env *Env, m *gamemap.GameMap) {
	if s.state != StageUninitialized {
		return
	}
	if s.cfg.Initialize {
		s.gen.InitializeMap(env, m, s.cfg)
	}
	s.state = StageInitialized
}

// Step advances the stage by one generator step and reports whether the
// stage wants more steps.
func (s *Stage) Step(env *Env, m *gamemap.GameMap) bool {
	switch s.state {
	case StageComplete:
		return false
	case StageUninitialized:
		s.Initialize(env, m)
	}
	s.state = StageStepping

	more, err := s.gen.GenerateStep(env, m, s.step, s.cfg)
	if err != nil {
		s.err = err
		s.state = StageComplete
		return false
	}
	if !more && s.canStall() && s.stalls < s.stallRetries {
		s.stalls++
		s.totalStalls++
		return true
	}
	s.stalls = 0
	s.step++
	if !more || (s.cfg.Steps > 0 && s.step >= s.cfg.Steps) {
		s.state = StageComplete
		return false
	}
	return true
}

func (s *Stage) canStall() bool {
	st, ok := s.gen.(Stalling)
	return ok && st.CanStall()
}

// Run steps the stage until it completes and returns the generator error,
// if any.
func (s *Stage) Run(env *Env, m *gamemap.GameMap) error {
	s.Initialize(env, m)
	for s.Step(env, m) {
	}
	return s.err
}

// State returns the current lifecycle state.
func (s *Stage) State() StageState { return s.state }

// Done reports whether the stage is complete.
func (s *Stage) Done() bool { return s.state == StageComplete }

// Steps returns the number of steps taken, not counting retried stalls.
func (s *Stage) Steps() int { return s.step }

// Stalls returns the number of retried no-progress steps.
func (s *Stage) Stalls() int { return s.totalStalls }

// Err returns the error that ended the stage, if any.
func (s *Stage) Err() error { return s.err }

// Config returns the stage config.
func (s *Stage) Config() ProcessConfig { return s.cfg }

// Generator returns the generator the stage drives.
func (s *Stage) Generator() Generator { return s.gen }
