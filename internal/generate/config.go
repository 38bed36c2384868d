package generate

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

var (
	// ErrBadRange is returned for step counts and parameters that are
	// neither "n" nor "min~max".
	ErrBadRange = errors.New("malformed range")
	// ErrUnknownParam is returned for a parameter a generator does not use.
	ErrUnknownParam = errors.New("unknown parameter")
	// ErrMissingSource is returned when a data-driven stage names no map.
	ErrMissingSource = errors.New("missing data source")
)

// MaxRangeValue bounds every parsed step count and parameter.
const MaxRangeValue = 1 << 20

// Range is an inclusive integer interval.
type Range struct {
	Min, Max int
}

// Fixed returns the range holding only n.
func Fixed(n int) Range { return Range{n, n} }

// ParseRange parses "n" or "min~max". Both bounds must lie in
// [0, MaxRangeValue] and min may not exceed max.
func ParseRange(s string) (Range, error) {
	lo, hi, isRange := strings.Cut(strings.TrimSpace(s), "~")
	minV, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return Range{}, fmt.Errorf("%q: %w", s, ErrBadRange)
	}
	maxV := minV
	if isRange {
		if maxV, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
			return Range{}, fmt.Errorf("%q: %w", s, ErrBadRange)
		}
	}
	if minV < 0 || maxV < minV || maxV > MaxRangeValue {
		return Range{}, fmt.Errorf("%q: %w", s, ErrBadRange)
	}
	return Range{minV, maxV}, nil
}

// Roll returns a uniformly chosen value in the range.
func (r Range) Roll(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	span := r.Max - r.Min
	switch {
	case span < 0:
		// Max-Min overflowed.
		return r.Min
	case span < math.MaxInt32:
		return r.Min + rng.Intn(span+1)
	case span < math.MaxInt:
		return r.Min + int(rng.Int63n(int64(span)+1))
	default:
		return r.Min + int(rng.Int63())
	}
}

func (r Range) String() string {
	if r.Min == r.Max {
		return strconv.Itoa(r.Min)
	}
	return fmt.Sprintf("%d~%d", r.Min, r.Max)
}

// RawConfig is one unparsed pipeline stage as read from a blueprint.
type RawConfig struct {
	Generator  string
	Steps      string // "", "n" or "min~max"
	Source     string
	Initialize *bool // nil means initialize
	Params     map[string]string
}

// ProcessConfig describes one pipeline stage: which algorithm to run and for
// how many steps. Steps is resolved once when the config is built; zero
// means the algorithm decides when it is done.
type ProcessConfig struct {
	Generator  string
	Steps      int
	Source     string
	Initialize bool
	Ranges     map[string]Range
}

// Range returns the named parameter, or def when the stage does not set it.
func (c ProcessConfig) Range(key string, def Range) Range {
	if r, ok := c.Ranges[key]; ok {
		return r
	}
	return def
}

// ParseConfig is the default config parser: it resolves the step count and
// accepts no parameters.
func ParseConfig(raw RawConfig, rng *rand.Rand) (ProcessConfig, error) {
	return parseConfig(raw, rng, nil)
}

// parseConfig resolves the step count and every parameter listed in
// allowed, which maps parameter names to their smallest legal value. A nil
// allowed set rejects all parameters.
func parseConfig(raw RawConfig, rng *rand.Rand, allowed map[string]int) (ProcessConfig, error) {
	cfg := ProcessConfig{
		Generator:  raw.Generator,
		Source:     raw.Source,
		Initialize: raw.Initialize == nil || *raw.Initialize,
	}
	if strings.TrimSpace(raw.Steps) != "" {
		steps, err := ParseRange(raw.Steps)
		if err != nil {
			return ProcessConfig{}, fmt.Errorf("%s steps: %w", raw.Generator, err)
		}
		cfg.Steps = steps.Roll(rng)
	}
	for key, val := range raw.Params {
		floor, ok := allowed[key]
		if !ok {
			return ProcessConfig{}, fmt.Errorf("%s param %q: %w", raw.Generator, key, ErrUnknownParam)
		}
		r, err := ParseRange(val)
		if err != nil {
			return ProcessConfig{}, fmt.Errorf("%s param %q: %w", raw.Generator, key, err)
		}
		if r.Min < floor {
			return ProcessConfig{}, fmt.Errorf("%s param %q below %d: %w", raw.Generator, key, floor, ErrBadRange)
		}
		if cfg.Ranges == nil {
			cfg.Ranges = make(map[string]Range)
		}
		cfg.Ranges[key] = r
	}
	return cfg, nil
}
