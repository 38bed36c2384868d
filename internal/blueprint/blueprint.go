// Package blueprint loads map blueprints: a named map size plus the ordered
// generation stages that build it. Blueprints are JSON documents; stage step
// counts and parameters accept either a number or a "min~max" string.
package blueprint

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"

	"mapforge/internal/generate"
)

var (
	// ErrNoStages is returned for a blueprint without stages.
	ErrNoStages = errors.New("blueprint has no stages")
	// ErrBadSize is returned for negative or half-specified map dimensions.
	ErrBadSize = errors.New("invalid map size")
)

// Value is a step count or parameter: a JSON number or a string such as
// "4" or "3~7".
type Value string

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("want number or range string, got %s", data)
	}
	*v = Value(n.String())
	return nil
}

// Stage is one generation step of a blueprint.
type Stage struct {
	Generator  string           `json:"generator"`
	Steps      Value            `json:"steps,omitempty"`
	Source     string           `json:"source,omitempty"`
	Initialize *bool            `json:"initialize,omitempty"`
	Params     map[string]Value `json:"params,omitempty"`
}

// Blueprint describes how to build one map. A zero Width and Height lets a
// data-driven stage choose the size.
type Blueprint struct {
	Name   string  `json:"name"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Seed   *int64  `json:"seed,omitempty"`
	Stages []Stage `json:"stages"`
}

// Load decodes a blueprint from r and checks its shape. Stage names and
// ranges are checked by Configs.
func Load(r io.Reader) (Blueprint, error) {
	var bp Blueprint
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&bp); err != nil {
		return Blueprint{}, fmt.Errorf("decode blueprint: %w", err)
	}
	if err := bp.Validate(); err != nil {
		return Blueprint{}, err
	}
	return bp, nil
}

// LoadFile reads a blueprint from a JSON file.
func LoadFile(path string) (Blueprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return Blueprint{}, fmt.Errorf("open blueprint: %w", err)
	}
	defer f.Close()
	bp, err := Load(f)
	if err != nil {
		return Blueprint{}, fmt.Errorf("%s: %w", path, err)
	}
	if bp.Name == "" {
		bp.Name = path
	}
	return bp, nil
}

// Validate checks the blueprint's size and stage list.
func (b Blueprint) Validate() error {
	if len(b.Stages) == 0 {
		return fmt.Errorf("%q: %w", b.Name, ErrNoStages)
	}
	if b.Width < 0 || b.Height < 0 || (b.Width == 0) != (b.Height == 0) {
		return fmt.Errorf("%q %dx%d: %w", b.Name, b.Width, b.Height, ErrBadSize)
	}
	for i, st := range b.Stages {
		if st.Generator == "" {
			return fmt.Errorf("%q stage %d: %w", b.Name, i, generate.ErrUnknownGenerator)
		}
	}
	return nil
}

// Raw returns the stages as unparsed configs. A stage that does not say
// whether to initialize the map does so only when it is first; later stages
// layer on top of what came before.
func (b Blueprint) Raw() []generate.RawConfig {
	out := make([]generate.RawConfig, len(b.Stages))
	for i, st := range b.Stages {
		init := st.Initialize
		if init == nil {
			first := i == 0
			init = &first
		}
		raw := generate.RawConfig{
			Generator:  st.Generator,
			Steps:      string(st.Steps),
			Source:     st.Source,
			Initialize: init,
		}
		if len(st.Params) > 0 {
			raw.Params = make(map[string]string, len(st.Params))
			for k, v := range st.Params {
				raw.Params[k] = string(v)
			}
		}
		out[i] = raw
	}
	return out
}

// Configs resolves every stage against reg, rolling step ranges with rng.
// Unknown generators and malformed ranges are reported here, before any
// map is touched.
func (b Blueprint) Configs(reg *generate.Registry, rng *rand.Rand) ([]generate.ProcessConfig, error) {
	raws := b.Raw()
	cfgs := make([]generate.ProcessConfig, 0, len(raws))
	for i, raw := range raws {
		cfg, err := reg.CreateConfigByName(raw.Generator, raw, rng)
		if err != nil {
			return nil, fmt.Errorf("%q stage %d: %w", b.Name, i, err)
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

// Size returns the map size for the blueprint. A stage with a sizer (such
// as FromData) decides when the blueprint gives no size; when both are
// present they must agree.
func (b Blueprint) Size(reg *generate.Registry, env *generate.Env) (int, int, error) {
	w, h := b.Width, b.Height
	for i, raw := range b.Raw() {
		sw, sh, ok := reg.MapSize(raw.Generator, raw, env)
		if !ok {
			continue
		}
		if w == 0 && h == 0 {
			w, h = sw, sh
			continue
		}
		if sw != w || sh != h {
			return 0, 0, fmt.Errorf("%q stage %d needs %dx%d, map is %dx%d: %w", b.Name, i, sw, sh, w, h, ErrBadSize)
		}
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%q: no map size given: %w", b.Name, ErrBadSize)
	}
	return w, h, nil
}
