// Package config turns the command-line flags shared by the programs into a
// blueprint, a runner and a logger.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"mapforge/assets"
	"mapforge/internal/blueprint"
	"mapforge/internal/generate"
	"mapforge/internal/pipeline"
	"mapforge/internal/render"
)

var (
	ErrUnknownPreset = errors.New("unknown preset")
	ErrUnknownTheme  = errors.New("unknown theme")
)

// Flags are the options common to the local viewer and the SSH server.
type Flags struct {
	Preset    string
	Blueprint string
	Maps      string
	Seed      int64
	Retries   int
	Theme     string
	Verbose   bool
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Preset, "preset", assets.DefaultPreset, "built-in blueprint: "+strings.Join(assets.PresetNames(), ", "))
	fs.StringVar(&f.Blueprint, "blueprint", "", "path to a JSON blueprint (overrides -preset)")
	fs.StringVar(&f.Maps, "maps", "", "directory of .map files, searched before the built-in maps")
	fs.Int64Var(&f.Seed, "seed", 0, "random seed (0 picks one from the clock)")
	fs.IntVar(&f.Retries, "retries", pipeline.DefaultPolicy.StallRetries, "retries of a generator step that makes no progress")
	fs.StringVar(&f.Theme, "theme", render.EmojiTheme.Name, "viewer theme: emoji or ascii")
	fs.BoolVar(&f.Verbose, "v", false, "log generation details")
}

// LoadBlueprint returns the blueprint named by -blueprint or -preset and
// the preset's lore line, if any.
func (f *Flags) LoadBlueprint() (blueprint.Blueprint, string, error) {
	if f.Blueprint != "" {
		bp, err := blueprint.LoadFile(f.Blueprint)
		return bp, "", err
	}
	bp, ok := assets.Presets[f.Preset]
	if !ok {
		return blueprint.Blueprint{}, "", fmt.Errorf("%q (have %s): %w",
			f.Preset, strings.Join(assets.PresetNames(), ", "), ErrUnknownPreset)
	}
	return bp, assets.PresetLore[f.Preset], nil
}

// Data returns where FromData stages look up their maps.
func (f *Flags) Data() generate.DataSource {
	builtin := blueprint.MemorySource(assets.DataMaps)
	if f.Maps == "" {
		return builtin
	}
	return blueprint.Chain{blueprint.DirSource{Dir: f.Maps}, builtin}
}

// Runner returns a runner over the built-in generators. The caller sets
// the registrar.
func (f *Flags) Runner(log *slog.Logger) pipeline.Runner {
	return pipeline.Runner{
		Registry: generate.NewDefaultRegistry(),
		Policy:   &pipeline.Policy{StallRetries: max(f.Retries, 0)},
		Data:     f.Data(),
		Log:      log,
	}
}

// RunSeed returns -seed, or a clock-derived seed when it is zero.
func (f *Flags) RunSeed() int64 {
	if f.Seed != 0 {
		return f.Seed
	}
	return time.Now().UnixNano()
}

// ViewTheme returns the theme named by -theme.
func (f *Flags) ViewTheme() (render.Theme, error) {
	t, ok := render.Themes[f.Theme]
	if !ok {
		return render.Theme{}, fmt.Errorf("%q: %w", f.Theme, ErrUnknownTheme)
	}
	return t, nil
}

// NewLogger returns a text logger writing to w, at debug level when
// verbose is set.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WritePresets lists the built-in presets with their lore.
func WritePresets(w io.Writer) error {
	for _, name := range assets.PresetNames() {
		if _, err := fmt.Fprintf(w, "%-12s %s\n", name, assets.PresetLore[name]); err != nil {
			return err
		}
	}
	return nil
}
