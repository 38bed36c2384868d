package assets

import (
	"math/rand"
	"testing"

	"mapforge/internal/blueprint"
	"mapforge/internal/gamemap"
	"mapforge/internal/generate"
)

func TestPresetsResolve(t *testing.T) {
	reg := generate.NewDefaultRegistry()
	env := generate.NewEnv(1)
	env.Data = blueprint.MemorySource(DataMaps)
	for _, name := range PresetNames() {
		bp := Presets[name]
		if bp.Name != name {
			t.Errorf("preset %q is named %q", name, bp.Name)
		}
		if err := bp.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
		if _, err := bp.Configs(reg, rand.New(rand.NewSource(1))); err != nil {
			t.Errorf("%s: %v", name, err)
		}
		if _, _, err := bp.Size(reg, env); err != nil {
			t.Errorf("%s: %v", name, err)
		}
		if PresetLore[name] == "" {
			t.Errorf("%s has no lore line", name)
		}
	}
	if _, ok := Presets[DefaultPreset]; !ok {
		t.Errorf("default preset %q missing", DefaultPreset)
	}
}

func TestDataMapsLoad(t *testing.T) {
	for name, desc := range DataMaps {
		m := gamemap.New(desc.Size())
		if err := m.Reinitialize(desc); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestDoorTable(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range Doors {
		if d.Weight <= 0 || d.Glyph == "" || d.Rune == 0 {
			t.Errorf("incomplete door kind %+v", d)
		}
		if seen[d.Name] {
			t.Errorf("duplicate door kind %q", d.Name)
		}
		seen[d.Name] = true
		if got, ok := DoorByName(d.Name); !ok || got.Name != d.Name {
			t.Errorf("DoorByName(%q) = %+v, %v", d.Name, got, ok)
		}
	}
}
