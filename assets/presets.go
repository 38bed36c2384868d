package assets

import (
	"maps"
	"slices"

	"mapforge/internal/blueprint"
)

func off() *bool { f := false; return &f }

// Presets are the built-in blueprints, selectable by name.
var Presets = map[string]blueprint.Blueprint{
	"caverns": {
		Name: "caverns", Width: 80, Height: 40,
		Stages: []blueprint.Stage{
			{Generator: "CellularAutomata"},
		},
	},
	"dungeon": {
		Name: "dungeon", Width: 80, Height: 40,
		Stages: []blueprint.Stage{
			{Generator: "Dungeon", Steps: "25~40"},
		},
	},
	"riverlands": {
		Name: "riverlands", Width: 100, Height: 50,
		Stages: []blueprint.Stage{
			{Generator: "CellularAutomata"},
			{Generator: "River", Steps: "1~3", Initialize: off()},
		},
	},
	"flooded": {
		Name: "flooded", Width: 80, Height: 40,
		Stages: []blueprint.Stage{
			{Generator: "Dungeon", Steps: "30", Params: map[string]blueprint.Value{
				"start":   "3",
				"hallway": "2~5",
				"width":   "4~8",
				"depth":   "4~7",
			}},
			{Generator: "River", Initialize: off()},
		},
	},
	"vault": {
		Name: "vault",
		Stages: []blueprint.Stage{
			{Generator: "FromData", Source: "vault"},
		},
	},
	"moat": {
		Name: "moat",
		Stages: []blueprint.Stage{
			{Generator: "FromData", Source: "keep"},
			{Generator: "Dungeon", Steps: "4", Initialize: off(), Params: map[string]blueprint.Value{
				"hallway": "2~3",
				"width":   "3~4",
				"depth":   "3",
			}},
		},
	},
}

// DefaultPreset is used when no blueprint is named.
const DefaultPreset = "dungeon"

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(Presets))
}
