package assets

// PresetLore is a one-line description of each built-in preset, shown in
// the viewer HUD and by -list.
var PresetLore = map[string]string{
	"caverns":    "Winding caves grown from noise and smoothed until they settle.",
	"dungeon":    "Rooms dug one at a time, each reached by a straight hallway.",
	"riverlands": "Caverns split by rivers that wander wherever the current takes them.",
	"flooded":    "A dungeon whose lower halls were lost to a meandering flood.",
	"vault":      "A hand-drawn vault, loaded as is.",
	"moat":       "A hand-drawn keep inside its moat, with cellars dug under the yard.",
}
