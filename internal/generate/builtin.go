package generate

// Names of the built-in algorithms.
const (
	NameCellularAutomata = "CellularAutomata"
	NameDungeon          = "Dungeon"
	NameRiver            = "River"
	NameFromData         = "FromData"
)

// RegisterBuiltins adds the built-in algorithms to r.
func RegisterBuiltins(r *Registry) {
	r.Register(NameCellularAutomata, func() Generator { return CellularAutomata{} }, nil, nil)
	r.Register(NameDungeon, func() Generator { return Dungeon{} }, parseDungeonConfig, nil)
	r.Register(NameRiver, func() Generator { return River{} }, nil, nil)
	r.Register(NameFromData, func() Generator { return FromData{} }, parseFromDataConfig, sizeFromData)
}
