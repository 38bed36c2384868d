package assets

import "mapforge/internal/gamemap"

// DataMaps are the hand-drawn maps available to FromData stages.
var DataMaps = map[string]gamemap.Description{
	"vault": {
		Name: "vault",
		Rows: []string{
			"########################################",
			"#######################~~~##############",
			"####....#############~~~~~~~############",
			"####....############~~~.....~~~#########",
			"####..........######~~.......~~#########",
			"####....####..######~~.......~~#########",
			"####....####..#######~~~...~~~##########",
			"############..#########~~.~~############",
			"############..##########...#############",
			"############.............###############",
			"############..##########...#############",
			"############..##########...#############",
			"#######.......##########...######...####",
			"#######.#####.##########..........#.####",
			"#######.#####.##########...######...####",
			"#######.......##########...#############",
			"########################...#############",
			"#####################.........##########",
			"#####################.........##########",
			"########################################",
		},
		// The entry hall at the bottom starts out explored.
		Visibility: []string{
			"0000000000000000000000000000000000000000",
			"0000000000000000000000000000000000000000",
			"0000000000000000000000000000000000000000",
			"0000000000000000000000000000000000000000",
			"0000000000000000000000000000000000000000",
			"0000000000000000000000000000000000000000",
			"0000000000000000000000000000000000000000",
			"0000000000000000000000000000000000000000",
			"0000000000000000000000000000000000000000",
			"0000000000000000000000000000000000000000",
			"0000000000000000000000000000000000000000",
			"0000000000000000000000000000000000000000",
			"0000000000000000000000000000000000000000",
			"0000000000000000000000000000000000000000",
			"0000000000000000000000000000000000000000",
			"0000000000000000000000000000000000000000",
			"0000000000000000000000000000000000000000",
			"0000000000000000000001111111110000000000",
			"0000000000000000000001111111110000000000",
			"0000000000000000000000000000000000000000",
		},
	},
	"keep": {
		Name: "keep",
		Rows: []string{
			"##################################################",
			"##################################################",
			"##################################################",
			"######~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~#########",
			"######~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~#########",
			"######~~...........................~~~~~##########",
			"######~~.#########.......#########.~~~~~##########",
			"######~~.#.......#.......#.......#.~~~~~##########",
			"######~~.#.......#.......#.......#.~~~~~##########",
			"######~~.#.......#.......#.......#.~~~~~##########",
			"######~~.####.####.......####.####.~~~~~##########",
			"######~~...........................~~~~~##########",
			"######~~~~~~~~~~~~~~~~~.~~~~~~~~~~~~~~~~##########",
			"######~~~~~~~~~~~~~~~~~.~~~~~~~~~~~~~~~~##########",
			"#######################.##########################",
			"#######################.##########################",
			"##################################################",
			"##################################################",
			"##################################################",
			"##################################################",
			"##################################################",
			"##################################################",
		},
	},
}
