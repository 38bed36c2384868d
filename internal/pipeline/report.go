package pipeline

import (
	"fmt"
	"io"

	"mapforge/internal/analysis"
	"mapforge/internal/gamemap"
	"mapforge/internal/generate"
)

// StageReport records how one stage ran.
type StageReport struct {
	Generator string
	Steps     int
	Stalls    int
	Rooms     int // rooms added by the stage
	Layered   bool
}

// Report summarizes a finished map.
type Report struct {
	Name          string
	Seed          int64
	Width, Height int
	Stages        []StageReport
	Finalize      generate.FinalizeStats
	Rooms         int
	Doors         int
	Air, Water    int
	Regions       int // walkable regions
	Largest       int // cells in the largest walkable region
}

func (r *Report) summarize(m *gamemap.GameMap) {
	r.Rooms = len(m.Rooms)
	r.Doors = m.FeatureCount()
	r.Air = m.CountType(gamemap.TileAir)
	r.Water = m.CountType(gamemap.TileWater)
	regions := analysis.Regions(m, analysis.Walkable)
	r.Regions = len(regions)
	if len(regions) > 0 {
		r.Largest = len(regions[0])
	}
}

// WriteTo prints the report as plain text.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var n int64
	p := func(format string, args ...any) error {
		k, err := fmt.Fprintf(w, format, args...)
		n += int64(k)
		return err
	}
	if err := p("%s  %dx%d  seed %d\n", r.Name, r.Width, r.Height, r.Seed); err != nil {
		return n, err
	}
	for i, st := range r.Stages {
		layer := ""
		if st.Layered {
			layer = " (layered)"
		}
		if err := p("  stage %d %-16s steps %-4d stalls %-3d rooms %d%s\n",
			i, st.Generator, st.Steps, st.Stalls, st.Rooms, layer); err != nil {
			return n, err
		}
	}
	err := p("  rooms %d  doors %d  air %d  water %d  regions %d (largest %d)  hidden %d  pruned %d\n",
		r.Rooms, r.Doors, r.Air, r.Water, r.Regions, r.Largest, r.Finalize.Hidden, r.Finalize.Pruned)
	return n, err
}
