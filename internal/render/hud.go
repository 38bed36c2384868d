package render

import (
	"fmt"

	"mapforge/internal/pipeline"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Status is what the HUD shows about the map being built.
type Status struct {
	Progress pipeline.Progress
	Report   pipeline.Report
	Paused   bool
	Err      error
	Message  string
	Help     string
}

// DrawHUD renders the status lines at the bottom of the screen.
func (r *Renderer) DrawHUD(st Status) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDRows

	r.drawHLine(hudY, tcell.ColorGray)

	rep := st.Report
	title := fmt.Sprintf("%s  %dx%d  seed %d", rep.Name, rep.Width, rep.Height, rep.Seed)
	r.drawText(0, hudY+1, title+"  "+progressText(st), tcell.StyleDefault.Foreground(tcell.ColorWhite))

	switch {
	case st.Err != nil:
		r.drawText(0, hudY+2, "error: "+st.Err.Error(), tcell.StyleDefault.Foreground(tcell.ColorRed))
	case st.Progress.Finalized:
		line := fmt.Sprintf("rooms %d  doors %d  air %d  water %d  regions %d (largest %d)  hidden %d  pruned %d",
			rep.Rooms, rep.Doors, rep.Air, rep.Water, rep.Regions, rep.Largest, rep.Finalize.Hidden, rep.Finalize.Pruned)
		r.drawText(0, hudY+2, line, tcell.StyleDefault.Foreground(tcell.ColorLightGreen))
	}
	if st.Message != "" {
		r.drawText(0, hudY+3, st.Message, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
	if st.Help != "" {
		r.drawText(0, hudY+4, st.Help, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}

	r.screen.Show()
}

func progressText(st Status) string {
	pr := st.Progress
	var s string
	switch {
	case st.Err != nil:
		s = "failed"
	case pr.Finalized:
		s = "done"
	case pr.Stage >= pr.Stages:
		s = "finalizing"
	case pr.Budget > 0:
		s = fmt.Sprintf("stage %d/%d %s  step %d/%d", pr.Stage+1, pr.Stages, pr.Generator, pr.Step, pr.Budget)
	default:
		s = fmt.Sprintf("stage %d/%d %s  step %d", pr.Stage+1, pr.Stages, pr.Generator, pr.Step)
	}
	if st.Paused {
		s += "  [paused]"
	}
	return s
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text from column x, cut to the screen width.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	w, _ := r.screen.Size()
	col := x
	for _, ch := range runewidth.Truncate(text, w-x, "…") {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}
