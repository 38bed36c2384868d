package render

import (
	"errors"
	"strings"
	"testing"

	"mapforge/internal/component"
	"mapforge/internal/ecs"
	"mapforge/internal/gamemap"
	"mapforge/internal/pipeline"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	ss.SetSize(80, 24)
	if err := ss.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(ss.Fini)
	return ss
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		sb.WriteRune(runeAt(s, x, y))
	}
	return sb.String()
}

func TestCameraWorldToScreen(t *testing.T) {
	tests := []struct {
		name    string
		cellW   int
		offX    int
		p       gamemap.Coords
		sx, sy  int
		visible bool
	}{
		{"origin", 1, 0, gamemap.Coords{X: 0, Y: 0}, 0, 0, true},
		{"wide cells", 2, 0, gamemap.Coords{X: 3, Y: 2}, 6, 2, true},
		{"offset", 2, 5, gamemap.Coords{X: 6, Y: 1}, 2, 1, true},
		{"left of view", 1, 5, gamemap.Coords{X: 4, Y: 0}, -1, 0, false},
		{"wide cell cut by right edge", 2, 0, gamemap.Coords{X: 5, Y: 0}, 10, 0, false},
		{"below view", 1, 0, gamemap.Coords{X: 0, Y: 10}, 0, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(tt.cellW, 11, 10)
			c.OffsetX = tt.offX
			sx, sy, vis := c.WorldToScreen(tt.p)
			if sx != tt.sx || sy != tt.sy || vis != tt.visible {
				t.Errorf("WorldToScreen(%v) = %d,%d,%v want %d,%d,%v", tt.p, sx, sy, vis, tt.sx, tt.sy, tt.visible)
			}
			if vis {
				if back := c.ScreenToWorld(sx, sy); back != tt.p {
					t.Errorf("ScreenToWorld = %v, want %v", back, tt.p)
				}
			}
		})
	}
}

func TestCameraClamp(t *testing.T) {
	c := NewCamera(2, 20, 10) // 10 cells across
	c.Center(gamemap.Coords{X: 0, Y: 0})
	c.Clamp(50, 30)
	if c.OffsetX != 0 || c.OffsetY != 0 {
		t.Errorf("clamped to %d,%d, want 0,0", c.OffsetX, c.OffsetY)
	}
	c.Pan(100, 100)
	c.Clamp(50, 30)
	if c.OffsetX != 40 || c.OffsetY != 20 {
		t.Errorf("clamped to %d,%d, want 40,20", c.OffsetX, c.OffsetY)
	}
	c.Clamp(5, 5)
	if c.OffsetX != 0 || c.OffsetY != 0 {
		t.Errorf("small map clamped to %d,%d", c.OffsetX, c.OffsetY)
	}
}

func TestDrawFrameASCII(t *testing.T) {
	ss := newSimScreen(t)
	r := NewRenderer(ss, ASCIITheme)

	m := gamemap.New(5, 3)
	m.Set(gamemap.Coords{X: 1, Y: 1}, gamemap.TileAir)
	m.Set(gamemap.Coords{X: 2, Y: 1}, gamemap.TileWater)
	m.Commit()
	m.PlaceFeature(gamemap.Coords{X: 3, Y: 1}, gamemap.Feature{Kind: gamemap.FeatureDoor, Glyph: "🚪", Rune: '+'})
	m.At(gamemap.Coords{X: 0, Y: 2}).Hidden = true

	r.DrawFrame(m, nil)

	want := []string{"#####", "#.~+#", " ####"}
	for y, row := range want {
		if got := rowText(ss, y)[:5]; got != row {
			t.Errorf("row %d = %q, want %q", y, got, row)
		}
	}
}

func TestDrawFrameEmojiUsesTwoColumns(t *testing.T) {
	ss := newSimScreen(t)
	r := NewRenderer(ss, EmojiTheme)
	m := gamemap.New(4, 3)
	m.Set(gamemap.Coords{X: 1, Y: 1}, gamemap.TileAir)
	m.Commit()

	r.DrawFrame(m, nil)

	stone := []rune(EmojiTheme.Stone.Glyph)[0]
	air := []rune(EmojiTheme.Air.Glyph)[0]
	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, stone},
		{2, 0, stone},
		{0, 1, stone},
		{2, 1, air},
		{3, 1, ' '}, // air is one column wide, padded
		{4, 1, stone},
	}
	for _, tt := range tests {
		if got := runeAt(ss, tt.x, tt.y); got != tt.want {
			t.Errorf("(%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDrawEntitiesOverMap(t *testing.T) {
	ss := newSimScreen(t)
	r := NewRenderer(ss, ASCIITheme)
	m := gamemap.New(5, 5)
	m.Fill(gamemap.TileAir)
	m.Commit()

	w := ecs.NewWorld()
	w.Spawn(component.Position{X: 2, Y: 2}, component.Renderable{Glyph: "🔒", ASCII: '%', FGColor: tcell.ColorGold, RenderOrder: 1})
	w.Spawn(component.Position{X: 2, Y: 2}, component.Renderable{Glyph: "x", RenderOrder: 0})
	w.Spawn(component.Position{X: 1, Y: 1}, component.Renderable{Glyph: "y", RenderOrder: 1})
	m.At(gamemap.Coords{X: 1, Y: 1}).Hidden = true

	r.DrawFrame(m, w)

	if got := runeAt(ss, 2, 2); got != '%' {
		t.Errorf("(2,2) = %q, want the higher render order in ASCII", got)
	}
	if got := runeAt(ss, 1, 1); got != ' ' {
		t.Errorf("entity on hidden cell drawn as %q", got)
	}
}

func TestDrawHUD(t *testing.T) {
	ss := newSimScreen(t)
	r := NewRenderer(ss, ASCIITheme)
	rep := pipeline.Report{Name: "dungeon", Width: 80, Height: 40, Seed: 7}

	r.DrawHUD(Status{
		Progress: pipeline.Progress{Stage: 0, Stages: 2, Generator: "Dungeon", Step: 4, Budget: 30},
		Report:   rep,
		Paused:   true,
		Help:     "q quit",
	})
	line := rowText(ss, 24-HUDRows+1)
	for _, want := range []string{"dungeon", "seed 7", "stage 1/2 Dungeon", "step 4/30", "[paused]"} {
		if !strings.Contains(line, want) {
			t.Errorf("status line %q missing %q", line, want)
		}
	}
	if !strings.Contains(rowText(ss, 23), "q quit") {
		t.Error("help line missing")
	}

	ss.Clear()
	r.DrawHUD(Status{Report: rep, Err: errors.New("boom")})
	if !strings.Contains(rowText(ss, 24-HUDRows+2), "error: boom") {
		t.Error("error line missing")
	}
}

func TestDrawTextTruncates(t *testing.T) {
	ss := newSimScreen(t)
	r := NewRenderer(ss, ASCIITheme)
	r.drawText(70, 0, strings.Repeat("a", 30), tcell.StyleDefault)
	if got := runeAt(ss, 79, 0); got != '…' {
		t.Errorf("last column = %q, want ellipsis", got)
	}
}
