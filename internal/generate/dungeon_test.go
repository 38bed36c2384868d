package generate

import (
	"log/slog"
	"testing"
	"time"

	"mapforge/internal/gamemap"
)

// runDungeon steps the dungeon generator until it reports no progress and
// returns the map, the number of successful steps and the doors requested.
func runDungeon(t *testing.T, seed int64, w, h int, cfg ProcessConfig) (*gamemap.GameMap, int, *doorLog) {
	t.Helper()
	env := NewEnv(seed)
	doors := &doorLog{}
	env.Doors = doors
	m := gamemap.New(w, h)
	var g Dungeon
	g.InitializeMap(env, m, cfg)
	ok := 0
	for step := 0; step < 500; step++ {
		more, err := g.GenerateStep(env, m, step, cfg)
		if err != nil {
			t.Fatalf("seed=%d step=%d: %v", seed, step, err)
		}
		if !more {
			return m, ok, doors
		}
		ok++
	}
	t.Fatalf("seed=%d: dungeon never ran out of space", seed)
	return nil, 0, nil
}

func dungeonCfg() ProcessConfig {
	return ProcessConfig{Generator: NameDungeon, Initialize: true}
}

func TestDungeonInitStartRoom(t *testing.T) {
	m := gamemap.New(21, 21)
	Dungeon{}.InitializeMap(NewEnv(1), m, dungeonCfg())
	want := gamemap.Rect{X1: 8, Y1: 8, X2: 12, Y2: 12}
	if len(m.Rooms) != 1 || m.Rooms[0] != want {
		t.Fatalf("Rooms = %v, want [%v]", m.Rooms, want)
	}
	if got := m.CountType(gamemap.TileAir); got != 25 {
		t.Errorf("start room carved %d cells, want 25", got)
	}
	if !m.Committed() {
		t.Error("InitializeMap left pending changes")
	}
}

func TestDungeonInitClipsToInterior(t *testing.T) {
	m := gamemap.New(5, 5)
	cfg := dungeonCfg()
	cfg.Ranges = map[string]Range{ParamStart: Fixed(4)}
	Dungeon{}.InitializeMap(NewEnv(1), m, cfg)
	if len(m.Rooms) != 1 || m.Rooms[0] != (gamemap.Rect{X1: 1, Y1: 1, X2: 3, Y2: 3}) {
		t.Errorf("Rooms = %v", m.Rooms)
	}
	for i, tile := range m.Tiles {
		if c := m.CoordsOf(i); m.OnBorder(c) && tile.Type != gamemap.TileStone {
			t.Errorf("border cell %v carved", c)
		}
	}
}

func TestDungeonCarvesOnlyInterior(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		m, _, _ := runDungeon(t, seed, 20, 20, dungeonCfg())
		for i, tile := range m.Tiles {
			c := m.CoordsOf(i)
			if tile.Type == gamemap.TileAir && !m.InInterior(c) {
				t.Errorf("seed=%d: air at %v outside the interior", seed, c)
			}
		}
		if !m.Committed() {
			t.Errorf("seed=%d: pending changes after the last step", seed)
		}
	}
}

func TestDungeonRoomsDoNotOverlap(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		m, _, _ := runDungeon(t, seed, 60, 40, dungeonCfg())
		for i := range m.Rooms {
			for j := i + 1; j < len(m.Rooms); j++ {
				if m.Rooms[i].Intersects(m.Rooms[j]) {
					t.Errorf("seed=%d: room %v overlaps %v", seed, m.Rooms[i], m.Rooms[j])
				}
			}
		}
	}
}

func TestDungeonRoomCountMatchesSuccesses(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		m, ok, _ := runDungeon(t, seed, 50, 30, dungeonCfg())
		if len(m.Rooms) != ok+1 {
			t.Errorf("seed=%d: %d rooms after %d successful steps", seed, len(m.Rooms), ok)
		}
	}
}

func TestDungeonPlacesRooms(t *testing.T) {
	total := 0
	for seed := int64(0); seed < 10; seed++ {
		m, ok, _ := runDungeon(t, seed, 60, 40, dungeonCfg())
		total += ok
		for _, r := range m.Rooms[1:] {
			if r.Width() < defaultWidth.Min || r.Height() < defaultDepth.Min {
				t.Errorf("seed=%d: room %v smaller than the minimum", seed, r)
			}
		}
	}
	if total < 10 {
		t.Errorf("only %d rooms carved across 10 seeds", total)
	}
}

func TestDungeonDoors(t *testing.T) {
	doors := 0
	for seed := int64(0); seed < 10; seed++ {
		m, _, log := runDungeon(t, seed, 60, 40, dungeonCfg())
		doors += len(log.at)
		for _, c := range log.at {
			if m.TypeAt(c) != gamemap.TileAir {
				t.Errorf("seed=%d: door at %v on %v", seed, c, m.TypeAt(c))
			}
			if f, ok := m.FeatureAt(c); !ok || f.Kind != gamemap.FeatureDoor {
				t.Errorf("seed=%d: no door feature at %v", seed, c)
			}
		}
		if m.FeatureCount() > len(log.at) {
			t.Errorf("seed=%d: %d features from %d door requests", seed, m.FeatureCount(), len(log.at))
		}
	}
	if doors == 0 {
		t.Error("no doors placed across 10 seeds")
	}
}

func TestDungeonDefaultDoorWithoutFactory(t *testing.T) {
	env := NewEnv(4)
	m := gamemap.New(60, 40)
	var g Dungeon
	cfg := dungeonCfg()
	g.InitializeMap(env, m, cfg)
	for step := 0; step < 20; step++ {
		if more, _ := g.GenerateStep(env, m, step, cfg); !more {
			break
		}
	}
	for _, c := range m.FeatureCoords() {
		if f, _ := m.FeatureAt(c); f.Kind != gamemap.FeatureDoor || f.Rune != '+' {
			t.Errorf("feature at %v = %+v", c, f)
		}
	}
}

func TestDungeonDeterministic(t *testing.T) {
	a, okA, _ := runDungeon(t, 99, 40, 30, dungeonCfg())
	b, okB, _ := runDungeon(t, 99, 40, 30, dungeonCfg())
	if okA != okB || a.String() != b.String() {
		t.Errorf("same seed produced different dungeons:\n%s\n\n%s", a, b)
	}
}

func TestDungeonFullMapReturnsFalse(t *testing.T) {
	// An open map has no stone to dig into, so every candidate fails.
	m := gamemap.New(10, 10)
	for i := range m.Tiles {
		if c := m.CoordsOf(i); m.InInterior(c) {
			m.Set(c, gamemap.TileAir)
		}
	}
	m.Commit()
	more, err := Dungeon{}.GenerateStep(NewEnv(1), m, 0, dungeonCfg())
	if more || err != nil {
		t.Errorf("GenerateStep = %v, %v; want false, nil", more, err)
	}
	if len(m.Rooms) != 0 || !m.Committed() {
		t.Error("failed step changed the map")
	}
}

func TestDungeonHonorsParams(t *testing.T) {
	cfg := dungeonCfg()
	cfg.Ranges = map[string]Range{
		ParamStart:   Fixed(1),
		ParamHallway: Fixed(2),
		ParamWidth:   Fixed(3),
		ParamDepth:   Fixed(3),
	}
	for seed := int64(0); seed < 5; seed++ {
		m, _, _ := runDungeon(t, seed, 40, 40, cfg)
		if m.Rooms[0].Width() != 3 || m.Rooms[0].Height() != 3 {
			t.Errorf("seed=%d: start room %v, want 3x3", seed, m.Rooms[0])
		}
		for _, r := range m.Rooms[1:] {
			if r.Width() != 3 || r.Height() != 3 {
				t.Errorf("seed=%d: room %v, want 3x3", seed, r)
			}
		}
	}
}

func TestDungeonHugeParamsOnSmallMap(t *testing.T) {
	huge := 2_000_000_000
	tests := []struct {
		name   string
		ranges map[string]Range
		wantOK bool
	}{
		{"fixed", map[string]Range{
			ParamHallway: Fixed(huge),
			ParamWidth:   Fixed(huge),
			ParamDepth:   Fixed(huge),
		}, false},
		{"open ended", map[string]Range{
			ParamHallway: {1, huge},
			ParamWidth:   {1, huge},
			ParamDepth:   {1, huge},
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := dungeonCfg()
			cfg.Ranges = tt.ranges
			anyOK := false
			start := time.Now()
			for seed := int64(0); seed < 5; seed++ {
				env := NewEnv(seed)
				m := gamemap.New(20, 20)
				var g Dungeon
				g.InitializeMap(env, m, cfg)
				more, err := g.GenerateStep(env, m, 0, cfg)
				if err != nil {
					t.Fatalf("seed=%d: %v", seed, err)
				}
				anyOK = anyOK || more
				if !m.Committed() {
					t.Fatalf("seed=%d: map left uncommitted", seed)
				}
				for i, tile := range m.Tiles {
					if c := m.CoordsOf(i); !m.InInterior(c) && tile.Type != gamemap.TileStone {
						t.Fatalf("seed=%d: border cell %v carved", seed, c)
					}
				}
			}
			if anyOK != tt.wantOK {
				t.Errorf("some step placed a room = %v, want %v", anyOK, tt.wantOK)
			}
			if d := time.Since(start); d > 5*time.Second {
				t.Errorf("five steps took %v", d)
			}
		})
	}
}

// Stops a 20x20 dungeon after six rooms and checks every step's door
// request against the map as it was before that step.
func TestDungeonSixRoomsDoorPerStep(t *testing.T) {
	const wantRooms = 6
	cfg := dungeonCfg()
	cfg.Ranges = map[string]Range{
		ParamStart:   Fixed(1),
		ParamHallway: {2, 3},
		ParamWidth:   Fixed(3),
		ParamDepth:   Fixed(3),
	}
	completed := 0
	for seed := int64(0); seed < 20; seed++ {
		env := NewEnv(seed)
		doors := &doorLog{}
		carved := &carveLog{}
		env.Doors = doors
		env.Log = slog.New(carved)
		m := gamemap.New(20, 20)
		var g Dungeon
		g.InitializeMap(env, m, cfg)

		ok, stalls := 0, 0
		for ok < wantRooms && stalls <= 3 {
			before := snapshot(m)
			doorsBefore := len(doors.at)
			more, err := g.GenerateStep(env, m, ok, cfg)
			if err != nil {
				t.Fatalf("seed=%d: %v", seed, err)
			}
			if !more {
				stalls++
				if len(doors.at) != doorsBefore {
					t.Fatalf("seed=%d: failed step requested a door", seed)
				}
				continue
			}
			stalls = 0
			ok++
			if len(carved.carved) != ok {
				t.Fatalf("seed=%d: %d carve records after %d rooms", seed, len(carved.carved), ok)
			}
			rec := carved.carved[ok-1]
			wall := rec.wall()
			if before.TypeAt(wall) != gamemap.TileStone {
				t.Fatalf("seed=%d step=%d: dug through %v, which was not stone", seed, ok, wall)
			}
			trueWall := before.CountCross(wall, 1, gamemap.TileAir) < 2
			if rec.door != trueWall {
				t.Errorf("seed=%d step=%d: door=%v at %v, want %v", seed, ok, rec.door, wall, trueWall)
			}
			switch added := len(doors.at) - doorsBefore; {
			case trueWall && (added != 1 || doors.at[len(doors.at)-1] != wall):
				t.Errorf("seed=%d step=%d: want one door at %v, got %v", seed, ok, wall, doors.at[doorsBefore:])
			case !trueWall && added != 0:
				t.Errorf("seed=%d step=%d: unexpected door %v", seed, ok, doors.at[doorsBefore:])
			}
		}
		if ok < wantRooms {
			continue
		}
		completed++
		if len(m.Rooms) != wantRooms+1 {
			t.Errorf("seed=%d: %d rooms, want %d", seed, len(m.Rooms), wantRooms+1)
		}
		for i, a := range m.Rooms {
			for _, b := range m.Rooms[i+1:] {
				if a.Intersects(b) {
					t.Errorf("seed=%d: rooms %v and %v overlap", seed, a, b)
				}
			}
		}
	}
	if completed == 0 {
		t.Fatal("no seed fit six rooms on a 20x20 map")
	}
}

func TestHallwayStarts(t *testing.T) {
	m := mapFrom(t,
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	)
	got := hallwayStarts(m)
	// Every air cell but the middle one touches stone.
	if len(got) != 8 {
		t.Errorf("got %d candidates, want 8: %v", len(got), got)
	}
	for _, c := range got {
		if c == (gamemap.Coords{X: 2, Y: 2}) {
			t.Error("enclosed cell listed as a candidate")
		}
	}
}
