package generate

import (
	"math/rand"

	"mapforge/internal/gamemap"

	"github.com/zyedidia/generic/mapset"
)

// Dungeon parameter names and their defaults.
const (
	ParamStart   = "start"   // half-extent of the starting room
	ParamHallway = "hallway" // hallway length
	ParamWidth   = "width"   // room width, across the hallway
	ParamDepth   = "depth"   // room depth, along the hallway
)

var (
	defaultStart   = Fixed(2)
	defaultHallway = Range{3, 7}
	defaultWidth   = Range{3, 9}
	defaultDepth   = Range{3, 8}
)

// dungeonParamFloors lists the accepted parameters and their smallest value.
var dungeonParamFloors = map[string]int{
	ParamStart:   0,
	ParamHallway: 1,
	ParamWidth:   1,
	ParamDepth:   1,
}

func parseDungeonConfig(raw RawConfig, rng *rand.Rand) (ProcessConfig, error) {
	return parseConfig(raw, rng, dungeonParamFloors)
}

type dungeonParams struct {
	start, hallway, width, depth Range
}

func dungeonParamsOf(cfg ProcessConfig) dungeonParams {
	return dungeonParams{
		start:   cfg.Range(ParamStart, defaultStart),
		hallway: cfg.Range(ParamHallway, defaultHallway),
		width:   cfg.Range(ParamWidth, defaultWidth),
		depth:   cfg.Range(ParamDepth, defaultDepth),
	}
}

// Dungeon carves rooms joined by straight hallways. Each step searches the
// current layout for a place to dig one more room; rooms are never planned
// ahead, so the layout adapts to whatever is already carved.
type Dungeon struct{}

func (Dungeon) Name() string { return NameDungeon }

// CanStall reports true: a step that finds no room may succeed on retry
// since dig directions and sizes are rolled again.
func (Dungeon) CanStall() bool { return true }

// InitializeMap fills the map with stone and carves the starting room in
// the middle.
func (Dungeon) InitializeMap(env *Env, m *gamemap.GameMap, cfg ProcessConfig) {
	m.Fill(gamemap.TileStone)
	m.Rooms = nil
	h := dungeonParamsOf(cfg).start.Roll(env.Rand)
	c := gamemap.Coords{X: m.Width / 2, Y: m.Height / 2}
	room := gamemap.Rect{
		X1: max(c.X-h, 1),
		Y1: max(c.Y-h, 1),
		X2: min(c.X+h, m.Width-2),
		Y2: min(c.Y+h, m.Height-2),
	}
	if room.X1 > room.X2 || room.Y1 > room.Y2 {
		return
	}
	carveRect(m, room)
	m.Rooms = append(m.Rooms, room)
	m.Commit()
}

// GenerateStep digs one hallway and room. It returns false when every
// hallway start on the map has been tried without success.
func (Dungeon) GenerateStep(env *Env, m *gamemap.GameMap, step int, cfg ProcessConfig) (bool, error) {
	p := dungeonParamsOf(cfg)
	candidates := hallwayStarts(m)
	env.Rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, start := range candidates {
		plan, ok := planRoom(env.Rand, m, start, p)
		if !ok {
			continue
		}
		plan.carve(env, m)
		m.Commit()
		env.logger().Debug("room carved",
			"step", step, "from", start, "dir", plan.dir,
			"hallway", len(plan.hallway), "room", plan.room, "door", plan.door)
		return true, nil
	}
	env.logger().Debug("no room fits", "step", step, "candidates", len(candidates))
	return false, nil
}

// hallwayStarts returns the air cells with at least one stone cross
// neighbor, in row-major order.
func hallwayStarts(m *gamemap.GameMap) []gamemap.Coords {
	var out []gamemap.Coords
	for i := range m.Tiles {
		if m.Tiles[i].Type != gamemap.TileAir {
			continue
		}
		c := m.CoordsOf(i)
		if m.CountCross(c, 1, gamemap.TileStone) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// roomPlan is a hallway and room that fit the map. Nothing is written until
// carve is called.
type roomPlan struct {
	dir     gamemap.Direction
	hallway []gamemap.Coords // hallway[0] is the wall dug through
	room    gamemap.Rect
	door    bool
}

// planRoom tries to fit a hallway and a room starting from start.
func planRoom(rng *rand.Rand, m *gamemap.GameMap, start gamemap.Coords, p dungeonParams) (roomPlan, bool) {
	var dirs []gamemap.Direction
	for _, d := range gamemap.Cardinals {
		if n, ok := m.Neighbor(start, d, 1); ok && m.TypeAt(n) == gamemap.TileStone {
			dirs = append(dirs, d)
		}
	}
	if len(dirs) == 0 {
		return roomPlan{}, false
	}
	dir := dirs[rng.Intn(len(dirs))]
	step := dir.Delta()

	length := min(p.hallway.Roll(rng), max(m.Width, m.Height))
	for length > p.hallway.Min && !m.InInterior(start.Add(step.Scale(length))) {
		length--
	}
	end := start.Add(step.Scale(length))
	if length < 1 || !m.InInterior(end) {
		return roomPlan{}, false
	}
	hallway := make([]gamemap.Coords, 0, length)
	for i := 1; i <= length; i++ {
		c := start.Add(step.Scale(i))
		if m.TypeAt(c) != gamemap.TileStone {
			return roomPlan{}, false
		}
		hallway = append(hallway, c)
	}

	room, ok := fitRoom(rng, m, end, dir, p)
	if !ok {
		return roomPlan{}, false
	}
	wall := hallway[0]
	return roomPlan{
		dir:     dir,
		hallway: hallway,
		room:    room,
		door:    m.CountCross(wall, 1, gamemap.TileAir) < 2,
	}, true
}

// fitRoom grows a room beyond the hallway end. The room extends sideways by
// a random split of its width and forward by its depth; each extent shrinks
// independently until it stays inside the carveable interior.
func fitRoom(rng *rand.Rand, m *gamemap.GameMap, end gamemap.Coords, dir gamemap.Direction, p dungeonParams) (gamemap.Rect, bool) {
	forward := dir.Delta()
	side := dir.RotateCW().Delta()
	base := end.Add(forward)

	// No extent can usefully exceed the map's longer side.
	span := max(m.Width, m.Height)
	width := p.width.Roll(rng)
	right := rng.Intn(width)
	left := width - 1 - right
	right, left = min(right, span), min(left, span)
	for right > 0 && !m.InInterior(base.Add(side.Scale(right))) {
		right--
	}
	for left > 0 && !m.InInterior(base.Add(side.Scale(-left))) {
		left--
	}
	if left+right+1 < p.width.Min {
		return gamemap.Rect{}, false
	}

	depth := min(p.depth.Roll(rng), span)
	for depth > 0 && !m.InInterior(base.Add(forward.Scale(depth-1))) {
		depth--
	}
	if depth < max(p.depth.Min, 1) {
		return gamemap.Rect{}, false
	}

	room := gamemap.RectAround(
		base.Add(side.Scale(-left)),
		base.Add(side.Scale(right)).Add(forward.Scale(depth-1)),
	)
	if !solid(m, room.Grow(1)) {
		return gamemap.Rect{}, false
	}
	return room, true
}

// solid reports whether every on-map cell of r is stone.
func solid(m *gamemap.GameMap, r gamemap.Rect) bool {
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			c := gamemap.Coords{X: x, Y: y}
			if m.InBounds(c) && m.TypeAt(c) != gamemap.TileStone {
				return false
			}
		}
	}
	return true
}

// carve writes the plan into the pending buffer and records the room.
func (p roomPlan) carve(env *Env, m *gamemap.GameMap) {
	cells := mapset.New[gamemap.Coords]()
	for _, c := range p.hallway {
		cells.Put(c)
	}
	for y := p.room.Y1; y <= p.room.Y2; y++ {
		for x := p.room.X1; x <= p.room.X2; x++ {
			cells.Put(gamemap.Coords{X: x, Y: y})
		}
	}
	cells.Each(func(c gamemap.Coords) {
		m.Set(c, gamemap.TileAir)
	})
	if p.door {
		env.placeDoor(m, p.hallway[0])
	}
	m.Rooms = append(m.Rooms, p.room)
}

// carveRect writes air over r in the pending buffer.
func carveRect(m *gamemap.GameMap, r gamemap.Rect) {
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			m.Set(gamemap.Coords{X: x, Y: y}, gamemap.TileAir)
		}
	}
}
