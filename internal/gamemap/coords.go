package gamemap

// Coords is an integer map position.
type Coords struct {
	X, Y int
}

// Add returns c offset by d.
func (c Coords) Add(d Coords) Coords {
	return Coords{c.X + d.X, c.Y + d.Y}
}

// Scale returns c multiplied by n on both axes.
func (c Coords) Scale(n int) Coords {
	return Coords{c.X * n, c.Y * n}
}

// Direction is one of the eight compass directions, clockwise from north.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Cardinals lists the four orthogonal directions.
var Cardinals = [4]Direction{North, East, South, West}

// Directions lists all eight directions.
var Directions = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

var deltas = [8]Coords{
	North:     {0, -1},
	NorthEast: {1, -1},
	East:      {1, 0},
	SouthEast: {1, 1},
	South:     {0, 1},
	SouthWest: {-1, 1},
	West:      {-1, 0},
	NorthWest: {-1, -1},
}

// Delta returns the unit offset of the direction. Y grows southwards.
func (d Direction) Delta() Coords {
	return deltas[d%8]
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 4) % 8
}

// RotateCW returns the direction rotated 90 degrees clockwise.
func (d Direction) RotateCW() Direction {
	return (d + 2) % 8
}

// RotateCCW returns the direction rotated 90 degrees counter-clockwise.
func (d Direction) RotateCCW() Direction {
	return (d + 6) % 8
}

// IsCardinal reports whether d is N, E, S or W.
func (d Direction) IsCardinal() bool {
	return d%2 == 0
}

func (d Direction) String() string {
	switch d % 8 {
	case North:
		return "N"
	case NorthEast:
		return "NE"
	case East:
		return "E"
	case SouthEast:
		return "SE"
	case South:
		return "S"
	case SouthWest:
		return "SW"
	case West:
		return "W"
	}
	return "NW"
}
