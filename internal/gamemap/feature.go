package gamemap

import "slices"

// FeatureKind classifies a map feature.
type FeatureKind uint8

const (
	FeatureDoor FeatureKind = iota + 1
)

// Feature is a fixture placed on a cell during generation. Registered is set
// once the feature has been handed to the game-entity list.
type Feature struct {
	Kind       FeatureKind
	Name       string
	Glyph      string // display glyph, may be a wide emoji
	Rune       rune   // single-cell glyph for ASCII output
	Registered bool
}

// PlaceFeature puts f on cell c, replacing any feature already there.
func (m *GameMap) PlaceFeature(c Coords, f Feature) {
	m.features[c] = f
}

// FeatureAt returns the feature on c, if any.
func (m *GameMap) FeatureAt(c Coords) (Feature, bool) {
	f, ok := m.features[c]
	return f, ok
}

// RemoveFeature discards the feature on c. Missing features are ignored.
func (m *GameMap) RemoveFeature(c Coords) {
	delete(m.features, c)
}

// FeatureCoords returns the cells holding features in row-major order.
func (m *GameMap) FeatureCoords() []Coords {
	cs := make([]Coords, 0, len(m.features))
	for c := range m.features {
		cs = append(cs, c)
	}
	slices.SortFunc(cs, func(a, b Coords) int {
		return m.Index(a) - m.Index(b)
	})
	return cs
}

// FeatureCount returns the number of placed features.
func (m *GameMap) FeatureCount() int {
	return len(m.features)
}
