package generate

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"mapforge/internal/gamemap"
)

// memData is an in-memory DataSource.
type memData map[string]gamemap.Description

func (d memData) Lookup(name string) (gamemap.Description, error) {
	desc, ok := d[name]
	if !ok {
		return gamemap.Description{}, fmt.Errorf("no map %q", name)
	}
	return desc, nil
}

// doorLog records every door request and places a plain door.
type doorLog struct {
	at []gamemap.Coords
}

func (l *doorLog) PlaceDoor(m *gamemap.GameMap, c gamemap.Coords) {
	l.at = append(l.at, c)
	m.PlaceFeature(c, gamemap.Feature{Kind: gamemap.FeatureDoor, Name: "door", Rune: '+'})
}

// carveLog is a slog.Handler keeping the "room carved" records the dungeon
// logs, one per successful step.
type carveLog struct {
	carved []carveRecord
}

type carveRecord struct {
	from gamemap.Coords
	dir  gamemap.Direction
	door bool
}

// wall is the first hallway cell, the one dug through from an existing room.
func (r carveRecord) wall() gamemap.Coords { return r.from.Add(r.dir.Delta()) }

func (l *carveLog) Enabled(context.Context, slog.Level) bool { return true }

func (l *carveLog) Handle(_ context.Context, r slog.Record) error {
	if r.Message != "room carved" {
		return nil
	}
	var rec carveRecord
	r.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "from":
			rec.from, _ = a.Value.Any().(gamemap.Coords)
		case "dir":
			rec.dir, _ = a.Value.Any().(gamemap.Direction)
		case "door":
			rec.door = a.Value.Bool()
		}
		return true
	})
	l.carved = append(l.carved, rec)
	return nil
}

func (l *carveLog) WithAttrs([]slog.Attr) slog.Handler { return l }
func (l *carveLog) WithGroup(string) slog.Handler      { return l }

// snapshot copies the committed tiles of m into a fresh map.
func snapshot(m *gamemap.GameMap) *gamemap.GameMap {
	c := gamemap.New(m.Width, m.Height)
	copy(c.Tiles, m.Tiles)
	return c
}

// registrarLog records registered features.
type registrarLog struct {
	got map[gamemap.Coords]int
}

func (r *registrarLog) RegisterFeature(c gamemap.Coords, _ gamemap.Feature) {
	if r.got == nil {
		r.got = make(map[gamemap.Coords]int)
	}
	r.got[c]++
}

func mapFrom(t *testing.T, rows ...string) *gamemap.GameMap {
	t.Helper()
	desc := gamemap.Description{Name: t.Name(), Rows: rows}
	w, h := desc.Size()
	m := gamemap.New(w, h)
	if err := m.Reinitialize(desc); err != nil {
		t.Fatalf("Reinitialize: %v", err)
	}
	return m
}

func countInvalid(m *gamemap.GameMap) int {
	return m.CountType(gamemap.TileInvalid)
}
