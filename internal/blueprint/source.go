package blueprint

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"mapforge/internal/gamemap"
	"mapforge/internal/generate"
)

// ErrNoSuchMap is returned when a data map cannot be found.
var ErrNoSuchMap = errors.New("no such map")

// MapExt is the file extension of data maps on disk.
const MapExt = ".map"

// visibilitySep separates the tile rows from the optional visibility rows.
const visibilitySep = "---"

// ParseMap reads a data map. Tile rows use '.', '#' and '~'. Blank lines
// and lines starting with ';' are skipped. An optional "---" line is
// followed by visibility rows of '0' and '1'.
func ParseMap(name string, r io.Reader) (gamemap.Description, error) {
	desc := gamemap.Description{Name: name}
	sc := bufio.NewScanner(r)
	vis := false
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		switch {
		case strings.HasPrefix(line, ";"):
			continue
		case line == visibilitySep:
			if vis {
				return gamemap.Description{}, fmt.Errorf("%s: repeated %q line", name, visibilitySep)
			}
			vis = true
			continue
		case line == "":
			continue
		}
		if vis {
			desc.Visibility = append(desc.Visibility, line)
		} else {
			desc.Rows = append(desc.Rows, line)
		}
	}
	if err := sc.Err(); err != nil {
		return gamemap.Description{}, fmt.Errorf("%s: %w", name, err)
	}
	if len(desc.Rows) == 0 {
		return gamemap.Description{}, fmt.Errorf("%s: empty map: %w", name, gamemap.ErrSizeMismatch)
	}
	return desc, nil
}

// DirSource looks up data maps stored as <name>.map files in a directory.
type DirSource struct {
	Dir string
}

func (s DirSource) Lookup(name string) (gamemap.Description, error) {
	if name == "" || filepath.Base(name) != name || strings.HasPrefix(name, ".") {
		return gamemap.Description{}, fmt.Errorf("%q: %w", name, ErrNoSuchMap)
	}
	f, err := os.Open(filepath.Join(s.Dir, name+MapExt))
	if errors.Is(err, os.ErrNotExist) {
		return gamemap.Description{}, fmt.Errorf("%q in %s: %w", name, s.Dir, ErrNoSuchMap)
	}
	if err != nil {
		return gamemap.Description{}, err
	}
	defer f.Close()
	return ParseMap(name, f)
}

// MemorySource serves data maps held in memory.
type MemorySource map[string]gamemap.Description

func (s MemorySource) Lookup(name string) (gamemap.Description, error) {
	desc, ok := s[name]
	if !ok {
		return gamemap.Description{}, fmt.Errorf("%q: %w", name, ErrNoSuchMap)
	}
	if desc.Name == "" {
		desc.Name = name
	}
	return desc, nil
}

// Names returns the stored map names in sorted order.
func (s MemorySource) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// Chain tries each source in order and returns the first map found.
type Chain []generate.DataSource

func (c Chain) Lookup(name string) (gamemap.Description, error) {
	for _, s := range c {
		desc, err := s.Lookup(name)
		if errors.Is(err, ErrNoSuchMap) {
			continue
		}
		return desc, err
	}
	return gamemap.Description{}, fmt.Errorf("%q: %w", name, ErrNoSuchMap)
}
