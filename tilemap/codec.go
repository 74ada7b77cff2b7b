package tilemap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Format selects the text encoding of a map file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks the format from a file extension; anything that is not
// .yaml or .yml is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

type mapFile struct {
	MapName  string       `json:"map_name" yaml:"map_name"`
	MapID    string       `json:"map_id" yaml:"map_id"`
	TileSet  string       `json:"tile_set,omitempty" yaml:"tile_set,omitempty"`
	TileRows uint32       `json:"tile_rows" yaml:"tile_rows"`
	TileCols uint32       `json:"tile_cols" yaml:"tile_cols"`
	TileData tileDataFile `json:"tile_data" yaml:"tile_data"`
}

type tileDataFile struct {
	MaxX  uint32     `json:"max_x" yaml:"max_x"`
	MaxY  uint32     `json:"max_y" yaml:"max_y"`
	Tiles []tileFile `json:"tiles" yaml:"tiles"`
}

type tileFile struct {
	TileIndex *uint32 `json:"tile_index" yaml:"tile_index"`
	X         uint32  `json:"x" yaml:"x"`
	Y         uint32  `json:"y" yaml:"y"`
	Metadata  *string `json:"metadata" yaml:"metadata"`
}

func (m *MapScreen) toFile() mapFile {
	maxX, maxY := m.grid.Size()
	tiles := make([]tileFile, 0)
	for _, t := range m.grid.Painted() {
		tf := tileFile{X: t.Coords.X, Y: t.Coords.Y}
		if t.HasIndex {
			idx := t.TileIndex
			tf.TileIndex = &idx
		}
		if t.Tag != TagNone {
			name := t.Tag.String()
			tf.Metadata = &name
		}
		tiles = append(tiles, tf)
	}
	return mapFile{
		MapName:  m.name,
		MapID:    m.id.String(),
		TileSet:  m.tileSet,
		TileRows: m.tileRows,
		TileCols: m.tileCols,
		TileData: tileDataFile{MaxX: maxX, MaxY: maxY, Tiles: tiles},
	}
}

func fromFile(f mapFile) (*MapScreen, error) {
	id, err := uuid.Parse(f.MapID)
	if err != nil {
		return nil, fmt.Errorf("map_id: %w", err)
	}
	descs := make([]TileDescriptor, 0, len(f.TileData.Tiles))
	for i, tf := range f.TileData.Tiles {
		d := TileDescriptor{}
		d.Coords.X, d.Coords.Y = tf.X, tf.Y
		if tf.TileIndex != nil {
			d.TileIndex = *tf.TileIndex
			d.HasIndex = true
		}
		if tf.Metadata != nil {
			tag, err := ParseTag(*tf.Metadata)
			if err != nil {
				return nil, fmt.Errorf("tile_data.tiles[%d]: %w", i, err)
			}
			d.Tag = tag
		}
		descs = append(descs, d)
	}
	grid, err := FromDescriptors(f.TileData.MaxX, f.TileData.MaxY, descs)
	if err != nil {
		return nil, fmt.Errorf("tile_data: %w", err)
	}
	return &MapScreen{
		name:     f.MapName,
		id:       id,
		tileSet:  f.TileSet,
		tileRows: f.TileRows,
		tileCols: f.TileCols,
		grid:     grid,
	}, nil
}

// Encode writes m in the given format.
func (m *MapScreen) Encode(w io.Writer, format Format) error {
	f := m.toFile()
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	}
}

// Decode reads a map in the given format. Syntax and structural problems are
// both reported as errors; nothing panics on malformed input.
func Decode(r io.Reader, format Format) (*MapScreen, error) {
	var f mapFile
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&f); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("empty map document")
			}
			return nil, err
		}
	default:
		if err := json.NewDecoder(r).Decode(&f); err != nil {
			return nil, err
		}
	}
	return fromFile(f)
}

// Load reads the map file at path. Any failure after the file was opened is
// a *ParseError naming the path.
func Load(path string) (*MapScreen, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("tilemap: expand %s: %w", path, err)
	}
	file, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("tilemap: open %s: %w", expanded, err)
	}
	defer file.Close()
	m, err := Decode(file, FormatFor(expanded))
	if err != nil {
		return nil, &ParseError{Path: expanded, Err: err}
	}
	return m, nil
}

// Save writes m to path, creating parent directories as needed.
func (m *MapScreen) Save(path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("tilemap: expand %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("tilemap: save %s: %w", expanded, err)
	}
	file, err := os.Create(expanded)
	if err != nil {
		return fmt.Errorf("tilemap: save %s: %w", expanded, err)
	}
	if err := m.Encode(file, FormatFor(expanded)); err != nil {
		file.Close()
		return fmt.Errorf("tilemap: encode %s: %w", expanded, err)
	}
	return file.Close()
}
