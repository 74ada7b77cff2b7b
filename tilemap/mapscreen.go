package tilemap

import (
	"iter"

	"github.com/google/uuid"
	"github.com/milk9111/lazycat/coords"
	"github.com/milk9111/lazycat/layout"
)

// MapScreen is one level: its identity, the sprite sheet it paints from and
// the grid it owns.
type MapScreen struct {
	name     string
	id       uuid.UUID
	tileSet  string
	tileRows uint32
	tileCols uint32
	grid     *TileGrid
}

// Placement tells the renderer to draw sprite Sprite at grid offset Offset.
type Placement struct {
	Offset coords.GridOffset
	Sprite uint32
}

// NewMapScreen creates a blank gridW x gridH map with a fresh id.
func NewMapScreen(gridW, gridH uint32, name, tileSet string) (*MapScreen, error) {
	grid, err := NewTileGrid(gridW, gridH)
	if err != nil {
		return nil, err
	}
	return &MapScreen{
		name:     name,
		id:       uuid.New(),
		tileSet:  tileSet,
		tileRows: DefaultSheetRows,
		tileCols: DefaultSheetCols,
		grid:     grid,
	}, nil
}

func (m *MapScreen) Name() string { return m.name }
func (m *MapScreen) ID() uuid.UUID { return m.id }
func (m *MapScreen) TileSet() string { return m.tileSet }
func (m *MapScreen) HasTileSet() bool { return m.tileSet != "" }
func (m *MapScreen) Size() (uint32, uint32) { return m.grid.Size() }

// Sheet returns the sprite sheet shape as (tile_rows, tile_cols).
func (m *MapScreen) Sheet() (uint32, uint32) { return m.tileRows, m.tileCols }

func (m *MapScreen) Rename(name string) { m.name = name }

// SetTileSetPath points the map at another sprite sheet. Painted indices are
// kept as they are.
func (m *MapScreen) SetTileSetPath(path string) { m.tileSet = path }

func (m *MapScreen) SetSheetShape(rows, cols uint32) {
	m.tileRows = rows
	m.tileCols = cols
}

// PaintTile stores sprite index at c, replacing what was there.
func (m *MapScreen) PaintTile(c coords.TileCoords, sprite uint32, tag Tag) error {
	return m.grid.SetTile(Painted(sprite, c, tag))
}

// EraseTile resets c to blank.
func (m *MapScreen) EraseTile(c coords.TileCoords) error {
	return m.grid.Clear(c)
}

// SetTile stores d as is. It is used to restore earlier descriptors.
func (m *MapScreen) SetTile(d TileDescriptor) error {
	return m.grid.SetTile(d)
}

func (m *MapScreen) Tile(c coords.TileCoords) (TileDescriptor, error) {
	return m.grid.Tile(c.X, c.Y)
}

// Resize changes the grid size; see TileGrid.SetSize.
func (m *MapScreen) Resize(gridW, gridH uint32) error {
	return m.grid.SetSize(gridW, gridH)
}

func (m *MapScreen) Tiles() iter.Seq[TileDescriptor] { return m.grid.All() }

func (m *MapScreen) Painted() []TileDescriptor { return m.grid.Painted() }

// WallPositions projects every Wall tile to the screen at the layout's game
// depth.
func (m *MapScreen) WallPositions(l layout.Layout) []coords.ScreenPos {
	var out []coords.ScreenPos
	for t := range m.grid.All() {
		if t.Tag != TagWall {
			continue
		}
		out = append(out, l.TileToScreen(t.Coords, l.GameZ))
	}
	return out
}

// RenderProjection lists a placement for every tile with a sprite. It returns
// false, and no placements, when a coordinate does not fit in an int32.
func (m *MapScreen) RenderProjection(tileZ int32) ([]Placement, bool) {
	var out []Placement
	for t := range m.grid.All() {
		if !t.HasIndex {
			continue
		}
		off, ok := coords.Offset(t.Coords, tileZ)
		if !ok {
			return nil, false
		}
		out = append(out, Placement{Offset: off, Sprite: t.TileIndex})
	}
	return out, true
}

// Clone returns an independent copy with the same id.
func (m *MapScreen) Clone() *MapScreen {
	c := *m
	c.grid = m.grid.Clone()
	return &c
}
