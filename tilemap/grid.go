package tilemap

import (
	"fmt"
	"iter"

	"github.com/milk9111/lazycat/coords"
)

// TileGrid maps every coordinate below (maxX, maxY) to a descriptor. Slots
// start out blank. Shrinking the grid keeps the descriptors that fall outside
// the new size; they are unreachable until the grid grows again.
type TileGrid struct {
	data map[coords.TileCoords]TileDescriptor
	maxX uint32
	maxY uint32
}

// checkSize rejects empty grids and grids above coords.MaxGridTiles.
func checkSize(maxX, maxY uint32) error {
	if maxX == 0 || maxY == 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInitialization, maxX, maxY)
	}
	if uint64(maxX)*uint64(maxY) > coords.MaxGridTiles {
		return fmt.Errorf("%w: %w: size %dx%d exceeds %d tiles", ErrInitialization, ErrGridTooLarge, maxX, maxY, coords.MaxGridTiles)
	}
	return nil
}

func NewTileGrid(maxX, maxY uint32) (*TileGrid, error) {
	if err := checkSize(maxX, maxY); err != nil {
		return nil, err
	}
	g := &TileGrid{
		data: make(map[coords.TileCoords]TileDescriptor, int(maxX)*int(maxY)),
		maxX: maxX,
		maxY: maxY,
	}
	g.populate()
	return g, nil
}

// FromDescriptors builds a grid and applies tiles in order; a later entry for
// the same coordinate replaces an earlier one. The first out-of-bounds entry
// fails the whole call and no grid is returned.
func FromDescriptors(maxX, maxY uint32, tiles []TileDescriptor) (*TileGrid, error) {
	g, err := NewTileGrid(maxX, maxY)
	if err != nil {
		return nil, err
	}
	for _, t := range tiles {
		if err := g.SetTile(t); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// populate fills every reachable slot that was never stored with a blank.
func (g *TileGrid) populate() {
	for x := uint32(0); x < g.maxX; x++ {
		for y := uint32(0); y < g.maxY; y++ {
			c := coords.New(x, y)
			if _, ok := g.data[c]; !ok {
				g.data[c] = Blank(c)
			}
		}
	}
}

func (g *TileGrid) inBounds(x, y uint32) bool {
	return x < g.maxX && y < g.maxY
}

func (g *TileGrid) SetTile(t TileDescriptor) error {
	if !g.inBounds(t.Coords.X, t.Coords.Y) {
		return &OutOfBoundsError{X: t.Coords.X, Y: t.Coords.Y, MaxX: g.maxX, MaxY: g.maxY}
	}
	g.data[t.Coords] = t
	return nil
}

// Tile returns the descriptor at (x, y).
func (g *TileGrid) Tile(x, y uint32) (TileDescriptor, error) {
	if !g.inBounds(x, y) {
		return TileDescriptor{}, &OutOfBoundsError{X: x, Y: y, MaxX: g.maxX, MaxY: g.maxY}
	}
	t, ok := g.data[coords.New(x, y)]
	if !ok {
		return TileDescriptor{}, &NotFoundError{X: x, Y: y}
	}
	return t, nil
}

// Clear resets the slot at c to blank.
func (g *TileGrid) Clear(c coords.TileCoords) error {
	return g.SetTile(Blank(c))
}

// SetSize changes the declared bounds without moving stored descriptors.
// Slots that become reachable and were never stored are filled with blanks.
func (g *TileGrid) SetSize(maxX, maxY uint32) error {
	if err := checkSize(maxX, maxY); err != nil {
		return err
	}
	g.maxX = maxX
	g.maxY = maxY
	g.populate()
	return nil
}

func (g *TileGrid) Size() (uint32, uint32) {
	return g.maxX, g.maxY
}

// Len is the number of reachable slots.
func (g *TileGrid) Len() int {
	return int(g.maxX) * int(g.maxY)
}

// All yields every reachable descriptor, x ascending and, within a column,
// y ascending. Each call starts from (0, 0).
func (g *TileGrid) All() iter.Seq[TileDescriptor] {
	return func(yield func(TileDescriptor) bool) {
		for x := uint32(0); x < g.maxX; x++ {
			for y := uint32(0); y < g.maxY; y++ {
				t, ok := g.data[coords.New(x, y)]
				if !ok {
					continue
				}
				if !yield(t) {
					return
				}
			}
		}
	}
}

// Painted returns the non-blank descriptors in All order.
func (g *TileGrid) Painted() []TileDescriptor {
	var out []TileDescriptor
	for t := range g.All() {
		if !t.IsBlank() {
			out = append(out, t)
		}
	}
	return out
}

func (g *TileGrid) Clone() *TileGrid {
	data := make(map[coords.TileCoords]TileDescriptor, len(g.data))
	for k, v := range g.data {
		data[k] = v
	}
	return &TileGrid{data: data, maxX: g.maxX, maxY: g.maxY}
}
