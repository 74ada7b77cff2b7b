package layout

import (
	"math"

	"github.com/milk9111/lazycat/coords"
)

// snap absorbs float error when a position sits exactly on a tile origin
// (scales such as 1.3 do not produce exact tile sizes).
const snap = 1e-6

// Rect is a window-pixel rectangle, origin top left.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// TileToScreen converts tile coordinates (origin bottom left) to the screen
// position of the tile's centre.
func (l Layout) TileToScreen(c coords.TileCoords, z float64) coords.ScreenPos {
	tile := l.ScaledTile()
	return coords.ScreenPos{
		X: float64(c.X)*tile.W + l.Origin.X,
		Y: float64(c.Y)*tile.H + l.Origin.Y,
		Z: z,
	}
}

// ScreenToTile inverts TileToScreen. Positions below or left of tile (0,0)
// have no tile.
func (l Layout) ScreenToTile(p coords.ScreenPos) (coords.TileCoords, bool) {
	tile := l.ScaledTile()
	return toTile((p.X-l.Origin.X)/tile.W, (p.Y-l.Origin.Y)/tile.H)
}

// TopLeftToTile converts a pointer position (origin at the window's top left,
// y down) to the tile under it. Pointers over the editor panel, the header or
// past the grid's far edges have no tile.
func (l Layout) TopLeftToTile(px, py float64) (coords.TileCoords, bool) {
	tile := l.ScaledTile()
	x := px - l.SideMargin
	y := l.Viewport.H - py
	c, ok := toTile(x/tile.W, y/tile.H)
	if !ok || !l.InGrid(c) {
		return coords.TileCoords{}, false
	}
	return c, true
}

// InGrid reports whether c lies inside the configured grid.
func (l Layout) InGrid(c coords.TileCoords) bool {
	return c.X < l.GridW && c.Y < l.GridH
}

// ToPixel maps a screen position to window pixels, origin top left, y down.
// It agrees with TopLeftToTile: the centre of a tile lands inside the pixel
// rectangle TopLeftToTile resolves to that tile.
func (l Layout) ToPixel(p coords.ScreenPos) (float64, float64) {
	tile := l.ScaledTile()
	x := l.SideMargin + (p.X - l.Origin.X) + tile.W/2
	y := l.Viewport.H - (p.Y - l.Origin.Y) - tile.H/2
	return x, y
}

// TileRect is the window-pixel rectangle covered by tile c.
func (l Layout) TileRect(c coords.TileCoords) Rect {
	tile := l.ScaledTile()
	return Rect{
		X: l.SideMargin + float64(c.X)*tile.W,
		Y: l.Viewport.H - float64(c.Y+1)*tile.H,
		W: tile.W,
		H: tile.H,
	}
}

// GridRect is the window-pixel rectangle of the whole playable grid.
func (l Layout) GridRect() Rect {
	return Rect{X: l.SideMargin, Y: l.TopMargin, W: l.Area.W, H: l.Area.H}
}

// Clamp keeps a sprite centre within Bounds. Z is untouched.
func (l Layout) Clamp(p coords.ScreenPos) coords.ScreenPos {
	p.X = math.Min(math.Max(p.X, l.Bounds.MinX), l.Bounds.MaxX)
	p.Y = math.Min(math.Max(p.Y, l.Bounds.MinY), l.Bounds.MaxY)
	return p
}

func toTile(fx, fy float64) (coords.TileCoords, bool) {
	fx += snap
	fy += snap
	if math.IsNaN(fx) || math.IsNaN(fy) || fx < 0 || fy < 0 {
		return coords.TileCoords{}, false
	}
	fx, fy = math.Floor(fx), math.Floor(fy)
	if fx > math.MaxUint32 || fy > math.MaxUint32 {
		return coords.TileCoords{}, false
	}
	return coords.New(uint32(fx), uint32(fy)), true
}
