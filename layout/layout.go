package layout

import (
	"math"

	"github.com/milk9111/lazycat/settings"
)

// Inputs are the declarative values a Layout is derived from.
type Inputs struct {
	Scale  float64
	GridW  uint32
	GridH  uint32
	TileW  float64
	TileH  float64
	Editor bool
}

type Size struct {
	W, H float64
}

type Point struct {
	X, Y float64
}

// Bounds are the min/max screen positions a sprite centre may take while the
// whole sprite stays inside the playable area.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Layout is the pixel-space geometry of the game or editor window. It is
// never modified after Compute; a settings change means computing a new one.
type Layout struct {
	Inputs

	// Area is the pixel size of the playable grid.
	Area Size
	// TopMargin is the header height above the grid.
	TopMargin float64
	// SideMargin is the editor panel width left of the grid, zero in the game.
	SideMargin float64
	Viewport   Size
	// Origin is the screen position of tile (0,0)'s centre.
	Origin Point
	Bounds Bounds

	TileZ         float64
	GameZ         float64
	InputDebounce float64
}

// Compute derives the layout. Inputs are expected to be validated already:
// scale and tile sizes positive, grid at least one tile.
func Compute(in Inputs) Layout {
	tileW := in.TileW * in.Scale
	tileH := in.TileH * in.Scale

	area := Size{W: float64(in.GridW) * tileW, H: float64(in.GridH) * tileH}
	top := math.Floor(area.H / 5)
	var side float64
	if in.Editor {
		side = math.Floor(area.W / 2)
	}

	// centre the grid horizontally, push it below the header, then move it
	// right of the editor panel
	origin := Point{
		X: math.Floor(-area.W/2+tileW/2) - side,
		Y: math.Floor(-area.H/2 + tileH/2 - top/2),
	}

	return Layout{
		Inputs:     in,
		Area:       area,
		TopMargin:  top,
		SideMargin: side,
		Viewport:   Size{W: side + area.W, H: top + area.H},
		Origin:     origin,
		Bounds: Bounds{
			MinX: origin.X,
			MaxX: origin.X + area.W - tileW,
			MinY: origin.Y,
			MaxY: origin.Y + area.H - tileH,
		},
	}
}

// FromSettings computes the layout for a settings file, truncating the grid
// extents, and carries the depth and debounce values along.
func FromSettings(f settings.File, editor bool) Layout {
	l := Compute(Inputs{
		Scale:  f.Scale,
		GridW:  f.GridWidth(),
		GridH:  f.GridHeight(),
		TileW:  f.TileWidth,
		TileH:  f.TileHeight,
		Editor: editor,
	})
	l.TileZ = f.TileZ
	l.GameZ = f.GameZ
	l.InputDebounce = f.InputDebounce
	return l
}

// ScaledTile is the on-screen size of one tile.
func (l Layout) ScaledTile() Size {
	return Size{W: l.TileW * l.Scale, H: l.TileH * l.Scale}
}
