package coords

import (
	"fmt"
	"math"
)

// MaxGridTiles bounds the width times height of any tile grid. Map files
// and settings declaring more are rejected before anything is allocated.
const MaxGridTiles = 1 << 20

// TileCoords addresses one cell of the world grid. The origin is the bottom
// left tile; both components are never negative.
type TileCoords struct {
	X uint32
	Y uint32
}

func New(x, y uint32) TileCoords {
	return TileCoords{X: x, Y: y}
}

func (c TileCoords) String() string {
	return fmt.Sprintf("%d, %d", c.X, c.Y)
}

// ScreenPos is a position in the engine frame: origin at the centre of the
// viewport, y growing upwards. Z is a draw-order hint and is never
// transformed.
type ScreenPos struct {
	X, Y, Z float64
}

func (p ScreenPos) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", p.X, p.Y, p.Z)
}

// GridOffset is an integer placement handed to the renderer.
type GridOffset struct {
	X, Y, Z int32
}

// Offset converts tile coordinates to a GridOffset at depth z. It reports
// false when a component does not fit in an int32.
func Offset(c TileCoords, z int32) (GridOffset, bool) {
	if c.X > math.MaxInt32 || c.Y > math.MaxInt32 {
		return GridOffset{}, false
	}
	return GridOffset{X: int32(c.X), Y: int32(c.Y), Z: z}, true
}
