package gameplay

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/lazycat/coords"
	"github.com/milk9111/lazycat/layout"
)

const collisionTypeWall cp.CollisionType = 1

// CollisionWorld holds one static box per wall tile. It is only queried,
// never stepped: hero movement is tile based.
type CollisionWorld struct {
	space *cp.Space
	walls int
}

// NewCollisionWorld builds wall boxes centred on the given screen positions,
// each one scaled tile in size.
func NewCollisionWorld(l layout.Layout, walls []coords.ScreenPos) *CollisionWorld {
	space := cp.NewSpace()
	cw := &CollisionWorld{space: space}
	tile := l.ScaledTile()
	for _, w := range walls {
		bb := cp.BB{
			L: w.X - tile.W/2,
			B: w.Y - tile.H/2,
			R: w.X + tile.W/2,
			T: w.Y + tile.H/2,
		}
		shape := cp.NewBox2(space.StaticBody, bb, 0)
		shape.SetCollisionType(collisionTypeWall)
		space.AddShape(shape)
		cw.walls++
	}
	return cw
}

// Blocked reports whether a sprite centred at p would sit inside a wall box.
func (cw *CollisionWorld) Blocked(p coords.ScreenPos) bool {
	if cw == nil || cw.space == nil || cw.walls == 0 {
		return false
	}
	info := cw.space.PointQueryNearest(cp.Vector{X: p.X, Y: p.Y}, 0, cp.SHAPE_FILTER_ALL)
	return info != nil && info.Shape != nil
}

// Walls is the number of wall boxes in the world.
func (cw *CollisionWorld) Walls() int {
	if cw == nil {
		return 0
	}
	return cw.walls
}
