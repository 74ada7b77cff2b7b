package gameplay

import (
	"fmt"

	"github.com/milk9111/lazycat/coords"
	"github.com/milk9111/lazycat/layout"
	"github.com/milk9111/lazycat/tilemap"
)

// DefaultHeader is drawn in the header strip above the grid.
const DefaultHeader = "HARRY HAS NO HEALTH"

// RenderCommands is everything a host needs to draw one frame.
type RenderCommands struct {
	// Tiles is nil when the map could not be projected (see
	// MapScreen.RenderProjection).
	Tiles      []tilemap.Placement
	Hero       coords.ScreenPos
	HeroTile   coords.TileCoords
	HeaderText string
	Scale      float64
	// Moved is set on frames where the hero changed tile.
	Moved bool
}

// Option configures a GameLoop.
type Option func(*GameLoop)

// WithSpawn places the hero on tile c instead of (1, grid_h-2).
func WithSpawn(c coords.TileCoords) Option {
	return func(g *GameLoop) {
		g.spawn = c
		g.hasSpawn = true
	}
}

func WithHeader(text string) Option {
	return func(g *GameLoop) { g.header = text }
}

// GameLoop owns the layout, the current map and the hero. Hosts call Update
// once per frame.
type GameLoop struct {
	layout    layout.Layout
	screen    *tilemap.MapScreen
	collision *CollisionWorld
	timer     *MoveTimer

	placements []tilemap.Placement
	hero       coords.ScreenPos
	heroTile   coords.TileCoords

	spawn    coords.TileCoords
	hasSpawn bool
	header   string
}

func NewGameLoop(l layout.Layout, m *tilemap.MapScreen, opts ...Option) (*GameLoop, error) {
	if m == nil {
		return nil, fmt.Errorf("gameplay: no map")
	}
	g := &GameLoop{
		layout: l,
		screen: m,
		timer:  NewMoveTimer(l.InputDebounce),
		header: DefaultHeader,
	}
	for _, opt := range opts {
		opt(g)
	}
	if !g.hasSpawn {
		g.spawn = coords.New(1, 0)
		if l.GridH >= 2 {
			g.spawn.Y = l.GridH - 2
		}
	}
	if !l.InGrid(g.spawn) {
		return nil, fmt.Errorf("gameplay: spawn %s outside %dx%d grid", g.spawn, l.GridW, l.GridH)
	}
	g.rebuild()
	g.placeHero(g.spawn)
	return g, nil
}

func (g *GameLoop) rebuild() {
	g.collision = NewCollisionWorld(g.layout, g.screen.WallPositions(g.layout))
	g.placements, _ = g.screen.RenderProjection(int32(g.layout.TileZ))
	g.timer.Duration = g.layout.InputDebounce
}

func (g *GameLoop) placeHero(c coords.TileCoords) {
	g.heroTile = c
	g.hero = g.layout.Clamp(g.layout.TileToScreen(c, g.layout.GameZ))
}

// Update advances the loop by dt seconds. Movement happens at most once per
// debounce period; a step into a wall is dropped and any other step is held
// inside the playable bounds.
func (g *GameLoop) Update(in InputSnapshot, dt float64) RenderCommands {
	moved := false
	if g.timer.Tick(dt) {
		moved = g.step(in)
	}
	return RenderCommands{
		Tiles:      g.placements,
		Hero:       g.hero,
		HeroTile:   g.heroTile,
		HeaderText: g.header,
		Scale:      g.layout.Scale,
		Moved:      moved,
	}
}

func (g *GameLoop) step(in InputSnapshot) bool {
	dx, dy := in.Direction()
	if dx == 0 && dy == 0 {
		return false
	}
	tile := g.layout.ScaledTile()
	next := g.hero
	next.X += float64(dx) * tile.W
	next.Y += float64(dy) * tile.H
	if g.collision.Blocked(next) {
		return false
	}
	next = g.layout.Clamp(next)
	if next == g.hero {
		return false
	}
	g.hero = next
	if c, ok := g.layout.ScreenToTile(next); ok {
		g.heroTile = c
	}
	return true
}

// SetLayout swaps in a layout computed from new settings. Collision boxes
// and the hero's screen position are rebuilt; the hero keeps its tile when it
// still fits on the grid.
func (g *GameLoop) SetLayout(l layout.Layout) {
	g.layout = l
	g.rebuild()
	c := g.heroTile
	if !l.InGrid(c) {
		c = coords.New(min(c.X, l.GridW-1), min(c.Y, l.GridH-1))
	}
	g.placeHero(c)
}

// SetMap replaces the current map and puts the hero back on its spawn tile.
func (g *GameLoop) SetMap(m *tilemap.MapScreen) {
	if m == nil {
		return
	}
	g.screen = m
	g.rebuild()
	g.timer.Reset()
	g.placeHero(g.spawn)
}

func (g *GameLoop) Layout() layout.Layout { return g.layout }
func (g *GameLoop) Map() *tilemap.MapScreen { return g.screen }
func (g *GameLoop) Hero() coords.ScreenPos { return g.hero }
func (g *GameLoop) HeroTile() coords.TileCoords { return g.heroTile }
func (g *GameLoop) Collision() *CollisionWorld { return g.collision }
