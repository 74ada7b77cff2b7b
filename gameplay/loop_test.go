package gameplay

import (
	"testing"

	"github.com/milk9111/lazycat/coords"
	"github.com/milk9111/lazycat/layout"
	"github.com/milk9111/lazycat/settings"
	"github.com/milk9111/lazycat/tilemap"
)

// one period of the default input debounce, with room to spare
const frame = 0.05

func testLoop(t *testing.T, walls ...coords.TileCoords) *GameLoop {
	t.Helper()
	m, err := tilemap.NewMapScreen(24, 18, "test", "tiles.png")
	if err != nil {
		t.Fatalf("NewMapScreen: %v", err)
	}
	for _, w := range walls {
		if err := m.PaintTile(w, 1, tilemap.TagWall); err != nil {
			t.Fatalf("PaintTile: %v", err)
		}
	}
	g, err := NewGameLoop(layout.FromSettings(settings.Default(), false), m)
	if err != nil {
		t.Fatalf("NewGameLoop: %v", err)
	}
	return g
}

func TestSpawn(t *testing.T) {
	g := testLoop(t)
	if g.HeroTile() != coords.New(1, 16) {
		t.Fatalf("expected spawn at 1, 16, got %s", g.HeroTile())
	}
	want := coords.ScreenPos{X: 16 - 184, Y: 16*16 - 165, Z: 1}
	if g.Hero() != want {
		t.Fatalf("expected hero at %s, got %s", want, g.Hero())
	}

	_, err := NewGameLoop(layout.FromSettings(settings.Default(), false), g.Map(), WithSpawn(coords.New(24, 0)))
	if err == nil {
		t.Fatalf("expected error for an off-grid spawn")
	}
	if _, err := NewGameLoop(g.Layout(), nil); err == nil {
		t.Fatalf("expected error without a map")
	}
}

func TestMovement(t *testing.T) {
	cases := []struct {
		name  string
		walls []coords.TileCoords
		input InputSnapshot
		steps int
		want  coords.TileCoords
	}{
		{"right", nil, InputSnapshot{Right: true}, 2, coords.New(3, 16)},
		{"down", nil, InputSnapshot{Down: true}, 3, coords.New(1, 13)},
		{"blocked_by_wall", []coords.TileCoords{coords.New(2, 16)}, InputSnapshot{Right: true}, 3, coords.New(1, 16)},
		{"clamped_left", nil, InputSnapshot{Left: true}, 4, coords.New(0, 16)},
		{"clamped_top", nil, InputSnapshot{Up: true}, 4, coords.New(1, 17)},
		{"down_beats_up", nil, InputSnapshot{Up: true, Down: true}, 1, coords.New(1, 15)},
		{"vertical_beats_horizontal", nil, InputSnapshot{Left: true, Right: true, Up: true}, 1, coords.New(1, 17)},
		{"idle", nil, InputSnapshot{}, 3, coords.New(1, 16)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := testLoop(t, c.walls...)
			for i := 0; i < c.steps; i++ {
				g.Update(c.input, frame)
			}
			if g.HeroTile() != c.want {
				t.Fatalf("expected hero at %s, got %s", c.want, g.HeroTile())
			}
			l := g.Layout()
			if g.Hero() != l.TileToScreen(c.want, l.GameZ) {
				t.Fatalf("hero position %s does not match tile %s", g.Hero(), c.want)
			}
		})
	}
}

func TestDebounce(t *testing.T) {
	g := testLoop(t)
	in := InputSnapshot{Right: true}

	cmds := g.Update(in, 0.01)
	if cmds.Moved || g.HeroTile() != coords.New(1, 16) {
		t.Fatalf("hero moved before the debounce period elapsed")
	}
	cmds = g.Update(in, frame)
	if !cmds.Moved || cmds.HeroTile != coords.New(2, 16) {
		t.Fatalf("expected a move once the period elapsed, got %+v", cmds.HeroTile)
	}
	// a long stall still moves only one tile
	g.Update(in, 1)
	if g.HeroTile() != coords.New(3, 16) {
		t.Fatalf("expected a single step after a long frame, got %s", g.HeroTile())
	}
}

func TestRenderCommands(t *testing.T) {
	g := testLoop(t, coords.New(0, 0), coords.New(5, 5))
	cmds := g.Update(InputSnapshot{}, 0)
	if len(cmds.Tiles) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(cmds.Tiles))
	}
	if cmds.HeaderText != DefaultHeader {
		t.Fatalf("unexpected header %q", cmds.HeaderText)
	}
	if cmds.Scale != 1 {
		t.Fatalf("expected scale 1, got %v", cmds.Scale)
	}
	if g.Collision().Walls() != 2 {
		t.Fatalf("expected 2 wall boxes, got %d", g.Collision().Walls())
	}
}

func TestSetLayoutRebuilds(t *testing.T) {
	g := testLoop(t, coords.New(2, 16))
	f := settings.Default()
	f.Scale = 2
	g.SetLayout(layout.FromSettings(f, false))

	l := g.Layout()
	if g.Hero() != l.TileToScreen(coords.New(1, 16), l.GameZ) {
		t.Fatalf("hero should keep its tile across a layout change")
	}
	g.Update(InputSnapshot{Right: true}, frame)
	if g.HeroTile() != coords.New(1, 16) {
		t.Fatalf("wall should still block after rebuild, hero at %s", g.HeroTile())
	}

	f = settings.Default()
	f.XMax, f.YMax = 10, 10
	g.SetLayout(layout.FromSettings(f, false))
	if g.HeroTile() != coords.New(1, 9) {
		t.Fatalf("hero should be pulled onto the smaller grid, got %s", g.HeroTile())
	}
}

func TestSetMap(t *testing.T) {
	g := testLoop(t)
	g.Update(InputSnapshot{Right: true}, frame)

	m, err := tilemap.NewMapScreen(24, 18, "other", "")
	if err != nil {
		t.Fatalf("NewMapScreen: %v", err)
	}
	g.SetMap(m)
	if g.Map() != m || g.HeroTile() != coords.New(1, 16) {
		t.Fatalf("SetMap should reset the hero to the spawn tile")
	}
}

func TestMoveTimer(t *testing.T) {
	timer := NewMoveTimer(0.1)
	if timer.Tick(0.05) {
		t.Fatalf("fired early")
	}
	if !timer.Tick(0.06) {
		t.Fatalf("expected fire after the period")
	}
	if timer.Tick(-1) {
		t.Fatalf("negative dt should not fire")
	}
	timer.Reset()
	if timer.Tick(0.09) {
		t.Fatalf("Reset should clear elapsed time")
	}
	if !NewMoveTimer(0).Tick(0) {
		t.Fatalf("zero duration should fire every frame")
	}
}

func TestCollisionWorld(t *testing.T) {
	l := layout.FromSettings(settings.Default(), false)
	walls := []coords.ScreenPos{l.TileToScreen(coords.New(3, 3), 1)}
	cw := NewCollisionWorld(l, walls)

	if !cw.Blocked(l.TileToScreen(coords.New(3, 3), 1)) {
		t.Fatalf("wall tile centre should be blocked")
	}
	if cw.Blocked(l.TileToScreen(coords.New(4, 3), 1)) {
		t.Fatalf("neighbouring tile should be free")
	}
	var empty *CollisionWorld
	if empty.Blocked(coords.ScreenPos{}) || empty.Walls() != 0 {
		t.Fatalf("nil world should block nothing")
	}
}
