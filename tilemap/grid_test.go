package tilemap

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/lazycat/coords"
)

func TestNewTileGridPopulatesBlanks(t *testing.T) {
	g, err := NewTileGrid(3, 2)
	if err != nil {
		t.Fatalf("NewTileGrid: %v", err)
	}
	if g.Len() != 6 {
		t.Fatalf("expected 6 slots, got %d", g.Len())
	}
	for x := uint32(0); x < 3; x++ {
		for y := uint32(0); y < 2; y++ {
			d, err := g.Tile(x, y)
			if err != nil {
				t.Fatalf("Tile(%d, %d): %v", x, y, err)
			}
			if !d.IsBlank() || d.Coords != coords.New(x, y) {
				t.Fatalf("expected blank at %d, %d, got %s", x, y, d)
			}
		}
	}
}

func TestNewTileGridRejectsZeroSize(t *testing.T) {
	cases := []struct {
		name string
		x, y uint32
	}{
		{"zero_width", 0, 4},
		{"zero_height", 4, 0},
		{"both", 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewTileGrid(c.x, c.y); !errors.Is(err, ErrInitialization) {
				t.Fatalf("expected ErrInitialization, got %v", err)
			}
		})
	}
}

func TestSetTileBounds(t *testing.T) {
	cases := []struct {
		name string
		x, y uint32
		ok   bool
	}{
		{"origin", 0, 0, true},
		{"last_slot", 23, 17, true},
		{"x_at_max", 24, 0, false},
		{"y_at_max", 0, 18, false},
		{"far_out", 1000, 1000, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := NewTileGrid(24, 18)
			if err != nil {
				t.Fatalf("NewTileGrid: %v", err)
			}
			err = g.SetTile(Painted(7, coords.New(c.x, c.y), TagNone))
			if c.ok {
				if err != nil {
					t.Fatalf("SetTile: %v", err)
				}
				d, err := g.Tile(c.x, c.y)
				if err != nil || d.TileIndex != 7 || !d.HasIndex {
					t.Fatalf("expected sprite 7 back, got %s (%v)", d, err)
				}
				return
			}
			var oob *OutOfBoundsError
			if !errors.As(err, &oob) {
				t.Fatalf("expected *OutOfBoundsError, got %v", err)
			}
			if !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("expected errors.Is ErrOutOfBounds")
			}
			if oob.X != c.x || oob.Y != c.y || oob.MaxX != 24 || oob.MaxY != 18 {
				t.Fatalf("unexpected error fields %+v", oob)
			}
		})
	}
}

func TestOutOfBoundsMessage(t *testing.T) {
	g, _ := NewTileGrid(24, 18)
	_, err := g.Tile(30, 2)
	if err == nil {
		t.Fatalf("expected error")
	}
	if got, want := err.Error(), "index 30, 2 exceeds size 24, 18"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFromDescriptors(t *testing.T) {
	tiles := []TileDescriptor{
		Painted(1, coords.New(0, 0), TagNone),
		Painted(2, coords.New(1, 1), TagWall),
		Painted(3, coords.New(0, 0), TagDoor),
	}
	g, err := FromDescriptors(2, 2, tiles)
	if err != nil {
		t.Fatalf("FromDescriptors: %v", err)
	}
	d, _ := g.Tile(0, 0)
	if d.TileIndex != 3 || d.Tag != TagDoor {
		t.Fatalf("later descriptor should win, got %s", d)
	}
	if len(g.Painted()) != 2 {
		t.Fatalf("expected 2 painted, got %d", len(g.Painted()))
	}

	bad := append(tiles, Painted(4, coords.New(2, 0), TagNone))
	g, err = FromDescriptors(2, 2, bad)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected out of bounds, got %v", err)
	}
	if g != nil {
		t.Fatalf("no grid should be returned on failure")
	}
}

func TestSetSizeKeepsStoredTiles(t *testing.T) {
	g, _ := NewTileGrid(4, 4)
	if err := g.SetTile(Painted(9, coords.New(3, 3), TagWall)); err != nil {
		t.Fatalf("SetTile: %v", err)
	}
	if err := g.SetSize(2, 2); err != nil {
		t.Fatalf("SetSize: %v", err)
	}
	if _, err := g.Tile(3, 3); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected unreachable tile to be out of bounds, got %v", err)
	}
	if g.Len() != 4 {
		t.Fatalf("expected 4 reachable slots, got %d", g.Len())
	}
	if err := g.SetSize(5, 6); err != nil {
		t.Fatalf("SetSize: %v", err)
	}
	d, err := g.Tile(3, 3)
	if err != nil || d.TileIndex != 9 || d.Tag != TagWall {
		t.Fatalf("stored tile should survive shrink/grow, got %s (%v)", d, err)
	}
	d, err = g.Tile(4, 5)
	if err != nil || !d.IsBlank() {
		t.Fatalf("new slot should be blank, got %s (%v)", d, err)
	}
	if err := g.SetSize(0, 1); !errors.Is(err, ErrInitialization) {
		t.Fatalf("expected ErrInitialization, got %v", err)
	}
}

func TestGridSizeLimit(t *testing.T) {
	cases := []struct {
		name string
		x, y uint32
		ok   bool
	}{
		{"at_limit", coords.MaxGridTiles, 1, true},
		{"one_over", coords.MaxGridTiles + 1, 1, false},
		{"square_over", 1025, 1024, false},
		{"max_uint32", math.MaxUint32, math.MaxUint32, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewTileGrid(c.x, c.y)
			if c.ok && err != nil {
				t.Fatalf("NewTileGrid(%d, %d): %v", c.x, c.y, err)
			}
			if !c.ok && (!errors.Is(err, ErrGridTooLarge) || !errors.Is(err, ErrInitialization)) {
				t.Fatalf("expected ErrGridTooLarge, got %v", err)
			}
		})
	}

	g, _ := NewTileGrid(2, 2)
	if err := g.SetSize(math.MaxUint32, math.MaxUint32); !errors.Is(err, ErrGridTooLarge) {
		t.Fatalf("expected ErrGridTooLarge, got %v", err)
	}
	if w, h := g.Size(); w != 2 || h != 2 {
		t.Fatalf("failed SetSize must keep the old size, got %dx%d", w, h)
	}
}

func TestAllOrder(t *testing.T) {
	g, _ := NewTileGrid(3, 2)
	var got []coords.TileCoords
	for d := range g.All() {
		got = append(got, d.Coords)
	}
	want := []coords.TileCoords{
		{X: 0, Y: 0}, {X: 0, Y: 1},
		{X: 1, Y: 0}, {X: 1, Y: 1},
		{X: 2, Y: 0}, {X: 2, Y: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d tiles, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %s want %s", i, got[i], want[i])
		}
	}

	// a second pass restarts from the first slot
	for d := range g.All() {
		if d.Coords != want[0] {
			t.Fatalf("second iteration started at %s", d.Coords)
		}
		break
	}
}

func TestClearAndClone(t *testing.T) {
	g, _ := NewTileGrid(2, 2)
	c := coords.New(1, 0)
	_ = g.SetTile(Painted(5, c, TagItem))
	clone := g.Clone()
	if err := g.Clear(c); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	d, _ := g.Tile(1, 0)
	if !d.IsBlank() {
		t.Fatalf("expected blank after Clear, got %s", d)
	}
	d, _ = clone.Tile(1, 0)
	if d.TileIndex != 5 || d.Tag != TagItem {
		t.Fatalf("clone should be independent, got %s", d)
	}
}

func TestTagNames(t *testing.T) {
	for _, tag := range append([]Tag{TagNone}, Tags...) {
		got, err := ParseTag(tag.String())
		if err != nil || got != tag {
			t.Fatalf("ParseTag(%q) = %v, %v", tag.String(), got, err)
		}
	}
	if got, err := ParseTag("wall"); err != nil || got != TagWall {
		t.Fatalf("ParseTag should ignore case, got %v, %v", got, err)
	}
	if _, err := ParseTag("lava"); err == nil {
		t.Fatalf("expected error for unknown tag")
	}
}
