// Package sprites cuts tile set images into the cells a map's sprite indices
// refer to.
package sprites

import (
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/lazycat/assets"
	"github.com/milk9111/lazycat/tilemap"
)

// Sheet is a tile set image bound to the map whose indices address it.
type Sheet struct {
	img          *ebiten.Image
	tileW, tileH int
	across, down uint32
	screen       *tilemap.MapScreen
	cells        map[uint32]*ebiten.Image
}

// Load opens the map's tile set, falling back to the bundled sheet when the
// map names none or the file cannot be read.
func Load(m *tilemap.MapScreen, tileW, tileH int) *Sheet {
	var src image.Image
	var err error
	if m.HasTileSet() {
		src, err = assets.Open(m.TileSet())
		if err != nil {
			log.Printf("tile set %s: %v; using the bundled sheet", m.TileSet(), err)
		}
	}
	if src == nil {
		src, err = assets.LoadImage(assets.TileSheet)
		if err != nil {
			log.Fatalf("embed: load %s: %v", assets.TileSheet, err)
		}
	}
	b := src.Bounds()
	across, down := shape(m, b.Dx(), b.Dy(), tileW, tileH)
	return &Sheet{
		img:    ebiten.NewImageFromImage(src),
		tileW:  tileW,
		tileH:  tileH,
		across: across,
		down:   down,
		screen: m,
		cells:  map[uint32]*ebiten.Image{},
	}
}

// shape prefers the sheet shape stored in the map and measures the image
// when the map has none.
func shape(m *tilemap.MapScreen, imgW, imgH, tileW, tileH int) (across, down uint32) {
	if rows, cols := m.Sheet(); rows > 0 && cols > 0 {
		return rows, cols
	}
	return tilemap.SheetShape(imgW, imgH, tileW, tileH)
}

// TileSize is the unscaled size of one cell in pixels.
func (s *Sheet) TileSize() (int, int) { return s.tileW, s.tileH }

// Cols is the number of cells across the sheet.
func (s *Sheet) Cols() int { return int(s.across) }

// Count is the number of cells on the sheet.
func (s *Sheet) Count() uint32 { return s.across * s.down }

// Cell returns the sub image for sprite index, or nil when the index lies
// outside the sheet image.
func (s *Sheet) Cell(index uint32) *ebiten.Image {
	if c, ok := s.cells[index]; ok {
		return c
	}
	if s.across == 0 {
		return nil
	}
	row, col := s.screen.SpriteCell(index)
	if rows, _ := s.screen.Sheet(); rows == 0 {
		row, col = index/s.across, index%s.across
	}
	r := image.Rect(int(col)*s.tileW, int(row)*s.tileH, int(col+1)*s.tileW, int(row+1)*s.tileH)
	if !r.In(s.img.Bounds()) {
		s.cells[index] = nil
		return nil
	}
	c := s.img.SubImage(r).(*ebiten.Image)
	s.cells[index] = c
	return c
}
