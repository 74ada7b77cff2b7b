// Package preview renders a map to a flat image, for thumbnails and for
// checking a level without opening the game.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"

	"github.com/milk9111/lazycat/coords"
	"github.com/milk9111/lazycat/layout"
	"github.com/milk9111/lazycat/tilemap"
)

// Options control how Render draws.
type Options struct {
	// Scale multiplies the tile size; zero means 1.
	Scale float64
	// Width resizes the finished image to this many pixels across, keeping
	// the aspect ratio. Zero keeps the rendered size.
	Width uint

	Background color.Color
	Grid       bool
	Tags       bool
}

// TagColors tint tagged tiles when Options.Tags is set.
var TagColors = map[tilemap.Tag]color.NRGBA{
	tilemap.TagWall:  {200, 40, 40, 90},
	tilemap.TagDoor:  {200, 140, 20, 110},
	tilemap.TagItem:  {40, 200, 60, 110},
	tilemap.TagEnemy: {160, 40, 200, 110},
	tilemap.TagNPC:   {40, 120, 220, 110},
}

// Render draws every painted tile of m using cells cut from sheet. Tile
// (0,0) is the bottom-left corner of the image, as in the game.
func Render(m *tilemap.MapScreen, sheet image.Image, tileW, tileH int, opts Options) (image.Image, error) {
	if tileW <= 0 || tileH <= 0 {
		return nil, errors.New("preview: tile size must be positive")
	}
	if sheet == nil {
		return nil, errors.New("preview: no sprite sheet")
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	gridW, gridH := m.Size()
	l := layout.Compute(layout.Inputs{
		Scale: scale,
		GridW: gridW,
		GridH: gridH,
		TileW: float64(tileW),
		TileH: float64(tileH),
	})

	w, h := int(l.Area.W), int(l.Area.H)
	dc := gg.NewContext(w, h)
	if opts.Background != nil {
		dc.SetColor(opts.Background)
		dc.Clear()
	}

	cells := newCutter(m, sheet, tileW, tileH, scale)
	tile := l.ScaledTile()
	for _, d := range m.Painted() {
		r := rectFor(l, d.Coords)
		if d.HasIndex {
			if cell := cells.cell(d.TileIndex); cell != nil {
				dc.DrawImage(cell, int(r.X), int(r.Y))
			}
		}
		if c, ok := TagColors[d.Tag]; opts.Tags && ok {
			dc.SetColor(c)
			dc.DrawRectangle(r.X, r.Y, r.W, r.H)
			dc.Fill()
		}
	}

	if opts.Grid {
		dc.SetRGBA(1, 1, 1, 0.15)
		dc.SetLineWidth(1)
		for x := uint32(0); x <= gridW; x++ {
			px := float64(x) * tile.W
			dc.DrawLine(px, 0, px, float64(h))
		}
		for y := uint32(0); y <= gridH; y++ {
			py := float64(y) * tile.H
			dc.DrawLine(0, py, float64(w), py)
		}
		dc.Stroke()
	}

	img := dc.Image()
	if opts.Width > 0 && int(opts.Width) != w {
		img = resize.Resize(opts.Width, 0, img, resize.Lanczos3)
	}
	return img, nil
}

// rectFor is the tile rectangle with the header and side panel removed.
func rectFor(l layout.Layout, c coords.TileCoords) layout.Rect {
	r := l.TileRect(c)
	r.X -= l.SideMargin
	r.Y -= l.TopMargin
	return r
}

// cutter cuts and scales sheet cells once per sprite index.
type cutter struct {
	m            *tilemap.MapScreen
	sheet        image.Image
	tileW, tileH int
	scale        float64
	cells        map[uint32]image.Image
}

func newCutter(m *tilemap.MapScreen, sheet image.Image, tileW, tileH int, scale float64) *cutter {
	return &cutter{m: m, sheet: sheet, tileW: tileW, tileH: tileH, scale: scale, cells: map[uint32]image.Image{}}
}

func (c *cutter) cell(index uint32) image.Image {
	if img, ok := c.cells[index]; ok {
		return img
	}
	row, col := c.m.SpriteCell(index)
	b := c.sheet.Bounds()
	r := image.Rect(int(col)*c.tileW, int(row)*c.tileH, int(col+1)*c.tileW, int(row+1)*c.tileH).Add(b.Min)
	if !r.In(b) {
		c.cells[index] = nil
		return nil
	}
	img := cutOut(c.sheet, r)
	if c.scale != 1 {
		img = resize.Resize(uint(float64(c.tileW)*c.scale), uint(float64(c.tileH)*c.scale), img, resize.NearestNeighbor)
	}
	c.cells[index] = img
	return img
}

// cutOut copies the rectangle r of in to a new image at the origin.
func cutOut(in image.Image, r image.Rectangle) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for dx := r.Min.X; dx < r.Max.X; dx++ {
		for dy := r.Min.Y; dy < r.Max.Y; dy++ {
			out.Set(dx-r.Min.X, dy-r.Min.Y, in.At(dx, dy))
		}
	}
	return out
}

// Save writes img as a PNG, creating parent directories.
func Save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("preview: save %s: %w", path, err)
	}
	return nil
}
