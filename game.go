package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/lazycat/assets"
	"github.com/milk9111/lazycat/coords"
	"github.com/milk9111/lazycat/gameplay"
	"github.com/milk9111/lazycat/layout"
	"github.com/milk9111/lazycat/settings"
	"github.com/milk9111/lazycat/sprites"
)

var (
	backgroundColor = color.RGBA{R: 0x1c, G: 0x1a, B: 0x24, A: 0xff}
	headerColor     = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

type Game struct {
	frames int
	debug  bool

	loop    *gameplay.GameLoop
	cmds    gameplay.RenderCommands
	sheet   *sprites.Sheet
	hero    *ebiten.Image
	face    ebtext.Face
	watcher *settings.Watcher
}

func NewGame(loop *gameplay.GameLoop, watcher *settings.Watcher, debug bool) *Game {
	l := loop.Layout()
	heroImg, err := assets.LoadImage(assets.Hero)
	if err != nil {
		log.Fatalf("embed: load %s: %v", assets.Hero, err)
	}
	g := &Game{
		debug:   debug,
		loop:    loop,
		sheet:   sprites.Load(loop.Map(), int(l.TileW), int(l.TileH)),
		hero:    ebiten.NewImageFromImage(heroImg),
		face:    ebtext.NewGoXFace(basicfont.Face7x13),
		watcher: watcher,
	}
	g.cmds = loop.Update(gameplay.InputSnapshot{}, 0)
	return g
}

func readInput() gameplay.InputSnapshot {
	return gameplay.InputSnapshot{
		Left:  ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Up:    ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Down:  ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS),
	}
}

func (g *Game) Update() error {
	g.frames++
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	g.reloadSettings()

	g.cmds = g.loop.Update(readInput(), 1/float64(ebiten.TPS()))
	return nil
}

// reloadSettings rebuilds the layout when the settings file changed on disk.
// A broken file is logged and the current layout kept.
func (g *Game) reloadSettings() {
	if g.watcher == nil {
		return
	}
	path, ok := g.watcher.Poll()
	if !ok {
		return
	}
	f, err := settings.Load(path)
	if err != nil {
		log.Printf("settings reload: %v", err)
		return
	}
	l := layout.FromSettings(f, false)
	g.loop.SetLayout(l)
	g.sheet = sprites.Load(g.loop.Map(), int(l.TileW), int(l.TileH))
	ebiten.SetWindowSize(int(l.Viewport.W), int(l.Viewport.H))
	log.Printf("settings reloaded from %s", path)
}

func (g *Game) Draw(screen *ebiten.Image) {
	l := g.loop.Layout()
	screen.Fill(backgroundColor)

	for _, p := range g.cmds.Tiles {
		cell := g.sheet.Cell(p.Sprite)
		if cell == nil {
			continue
		}
		r := l.TileRect(coords.New(uint32(p.Offset.X), uint32(p.Offset.Y)))
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(g.cmds.Scale, g.cmds.Scale)
		op.GeoM.Translate(r.X, r.Y)
		screen.DrawImage(cell, op)
	}

	tile := l.ScaledTile()
	hx, hy := l.ToPixel(g.cmds.Hero)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.cmds.Scale, g.cmds.Scale)
	op.GeoM.Translate(hx-tile.W/2, hy-tile.H/2)
	screen.DrawImage(g.hero, op)

	vector.FillRect(screen, 0, 0, float32(l.Viewport.W), float32(l.TopMargin), headerColor, false)
	top := &ebtext.DrawOptions{}
	top.GeoM.Translate(8, (l.TopMargin-13)/2)
	top.ColorScale.ScaleWithColor(color.Black)
	ebtext.Draw(screen, g.cmds.HeaderText, g.face, top)

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  hero: %s", ebiten.ActualFPS(), g.cmds.HeroTile), 8, int(l.TopMargin)+4)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	l := g.loop.Layout()
	return int(l.Viewport.W), int(l.Viewport.H)
}
