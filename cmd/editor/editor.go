package main

import (
	"context"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.design/x/clipboard"

	"github.com/milk9111/lazycat/editor"
	"github.com/milk9111/lazycat/layout"
	"github.com/milk9111/lazycat/settings"
	"github.com/milk9111/lazycat/sprites"
	"github.com/milk9111/lazycat/tilemap"
)

var (
	editorBackground = color.RGBA{60, 60, 70, 255}
	gridBackground   = color.RGBA{28, 26, 36, 255}
	gridLineColor    = color.RGBA{255, 255, 255, 24}
	hoverColor       = color.RGBA{255, 220, 0, 255}
	selectedColor    = color.RGBA{0, 200, 255, 255}
	tagColors        = map[tilemap.Tag]color.RGBA{
		tilemap.TagWall:  {200, 40, 40, 70},
		tilemap.TagDoor:  {200, 140, 20, 90},
		tilemap.TagItem:  {40, 200, 60, 90},
		tilemap.TagEnemy: {160, 40, 200, 90},
		tilemap.TagNPC:   {40, 120, 220, 90},
	}
)

// EditorGame hosts an editor.Session in an ebiten window.
type EditorGame struct {
	ctx     context.Context
	session *editor.Session
	ui      *EditorUI
	watcher *settings.Watcher

	sheet    *sprites.Sheet
	sheetKey string

	clipboard bool
}

func NewEditorGame(ctx context.Context, session *editor.Session, watcher *settings.Watcher) *EditorGame {
	g := &EditorGame{
		ctx:     ctx,
		session: session,
		watcher: watcher,
	}
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboard = true
	}
	g.rebuildUI()
	g.refreshSheet()
	return g
}

func (g *EditorGame) rebuildUI() {
	s := g.session
	g.ui = buildEditorUI(s.Layout, uiActions{
		NewMap:        s.OpenNewMapDialog,
		OpenMap:       func() { g.startPick(editor.PickOpenMap) },
		SaveMap:       g.save,
		Rename:        s.Rename,
		SelectTile:    s.SelectTile,
		SelectTag:     s.SelectTag,
		PickTileSet:   func() { g.startPick(editor.PickTileSet) },
		ConfirmNewMap: func(name string) { _ = s.ConfirmNewMap(name) },
		CancelNewMap:  g.cancelNewMap,
	})
	g.sheetKey = ""
}

func (g *EditorGame) cancelNewMap() {
	g.session.CancelPick()
	g.session.CloseNewMapDialog()
}

func (g *EditorGame) startPick(purpose editor.Purpose) {
	if err := g.session.StartPick(g.ctx, purpose); err != nil {
		g.session.Status = err.Error()
	}
}

// save writes to the current path, asking for one the first time.
func (g *EditorGame) save() {
	if g.session.Path == "" {
		g.startPick(editor.PickSaveMap)
		return
	}
	_ = g.session.Save("")
}

// refreshSheet reloads the tile set when the map or its tile set changed.
func (g *EditorGame) refreshSheet() {
	m := g.session.CurrentMap
	rows, cols := m.Sheet()
	key := fmt.Sprintf("%s|%s|%d|%d|%v", m.ID(), m.TileSet(), rows, cols, g.session.Layout.Inputs)
	if key == g.sheetKey {
		return
	}
	g.sheetKey = key
	l := g.session.Layout
	g.sheet = sprites.Load(m, int(l.TileW), int(l.TileH))
	g.ui.SetPalette(g.sheet)
}

// reloadSettings rebuilds layout and widgets when the settings file changed.
func (g *EditorGame) reloadSettings() {
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
	l := layout.FromSettings(f, true)
	g.session.ReloadLayout(l)
	g.rebuildUI()
	ebiten.SetWindowSize(int(l.Viewport.W), int(l.Viewport.H))
	log.Printf("settings reloaded from %s", path)
}

func (g *EditorGame) Update() error {
	s := g.session
	typing := g.ui.Typing()
	if !typing && inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}

	g.reloadSettings()
	s.Poll()
	g.refreshSheet()
	g.ui.Sync(s)
	g.ui.Update()

	if s.Dialog.Open {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.cancelNewMap()
		}
		return nil
	}

	x, y := ebiten.CursorPosition()
	s.MoveCursor(float64(x), float64(y))
	if s.HasCursor {
		switch {
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && s.SelectedTile != nil:
			_ = s.PaintAtCursor()
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
			_ = s.EraseAtCursor()
		case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle):
			_ = s.TagAtCursor()
		}
	}

	if typing {
		return nil
	}
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		if !s.Undo() {
			s.Status = "nothing to undo"
		}
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.save()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.startPick(editor.PickOpenMap)
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyN):
		s.OpenNewMapDialog()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyMapID()
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		_ = s.TagAtCursor()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.ClearSelection()
	}
	return nil
}

func (g *EditorGame) copyMapID() {
	if !g.clipboard {
		g.session.Status = "clipboard unavailable"
		return
	}
	id := g.session.CurrentMap.ID().String()
	clipboard.Write(clipboard.FmtText, []byte(id))
	g.session.Status = "copied map id " + id
}

func (g *EditorGame) Draw(screen *ebiten.Image) {
	s := g.session
	l := s.Layout
	screen.Fill(editorBackground)

	grid := l.GridRect()
	vector.FillRect(screen, float32(grid.X), float32(grid.Y), float32(grid.W), float32(grid.H), gridBackground, false)

	for _, d := range s.CurrentMap.Painted() {
		r := l.TileRect(d.Coords)
		if cell := g.sheet.Cell(d.TileIndex); d.HasIndex && cell != nil {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(l.Scale, l.Scale)
			op.GeoM.Translate(r.X, r.Y)
			screen.DrawImage(cell, op)
		}
		if c, ok := tagColors[d.Tag]; ok {
			vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
		}
	}

	tile := l.ScaledTile()
	for x := uint32(0); x <= l.GridW; x++ {
		px := float32(grid.X + float64(x)*tile.W)
		vector.StrokeLine(screen, px, float32(grid.Y), px, float32(grid.Y+grid.H), 1, gridLineColor, false)
	}
	for y := uint32(0); y <= l.GridH; y++ {
		py := float32(grid.Y + float64(y)*tile.H)
		vector.StrokeLine(screen, float32(grid.X), py, float32(grid.X+grid.W), py, 1, gridLineColor, false)
	}

	if s.HasCursor && !s.Dialog.Open {
		r := l.TileRect(s.CursorTile)
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, hoverColor, false)
	}

	g.ui.Draw(screen)

	if s.SelectedTile != nil && !s.Dialog.Open {
		if r, ok := g.ui.SelectedCellRect(*s.SelectedTile); ok {
			vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, selectedColor, false)
		}
	}
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	l := g.session.Layout
	return int(l.Viewport.W), int(l.Viewport.H)
}
