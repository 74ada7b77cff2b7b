package editor

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/milk9111/lazycat/assets"
	"github.com/milk9111/lazycat/coords"
	"github.com/milk9111/lazycat/layout"
	"github.com/milk9111/lazycat/tilemap"
)

// ErrNoTileSet is reported when a new map is confirmed before a tile set was
// picked.
var ErrNoTileSet = errors.New("no tile set chosen")

// DefaultHistory is how many edits Undo can walk back.
const DefaultHistory = 256

// Indexer records saved maps somewhere searchable.
type Indexer interface {
	Put(m *tilemap.MapScreen, path string) error
}

// edit is the descriptor a paint replaced, kept for Undo.
type edit struct {
	prev tilemap.TileDescriptor
}

// Session is all editor state. UI code reads it to draw and calls its
// methods in response to input; nothing else holds editor state.
type Session struct {
	CurrentMap *tilemap.MapScreen
	// Path is where CurrentMap was last loaded from or saved to.
	Path   string
	Dialog FileDialogState

	SelectedTile *uint32
	SelectedTag  tilemap.Tag

	CursorTile coords.TileCoords
	HasCursor  bool

	Layout layout.Layout

	// Status is the last informational message, Err the last failure.
	Status string
	Err    error

	// HistoryLimit bounds Undo; zero means DefaultHistory.
	HistoryLimit int
	// OpenImage decodes tile set images; defaults to assets.Open.
	OpenImage func(path string) (image.Image, error)
	// Index, when set, is told about every successful save.
	Index Indexer

	picker  Picker
	history []edit
}

// NewSession starts with an unnamed blank map sized to the layout's grid and
// no tile set.
func NewSession(l layout.Layout, picker Picker) (*Session, error) {
	m, err := tilemap.NewMapScreen(l.GridW, l.GridH, "", "")
	if err != nil {
		return nil, fmt.Errorf("editor: new session: %w", err)
	}
	return &Session{
		CurrentMap: m,
		Layout:     l,
		OpenImage:  assets.Open,
		picker:     picker,
	}, nil
}

func (s *Session) fail(err error) {
	s.Err = err
	s.Status = ""
	log.Printf("editor: %v", err)
}

func (s *Session) ok(format string, args ...any) {
	s.Err = nil
	s.Status = fmt.Sprintf(format, args...)
}

// OpenNewMapDialog shows the new-map dialog with a clean slate.
func (s *Session) OpenNewMapDialog() {
	s.Dialog.Open = true
	s.Dialog.ChosenFile = ""
	s.Dialog.ErrorMessage = ""
}

func (s *Session) CloseNewMapDialog() {
	s.Dialog.Open = false
	s.Dialog.ErrorMessage = ""
}

// ConfirmNewMap replaces the current map with a blank one using the tile set
// chosen in the dialog. Without a chosen file the dialog stays open and shows
// ErrNoTileSet.
func (s *Session) ConfirmNewMap(name string) error {
	chosen := s.Dialog.ChosenFile
	if chosen == "" {
		s.Dialog.ErrorMessage = ErrNoTileSet.Error()
		return ErrNoTileSet
	}
	m, err := tilemap.NewMapScreen(s.Layout.GridW, s.Layout.GridH, name, chosen)
	if err != nil {
		s.fail(err)
		return err
	}
	if err := s.applySheet(m); err != nil {
		s.Dialog.ErrorMessage = err.Error()
		s.fail(err)
		return err
	}
	s.CurrentMap = m
	s.Path = ""
	s.history = nil
	s.SelectedTile = nil
	s.Dialog.Open = false
	s.Dialog.ChosenFile = ""
	s.Dialog.ErrorMessage = ""
	s.ok("created map %q (%s)", name, m.ID())
	return nil
}

// applySheet reads the tile set image and derives the sheet shape from it.
func (s *Session) applySheet(m *tilemap.MapScreen) error {
	open := s.OpenImage
	if open == nil {
		open = assets.Open
	}
	img, err := open(m.TileSet())
	if err != nil {
		return fmt.Errorf("editor: tile set: %w", err)
	}
	b := img.Bounds()
	rows, cols := tilemap.SheetShape(b.Dx(), b.Dy(), int(s.Layout.TileW), int(s.Layout.TileH))
	if rows == 0 || cols == 0 {
		return fmt.Errorf("editor: tile set %s is smaller than one %vx%v tile", m.TileSet(), s.Layout.TileW, s.Layout.TileH)
	}
	m.SetSheetShape(rows, cols)
	return nil
}

// SetTileSet points the current map at another sheet without touching its
// painted tiles.
func (s *Session) SetTileSet(path string) error {
	prevPath := s.CurrentMap.TileSet()
	prevRows, prevCols := s.CurrentMap.Sheet()
	s.CurrentMap.SetTileSetPath(path)
	if err := s.applySheet(s.CurrentMap); err != nil {
		s.CurrentMap.SetTileSetPath(prevPath)
		s.CurrentMap.SetSheetShape(prevRows, prevCols)
		s.fail(err)
		return err
	}
	s.ok("tile set %s", path)
	return nil
}

func (s *Session) Rename(name string) {
	s.CurrentMap.Rename(name)
}

// MoveCursor tracks the pointer, in window pixels from the top left.
func (s *Session) MoveCursor(px, py float64) {
	s.CursorTile, s.HasCursor = s.Layout.TopLeftToTile(px, py)
}

// SelectTile picks the palette entry painted by PaintAtCursor.
func (s *Session) SelectTile(index uint32) {
	s.SelectedTile = &index
}

func (s *Session) ClearSelection() {
	s.SelectedTile = nil
}

func (s *Session) SelectTag(tag tilemap.Tag) {
	s.SelectedTag = tag
}

// PaintAtCursor stores the selected sprite and tag under the cursor. Grid
// errors end up in Err and are returned; they are never retried.
func (s *Session) PaintAtCursor() error {
	if !s.HasCursor {
		return nil
	}
	if s.SelectedTile == nil {
		s.Status = "select a tile first"
		return nil
	}
	return s.apply(tilemap.Painted(*s.SelectedTile, s.CursorTile, s.SelectedTag))
}

// EraseAtCursor resets the tile under the cursor to blank.
func (s *Session) EraseAtCursor() error {
	if !s.HasCursor {
		return nil
	}
	return s.apply(tilemap.Blank(s.CursorTile))
}

// TagAtCursor sets the selected tag on the tile under the cursor and keeps
// its sprite.
func (s *Session) TagAtCursor() error {
	if !s.HasCursor {
		return nil
	}
	d, err := s.CurrentMap.Tile(s.CursorTile)
	if err != nil {
		s.fail(err)
		return err
	}
	d.Tag = s.SelectedTag
	return s.apply(d)
}

func (s *Session) apply(d tilemap.TileDescriptor) error {
	prev, err := s.CurrentMap.Tile(d.Coords)
	if err != nil {
		s.fail(err)
		return err
	}
	if prev == d {
		return nil
	}
	if err := s.CurrentMap.SetTile(d); err != nil {
		s.fail(err)
		return err
	}
	s.push(edit{prev: prev})
	s.Err = nil
	return nil
}

func (s *Session) push(e edit) {
	limit := s.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistory
	}
	s.history = append(s.history, e)
	if over := len(s.history) - limit; over > 0 {
		s.history = append(s.history[:0], s.history[over:]...)
	}
}

// CanUndo reports whether there is an edit to revert.
func (s *Session) CanUndo() bool {
	return len(s.history) > 0
}

// Undo restores the descriptor replaced by the latest edit.
func (s *Session) Undo() bool {
	if len(s.history) == 0 {
		return false
	}
	e := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	if err := s.CurrentMap.SetTile(e.prev); err != nil {
		s.fail(err)
		return false
	}
	s.ok("undo %s", e.prev.Coords)
	return true
}

// Save writes the current map and, when an Indexer is set, records it.
func (s *Session) Save(path string) error {
	if path == "" {
		path = s.Path
	}
	if path == "" {
		err := errors.New("editor: save: no path")
		s.fail(err)
		return err
	}
	if err := s.CurrentMap.Save(path); err != nil {
		s.fail(err)
		return err
	}
	s.Path = path
	if s.Index != nil {
		if err := s.Index.Put(s.CurrentMap, path); err != nil {
			log.Printf("editor: index %s: %v", path, err)
		}
	}
	s.ok("saved %s", path)
	return nil
}

// Load replaces the current map with the one at path. On failure the
// previous map stays.
func (s *Session) Load(path string) error {
	m, err := tilemap.Load(path)
	if err != nil {
		s.fail(err)
		return err
	}
	s.CurrentMap = m
	s.Path = path
	s.history = nil
	s.SelectedTile = nil
	s.ok("loaded %s", path)
	return nil
}

// ReloadLayout swaps in a layout computed from new settings. The cursor is
// recomputed on the next MoveCursor.
func (s *Session) ReloadLayout(l layout.Layout) {
	s.Layout = l
	s.HasCursor = false
}
