package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/milk9111/lazycat/assets"
	"github.com/milk9111/lazycat/catalog"
	"github.com/milk9111/lazycat/coords"
	"github.com/milk9111/lazycat/layout"
	"github.com/milk9111/lazycat/preview"
	"github.com/milk9111/lazycat/settings"
	"github.com/milk9111/lazycat/tilemap"
)

// stdout is swapped by tests.
var stdout io.Writer = os.Stdout

// Globals are flags shared by every command.
type Globals struct {
	Config string `name:"settings" short:"s" help:"settings file (default $CONFIG_FILE, then settings.yaml)"`
	DB     string `help:"map catalog database" default:"~/.lazycat/catalog.sqlite"`
}

// settings loads the settings file. With no explicit path and no file in
// the default place the built in defaults are used.
func (g *Globals) settings() (settings.File, error) {
	explicit := g.Config != "" || os.Getenv(settings.EnvConfigFile) != ""
	f, err := settings.Load(settings.ResolvePath(g.Config))
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return settings.Default(), nil
	}
	return f, err
}

func (g *Globals) catalog() (*catalog.Catalog, error) {
	if g.DB != ":memory:" {
		if err := ensureDir(g.DB); err != nil {
			return nil, err
		}
	}
	return catalog.Open(g.DB)
}

type newCmd struct {
	Path    string `arg help:"map file to create"`
	Name    string `short:"n" help:"map name"`
	TileSet string `short:"t" help:"sprite sheet image the map paints from"`
	Width   uint32 `help:"grid width in tiles (default from settings)"`
	Height  uint32 `help:"grid height in tiles (default from settings)"`
	Force   bool   `short:"f" help:"overwrite an existing file"`
}

func (c *newCmd) Run(g *Globals) error {
	if !c.Force && fileExists(c.Path) {
		return fmt.Errorf("%s exists, use --force to overwrite", c.Path)
	}
	f, err := g.settings()
	if err != nil {
		return err
	}
	w, h := c.Width, c.Height
	if w == 0 {
		w = f.GridWidth()
	}
	if h == 0 {
		h = f.GridHeight()
	}
	m, err := tilemap.NewMapScreen(w, h, c.Name, c.TileSet)
	if err != nil {
		return err
	}
	if c.TileSet != "" {
		img, err := assets.Open(c.TileSet)
		if err != nil {
			return fmt.Errorf("tile set: %w", err)
		}
		b := img.Bounds()
		rows, cols := tilemap.SheetShape(b.Dx(), b.Dy(), int(f.TileWidth), int(f.TileHeight))
		if rows == 0 {
			return fmt.Errorf("tile set %s is smaller than one %vx%v tile", c.TileSet, f.TileWidth, f.TileHeight)
		}
		m.SetSheetShape(rows, cols)
	}
	if err := m.Save(c.Path); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s %s\n", m.ID(), c.Path)
	return nil
}

type infoCmd struct {
	Paths []string `arg help:"map files"`
}

func (c *infoCmd) Run(g *Globals) error {
	for i, path := range c.Paths {
		m, err := tilemap.Load(path)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		e := catalog.NewEntry(m, path)
		rows, cols := m.Sheet()
		tags := map[tilemap.Tag]int{}
		for _, d := range m.Painted() {
			tags[d.Tag]++
		}

		tw := tabwriter.NewWriter(stdout, 0, 4, 1, ' ', 0)
		fmt.Fprintf(tw, "path:\t%s\n", path)
		fmt.Fprintf(tw, "name:\t%s\n", e.Name)
		fmt.Fprintf(tw, "id:\t%s\n", e.ID)
		fmt.Fprintf(tw, "tile set:\t%s\n", e.TileSet)
		fmt.Fprintf(tw, "size:\t%dx%d\n", e.Width, e.Height)
		fmt.Fprintf(tw, "sheet:\t%dx%d\n", rows, cols)
		fmt.Fprintf(tw, "painted:\t%d\n", e.Painted)
		for _, tag := range tilemap.Tags {
			if n := tags[tag]; n > 0 {
				fmt.Fprintf(tw, "%s:\t%d\n", strings.ToLower(tag.String()), n)
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

type paintCmd struct {
	Path  string `arg help:"map file"`
	X     uint32 `arg help:"tile column"`
	Y     uint32 `arg help:"tile row, 0 is the bottom"`
	Index int64  `short:"i" default:"-1" help:"sprite index to paint, -1 keeps the current one"`
	Tag   string `short:"t" help:"tag to set (None, Wall, Door, Item, Enemy, NPC)"`
	Erase bool   `short:"e" help:"reset the tile to blank"`
}

func (c *paintCmd) Run(g *Globals) error {
	m, err := tilemap.Load(c.Path)
	if err != nil {
		return err
	}
	at := coords.New(c.X, c.Y)
	d, err := m.Tile(at)
	if err != nil {
		return err
	}
	switch {
	case c.Erase:
		d = tilemap.Blank(at)
	default:
		if c.Index >= 0 {
			d.TileIndex = uint32(c.Index)
			d.HasIndex = true
		}
		if c.Tag != "" {
			tag, err := tilemap.ParseTag(c.Tag)
			if err != nil {
				return err
			}
			d.Tag = tag
		}
	}
	if err := m.SetTile(d); err != nil {
		return err
	}
	if err := m.Save(c.Path); err != nil {
		return err
	}
	fmt.Fprintln(stdout, d)
	return nil
}

type convertCmd struct {
	In  string `arg help:"map file to read"`
	Out string `arg help:"map file to write, format from its extension"`
}

func (c *convertCmd) Run(g *Globals) error {
	m, err := tilemap.Load(c.In)
	if err != nil {
		return err
	}
	if err := m.Save(c.Out); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s\n", c.Out)
	return nil
}

type resizeCmd struct {
	Path   string `arg help:"map file"`
	Width  uint32 `arg help:"new grid width in tiles"`
	Height uint32 `arg help:"new grid height in tiles"`
}

func (c *resizeCmd) Run(g *Globals) error {
	m, err := tilemap.Load(c.Path)
	if err != nil {
		return err
	}
	before := len(m.Painted())
	if err := m.Resize(c.Width, c.Height); err != nil {
		return err
	}
	// painted tiles outside the new size are not written back
	dropped := before - len(m.Painted())
	if err := m.Save(c.Path); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s: %dx%d, dropped %d painted tiles\n", c.Path, c.Width, c.Height, dropped)
	return nil
}

type renderCmd struct {
	Path   string  `arg help:"map file"`
	Output string  `short:"o" help:"png to write (default map path with .png)"`
	Sheet  string  `help:"sprite sheet to use instead of the map's own"`
	Scale  float64 `default:"1" help:"tile scale"`
	Width  uint    `help:"resize the result to this width in px"`
	Grid   bool    `help:"draw grid lines"`
	Tags   bool    `help:"tint tagged tiles"`
}

func (c *renderCmd) Run(g *Globals) error {
	f, err := g.settings()
	if err != nil {
		return err
	}
	m, err := tilemap.Load(c.Path)
	if err != nil {
		return err
	}
	sheetPath := c.Sheet
	if sheetPath == "" {
		sheetPath = m.TileSet()
	}
	if sheetPath == "" {
		sheetPath = assets.TileSheet
	}
	sheet, err := assets.Open(sheetPath)
	if err != nil {
		return fmt.Errorf("tile set: %w", err)
	}

	img, err := preview.Render(m, sheet, int(f.TileWidth), int(f.TileHeight), preview.Options{
		Scale: c.Scale,
		Width: c.Width,
		Grid:  c.Grid,
		Tags:  c.Tags,
	})
	if err != nil {
		return err
	}
	out := c.Output
	if out == "" {
		out = strings.TrimSuffix(c.Path, extOf(c.Path)) + ".png"
	}
	if err := preview.Save(out, img); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s\n", out)
	return nil
}

type layoutCmd struct {
	Editor bool `help:"include the editor side panel"`
}

func (c *layoutCmd) Run(g *Globals) error {
	f, err := g.settings()
	if err != nil {
		return err
	}
	l := layout.FromSettings(f, c.Editor)
	tile := l.ScaledTile()

	tw := tabwriter.NewWriter(stdout, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "grid:\t%dx%d\n", l.GridW, l.GridH)
	fmt.Fprintf(tw, "tile:\t%vx%v\n", tile.W, tile.H)
	fmt.Fprintf(tw, "area:\t%vx%v\n", l.Area.W, l.Area.H)
	fmt.Fprintf(tw, "top margin:\t%v\n", l.TopMargin)
	fmt.Fprintf(tw, "side margin:\t%v\n", l.SideMargin)
	fmt.Fprintf(tw, "viewport:\t%vx%v\n", l.Viewport.W, l.Viewport.H)
	fmt.Fprintf(tw, "origin:\t%v, %v\n", l.Origin.X, l.Origin.Y)
	fmt.Fprintf(tw, "bounds:\tx %v..%v y %v..%v\n", l.Bounds.MinX, l.Bounds.MaxX, l.Bounds.MinY, l.Bounds.MaxY)
	return tw.Flush()
}

type settingsCmd struct {
	Path  string `arg optional help:"file to write (default settings.yaml)"`
	Force bool   `short:"f" help:"overwrite an existing file"`
}

func (c *settingsCmd) Run(g *Globals) error {
	path := c.Path
	if path == "" {
		path = settings.DefaultPath
	}
	if !c.Force && fileExists(path) {
		return fmt.Errorf("%s exists, use --force to overwrite", path)
	}
	if err := settings.Save(path, settings.Default()); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s\n", path)
	return nil
}

type indexCmd struct {
	Paths []string `arg help:"map files"`
}

func (c *indexCmd) Run(g *Globals) error {
	cat, err := g.catalog()
	if err != nil {
		return err
	}
	defer cat.Close()
	for _, path := range c.Paths {
		m, err := tilemap.Load(path)
		if err != nil {
			return err
		}
		if err := cat.Put(m, path); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s %s\n", m.ID(), path)
	}
	return nil
}

type lsCmd struct{}

func (c *lsCmd) Run(g *Globals) error {
	cat, err := g.catalog()
	if err != nil {
		return err
	}
	defer cat.Close()
	entries, err := cat.List()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tPAINTED\tWALLS\tPATH")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%d\t%d\t%s\n", e.ID, e.Name, e.Width, e.Height, e.Painted, e.Walls, e.Path)
	}
	return tw.Flush()
}

type rmCmd struct {
	IDs []string `arg help:"map ids"`
}

func (c *rmCmd) Run(g *Globals) error {
	cat, err := g.catalog()
	if err != nil {
		return err
	}
	defer cat.Close()
	for _, id := range c.IDs {
		if _, err := cat.Get(id); err != nil {
			return err
		}
		if err := cat.Delete(id); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "removed %s\n", id)
	}
	return nil
}
