package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/lazycat/coords"
	"github.com/milk9111/lazycat/settings"
	"github.com/milk9111/lazycat/tilemap"
)

// run parses args like the binary does and returns what the command printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var app cli
	parser, err := kong.New(&app, kong.Name("maptool"), kong.Exit(func(int) { t.Fatalf("exit called for %v", args) }))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	old := stdout
	stdout = &out
	defer func() { stdout = old }()
	err = ctx.Run(&app.Globals)
	return out.String(), err
}

// workspace writes a settings file with a small grid and returns its dir.
func workspace(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	f := settings.Default()
	f.XMax, f.YMax = 6, 4
	cfg := filepath.Join(dir, "settings.yaml")
	require.NoError(t, settings.Save(cfg, f))
	return dir, cfg
}

func TestNewAndInfo(t *testing.T) {
	dir, cfg := workspace(t)
	path := filepath.Join(dir, "maps", "cave.json")

	out, err := run(t, "-s", cfg, "new", path, "-n", "cave", "-t", "tiles.png")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	m, err := tilemap.Load(path)
	require.NoError(t, err)
	w, h := m.Size()
	assert.Equal(t, uint32(6), w)
	assert.Equal(t, uint32(4), h)
	rows, cols := m.Sheet()
	assert.Equal(t, uint32(4), rows)
	assert.Equal(t, uint32(4), cols)

	out, err = run(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "cave")
	assert.Contains(t, out, m.ID().String())
	assert.Contains(t, out, "6x4")

	_, err = run(t, "-s", cfg, "new", path)
	assert.Error(t, err, "refuses to overwrite without --force")
	_, err = run(t, "-s", cfg, "new", path, "--force", "--width", "3", "--height", "2")
	require.NoError(t, err)
	m, err = tilemap.Load(path)
	require.NoError(t, err)
	w, h = m.Size()
	assert.Equal(t, uint32(3), w)
	assert.Equal(t, uint32(2), h)
}

func TestPaint(t *testing.T) {
	dir, cfg := workspace(t)
	path := filepath.Join(dir, "room.yaml")
	_, err := run(t, "-s", cfg, "new", path, "-n", "room")
	require.NoError(t, err)

	_, err = run(t, "paint", path, "2", "1", "-i", "5", "-t", "wall")
	require.NoError(t, err)
	m, err := tilemap.Load(path)
	require.NoError(t, err)
	d, err := m.Tile(coords.New(2, 1))
	require.NoError(t, err)
	assert.Equal(t, tilemap.Painted(5, coords.New(2, 1), tilemap.TagWall), d)

	// tag only keeps the sprite
	_, err = run(t, "paint", path, "2", "1", "-t", "Door")
	require.NoError(t, err)
	m, err = tilemap.Load(path)
	require.NoError(t, err)
	d, err = m.Tile(coords.New(2, 1))
	require.NoError(t, err)
	assert.Equal(t, uint32(5), d.TileIndex)
	assert.Equal(t, tilemap.TagDoor, d.Tag)

	_, err = run(t, "paint", path, "2", "1", "--erase")
	require.NoError(t, err)
	m, err = tilemap.Load(path)
	require.NoError(t, err)
	assert.Empty(t, m.Painted())

	_, err = run(t, "paint", path, "60", "1", "-i", "1")
	assert.Error(t, err)
	_, err = run(t, "paint", path, "1", "1", "-t", "lava")
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	dir, cfg := workspace(t)
	in := filepath.Join(dir, "a.json")
	out := filepath.Join(dir, "a.yaml")
	_, err := run(t, "-s", cfg, "new", in, "-n", "a")
	require.NoError(t, err)
	_, err = run(t, "paint", in, "0", "0", "-i", "1")
	require.NoError(t, err)

	_, err = run(t, "convert", in, out)
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tile_index: 1")

	a, err := tilemap.Load(in)
	require.NoError(t, err)
	b, err := tilemap.Load(out)
	require.NoError(t, err)
	assert.Equal(t, a.ID(), b.ID())
	assert.Equal(t, a.Painted(), b.Painted())
}

func TestResize(t *testing.T) {
	dir, cfg := workspace(t)
	path := filepath.Join(dir, "grow.json")
	_, err := run(t, "-s", cfg, "new", path)
	require.NoError(t, err)
	_, err = run(t, "paint", path, "5", "3", "-i", "2")
	require.NoError(t, err)
	_, err = run(t, "paint", path, "0", "0", "-i", "1")
	require.NoError(t, err)

	out, err := run(t, "resize", path, "3", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "dropped 1 painted tiles")
	m, err := tilemap.Load(path)
	require.NoError(t, err)
	w, h := m.Size()
	assert.Equal(t, uint32(3), w)
	assert.Equal(t, uint32(2), h)
	assert.Len(t, m.Painted(), 1)

	_, err = run(t, "resize", path, "0", "2")
	assert.True(t, errors.Is(err, tilemap.ErrInitialization))
	_, err = run(t, "resize", path, "4096", "4096")
	assert.True(t, errors.Is(err, tilemap.ErrGridTooLarge))
}

func TestRender(t *testing.T) {
	dir, cfg := workspace(t)
	path := filepath.Join(dir, "r.json")
	_, err := run(t, "-s", cfg, "new", path, "-t", "tiles.png")
	require.NoError(t, err)
	_, err = run(t, "paint", path, "0", "0", "-i", "1", "-t", "Wall")
	require.NoError(t, err)

	out, err := run(t, "-s", cfg, "render", path, "--scale", "2", "--tags", "--grid")
	require.NoError(t, err)
	png := filepath.Join(dir, "r.png")
	assert.Contains(t, out, png)
	_, err = os.Stat(png)
	require.NoError(t, err)
}

func TestLayout(t *testing.T) {
	_, cfg := workspace(t)
	out, err := run(t, "-s", cfg, "layout", "--editor")
	require.NoError(t, err)
	assert.Contains(t, out, "grid:")
	assert.Contains(t, out, "6x4")
	assert.Contains(t, out, "side margin: 48")
}

func TestSettingsInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	_, err := run(t, "settings", path)
	require.NoError(t, err)
	f, err := settings.Load(path)
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), f)

	_, err = run(t, "settings", path)
	assert.Error(t, err)
	_, err = run(t, "settings", path, "--force")
	assert.NoError(t, err)
}

func TestCatalogCommands(t *testing.T) {
	dir, cfg := workspace(t)
	db := filepath.Join(dir, "db", "catalog.sqlite")
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	_, err := run(t, "-s", cfg, "new", a, "-n", "alpha")
	require.NoError(t, err)
	_, err = run(t, "-s", cfg, "new", b, "-n", "beta")
	require.NoError(t, err)

	_, err = run(t, "--db", db, "index", a, b)
	require.NoError(t, err)

	out, err := run(t, "--db", db, "ls")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "alpha")
	assert.Contains(t, lines[2], "beta")

	m, err := tilemap.Load(a)
	require.NoError(t, err)
	_, err = run(t, "--db", db, "rm", m.ID().String())
	require.NoError(t, err)
	out, err = run(t, "--db", db, "ls")
	require.NoError(t, err)
	assert.NotContains(t, out, "alpha")

	_, err = run(t, "--db", db, "rm", m.ID().String())
	assert.Error(t, err)
}
