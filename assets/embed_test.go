package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedImages(t *testing.T) {
	sheet, err := LoadImage(TileSheet)
	require.NoError(t, err)
	assert.Equal(t, 64, sheet.Bounds().Dx())
	assert.Equal(t, 64, sheet.Bounds().Dy())

	hero, err := LoadImage("assets/" + Hero)
	require.NoError(t, err)
	assert.Equal(t, 16, hero.Bounds().Dx())
}

func TestOpenFallsBackToEmbedded(t *testing.T) {
	img, err := Open(filepath.Join(t.TempDir(), "somewhere", TileSheet))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())

	_, err = Open(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestOpenReadsDisk(t *testing.T) {
	b, err := LoadFile(Hero)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "copy.png")
	require.NoError(t, os.WriteFile(path, b, 0o644))

	img, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dy())

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not a png"), 0o644))
	_, err = Open(bad)
	assert.Error(t, err)
}

func TestCleanAssetPath(t *testing.T) {
	cases := map[string]string{
		"":                     "",
		"tiles.png":            "tiles.png",
		"assets/tiles.png":     "tiles.png",
		"/x/y/assets/hero.png": "hero.png",
		"/x/y/other.png":       "other.png",
	}
	for in, want := range cases {
		if got := cleanAssetPath(in); got != want {
			t.Fatalf("cleanAssetPath(%q) = %q, want %q", in, got, want)
		}
	}
}
