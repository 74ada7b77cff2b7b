package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

//go:embed *.png
var assetsFS embed.FS

const (
	// TileSheet is a 4x4 sheet of 16x16 placeholder tiles.
	TileSheet = "tiles.png"
	Hero      = "hero.png"
)

// LoadImage decodes an embedded asset by assets-relative path.
func LoadImage(path string) (image.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return img, nil
}

// LoadFile reads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// Open decodes the image at path on disk. When no such file exists the
// embedded asset with the same base name is used instead, so maps that name
// the bundled sheet work from any directory.
func Open(path string) (image.Image, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand %q: %w", path, err)
	}
	b, err := os.ReadFile(expanded)
	if errors.Is(err, fs.ErrNotExist) {
		img, embErr := LoadImage(filepath.Base(expanded))
		if embErr == nil {
			return img, nil
		}
		return nil, fmt.Errorf("open image %q: %w", expanded, err)
	}
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", expanded, err)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", expanded, err)
	}
	return img, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	return strings.TrimPrefix(filepath.ToSlash(path), "assets/")
}
