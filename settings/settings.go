package settings

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/lazycat/coords"
)

// EnvConfigFile names the environment variable consulted when no settings
// path is given on the command line.
const EnvConfigFile = "CONFIG_FILE"

const DefaultPath = "settings.yaml"

var ErrInvalid = errors.New("invalid settings")

// File is the raw numeric configuration the layout is derived from. Grid
// extents are stored as floats and truncated when the layout is computed.
type File struct {
	Scale         float64 `yaml:"scale"`
	XMax          float64 `yaml:"x_max"`
	YMax          float64 `yaml:"y_max"`
	InputDebounce float64 `yaml:"input_debounce"`
	TileWidth     float64 `yaml:"tile_width"`
	TileHeight    float64 `yaml:"tile_height"`
	TileZ         float64 `yaml:"tile_z"`
	GameZ         float64 `yaml:"game_z"`
}

// Default returns the configuration the game ships with.
func Default() File {
	return File{
		Scale:         1,
		XMax:          24,
		YMax:          18,
		InputDebounce: 0.04,
		TileWidth:     16,
		TileHeight:    16,
		TileZ:         0,
		GameZ:         1,
	}
}

// GridWidth is the truncated number of tile columns.
func (f File) GridWidth() uint32 { return uint32(f.XMax) }

// GridHeight is the truncated number of tile rows.
func (f File) GridHeight() uint32 { return uint32(f.YMax) }

// Validate rejects values no layout can be derived from.
func (f File) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"scale", f.Scale},
		{"tile_width", f.TileWidth},
		{"tile_height", f.TileHeight},
	}
	for _, p := range positive {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) || p.v <= 0 {
			return fmt.Errorf("%w: %s must be a positive number, got %v", ErrInvalid, p.name, p.v)
		}
	}
	if math.IsNaN(f.XMax) || math.IsNaN(f.YMax) || f.XMax < 1 || f.YMax < 1 {
		return fmt.Errorf("%w: grid must be at least 1x1 tiles, got %vx%v", ErrInvalid, f.XMax, f.YMax)
	}
	if f.XMax > coords.MaxGridTiles || f.YMax > coords.MaxGridTiles ||
		uint64(f.GridWidth())*uint64(f.GridHeight()) > coords.MaxGridTiles {
		return fmt.Errorf("%w: grid %vx%v exceeds %d tiles", ErrInvalid, f.XMax, f.YMax, coords.MaxGridTiles)
	}
	if f.InputDebounce < 0 || math.IsNaN(f.InputDebounce) {
		return fmt.Errorf("%w: input_debounce must not be negative, got %v", ErrInvalid, f.InputDebounce)
	}
	return nil
}

// Parse decodes a settings document. JSON input is accepted as well since it
// is valid YAML.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("settings: unmarshal: %w", err)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Load reads and validates the settings file at path.
func Load(path string) (File, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return File{}, fmt.Errorf("settings: expand %s: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return File{}, fmt.Errorf("settings: read %s: %w", expanded, err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("settings: load %s: %w", expanded, err)
	}
	return f, nil
}

// ResolvePath picks the settings file: the explicit flag value, then
// $CONFIG_FILE, then settings.yaml in the working directory.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvConfigFile); env != "" {
		return env
	}
	return DefaultPath
}

// Save writes f as YAML.
func Save(path string, f File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("settings: expand %s: %w", path, err)
	}
	if err := os.WriteFile(expanded, data, 0o644); err != nil {
		return fmt.Errorf("settings: write %s: %w", expanded, err)
	}
	return nil
}
