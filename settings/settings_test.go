package settings

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const referenceYAML = `
scale: 1
x_max: 24
y_max: 18
input_debounce: 0.04
tile_width: 16
tile_height: 16
tile_z: 0
game_z: 1
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(referenceYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f != Default() {
		t.Fatalf("expected %+v, got %+v", Default(), f)
	}
	if f.GridWidth() != 24 || f.GridHeight() != 18 {
		t.Fatalf("unexpected grid %dx%d", f.GridWidth(), f.GridHeight())
	}
}

func TestParseJSON(t *testing.T) {
	doc := `{"scale": 2.5, "x_max": 24.9, "y_max": 18, "input_debounce": 0.25,
		"tile_width": 16, "tile_height": 16, "tile_z": 0, "game_z": 1}`
	f, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Scale != 2.5 || f.GridWidth() != 24 {
		t.Fatalf("unexpected settings %+v", f)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(f *File)
		ok     bool
	}{
		{"default", func(f *File) {}, true},
		{"zero_scale", func(f *File) { f.Scale = 0 }, false},
		{"negative_tile_width", func(f *File) { f.TileWidth = -16 }, false},
		{"nan_tile_height", func(f *File) { f.TileHeight = math.NaN() }, false},
		{"inf_scale", func(f *File) { f.Scale = math.Inf(1) }, false},
		{"empty_grid", func(f *File) { f.XMax = 0.5 }, false},
		{"nan_grid", func(f *File) { f.YMax = math.NaN() }, false},
		{"negative_debounce", func(f *File) { f.InputDebounce = -1 }, false},
		{"fractional_grid", func(f *File) { f.XMax = 10.7 }, true},
		{"huge_grid", func(f *File) { f.XMax, f.YMax = math.MaxUint32, math.MaxUint32 }, false},
		{"inf_grid", func(f *File) { f.XMax = math.Inf(1) }, false},
		{"too_many_tiles", func(f *File) { f.XMax, f.YMax = 2048, 1024 }, false},
		{"at_tile_limit", func(f *File) { f.XMax, f.YMax = 1024, 1024 }, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := Default()
			c.mutate(&f)
			err := f.Validate()
			if c.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !c.ok && !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	want := Default()
	want.Scale = 2
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("scale: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatalf("expected parse error")
	}
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("scale: 0\nx_max: 1\ny_max: 1\ntile_width: 1\ntile_height: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	if got := ResolvePath(""); got != DefaultPath {
		t.Fatalf("expected %q, got %q", DefaultPath, got)
	}
	t.Setenv(EnvConfigFile, "/etc/lazycat.yaml")
	if got := ResolvePath(""); got != "/etc/lazycat.yaml" {
		t.Fatalf("expected env path, got %q", got)
	}
	if got := ResolvePath("local.yaml"); got != "local.yaml" {
		t.Fatalf("expected flag path, got %q", got)
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	if err := Save(path, Default()); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	f := Default()
	f.Scale = 3
	if err := Save(path, f); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		abs, _ := filepath.Abs(path)
		if name != abs {
			t.Fatalf("expected event for %s, got %s", abs, name)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for settings change")
	}
}
