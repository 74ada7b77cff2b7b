package levels

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/milk9111/lazycat/tilemap"
)

//go:embed *.json
var LevelsFS embed.FS

// Default is the map the game opens when no -map flag is given.
const Default = "test.json"

// Names lists the embedded map files in lexical order.
func Names() ([]string, error) {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil, fmt.Errorf("read levels: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// LoadLevelFromFS decodes an embedded map by file name.
func LoadLevelFromFS(name string) (*tilemap.MapScreen, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	m, err := tilemap.Decode(bytes.NewReader(data), tilemap.FormatFor(name))
	if err != nil {
		return nil, &tilemap.ParseError{Path: "levels/" + name, Err: err}
	}
	return m, nil
}
