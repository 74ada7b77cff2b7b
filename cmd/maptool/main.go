package main

import (
	"github.com/alecthomas/kong"
)

const desc = `Inspects, edits and indexes lazy cat map files.

Maps are JSON or YAML (by file extension). Grid sizes and tile sizes come from
the settings file, the same one the game and the editor read.`

type cli struct {
	Globals

	New      newCmd      `cmd help:"create a blank map file"`
	Info     infoCmd     `cmd help:"print a summary of map files"`
	Paint    paintCmd    `cmd help:"paint or erase one tile of a map file"`
	Convert  convertCmd  `cmd help:"rewrite a map in another format (json or yaml)"`
	Resize   resizeCmd   `cmd help:"change the grid size of a map file"`
	Render   renderCmd   `cmd help:"draw a map to a png"`
	Layout   layoutCmd   `cmd help:"print the window geometry derived from the settings"`
	Settings settingsCmd `cmd help:"write a settings file with default values"`
	Index    indexCmd    `cmd help:"add map files to the catalog"`
	Ls       lsCmd       `cmd help:"list maps in the catalog"`
	Rm       rmCmd       `cmd help:"remove maps from the catalog by id"`
}

func main() {
	var app cli
	ctx := kong.Parse(&app,
		kong.Name("maptool"),
		kong.Description(desc),
		kong.UsageOnError(),
	)
	err := ctx.Run(&app.Globals)
	ctx.FatalIfErrorf(err)
}
