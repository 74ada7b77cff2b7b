package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/lazycat/gameplay"
	"github.com/milk9111/lazycat/layout"
	"github.com/milk9111/lazycat/levels"
	"github.com/milk9111/lazycat/settings"
	"github.com/milk9111/lazycat/tilemap"
)

func main() {
	settingsPath := flag.String("settings", "", "settings file (default $CONFIG_FILE, then settings.yaml)")
	mapPath := flag.String("map", "", "map file to play instead of an embedded level")
	levelName := flag.String("level", levels.Default, "embedded level name in levels/")
	debug := flag.Bool("debug", false, "enable debug overlay")
	watch := flag.Bool("watch", true, "reload the settings file when it changes")
	flag.Parse()

	path := settings.ResolvePath(*settingsPath)
	f, err := settings.Load(path)
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	l := layout.FromSettings(f, false)

	var m *tilemap.MapScreen
	if *mapPath != "" {
		m, err = tilemap.Load(*mapPath)
	} else {
		m, err = levels.LoadLevelFromFS(*levelName)
	}
	if err != nil {
		log.Fatalf("level: %v", err)
	}

	loop, err := gameplay.NewGameLoop(l, m)
	if err != nil {
		log.Fatalf("game: %v", err)
	}

	var watcher *settings.Watcher
	if *watch {
		watcher, err = settings.NewWatcher(path)
		if err != nil {
			log.Printf("settings watcher disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	log.Printf("Creating game: %vx%v", l.Viewport.W, l.Viewport.H)
	ebiten.SetWindowSize(int(l.Viewport.W), int(l.Viewport.H))
	ebiten.SetWindowTitle("Lazy Cat")

	if err := ebiten.RunGame(NewGame(loop, watcher, *debug)); err != nil {
		log.Fatal(err)
	}
}
