package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/lazycat/catalog"
	"github.com/milk9111/lazycat/editor"
	"github.com/milk9111/lazycat/layout"
	"github.com/milk9111/lazycat/settings"
)

func main() {
	settingsPath := flag.String("settings", "", "settings file (default $CONFIG_FILE, then settings.yaml)")
	mapPath := flag.String("map", "", "map file to open on start")
	dbPath := flag.String("db", "", "sqlite catalog updated on every save")
	watch := flag.Bool("watch", true, "reload the settings file when it changes")
	flag.Parse()

	log.Println("Editor starting...")

	path := settings.ResolvePath(*settingsPath)
	f, err := settings.Load(path)
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	l := layout.FromSettings(f, true)

	session, err := editor.NewSession(l, filePicker{})
	if err != nil {
		log.Fatal(err)
	}
	if *mapPath != "" {
		if err := session.Load(*mapPath); err != nil {
			log.Printf("open %s: %v", *mapPath, err)
		}
	}

	if *dbPath != "" {
		c, err := catalog.Open(*dbPath)
		if err != nil {
			log.Fatalf("catalog: %v", err)
		}
		defer c.Close()
		session.Index = c
		log.Printf("indexing saved maps in %s", c.Filename())
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ebiten.SetWindowSize(int(l.Viewport.W), int(l.Viewport.H))
	ebiten.SetWindowTitle("Lazy Cat Game Editor")
	if err := ebiten.RunGame(NewEditorGame(ctx, session, watcher)); err != nil {
		log.Fatal(err)
	}
}
