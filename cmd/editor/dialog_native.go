//go:build dialog
// +build dialog

package main

import (
	"context"
	"errors"

	"github.com/sqweek/dialog"

	"github.com/milk9111/lazycat/editor"
)

// filePicker opens the native file dialog. The dialog cannot be closed from
// outside, so ctx only matters before it opens.
type filePicker struct{}

func (filePicker) Pick(ctx context.Context, purpose editor.Purpose) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var (
		path string
		err  error
	)
	switch purpose {
	case editor.PickTileSet:
		path, err = dialog.File().Filter("Image files", "png", "jpg", "jpeg").Title("Select tile set").Load()
	case editor.PickOpenMap:
		path, err = dialog.File().Filter("Map files", "json", "yaml", "yml").Title("Load map").Load()
	case editor.PickSaveMap:
		path, err = dialog.File().Filter("Map files", "json", "yaml", "yml").Title("Save map").Save()
	default:
		return "", errors.New("unknown file dialog purpose")
	}
	if errors.Is(err, dialog.ErrCancelled) {
		return "", editor.ErrPickCancelled
	}
	return path, err
}
