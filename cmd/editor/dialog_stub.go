//go:build !dialog
// +build !dialog

package main

import (
	"context"
	"errors"

	"github.com/milk9111/lazycat/editor"
)

// filePicker is the fallback when built without native dialogs.
type filePicker struct{}

func (filePicker) Pick(ctx context.Context, purpose editor.Purpose) (string, error) {
	return "", errors.New("native file dialog not available; build with -tags dialog")
}
