package editor

import (
	"context"
	"errors"
)

// Picker asks the user for a file path. Implementations may block (native
// dialogs do); the session always runs them on their own goroutine.
type Picker interface {
	Pick(ctx context.Context, purpose Purpose) (string, error)
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(ctx context.Context, purpose Purpose) (string, error)

func (f PickerFunc) Pick(ctx context.Context, purpose Purpose) (string, error) {
	return f(ctx, purpose)
}

// Purpose says what a picked path will be used for.
type Purpose int

const (
	PickTileSet Purpose = iota
	PickOpenMap
	PickSaveMap
)

func (p Purpose) String() string {
	switch p {
	case PickTileSet:
		return "tile set"
	case PickOpenMap:
		return "open map"
	case PickSaveMap:
		return "save map"
	default:
		return "unknown"
	}
}

// ErrPickCancelled is what pickers return when the user closes the dialog
// without choosing anything.
var ErrPickCancelled = errors.New("no file chosen")

// ErrPickPending is returned by StartPick while another pick is running.
var ErrPickPending = errors.New("a file dialog is already open")

type pickResult struct {
	purpose Purpose
	path    string
	err     error
}

// FileDialogState tracks the new-map dialog and the one background pick that
// may be in flight.
type FileDialogState struct {
	// Open is true while the new-map dialog is shown.
	Open         bool
	ChosenFile   string
	ErrorMessage string

	results chan pickResult
	cancel  context.CancelFunc
	purpose Purpose
}

// Pending reports whether a background pick has not delivered yet.
func (d *FileDialogState) Pending() bool {
	return d.results != nil
}

// StartPick runs the picker on a goroutine. The result is collected by Poll.
func (s *Session) StartPick(ctx context.Context, purpose Purpose) error {
	if s.picker == nil {
		return errors.New("no file picker configured")
	}
	if s.Dialog.Pending() {
		return ErrPickPending
	}
	ctx, cancel := context.WithCancel(ctx)
	results := make(chan pickResult, 1)
	s.Dialog.results = results
	s.Dialog.cancel = cancel
	s.Dialog.purpose = purpose

	go func(p Picker) {
		path, err := p.Pick(ctx, purpose)
		results <- pickResult{purpose: purpose, path: path, err: err}
	}(s.picker)
	return nil
}

// CancelPick abandons the running pick. A native dialog that ignores the
// context keeps running, but its answer is dropped.
func (s *Session) CancelPick() {
	if !s.Dialog.Pending() {
		return
	}
	s.Dialog.cancel()
	s.Dialog.results = nil
	s.Dialog.cancel = nil
}

// Poll collects a finished pick without blocking and acts on it. It is
// called once per frame and reports whether a result was handled.
func (s *Session) Poll() bool {
	if !s.Dialog.Pending() {
		return false
	}
	var res pickResult
	select {
	case res = <-s.Dialog.results:
	default:
		return false
	}
	s.Dialog.cancel()
	s.Dialog.results = nil
	s.Dialog.cancel = nil

	if res.err != nil {
		if errors.Is(res.err, ErrPickCancelled) || errors.Is(res.err, context.Canceled) {
			s.Status = res.purpose.String() + ": cancelled"
			return true
		}
		s.fail(res.err)
		if res.purpose == PickTileSet {
			s.Dialog.ErrorMessage = res.err.Error()
		}
		return true
	}

	switch res.purpose {
	case PickTileSet:
		if !s.Dialog.Open {
			_ = s.SetTileSet(res.path)
			return true
		}
		s.Dialog.ChosenFile = res.path
		s.Dialog.ErrorMessage = ""
	case PickOpenMap:
		_ = s.Load(res.path)
	case PickSaveMap:
		_ = s.Save(res.path)
	}
	return true
}
