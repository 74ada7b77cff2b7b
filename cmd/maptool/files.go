package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// fileExists checks if file exists
func fileExists(filename string) bool {
	expanded, err := homedir.Expand(filename)
	if err != nil {
		return false
	}
	info, err := os.Stat(expanded)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

func ensureDir(path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(expanded), err)
	}
	return nil
}

func extOf(path string) string {
	return filepath.Ext(path)
}
