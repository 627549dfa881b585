//go:build !windows

package tablecache

import (
	"errors"
	"os"
)

// removeStale removes a compiled table that is no longer referenced.
func removeStale(path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
