//go:build windows

package tablecache

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/windows"
)

// removeStale removes a compiled table that is no longer referenced.
//
// On Windows another colorname process (or a virus scanner) may still hold
// the file open; we retry briefly and then schedule deletion at next reboot.
func removeStale(path string) error {
	if path == "" {
		return nil
	}

	tryRemove := func() error {
		err := os.Remove(path)
		if err == nil || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var lastErr error
	for i := 0; i < 10; i++ {
		if lastErr = tryRemove(); lastErr == nil {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}

	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return lastErr
	}
	if err := windows.MoveFileEx(p, nil, windows.MOVEFILE_DELAY_UNTIL_REBOOT); err != nil {
		return lastErr
	}
	return nil
}
