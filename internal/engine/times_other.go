//go:build !linux && !darwin

package engine

import (
	"os"
	"time"
)

// preserveModTime sets the destination's modification time. The zero
// access time leaves the existing one in place.
func preserveModTime(path string, mtime time.Time) error {
	return os.Chtimes(path, time.Time{}, mtime)
}
