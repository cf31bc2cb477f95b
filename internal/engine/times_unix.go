//go:build linux || darwin

package engine

import (
	"time"

	"golang.org/x/sys/unix"
)

// preserveModTime sets the destination's modification time with nanosecond
// precision, leaving the access time untouched.
func preserveModTime(path string, mtime time.Time) error {
	ts := []unix.Timespec{
		{Nsec: unix.UTIME_OMIT},
		unix.NsecToTimespec(mtime.UnixNano()),
	}
	return unix.UtimesNanoAt(unix.AT_FDCWD, path, ts, 0)
}
