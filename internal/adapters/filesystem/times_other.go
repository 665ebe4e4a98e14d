//go:build !linux && !darwin && !windows

package filesystem

import (
	"os"
	"time"
)

// creationTime falls back to the modification time on platforms without a
// portable birth time.
func creationTime(path string, info os.FileInfo) time.Time {
	return info.ModTime()
}
