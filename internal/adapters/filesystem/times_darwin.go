//go:build darwin

package filesystem

import (
	"os"
	"syscall"
	"time"
)

func creationTime(path string, info os.FileInfo) time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
}
