// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/example/renux/internal/ports/secondary"
)

// DirectoryAdapter implements secondary.FileSystem for one flat directory
// level. It never walks into subdirectories.
type DirectoryAdapter struct{}

// NewDirectoryAdapter creates a new filesystem directory adapter.
func NewDirectoryAdapter() *DirectoryAdapter {
	return &DirectoryAdapter{}
}

// DirectoryExists checks if a directory exists.
func (a *DirectoryAdapter) DirectoryExists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check directory: %w", err)
	}
	return info.IsDir(), nil
}

// ListFiles returns the names of the regular files in directory, sorted
// case-insensitively (ties broken by byte order).
func (a *DirectoryAdapter) ListFiles(ctx context.Context, directory string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		files = append(files, entry.Name())
	}

	sort.SliceStable(files, func(i, j int) bool {
		li, lj := strings.ToLower(files[i]), strings.ToLower(files[j])
		if li != lj {
			return li < lj
		}
		return files[i] < files[j]
	})

	return files, nil
}

// FileTimes returns the creation and modification times of a file.
func (a *DirectoryAdapter) FileTimes(directory, name string) (*secondary.FileTimesRecord, error) {
	path := filepath.Join(directory, name)
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &secondary.FileTimesRecord{
		Created:  creationTime(path, info),
		Modified: info.ModTime(),
	}, nil
}

// Exists reports whether name exists in directory, without following a
// final symlink.
func (a *DirectoryAdapter) Exists(directory, name string) (bool, error) {
	_, err := os.Lstat(filepath.Join(directory, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SameFile reports whether a and b name the same file, as on a
// case-insensitive filesystem where "a.txt" and "A.txt" are one entry.
func (a *DirectoryAdapter) SameFile(directory, x, y string) (bool, error) {
	xi, err := os.Lstat(filepath.Join(directory, x))
	if err != nil {
		return false, err
	}
	yi, err := os.Lstat(filepath.Join(directory, y))
	if err != nil {
		return false, err
	}
	return os.SameFile(xi, yi), nil
}

// Rename renames from to to inside directory.
func (a *DirectoryAdapter) Rename(directory, from, to string) error {
	return os.Rename(filepath.Join(directory, from), filepath.Join(directory, to))
}

// Ensure DirectoryAdapter implements the interface
var _ secondary.FileSystem = (*DirectoryAdapter)(nil)
