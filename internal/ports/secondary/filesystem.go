// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"time"
)

// FileSystem defines the secondary port for flat-directory file operations.
// Names are always relative to the directory argument.
type FileSystem interface {
	// Directory operations
	DirectoryExists(ctx context.Context, path string) (bool, error)
	ListFiles(ctx context.Context, directory string) ([]string, error)

	// File operations
	FileTimes(directory, name string) (*FileTimesRecord, error)
	Exists(directory, name string) (bool, error)
	SameFile(directory, a, b string) (bool, error)
	Rename(directory, from, to string) error
}

// FileTimesRecord carries the timestamps of one file.
// Created falls back to the change or modification time where the platform
// exposes no birth time.
type FileTimesRecord struct {
	Created  time.Time
	Modified time.Time
}
