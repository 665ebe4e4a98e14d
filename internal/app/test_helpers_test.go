package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/example/renux/internal/ports/secondary"
)

// ============================================================================
// Mock FileSystem
// ============================================================================

// Ensure mockFileSystem implements the interface
var _ secondary.FileSystem = (*mockFileSystem)(nil)

type mockFile struct {
	content string
	times   secondary.FileTimesRecord
}

// mockFileSystem is an in-memory flat directory tree.
type mockFileSystem struct {
	dirs      map[string]map[string]*mockFile
	renameErr func(directory, from, to string) error
	renames   []string
}

func newMockFileSystem() *mockFileSystem {
	return &mockFileSystem{dirs: make(map[string]map[string]*mockFile)}
}

// addFiles creates dir (if needed) holding names; each file's content is its
// initial name.
func (m *mockFileSystem) addFiles(dir string, names ...string) {
	if m.dirs[dir] == nil {
		m.dirs[dir] = make(map[string]*mockFile)
	}
	for _, n := range names {
		m.dirs[dir][n] = &mockFile{
			content: n,
			times: secondary.FileTimesRecord{
				Created:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
				Modified: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		}
	}
}

// state returns name -> content for dir.
func (m *mockFileSystem) state(dir string) map[string]string {
	out := make(map[string]string)
	for name, f := range m.dirs[dir] {
		out[name] = f.content
	}
	return out
}

func (m *mockFileSystem) DirectoryExists(ctx context.Context, path string) (bool, error) {
	_, ok := m.dirs[path]
	return ok, nil
}

func (m *mockFileSystem) ListFiles(ctx context.Context, directory string) ([]string, error) {
	files, ok := m.dirs[directory]
	if !ok {
		return nil, fs.ErrNotExist
	}
	names := make([]string, 0, len(files))
	for n := range files {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names, nil
}

func (m *mockFileSystem) FileTimes(directory, name string) (*secondary.FileTimesRecord, error) {
	f, ok := m.dirs[directory][name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	times := f.times
	return &times, nil
}

func (m *mockFileSystem) Exists(directory, name string) (bool, error) {
	_, ok := m.dirs[directory][name]
	return ok, nil
}

func (m *mockFileSystem) SameFile(directory, a, b string) (bool, error) {
	fa, okA := m.dirs[directory][a]
	fb, okB := m.dirs[directory][b]
	if !okA || !okB {
		return false, fs.ErrNotExist
	}
	return fa == fb, nil
}

func (m *mockFileSystem) Rename(directory, from, to string) error {
	if m.renameErr != nil {
		if err := m.renameErr(directory, from, to); err != nil {
			return err
		}
	}
	f, ok := m.dirs[directory][from]
	if !ok {
		return fmt.Errorf("rename %s: %w", from, fs.ErrNotExist)
	}
	delete(m.dirs[directory], from)
	m.dirs[directory][to] = f
	m.renames = append(m.renames, from+" -> "+to)
	return nil
}

// ============================================================================
// Mock JournalRepository
// ============================================================================

// Ensure mockJournalRepository implements the interface
var _ secondary.JournalRepository = (*mockJournalRepository)(nil)

type mockJournalRepository struct {
	batches   []*secondary.JournalBatchRecord
	recordErr error
}

func newMockJournalRepository() *mockJournalRepository {
	return &mockJournalRepository{}
}

func (m *mockJournalRepository) RecordBatch(ctx context.Context, batch *secondary.JournalBatchRecord) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.batches = append(m.batches, batch)
	return nil
}

func (m *mockJournalRepository) ListBatches(ctx context.Context, filters secondary.JournalFilters) ([]*secondary.JournalBatchRecord, error) {
	var out []*secondary.JournalBatchRecord
	for i := len(m.batches) - 1; i >= 0; i-- {
		out = append(out, m.batches[i])
		if filters.Limit > 0 && len(out) == filters.Limit {
			break
		}
	}
	return out, nil
}

func (m *mockJournalRepository) ListEntries(ctx context.Context, batchID string) ([]*secondary.JournalEntryRecord, error) {
	for _, b := range m.batches {
		if b.ID == batchID {
			return b.Entries, nil
		}
	}
	return nil, errors.New("batch not found")
}
