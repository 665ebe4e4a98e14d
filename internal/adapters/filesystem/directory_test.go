package filesystem_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/renux/internal/adapters/filesystem"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func TestDirectoryAdapter_DirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()
	adapter := filesystem.NewDirectoryAdapter()
	ctx := context.Background()

	exists, err := adapter.DirectoryExists(ctx, tmpDir)
	if err != nil {
		t.Fatalf("DirectoryExists failed: %v", err)
	}
	if !exists {
		t.Error("expected directory to exist")
	}

	exists, err = adapter.DirectoryExists(ctx, filepath.Join(tmpDir, "missing"))
	if err != nil {
		t.Fatalf("DirectoryExists failed: %v", err)
	}
	if exists {
		t.Error("expected missing directory to not exist")
	}

	writeFiles(t, tmpDir, "file.txt")
	exists, err = adapter.DirectoryExists(ctx, filepath.Join(tmpDir, "file.txt"))
	if err != nil {
		t.Fatalf("DirectoryExists failed: %v", err)
	}
	if exists {
		t.Error("expected a regular file to not count as a directory")
	}
}

func TestDirectoryAdapter_ListFiles(t *testing.T) {
	tmpDir := t.TempDir()
	adapter := filesystem.NewDirectoryAdapter()

	writeFiles(t, tmpDir, "b.txt", "A.txt", "c.TXT", "a.md")
	if err := os.Mkdir(filepath.Join(tmpDir, "subdir"), 0755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}
	writeFiles(t, filepath.Join(tmpDir, "subdir"), "nested.txt")

	files, err := adapter.ListFiles(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}

	want := []string{"a.md", "A.txt", "b.txt", "c.TXT"}
	if len(files) != len(want) {
		t.Fatalf("ListFiles = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestDirectoryAdapter_ListFilesMissingDirectory(t *testing.T) {
	adapter := filesystem.NewDirectoryAdapter()

	_, err := adapter.ListFiles(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestDirectoryAdapter_FileTimes(t *testing.T) {
	tmpDir := t.TempDir()
	adapter := filesystem.NewDirectoryAdapter()
	writeFiles(t, tmpDir, "dated.txt")

	mtime := time.Date(2021, 1, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(filepath.Join(tmpDir, "dated.txt"), mtime, mtime); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	times, err := adapter.FileTimes(tmpDir, "dated.txt")
	if err != nil {
		t.Fatalf("FileTimes failed: %v", err)
	}
	if !times.Modified.Equal(mtime) {
		t.Errorf("Modified = %v, want %v", times.Modified, mtime)
	}
	if times.Created.IsZero() {
		t.Error("expected a non-zero creation time")
	}

	if _, err := adapter.FileTimes(tmpDir, "gone.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDirectoryAdapter_RenameAndExists(t *testing.T) {
	tmpDir := t.TempDir()
	adapter := filesystem.NewDirectoryAdapter()
	writeFiles(t, tmpDir, "old.txt")

	if err := adapter.Rename(tmpDir, "old.txt", "new.txt"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	exists, err := adapter.Exists(tmpDir, "old.txt")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected old.txt to be gone")
	}

	exists, err = adapter.Exists(tmpDir, "new.txt")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected new.txt to exist")
	}

	content, err := os.ReadFile(filepath.Join(tmpDir, "new.txt"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(content) != "old.txt" {
		t.Errorf("content = %q, want old.txt", content)
	}
}

func TestDirectoryAdapter_SameFile(t *testing.T) {
	tmpDir := t.TempDir()
	adapter := filesystem.NewDirectoryAdapter()
	writeFiles(t, tmpDir, "one.txt", "two.txt")

	same, err := adapter.SameFile(tmpDir, "one.txt", "one.txt")
	if err != nil {
		t.Fatalf("SameFile failed: %v", err)
	}
	if !same {
		t.Error("expected a file to be the same as itself")
	}

	same, err = adapter.SameFile(tmpDir, "one.txt", "two.txt")
	if err != nil {
		t.Fatalf("SameFile failed: %v", err)
	}
	if same {
		t.Error("expected distinct files to differ")
	}
}
