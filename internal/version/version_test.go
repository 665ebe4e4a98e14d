package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldCommit, oldBuild := Commit, BuildTime
	defer func() { Commit, BuildTime = oldCommit, oldBuild }()

	Commit = "0123456789abcdef"
	BuildTime = "2026-01-19T10:00:00Z"

	got := String()
	if got != "renux dev (commit: 0123456, built: 2026-01-19T10:00:00Z)" {
		t.Errorf("unexpected version string: %s", got)
	}
}

func TestString_ShortCommitUnchanged(t *testing.T) {
	oldCommit := Commit
	defer func() { Commit = oldCommit }()

	Commit = "abc"
	if !strings.Contains(String(), "commit: abc,") {
		t.Errorf("unexpected version string: %s", String())
	}
}
