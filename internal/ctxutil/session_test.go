package ctxutil

import (
	"context"
	"testing"
)

func TestSessionFromContext(t *testing.T) {
	if got := SessionFromContext(context.Background()); got != "" {
		t.Errorf("SessionFromContext(empty) = %q, want empty", got)
	}

	ctx := WithSessionID(context.Background(), "session-1")
	if got := SessionFromContext(ctx); got != "session-1" {
		t.Errorf("SessionFromContext = %q, want session-1", got)
	}
}

func TestNewSessionID(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	if a == "" || a == b {
		t.Errorf("NewSessionID returned %q and %q, want two distinct IDs", a, b)
	}
}
