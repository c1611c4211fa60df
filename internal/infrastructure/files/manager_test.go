package files

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestManager_Stage(t *testing.T) {
	m := newTestManager(t)

	staged, err := m.Stage(strings.NewReader("png-bytes"), "holiday.PNG", "post")
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if !strings.HasPrefix(staged.Name, "post-") || !strings.HasSuffix(staged.Name, ".png") {
		t.Fatalf("unexpected generated name: %s", staged.Name)
	}
	data, err := os.ReadFile(staged.Path)
	if err != nil {
		t.Fatalf("staged file missing: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("staged file corrupted: %q", data)
	}
}

func TestManager_Stage_UniqueNames(t *testing.T) {
	m := newTestManager(t)

	a, err := m.Stage(strings.NewReader("a"), "same.jpg", "post")
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	b, err := m.Stage(strings.NewReader("b"), "same.jpg", "post")
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if a.Name == b.Name {
		t.Fatalf("two uploads of the same file collided: %s", a.Name)
	}
}

func TestManager_DeleteLocal_Idempotent(t *testing.T) {
	m := newTestManager(t)

	staged, err := m.Stage(strings.NewReader("x"), "a.jpg", "post")
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if err := m.DeleteLocal(staged.Path); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if _, err := os.Stat(staged.Path); !os.IsNotExist(err) {
		t.Fatalf("file survived delete: %v", err)
	}
	// Deleting an already-absent path is not an error.
	if err := m.DeleteLocal(staged.Path); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestManager_LocalPath(t *testing.T) {
	m := newTestManager(t)

	if got := m.LocalPath("post-1.jpg"); got != filepath.Join(m.Dir(), "post-1.jpg") {
		t.Fatalf("basename locator not resolved: %s", got)
	}
	if got := m.LocalPath(""); got != "" {
		t.Fatalf("empty locator resolved to %s", got)
	}
	if got := m.LocalPath("https://cdn.example.com/post-1.jpg"); got != "" {
		t.Fatalf("remote URL treated as local: %s", got)
	}
	if got := m.LocalPath("../etc/passwd"); got != "" {
		t.Fatalf("traversal locator not rejected: %s", got)
	}
	if got := m.LocalPath("sub/post-1.jpg"); got != "" {
		t.Fatalf("nested locator not rejected: %s", got)
	}
}

func TestManager_ScheduleDelete_WithoutCleaner(t *testing.T) {
	m := newTestManager(t)

	staged, err := m.Stage(strings.NewReader("x"), "a.jpg", "post")
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	// No cleaner attached: falls back to a synchronous delete.
	m.ScheduleDelete(staged.Path)
	if _, err := os.Stat(staged.Path); !os.IsNotExist(err) {
		t.Fatalf("file survived fallback delete: %v", err)
	}
}

func TestCleaner_DeletesQueuedFiles(t *testing.T) {
	m := newTestManager(t)
	c := NewCleaner(2, m, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Start(ctx)
	m.AttachCleaner(c)

	staged, err := m.Stage(strings.NewReader("x"), "a.jpg", "post")
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	m.ScheduleDelete(staged.Path)

	deadline := time.After(2 * time.Second)
	for {
		if _, err := os.Stat(staged.Path); os.IsNotExist(err) {
			return
		}
		select {
		case <-deadline:
			t.Fatal("queued file was never deleted")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestCleaner_MissingFileDoesNotStall(t *testing.T) {
	m := newTestManager(t)
	c := NewCleaner(1, m, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Start(ctx)
	m.AttachCleaner(c)

	// A path that never existed must be swallowed, then later work proceeds.
	m.ScheduleDelete(filepath.Join(m.Dir(), "ghost.jpg"))

	staged, err := m.Stage(strings.NewReader("x"), "b.jpg", "post")
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	m.ScheduleDelete(staged.Path)

	deadline := time.After(2 * time.Second)
	for {
		if _, err := os.Stat(staged.Path); os.IsNotExist(err) {
			return
		}
		select {
		case <-deadline:
			t.Fatal("worker stalled after missing-file delete")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
