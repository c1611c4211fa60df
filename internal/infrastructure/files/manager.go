// Package files manages the local residency of uploaded artifacts: staging
// incoming multipart files under unique names, resolving image locators back
// to disk paths, and deleting stale copies.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/miniblog/blog-api/internal/core/ports"
)

// Manager owns the uploads directory. Filenames carry a millisecond timestamp
// plus a short uuid suffix, so concurrent requests never collide without any
// directory locking.
type Manager struct {
	dir     string
	cleaner *Cleaner
	log     zerolog.Logger
}

// NewManager creates the staging directory when absent and returns a Manager
// rooted there.
func NewManager(dir string, log zerolog.Logger) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Manager{dir: dir, log: log}, nil
}

// Dir returns the staging directory path.
func (m *Manager) Dir() string {
	return m.dir
}

// AttachCleaner wires the background cleanup workers. Without one,
// ScheduleDelete degrades to a synchronous best-effort delete.
func (m *Manager) AttachCleaner(c *Cleaner) {
	m.cleaner = c
}

// ScheduleDelete queues a best-effort local delete. Failures never reach the
// caller.
func (m *Manager) ScheduleDelete(path string) {
	if m.cleaner != nil {
		m.cleaner.Enqueue(path)
		return
	}
	if err := m.DeleteLocal(path); err != nil {
		m.log.Warn().Err(err).Str("path", path).Msg("best-effort file cleanup failed")
	}
}

// Stage writes src to disk under "<prefix>-<unixmilli>-<uuid8><ext>" and
// returns the generated locator plus the temp path.
func (m *Manager) Stage(src io.Reader, originalName, prefix string) (ports.StagedUpload, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("%s-%d-%s%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
	path := filepath.Join(m.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return ports.StagedUpload{}, fmt.Errorf("stage upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(path)
		return ports.StagedUpload{}, fmt.Errorf("stage upload: %w", err)
	}

	return ports.StagedUpload{Name: name, Path: path}, nil
}

// DeleteLocal removes the file at path. An already-absent path is a no-op.
func (m *Manager) DeleteLocal(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete local file: %w", err)
	}
	return nil
}

// LocalPath resolves an image locator to its path inside the uploads
// directory. Remote URLs and empty locators are not locally resident.
// Locators containing path separators are rejected so a crafted record can
// never aim the cleanup at files outside the uploads directory.
func (m *Manager) LocalPath(locator string) string {
	if locator == "" || strings.Contains(locator, "://") {
		return ""
	}
	if filepath.Base(locator) != locator {
		m.log.Warn().Str("locator", locator).Msg("refusing non-basename image locator")
		return ""
	}
	return filepath.Join(m.dir, locator)
}

var _ ports.FileManager = (*Manager)(nil)
