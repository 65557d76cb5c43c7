package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/clipfetch/clipfetch/pkg/logger"
	"github.com/google/uuid"
)

var log = logger.Get("Session")

// Session is an isolated workspace directory scoped to a single fetch
// invocation. Sessions are never reused and are not torn down when the
// request completes; the files inside must remain retrievable via the
// file-serving endpoint (the janitor owns eventual removal).
type Session struct {
	ID        uuid.UUID
	Dir       string
	CreatedAt time.Time
}

// Manager allocates session workspaces beneath a single root directory.
// Identifiers are 128-bit random UUIDs, so concurrent sessions never
// contend on the same directory.
type Manager struct {
	root string
}

func NewManager(root string) *Manager {
	return &Manager{root: root}
}

func (manager *Manager) Root() string { return manager.root }

// NewSession creates a uniquely named workspace directory, creating
// parent directories as needed. Filesystem errors are fatal to the
// originating request.
func (manager *Manager) NewSession() (*Session, error) {
	id := uuid.New()
	dir := filepath.Join(manager.root, id.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session workspace %s: %w", dir, err)
	}

	log.Debugf("Allocated session workspace %s\n", dir)
	return &Session{ID: id, Dir: dir, CreatedAt: time.Now()}, nil
}
