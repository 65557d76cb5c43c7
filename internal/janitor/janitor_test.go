package janitor_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/clipfetch/clipfetch/internal/janitor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSessionDir(t *testing.T, root string, age time.Duration) string {
	t.Helper()
	dir := filepath.Join(root, uuid.NewString())
	require.NoError(t, os.MkdirAll(dir, 0o755))

	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(dir, stamp, stamp))
	return dir
}

func Test_Janitor_SweepEvictsOnlyExpiredSessions(t *testing.T) {
	root := t.TempDir()
	expired := makeSessionDir(t, root, 48*time.Hour)
	fresh := makeSessionDir(t, root, time.Hour)

	// A stray file at the root must never be swept.
	strayFile := filepath.Join(root, "notes.txt")
	require.NoError(t, os.WriteFile(strayFile, []byte("x"), 0o644))

	janitor.New(janitor.Config{RetentionHours: 24, SweepMinutes: 15}, root).Sweep()

	assert.NoDirExists(t, expired)
	assert.DirExists(t, fresh)
	assert.FileExists(t, strayFile)
}

func Test_Janitor_SweepToleratesMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "never-created")
	assert.NotPanics(t, func() {
		janitor.New(janitor.Config{RetentionHours: 24, SweepMinutes: 15}, missing).Sweep()
	})
}
