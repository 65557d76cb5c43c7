package fetch_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/clipfetch/clipfetch/internal/fetch"
	"github.com/clipfetch/clipfetch/internal/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir string, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func Test_Locator_FindsFirstMediaFile(t *testing.T) {
	sess := &session.Session{ID: uuid.New(), Dir: t.TempDir()}
	writeFile(t, sess.Dir, "a-video.info.json")
	want := writeFile(t, sess.Dir, "a-video.mp4")
	writeFile(t, sess.Dir, "z-video.webm")

	assert.Equal(t, want, fetch.NewLocator().Locate(sess))
}

func Test_Locator_DescendsIntoSubdirectories(t *testing.T) {
	sess := &session.Session{ID: uuid.New(), Dir: t.TempDir()}
	want := writeFile(t, sess.Dir, filepath.Join("nested", "clip.m4a"))

	assert.Equal(t, want, fetch.NewLocator().Locate(sess))
}

func Test_Locator_FallsBackToWorkspaceDir(t *testing.T) {
	tests := []struct {
		summary string
		files   []string
	}{
		{"empty workspace", nil},
		{"only metadata files", []string{"video.info.json", "video.description"}},
		{"unrecognised media extension", []string{"video.avi"}},
	}

	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			sess := &session.Session{ID: uuid.New(), Dir: t.TempDir()}
			for _, f := range tt.files {
				writeFile(t, sess.Dir, f)
			}

			assert.Equal(t, sess.Dir, fetch.NewLocator().Locate(sess))
		})
	}
}
