package fetch

import (
	"io/fs"
	"path/filepath"

	"github.com/clipfetch/clipfetch/internal/media"
	"github.com/clipfetch/clipfetch/internal/session"
)

type (
	// Locator discovers the artifact produced by a completed fetch.
	// The default implementation is a heuristic directory scan; keeping
	// it behind an interface means it can later be swapped for the
	// exact path reported by the fetch tool without touching callers.
	Locator interface {
		Locate(sess *session.Session) string
	}

	extensionLocator struct{}
)

func NewLocator() Locator {
	return extensionLocator{}
}

// Locate walks the session workspace in lexical order and returns the
// first file carrying a known media extension. When no such file
// exists the workspace directory itself is returned; callers must
// treat a directory result as "fetch likely succeeded but artifact
// undetermined". This method never fails.
func (extensionLocator) Locate(sess *session.Session) string {
	found := sess.Dir
	filepath.WalkDir(sess.Dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return nil
		}

		if media.HasKnownExtension(entry.Name()) {
			found = path
			return filepath.SkipAll
		}

		return nil
	})

	return found
}
