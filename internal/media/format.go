package media

import (
	"path/filepath"
	"strings"
)

// Formats is the fixed set of container/codec formats accepted by both
// the fetch and convert surfaces.
var Formats = []string{"mp3", "mp4", "wav", "mkv", "webm", "m4a", "opus"}

// extensions recognised when scanning a workspace for a produced
// artifact. Order is irrelevant here; discovery order is owned by the
// locator's directory walk.
var extensions = map[string]struct{}{
	".mp4":  {},
	".mp3":  {},
	".mkv":  {},
	".webm": {},
	".m4a":  {},
	".opus": {},
	".wav":  {},
}

func IsValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}

	return false
}

// HasKnownExtension reports whether the file name ends in one of the
// recognised media extensions.
func HasKnownExtension(name string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}
