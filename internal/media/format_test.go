package media_test

import (
	"testing"

	"github.com/clipfetch/clipfetch/internal/media"
	"github.com/stretchr/testify/assert"
)

func Test_IsValidFormat(t *testing.T) {
	tests := []struct {
		summary string
		format  string
		valid   bool
	}{
		{"container format", "mp4", true},
		{"audio format", "opus", true},
		{"unknown format", "avi", false},
		{"case sensitive", "MP4", false},
		{"empty", "", false},
	}

	for _, test := range tests {
		t.Run(test.summary, func(t *testing.T) {
			assert.Equal(t, test.valid, media.IsValidFormat(test.format))
		})
	}
}

func Test_HasKnownExtension(t *testing.T) {
	tests := []struct {
		summary string
		path    string
		known   bool
	}{
		{"plain media file", "clip.mp4", true},
		{"nested path", "a/b/audio.m4a", true},
		{"uppercase extension", "CLIP.MKV", true},
		{"metadata file", "clip.info.json", false},
		{"no extension", "clip", false},
		{"partial download", "clip.mp4.part", false},
	}

	for _, test := range tests {
		t.Run(test.summary, func(t *testing.T) {
			assert.Equal(t, test.known, media.HasKnownExtension(test.path))
		})
	}
}
