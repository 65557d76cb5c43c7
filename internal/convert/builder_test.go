package convert_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/clipfetch/clipfetch/internal/convert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func existingFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func Test_Builder_OutputPathComputation(t *testing.T) {
	tests := []struct {
		summary string
		input   string
		format  string
		want    string
	}{
		{"extension replaced", "a/video.mp4", "mp3", "a/video_conv.mp3"},
		{"same format still suffixed", "clip.wav", "wav", "clip_conv.wav"},
		{"no extension on input", "raw", "mkv", "raw_conv.mkv"},
		{"dotted directory untouched", "media.d/in.webm", "m4a", "media.d/in_conv.m4a"},
	}

	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			assert.Equal(t, tt.want, convert.OutputPathFor(tt.input, tt.format))
		})
	}
}

func Test_Builder_ArgumentOrder(t *testing.T) {
	input := existingFile(t, "video.mp4")
	req := convert.Request{
		InputPath:    input,
		OutputFormat: "wav",
		Start:        "00:00:05",
		End:          "00:00:15",
	}

	args, outputPath, err := convert.NewBuilder(convert.Config{FfmpegBinPath: "ffmpeg"}).Build(&req)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(outputPath))
	assert.Equal(t, "video_conv.wav", filepath.Base(outputPath))
	assert.Equal(t, []string{"ffmpeg", "-y", "-i", input, "-ss", "00:00:05", "-to", "00:00:15", outputPath}, args)
}

func Test_Builder_TrimFlagsOmittedWhenAbsent(t *testing.T) {
	input := existingFile(t, "video.mp4")
	req := convert.Request{InputPath: input, OutputFormat: "mp3"}

	args, outputPath, err := convert.NewBuilder(convert.Config{FfmpegBinPath: "ffmpeg"}).Build(&req)
	require.NoError(t, err)
	assert.Equal(t, []string{"ffmpeg", "-y", "-i", input, outputPath}, args)
}

func Test_Builder_ExtraArgsPrecedeOutputPath(t *testing.T) {
	input := existingFile(t, "video.mp4")
	req := convert.Request{
		InputPath:    input,
		OutputFormat: "mp3",
		ExtraArgs:    []string{"-b:a", "192k"},
	}

	args, outputPath, err := convert.NewBuilder(convert.Config{FfmpegBinPath: "ffmpeg"}).Build(&req)
	require.NoError(t, err)
	assert.Equal(t, []string{"-b:a", "192k", outputPath}, args[len(args)-3:])
}

func Test_Builder_MissingInputFails(t *testing.T) {
	req := convert.Request{
		InputPath:    filepath.Join(t.TempDir(), "does-not-exist.mp4"),
		OutputFormat: "mp3",
	}

	args, outputPath, err := convert.NewBuilder(convert.Config{FfmpegBinPath: "ffmpeg"}).Build(&req)
	assert.ErrorIs(t, err, convert.ErrInputNotFound)
	assert.Nil(t, args)
	assert.Empty(t, outputPath)
}
