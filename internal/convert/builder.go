package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInputNotFound is returned when the conversion input path does not
// reference an existing file at build time.
var ErrInputNotFound = errors.New("input file not found")

// outputSuffix is inserted between the stripped input name and the new
// extension: a/b.mp4 converted to mp3 becomes a/b_conv.mp3.
const outputSuffix = "_conv"

// Config holds the binary paths for the transcode tool and its
// inspection companion.
type Config struct {
	FfmpegBinPath  string `yaml:"ffmpeg_bin" env:"FFMPEG_BIN" env-default:"ffmpeg"`
	FfprobeBinPath string `yaml:"ffprobe_bin" env:"FFPROBE_BIN" env-default:"ffprobe"`
}

// Request describes one conversion of an existing local file. Start
// and End are opaque HH:MM:SS timestamps passed through unvalidated;
// malformed values are a tool-reported failure, not a builder-time one.
type Request struct {
	InputPath    string   `json:"input_path" validate:"required"`
	OutputFormat string   `json:"output_format" validate:"required,mediaformat"`
	Start        string   `json:"start"`
	End          string   `json:"end"`
	ExtraArgs    []string `json:"extra_args"`
}

// Builder translates a Request into an ffmpeg argument list plus the
// deterministic output path the invocation will produce.
type Builder struct {
	config Config
}

func NewBuilder(config Config) *Builder {
	return &Builder{config: config}
}

// Build validates the input file exists and produces the invocation.
// The output naming is deterministic and idempotent, but the effect is
// not: the overwrite flag means a re-run replaces the prior output.
// On failure nothing is touched on disk and no process is spawned.
func (builder *Builder) Build(req *Request) ([]string, string, error) {
	if _, err := os.Stat(req.InputPath); err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrInputNotFound, req.InputPath)
	}

	outputPath := OutputPathFor(req.InputPath, req.OutputFormat)

	args := []string{builder.config.FfmpegBinPath, "-y", "-i", req.InputPath}
	if req.Start != "" {
		args = append(args, "-ss", req.Start)
	}
	if req.End != "" {
		args = append(args, "-to", req.End)
	}
	args = append(args, req.ExtraArgs...)
	args = append(args, outputPath)

	return args, outputPath, nil
}

// OutputPathFor computes the conversion output path for the given
// input path and target format.
func OutputPathFor(inputPath string, format string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return fmt.Sprintf("%s%s.%s", base, outputSuffix, format)
}
