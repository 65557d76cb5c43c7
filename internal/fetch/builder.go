package fetch

import (
	"path/filepath"
	"strings"

	"github.com/clipfetch/clipfetch/internal/session"
)

// Config captures the environment-driven knobs of the fetch surface as
// an explicit struct injected at construction time. Tests can exercise
// any combination without mutating the process environment.
type Config struct {
	// BinPath is the yt-dlp binary to invoke.
	BinPath string `yaml:"ytdlp_path" env:"YTDLP_PATH" env-default:"yt-dlp"`

	// FfmpegLocation, when set, is forwarded to yt-dlp via
	// --ffmpeg-location so its post-processing uses an explicit
	// ffmpeg installation.
	FfmpegLocation string `yaml:"ffmpeg_location" env:"FFMPEG_PATH"`

	// EnableSponsorblock enables removal of sponsor/intro/outro
	// segments from fetched media.
	EnableSponsorblock bool `yaml:"enable_sponsorblock" env:"ENABLE_SPONSORBLOCK" env-default:"false"`
}

// Builder translates a Request into a yt-dlp argument list. The
// returned list is passed to the process runner as discrete tokens;
// no shell interpretation ever occurs.
type Builder struct {
	config Config
}

func NewBuilder(config Config) *Builder {
	return &Builder{config: config}
}

// Build produces the argument list for fetching the requested media in
// to the provided session's workspace. The request is expected to have
// had its defaults applied.
//
// Precedence of the quality/format selection, in order:
//  1. audio-only extraction (-x) with the requested format,
//  2. a custom selector string passed through verbatim,
//  3. the "worst" preset,
//  4. the "best"/absent preset.
//
// Note the "worst" preset maps to a genuine lowest-quality selector
// here; earlier revisions collapsed it into the same selector as
// "best".
func (builder *Builder) Build(req *Request, sess *session.Session) []string {
	pattern := req.FilenameTemplate
	if pattern == "" {
		pattern = defaultOutputPattern
	}
	outputTemplate := filepath.Join(sess.Dir, pattern)

	args := []string{
		builder.config.BinPath,
		req.URL,
		"-o", outputTemplate,
		"--merge-output-format", req.Format,
	}

	switch {
	case req.AudioOnly:
		args = append(args, "-x", "--audio-format", req.Format)
	case req.Quality != QualityBest && req.Quality != QualityWorst:
		args = append(args, "-f", req.Quality)
	case req.Quality == QualityWorst:
		args = append(args, "-f", "worstvideo+worstaudio/worst")
	default:
		args = append(args, "-f", "bestvideo+bestaudio/best")
	}

	if req.Subtitles {
		args = append(args, "--write-subs", "--sub-langs", strings.Join(req.SubtitleLangs, ","))
		if req.EmbedSubs {
			args = append(args, "--embed-subs")
		}
	}

	if builder.config.FfmpegLocation != "" {
		args = append(args, "--ffmpeg-location", builder.config.FfmpegLocation)
	}
	if builder.config.EnableSponsorblock {
		args = append(args, "--sponsorblock-remove", "sponsor,intro,outro")
	}

	// Caller-supplied passthrough flags are trusted input and go last
	// so they can override anything above.
	args = append(args, req.ExtraArgs...)

	return args
}
