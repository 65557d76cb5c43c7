package fetch

// Quality presets understood by the builder. Any other quality string
// is treated as a raw yt-dlp format selector and passed through
// verbatim.
const (
	QualityBest  = "best"
	QualityWorst = "worst"
)

const (
	DefaultFormat        = "mp4"
	defaultSubtitleLang  = "en"
	defaultOutputPattern = "%(title)s-%(id)s.%(ext)s"
)

// Request is a declarative description of a single media fetch. It is
// translated by the Builder into a concrete yt-dlp invocation.
type Request struct {
	URL              string   `json:"url" validate:"required"`
	Format           string   `json:"format" validate:"omitempty,mediaformat"`
	Quality          string   `json:"quality"`
	Subtitles        bool     `json:"subtitles"`
	SubtitleLangs    []string `json:"subtitle_langs"`
	EmbedSubs        bool     `json:"embed_subs"`
	AudioOnly        bool     `json:"audio_only"`
	FilenameTemplate string   `json:"filename_template"`
	ExtraArgs        []string `json:"extra_args"`
}

// ApplyDefaults fills the zero-valued fields with their documented
// defaults. After this call the format is always a member of the known
// format set, and SubtitleLangs is non-empty whenever Subtitles is set.
func (req *Request) ApplyDefaults() {
	if req.Format == "" {
		req.Format = DefaultFormat
	}
	if req.Quality == "" {
		req.Quality = QualityBest
	}
	if len(req.SubtitleLangs) == 0 {
		req.SubtitleLangs = []string{defaultSubtitleLang}
	}
}
