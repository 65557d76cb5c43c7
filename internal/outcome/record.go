package outcome

import (
	"time"

	"github.com/google/uuid"
)

type (
	// FetchRecord is a flat, append-only record of one fetch attempt.
	// Rows are never updated or deleted.
	FetchRecord struct {
		SessionID  uuid.UUID `db:"session_id" json:"session_id"`
		URL        string    `db:"url" json:"url"`
		Format     string    `db:"format" json:"format"`
		Quality    string    `db:"quality" json:"quality"`
		AudioOnly  bool      `db:"audio_only" json:"audio_only"`
		Subtitles  bool      `db:"subtitles" json:"subtitles"`
		EmbedSubs  bool      `db:"embed_subs" json:"embed_subs"`
		OutDir     string    `db:"out_dir" json:"out_dir"`
		OutputHint string    `db:"output_hint" json:"output_hint"`
		Stdout     string    `db:"stdout" json:"stdout"`
		CreatedAt  time.Time `db:"created_at" json:"created_at"`
	}

	// ConvertRecord is a flat, append-only record of one conversion
	// attempt.
	ConvertRecord struct {
		Input     string    `db:"input" json:"input"`
		Output    string    `db:"output" json:"output"`
		ExtraArgs string    `db:"extra_args" json:"extra_args"`
		Stdout    string    `db:"stdout" json:"stdout"`
		CreatedAt time.Time `db:"created_at" json:"created_at"`
	}
)
