package outcome

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/clipfetch/clipfetch/internal/database"
)

// Store owns the SQL for the two append-only record collections,
// 'history' and 'conversions'. There is deliberately no update or
// delete path.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func (store *Store) SaveFetch(db database.Queryable, record *FetchRecord) error {
	_, err := db.Exec(`
		INSERT INTO history(session_id, url, format, quality, audio_only, subtitles, embed_subs, out_dir, output_hint, stdout, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, current_timestamp)
	`, record.SessionID, record.URL, record.Format, record.Quality, record.AudioOnly,
		record.Subtitles, record.EmbedSubs, record.OutDir, record.OutputHint, record.Stdout)
	if err != nil {
		return fmt.Errorf("failed to insert fetch record: %w", err)
	}

	return nil
}

func (store *Store) SaveConversion(db database.Queryable, record *ConvertRecord) error {
	_, err := db.Exec(`
		INSERT INTO conversions(input, output, extra_args, stdout, created_at)
		VALUES ($1, $2, $3, $4, current_timestamp)
	`, record.Input, record.Output, record.ExtraArgs, record.Stdout)
	if err != nil {
		return fmt.Errorf("failed to insert conversion record: %w", err)
	}

	return nil
}

func (store *Store) ListFetches(db database.Queryable, limit int) ([]*FetchRecord, error) {
	query, args, err := squirrel.
		Select("session_id", "url", "format", "quality", "audio_only", "subtitles", "embed_subs", "out_dir", "output_hint", "stdout", "created_at").
		From("history").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to construct list history query: %w", err)
	}

	var results []*FetchRecord
	if err := db.Select(&results, query, args...); err != nil {
		return nil, err
	}

	return results, nil
}

func (store *Store) ListConversions(db database.Queryable, limit int) ([]*ConvertRecord, error) {
	query, args, err := squirrel.
		Select("input", "output", "extra_args", "stdout", "created_at").
		From("conversions").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to construct list conversions query: %w", err)
	}

	var results []*ConvertRecord
	if err := db.Select(&results, query, args...); err != nil {
		return nil, err
	}

	return results, nil
}
