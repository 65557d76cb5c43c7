package outcome

import (
	"context"
	"errors"

	"github.com/clipfetch/clipfetch/internal/database"
	"github.com/clipfetch/clipfetch/pkg/logger"
)

var (
	log = logger.Get("Recorder")

	ErrStoreUnavailable = errors.New("outcome store is not connected")
)

const recordQueueSize = 256

// Recorder is the best-effort sink for fetch/convert outcome records.
// Records are handed over as a fire-and-forget message send to this
// service's queue; the originating request never waits on, nor learns
// about, persistence failures. A recorder failure must never convert a
// successful media operation into a reported one.
type Recorder struct {
	db      database.Manager
	store   *Store
	enabled bool
	queue   chan queuedRecord
}

type queuedRecord struct {
	fetch   *FetchRecord
	convert *ConvertRecord
}

func NewRecorder(db database.Manager, store *Store, enabled bool) *Recorder {
	return &Recorder{
		db:      db,
		store:   store,
		enabled: enabled,
		queue:   make(chan queuedRecord, recordQueueSize),
	}
}

// Run drains the record queue until the context is cancelled. Every
// persistence failure is swallowed after a local log line.
func (recorder *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case record := <-recorder.queue:
			recorder.persist(&record)
		case <-ctx.Done():
			return nil
		}
	}
}

// RecordFetch enqueues a fetch record without blocking the caller. The
// record is dropped when the recorder is disabled or the queue is full.
func (recorder *Recorder) RecordFetch(record FetchRecord) {
	recorder.enqueue(queuedRecord{fetch: &record})
}

// RecordConversion enqueues a conversion record without blocking the
// caller.
func (recorder *Recorder) RecordConversion(record ConvertRecord) {
	recorder.enqueue(queuedRecord{convert: &record})
}

func (recorder *Recorder) enqueue(record queuedRecord) {
	if !recorder.enabled {
		return
	}

	select {
	case recorder.queue <- record:
	default:
		log.Warnf("Record queue is full, discarding outcome record\n")
	}
}

func (recorder *Recorder) persist(record *queuedRecord) {
	db := recorder.db.GetSqlxDb()
	if db == nil {
		log.Debugf("Discarding outcome record, store is not connected\n")
		return
	}

	var err error
	switch {
	case record.fetch != nil:
		err = recorder.store.SaveFetch(db, record.fetch)
	case record.convert != nil:
		err = recorder.store.SaveConversion(db, record.convert)
	}

	if err != nil {
		log.Warnf("Failed to persist outcome record: %s\n", err.Error())
	}
}

// Connected reports whether the backing store is reachable; used by
// the status endpoint only.
func (recorder *Recorder) Connected() bool {
	return recorder.enabled && recorder.db.GetSqlxDb() != nil
}

// FetchHistory returns the most recent fetch records, newest first.
func (recorder *Recorder) FetchHistory(limit int) ([]*FetchRecord, error) {
	db := recorder.db.GetSqlxDb()
	if db == nil {
		return nil, ErrStoreUnavailable
	}

	return recorder.store.ListFetches(db, limit)
}

// ConversionHistory returns the most recent conversion records, newest
// first.
func (recorder *Recorder) ConversionHistory(limit int) ([]*ConvertRecord, error) {
	db := recorder.db.GetSqlxDb()
	if db == nil {
		return nil, ErrStoreUnavailable
	}

	return recorder.store.ListConversions(db, limit)
}
