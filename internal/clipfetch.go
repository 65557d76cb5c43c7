package internal

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/clipfetch/clipfetch/internal/api"
	"github.com/clipfetch/clipfetch/internal/api/status"
	"github.com/clipfetch/clipfetch/internal/convert"
	"github.com/clipfetch/clipfetch/internal/database"
	"github.com/clipfetch/clipfetch/internal/fetch"
	"github.com/clipfetch/clipfetch/internal/janitor"
	"github.com/clipfetch/clipfetch/internal/outcome"
	"github.com/clipfetch/clipfetch/internal/run"
	"github.com/clipfetch/clipfetch/internal/session"
	"github.com/clipfetch/clipfetch/pkg/logger"
)

var log = logger.Get("Core")

type (
	RunnableService interface {
		Run(context.Context) error
	}
)

// Clipfetch represents the top-level object for the server, and is
// responsible for constructing the services, wiring them together and
// managing their lifecycles.
type clipfetchImpl struct {
	config ClipfetchConfig

	db       database.Manager
	recorder *outcome.Recorder

	fetchService   *fetch.Service
	convertService *convert.Service
	janitor        *janitor.Janitor
	restGateway    *api.RestGateway
}

func New(config ClipfetchConfig) *clipfetchImpl {
	log.Emit(logger.DEBUG, "Bootstrapping Clipfetch services using config: %#v\n", config)

	db := database.New()
	recorder := outcome.NewRecorder(db, outcome.NewStore(), config.OutcomeLogEnabled)

	sessions := session.NewManager(config.DownloadRoot)
	runner := run.NewRunner()

	clipfetch := &clipfetchImpl{
		config:         config,
		db:             db,
		recorder:       recorder,
		fetchService:   fetch.NewService(config.Fetch, sessions, runner, recorder),
		convertService: convert.NewService(config.Convert, runner, recorder),
		janitor:        janitor.New(config.Janitor, config.DownloadRoot),
	}

	clipfetch.restGateway = api.NewRestGateway(
		&config.Rest,
		clipfetch.fetchService,
		clipfetch.convertService,
		clipfetch.convertService,
		recorder,
		status.Tools{FetchBin: config.Fetch.BinPath, TranscodeBin: config.Convert.FfmpegBinPath},
	)

	return clipfetch
}

// Run brings up the download root, the outcome store connection and
// all long-running services. This function will not return until the
// provided context is cancelled or a service crashes.
func (clipfetch *clipfetchImpl) Run(parent context.Context) error {
	if err := os.MkdirAll(clipfetch.config.DownloadRoot, 0o755); err != nil {
		return fmt.Errorf("failed to prepare download root %s: %w", clipfetch.config.DownloadRoot, err)
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	crashHandler := func(label string, err error) {
		log.Emit(logger.FATAL, "Service crash (%s)! %s\n", label, err.Error())
		cancel()
	}

	// The outcome store is best-effort: connect in the background and
	// let the recorder degrade to drop-and-log until it succeeds.
	if clipfetch.config.OutcomeLogEnabled {
		go func() {
			if err := clipfetch.db.Connect(clipfetch.config.Database); err != nil {
				log.Emit(logger.WARNING, "Outcome store unavailable, records will be discarded: %s\n", err.Error())
			}
		}()
	}

	wg := &sync.WaitGroup{}
	clipfetch.spawnAsyncService(ctx, wg, clipfetch.recorder, "outcome-recorder", crashHandler)
	clipfetch.spawnAsyncService(ctx, wg, clipfetch.janitor, "session-janitor", crashHandler)
	clipfetch.spawnAsyncService(ctx, wg, clipfetch.restGateway, "rest-gateway", crashHandler)
	log.Emit(logger.SUCCESS, "Clipfetch services spawned!\n")

	wg.Wait()
	return nil
}

// spawnAsyncService will run the provided service as its own
// go-routine, ensuring that the service waitgroup is updated correctly.
func (clipfetch *clipfetchImpl) spawnAsyncService(ctx context.Context, wg *sync.WaitGroup, service RunnableService, serviceLabel string, crashHandler func(string, error)) {
	log.Emit(logger.NEW, "Spawning %s\n", serviceLabel)
	wg.Add(1)

	go func(wg *sync.WaitGroup, label string, crash func(string, error)) {
		defer func() {
			if r := recover(); r != nil {
				crash(label, fmt.Errorf("panic %v", r))
			}
		}()

		defer wg.Done()
		if err := service.Run(ctx); err != nil {
			crash(label, err)
		}
	}(wg, serviceLabel, crashHandler)
}
