package fetch

import (
	"context"
	"sync"

	"github.com/clipfetch/clipfetch/internal/outcome"
	"github.com/clipfetch/clipfetch/internal/run"
	"github.com/clipfetch/clipfetch/internal/session"
	"github.com/clipfetch/clipfetch/pkg/logger"
)

var log = logger.Get("FetchServ")

type (
	sessionAllocator interface {
		NewSession() (*session.Session, error)
	}

	recorder interface {
		RecordFetch(outcome.FetchRecord)
	}

	// Service orchestrates a fetch end to end: allocate a workspace,
	// build the invocation, run the tool, discover the artifact and
	// hand the outcome to the recorder. Each call is an independent
	// task; the only shared resource is the filesystem root, on which
	// sessions never collide.
	Service struct {
		builder  *Builder
		locator  Locator
		sessions sessionAllocator
		runner   run.Runner
		recorder recorder
	}

	// BatchResult is the per-URL outcome of a batch fetch.
	BatchResult struct {
		URL   string `json:"url"`
		Path  string `json:"path,omitempty"`
		Error string `json:"error,omitempty"`
	}
)

func NewService(config Config, sessions sessionAllocator, runner run.Runner, recorder recorder) *Service {
	return &Service{
		builder:  NewBuilder(config),
		locator:  NewLocator(),
		sessions: sessions,
		runner:   runner,
		recorder: recorder,
	}
}

// Fetch performs a single fetch and returns the discovered artifact
// path. Failures from the external tool propagate directly with no
// retry; recorder failures never surface here.
func (service *Service) Fetch(ctx context.Context, req *Request) (string, error) {
	req.ApplyDefaults()

	sess, err := service.sessions.NewSession()
	if err != nil {
		return "", err
	}

	args := service.builder.Build(req, sess)
	log.Infof("Fetching %s (session %s)\n", req.URL, sess.ID)
	output, err := service.runner.Run(ctx, args)
	if err != nil {
		return "", err
	}

	path := service.locator.Locate(sess)
	service.recorder.RecordFetch(outcome.FetchRecord{
		SessionID:  sess.ID,
		URL:        req.URL,
		Format:     req.Format,
		Quality:    req.Quality,
		AudioOnly:  req.AudioOnly,
		Subtitles:  req.Subtitles,
		EmbedSubs:  req.EmbedSubs,
		OutDir:     sess.Dir,
		OutputHint: path,
		Stdout:     output,
	})

	log.Emit(logger.SUCCESS, "Fetched %s -> %s\n", req.URL, path)
	return path, nil
}

// FetchBatch fetches each URL concurrently, applying the optional
// common request settings to every URL. Results are returned in the
// order the URLs were given; a failing URL does not abort the rest.
func (service *Service) FetchBatch(ctx context.Context, urls []string, common *Request) []BatchResult {
	results := make([]BatchResult, len(urls))

	wg := &sync.WaitGroup{}
	for i, url := range urls {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()

			req := Request{}
			if common != nil {
				req = *common
			}
			req.URL = url

			path, err := service.Fetch(ctx, &req)
			if err != nil {
				results[i] = BatchResult{URL: url, Error: err.Error()}
				return
			}

			results[i] = BatchResult{URL: url, Path: path}
		}(i, url)
	}
	wg.Wait()

	return results
}
