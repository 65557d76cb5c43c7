package fetch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/clipfetch/clipfetch/internal/database"
	"github.com/clipfetch/clipfetch/internal/fetch"
	"github.com/clipfetch/clipfetch/internal/outcome"
	"github.com/clipfetch/clipfetch/internal/run"
	"github.com/clipfetch/clipfetch/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	mock.Mock

	// onRun simulates the external tool's side effects on the session
	// workspace before the mocked result is returned.
	onRun func(args []string)
}

func (m *mockRunner) Run(ctx context.Context, args []string) (string, error) {
	if m.onRun != nil {
		m.onRun(args)
	}

	mockArgs := m.Called(ctx, args)
	return mockArgs.String(0), mockArgs.Error(1)
}

// unconnectedRecorder builds a recorder whose backing store was never
// connected, simulating an unavailable persistence sink.
func unconnectedRecorder() *outcome.Recorder {
	return outcome.NewRecorder(database.New(), outcome.NewStore(), true)
}

func newService(t *testing.T, runner run.Runner) (*fetch.Service, string) {
	t.Helper()
	root := t.TempDir()
	return fetch.NewService(fetch.Config{BinPath: "yt-dlp"}, session.NewManager(root), runner, unconnectedRecorder()), root
}

func Test_Service_FetchReturnsLocatedArtifact(t *testing.T) {
	runner := &mockRunner{}
	runner.onRun = func(args []string) {
		// Drop an artifact into the workspace named by the -o template.
		workspace := filepath.Dir(args[indexOf(args, "-o")+1])
		require.NoError(t, os.WriteFile(filepath.Join(workspace, "clip.mp4"), []byte("x"), 0o644))
	}
	runner.On("Run", mock.Anything, mock.Anything).Return("downloaded ok", nil)

	service, _ := newService(t, runner)
	path, err := service.Fetch(context.Background(), &fetch.Request{URL: "http://x/video"})

	require.NoError(t, err)
	assert.Equal(t, "clip.mp4", filepath.Base(path))
	runner.AssertExpectations(t)
}

func Test_Service_RecorderFailureDoesNotFailFetch(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Run", mock.Anything, mock.Anything).Return("ok", nil)

	// The recorder's sink is unavailable; the fetch must still succeed.
	service, _ := newService(t, runner)
	path, err := service.Fetch(context.Background(), &fetch.Request{URL: "http://x/video"})

	require.NoError(t, err)
	assert.NotEmpty(t, path)
}

func Test_Service_ToolFailurePropagates(t *testing.T) {
	runner := &mockRunner{}
	toolErr := &run.ExternalToolError{ExitCode: 1, Output: "ERROR: unsupported URL"}
	runner.On("Run", mock.Anything, mock.Anything).Return("", toolErr)

	service, _ := newService(t, runner)
	_, err := service.Fetch(context.Background(), &fetch.Request{URL: "http://x/bad"})

	assert.ErrorIs(t, err, toolErr)
}

func Test_Service_ConcurrentFetchesUseDistinctWorkspaces(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Run", mock.Anything, mock.Anything).Return("ok", nil)

	service, root := newService(t, runner)
	results := service.FetchBatch(context.Background(), []string{"http://x/video", "http://x/video"}, nil)

	require.Len(t, results, 2)
	assert.Empty(t, results[0].Error)
	assert.Empty(t, results[1].Error)

	// No artifacts were produced so each result falls back to its own
	// workspace directory; the two must never coincide.
	assert.NotEqual(t, results[0].Path, results[1].Path)
	for _, result := range results {
		assert.Equal(t, root, filepath.Dir(result.Path))
	}
}

func Test_Service_BatchAppliesCommonSettings(t *testing.T) {
	var seen [][]string
	runner := &mockRunner{}
	runner.onRun = func(args []string) { seen = append(seen, args) }
	runner.On("Run", mock.Anything, mock.Anything).Return("ok", nil)

	service, _ := newService(t, runner)
	common := &fetch.Request{Format: "mp3", AudioOnly: true}
	results := service.FetchBatch(context.Background(), []string{"http://x/one"}, common)

	require.Len(t, results, 1)
	require.Len(t, seen, 1)
	assert.NotEqual(t, -1, indexOf(seen[0], "-x"))
	assert.NotEqual(t, -1, indexOf(seen[0], "http://x/one"))
}
