package convert_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/clipfetch/clipfetch/internal/convert"
	"github.com/clipfetch/clipfetch/internal/database"
	"github.com/clipfetch/clipfetch/internal/outcome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, args []string) (string, error) {
	mockArgs := m.Called(ctx, args)
	return mockArgs.String(0), mockArgs.Error(1)
}

func newService(runner *mockRunner) *convert.Service {
	recorder := outcome.NewRecorder(database.New(), outcome.NewStore(), true)
	return convert.NewService(convert.Config{FfmpegBinPath: "ffmpeg", FfprobeBinPath: "ffprobe"}, runner, recorder)
}

func Test_Service_ConvertReturnsDeterministicOutput(t *testing.T) {
	input := existingFile(t, "video.mp4")
	runner := &mockRunner{}
	runner.On("Run", mock.Anything, mock.Anything).Return("frame= 100", nil)

	output, err := newService(runner).Convert(context.Background(), &convert.Request{
		InputPath:    input,
		OutputFormat: "mp3",
	})

	require.NoError(t, err)
	assert.Equal(t, convert.OutputPathFor(input, "mp3"), output)
	runner.AssertExpectations(t)
}

func Test_Service_ConvertMissingInputSpawnsNothing(t *testing.T) {
	runner := &mockRunner{}

	_, err := newService(runner).Convert(context.Background(), &convert.Request{
		InputPath:    filepath.Join(t.TempDir(), "missing.mp4"),
		OutputFormat: "mp3",
	})

	assert.ErrorIs(t, err, convert.ErrInputNotFound)
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func Test_Service_ProbeReturnsRawOutput(t *testing.T) {
	input := existingFile(t, "video.mp4")
	runner := &mockRunner{}
	runner.On("Run", mock.Anything, []string{"ffprobe", "-hide_banner", "-i", input}).Return("Stream #0:0: Video: h264", nil)

	raw, err := newService(runner).Probe(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Stream #0:0: Video: h264", raw)
}

func Test_Service_ProbeMissingFile(t *testing.T) {
	runner := &mockRunner{}

	_, err := newService(runner).Probe(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	assert.ErrorIs(t, err, convert.ErrInputNotFound)
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}
