package convert

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/clipfetch/clipfetch/internal/outcome"
	"github.com/clipfetch/clipfetch/internal/run"
	"github.com/clipfetch/clipfetch/pkg/logger"
)

var log = logger.Get("ConvertServ")

type (
	recorder interface {
		RecordConversion(outcome.ConvertRecord)
	}

	// Service wraps the transcode tool for format conversion, trimming
	// and media inspection.
	Service struct {
		config   Config
		builder  *Builder
		runner   run.Runner
		recorder recorder
	}
)

func NewService(config Config, runner run.Runner, recorder recorder) *Service {
	return &Service{
		config:   config,
		builder:  NewBuilder(config),
		runner:   runner,
		recorder: recorder,
	}
}

// Convert runs the transcode tool against the request's input file and
// returns the deterministic output path. Tool failures propagate
// directly; recorder failures never surface.
func (service *Service) Convert(ctx context.Context, req *Request) (string, error) {
	args, outputPath, err := service.builder.Build(req)
	if err != nil {
		return "", err
	}

	log.Infof("Converting %s -> %s\n", req.InputPath, outputPath)
	output, err := service.runner.Run(ctx, args)
	if err != nil {
		return "", err
	}

	service.recorder.RecordConversion(outcome.ConvertRecord{
		Input:     req.InputPath,
		Output:    outputPath,
		ExtraArgs: strings.Join(req.ExtraArgs, " "),
		Stdout:    output,
	})

	log.Emit(logger.SUCCESS, "Converted %s -> %s\n", req.InputPath, outputPath)
	return outputPath, nil
}

// Probe invokes the transcode tool's inspection mode against the given
// path and returns its raw textual output untouched.
func (service *Service) Probe(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}

	return service.runner.Run(ctx, []string{service.config.FfprobeBinPath, "-hide_banner", "-i", path})
}
