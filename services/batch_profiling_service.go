package services

import (
	"context"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/interfaces"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/logger"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/api/params"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/types/business"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchResult pairs one profiling request with its outcome
type BatchResult struct {
	Params  params.ProfileFunctionParams
	Profile *business.FunctionProfile
	Err     error
}

// BatchProfilingService profiles independent functions concurrently
type BatchProfilingService struct {
	profiler    interfaces.FunctionProfiler
	maxParallel int
	logger      *zap.Logger
}

// NewBatchProfilingService creates a batch profiler bounded to maxParallel sessions
func NewBatchProfilingService(profiler interfaces.FunctionProfiler, maxParallel int) *BatchProfilingService {
	if maxParallel <= 0 {
		maxParallel = constants.DefaultMaxParallel
	}
	return &BatchProfilingService{
		profiler:    profiler,
		maxParallel: maxParallel,
		logger:      logger.ForComponent(logger.Log, logger.ComponentBatch),
	}
}

// ProfileAll returns one result per request in request order. A failing
// session never cancels the others.
func (s *BatchProfilingService) ProfileAll(ctx context.Context, requests []params.ProfileFunctionParams) []BatchResult {
	results := make([]BatchResult, len(requests))

	var g errgroup.Group
	g.SetLimit(s.maxParallel)
	for i, request := range requests {
		i, request := i, request
		g.Go(func() error {
			profile, err := s.profiler.ProfileFunction(ctx, request)
			results[i] = BatchResult{Params: request, Profile: profile, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	s.logger.Info("batch profiling finished",
		zap.Int("sessions", len(requests)),
		zap.Int("failed", failed))

	return results
}
