package services

import (
	"context"

	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

type UploadStage struct {
	logger   outbound.LoggerPort
	executor *StageExecutor
	store    outbound.BlobStorePort
	limit    int
}

func NewUploadStage(logger outbound.LoggerPort, executor *StageExecutor, store outbound.BlobStorePort, limit int) *UploadStage {
	return &UploadStage{
		logger:   logger,
		executor: executor,
		store:    store,
		limit:    limit,
	}
}

// Run publishes the per-segment audio files so the avatar provider can fetch them. The returned
// URLs are in segment order.
func (u *UploadStage) Run(ctx context.Context, run *domain.PipelineRun, audioPaths []string) ([]string, error) {
	return ExecuteStage(ctx, u.executor, domain.AudioUploadStage, audioPaths, u.limit,
		func(ctx context.Context, index int, localPath string) (string, error) {
			key := segmentAudioKey(run.RequestID, index)
			url, err := u.store.Put(ctx, localPath, key)
			if err != nil {
				return "", &domain.UploadFailure{Key: key, Cause: err}
			}
			return url, nil
		})
}
