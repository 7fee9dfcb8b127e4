package inbound

import (
	"context"

	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

type PodcastPipelinePort interface {
	RunPipeline(ctx context.Context, req domain.PodcastRequest) (*domain.PodcastResult, error)
	// RunPipelineObserved is RunPipeline with status transitions reported to observer.
	RunPipelineObserved(ctx context.Context, req domain.PodcastRequest, observer outbound.RunObserverPort) (*domain.PodcastResult, error)
}
