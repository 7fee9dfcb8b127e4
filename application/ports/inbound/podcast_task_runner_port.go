package inbound

import (
	"context"

	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

type PodcastTaskRunnerPort interface {
	Submit(ctx context.Context, req domain.PodcastRequest) (*domain.Task, error)
	Get(ctx context.Context, taskID string) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	ActiveCount() int
}
