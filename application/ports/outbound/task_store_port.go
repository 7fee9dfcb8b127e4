package outbound

import (
	"context"
	"errors"

	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskStorePort interface {
	Save(ctx context.Context, task domain.Task) error
	Get(ctx context.Context, taskID string) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
}
