package adapters

import (
	"context"
	"sort"
	"sync"

	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

// memoryTaskStore keeps tasks for the lifetime of the process.
type memoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
}

func NewMemoryTaskStore() outbound.TaskStorePort {
	return &memoryTaskStore{
		tasks: make(map[string]domain.Task),
	}
}

func (m *memoryTaskStore) Save(_ context.Context, task domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[task.ID] = task
	return nil
}

func (m *memoryTaskStore) Get(_ context.Context, taskID string) (*domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	task, ok := m.tasks[taskID]
	if !ok {
		return nil, outbound.ErrTaskNotFound
	}
	return &task, nil
}

func (m *memoryTaskStore) List(_ context.Context) ([]domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tasks := make([]domain.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}
