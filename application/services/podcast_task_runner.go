package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/inbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

type podcastTaskRunner struct {
	logger     outbound.LoggerPort
	workerPool outbound.TaskDispatcher
	pipeline   inbound.PodcastPipelinePort
	store      outbound.TaskStorePort
	active     atomic.Int64
}

func NewPodcastTaskRunner(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	pipeline inbound.PodcastPipelinePort, store outbound.TaskStorePort) inbound.PodcastTaskRunnerPort {
	return &podcastTaskRunner{
		logger:     logger,
		workerPool: workerPool,
		pipeline:   pipeline,
		store:      store,
	}
}

// Submit records a pending task and runs the pipeline for it in the background. The request
// context only bounds the bookkeeping; the run itself outlives the HTTP call.
func (r *podcastTaskRunner) Submit(ctx context.Context, req domain.PodcastRequest) (*domain.Task, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	task := domain.Task{
		ID:        req.RequestID,
		Kind:      req.Kind,
		Status:    domain.TaskPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.store.Save(ctx, task); err != nil {
		r.logger.ErrorWithFields(err, "Failed to save task", map[string]interface{}{
			"task_id": task.ID,
		})
		return nil, err
	}

	runCtx := context.WithoutCancel(ctx)
	err := r.workerPool.Submit(func() {
		r.execute(runCtx, task, req)
	})
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to submit task to worker pool", map[string]interface{}{
			"task_id": task.ID,
		})
		r.finish(runCtx, &task, nil, err)
		return nil, err
	}

	r.logger.InfoWithFields("Podcast task queued", map[string]interface{}{
		"task_id": task.ID,
		"type":    task.Kind,
	})
	return &task, nil
}

func (r *podcastTaskRunner) Get(ctx context.Context, taskID string) (*domain.Task, error) {
	return r.store.Get(ctx, taskID)
}

func (r *podcastTaskRunner) List(ctx context.Context) ([]domain.Task, error) {
	return r.store.List(ctx)
}

func (r *podcastTaskRunner) ActiveCount() int {
	return int(r.active.Load())
}

func (r *podcastTaskRunner) execute(ctx context.Context, task domain.Task, req domain.PodcastRequest) {
	r.active.Add(1)
	defer r.active.Add(-1)

	started := time.Now().UTC()
	task.Status = domain.TaskProcessing
	task.StartedAt = &started
	r.save(ctx, task)

	observer := &taskProgressObserver{runner: r, ctx: ctx, task: task}
	result, err := r.pipeline.RunPipelineObserved(ctx, req, observer)

	final := observer.snapshot()
	r.finish(ctx, &final, result, err)
}

func (r *podcastTaskRunner) finish(ctx context.Context, task *domain.Task, result *domain.PodcastResult, err error) {
	completed := time.Now().UTC()
	task.CompletedAt = &completed
	if err != nil {
		task.Status = domain.TaskFailed
		task.Error = err.Error()
	} else {
		task.Status = domain.TaskCompleted
		task.Progress = 100
		task.Result = result
	}
	r.save(ctx, *task)

	r.logger.InfoWithFields("Podcast task finished", map[string]interface{}{
		"task_id": task.ID,
		"status":  task.Status,
	})
}

func (r *podcastTaskRunner) save(ctx context.Context, task domain.Task) {
	if err := r.store.Save(ctx, task); err != nil {
		r.logger.ErrorWithFields(err, "Failed to update task", map[string]interface{}{
			"task_id": task.ID,
			"status":  task.Status,
		})
	}
}

// taskProgressObserver turns pipeline status transitions into task progress updates.
type taskProgressObserver struct {
	runner *podcastTaskRunner
	ctx    context.Context
	mu     sync.Mutex
	task   domain.Task
}

func (o *taskProgressObserver) OnStatus(_ string, status domain.RunStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if status == domain.RunFailed {
		return
	}
	progress := domain.ProgressFor(o.task.Kind, status)
	if progress <= o.task.Progress {
		return
	}
	o.task.Progress = progress
	o.runner.save(o.ctx, o.task)
}

func (o *taskProgressObserver) snapshot() domain.Task {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.task
}
