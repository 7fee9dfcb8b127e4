package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/inbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
	"github.com/tejasg2002/Lisa-podcast-Generator/infrastructure/adapters"
)

type rejectingDispatcher struct{}

func (rejectingDispatcher) Submit(func()) error {
	return ants.ErrPoolOverload
}

func newTestTaskRunner(t *testing.T, f *pipelineFixture) (inbound.PodcastTaskRunnerPort, outbound.TaskStorePort) {
	workerPool, err := ants.NewPool(4)
	require.NoError(t, err)
	t.Cleanup(workerPool.Release)

	store := adapters.NewMemoryTaskStore()
	return NewPodcastTaskRunner(adapters.NewNopLogger(), workerPool, f.pipeline(), store), store
}

func waitForTask(t *testing.T, runner inbound.PodcastTaskRunnerPort, taskID string) *domain.Task {
	var task *domain.Task
	require.Eventually(t, func() bool {
		got, err := runner.Get(context.Background(), taskID)
		if err != nil {
			return false
		}
		task = got
		return got.IsDone()
	}, 5*time.Second, 5*time.Millisecond)
	return task
}

func TestPodcastTaskRunner_CompletesTask(t *testing.T) {
	f := newPipelineFixture(t)
	runner, _ := newTestTaskRunner(t, f)

	task, err := runner.Submit(context.Background(), podcastRequest(domain.AudioPodcast, threeTurnScript))
	require.NoError(t, err)
	assert.Equal(t, "req-1", task.ID)
	assert.Equal(t, domain.TaskPending, task.Status)

	done := waitForTask(t, runner, task.ID)

	assert.Equal(t, domain.TaskCompleted, done.Status)
	assert.Equal(t, 100, done.Progress)
	require.NotNil(t, done.Result)
	assert.Equal(t, 90, done.Result.EstimatedDurationSeconds)
	assert.NotNil(t, done.StartedAt)
	assert.NotNil(t, done.CompletedAt)
	assert.Empty(t, done.Error)
	assert.Eventually(t, func() bool { return runner.ActiveCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestPodcastTaskRunner_RecordsFailure(t *testing.T) {
	f := newPipelineFixture(t)
	f.stubs.Media.Err = errors.New("ffmpeg exited 1")
	runner, _ := newTestTaskRunner(t, f)

	task, err := runner.Submit(context.Background(), podcastRequest(domain.AudioPodcast, threeTurnScript))
	require.NoError(t, err)

	done := waitForTask(t, runner, task.ID)

	assert.Equal(t, domain.TaskFailed, done.Status)
	assert.Contains(t, done.Error, "ffmpeg exited 1")
	assert.Nil(t, done.Result)
	assert.Equal(t, domain.ProgressFor(domain.AudioPodcast, domain.AudioReady), done.Progress)
}

func TestPodcastTaskRunner_OutlivesRequestContext(t *testing.T) {
	f := newPipelineFixture(t)
	runner, _ := newTestTaskRunner(t, f)
	ctx, cancel := context.WithCancel(context.Background())

	task, err := runner.Submit(ctx, podcastRequest(domain.AudioPodcast, threeTurnScript))
	require.NoError(t, err)
	cancel()

	assert.Equal(t, domain.TaskCompleted, waitForTask(t, runner, task.ID).Status)
}

func TestPodcastTaskRunner_DispatchFailure(t *testing.T) {
	f := newPipelineFixture(t)
	store := adapters.NewMemoryTaskStore()
	runner := NewPodcastTaskRunner(adapters.NewNopLogger(), rejectingDispatcher{}, f.pipeline(), store)

	_, err := runner.Submit(context.Background(), podcastRequest(domain.AudioPodcast, threeTurnScript))
	require.ErrorIs(t, err, ants.ErrPoolOverload)

	saved, err := store.Get(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskFailed, saved.Status)
}

func TestPodcastTaskRunner_ListAndUnknown(t *testing.T) {
	f := newPipelineFixture(t)
	runner, _ := newTestTaskRunner(t, f)

	first := podcastRequest(domain.AudioPodcast, threeTurnScript)
	first.RequestID = "task-a"
	second := podcastRequest(domain.AudioPodcast, threeTurnScript)
	second.RequestID = "task-b"
	_, err := runner.Submit(context.Background(), first)
	require.NoError(t, err)
	_, err = runner.Submit(context.Background(), second)
	require.NoError(t, err)
	waitForTask(t, runner, "task-a")
	waitForTask(t, runner, "task-b")

	tasks, err := runner.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	_, err = runner.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, outbound.ErrTaskNotFound)
}
