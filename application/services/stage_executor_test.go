package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
	"github.com/tejasg2002/Lisa-podcast-Generator/infrastructure/adapters"
)

func newTestExecutor(policy FailurePolicy) *StageExecutor {
	return NewStageExecutor(adapters.NewNopLogger(), policy)
}

func indexes(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestExecuteStage_BoundsConcurrencyAndKeepsOrder(t *testing.T) {
	var inFlight, peak atomic.Int32

	outputs, err := ExecuteStage(context.Background(), newTestExecutor(DrainPolicy), domain.VoiceSynthesisStage, indexes(20), 3,
		func(ctx context.Context, index int, item int) (int, error) {
			current := inFlight.Add(1)
			for {
				old := peak.Load()
				if current <= old || peak.CompareAndSwap(old, current) {
					break
				}
			}
			time.Sleep(time.Duration(20-index) * time.Millisecond / 4)
			inFlight.Add(-1)
			return item * 2, nil
		})

	require.NoError(t, err)
	require.Len(t, outputs, 20)
	for i, out := range outputs {
		assert.Equal(t, i*2, out)
	}
	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.Greater(t, peak.Load(), int32(0))
}

func TestExecuteStage_UncappedRunsEverythingAtOnce(t *testing.T) {
	const n = 6
	var started sync.WaitGroup
	started.Add(n)
	allStarted := make(chan struct{})
	go func() {
		started.Wait()
		close(allStarted)
	}()

	_, err := ExecuteStage(context.Background(), newTestExecutor(DrainPolicy), domain.VideoSynthesisStage, indexes(n), 0,
		func(ctx context.Context, index int, item int) (struct{}, error) {
			started.Done()
			select {
			case <-allStarted:
				return struct{}{}, nil
			case <-time.After(2 * time.Second):
				return struct{}{}, errors.New("units did not run concurrently")
			}
		})

	require.NoError(t, err)
}

func TestExecuteStage_FirstFailureStopsDispatch(t *testing.T) {
	boom := errors.New("voice provider rejected text")
	var calls atomic.Int32

	outputs, err := ExecuteStage(context.Background(), newTestExecutor(DrainPolicy), domain.VoiceSynthesisStage, indexes(10), 1,
		func(ctx context.Context, index int, item int) (string, error) {
			calls.Add(1)
			if index == 3 {
				return "", boom
			}
			return "ok", nil
		})

	assert.Nil(t, outputs)
	var failure *domain.StageFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, domain.VoiceSynthesisStage, failure.Stage)
	assert.Equal(t, 3, failure.Index)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(4), calls.Load())
}

func TestExecuteStage_DrainPolicyLetsSiblingsFinish(t *testing.T) {
	siblingStarted := make(chan struct{})
	var siblingFinished atomic.Bool

	_, err := ExecuteStage(context.Background(), newTestExecutor(DrainPolicy), domain.AudioUploadStage, indexes(2), 2,
		func(ctx context.Context, index int, item int) (int, error) {
			if index == 0 {
				<-siblingStarted
				return 0, errors.New("upload failed")
			}
			close(siblingStarted)
			time.Sleep(30 * time.Millisecond)
			if ctx.Err() == nil {
				siblingFinished.Store(true)
			}
			return 1, nil
		})

	var failure *domain.StageFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, 0, failure.Index)
	assert.True(t, siblingFinished.Load())
}

func TestExecuteStage_CancelPolicyCancelsSiblings(t *testing.T) {
	siblingStarted := make(chan struct{})
	var siblingCancelled atomic.Bool

	start := time.Now()
	_, err := ExecuteStage(context.Background(), newTestExecutor(CancelPolicy), domain.VideoSynthesisStage, indexes(2), 2,
		func(ctx context.Context, index int, item int) (int, error) {
			if index == 0 {
				<-siblingStarted
				return 0, errors.New("submit failed")
			}
			close(siblingStarted)
			select {
			case <-ctx.Done():
				siblingCancelled.Store(true)
				return 0, ctx.Err()
			case <-time.After(5 * time.Second):
				return 1, nil
			}
		})

	var failure *domain.StageFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, 0, failure.Index)
	assert.True(t, siblingCancelled.Load())
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestExecuteStage_PanicBecomesFailure(t *testing.T) {
	_, err := ExecuteStage(context.Background(), newTestExecutor(DrainPolicy), domain.MergeStage, indexes(3), 3,
		func(ctx context.Context, index int, item int) (int, error) {
			if index == 1 {
				panic("nil pointer in adapter")
			}
			return index, nil
		})

	var failure *domain.StageFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, 1, failure.Index)
	assert.Contains(t, err.Error(), "nil pointer in adapter")
}

func TestExecuteStage_EmptyInput(t *testing.T) {
	outputs, err := ExecuteStage(context.Background(), newTestExecutor(DrainPolicy), domain.VoiceSynthesisStage, []int{}, 5,
		func(ctx context.Context, index int, item int) (int, error) {
			t.Fatal("work must not run for empty input")
			return 0, nil
		})

	require.NoError(t, err)
	assert.Empty(t, outputs)
}

func TestExecuteStage_CancelledParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExecuteStage(ctx, newTestExecutor(DrainPolicy), domain.VoiceSynthesisStage, indexes(3), 1,
		func(ctx context.Context, index int, item int) (int, error) {
			return index, nil
		})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewStageExecutor_DefaultsToDrain(t *testing.T) {
	assert.Equal(t, DrainPolicy, NewStageExecutor(adapters.NewNopLogger(), "").Policy())
	assert.Equal(t, CancelPolicy, NewStageExecutor(adapters.NewNopLogger(), CancelPolicy).Policy())
}
