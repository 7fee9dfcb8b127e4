package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

type FailurePolicy string

const (
	// DrainPolicy lets units that already started run to completion after a sibling fails.
	DrainPolicy FailurePolicy = "drain"
	// CancelPolicy cancels the context seen by in-flight siblings once a unit fails.
	CancelPolicy FailurePolicy = "cancel"
)

// StageWork processes one item. index is the item's position in the stage input.
type StageWork[I, O any] func(ctx context.Context, index int, item I) (O, error)

type StageExecutor struct {
	logger outbound.LoggerPort
	policy FailurePolicy
}

func NewStageExecutor(logger outbound.LoggerPort, policy FailurePolicy) *StageExecutor {
	if policy != CancelPolicy {
		policy = DrainPolicy
	}
	return &StageExecutor{
		logger: logger,
		policy: policy,
	}
}

func (e *StageExecutor) Policy() FailurePolicy {
	return e.policy
}

// ExecuteStage runs work over items with at most min(limit, len(items)) units in flight. A
// limit of zero or less means every item may run at once. Outputs are returned in input order.
// Once a unit fails nothing new is started and the first failure is returned as a
// *domain.StageFailure after in-flight units have finished.
func ExecuteStage[I, O any](ctx context.Context, executor *StageExecutor, stage domain.StageName, items []I, limit int, work StageWork[I, O]) ([]O, error) {
	n := len(items)
	if n == 0 {
		return []O{}, nil
	}
	k := limit
	if k <= 0 || k > n {
		k = n
	}

	pool, err := ants.NewPool(k)
	if err != nil {
		executor.logger.ErrorWithFields(err, "Failed to create stage worker pool", map[string]interface{}{
			"stage": stage,
			"size":  k,
		})
		return nil, &domain.StageFailure{Stage: stage, Index: 0, Cause: err}
	}
	defer pool.Release()

	stageCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	unitCtx := ctx
	if executor.policy == CancelPolicy {
		unitCtx = stageCtx
	}

	executor.logger.InfoWithFields("Stage started", map[string]interface{}{
		"stage":       stage,
		"items":       n,
		"concurrency": k,
	})

	results := make([]domain.StageResult[O], n)
	for i := range results {
		results[i] = domain.StageResult[O]{Index: i, Err: domain.ErrStageAborted}
	}

	var (
		wg       sync.WaitGroup
		failed   atomic.Bool
		failOnce sync.Once
		failure  *domain.StageFailure
	)
	fail := func(index int, cause error) {
		failOnce.Do(func() {
			failure = &domain.StageFailure{Stage: stage, Index: index, Cause: cause}
			failed.Store(true)
			cancel()
		})
	}

	for i, item := range items {
		if failed.Load() {
			break
		}
		if err := ctx.Err(); err != nil {
			fail(i, err)
			break
		}
		index, unit := i, item
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			// Submit blocks while the pool is full, so a sibling may have failed in the meantime.
			if failed.Load() {
				return
			}
			results[index] = runStageUnit(unitCtx, index, unit, work)
			if results[index].Err != nil {
				fail(index, results[index].Err)
			}
		})
		if err != nil {
			wg.Done()
			fail(index, err)
			break
		}
	}
	wg.Wait()

	if failure != nil {
		executor.logger.ErrorWithFields(failure.Cause, "Stage failed", map[string]interface{}{
			"stage":   stage,
			"segment": failure.Index,
			"policy":  executor.policy,
		})
		return nil, failure
	}

	outputs := make([]O, n)
	for i, r := range results {
		outputs[i] = r.Value
	}
	executor.logger.InfoWithFields("Stage completed", map[string]interface{}{
		"stage": stage,
		"items": n,
	})
	return outputs, nil
}

func runStageUnit[I, O any](ctx context.Context, index int, item I, work StageWork[I, O]) (result domain.StageResult[O]) {
	result.Index = index
	defer func() {
		if p := recover(); p != nil {
			result.Err = fmt.Errorf("panic in stage unit: %v", p)
		}
	}()
	result.Value, result.Err = work(ctx, index, item)
	return result
}
