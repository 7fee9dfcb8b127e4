package adapters

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/config"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

// fakeDynamo stores items by task_id and serves scans as a single page.
type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	mu    sync.Mutex
	table string
	items map[string]map[string]*dynamodb.AttributeValue
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]*dynamodb.AttributeValue)}
}

func (f *fakeDynamo) PutItemWithContext(_ aws.Context, input *dynamodb.PutItemInput, _ ...request.Option) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.table = aws.StringValue(input.TableName)
	f.items[aws.StringValue(input.Item["task_id"].S)] = input.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItemWithContext(_ aws.Context, input *dynamodb.GetItemInput, _ ...request.Option) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: f.items[aws.StringValue(input.Key["task_id"].S)]}, nil
}

func (f *fakeDynamo) ScanPagesWithContext(_ aws.Context, _ *dynamodb.ScanInput, fn func(*dynamodb.ScanOutput, bool) bool, _ ...request.Option) error {
	f.mu.Lock()
	items := make([]map[string]*dynamodb.AttributeValue, 0, len(f.items))
	for _, item := range f.items {
		items = append(items, item)
	}
	f.mu.Unlock()
	fn(&dynamodb.ScanOutput{Items: items}, true)
	return nil
}

func TestDynamoTaskStore_RoundTrip(t *testing.T) {
	svc := newFakeDynamo()
	store := NewDynamoTaskStore(NewNopLogger(), svc, &config.DynamoConfig{TableName: "podcast-tasks", TtlMinutes: 60})
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	completed := created.Add(2 * time.Minute)

	require.NoError(t, store.Save(ctx, domain.Task{
		ID:          "task-1",
		Kind:        domain.VideoPodcast,
		Status:      domain.TaskCompleted,
		Progress:    100,
		CreatedAt:   created,
		StartedAt:   &created,
		CompletedAt: &completed,
		Result:      &domain.PodcastResult{URL: "https://b/final.mp4", EstimatedDurationSeconds: 120, Type: domain.VideoPodcast},
	}))

	assert.Equal(t, "podcast-tasks", svc.table)
	ttl := aws.StringValue(svc.items["task-1"]["ttl"].N)
	assert.NotEmpty(t, ttl)

	task, err := store.Get(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, task.Status)
	assert.Equal(t, domain.VideoPodcast, task.Kind)
	assert.True(t, created.Equal(task.CreatedAt))
	require.NotNil(t, task.CompletedAt)
	assert.True(t, completed.Equal(*task.CompletedAt))
	require.NotNil(t, task.Result)
	assert.Equal(t, "https://b/final.mp4", task.Result.URL)
	assert.Equal(t, 120, task.Result.EstimatedDurationSeconds)

	_, err = store.Get(ctx, "task-2")
	assert.ErrorIs(t, err, outbound.ErrTaskNotFound)
}

func TestDynamoTaskStore_ListSortsByCreation(t *testing.T) {
	store := NewDynamoTaskStore(NewNopLogger(), newFakeDynamo(), &config.DynamoConfig{TableName: "t"})
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"late", "early", "middle"} {
		offsets := []time.Duration{2 * time.Hour, 0, time.Hour}
		require.NoError(t, store.Save(ctx, domain.Task{ID: id, Status: domain.TaskPending, CreatedAt: base.Add(offsets[i])}))
	}

	tasks, err := store.List(ctx)

	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{"early", "middle", "late"}, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID})
	assert.Nil(t, tasks[0].Result)
}
