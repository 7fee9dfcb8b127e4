package adapters

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/config"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

type dynamoTaskItem struct {
	TaskID          string             `dynamodbav:"task_id"`
	Type            domain.PodcastKind `dynamodbav:"type"`
	Status          domain.TaskStatus  `dynamodbav:"status"`
	Progress        int                `dynamodbav:"progress"`
	CreatedAt       time.Time          `dynamodbav:"created_at"`
	StartedAt       *time.Time         `dynamodbav:"started_at,omitempty"`
	CompletedAt     *time.Time         `dynamodbav:"completed_at,omitempty"`
	ResultURL       string             `dynamodbav:"result_url,omitempty"`
	DurationSeconds int                `dynamodbav:"duration_seconds,omitempty"`
	Error           string             `dynamodbav:"error,omitempty"`
	TTL             int64              `dynamodbav:"ttl"`
}

type dynamoTaskStore struct {
	logger       outbound.LoggerPort
	dynamoSvc    dynamodbiface.DynamoDBAPI
	dynamoConfig *config.DynamoConfig
}

func NewDynamoTaskStore(logger outbound.LoggerPort, dynamoSvc dynamodbiface.DynamoDBAPI, dynamoConfig *config.DynamoConfig) outbound.TaskStorePort {
	return &dynamoTaskStore{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (d *dynamoTaskStore) Save(ctx context.Context, task domain.Task) error {
	item := d.toItem(task)
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		d.logger.ErrorWithFields(err, "Failed to marshal task item", map[string]interface{}{
			"task_id": task.ID,
		})
		return err
	}

	_, err = d.dynamoSvc.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(d.dynamoConfig.TableName),
	})
	if err != nil {
		d.logger.ErrorWithFields(err, "Failed to save task item", map[string]interface{}{
			"task_id": task.ID,
		})
		return err
	}
	return nil
}

func (d *dynamoTaskStore) Get(ctx context.Context, taskID string) (*domain.Task, error) {
	out, err := d.dynamoSvc.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.dynamoConfig.TableName),
		Key: map[string]*dynamodb.AttributeValue{
			"task_id": {S: aws.String(taskID)},
		},
	})
	if err != nil {
		d.logger.ErrorWithFields(err, "Failed to get task item", map[string]interface{}{
			"task_id": taskID,
		})
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, outbound.ErrTaskNotFound
	}

	var item dynamoTaskItem
	if err := dynamodbattribute.UnmarshalMap(out.Item, &item); err != nil {
		return nil, err
	}
	task := item.toTask()
	return &task, nil
}

func (d *dynamoTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0)
	var unmarshalErr error
	err := d.dynamoSvc.ScanPagesWithContext(ctx, &dynamodb.ScanInput{
		TableName: aws.String(d.dynamoConfig.TableName),
	}, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		var items []dynamoTaskItem
		if err := dynamodbattribute.UnmarshalListOfMaps(page.Items, &items); err != nil {
			unmarshalErr = err
			return false
		}
		for _, item := range items {
			tasks = append(tasks, item.toTask())
		}
		return true
	})
	if err != nil {
		d.logger.Error(err, "Failed to scan task items")
		return nil, err
	}
	if unmarshalErr != nil {
		return nil, unmarshalErr
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (d *dynamoTaskStore) toItem(task domain.Task) dynamoTaskItem {
	item := dynamoTaskItem{
		TaskID:      task.ID,
		Type:        task.Kind,
		Status:      task.Status,
		Progress:    task.Progress,
		CreatedAt:   task.CreatedAt,
		StartedAt:   task.StartedAt,
		CompletedAt: task.CompletedAt,
		Error:       task.Error,
		TTL:         time.Now().Add(time.Duration(d.dynamoConfig.TtlMinutes) * time.Minute).Unix(),
	}
	if task.Result != nil {
		item.ResultURL = task.Result.URL
		item.DurationSeconds = task.Result.EstimatedDurationSeconds
	}
	return item
}

func (i dynamoTaskItem) toTask() domain.Task {
	task := domain.Task{
		ID:          i.TaskID,
		Kind:        i.Type,
		Status:      i.Status,
		Progress:    i.Progress,
		CreatedAt:   i.CreatedAt,
		StartedAt:   i.StartedAt,
		CompletedAt: i.CompletedAt,
		Error:       i.Error,
	}
	if i.ResultURL != "" {
		task.Result = &domain.PodcastResult{
			URL:                      i.ResultURL,
			EstimatedDurationSeconds: i.DurationSeconds,
			Type:                     i.Type,
		}
	}
	return task
}
