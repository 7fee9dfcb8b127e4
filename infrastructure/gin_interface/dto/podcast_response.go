package dto

import (
	"time"

	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

type PodcastResponse struct {
	Status          string             `json:"status"`
	Type            domain.PodcastKind `json:"type"`
	Language        string             `json:"language"`
	S3URL           string             `json:"s3_url"`
	DurationSeconds int                `json:"duration_seconds"`
	Host            string             `json:"host"`
	Guest           string             `json:"guest"`
}

type TaskAcceptedResponse struct {
	TaskID  string            `json:"task_id"`
	Status  domain.TaskStatus `json:"status"`
	Message string            `json:"message"`
}

type TaskListResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
}

type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	ActiveTasks int       `json:"active_tasks"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
