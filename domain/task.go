package domain

import "time"

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskProcessing TaskStatus = "processing"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// Task is the asynchronous view of one pipeline run, polled by clients.
type Task struct {
	ID          string         `json:"id"`
	Kind        PodcastKind    `json:"type"`
	Status      TaskStatus     `json:"status"`
	Progress    int            `json:"progress"`
	CreatedAt   time.Time      `json:"created_at"`
	StartedAt   *time.Time     `json:"started_at,omitempty"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Result      *PodcastResult `json:"result,omitempty"`
	Error       string         `json:"error,omitempty"`
}

func (t Task) IsDone() bool {
	return t.Status == TaskCompleted || t.Status == TaskFailed
}

// ProgressFor maps a run status to the percentage reported for async tasks.
func ProgressFor(kind PodcastKind, status RunStatus) int {
	if kind == AudioPodcast {
		switch status {
		case ScriptReady:
			return 10
		case SegmentsReady:
			return 30
		case AudioReady:
			return 60
		case Merged:
			return 90
		case Uploaded, Cleaned:
			return 100
		}
		return 0
	}
	switch status {
	case ScriptReady:
		return 10
	case SegmentsReady:
		return 20
	case AudioReady:
		return 40
	case UploadReady:
		return 50
	case VideoReady:
		return 70
	case Merged:
		return 90
	case Uploaded, Cleaned:
		return 100
	}
	return 0
}
