package domain

import "strings"

type VideoJobState string

const (
	JobSubmitted  VideoJobState = "submitted"
	JobPending    VideoJobState = "pending"
	JobProcessing VideoJobState = "processing"
	JobCompleted  VideoJobState = "completed"
	JobFailed     VideoJobState = "failed"
	JobTimedOut   VideoJobState = "timed_out"
)

// FrameGeometry describes a crop, scale and pad applied in that order.
type FrameGeometry struct {
	CropWidth    int
	CropHeight   int
	CropX        int
	CropY        int
	ScaleWidth   int
	ScaleHeight  int
	CanvasWidth  int
	CanvasHeight int
	PadX         int
	PadY         int
	PadColor     string
}

const (
	NativeVideoWidth  = 1280
	NativeVideoHeight = 720
)

// PortraitGeometry turns a 1280x720 frame into 720x1280: a centered 720x720 square letterboxed
// vertically.
var PortraitGeometry = FrameGeometry{
	CropWidth:    720,
	CropHeight:   720,
	CropX:        280,
	CropY:        0,
	ScaleWidth:   720,
	ScaleHeight:  720,
	CanvasWidth:  720,
	CanvasHeight: 1280,
	PadX:         0,
	PadY:         280,
	PadColor:     "black",
}

// VideoJobReport is one poll response as reported by the avatar video provider.
type VideoJobReport struct {
	Status   string
	VideoURL string
	Detail   string
}

// PendingExternalJob tracks a single avatar video job. Only the polling loop that owns it
// mutates it.
type PendingExternalJob struct {
	ExternalID    string
	State         VideoJobState
	PollCount     int
	ResultURL     string
	FailureDetail string
}

func NewPendingExternalJob(externalID string) *PendingExternalJob {
	return &PendingExternalJob{
		ExternalID: externalID,
		State:      JobSubmitted,
	}
}

func (j *PendingExternalJob) Terminal() bool {
	switch j.State {
	case JobCompleted, JobFailed, JobTimedOut:
		return true
	default:
		return false
	}
}

// Observe applies one poll response. Unknown statuses leave the state untouched so polling
// continues.
func (j *PendingExternalJob) Observe(report VideoJobReport) VideoJobState {
	if j.Terminal() {
		return j.State
	}
	j.PollCount++
	switch strings.ToLower(strings.TrimSpace(report.Status)) {
	case "completed":
		j.State = JobCompleted
		j.ResultURL = report.VideoURL
	case "failed":
		j.State = JobFailed
		j.FailureDetail = report.Detail
	case "processing", "started":
		j.State = JobProcessing
	case "pending":
		j.State = JobPending
	}
	return j.State
}

// KnownVideoStatus reports whether status is one the provider is documented to return.
func KnownVideoStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "completed", "failed", "processing", "started", "pending":
		return true
	default:
		return false
	}
}

// ObserveUnavailable counts a poll attempt whose response could not be read.
func (j *PendingExternalJob) ObserveUnavailable() {
	if !j.Terminal() {
		j.PollCount++
	}
}

func (j *PendingExternalJob) Expire(maxAttempts int) bool {
	if j.Terminal() || j.PollCount < maxAttempts {
		return false
	}
	j.State = JobTimedOut
	return true
}
