package mock_generator

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

// PollStep is one scripted poll response. Err takes precedence over Report.
type PollStep struct {
	Report domain.VideoJobReport
	Err    error
}

type AvatarVideo struct {
	concurrencyGauge
	mu sync.Mutex
	// Steps returns the poll responses for the job created from audioURL. The last step repeats
	// once the script is exhausted.
	Steps      func(audioURL string) []PollStep
	SubmitFail func(req outbound.SubmitVideoRequest) error
	// DownloadDelay lets tests make later segments finish first.
	DownloadDelay func(audioURL string) time.Duration
	jobs          map[string]*stubJob
	submits       []outbound.SubmitVideoRequest
}

type stubJob struct {
	audioURL string
	steps    []PollStep
	polls    int
}

func NewAvatarVideo() *AvatarVideo {
	return &AvatarVideo{
		jobs: make(map[string]*stubJob),
	}
}

func DefaultPollSteps(jobVideoURL string) []PollStep {
	return []PollStep{
		{Report: domain.VideoJobReport{Status: "pending"}},
		{Report: domain.VideoJobReport{Status: "processing"}},
		{Report: domain.VideoJobReport{Status: "completed", VideoURL: jobVideoURL}},
	}
}

func (a *AvatarVideo) Submit(_ context.Context, req outbound.SubmitVideoRequest) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.submits = append(a.submits, req)
	if a.SubmitFail != nil {
		if err := a.SubmitFail(req); err != nil {
			return "", err
		}
	}

	jobID := fmt.Sprintf("job-%d", len(a.submits))
	var steps []PollStep
	if a.Steps != nil {
		steps = a.Steps(req.AudioURL)
	}
	if len(steps) == 0 {
		steps = DefaultPollSteps(StubBaseURL + "videos/" + jobID + ".mp4")
	}
	a.jobs[jobID] = &stubJob{audioURL: req.AudioURL, steps: steps}
	return jobID, nil
}

func (a *AvatarVideo) Poll(_ context.Context, jobID string) (domain.VideoJobReport, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	job, ok := a.jobs[jobID]
	if !ok {
		return domain.VideoJobReport{}, fmt.Errorf("unknown job %s", jobID)
	}
	step := job.steps[len(job.steps)-1]
	if job.polls < len(job.steps) {
		step = job.steps[job.polls]
	}
	job.polls++
	return step.Report, step.Err
}

func (a *AvatarVideo) Download(ctx context.Context, videoURL string, destPath string) error {
	a.enter()
	defer a.leave()

	a.mu.Lock()
	var audioURL string
	for _, job := range a.jobs {
		last := job.steps[len(job.steps)-1]
		if last.Report.VideoURL == videoURL {
			audioURL = job.audioURL
		}
	}
	delay := a.DownloadDelay
	a.mu.Unlock()

	if delay != nil {
		if err := sleepCtx(ctx, delay(audioURL)); err != nil {
			return err
		}
	}
	return os.WriteFile(destPath, []byte("video:"+audioURL), 0o644)
}

func (a *AvatarVideo) PollCount(jobID string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if job, ok := a.jobs[jobID]; ok {
		return job.polls
	}
	return 0
}

func (a *AvatarVideo) Submits() []outbound.SubmitVideoRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]outbound.SubmitVideoRequest(nil), a.submits...)
}
