package services

import (
	"context"
	"time"

	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

type VideoStageSettings struct {
	Limit           int
	PollInterval    time.Duration
	MaxPollAttempts int
}

type VideoStage struct {
	logger   outbound.LoggerPort
	executor *StageExecutor
	avatars  outbound.AvatarVideoPort
	media    outbound.MediaConcatenatorPort
	settings VideoStageSettings
}

func NewVideoStage(logger outbound.LoggerPort, executor *StageExecutor, avatars outbound.AvatarVideoPort,
	media outbound.MediaConcatenatorPort, settings VideoStageSettings) *VideoStage {
	if settings.MaxPollAttempts <= 0 {
		settings.MaxPollAttempts = 60
	}
	return &VideoStage{
		logger:   logger,
		executor: executor,
		avatars:  avatars,
		media:    media,
		settings: settings,
	}
}

type videoUnit struct {
	segment  domain.Segment
	audioURL string
}

// Run renders one talking-avatar clip per segment and returns the local clip paths in segment
// order. Portrait requests get the cropped clip.
func (v *VideoStage) Run(ctx context.Context, run *domain.PipelineRun, req domain.PodcastRequest, audioURLs []string, tracker *ResourceTracker) ([]string, error) {
	units := make([]videoUnit, len(run.Segments))
	for i, segment := range run.Segments {
		units[i] = videoUnit{segment: segment, audioURL: audioURLs[i]}
	}

	return ExecuteStage(ctx, v.executor, domain.VideoSynthesisStage, units, v.settings.Limit,
		func(ctx context.Context, index int, unit videoUnit) (string, error) {
			return v.render(ctx, run, req, unit, tracker)
		})
}

func (v *VideoStage) render(ctx context.Context, run *domain.PipelineRun, req domain.PodcastRequest, unit videoUnit, tracker *ResourceTracker) (string, error) {
	index := unit.segment.Index

	jobID, err := v.avatars.Submit(ctx, outbound.SubmitVideoRequest{
		AvatarID:   req.AvatarFor(unit.segment.Speaker),
		AudioURL:   unit.audioURL,
		Background: req.Avatar.Background,
		Width:      domain.NativeVideoWidth,
		Height:     domain.NativeVideoHeight,
	})
	if err != nil {
		return "", err
	}

	v.logger.InfoWithFields("Avatar video job submitted", map[string]interface{}{
		"request_id": run.RequestID,
		"segment":    index,
		"job_id":     jobID,
	})

	videoURL, err := v.await(ctx, index, jobID)
	if err != nil {
		return "", err
	}

	videoPath := segmentVideoPath(run.WorkDir, index)
	tracker.Track(videoPath)
	if err := v.avatars.Download(ctx, videoURL, videoPath); err != nil {
		return "", err
	}

	if req.Orientation != domain.Portrait {
		return videoPath, nil
	}

	croppedPath := segmentCroppedVideoPath(run.WorkDir, index)
	tracker.Track(croppedPath)
	if err := v.media.CropPad(ctx, videoPath, croppedPath, domain.PortraitGeometry); err != nil {
		return "", err
	}
	return croppedPath, nil
}

// await polls the job until it reaches a terminal state. Transport errors and unrecognised
// statuses consume an attempt without ending the job.
func (v *VideoStage) await(ctx context.Context, index int, jobID string) (string, error) {
	job := domain.NewPendingExternalJob(jobID)
	for {
		report, err := v.avatars.Poll(ctx, jobID)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			job.ObserveUnavailable()
			v.logger.WarnWithFields("Video status poll failed", map[string]interface{}{
				"job_id":  jobID,
				"attempt": job.PollCount,
				"error":   err.Error(),
			})
		default:
			job.Observe(report)
			if !domain.KnownVideoStatus(report.Status) {
				v.logger.WarnWithFields("Unknown video status", map[string]interface{}{
					"job_id":  jobID,
					"status":  report.Status,
					"attempt": job.PollCount,
				})
			}
		}

		switch job.State {
		case domain.JobCompleted:
			if job.ResultURL == "" {
				return "", &domain.VideoJobFailedError{Index: index, ExternalID: jobID, Detail: "completed without a video url"}
			}
			return job.ResultURL, nil
		case domain.JobFailed:
			return "", &domain.VideoJobFailedError{Index: index, ExternalID: jobID, Detail: job.FailureDetail}
		}

		if job.Expire(v.settings.MaxPollAttempts) {
			return "", &domain.PollTimeoutError{Index: index, ExternalID: jobID, Attempts: job.PollCount}
		}

		timer := time.NewTimer(v.settings.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
}
