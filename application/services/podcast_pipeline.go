package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/inbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/config"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

type PodcastPipelineParams struct {
	Logger      outbound.LoggerPort
	Config      *config.PipelineConfig
	Segmenter   inbound.ScriptSegmenterPort
	Scripts     outbound.ScriptGeneratorPort
	Voices      outbound.VoiceSynthesizerPort
	Blobs       outbound.BlobStorePort
	Avatars     outbound.AvatarVideoPort
	Media       outbound.MediaConcatenatorPort
	FailureMode FailurePolicy
}

type podcastPipeline struct {
	logger    outbound.LoggerPort
	config    *config.PipelineConfig
	segmenter inbound.ScriptSegmenterPort
	scripts   outbound.ScriptGeneratorPort
	blobs     outbound.BlobStorePort
	media     outbound.MediaConcatenatorPort
	voice     *VoiceStage
	upload    *UploadStage
	video     *VideoStage
}

func NewPodcastPipeline(params PodcastPipelineParams) inbound.PodcastPipelinePort {
	policy := params.FailureMode
	if policy == "" {
		policy = FailurePolicy(params.Config.StageFailurePolicy)
	}
	executor := NewStageExecutor(params.Logger, policy)

	return &podcastPipeline{
		logger:    params.Logger,
		config:    params.Config,
		segmenter: params.Segmenter,
		scripts:   params.Scripts,
		blobs:     params.Blobs,
		media:     params.Media,
		voice:     NewVoiceStage(params.Logger, executor, params.Voices, params.Config.VoiceConcurrency),
		upload:    NewUploadStage(params.Logger, executor, params.Blobs, params.Config.UploadConcurrency),
		video: NewVideoStage(params.Logger, executor, params.Avatars, params.Media, VideoStageSettings{
			Limit:           params.Config.VideoConcurrency,
			PollInterval:    params.Config.VideoPollInterval,
			MaxPollAttempts: params.Config.VideoMaxPollAttempts,
		}),
	}
}

func (p *podcastPipeline) RunPipeline(ctx context.Context, req domain.PodcastRequest) (*domain.PodcastResult, error) {
	return p.RunPipelineObserved(ctx, req, outbound.NopRunObserver{})
}

// RunPipelineObserved produces one podcast. Temporary artifacts are removed whatever the
// outcome, and the error returned is the one that stopped the run.
func (p *podcastPipeline) RunPipelineObserved(ctx context.Context, req domain.PodcastRequest, observer outbound.RunObserverPort) (*domain.PodcastResult, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if observer == nil {
		observer = outbound.NopRunObserver{}
	}

	workDir := filepath.Join(p.config.TmpDir, req.RequestID)
	run := domain.NewPipelineRun(req.RequestID, req.Kind, workDir)
	tracker := NewResourceTracker(p.logger)
	tracker.TrackDir(workDir)

	fields := map[string]interface{}{
		"request_id": req.RequestID,
		"type":       req.Kind,
	}
	p.logger.InfoWithFields("Podcast pipeline started", fields)

	result, err := p.execute(ctx, run, req, tracker, observer)

	warnings := tracker.Release()
	if err != nil {
		run.Status = domain.RunFailed
		observer.OnStatus(run.RequestID, run.Status)
		p.logger.ErrorWithFields(err, "Podcast pipeline failed", fields)
		return nil, err
	}

	p.advance(run, observer, domain.Cleaned)
	p.logger.InfoWithFields("Podcast pipeline completed", map[string]interface{}{
		"request_id":       req.RequestID,
		"type":             req.Kind,
		"url":              result.URL,
		"segments":         len(run.Segments),
		"cleanup_warnings": len(warnings),
	})
	return result, nil
}

func (p *podcastPipeline) execute(ctx context.Context, run *domain.PipelineRun, req domain.PodcastRequest,
	tracker *ResourceTracker, observer outbound.RunObserverPort) (*domain.PodcastResult, error) {
	if err := os.MkdirAll(run.WorkDir, 0o755); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}

	script, err := p.obtainScript(ctx, req)
	if err != nil {
		return nil, err
	}
	p.advance(run, observer, domain.ScriptReady)

	run.Segments = p.segmenter.Segment(script, req.HostName, req.GuestName)
	if len(run.Segments) == 0 {
		return nil, domain.ErrSegmentationEmpty
	}
	p.advance(run, observer, domain.SegmentsReady)

	audioPaths, err := p.voice.Run(ctx, run, req, tracker)
	if err != nil {
		return nil, err
	}
	run.RecordStage(domain.VoiceSynthesisStage, audioPaths)
	p.advance(run, observer, domain.AudioReady)

	mergeStage := domain.VoiceSynthesisStage
	if req.Kind == domain.VideoPodcast {
		audioURLs, err := p.upload.Run(ctx, run, audioPaths)
		if err != nil {
			return nil, err
		}
		run.RecordStage(domain.AudioUploadStage, audioURLs)
		p.advance(run, observer, domain.UploadReady)

		videoPaths, err := p.video.Run(ctx, run, req, audioURLs, tracker)
		if err != nil {
			return nil, err
		}
		run.RecordStage(domain.VideoSynthesisStage, videoPaths)
		p.advance(run, observer, domain.VideoReady)
		mergeStage = domain.VideoSynthesisStage
	}

	finalPath, err := p.merge(ctx, run, mergeStage, tracker)
	if err != nil {
		return nil, err
	}
	p.advance(run, observer, domain.Merged)

	key := finalArtifactKey(run.RequestID, run.Kind)
	url, err := p.blobs.Put(ctx, finalPath, key)
	if err != nil {
		return nil, &domain.UploadFailure{Key: key, Cause: err}
	}
	run.FinalArtifactURL = url
	p.advance(run, observer, domain.Uploaded)

	return &domain.PodcastResult{
		URL:                      url,
		EstimatedDurationSeconds: len(run.Segments) * p.config.SecondsPerSegment,
		Type:                     run.Kind,
	}, nil
}

func (p *podcastPipeline) obtainScript(ctx context.Context, req domain.PodcastRequest) (string, error) {
	if req.InputType == domain.ScriptInput {
		return req.InputText, nil
	}
	script, err := p.scripts.Generate(ctx, outbound.ScriptRequest{
		Topic:           req.InputText,
		HostName:        req.HostName,
		GuestName:       req.GuestName,
		Language:        req.Language,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return "", &domain.ScriptFailure{Cause: err}
	}
	return script, nil
}

// merge concatenates the stage outputs in ascending segment order, regardless of the order the
// units finished in.
func (p *podcastPipeline) merge(ctx context.Context, run *domain.PipelineRun, stage domain.StageName, tracker *ResourceTracker) (string, error) {
	inputs, ok := run.Ordered(stage)
	if !ok {
		return "", &domain.MergeFailure{Kind: run.Kind, Cause: fmt.Errorf("missing %s output for at least one segment", stage)}
	}

	outputPath := filepath.Join(run.WorkDir, finalArtifactName(run.Kind))
	tracker.Track(outputPath)

	var err error
	if run.Kind == domain.VideoPodcast {
		err = p.media.ConcatenateVideo(ctx, inputs, outputPath)
	} else {
		err = p.media.ConcatenateAudio(ctx, inputs, outputPath)
	}
	if err != nil {
		return "", &domain.MergeFailure{Kind: run.Kind, Cause: err}
	}
	return outputPath, nil
}

func (p *podcastPipeline) advance(run *domain.PipelineRun, observer outbound.RunObserverPort, status domain.RunStatus) {
	run.Status = status
	observer.OnStatus(run.RequestID, status)
	p.logger.DebugWithFields("Pipeline status changed", map[string]interface{}{
		"request_id": run.RequestID,
		"status":     status,
	})
}
