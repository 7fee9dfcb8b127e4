package services

import (
	"context"

	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

type VoiceStage struct {
	logger      outbound.LoggerPort
	executor    *StageExecutor
	synthesizer outbound.VoiceSynthesizerPort
	limit       int
}

func NewVoiceStage(logger outbound.LoggerPort, executor *StageExecutor, synthesizer outbound.VoiceSynthesizerPort, limit int) *VoiceStage {
	return &VoiceStage{
		logger:      logger,
		executor:    executor,
		synthesizer: synthesizer,
		limit:       limit,
	}
}

// Run synthesizes one audio file per segment and returns the local paths in segment order.
func (v *VoiceStage) Run(ctx context.Context, run *domain.PipelineRun, req domain.PodcastRequest, tracker *ResourceTracker) ([]string, error) {
	return ExecuteStage(ctx, v.executor, domain.VoiceSynthesisStage, run.Segments, v.limit,
		func(ctx context.Context, index int, segment domain.Segment) (string, error) {
			outputPath := segmentAudioPath(run.WorkDir, segment.Index)
			tracker.Track(outputPath)

			v.logger.DebugWithFields("Synthesizing segment audio", map[string]interface{}{
				"request_id": run.RequestID,
				"segment":    segment.Index,
				"speaker":    segment.Speaker,
			})

			return v.synthesizer.Synthesize(ctx, outbound.SynthesizeVoiceRequest{
				Text:       segment.Text,
				VoiceID:    req.VoiceFor(segment.Speaker),
				Settings:   req.Voice,
				OutputPath: outputPath,
			})
		})
}
