package outbound

import (
	"context"

	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

type SynthesizeVoiceRequest struct {
	Text       string
	VoiceID    string
	Settings   domain.VoiceSettings
	OutputPath string
}

// VoiceSynthesizerPort writes the synthesized speech to OutputPath and returns that path.
type VoiceSynthesizerPort interface {
	Synthesize(ctx context.Context, req SynthesizeVoiceRequest) (string, error)
}
