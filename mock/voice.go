package mock_generator

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
)

type VoiceSynthesizer struct {
	concurrencyGauge
	mu sync.Mutex
	// Delay and Fail are consulted per call when set.
	Delay func(req outbound.SynthesizeVoiceRequest) time.Duration
	Fail  func(req outbound.SynthesizeVoiceRequest) error
	calls []outbound.SynthesizeVoiceRequest
}

func NewVoiceSynthesizer() *VoiceSynthesizer {
	return &VoiceSynthesizer{}
}

// Synthesize writes a placeholder file. A failing call still leaves its partial file behind.
func (v *VoiceSynthesizer) Synthesize(ctx context.Context, req outbound.SynthesizeVoiceRequest) (string, error) {
	v.enter()
	defer v.leave()

	v.mu.Lock()
	v.calls = append(v.calls, req)
	delay, fail := v.Delay, v.Fail
	v.mu.Unlock()

	if delay != nil {
		if err := sleepCtx(ctx, delay(req)); err != nil {
			return "", err
		}
	}
	if err := os.WriteFile(req.OutputPath, []byte("audio:"+req.Text), 0o644); err != nil {
		return "", err
	}
	if fail != nil {
		if err := fail(req); err != nil {
			return "", err
		}
	}
	return req.OutputPath, nil
}

func (v *VoiceSynthesizer) Calls() []outbound.SynthesizeVoiceRequest {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]outbound.SynthesizeVoiceRequest(nil), v.calls...)
}
