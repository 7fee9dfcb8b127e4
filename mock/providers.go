// Package mock_generator holds in-process stand-ins for the external providers. They back
// local runs without credentials and serve as fakes in tests.
package mock_generator

import (
	"context"
	"sync"
	"time"

	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
)

type Providers struct {
	Scripts *ScriptGenerator
	Voices  *VoiceSynthesizer
	Blobs   *BlobStore
	Avatars *AvatarVideo
	Media   *MediaConcatenator
}

func NewStubProviders() Providers {
	return Providers{
		Scripts: NewScriptGenerator(),
		Voices:  NewVoiceSynthesizer(),
		Blobs:   NewBlobStore(),
		Avatars: NewAvatarVideo(),
		Media:   NewMediaConcatenator(),
	}
}

var (
	_ outbound.ScriptGeneratorPort   = (*ScriptGenerator)(nil)
	_ outbound.VoiceSynthesizerPort  = (*VoiceSynthesizer)(nil)
	_ outbound.BlobStorePort         = (*BlobStore)(nil)
	_ outbound.AvatarVideoPort       = (*AvatarVideo)(nil)
	_ outbound.MediaConcatenatorPort = (*MediaConcatenator)(nil)
)

// concurrencyGauge tracks how many calls are in flight and the peak observed.
type concurrencyGauge struct {
	mu      sync.Mutex
	current int
	peak    int
}

func (g *concurrencyGauge) enter() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current++
	if g.current > g.peak {
		g.peak = g.current
	}
}

func (g *concurrencyGauge) leave() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current--
}

func (g *concurrencyGauge) Peak() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.peak
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
