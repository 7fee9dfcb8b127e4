package outbound

import (
	"context"

	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

// MediaConcatenatorPort joins inputs in exactly the order given.
type MediaConcatenatorPort interface {
	ConcatenateAudio(ctx context.Context, inputs []string, outputPath string) error
	ConcatenateVideo(ctx context.Context, inputs []string, outputPath string) error
	CropPad(ctx context.Context, inputPath string, outputPath string, geometry domain.FrameGeometry) error
}
