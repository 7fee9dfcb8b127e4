package outbound

import (
	"context"

	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

type SubmitVideoRequest struct {
	AvatarID   string
	AudioURL   string
	Background string
	Width      int
	Height     int
}

type AvatarVideoPort interface {
	Submit(ctx context.Context, req SubmitVideoRequest) (string, error)
	Poll(ctx context.Context, jobID string) (domain.VideoJobReport, error)
	Download(ctx context.Context, videoURL string, destPath string) error
}
