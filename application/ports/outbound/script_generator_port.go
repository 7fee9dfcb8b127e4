package outbound

import (
	"context"

	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

type ScriptRequest struct {
	Topic           string
	HostName        string
	GuestName       string
	Language        domain.Language
	DurationMinutes int
}

type ScriptGeneratorPort interface {
	Generate(ctx context.Context, req ScriptRequest) (string, error)
}
