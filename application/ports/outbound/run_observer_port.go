package outbound

import "github.com/tejasg2002/Lisa-podcast-Generator/domain"

type RunObserverPort interface {
	OnStatus(requestID string, status domain.RunStatus)
}

type NopRunObserver struct{}

func (NopRunObserver) OnStatus(string, domain.RunStatus) {}
