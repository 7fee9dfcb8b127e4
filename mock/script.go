package mock_generator

import (
	"context"
	"fmt"
	"sync"

	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
)

type ScriptGenerator struct {
	mu sync.Mutex
	// Script overrides the generated dialogue when set.
	Script string
	Err    error
	Calls  []outbound.ScriptRequest
}

func NewScriptGenerator() *ScriptGenerator {
	return &ScriptGenerator{}
}

func (s *ScriptGenerator) Generate(_ context.Context, req outbound.ScriptRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, req)
	if s.Err != nil {
		return "", s.Err
	}
	if s.Script != "" {
		return s.Script, nil
	}
	return fmt.Sprintf("%[1]s: Welcome to the show. Today we are talking about %[3]s.\n"+
		"%[2]s: Thanks for having me. It is a topic I care about a lot.\n"+
		"%[1]s: Where should listeners start?\n"+
		"%[2]s: With the basics, and a little curiosity.\n"+
		"%[1]s: Great advice. Thanks for joining us.\n",
		req.HostName, req.GuestName, req.Topic), nil
}
