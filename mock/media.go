package mock_generator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sync"

	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

// MediaConcatenator joins the input files byte for byte, one per line, so the merged output
// shows the order it was given.
type MediaConcatenator struct {
	mu     sync.Mutex
	Err    error
	merges [][]string
	crops  []string
}

func NewMediaConcatenator() *MediaConcatenator {
	return &MediaConcatenator{}
}

func (m *MediaConcatenator) ConcatenateAudio(_ context.Context, inputs []string, outputPath string) error {
	return m.concatenate(inputs, outputPath)
}

func (m *MediaConcatenator) ConcatenateVideo(_ context.Context, inputs []string, outputPath string) error {
	return m.concatenate(inputs, outputPath)
}

func (m *MediaConcatenator) CropPad(_ context.Context, inputPath string, outputPath string, _ domain.FrameGeometry) error {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.crops = append(m.crops, inputPath)
	m.mu.Unlock()
	return os.WriteFile(outputPath, append([]byte("cropped:"), content...), 0o644)
}

func (m *MediaConcatenator) concatenate(inputs []string, outputPath string) error {
	m.mu.Lock()
	m.merges = append(m.merges, append([]string(nil), inputs...))
	err := m.Err
	m.mu.Unlock()
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.New("no inputs to concatenate")
	}

	parts := make([][]byte, 0, len(inputs))
	for _, input := range inputs {
		content, err := os.ReadFile(input)
		if err != nil {
			return err
		}
		parts = append(parts, content)
	}
	return os.WriteFile(outputPath, bytes.Join(parts, []byte("\n")), 0o644)
}

func (m *MediaConcatenator) Merges() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string(nil), m.merges...)
}

func (m *MediaConcatenator) Crops() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.crops...)
}
