package mock_generator

import (
	"context"
	"os"
	"sync"
)

const StubBaseURL = "https://stub.local/"

type BlobStore struct {
	concurrencyGauge
	mu       sync.Mutex
	Fail     func(key string) error
	contents map[string][]byte
}

func NewBlobStore() *BlobStore {
	return &BlobStore{
		contents: make(map[string][]byte),
	}
}

func (b *BlobStore) Put(_ context.Context, localPath string, key string) (string, error) {
	b.enter()
	defer b.leave()

	b.mu.Lock()
	fail := b.Fail
	b.mu.Unlock()
	if fail != nil {
		if err := fail(key); err != nil {
			return "", err
		}
	}

	content, err := os.ReadFile(localPath)
	if err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.contents[key] = content
	return StubBaseURL + key, nil
}

func (b *BlobStore) Content(key string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	content, ok := b.contents[key]
	return content, ok
}

func (b *BlobStore) Keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := make([]string, 0, len(b.contents))
	for key := range b.contents {
		keys = append(keys, key)
	}
	return keys
}
