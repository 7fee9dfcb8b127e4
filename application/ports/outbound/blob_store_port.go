package outbound

import "context"

// BlobStorePort uploads a local file under key and returns its publicly fetchable URL.
type BlobStorePort interface {
	Put(ctx context.Context, localPath string, key string) (string, error)
}
