package ports

import "context"

// Contract for caching raw directory payloads between requests. Payloads are
// stored as opaque JSON blobs keyed by resource name.
type SnapshotCache interface {
	// Return the cached payload for a resource, or (nil, false, nil) on a miss.
	GetPayload(ctx context.Context, resource string) ([]byte, bool, error)
	// Store a payload for a resource, replacing any existing entry.
	PutPayload(ctx context.Context, resource string, payload []byte) error
}
