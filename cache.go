package odatagen

import "context"

// Cache is the interface for the locally cached metadata document.
// Implementations decide where the document lives (a file next to the
// project, a temp directory, memory in tests).
type Cache interface {
	// Get retrieves the cached document.
	// Returns nil, nil if nothing has been cached yet.
	Get(ctx context.Context) ([]byte, error)

	// Set stores the document, replacing any previous content.
	Set(ctx context.Context, data []byte) error
}
