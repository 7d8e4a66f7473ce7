package storage

import "context"

// RemoveResult is the outcome of one deletion within a batch. Err is nil
// when the object was removed (or was already gone).
type RemoveResult struct {
	URL string
	Err error
}

// MediaStorage is the remote object store holding listing images. Upload
// returns a stable public URL for the stored object; RemoveBatch takes
// those URLs back and derives the object keys from them.
type MediaStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
	// RemoveBatch deletes the given URLs one at a time and reports a
	// per-item outcome. It never stops early: a failed item does not
	// block the rest of the batch.
	RemoveBatch(ctx context.Context, fileURLs []string) []RemoveResult
}
