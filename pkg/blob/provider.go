package blob

import "context"

// Provider is the capability contract for a storage backend. Implementations
// must be safe for concurrent use and hold no per-call state across calls.
// Operations on the same key are not serialized here; any read-after-write
// guarantee is a property of the backend. Failures are surfaced once,
// classified into the package error kinds, and never retried.
type Provider interface {
	// GetBlob fetches the blob stored under key. An absent key is a normal
	// outcome reported as (nil, nil), never as an error. The returned blob's
	// content streams from the backend; the caller drives and closes it.
	GetBlob(ctx context.Context, key string) (*Blob, error)

	// StoreBlob uploads the blob's payload under its key and returns a blob
	// describing the stored result. Implementations may echo the payload back
	// or return an empty blob carrying just key and size; callers must not
	// assume payload echo unless the implementation documents it.
	StoreBlob(ctx context.Context, b *Blob) (*Blob, error)

	// IsBlobPresent checks existence of key. Absence is reported as
	// (false, nil), never as an error.
	IsBlobPresent(ctx context.Context, key string) (bool, error)

	// DeleteBlob removes the blob stored under key. Deleting an absent key
	// succeeds, so the call is idempotent.
	DeleteBlob(ctx context.Context, key string) error
}
