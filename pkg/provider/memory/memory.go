// Package memory implements an in-memory blob.Provider. It backs unit tests
// and the CLI mock mode; payloads are fully materialized, so it is not meant
// for large objects.
package memory

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/DrSkyle/hold/pkg/blob"
)

// Provider stores blobs in a mutex-guarded map.
type Provider struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// New returns an empty in-memory provider.
func New() *Provider {
	return &Provider{blobs: make(map[string][]byte)}
}

// GetBlob returns the stored blob, or (nil, nil) when key is absent.
func (p *Provider) GetBlob(ctx context.Context, key string) (*blob.Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, &blob.ProviderError{Err: err}
	}

	p.mu.RLock()
	data, ok := p.blobs[key]
	p.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	// Copy so a caller mutating the read buffer cannot corrupt the store.
	out := make([]byte, len(data))
	copy(out, data)
	return blob.FromBytes(key, out), nil
}

// StoreBlob drains the payload into the map. The declared size is checked
// against the bytes actually read; a mismatch is a provider error.
func (p *Provider) StoreBlob(ctx context.Context, b *blob.Blob) (*blob.Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, &blob.ProviderError{Err: err}
	}

	content := b.Content()
	defer content.Close()

	data, err := io.ReadAll(content)
	if err != nil {
		return nil, &blob.ProviderError{Err: err}
	}
	if int64(len(data)) != b.Size() {
		return nil, &blob.ProviderError{
			Err: fmt.Errorf("declared size %d does not match payload length %d", b.Size(), len(data)),
		}
	}

	p.mu.Lock()
	p.blobs[b.Key()] = data
	p.mu.Unlock()

	return blob.Empty(b.Key(), b.Size()), nil
}

// IsBlobPresent reports whether key exists. Absence is (false, nil).
func (p *Provider) IsBlobPresent(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, &blob.ProviderError{Err: err}
	}

	p.mu.RLock()
	_, ok := p.blobs[key]
	p.mu.RUnlock()
	return ok, nil
}

// DeleteBlob removes key. Deleting an absent key succeeds.
func (p *Provider) DeleteBlob(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return &blob.ProviderError{Err: err}
	}

	p.mu.Lock()
	delete(p.blobs, key)
	p.mu.Unlock()
	return nil
}

var _ blob.Provider = (*Provider)(nil)
