// Package fs implements a blob.Provider over a filesystem. It takes any
// afero.Fs, so the same adapter serves a real directory tree and an in-memory
// one for tests.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/DrSkyle/hold/pkg/blob"
)

// Provider maps blob keys to files under a root directory. Key separators are
// forward slashes regardless of host OS.
type Provider struct {
	fsys afero.Fs
	root string
}

// New roots a provider at dir, creating it if needed.
func New(fsys afero.Fs, dir string) (*Provider, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, &blob.ProviderError{Err: err}
	}
	return &Provider{fsys: fsys, root: dir}, nil
}

func (p *Provider) resolve(key string) (string, error) {
	if key == "" {
		return "", &blob.ProviderError{Err: errors.New("empty blob key")}
	}
	clean := path.Clean("/" + key)
	if clean == "/" {
		return "", &blob.ProviderError{Err: fmt.Errorf("invalid blob key %q", key)}
	}
	// Clean resolves any ".." inside the key, so the result cannot escape root.
	return filepath.Join(p.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

// GetBlob opens the file behind key. A missing file is (nil, nil).
func (p *Provider) GetBlob(ctx context.Context, key string) (*blob.Blob, error) {
	target, err := p.resolve(key)
	if err != nil {
		return nil, err
	}

	f, err := p.fsys.Open(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &blob.ProviderError{Err: err}
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &blob.ProviderError{Err: err}
	}
	return blob.New(key, info.Size(), f), nil
}

// StoreBlob writes the payload to the file behind the blob's key, creating
// parent directories on the way. The byte count written is checked against
// the declared size.
func (p *Provider) StoreBlob(ctx context.Context, b *blob.Blob) (*blob.Blob, error) {
	target, err := p.resolve(b.Key())
	if err != nil {
		return nil, err
	}

	content := b.Content()
	defer content.Close()

	if err := p.fsys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, &blob.ProviderError{Err: err}
	}

	f, err := p.fsys.Create(target)
	if err != nil {
		return nil, &blob.ProviderError{Err: err}
	}

	n, err := io.Copy(f, content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		p.fsys.Remove(target)
		return nil, &blob.ProviderError{Err: err}
	}
	if n != b.Size() {
		p.fsys.Remove(target)
		return nil, &blob.ProviderError{
			Err: fmt.Errorf("declared size %d does not match %d bytes written", b.Size(), n),
		}
	}

	return blob.Empty(b.Key(), b.Size()), nil
}

// IsBlobPresent stats the file behind key. Absence is (false, nil).
func (p *Provider) IsBlobPresent(ctx context.Context, key string) (bool, error) {
	target, err := p.resolve(key)
	if err != nil {
		return false, err
	}

	info, err := p.fsys.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &blob.ProviderError{Err: err}
	}
	return !info.IsDir(), nil
}

// DeleteBlob removes the file behind key. A missing file still succeeds.
func (p *Provider) DeleteBlob(ctx context.Context, key string) error {
	target, err := p.resolve(key)
	if err != nil {
		return err
	}

	if err := p.fsys.Remove(target); err != nil && !os.IsNotExist(err) {
		return &blob.ProviderError{Err: err}
	}
	return nil
}

var _ blob.Provider = (*Provider)(nil)
