// Package blob defines the storage-provider contract: the Blob value, the
// Provider capability interface and the closed error taxonomy every backend
// adapter maps its failures into.
package blob

import (
	"errors"
	"io"
	"sync/atomic"
)

// ErrSpent is returned by reads on a content stream that was extracted from a
// Blob whose payload has already been handed out once.
var ErrSpent = errors.New("blob content already consumed")

// Blob is an identified, sized binary payload. The payload is carried as a
// lazy, single-pass byte stream so arbitrarily large objects never have to be
// fully resident in memory.
//
// Key and Size can be read any number of times. Content can be extracted
// exactly once: a Blob is spent after the first extraction and later
// extractions yield a stream that fails with ErrSpent.
type Blob struct {
	key     string
	size    int64
	content io.ReadCloser
	spent   atomic.Bool
}

// New binds a key and a declared size to a content stream.
// The declared size is not validated against the stream; a provider that
// detects a mismatch while driving the stream reports it as an error.
func New(key string, size int64, content io.ReadCloser) *Blob {
	if content == nil {
		content = EmptyStream()
	}
	return &Blob{
		key:     key,
		size:    size,
		content: content,
	}
}

// FromBytes wraps an in-memory buffer as a blob. The size is the buffer length.
func FromBytes(key string, data []byte) *Blob {
	return New(key, int64(len(data)), BytesStream(data))
}

// Empty builds a payload-less blob that still declares a size. Providers use
// it as the store result when the backend does not echo payload bytes back.
func Empty(key string, size int64) *Blob {
	return New(key, size, EmptyStream())
}

// Key returns the caller-assigned identifier.
func (b *Blob) Key() string {
	return b.key
}

// Size returns the declared payload length in bytes.
func (b *Blob) Size() int64 {
	return b.size
}

// Content extracts the payload stream, spending the blob. The caller owns the
// returned stream and must Close it; closing before exhaustion releases
// whatever resources the source holds without draining the remaining bytes.
func (b *Blob) Content() io.ReadCloser {
	if b.spent.Swap(true) {
		return spentStream{}
	}
	return b.content
}

type spentStream struct{}

func (spentStream) Read([]byte) (int, error) { return 0, ErrSpent }
func (spentStream) Close() error             { return nil }
