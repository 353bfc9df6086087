package blob

import (
	"bytes"
	"io"
)

// EmptyStream returns a stream that is exhausted on the first read.
func EmptyStream() io.ReadCloser {
	return io.NopCloser(bytes.NewReader(nil))
}

// BytesStream wraps an in-memory buffer as a single-chunk stream.
func BytesStream(data []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(data))
}

// ReaderStream exposes any reader as a content stream. Sources that are
// already closeable (a backend response body, an open file) keep their own
// Close; everything else gets a no-op one.
func ReaderStream(r io.Reader) io.ReadCloser {
	if rc, ok := r.(io.ReadCloser); ok {
		return rc
	}
	return io.NopCloser(r)
}
