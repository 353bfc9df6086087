package blob

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestEmptyStreamIsImmediatelyExhausted(t *testing.T) {
	s := EmptyStream()

	n, err := s.Read(make([]byte, 16))
	if n != 0 {
		t.Errorf("Expected 0 bytes from empty stream, got %d", n)
	}
	if err != io.EOF {
		t.Errorf("Expected io.EOF, got %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestBytesStreamSinglePass(t *testing.T) {
	s := BytesStream([]byte("hello"))

	got, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !bytes.Equal(got, []byte("hello")) {
		t.Errorf("Expected %q, got %q", "hello", got)
	}

	// Exhausted, not restartable.
	n, err := s.Read(make([]byte, 1))
	if n != 0 || err != io.EOF {
		t.Errorf("Expected exhausted stream, got n=%d err=%v", n, err)
	}
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestReaderStreamKeepsSourceClose(t *testing.T) {
	src := &closeTracker{Reader: strings.NewReader("abc")}

	s := ReaderStream(src)
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !src.closed {
		t.Error("Expected the wrapped source to be closed")
	}
}

func TestReaderStreamPlainReader(t *testing.T) {
	s := ReaderStream(strings.NewReader("abc"))

	got, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(got) != "abc" {
		t.Errorf("Expected %q, got %q", "abc", got)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
