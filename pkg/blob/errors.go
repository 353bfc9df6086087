package blob

import (
	"fmt"
	"io/fs"
)

// The three error kinds below are the only failures allowed to cross a
// Provider boundary. Backend-native errors are classified at the call site
// closest to the backend and chained as causes, never surfaced unwrapped.

// NotFoundError reports that an identified resource does not exist where one
// was required. It is reserved for genuine absence signaled by the backend;
// plain lookups report absence as a nil Blob or a false boolean instead.
//
// NotFoundError matches errors.Is(err, fs.ErrNotExist) so callers that only
// understand I/O-style errors see it as an ordinary not-exist condition.
type NotFoundError struct {
	ID  string
	Err error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("id not found %s: %v", e.ID, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

func (e *NotFoundError) Is(target error) bool { return target == fs.ErrNotExist }

// ProviderError wraps any backend failure other than absence: network,
// permission, malformed request. The original error stays on the chain for
// diagnostics.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// BodyError reports a backend that claimed success but supplied no readable
// payload, such as a fetch response with a missing body.
type BodyError struct {
	Message string
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("error while reading body: %s", e.Message)
}
