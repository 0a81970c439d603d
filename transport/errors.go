package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means the credential is missing or invalid and could
	// not be refreshed. The session has been cleared; the caller must
	// re-authenticate.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnreachable means no response arrived from the remote service.
	// Never retried automatically.
	ErrUnreachable = errors.New("optimization service unreachable")
)

// RejectedError is a client/validation rejection from the remote service.
// Detail carries the service's human-readable message verbatim.
type RejectedError struct {
	Status int
	Detail string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("request rejected (%d): %s", e.Status, e.Detail)
}
