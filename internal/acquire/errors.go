// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every *NotFoundError via errors.Is.
var ErrNotFound = errors.New("document not found")

// NotFoundError reports that the upstream had no usable identifying data
// for a canonical key.
type NotFoundError struct {
	Key string

	// Message is the upstream's own explanation, when it gave one.
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("document not found: %s: %s", e.Key, e.Message)
	}
	return fmt.Sprintf("document not found: no patent data returned for %s", e.Key)
}

// Is lets errors.Is(err, ErrNotFound) succeed.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// UpstreamError carries an error message the metadata service put in its
// response payload.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream error (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return "upstream error: " + e.Message
}
