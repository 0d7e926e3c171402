// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the bounded HTTP execution shared by the upstream
// collaborators. Every call is single-shot: failures are terminal for that
// request and are classified as timeouts or HTTP status failures so callers
// can tell them apart.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// MaxBodyBytes caps how much of a response body is read. Declared as a var so
// tests can lower it.
var MaxBodyBytes int64 = 16 << 20

// ErrTimeout is matched by every *TimeoutError via errors.Is.
var ErrTimeout = errors.New("upstream request timed out")

// TimeoutError reports that an upstream call exceeded its time bound.
type TimeoutError struct {
	URL     string
	Timeout time.Duration
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %v (limit %v)", e.URL, e.Elapsed.Round(time.Millisecond), e.Timeout)
}

// Is lets errors.Is(err, ErrTimeout) succeed.
func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	URL        string
	StatusCode int

	// Body holds the start of the response body so callers can surface an
	// upstream-provided error message.
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// ErrBodyTooLarge is matched by every *BodyTooLargeError via errors.Is.
var ErrBodyTooLarge = errors.New("upstream response too large")

// BodyTooLargeError reports a response body longer than MaxBodyBytes.
type BodyTooLargeError struct {
	URL   string
	Limit int64
}

func (e *BodyTooLargeError) Error() string {
	return fmt.Sprintf("response from %s exceeds %d bytes", e.URL, e.Limit)
}

// Is lets errors.Is(err, ErrBodyTooLarge) succeed.
func (e *BodyTooLargeError) Is(target error) bool { return target == ErrBodyTooLarge }

// Request describes one GET against an upstream.
type Request struct {
	URL       string
	Accept    string
	UserAgent string

	// DisplayURL replaces URL in returned errors when the real URL carries
	// credentials.
	DisplayURL string

	// Timeout bounds the whole exchange including reading the body. Zero
	// leaves the bound to the client and the caller's context.
	Timeout time.Duration
}

// Get performs r once and returns the response body. A deadline hit while
// connecting, waiting, or reading yields *TimeoutError; a non-2xx status
// yields *StatusError; a body over MaxBodyBytes yields *BodyTooLargeError.
// Nothing is retried.
func Get(ctx context.Context, client *http.Client, r Request) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	start := time.Now()
	shown := r.URL
	if r.DisplayURL != "" {
		shown = r.DisplayURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}
	if r.Accept != "" {
		req.Header.Set("Accept", r.Accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		if IsTimeout(err) {
			return nil, &TimeoutError{URL: shown, Timeout: r.Timeout, Elapsed: time.Since(start)}
		}
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return nil, fmt.Errorf("HTTP request to %s: %w", shown, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{URL: shown, StatusCode: resp.StatusCode, Body: snippet}
	}

	limit := MaxBodyBytes
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		if IsTimeout(err) {
			return nil, &TimeoutError{URL: shown, Timeout: r.Timeout, Elapsed: time.Since(start)}
		}
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, &BodyTooLargeError{URL: shown, Limit: limit}
	}
	return body, nil
}

// IsTimeout reports whether err stems from a deadline rather than a refused
// connection or a cancelled caller.
func IsTimeout(err error) bool {
	if errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
