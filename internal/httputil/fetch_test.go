// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Success(t *testing.T) {
	var gotUA, gotAccept string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("hello"))
	}))
	defer ts.Close()

	body, err := Get(context.Background(), ts.Client(), Request{
		URL:       ts.URL,
		Accept:    "text/html",
		UserAgent: "patent-content/test",
		Timeout:   time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, "patent-content/test", gotUA)
	assert.Equal(t, "text/html", gotAccept)
}

func TestGet_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := Get(context.Background(), ts.Client(), Request{URL: ts.URL})
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.False(t, IsTimeout(err))
}

func TestGet_TimeoutIsClassified(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer ts.Close()
	defer close(release)

	_, err := Get(context.Background(), ts.Client(), Request{URL: ts.URL, Timeout: 50 * time.Millisecond})
	require.Error(t, err)

	var te *TimeoutError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 50*time.Millisecond, te.Timeout)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestGet_NoRetry(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := Get(context.Background(), ts.Client(), Request{URL: ts.URL})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGet_CancelledIsNotTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Get(ctx, ts.Client(), Request{URL: ts.URL})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsTimeout(err))
}

func TestGet_BodyOverLimitFails(t *testing.T) {
	saved := MaxBodyBytes
	MaxBodyBytes = 8
	t.Cleanup(func() { MaxBodyBytes = saved })

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Query().Get("body")))
	}))
	defer ts.Close()

	body, err := Get(context.Background(), ts.Client(), Request{URL: ts.URL + "?body=12345678"})
	require.NoError(t, err)
	assert.Equal(t, "12345678", string(body))

	_, err = Get(context.Background(), ts.Client(), Request{URL: ts.URL + "?body=123456789"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBodyTooLarge)

	var be *BodyTooLargeError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, int64(8), be.Limit)
}
