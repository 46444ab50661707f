package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetSuccess verifies a plain successful exchange
func TestGetSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	client := New(5*time.Second, 0, "test-agent")
	resp, err := client.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello", resp.Body)
}

// TestGetRetriesServerErrors verifies 5xx responses are retried until the
// budget runs out, then the last response is returned
func TestGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("eventually"))
	}))
	defer srv.Close()

	client := New(5*time.Second, 3, "")
	resp, err := client.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "eventually", resp.Body)
	assert.Equal(t, int32(3), calls.Load())
}

// TestGetExhaustedRetriesReturnsLastResponse verifies the caller still sees
// the final 5xx once the budget is spent
func TestGetExhaustedRetriesReturnsLastResponse(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(5*time.Second, 1, "")
	resp, err := client.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, int32(2), calls.Load())
}

// TestGetDoesNotRetryClientErrors verifies 4xx responses come back
// immediately
func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(5*time.Second, 5, "")
	resp, err := client.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

// TestGetNetworkFailure verifies an unreachable host errors after the budget
func TestGetNetworkFailure(t *testing.T) {
	client := New(time.Second, 1, "")
	_, err := client.Get(context.Background(), "http://127.0.0.1:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 2 attempts")
}

// TestGetHonorsContextCancellation verifies a cancelled context stops the
// retry loop
func TestGetHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := New(time.Second, 3, "")
	_, err := client.Get(ctx, "http://127.0.0.1:1")
	assert.ErrorIs(t, err, context.Canceled)
}

// TestNewDefaults verifies zero-value construction falls back to defaults
func TestNewDefaults(t *testing.T) {
	client := New(0, -1, "")
	assert.Equal(t, DefaultMaxRetries, client.maxRetries)
	assert.Equal(t, DefaultUserAgent, client.userAgent)
	assert.Equal(t, DefaultTimeout, client.http.Timeout)
}
