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

func fastClient() *Client {
	c := New(2 * time.Second)
	c.backoff = time.Millisecond
	return c
}

func TestDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Write([]byte(`<html><body><h1>Hello</h1></body></html>`))
	}))
	defer srv.Close()

	doc, err := fastClient().Document(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Hello", doc.Find("h1").Text())
}

func TestDocumentRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`<html><body><p>recovered</p></body></html>`))
	}))
	defer srv.Close()

	doc, err := fastClient().Document(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "recovered", doc.Find("p").Text())
	assert.Equal(t, int32(3), calls.Load())
}

func TestDocumentDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := fastClient().Document(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDocumentGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := fastClient().Document(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, int32(defaultAttempts), calls.Load())
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(&StatusError{Code: http.StatusTooManyRequests}))
	assert.True(t, retryable(&StatusError{Code: http.StatusBadGateway}))
	assert.False(t, retryable(&StatusError{Code: http.StatusForbidden}))
	assert.False(t, retryable(context.Canceled))
}
