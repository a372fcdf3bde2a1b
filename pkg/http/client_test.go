package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendsFixedHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get(HeaderAccept))
		assert.Equal(t, "bcb-series/test", r.Header.Get(HeaderUserAgent))
		assert.Equal(t, "json", r.URL.Query().Get("formato"))
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	defer srv.Close()

	c := NewClient(WithUserAgent("bcb-series/test"))
	resp, err := c.Do(context.Background(), &RequestOptions{
		URL:         srv.URL,
		QueryParams: map[string][]string{"formato": {"json"}},
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.False(t, resp.OK())
	assert.Equal(t, "short and stout", string(resp.Body))
}

func TestClientCapsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	resp, err := NewClient(WithMaxBodySize(4)).Get(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, "0123", string(resp.Body))
}
