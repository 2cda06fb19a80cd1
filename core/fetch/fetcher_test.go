package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClients_ShareRequestHeaders(t *testing.T) {
	var got []http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Clone())
		if r.URL.Path == "/page" {
			_, _ = w.Write([]byte("<main><h2>Brief</h2></main>"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := New(time.Second).Fetch(context.Background(), srv.URL+"/page")
	require.NoError(t, err)
	_, _ = NewBriefClient(srv.URL, time.Second).Fetch(context.Background(), "bebodywise")

	require.Len(t, got, 2)
	assert.Equal(t, defaultUserAgent, got[0].Get("User-Agent"))
	assert.Equal(t, defaultUserAgent, got[1].Get("User-Agent"))
	assert.Equal(t, acceptHTML, got[0].Get("Accept"))
	assert.Equal(t, acceptJSON, got[1].Get("Accept"))
}

func TestHTTPFetcher_CapsPageSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, maxPageBytes+1024))
	}))
	defer srv.Close()

	res, err := New(0).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, res.HTML, maxPageBytes)
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	assert.Equal(t, defaultTimeout, newClient(0).Timeout)
	assert.Equal(t, 5*time.Second, newClient(5*time.Second).Timeout)
}
