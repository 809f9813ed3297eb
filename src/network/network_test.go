package network

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-report/src/helpers"
	"sales-report/src/logger"
	"sales-report/src/models"
)

func newFetcher() *HTTPFetcher {
	cfg := &models.MConfig{Network: models.MNetworkConfig{RequestTimeout: 5, UserAgent: "test-agent"}}
	return NewHTTPFetcher(cfg, logger.NewNopLogger())
}

func TestGetReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("City,Sales\nAustin,10\n"))
	}))
	defer srv.Close()

	body, err := newFetcher().Get(context.Background(), srv.URL+"/city_info.csv")
	require.NoError(t, err)
	assert.Equal(t, "City,Sales\nAustin,10\n", string(body))
}

func TestGetBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newFetcher().Get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, "network", helpers.ErrorKind(err))
}

func TestGetRejectsScheme(t *testing.T) {
	_, err := newFetcher().Get(context.Background(), "ftp://example.com/data.csv")
	require.Error(t, err)
	assert.Equal(t, "network", helpers.ErrorKind(err))
}

func TestGetHonorsCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newFetcher().Get(ctx, srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetRejectsOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("City,Sales\nAustin,10\n"))
	}))
	defer srv.Close()

	f := newFetcher()
	f.MaxBodyBytes = 10
	_, err := f.Get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, "network", helpers.ErrorKind(err))
	assert.Contains(t, err.Error(), "exceeds 10 bytes")

	f.MaxBodyBytes = int64(len("City,Sales\nAustin,10\n"))
	body, err := f.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, body, int(f.MaxBodyBytes))
}
