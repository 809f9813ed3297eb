package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"sales-report/src/helpers"
	"sales-report/src/logger"
	"sales-report/src/models"
)

// DefaultMaxBodyBytes caps a downloaded table.
const DefaultMaxBodyBytes = 256 << 20

type HTTPFetcher struct {
	Config       *models.MConfig
	Client       *http.Client
	Logger       *logger.Logger
	MaxBodyBytes int64
}

// -----------------------------------------------------------------------------

func NewHTTPFetcher(cfg *models.MConfig, log *logger.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		Config: cfg,
		Client: &http.Client{
			Timeout: time.Duration(cfg.Network.RequestTimeout) * time.Second,
		},
		Logger:       log,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// -----------------------------------------------------------------------------

// Get performs a single GET request. Failures are returned as NetworkError,
// the caller decides whether the load as a whole fails.
func (f *HTTPFetcher) Get(ctx context.Context, urlStr string) ([]byte, error) {
	reqURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, helpers.NewNetworkError(fmt.Sprintf("invalid url %q", urlStr), err)
	}
	if reqURL.Scheme != "http" && reqURL.Scheme != "https" {
		return nil, helpers.NewNetworkError(fmt.Sprintf("unsupported scheme %q", reqURL.Scheme), nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, helpers.NewNetworkError("build request", err)
	}
	if f.Config.Network.UserAgent != "" {
		req.Header.Set("User-Agent", f.Config.Network.UserAgent)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, helpers.NewNetworkError(fmt.Sprintf("GET %s", reqURL.Redacted()), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.Logger.Warning("GET %s returned status %d", reqURL.Redacted(), resp.StatusCode)
		return nil, helpers.NewNetworkError(fmt.Sprintf("GET %s: bad status %d", reqURL.Redacted(), resp.StatusCode), nil)
	}

	limit := f.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, helpers.NewNetworkError(fmt.Sprintf("read body of %s", reqURL.Redacted()), err)
	}
	if int64(len(body)) > limit {
		return nil, helpers.NewNetworkError(fmt.Sprintf("body of %s exceeds %d bytes", reqURL.Redacted(), limit), nil)
	}

	f.Logger.Debug("Fetched %d bytes from %s", len(body), reqURL.Redacted())
	return body, nil
}
