// Package fetch defines the HTTP transport capability consumed by the
// gateway client. The client never talks to the network directly; it
// hands a rendered document to a Fetcher and gets raw bytes back, which
// keeps connection pooling, TLS and socket-level policy out of the
// protocol layer and makes the client trivially testable.
package fetch

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Response is the raw outcome of one HTTP exchange.
type Response struct {
	StatusCode int
	Body       []byte
}

// Fetcher posts a request body and returns the raw response. Transport
// failures are returned as errors; a gateway-level error inside a 2xx
// or 5xx body is not the Fetcher's concern.
type Fetcher interface {
	Fetch(ctx context.Context, url string, body []byte, headers map[string]string) (*Response, error)
}

// HTTPFetcher is the default Fetcher. It performs no retries: the
// gateway does not guarantee idempotency for mutating operations, so
// repeating a request is strictly the caller's decision.
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher creates a fetcher with the given per-request timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	c := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0)
	return &HTTPFetcher{client: c}
}

// NewHTTPFetcherWithClient wraps an existing *http.Client, for callers
// that manage their own transport.
func NewHTTPFetcherWithClient(hc *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: resty.NewWithClient(hc).SetRetryCount(0)}
}

// Fetch posts body to url.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, body []byte, headers map[string]string) (*Response, error) {
	req := f.client.R().
		SetContext(ctx).
		SetBody(body)
	for k, v := range headers {
		req.SetHeader(k, v)
	}

	resp, err := req.Post(url)
	if err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}
