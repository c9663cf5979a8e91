// Package source fetches the script catalog and individual script files
// over HTTP.
package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bianoble/scriptpm/internal/script"
)

// HTTPClient abstracts HTTP operations for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultHTTPClient returns an HTTPClient using http.DefaultClient.
type DefaultHTTPClient struct{}

func (DefaultHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return http.DefaultClient.Do(req)
}

// Transport holds the settings shared by the catalog and content fetchers.
type Transport struct {
	Client  HTTPClient
	MaxSize int64         // max body size in bytes (0 = no limit)
	Timeout time.Duration // per-request timeout (0 = no extra timeout beyond context)
}

// get issues a GET and returns the response only when it is a 200. The
// returned cancel func must be called once the body has been consumed.
func (t Transport) get(ctx context.Context, url string) (*http.Response, context.CancelFunc, error) {
	cancel := context.CancelFunc(func() {})
	if t.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
	}

	client := t.Client
	if client == nil {
		client = DefaultHTTPClient{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, nil, &script.TransportError{URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}

	resp, err := client.Do(req)
	if err != nil {
		cancel()
		return nil, nil, &script.TransportError{URL: url, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, nil, &script.TransportError{URL: url, Status: resp.StatusCode}
	}

	return resp, cancel, nil
}
