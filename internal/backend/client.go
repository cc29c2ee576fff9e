// Package backend implements ports.BackendClient: a single, reused,
// thread-safe HTTP/1.1 client pool that forwards a proxied request to
// its resolved shard URL, per spec §4.5.
package backend

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Client implements ports.BackendClient over net/http, configured with
// no redirect following and an explicit per-request read timeout
// (the proxy already bounded the request body at ingress, so no
// response body cap is applied here).
type Client struct {
	http *http.Client
}

// Config controls connect/read/idle timeouts, per spec §5's default
// table (connect=5s, read=30s, idle=3s).
type Config struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	IdleTimeout    time.Duration
}

// New creates a Client.
func New(cfg Config) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: cfg.ConnectTimeout,
		}).DialContext,
		IdleConnTimeout:     cfg.IdleTimeout,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
	}

	return &Client{
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.ReadTimeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Forward issues req against targetURL. The caller must close
// resp.Body.
func (c *Client) Forward(ctx context.Context, targetURL string, req *http.Request) (*http.Response, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, err
	}

	outReq := req.Clone(ctx)
	outReq.URL.Scheme = u.Scheme
	outReq.URL.Host = u.Host
	outReq.Host = u.Host
	outReq.RequestURI = ""

	return c.http.Do(outReq)
}
