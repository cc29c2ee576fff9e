package ports

import (
	"context"
	"net/http"
)

// BackendClient is the one reused, internally thread-safe HTTP client
// pool used to forward a proxied request to its resolved shard URL.
type BackendClient interface {
	// Forward issues req against targetURL and returns the backend's
	// response. The caller is responsible for closing resp.Body.
	Forward(ctx context.Context, targetURL string, req *http.Request) (*http.Response, error)
}
