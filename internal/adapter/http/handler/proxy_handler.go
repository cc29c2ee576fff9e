// Package handler holds the HTTP entry points: the reverse-proxy
// pipeline, the payment API, the shard-config probe, and health.
package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/unicitylabs/aggregator-proxy/internal/adapter/http/middleware"
	"github.com/unicitylabs/aggregator-proxy/internal/core/ports"
	"github.com/unicitylabs/aggregator-proxy/pkg/apperror"
	"github.com/unicitylabs/aggregator-proxy/pkg/response"
)

// hopByHop is the header set RequestPipeline never forwards, per
// spec.md §4.1 step 6.
var hopByHop = map[string]bool{
	"Host":                true,
	"Connection":          true,
	"Content-Length":      true,
	"Expect":              true,
	"Upgrade":             true,
	"Te":                  true,
	"Transfer-Encoding":   true,
	"Keep-Alive":          true,
	"Proxy-Connection":    true,
	"Trailer":             true,
	"Proxy-Authenticate":  true,
	"Proxy-Authorization": true,
	"Authorization":       true,
	"X-Api-Key":           true,
}

// relaySkip is the header set not copied back from the backend's
// response, per spec.md §4.1 step 7.
var relaySkip = map[string]bool{
	"Connection":                       true,
	"Transfer-Encoding":                true,
	"Access-Control-Allow-Origin":      true,
	"Access-Control-Allow-Methods":     true,
	"Access-Control-Allow-Headers":     true,
	"Access-Control-Allow-Credentials": true,
}

type rpcEnvelope struct {
	Method string `json:"method"`
	Params struct {
		RequestID string `json:"requestId"`
		ShardID   *int   `json:"shardId"`
	} `json:"params"`
}

// ProxyHandler implements the RequestPipeline of spec.md §4.1: it owns
// every path not reserved for the payment, config, health, or (out of
// scope) admin surfaces.
type ProxyHandler struct {
	router           func() ports.ShardRouter
	backend          ports.BackendClient
	auth             *middleware.Authenticator
	protectedMethods map[string]bool
	log              zerolog.Logger
}

// NewProxyHandler builds a ProxyHandler. routerFn returns whatever
// ShardRouter the ConfigReloader currently holds, so an in-flight
// request observes a consistent snapshot even if the router is swapped
// mid-handling.
func NewProxyHandler(routerFn func() ports.ShardRouter, backend ports.BackendClient, auth *middleware.Authenticator, protectedMethods []string, log zerolog.Logger) *ProxyHandler {
	set := make(map[string]bool, len(protectedMethods))
	for _, m := range protectedMethods {
		set[m] = true
	}
	return &ProxyHandler{router: routerFn, backend: backend, auth: auth, protectedMethods: set, log: log}
}

// requiresAuth reports whether a request is JSON-RPC and its method is
// in the protected set, per spec.md §4.1 step 4.
func (h *ProxyHandler) requiresAuth(envelope *rpcEnvelope) bool {
	return envelope != nil && h.protectedMethods[envelope.Method]
}

// Classify implements step 3: a best-effort, silent-on-failure parse of
// the JSON-RPC envelope. Returns nil if the body isn't a JSON-RPC call.
func Classify(body []byte) *rpcEnvelope {
	var env rpcEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}
	if env.Method == "" {
		return nil
	}
	return &env
}

// ServeHTTP implements steps 2-7. Step 1 (BodyGuard) runs as gin
// middleware ahead of this handler; step 4's auth gate is applied here,
// conditionally, since only after classification (step 3) is it known
// whether a given request needs it at all.
func (h *ProxyHandler) ServeHTTP(c *gin.Context) {
	var body []byte
	if isBodyMethod(c.Request.Method) {
		b, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.PlainError(c, apperror.ErrBodyTooLarge())
			return
		}
		body = b
	}

	var envelope *rpcEnvelope
	if c.Request.Method == http.MethodPost {
		envelope = Classify(body)
	}

	if h.requiresAuth(envelope) {
		if !h.auth.Gate(c) {
			return
		}
	}

	targetURL, appErr := h.resolveTarget(c, envelope)
	if appErr != nil {
		response.PlainError(c, appErr)
		return
	}

	outReq, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, c.Request.URL.RequestURI(), newBodyReader(body))
	if err != nil {
		response.PlainError(c, apperror.ErrBadGateway(err))
		return
	}
	copyForwardHeaders(c.Request.Header, outReq.Header)

	resp, err := h.backend.Forward(c.Request.Context(), targetURL, outReq)
	if err != nil {
		h.log.Warn().Err(err).Str("target", targetURL).Msg("backend forward failed")
		response.PlainError(c, apperror.ErrBadGateway(err))
		return
	}
	defer resp.Body.Close()

	relayResponse(c, resp)
}

// resolveTarget implements spec.md §4.3's route-resolution decision
// table, consulted both for non-JSON-RPC cookie fallback and JSON-RPC
// params.
func (h *ProxyHandler) resolveTarget(c *gin.Context, envelope *rpcEnvelope) (string, *apperror.AppError) {
	router := h.router()

	requestID, shardID := routeParams(c, envelope)

	switch {
	case requestID != "" && shardID != nil:
		return "", apperror.ErrAmbiguousRoute()
	case shardID != nil:
		url, err := router.RouteByShardID(*shardID)
		if err != nil {
			return "", apperror.ErrUnknownShard()
		}
		return url, nil
	case requestID != "":
		url, err := router.RouteByRequestID(requestID)
		if err != nil {
			return "", apperror.ErrMalformedRequestID()
		}
		return url, nil
	case envelope != nil:
		return "", apperror.ErrMissingRouteParams()
	default:
		url, err := router.RandomTarget()
		if err != nil {
			return "", apperror.ErrBadGateway(err)
		}
		return url, nil
	}
}

// routeParams resolves the effective (requestId, shardId) pair: the
// JSON-RPC envelope's params take priority; for non-JSON-RPC requests,
// the UNICITY_REQUEST_ID/UNICITY_SHARD_ID cookies substitute.
func routeParams(c *gin.Context, envelope *rpcEnvelope) (requestID string, shardID *int) {
	if envelope != nil {
		return envelope.Params.RequestID, envelope.Params.ShardID
	}
	if cookie, err := c.Cookie("UNICITY_REQUEST_ID"); err == nil && cookie != "" {
		requestID = cookie
	}
	if cookie, err := c.Cookie("UNICITY_SHARD_ID"); err == nil && cookie != "" {
		var id int
		if _, err := fmt.Sscan(cookie, &id); err == nil {
			shardID = &id
		}
	}
	return requestID, shardID
}

func isBodyMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func newBodyReader(body []byte) io.Reader {
	if body == nil {
		return nil
	}
	return &byteReader{b: body}
}

type byteReader struct {
	b   []byte
	pos int
}

func (r *byteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.b) {
		return 0, io.EOF
	}
	n := copy(p, r.b[r.pos:])
	r.pos += n
	return n, nil
}

// copyForwardHeaders copies every header except the hop-by-hop set and
// any header named in the request's own Connection tokens.
func copyForwardHeaders(src, dst http.Header) {
	skip := make(map[string]bool, len(hopByHop))
	for name, blocked := range hopByHop {
		skip[name] = blocked
	}
	for _, token := range strings.Split(src.Get("Connection"), ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			skip[http.CanonicalHeaderKey(token)] = true
		}
	}
	for name, values := range src {
		if skip[http.CanonicalHeaderKey(name)] {
			continue
		}
		for _, v := range values {
			dst.Add(name, v)
		}
	}
}

func relayResponse(c *gin.Context, resp *http.Response) {
	for name, values := range resp.Header {
		if relaySkip[http.CanonicalHeaderKey(name)] {
			continue
		}
		for _, v := range values {
			c.Writer.Header().Add(name, v)
		}
	}
	c.Status(resp.StatusCode)
	_, _ = io.Copy(c.Writer, resp.Body)
}
