package ports

import "github.com/unicitylabs/aggregator-proxy/internal/core/domain"

// ShardRouter resolves a request to a backend URL by request-id
// bit-suffix trie lookup or by explicit shard id, per spec §4.3. A
// router built from an invalid ShardConfig is a "failsafe" router: it
// refuses routing (RouteByRequestId/RouteByShardId/RandomTarget all
// error) but still exists so admin traffic is unaffected.
type ShardRouter interface {
	// RouteByRequestID parses hex (optionally "0x"-prefixed, any case)
	// as a 256-bit integer and descends the trie LSB-first.
	RouteByRequestID(hex string) (url string, err error)
	// RouteByShardID looks up an explicit shard id directly.
	RouteByShardID(id int) (url string, err error)
	// RandomTarget uniformly picks one of the distinct shard URLs.
	RandomTarget() (url string, err error)
}

// ShardRouterBuilder builds and validates a ShardRouter from a
// ShardConfig, rejecting configurations that don't exhaustively and
// uniquely partition the 256-bit request-id space.
type ShardRouterBuilder interface {
	Build(cfg *domain.ShardConfig) (ShardRouter, error)
}
