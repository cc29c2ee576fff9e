package shard

import "errors"

// ErrRoutingDisabled is returned by every Failsafe method.
var ErrRoutingDisabled = errors.New("shard router: routing disabled, last configuration failed validation")

// Failsafe is installed in place of a Router when the latest
// ShardConfig fails validation: it refuses all routing (so proxied
// traffic correctly 502s/400s rather than going to a stale or wrong
// shard) while leaving admin traffic — which doesn't go through this
// router — unaffected, per spec §4.3.
type Failsafe struct{}

func (Failsafe) RouteByRequestID(string) (string, error) { return "", ErrRoutingDisabled }
func (Failsafe) RouteByShardID(int) (string, error)      { return "", ErrRoutingDisabled }
func (Failsafe) RandomTarget() (string, error)           { return "", ErrRoutingDisabled }
func (Failsafe) URLs() []string                          { return nil }
