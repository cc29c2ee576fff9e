package shard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unicitylabs/aggregator-proxy/internal/core/domain"
)

func TestSuffixBits(t *testing.T) {
	tests := []struct {
		id     int
		depth  int
		suffix uint64
	}{
		{1, 0, 0}, // catch-all
		{2, 1, 0}, // 0b10 -> depth 1, suffix bit0=0
		{3, 1, 1}, // 0b11 -> depth 1, suffix bit0=1
		{4, 2, 0}, // 0b100
		{5, 2, 1}, // 0b101
		{6, 2, 2}, // 0b110
		{7, 2, 3}, // 0b111
	}
	for _, tt := range tests {
		depth, suffix, err := suffixBits(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.depth, depth, "id=%d depth", tt.id)
		assert.Equal(t, tt.suffix, suffix, "id=%d suffix", tt.id)
	}
}

func TestSuffixBits_Invalid(t *testing.T) {
	_, _, err := suffixBits(0)
	assert.Error(t, err)
	_, _, err = suffixBits(-1)
	assert.Error(t, err)
}

func TestBuilder_CatchAll(t *testing.T) {
	cfg := &domain.ShardConfig{Shards: []domain.ShardInfo{{ID: 1, URL: "http://backend:3000"}}}
	router, err := (&Builder{}).Build(cfg)
	require.NoError(t, err)

	url, err := router.RouteByRequestID("00000000000000000000000000000000000000000000000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, "http://backend:3000", url)
}

func TestBuilder_TwoWaySplit(t *testing.T) {
	cfg := &domain.ShardConfig{Shards: []domain.ShardInfo{
		{ID: 2, URL: "http://a"},
		{ID: 3, URL: "http://b"},
	}}
	router, err := (&Builder{}).Build(cfg)
	require.NoError(t, err)

	// Lowest bit 0 -> A
	url, err := router.RouteByRequestID("00000000000000000000000000000000000000000000000000000000000010")
	require.NoError(t, err)
	assert.Equal(t, "http://a", url)

	// Lowest bit 1 -> B
	url, err = router.RouteByRequestID("0000000000000000000000000000000000000000000000000000000000001f")
	require.NoError(t, err)
	assert.Equal(t, "http://b", url)
}

func TestBuilder_CompleteTwoBitSplit(t *testing.T) {
	cfg := &domain.ShardConfig{Shards: []domain.ShardInfo{
		{ID: 4, URL: "http://a"},
		{ID: 5, URL: "http://b"},
		{ID: 6, URL: "http://c"},
		{ID: 7, URL: "http://d"},
	}}
	_, err := (&Builder{}).Build(cfg)
	require.NoError(t, err)
}

func TestBuilder_IncompleteHalfSpace_Rejected(t *testing.T) {
	cfg := &domain.ShardConfig{Shards: []domain.ShardInfo{
		{ID: 2, URL: "http://a"},
	}}
	_, err := (&Builder{}).Build(cfg)
	assert.ErrorIs(t, err, ErrIncompleteTrie)
}

func TestBuilder_DuplicateID_Rejected(t *testing.T) {
	cfg := &domain.ShardConfig{Shards: []domain.ShardInfo{
		{ID: 2, URL: "http://a"},
		{ID: 2, URL: "http://b"},
	}}
	_, err := (&Builder{}).Build(cfg)
	assert.ErrorIs(t, err, ErrDuplicateShardID)
}

func TestRouteByRequestID_CaseAndPrefixInsensitive(t *testing.T) {
	cfg := &domain.ShardConfig{Shards: []domain.ShardInfo{{ID: 1, URL: "http://backend:3000"}}}
	router, err := (&Builder{}).Build(cfg)
	require.NoError(t, err)

	hexLower := "00000000000000000000000000000000000000000000000000000000000abc"
	a, err := router.RouteByRequestID(hexLower)
	require.NoError(t, err)
	b, err := router.RouteByRequestID("0x" + strings.ToUpper(hexLower))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRouteByRequestID_Malformed(t *testing.T) {
	cfg := &domain.ShardConfig{Shards: []domain.ShardInfo{{ID: 1, URL: "http://backend:3000"}}}
	router, err := (&Builder{}).Build(cfg)
	require.NoError(t, err)

	_, err = router.RouteByRequestID("not-hex")
	assert.Error(t, err)
}

func TestRouteByShardID_Unknown(t *testing.T) {
	cfg := &domain.ShardConfig{Shards: []domain.ShardInfo{
		{ID: 2, URL: "http://a"},
		{ID: 3, URL: "http://b"},
	}}
	router, err := (&Builder{}).Build(cfg)
	require.NoError(t, err)

	_, err = router.RouteByShardID(99)
	assert.Error(t, err)

	url, err := router.RouteByShardID(2)
	require.NoError(t, err)
	assert.Equal(t, "http://a", url)
}

func TestRandomTarget_UniformOverDistinctURLs(t *testing.T) {
	cfg := &domain.ShardConfig{Shards: []domain.ShardInfo{
		{ID: 2, URL: "http://a"},
		{ID: 3, URL: "http://b"},
	}}
	calls := 0
	router, err := (&Builder{Rand: func(n int) int {
		calls++
		return 0
	}}).Build(cfg)
	require.NoError(t, err)

	url, err := router.RandomTarget()
	require.NoError(t, err)
	assert.Equal(t, "http://a", url)
	assert.Equal(t, 1, calls)
}

func TestFailsafe_RefusesAll(t *testing.T) {
	var r Failsafe
	_, err := r.RouteByRequestID("01")
	assert.ErrorIs(t, err, ErrRoutingDisabled)
	_, err = r.RouteByShardID(2)
	assert.ErrorIs(t, err, ErrRoutingDisabled)
	_, err = r.RandomTarget()
	assert.ErrorIs(t, err, ErrRoutingDisabled)
}
