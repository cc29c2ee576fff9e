package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unicitylabs/aggregator-proxy/internal/adapter/http/dto"
	"github.com/unicitylabs/aggregator-proxy/internal/core/ports"
	"github.com/unicitylabs/aggregator-proxy/pkg/apperror"
)

// ConfigHandler implements GET /config/shards: a read-only probe of the
// shard-routing document currently in force, independent of whatever
// ConfigReloader snapshot proxied traffic is using.
type ConfigHandler struct {
	shards ports.ShardStore
	tx     ports.DBTransactor
}

// NewConfigHandler creates a ConfigHandler.
func NewConfigHandler(shards ports.ShardStore, tx ports.DBTransactor) *ConfigHandler {
	return &ConfigHandler{shards: shards, tx: tx}
}

// Shards handles GET /config/shards.
func (h *ConfigHandler) Shards(c *gin.Context) {
	transaction, err := h.tx.Begin(c.Request.Context())
	if err != nil {
		writeError(c, apperror.ErrDatabase(err))
		return
	}
	defer transaction.Rollback(c.Request.Context())

	cfg, err := h.shards.Latest(c.Request.Context(), transaction)
	if err != nil {
		writeError(c, err)
		return
	}
	if cfg == nil {
		writeError(c, apperror.ErrNotFound("ShardConfig"))
		return
	}

	shardInfos := make([]dto.ShardInfoResponse, 0, len(cfg.Shards))
	for _, s := range cfg.Shards {
		shardInfos = append(shardInfos, dto.ShardInfoResponse{ID: s.ID, URL: s.URL})
	}

	c.JSON(http.StatusOK, dto.ShardConfigResponse{
		Version:   cfg.Version,
		Shards:    shardInfos,
		CreatedBy: cfg.CreatedBy,
		CreatedAt: cfg.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}
