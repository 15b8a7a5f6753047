package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/portsight/vendor-intel/api/v1"
	"github.com/portsight/vendor-intel/internal/models"
	"github.com/portsight/vendor-intel/internal/store"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// ListQueries returns the local query history, newest first
// (GET /queries)
func (h *Handler) ListQueries(c *gin.Context, params v1.ListQueriesParams) {
	limit := defaultHistoryLimit
	if params.Limit != nil && *params.Limit > 0 {
		limit = *params.Limit
		if limit > maxHistoryLimit {
			limit = maxHistoryLimit
		}
	}

	opts := []store.ListOption{store.WithLimit(uint64(limit))}
	if params.Offset != nil && *params.Offset > 0 {
		opts = append(opts, store.WithOffset(uint64(*params.Offset)))
	}
	if params.Outcome != nil && *params.Outcome != "" {
		opts = append(opts, store.ByOutcome(models.QueryOutcome(*params.Outcome)))
	}

	records, err := h.history.List(c.Request.Context(), opts...)
	if err != nil {
		zap.S().Named("query_handler").Errorw("failed to list query history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list query history"})
		return
	}

	resp := v1.QueryListResponse{
		Total:   len(records),
		Queries: make([]v1.QueryRecord, 0, len(records)),
	}
	for _, rec := range records {
		resp.Queries = append(resp.Queries, v1.NewQueryRecordFromModel(rec))
	}

	c.JSON(http.StatusOK, resp)
}
