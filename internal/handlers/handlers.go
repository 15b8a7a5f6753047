package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portsight/vendor-intel/internal/models"
	"github.com/portsight/vendor-intel/internal/services"
	"github.com/portsight/vendor-intel/internal/store"
)

// HistoryLister reads back recorded query history.
type HistoryLister interface {
	List(ctx context.Context, opts ...store.ListOption) ([]models.QueryRecord, error)
}

type Handler struct {
	rankingSrv   *services.RankingService
	resolver     *services.Resolver
	warehouseSrv *services.WarehouseService
	history      HistoryLister
}

func New(rankingSrv *services.RankingService, resolver *services.Resolver, warehouseSrv *services.WarehouseService, history HistoryLister) *Handler {
	return &Handler{
		rankingSrv:   rankingSrv,
		resolver:     resolver,
		warehouseSrv: warehouseSrv,
		history:      history,
	}
}

// GetHealth reports process liveness
// (GET /health)
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
