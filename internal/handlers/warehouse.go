package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/portsight/vendor-intel/api/v1"
)

// GetWarehouse returns the warehouse state as freshly observed
// (GET /warehouse)
func (h *Handler) GetWarehouse(c *gin.Context) {
	status, err := h.warehouseSrv.Status(c.Request.Context())
	if err != nil {
		zap.S().Named("warehouse_handler").Errorw("failed to observe warehouse state", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to observe warehouse state"})
		return
	}

	c.JSON(http.StatusOK, v1.NewWarehouseStatusFromModel(status))
}

// StartWarehouse requests a warehouse start if it is not already running
// (POST /warehouse/start)
func (h *Handler) StartWarehouse(c *gin.Context) {
	if err := h.warehouseSrv.Start(c.Request.Context()); err != nil {
		zap.S().Named("warehouse_handler").Errorw("failed to start warehouse", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to start warehouse"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "start requested"})
}

// StopWarehouse requests a warehouse stop
// (POST /warehouse/stop)
func (h *Handler) StopWarehouse(c *gin.Context) {
	if err := h.warehouseSrv.Stop(c.Request.Context()); err != nil {
		zap.S().Named("warehouse_handler").Errorw("failed to stop warehouse", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to stop warehouse"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "stop requested"})
}

// ResetConnection discards the shared warehouse session
// (POST /warehouse/connection/reset)
func (h *Handler) ResetConnection(c *gin.Context) {
	h.warehouseSrv.ResetConnection()
	c.JSON(http.StatusOK, gin.H{"status": "connection reset"})
}
