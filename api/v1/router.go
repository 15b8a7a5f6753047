package v1

import "github.com/gin-gonic/gin"

// ServerInterface is the set of handlers the API surface expects.
type ServerInterface interface {
	// GetHealth reports process liveness.
	// (GET /health)
	GetHealth(c *gin.Context)

	// GetWarehouse returns the warehouse state as freshly observed.
	// (GET /warehouse)
	GetWarehouse(c *gin.Context)

	// StartWarehouse requests a warehouse start if it is not running.
	// (POST /warehouse/start)
	StartWarehouse(c *gin.Context)

	// StopWarehouse requests a warehouse stop.
	// (POST /warehouse/stop)
	StopWarehouse(c *gin.Context)

	// ResetConnection discards the shared warehouse session.
	// (POST /warehouse/connection/reset)
	ResetConnection(c *gin.Context)

	// RankVendors computes the top vendors per port.
	// (POST /rankings/vendors)
	RankVendors(c *gin.Context)

	// ExportVendorRanking streams the ranking as an xlsx workbook.
	// (POST /rankings/vendors/export)
	ExportVendorRanking(c *gin.Context)

	// ListQueries returns the local query history.
	// (GET /queries)
	ListQueries(c *gin.Context, params ListQueriesParams)
}

// RegisterHandlers attaches the API routes to the router group. The admin
// middleware guards the lifecycle mutations; pass nil to leave them open.
func RegisterHandlers(router *gin.RouterGroup, si ServerInterface, admin gin.HandlerFunc) {
	if admin == nil {
		admin = func(c *gin.Context) { c.Next() }
	}

	router.GET("/health", si.GetHealth)
	router.GET("/warehouse", si.GetWarehouse)
	router.POST("/warehouse/start", admin, si.StartWarehouse)
	router.POST("/warehouse/stop", admin, si.StopWarehouse)
	router.POST("/warehouse/connection/reset", admin, si.ResetConnection)
	router.POST("/rankings/vendors", si.RankVendors)
	router.POST("/rankings/vendors/export", si.ExportVendorRanking)
	router.GET("/queries", func(c *gin.Context) {
		var params ListQueriesParams
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(400, gin.H{"error": "invalid query parameters"})
			return
		}
		si.ListQueries(c, params)
	})
}
