package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/portsight/vendor-intel/internal/config"
	"github.com/portsight/vendor-intel/internal/server/middlewares"
)

// RegisterHandlersFn attaches API routes to the /api/v1 group.
type RegisterHandlersFn func(router *gin.RouterGroup)

type Server struct {
	cfg        *config.Configuration
	httpServer *http.Server
	log        *zap.SugaredLogger
}

func NewServer(cfg *config.Configuration, registerFn RegisterHandlersFn) *Server {
	if cfg.Server.Mode == config.ServerModeProd {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middlewares.Logger())
	router.Use(ginzap.RecoveryWithZap(zap.L().Named("http"), true))

	apiGroup := router.Group("/api/v1")
	registerFn(apiGroup)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return &Server{
		cfg: cfg,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler: router,
		},
		log: zap.S().Named("server"),
	}
}

// Start blocks serving HTTP until Stop is called or the listener fails.
func (s *Server) Start() error {
	s.log.Infow("starting http server", "address", s.httpServer.Addr, "mode", s.cfg.Server.Mode)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully, waiting for in-flight requests
// until the context expires.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("stopping http server")
	return s.httpServer.Shutdown(ctx)
}
