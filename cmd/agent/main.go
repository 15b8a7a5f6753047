package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/databricks/databricks-sql-go"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	v1 "github.com/portsight/vendor-intel/api/v1"
	"github.com/portsight/vendor-intel/internal/config"
	"github.com/portsight/vendor-intel/internal/connection"
	"github.com/portsight/vendor-intel/internal/handlers"
	"github.com/portsight/vendor-intel/internal/query"
	"github.com/portsight/vendor-intel/internal/server"
	"github.com/portsight/vendor-intel/internal/server/middlewares"
	"github.com/portsight/vendor-intel/internal/services"
	"github.com/portsight/vendor-intel/internal/store"
	"github.com/portsight/vendor-intel/internal/store/migrations"
	"github.com/portsight/vendor-intel/pkg/scheduler"
	"github.com/portsight/vendor-intel/pkg/warehouse"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "vendor-intel-agent",
		Short:        "Warehouse-backed vendor ranking agent",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	registerFlags(rootCmd.Flags(), &configPath)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func registerFlags(flags *pflag.FlagSet, configPath *string) {
	flags.StringVarP(configPath, "config", "c", "", "path to the configuration file")
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	log := zap.S().Named("agent")
	log.Infow("starting vendor-intel agent", "mode", cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// local storage
	db, err := store.NewDB(dbPath(cfg))
	if err != nil {
		return fmt.Errorf("opening local database: %w", err)
	}
	if err := migrations.Run(ctx, db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	st := store.NewStore(db)
	defer func() { _ = st.Close() }()

	// warehouse lifecycle and session plumbing
	client := warehouse.NewClient(cfg.Warehouse.Host, cfg.Warehouse.WarehouseID, cfg.Warehouse.Token)
	cache := warehouse.NewStateCache(client, cfg.Warehouse.StateCacheTTL)
	controller := warehouse.NewController(client, cache)

	connector := connection.NewSQLConnector(cfg.Warehouse.Driver, cfg.Warehouse.DSN)
	manager := connection.NewManager(connector, controller,
		connection.WithCatalogSchema(cfg.Warehouse.Catalog, cfg.Warehouse.Schema),
		connection.WithConnectBudget(cfg.Warehouse.ConnectBudget),
	)

	executor := query.NewExecutor(manager, st.History())

	// services
	sched := scheduler.NewScheduler(cfg.Agent.NumWorkers)
	defer sched.Close()

	rankingSrv := services.NewRankingService(executor)
	resolver := services.NewResolver(executor)
	warehouseSrv := services.NewWarehouseService(controller, manager, sched, cfg.Warehouse.ProbeInterval)
	defer warehouseSrv.Close()

	if err := warehouseSrv.Schedule(cfg.Warehouse.StartCron, cfg.Warehouse.StopCron); err != nil {
		return fmt.Errorf("registering warehouse schedule: %w", err)
	}
	go warehouseSrv.RunKeepalive(ctx)
	go pruneHistory(ctx, st.History(), cfg.Agent.HistoryMaxDays)

	// http surface
	handler := handlers.New(rankingSrv, resolver, warehouseSrv, st.History())

	var admin gin.HandlerFunc
	if cfg.Auth.Enabled {
		admin = middlewares.Auth(cfg.Auth.JWTSecret)
	}

	srv := server.NewServer(cfg, func(router *gin.RouterGroup) {
		v1.RegisterHandlers(router, handler, admin)
	})

	serverErr := make(chan error, 1)
	go func() { serverErr <- srv.Start() }()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

func dbPath(cfg *config.Configuration) string {
	if cfg.Agent.DataFolder == "" {
		return ":memory:"
	}
	return filepath.Join(cfg.Agent.DataFolder, "vendor-intel.db")
}

// pruneHistory trims old query history entries once a day.
func pruneHistory(ctx context.Context, history *store.QueryHistoryStore, maxDays int) {
	if maxDays <= 0 {
		return
	}

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := history.Prune(ctx, maxDays); err != nil {
				zap.S().Named("agent").Warnw("failed to prune query history", "error", err)
			}
		}
	}
}

func initLogger(cfg *config.Configuration) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.LogLevel, err)
	}

	var zapCfg zap.Config
	if cfg.LogFormat == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
