package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"
)

const (
	ServerModeDev  = "dev"
	ServerModeProd = "prod"
)

type Configuration struct {
	Server    Server    `mapstructure:"server"`
	Agent     Agent     `mapstructure:"agent"`
	Warehouse Warehouse `mapstructure:"warehouse"`
	Auth      Auth      `mapstructure:"auth"`
	LogLevel  string    `mapstructure:"logLevel" default:"info"`
	LogFormat string    `mapstructure:"logFormat" default:"console"`
}

type Server struct {
	Mode     string `mapstructure:"mode" default:"dev"`
	HTTPPort int    `mapstructure:"httpPort" default:"8000"`
}

type Agent struct {
	DataFolder     string `mapstructure:"dataFolder"`
	NumWorkers     int    `mapstructure:"numWorkers" default:"3"`
	HistoryMaxDays int    `mapstructure:"historyMaxDays" default:"30"`
}

type Warehouse struct {
	Host          string        `mapstructure:"host"`
	WarehouseID   string        `mapstructure:"warehouseId"`
	Token         string        `mapstructure:"token"`
	Driver        string        `mapstructure:"driver" default:"databricks"`
	DSN           string        `mapstructure:"dsn"`
	Catalog       string        `mapstructure:"catalog" default:"main"`
	Schema        string        `mapstructure:"schema" default:"vendor_intel"`
	StateCacheTTL time.Duration `mapstructure:"stateCacheTtl" default:"10s"`
	ConnectBudget time.Duration `mapstructure:"connectBudget" default:"90s"`
	StartCron     string        `mapstructure:"startCron" default:"0 7 * * 1-5"`
	StopCron      string        `mapstructure:"stopCron" default:"10 15 * * 1-5"`
	ProbeInterval time.Duration `mapstructure:"probeInterval" default:"5m"`
}

type Auth struct {
	Enabled   bool   `mapstructure:"enabled" default:"false"`
	JWTSecret string `mapstructure:"jwtSecret"`
}

// configKeys lists every configuration key so environment variables are
// picked up even when the key is absent from the config file.
var configKeys = []string{
	"server.mode",
	"server.httpPort",
	"agent.dataFolder",
	"agent.numWorkers",
	"agent.historyMaxDays",
	"warehouse.host",
	"warehouse.warehouseId",
	"warehouse.token",
	"warehouse.driver",
	"warehouse.dsn",
	"warehouse.catalog",
	"warehouse.schema",
	"warehouse.stateCacheTtl",
	"warehouse.connectBudget",
	"warehouse.startCron",
	"warehouse.stopCron",
	"warehouse.probeInterval",
	"auth.enabled",
	"auth.jwtSecret",
	"logLevel",
	"logFormat",
}

// Load reads configuration from an optional file and from VENDOR_INTEL_*
// environment variables, on top of the struct defaults. Environment wins
// over the file; the file wins over defaults.
func Load(path string) (*Configuration, error) {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("setting configuration defaults: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("VENDOR_INTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range configKeys {
		_ = v.BindEnv(key)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading configuration file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the fields without usable defaults.
func (c *Configuration) Validate() error {
	if c.Warehouse.Host == "" {
		return fmt.Errorf("warehouse.host is required")
	}
	if c.Warehouse.WarehouseID == "" {
		return fmt.Errorf("warehouse.warehouseId is required")
	}
	if c.Warehouse.Token == "" {
		return fmt.Errorf("warehouse.token is required")
	}
	if c.Warehouse.DSN == "" {
		return fmt.Errorf("warehouse.dsn is required")
	}
	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwtSecret is required when auth is enabled")
	}
	if c.Server.Mode != ServerModeDev && c.Server.Mode != ServerModeProd {
		return fmt.Errorf("server.mode must be %q or %q", ServerModeDev, ServerModeProd)
	}
	return nil
}
