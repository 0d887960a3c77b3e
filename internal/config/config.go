package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"db"`
	DataAPI DataAPIConfig `mapstructure:"data_api"`
	Gamma   GammaConfig   `mapstructure:"gamma"`
	Wrapped WrappedConfig `mapstructure:"wrapped"`
	PinCode PinCodeConfig `mapstructure:"pincode"`
	IPFS    IPFSConfig    `mapstructure:"ipfs"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

// DataAPIConfig points at the Polymarket trade/position provider.
type DataAPIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type GammaConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// WrappedConfig bounds the report computation and its envelope.
type WrappedConfig struct {
	ReportYear       int  `mapstructure:"report_year"`
	FetchLimit       int  `mapstructure:"fetch_limit"`
	TradeLimit       int  `mapstructure:"trade_limit"`
	PositionLimit    int  `mapstructure:"position_limit"`
	EnrichCategories bool `mapstructure:"enrich_categories"`
	MaxMarketLookups int  `mapstructure:"max_market_lookups"`
}

type PinCodeConfig struct {
	Length    int           `mapstructure:"length"`
	TTL       time.Duration `mapstructure:"ttl"`
	PurgeSpec string        `mapstructure:"purge_spec"`
}

type IPFSConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	GatewayURL string        `mapstructure:"gateway_url"`
	JWT        string        `mapstructure:"jwt"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WRAPPED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("data_api.base_url", "https://clob.polymarket.com")
	v.SetDefault("data_api.timeout", "15s")
	v.SetDefault("gamma.base_url", "https://gamma-api.polymarket.com")
	v.SetDefault("gamma.timeout", "15s")
	v.SetDefault("wrapped.report_year", 2025)
	v.SetDefault("wrapped.fetch_limit", 1000)
	v.SetDefault("wrapped.trade_limit", 100)
	v.SetDefault("wrapped.position_limit", 20)
	v.SetDefault("wrapped.enrich_categories", true)
	v.SetDefault("wrapped.max_market_lookups", 50)
	v.SetDefault("pincode.length", 6)
	v.SetDefault("pincode.ttl", "720h")
	v.SetDefault("pincode.purge_spec", "@every 10m")
	v.SetDefault("ipfs.base_url", "https://api.pinata.cloud")
	v.SetDefault("ipfs.gateway_url", "https://gateway.pinata.cloud/ipfs")
	v.SetDefault("ipfs.jwt", "")
	v.SetDefault("ipfs.timeout", "30s")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
