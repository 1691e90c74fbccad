package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Values come from defaults, an
// optional YAML file and environment variables, in increasing priority.
type Config struct {
	RPCURL            string        `yaml:"rpc_url"`
	RPCUser           string        `yaml:"rpc_user"`
	RPCPassword       string        `yaml:"rpc_password"`
	Chain             string        `yaml:"chain"`
	RPCRetryMax       int           `yaml:"rpc_retry_max"`
	RPCRetryBaseDelay time.Duration `yaml:"rpc_retry_base_delay"`
	RPCTimeout        time.Duration `yaml:"rpc_timeout"`
	BatchSize         int           `yaml:"batch_size"`
	BatchPause        time.Duration `yaml:"batch_pause"`
	DatabaseURL       string        `yaml:"database_url"`
	HTTPPort          string        `yaml:"http_port"`
	RefreshInterval   time.Duration `yaml:"refresh_interval"`
	CurrencyCacheTTL  time.Duration `yaml:"currency_cache_ttl"`
	AdminAPIKey       string        `yaml:"admin_api_key"`
	LogLevel          string        `yaml:"log_level"`
	LogFormat         string        `yaml:"log_format"`
	GoogleSheetsID    string        `yaml:"google_sheets_id"`
	GoogleCredentials string        `yaml:"google_credentials_json"`
	XLSXExportPath    string        `yaml:"xlsx_export_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RPCURL:            "http://127.0.0.1:27486",
		Chain:             "verus",
		RPCRetryMax:       3,
		RPCRetryBaseDelay: 500 * time.Millisecond,
		RPCTimeout:        30 * time.Second,
		BatchSize:         5,
		BatchPause:        100 * time.Millisecond,
		HTTPPort:          "8080",
		RefreshInterval:   time.Hour,
		CurrencyCacheTTL:  30 * time.Second,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	cfg := Default()
	applyEnv(&cfg)
	clampNegative(&cfg)
	return cfg
}

// LoadFile reads a YAML configuration file on top of the defaults and then
// applies environment overrides. An empty path behaves like Load.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	clampNegative(&cfg)
	return cfg, nil
}

// clampNegative replaces counts and durations that cannot be negative with zero.
func clampNegative(cfg *Config) {
	if cfg.RPCRetryMax < 0 {
		slog.Warn("negative retry count, disabling retries", "key", "RPC_RETRY_MAX", "value", cfg.RPCRetryMax)
		cfg.RPCRetryMax = 0
	}
	if cfg.RPCRetryBaseDelay < 0 {
		slog.Warn("negative retry delay, using zero", "key", "RPC_RETRY_BASE_DELAY", "value", cfg.RPCRetryBaseDelay)
		cfg.RPCRetryBaseDelay = 0
	}
}

func applyEnv(cfg *Config) {
	cfg.RPCURL = envOrDefault("VERUS_RPC_URL", cfg.RPCURL)
	cfg.RPCUser = envOrDefault("VERUS_RPC_USER", cfg.RPCUser)
	cfg.RPCPassword = envOrDefault("VERUS_RPC_PASSWORD", cfg.RPCPassword)
	cfg.Chain = envOrDefault("VERUS_CHAIN", cfg.Chain)
	cfg.RPCRetryMax = envOrDefaultInt("RPC_RETRY_MAX", cfg.RPCRetryMax)
	cfg.RPCRetryBaseDelay = envOrDefaultDuration("RPC_RETRY_BASE_DELAY", cfg.RPCRetryBaseDelay)
	cfg.RPCTimeout = envOrDefaultDuration("RPC_TIMEOUT", cfg.RPCTimeout)
	cfg.BatchSize = envOrDefaultInt("BATCH_SIZE", cfg.BatchSize)
	cfg.BatchPause = envOrDefaultDuration("BATCH_PAUSE", cfg.BatchPause)
	cfg.DatabaseURL = envOrDefault("DATABASE_URL", cfg.DatabaseURL)
	cfg.HTTPPort = envOrDefault("HTTP_PORT", cfg.HTTPPort)
	cfg.RefreshInterval = envOrDefaultDuration("REFRESH_INTERVAL", cfg.RefreshInterval)
	cfg.CurrencyCacheTTL = envOrDefaultDuration("CURRENCY_CACHE_TTL", cfg.CurrencyCacheTTL)
	cfg.AdminAPIKey = envOrDefault("ADMIN_API_KEY", cfg.AdminAPIKey)
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.GoogleSheetsID = envOrDefault("GOOGLE_SHEETS_ID", cfg.GoogleSheetsID)
	cfg.GoogleCredentials = envOrDefault("GOOGLE_CREDENTIALS_JSON", cfg.GoogleCredentials)
	cfg.XLSXExportPath = envOrDefault("XLSX_EXPORT_PATH", cfg.XLSXExportPath)
}

// RequireRPCCredentials warns when the daemon credentials are missing.
// A local daemon without rpcauth still works, so this is not fatal.
func (c Config) RequireRPCCredentials() {
	if c.RPCUser == "" {
		slog.Warn("required setting not set", "key", "VERUS_RPC_USER")
	}
	if c.RPCPassword == "" {
		slog.Warn("required setting not set", "key", "VERUS_RPC_PASSWORD")
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
