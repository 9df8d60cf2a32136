package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Hotel      HotelConfig      `yaml:"hotel"`
	Database   DatabaseConfig   `yaml:"database"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	Enabled    bool   `yaml:"enabled"`
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// HotelConfig holds the business-rule knobs of the hotel.
type HotelConfig struct {
	Name string `yaml:"name"`
	// HistoryGroupLimit caps how many past guest groups are returned per room.
	HistoryGroupLimit int `yaml:"history_group_limit"`
	// AllowStatusChange gates the manual cleaning/maintenance/available
	// transitions. End-of-day rollover ignores it.
	AllowStatusChange *bool `yaml:"allow_status_change"`
	// PostCheckoutStatus is where a room lands after checkout: "available"
	// (default) or "cleaning" for a one-day cleaning window.
	PostCheckoutStatus string `yaml:"post_checkout_status"`
	// ReconcileStayDays is the stay duration assumed when a bulk import
	// checks guests into an available room.
	ReconcileStayDays int `yaml:"reconcile_stay_days"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // "sqlite" or "postgres"
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// AllowsStatusChange reports whether manual status transitions are permitted.
func (h *HotelConfig) AllowsStatusChange() bool {
	return h.AllowStatusChange == nil || *h.AllowStatusChange
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills in zero values after decoding.
func (cfg *Config) ApplyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 30
	}

	if cfg.Hotel.Name == "" {
		cfg.Hotel.Name = "Hotel"
	}
	if cfg.Hotel.HistoryGroupLimit <= 0 {
		cfg.Hotel.HistoryGroupLimit = 3
	}
	switch cfg.Hotel.PostCheckoutStatus {
	case "available", "cleaning":
	case "":
		cfg.Hotel.PostCheckoutStatus = "available"
	default:
		log.Printf("unknown hotel.post_checkout_status %q; defaulting to available", cfg.Hotel.PostCheckoutStatus)
		cfg.Hotel.PostCheckoutStatus = "available"
	}
	if cfg.Hotel.ReconcileStayDays <= 0 {
		cfg.Hotel.ReconcileStayDays = 1
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "hotel.db"
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		cfg.WorkerPool.Size = 1
	}
}
