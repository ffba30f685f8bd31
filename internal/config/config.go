// Package config loads server configuration from YAML with defaults for
// every field, so the server starts with no config file at all.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/slime2go/internal/constants"
)

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// GameServer holds all configuration for the game server.
type GameServer struct {
	// Network
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`

	// Connection caps
	MaxConnections      int `yaml:"max_connections"`
	MaxConnectionsPerIP int `yaml:"max_connections_per_ip"`

	// Timeouts
	WriteTimeout           time.Duration `yaml:"write_timeout"`           // per-write deadline
	IdleTimeout            time.Duration `yaml:"idle_timeout"`            // authenticated idle disconnect
	UnauthenticatedTimeout time.Duration `yaml:"unauthenticated_timeout"` // deadline to log in
	SendQueueSize          int           `yaml:"send_queue_size"`         // per-client outbox capacity

	// World
	MOTD           string        `yaml:"motd"`
	SaveInterval   time.Duration `yaml:"save_interval"` // periodic character flush
	TickInterval   time.Duration `yaml:"tick_interval"` // world sweep cadence
	PlantStageTime time.Duration `yaml:"plant_stage_time"`

	// Database
	Database DatabaseConfig `yaml:"database"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// DefaultGameServer returns GameServer config with sensible defaults.
func DefaultGameServer() GameServer {
	return GameServer{
		BindAddress:            "0.0.0.0",
		Port:                   constants.DefaultPort,
		MaxConnections:         constants.MaxTotalConnections,
		MaxConnectionsPerIP:    constants.MaxConnectionsPerIP,
		WriteTimeout:           5 * time.Second,
		IdleTimeout:            constants.ConnectionTimeoutSecs * time.Second,
		UnauthenticatedTimeout: constants.UnauthenticatedTimeoutSecs * time.Second,
		SendQueueSize:          256,
		MOTD:                   "Welcome back!",
		SaveInterval:           5 * time.Minute,
		TickInterval:           time.Second,
		PlantStageTime:         5 * time.Minute,
		LogLevel:               "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "slime2go",
			Password: "slime2go",
			DBName:   "slime2go",
			SSLMode:  "disable",
		},
	}
}

// LoadGameServer loads game server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadGameServer(path string) (GameServer, error) {
	cfg := DefaultGameServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
