package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGameServerMissingFile(t *testing.T) {
	cfg, err := LoadGameServer(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultGameServer(), cfg)
}

func TestLoadGameServerOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	data := []byte(`
bind_address: "127.0.0.1"
port: 6000
motd: "test server"
max_connections: 200
database:
  host: db.local
  user: game
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadGameServer(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.BindAddress)
	assert.Equal(t, 6000, cfg.Port)
	assert.Equal(t, "test server", cfg.MOTD)
	assert.Equal(t, 200, cfg.MaxConnections)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, "game", cfg.Database.User)

	// untouched fields keep their defaults
	assert.Equal(t, DefaultGameServer().SendQueueSize, cfg.SendQueueSize)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestLoadGameServerInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a number"), 0o644))

	_, err := LoadGameServer(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: 5432,
		User: "u", Password: "p", DBName: "game", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@localhost:5432/game?sslmode=disable", d.DSN())
}
