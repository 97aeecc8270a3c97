package database

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/Haricane11/OptiWareUi-sub000/internal/config"
)

func TestEmbeddedModeSelection(t *testing.T) {
	assert.True(t, isEmbedded(config.DatabaseConfig{Host: "localhost"}))
	assert.False(t, isEmbedded(config.DatabaseConfig{Host: "localhost", Password: "secret"}))
	assert.False(t, isEmbedded(config.DatabaseConfig{Host: "db.internal"}))
}

func TestDataSourceName(t *testing.T) {
	cfg := config.DatabaseConfig{Host: "localhost", Port: "5433", Username: "postgres", Database: "floorplan"}
	assert.Equal(t,
		"host=localhost port=5433 user=postgres password=postgres dbname=floorplan sslmode=disable",
		dataSourceName(cfg, embeddedPassword))
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, gormLogLevel(log.DebugLevel))
	assert.Equal(t, logger.Warn, gormLogLevel(log.InfoLevel))
}

func TestPostmasterPID(t *testing.T) {
	dir := t.TempDir()
	_, err := postmasterPID(dir)
	assert.True(t, errors.Is(err, errNoPID))

	pidFile := filepath.Join(dir, "postmaster.pid")
	require.NoError(t, os.WriteFile(pidFile, []byte("4242\n/var/lib/pg\n1700000000\n5433\n"), 0o600))
	pid, err := postmasterPID(dir)
	require.NoError(t, err)
	assert.Equal(t, 4242, pid)

	require.NoError(t, os.WriteFile(pidFile, []byte("garbage\n"), 0o600))
	_, err = postmasterPID(dir)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, errNoPID))
}

func TestWaitPortFree(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port

	assert.Error(t, waitPortFree(port, 0))

	ln.Close()
	assert.NoError(t, waitPortFree(port, 0))
}
