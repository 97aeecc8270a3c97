// Package database opens the PostgreSQL connection, starting an embedded
// server when no external database is configured.
package database

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Haricane11/OptiWareUi-sub000/internal/config"
)

const (
	defaultDataPath  = "./db_data"
	defaultPort      = 5433
	embeddedPassword = "postgres"

	pollInterval = 500 * time.Millisecond
)

// DB wraps gorm.DB and includes a reference to an embedded process if active
type DB struct {
	*gorm.DB
	embedded *embeddedpostgres.EmbeddedPostgres
}

// Connect opens the floor-plan database. A localhost host without a password
// selects the embedded server, which is started first.
func Connect(cfg config.DatabaseConfig) (*DB, error) {
	var embedded *embeddedpostgres.EmbeddedPostgres
	password := cfg.Password

	if isEmbedded(cfg) {
		log.Info("📦 Mode: [Embedded PostgreSQL] - Initializing floor-plan database...")
		server, port, err := startEmbedded(cfg)
		if err != nil {
			return nil, err
		}
		embedded = server
		cfg.Port = strconv.Itoa(port)
		password = embeddedPassword
	} else {
		log.Infof("🌐 Mode: [External PostgreSQL] - Connecting to %s:%s", cfg.Host, cfg.Port)
	}

	db, err := gorm.Open(postgres.Open(dataSourceName(cfg, password)), &gorm.Config{
		Logger:  logger.Default.LogMode(gormLogLevel(log.GetLevel())),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		if embedded != nil {
			_ = embedded.Stop()
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	log.Infof("✅ Database %s ready", cfg.Database)
	return &DB{DB: db, embedded: embedded}, nil
}

// Close ensures the database connection and embedded process are shut down
func (db *DB) Close() error {
	if db.embedded != nil {
		log.Info("🛑 Stopping Embedded PostgreSQL process...")
		_ = db.embedded.Stop()
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Embedded reports whether the connection runs against the embedded server.
func (db *DB) Embedded() bool {
	return db.embedded != nil
}

func isEmbedded(cfg config.DatabaseConfig) bool {
	return cfg.Host == "localhost" && cfg.Password == ""
}

func dataSourceName(cfg config.DatabaseConfig, password string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, password, cfg.Database)
}

// gormLogLevel traces SQL only when the application logs at debug level.
func gormLogLevel(level log.Level) logger.LogLevel {
	if level <= log.DebugLevel {
		return logger.Info
	}
	return logger.Warn
}

// startEmbedded stops a server left behind by a crash, waits for its port and
// starts a fresh one. It returns the port the server listens on.
func startEmbedded(cfg config.DatabaseConfig) (*embeddedpostgres.EmbeddedPostgres, int, error) {
	dataPath := cfg.EmbeddedDataPath
	if dataPath == "" {
		dataPath = defaultDataPath
	}
	port := int(cfg.EmbeddedPort)
	if port == 0 {
		port = defaultPort
	}

	stopOrphan(dataPath)
	if err := waitPortFree(port, 6); err != nil {
		return nil, 0, err
	}

	server := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		DataPath(dataPath).
		Port(uint32(port)).
		Database(cfg.Database).
		Username(cfg.Username).
		Password(embeddedPassword))
	if err := server.Start(); err != nil {
		return nil, 0, fmt.Errorf("failed to start embedded database: %w", err)
	}
	log.Infof("✅ Embedded PostgreSQL process started on port %d", port)
	return server, port, nil
}

var errNoPID = errors.New("no postmaster pid")

// postmasterPID reads the server pid from the first line of postmaster.pid.
func postmasterPID(dataPath string) (int, error) {
	data, err := os.ReadFile(filepath.Join(dataPath, "postmaster.pid"))
	if err != nil {
		return 0, errNoPID
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	if !scanner.Scan() {
		return 0, errNoPID
	}
	pid, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return 0, fmt.Errorf("postmaster.pid: %w", err)
	}
	return pid, nil
}

// stopOrphan terminates a server a previous run left behind and removes its
// pid file. A pid file without a live process is just removed.
func stopOrphan(dataPath string) {
	pid, err := postmasterPID(dataPath)
	if errors.Is(err, errNoPID) {
		return
	}
	if err != nil {
		log.Warnf("⚠️ Could not parse PID: %v", err)
		return
	}
	pidFile := filepath.Join(dataPath, "postmaster.pid")
	defer os.Remove(pidFile)

	process, err := os.FindProcess(pid)
	if err != nil || process.Signal(syscall.Signal(0)) != nil {
		log.Infof("🧹 Cleaning up stale postmaster.pid (PID %d not running)", pid)
		return
	}

	log.Warnf("⚠️ Found orphaned PostgreSQL process (PID %d), attempting to stop...", pid)
	if err := process.Signal(syscall.SIGTERM); err != nil {
		log.Warnf("⚠️ Could not send SIGTERM to PID %d: %v", pid, err)
	}
	for i := 0; i < 10; i++ {
		time.Sleep(pollInterval)
		if process.Signal(syscall.Signal(0)) != nil {
			log.Infof("✅ Orphaned PostgreSQL process stopped")
			return
		}
	}

	log.Warnf("⚠️ Process did not stop gracefully, sending SIGKILL...")
	process.Kill()
	time.Sleep(pollInterval)
}

// waitPortFree polls until nothing listens on port, giving up after attempts.
func waitPortFree(port, attempts int) error {
	for i := 0; ; i++ {
		if !portInUse(port) {
			return nil
		}
		if i == attempts {
			return fmt.Errorf("port %d is still in use by another process", port)
		}
		if i == 0 {
			log.Warnf("⚠️ Port %d still in use, waiting for release...", port)
		}
		time.Sleep(pollInterval)
	}
}

func portInUse(port int) bool {
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("127.0.0.1:%d", port), time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
