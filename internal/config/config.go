package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
)

// Config holds all application configuration. LOG_LEVEL defaults to debug
// in the development environment and to info elsewhere.
type Config struct {
	Env       string
	Port      string
	LogLevel  log.Level
	RulesFile string
	Database  DatabaseConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Alter    bool

	// Embedded mode only
	EmbeddedDataPath string
	EmbeddedPort     uint32
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")
	defaultLevel := "info"
	if env == "development" {
		defaultLevel = "debug"
	}
	level, err := log.ParseLevel(getEnv("LOG_LEVEL", defaultLevel))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	embeddedPort, err := strconv.ParseUint(getEnv("PG_EMBEDDED_PORT", "5433"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("PG_EMBEDDED_PORT: %w", err)
	}

	return &Config{
		Env:       env,
		Port:      getEnv("PORT", "3001"),
		LogLevel:  level,
		RulesFile: os.Getenv("LAYOUT_RULES_FILE"),
		Database: DatabaseConfig{
			Host:             getEnv("PG_HOST", "localhost"),
			Port:             getEnv("PG_PORT", "5432"),
			Username:         getEnv("PG_USERNAME", "postgres"),
			Password:         os.Getenv("PG_PASSWORD"),
			Database:         getEnv("PG_DATABASE", "floorplan"),
			Alter:            getEnv("DB_ALTER", "false") == "true",
			EmbeddedDataPath: getEnv("PG_EMBEDDED_DATA", "./db_data"),
			EmbeddedPort:     uint32(embeddedPort),
		},
	}, nil
}

// LoadRules reads layout rules from a TOML file. Keys the file leaves out
// keep their defaults; an empty path or a missing file yields the defaults.
func LoadRules(path string) (layout.Rules, error) {
	rules := layout.DefaultRules()
	if path == "" {
		return rules, nil
	}
	md, err := toml.DecodeFile(path, &rules)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warnf("⚠️ Rules file %s not found, using defaults", path)
		return layout.DefaultRules(), nil
	}
	if err != nil {
		return layout.Rules{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Warnf("⚠️ Unknown keys in %s: %v", path, undecoded)
	}
	return rules.Normalize(), nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
