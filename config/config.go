package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	Store   StoreConfig
	Catalog CatalogConfig
	Scan    ScanConfig
}

type ServerConfig struct {
	AppEnv      string
	BaseURL     string
	HTTPTimeout time.Duration
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
	Filename          string // empty disables the rotating file sink
}

type StoreConfig struct {
	Path string
}

type CatalogConfig struct {
	Source string // static, yaml, sqlite, remote
	Path   string
}

type ScanConfig struct {
	Device    string
	FramesDir []string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:      getEnv("APP_ENV", "dev"),
			BaseURL:     strings.TrimRight(getEnv("SERVER_URL", "http://127.0.0.1:5000"), "/"),
			HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
			Filename:          getEnv("LOG_FILE", ""),
		},
		Store: StoreConfig{
			Path: getEnv("STORE_PATH", defaultStorePath()),
		},
		Catalog: CatalogConfig{
			Source: getEnv("CATALOG_SOURCE", "static"),
			Path:   getEnv("CATALOG_PATH", ""),
		},
		Scan: ScanConfig{
			Device:    getEnv("SCAN_DEVICE", ""),
			FramesDir: getEnvSlice("SCAN_FRAMES_DIR", nil),
		},
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ecoscan.db"
	}
	return filepath.Join(home, ".ecoscan", "session.db")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// Bare integers are seconds.
		if i, err := strconv.Atoi(value); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return strings.Split(value, ",")
	}
	return fallback
}
