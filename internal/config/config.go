package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	Paths  PathsConfig
	Store  StoreConfig
	Log    LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	paths, err := loadPathsConfig()
	if err != nil {
		return nil, err
	}

	store, err := loadStoreConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Paths: paths, Store: store, Log: logCfg}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Host string
	Port int
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// URL returns the address printed at startup.
func (c ServerConfig) URL() string {
	return "http://" + c.Addr()
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	host := getEnvOrDefault("HOST", "localhost")
	if strings.Contains(host, " ") {
		return ServerConfig{}, fmt.Errorf("invalid HOST value: %q", host)
	}

	port := 3000
	override, err := parseOptionalIntEnv("PORT")
	if err != nil {
		return ServerConfig{}, err
	}
	if override != nil {
		port = *override
	}
	if port < 1 || port > 65535 {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %d", port)
	}

	return ServerConfig{Host: host, Port: port}, nil
}

// PathsConfig 描述模板、静态文件与存储文件的位置。
type PathsConfig struct {
	BaseDir     string
	TemplateDir string
	StoragePath string
}

// StaticDir is where /static/ requests resolve.
func (c PathsConfig) StaticDir() string {
	return filepath.Join(c.BaseDir, "static")
}

func loadPathsConfig() (PathsConfig, error) {
	base := strings.TrimSpace(os.Getenv("BOARD_BASE_DIR"))
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return PathsConfig{}, fmt.Errorf("resolve working directory: %w", err)
		}
		base = wd
	}

	base, err := filepath.Abs(base)
	if err != nil {
		return PathsConfig{}, fmt.Errorf("invalid BOARD_BASE_DIR value %q: %w", base, err)
	}

	return PathsConfig{
		BaseDir:     base,
		TemplateDir: getEnvOrDefault("BOARD_TEMPLATE_DIR", filepath.Join(base, "templates")),
		StoragePath: getEnvOrDefault("BOARD_STORAGE_PATH", filepath.Join(base, "storage", "data.json")),
	}, nil
}

// StoreConfig 描述留言存储行为。
type StoreConfig struct {
	// Locking serializes saves. Off by default, matching the unsynchronized
	// read-modify-write cycle of the file store.
	Locking bool
}

func loadStoreConfig() (StoreConfig, error) {
	locking, err := parseBoolEnv("BOARD_STORE_LOCKING", false)
	if err != nil {
		return StoreConfig{}, err
	}
	return StoreConfig{Locking: locking}, nil
}

// LogConfig 描述日志配置。
type LogConfig struct {
	Level  string
	Pretty bool
}

func loadLogConfig() (LogConfig, error) {
	pretty, err := parseBoolEnv("LOG_PRETTY", true)
	if err != nil {
		return LogConfig{}, err
	}
	return LogConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Pretty: pretty,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
