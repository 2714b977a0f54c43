package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the dlfindex service configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Relational RelationalConfig `yaml:"relational"`
	Storage    StorageConfig    `yaml:"storage"`
	Index      IndexConfig      `yaml:"index"`
	Documents  DocumentsConfig  `yaml:"documents"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds search engine connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// RelationalConfig locates the document store.
type RelationalConfig struct {
	Path string `yaml:"path"`
}

// StorageConfig holds search engine key settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// IndexConfig holds pagination and bulk indexing settings.
type IndexConfig struct {
	DefaultRows     int `yaml:"default_rows"`
	MaxRows         int `yaml:"max_rows"`
	MaxBatchSize    int `yaml:"max_batch_size"`
	BulkConcurrency int `yaml:"bulk_concurrency"`
}

// DocumentsConfig controls descriptor loading and file group selection.
type DocumentsConfig struct {
	CacheSize       int      `yaml:"cache_size"`
	FetchTimeoutSec int      `yaml:"fetch_timeout_sec"`
	MaxBytes        int64    `yaml:"max_bytes"`
	FileGroups      []string `yaml:"file_groups"`
	MediaGroups     []string `yaml:"media_groups"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Relational.Path == "" {
		c.Relational.Path = "data/dlfindex.db"
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "dlf:"
	}
	if c.Index.DefaultRows <= 0 {
		c.Index.DefaultRows = 20
	}
	if c.Index.MaxRows <= 0 {
		c.Index.MaxRows = 500
	}
	if c.Index.MaxBatchSize <= 0 {
		c.Index.MaxBatchSize = 100
	}
	if c.Index.BulkConcurrency <= 0 {
		c.Index.BulkConcurrency = 4
	}
	if c.Documents.CacheSize <= 0 {
		c.Documents.CacheSize = 256
	}
	if c.Documents.FetchTimeoutSec <= 0 {
		c.Documents.FetchTimeoutSec = 30
	}
	if c.Documents.MaxBytes <= 0 {
		c.Documents.MaxBytes = 32 << 20
	}
	if len(c.Documents.FileGroups) == 0 {
		c.Documents.FileGroups = []string{"DEFAULT", "AUDIO", "FULLTEXT"}
	}
	if len(c.Documents.MediaGroups) == 0 {
		c.Documents.MediaGroups = []string{"AUDIO", "DEFAULT"}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if !strings.HasSuffix(c.Storage.KeyPrefix, ":") {
		return fmt.Errorf("storage.key_prefix must end with \":\", got %q", c.Storage.KeyPrefix)
	}
	if c.Index.DefaultRows > c.Index.MaxRows {
		return fmt.Errorf("index.default_rows (%d) exceeds index.max_rows (%d)",
			c.Index.DefaultRows, c.Index.MaxRows)
	}
	for _, g := range c.Documents.FileGroups {
		if strings.TrimSpace(g) == "" {
			return fmt.Errorf("documents.file_groups must not contain empty names")
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
