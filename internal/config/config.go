package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Cluster deployment modes.
const (
	ModeFit        = "fit"
	ModePretrained = "pretrained"
)

// Config holds all configuration for the Segmenta server.
type Config struct {
	Server  ServerConfig
	Cluster ClusterConfig
	Storage StorageConfig
	Redis   RedisConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type ClusterConfig struct {
	// Mode selects the clusterer implementation: "fit" refits k-means per
	// request, "pretrained" loads model artifacts from ModelDir.
	Mode     string
	K        int
	Seed     int64
	Restarts int
	Timeout  time.Duration
	ModelDir string
}

type StorageConfig struct {
	UploadDir string
	OutputDir string
}

type RedisConfig struct {
	// URL is optional: when empty, rate limiting is disabled.
	URL            string
	RequestsPerMin int
}

var validModes = map[string]bool{
	ModeFit:        true,
	ModePretrained: true,
}

// Load reads configuration from environment variables and returns a validated
// Config. Returns an error with a descriptive message if any value is invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("SEGMENTA_PORT", 8080),
			Env:  envString("SEGMENTA_ENV", "development"),
		},
		Cluster: ClusterConfig{
			Mode:     envString("CLUSTER_MODE", ModeFit),
			K:        envInt("CLUSTER_K", 5),
			Seed:     envInt64("CLUSTER_SEED", 42),
			Restarts: envInt("CLUSTER_RESTARTS", 10),
			Timeout:  envDurationSecs("CLUSTER_TIMEOUT_SECS", 30*time.Second),
			ModelDir: os.Getenv("MODEL_DIR"),
		},
		Storage: StorageConfig{
			UploadDir: envString("UPLOAD_DIR", "uploads"),
			OutputDir: envString("OUTPUT_DIR", "downloads"),
		},
		Redis: RedisConfig{
			URL:            os.Getenv("REDIS_URL"),
			RequestsPerMin: envInt("RATE_LIMIT_PER_MIN", 60),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if !validModes[c.Cluster.Mode] {
		return fmt.Errorf("CLUSTER_MODE must be %q or %q; got %q", ModeFit, ModePretrained, c.Cluster.Mode)
	}
	if c.Cluster.Mode == ModePretrained && c.Cluster.ModelDir == "" {
		return fmt.Errorf("MODEL_DIR is required when CLUSTER_MODE is %q", ModePretrained)
	}
	if c.Cluster.K < 2 {
		return fmt.Errorf("CLUSTER_K must be at least 2, got %d", c.Cluster.K)
	}
	if c.Cluster.Restarts < 1 {
		return fmt.Errorf("CLUSTER_RESTARTS must be at least 1, got %d", c.Cluster.Restarts)
	}
	if c.Cluster.Timeout <= 0 {
		return fmt.Errorf("CLUSTER_TIMEOUT_SECS must be positive")
	}
	if c.Storage.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	if c.Storage.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR must not be empty")
	}
	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}
