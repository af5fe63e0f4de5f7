package config

import (
	"fmt"
	"os"
)

const (
	BackendMemory = "memory"
	BackendFile   = "file"
)

type Config struct {
	Storage StorageConfig `json:"storage"`
}

type StorageConfig struct {
	// Backend picks the cache implementation: "file" or "memory".
	Backend string `json:"backend"`
	Dir     string `json:"dir"`
}

func Load() (*Config, error) {
	config := &Config{
		Storage: StorageConfig{
			Backend: getEnvOrDefault("LARDER_STORAGE_BACKEND", BackendFile),
			Dir:     getEnvOrDefault("LARDER_DATA_DIR", "data"),
		},
	}

	switch config.Storage.Backend {
	case BackendMemory, BackendFile:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.Storage.Backend)
	}

	return config, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
