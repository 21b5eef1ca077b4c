// internal/config/config.go
package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
)

// Config is the per-repository configuration stored at .jot/config.json.
type Config struct {
    RepositoryID string    `json:"repository_id"`
    CreatedAt    time.Time `json:"created_at"`
    LogLevel     string    `json:"log_level"` // debug, info, warn, error
}

// Default returns a fresh config with a new repository identity.
func Default() *Config {
    return &Config{
        RepositoryID: uuid.New().String(),
        CreatedAt:    time.Now(),
        LogLevel:     "info",
    }
}

// Load reads a config file. A missing file yields defaults rather than an
// error so commands work in repositories created before config existed.
func Load(path string) (*Config, error) {
    file, err := os.Open(path)
    if err != nil {
        if os.IsNotExist(err) {
            return Default(), nil
        }
        return nil, err
    }
    defer file.Close()

    var config Config
    if err := json.NewDecoder(file).Decode(&config); err != nil {
        return nil, err
    }

    if config.LogLevel == "" {
        config.LogLevel = "info"
    }

    return &config, nil
}

// Save writes the config as indented JSON.
func (c *Config) Save(path string) error {
    data, err := json.MarshalIndent(c, "", "  ")
    if err != nil {
        return err
    }
    return os.WriteFile(path, data, 0644)
}
