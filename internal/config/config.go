// Package config loads the console configuration.
//
// Sources, highest priority first:
//  1. explicit --config path;
//  2. CONFIG_PATH;
//  3. ./vlp.yaml;
//  4. environment only (cleanenv).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// LocalFile is the config file picked up from the working directory.
const LocalFile = "vlp.yaml"

type Config struct {
	Env     string        `yaml:"env" env:"VLP_ENV" env-default:"local"`
	API     APIConfig     `yaml:"api"`
	Web     WebConfig     `yaml:"web"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// APIConfig points at the VLP API. BaseURL includes the /api/v1 prefix.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"VLP_API_URL" env-default:"http://localhost:8000/api/v1"`
	Timeout time.Duration `yaml:"timeout" env:"VLP_API_TIMEOUT" env-default:"15s"`
}

// WebConfig is the web front end that serves printable billing documents.
type WebConfig struct {
	BaseURL string `yaml:"base_url" env:"VLP_WEB_URL" env-default:"http://localhost:3000"`
}

// DocumentURL returns the printable page of a billing document.
func (w WebConfig) DocumentURL(id string) string {
	return strings.TrimRight(w.BaseURL, "/") + "/billing/" + id + "/print"
}

// StorageConfig locates the local storage file.
type StorageConfig struct {
	Dir string `yaml:"dir" env:"VLP_DATA_DIR" env-default:"~/.vlp"`
}

// LogConfig controls the log file. An empty Level follows Env.
type LogConfig struct {
	Level string `yaml:"level" env:"VLP_LOG_LEVEL"`
	File  string `yaml:"file" env:"VLP_LOG_FILE" env-default:"vlp.log"`
}

// LogPath returns the log file path; relative names live in the data dir.
func (c *Config) LogPath() string {
	if filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.Storage.Dir, c.Log.File)
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}
		return finish(&cfg)
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./vlp.yaml
	if _, err := os.Stat(LocalFile); err == nil {
		return tryRead(LocalFile)
	}

	// 4) env only
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, %s or env vars: %w", LocalFile, err)
	}
	return finish(&cfg)
}

func finish(cfg *Config) (*Config, error) {
	dir, err := expandHome(cfg.Storage.Dir)
	if err != nil {
		return nil, err
	}
	cfg.Storage.Dir = dir
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.Timeout <= 0 {
		return nil, fmt.Errorf("api.timeout must be positive, got %s", cfg.API.Timeout)
	}
	return cfg, nil
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
