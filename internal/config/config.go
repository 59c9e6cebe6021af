// Package config loads and applies .sceval.yml configuration files for
// batch settings, history, storage, and analyst credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// History configures the optional run-history database.
type History struct {
	Driver string `yaml:"driver,omitempty"` // mysql or postgres
	DSN    string `yaml:"dsn,omitempty"`
}

// Storage configures the optional S3-compatible report upload.
type Storage struct {
	Endpoint  string `yaml:"endpoint,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
	Bucket    string `yaml:"bucket,omitempty"`
	Region    string `yaml:"region,omitempty"`
	UseSSL    bool   `yaml:"use_ssl,omitempty"`
	Prefix    string `yaml:"prefix,omitempty"`
}

// Analyst configures the optional LLM report summarizer.
type Analyst struct {
	Model  string `yaml:"model,omitempty"`
	APIKey string `yaml:"api_key,omitempty"`
}

// Serve configures the report web server.
type Serve struct {
	Addr           string   `yaml:"addr,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// Config represents the .sceval.yml configuration file.
type Config struct {
	Root    string   `yaml:"root,omitempty"`
	Report  string   `yaml:"report,omitempty"`
	Timeout string   `yaml:"timeout,omitempty"` // Go duration, e.g. "30s"
	Ignore  []string `yaml:"ignore,omitempty"`
	History History  `yaml:"history,omitempty"`
	Storage Storage  `yaml:"storage,omitempty"`
	Analyst Analyst  `yaml:"analyst,omitempty"`
	Serve   Serve    `yaml:"serve,omitempty"`
}

// TimeoutDuration parses the configured per-tool timeout. An empty value
// means no timeout.
func (c Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("parsing timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	return d, nil
}

// Load reads the .sceval.yml or .sceval.yaml config file from the given
// path. If path is a file, its parent directory is used. If no config file
// is found, it returns a zero Config (not an error).
func Load(dir string) (Config, error) {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for _, name := range []string{".sceval.yml", ".sceval.yaml"} {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		if info.Size() > 1<<20 {
			return Config{}, fmt.Errorf("config file too large: %s (%d bytes, max 1 MB)", path, info.Size())
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
		return cfg, nil
	}
	return Config{}, nil
}
