// Package config loads the service configuration from an optional YAML
// file layered over built-in defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API      APIConfig      `yaml:"api"`
	Temporal TemporalConfig `yaml:"temporal"`
	Backend  BackendConfig  `yaml:"backend"`
	Document DocumentConfig `yaml:"document"`
}

type APIConfig struct {
	Addr string `yaml:"addr"`
}

type TemporalConfig struct {
	HostPort string `yaml:"hostPort"`
}

// BackendConfig locates the case-management REST backend.
type BackendConfig struct {
	BaseURL        string `yaml:"baseUrl"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// DocumentConfig governs document uploads: which MIME types are accepted
// and which character runs get collapsed out of file names.
type DocumentConfig struct {
	MimeTypes                   []string `yaml:"mimeTypes"`
	FileNameSanitizationPattern string   `yaml:"fileNameSanitizationPattern"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		API:      APIConfig{Addr: ":8090"},
		Temporal: TemporalConfig{HostPort: "localhost:7233"},
		Backend: BackendConfig{
			BaseURL:        "http://localhost:8080/api",
			TimeoutSeconds: 30,
		},
		Document: DocumentConfig{
			MimeTypes:                   []string{"application/pdf", "image/jpeg", "image/png"},
			FileNameSanitizationPattern: `[^0-9A-Za-zÀ-ÖØ-öø-ÿ\.\-_]`,
		},
	}
}

// Load reads the YAML file at path over Default. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
