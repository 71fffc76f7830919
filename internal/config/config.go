package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDSN       = "sqlite://./comicstudio.db"
	DefaultModel     = "gemini-3-flash-preview"
	DefaultAPIKeyEnv = "GEMINI_API_KEY"
	DefaultQuality   = 70
	DefaultMaxWidth  = 1200
)

type ProjectConfig struct {
	Project string        `yaml:"project"`
	Version int           `yaml:"version"`
	Storage StorageConfig `yaml:"storage"`
	Suggest SuggestConfig `yaml:"suggest"`
	Images  ImagesConfig  `yaml:"images"`
}

type StorageConfig struct {
	DSN string `yaml:"dsn"`
	// Prefix namespaces keys on shared key-value servers.
	Prefix string `yaml:"prefix,omitempty"`
}

type SuggestConfig struct {
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

type ImagesConfig struct {
	Codec    string `yaml:"codec"`
	Quality  int    `yaml:"quality"`
	MaxWidth int    `yaml:"max_width"`
}

// overrides are read from the environment after the file is loaded.
type overrides struct {
	DSN   string `env:"COMICSTUDIO_DSN"`
	Model string `env:"COMICSTUDIO_SUGGEST_MODEL"`
}

func DefaultProjectConfig(project string) *ProjectConfig {
	cfg := &ProjectConfig{Project: project, Version: 1}
	applyDefaults(cfg)
	return cfg
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyDefaults(&cfg)
	if err := applyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

// LoadProjectConfigOrDefault uses the built-in defaults, still subject to
// environment overrides, when path does not exist.
func LoadProjectConfigOrDefault(path, project string) (*ProjectConfig, error) {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return LoadProjectConfig(path)
	}
	cfg := DefaultProjectConfig(project)
	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}
	if err := validateProjectConfig(cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}
	return cfg, nil
}

func (c *ProjectConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// APIKey reads the suggestion API key from the configured variable.
func (c *ProjectConfig) APIKey() string {
	return os.Getenv(c.Suggest.APIKeyEnv)
}

// LoadEnvFile exports the variables of a .env file that are not already
// set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func applyDefaults(cfg *ProjectConfig) {
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = DefaultDSN
	}
	if cfg.Suggest.Model == "" {
		cfg.Suggest.Model = DefaultModel
	}
	if cfg.Suggest.APIKeyEnv == "" {
		cfg.Suggest.APIKeyEnv = DefaultAPIKeyEnv
	}
	if cfg.Images.Codec == "" {
		cfg.Images.Codec = "bimg"
	}
	if cfg.Images.Quality == 0 {
		cfg.Images.Quality = DefaultQuality
	}
	if cfg.Images.MaxWidth == 0 {
		cfg.Images.MaxWidth = DefaultMaxWidth
	}
}

func applyEnv(cfg *ProjectConfig) error {
	var o overrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.DSN != "" {
		cfg.Storage.DSN = o.DSN
	}
	if o.Model != "" {
		cfg.Suggest.Model = o.Model
	}
	return nil
}

var storageSchemes = map[string]bool{
	"sqlite":     true,
	"postgres":   true,
	"postgresql": true,
	"redis":      true,
	"rediss":     true,
	"memory":     true,
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}

	scheme, _, ok := strings.Cut(cfg.Storage.DSN, "://")
	if !ok || !storageSchemes[strings.ToLower(scheme)] {
		return fmt.Errorf("unsupported storage dsn: %s", redact(cfg.Storage.DSN))
	}

	switch cfg.Images.Codec {
	case "bimg", "none":
	default:
		return fmt.Errorf("unknown image codec: %s", cfg.Images.Codec)
	}
	if cfg.Images.Quality < 1 || cfg.Images.Quality > 100 {
		return fmt.Errorf("image quality must be between 1 and 100, got %d", cfg.Images.Quality)
	}
	if cfg.Images.MaxWidth < 0 {
		return fmt.Errorf("image max width must not be negative")
	}

	return nil
}

// redact hides the password of a DSN in error messages.
func redact(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	return u.Redacted()
}
