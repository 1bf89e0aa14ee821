// SPDX-License-Identifier: MIT

// Package config loads the xorslp service configuration from YAML.
//
// Load starts from Default, overlays the file (if any) and validates the
// result with go-playground/validator. The file path comes from the argument
// or, when that is empty, from the XORSLP_CONFIG environment variable.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/xorslp/heuristics"
	"github.com/katalvlaran/xorslp/ingest"
	"github.com/katalvlaran/xorslp/store"
	"github.com/katalvlaran/xorslp/synthesis"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "XORSLP_CONFIG"

// ErrInvalidConfig wraps every decoding or validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the root document.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Engine  EngineConfig  `yaml:"engine"`
	Import  ImportConfig  `yaml:"import"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required"`
	Debug           bool          `yaml:"debug"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

// StorageConfig mirrors store.Config.
type StorageConfig struct {
	Path           string        `yaml:"path" validate:"required_unless=InMemory true"`
	InMemory       bool          `yaml:"in_memory"`
	SyncWrites     bool          `yaml:"sync_writes"`
	GCInterval     time.Duration `yaml:"gc_interval" validate:"min=0"`
	GCDiscardRatio float64       `yaml:"gc_discard_ratio" validate:"gt=0,lt=1"`
}

// EngineConfig mirrors the synthesis.Engine options.
type EngineConfig struct {
	Workers            int  `yaml:"workers" validate:"min=1,max=1024"`
	SearchBudget       int  `yaml:"search_budget" validate:"min=1"`
	DepthLimit         int  `yaml:"depth_limit" validate:"min=0"`
	CacheEntries       int  `yaml:"cache_entries" validate:"min=0"`
	ProcessImmediately bool `yaml:"process_immediately"`
}

// ImportConfig controls directory imports. An empty Root disables the HTTP
// import route; the CLI ignores Root.
type ImportConfig struct {
	Root        string   `yaml:"root"`
	Extensions  []string `yaml:"extensions" validate:"dive,startswith=."`
	MaxFileSize int64    `yaml:"max_file_size" validate:"min=1"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns a configuration that validates as is.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    5 * time.Minute,
			ShutdownTimeout: 15 * time.Second,
		},
		Storage: StorageConfig{
			Path:           "data/xorslp",
			SyncWrites:     true,
			GCInterval:     5 * time.Minute,
			GCDiscardRatio: 0.5,
		},
		Engine: EngineConfig{
			Workers:      synthesis.DefaultWorkers,
			SearchBudget: heuristics.DefaultSearchBudget,
			CacheEntries: synthesis.DefaultCacheEntries,
		},
		Import: ImportConfig{
			Extensions:  append([]string(nil), ingest.DefaultExtensions...),
			MaxFileSize: ingest.DefaultMaxFileSize,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path (or $XORSLP_CONFIG) over Default and validates it. With
// neither set, Default is returned.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if cfg, err = Parse(data); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
		return cfg, nil
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Parse decodes YAML over Default and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := decodeStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every field constraint.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// StoreConfig converts the storage section.
func (c Config) StoreConfig() store.Config {
	return store.Config{
		Path:           c.Storage.Path,
		InMemory:       c.Storage.InMemory,
		SyncWrites:     c.Storage.SyncWrites,
		GCInterval:     c.Storage.GCInterval,
		GCDiscardRatio: c.Storage.GCDiscardRatio,
	}
}

// EngineOptions converts the engine section.
func (c Config) EngineOptions() []synthesis.Option {
	return []synthesis.Option{
		synthesis.WithWorkers(c.Engine.Workers),
		synthesis.WithSearchBudget(c.Engine.SearchBudget),
		synthesis.WithDepthLimit(c.Engine.DepthLimit),
		synthesis.WithCacheEntries(c.Engine.CacheEntries),
	}
}

// DirOptions converts the import section.
func (c Config) DirOptions() ingest.DirOptions {
	return ingest.DirOptions{
		Extensions:  c.Import.Extensions,
		MaxFileSize: c.Import.MaxFileSize,
	}
}

var validate = validator.New()

func decodeStrict(data []byte, dst *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}
