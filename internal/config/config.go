// Package config loads the CLI's configuration file. Configuration is
// optional: a missing file means defaults, so a fresh checkout runs with no
// setup.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Backend names accepted in the store section.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// DefaultFiles are probed in order when no explicit path is given.
var DefaultFiles = []string{"hive.yaml", "hive.yml", "hive.json"}

// Config is the top-level configuration document.
type Config struct {
	Store    StoreConfig   `yaml:"store" json:"store"`
	Journal  JournalConfig `yaml:"journal" json:"journal"`
	Redis    RedisConfig   `yaml:"redis" json:"redis"`
	HTTP     HTTPConfig    `yaml:"http" json:"http"`
	LogLevel string        `yaml:"logLevel" json:"logLevel"`

	// Synonyms replaces the built-in synonym table when set. Keys are
	// words, values their synonyms; expansion is bidirectional.
	Synonyms map[string][]string `yaml:"synonyms" json:"synonyms"`

	// QueryLimit caps query results when callers pass no limit. Zero keeps
	// the engine default.
	QueryLimit int `yaml:"queryLimit" json:"queryLimit"`
}

// StoreConfig selects and parameterizes the hex store backend.
type StoreConfig struct {
	// Backend is one of memory, file, redis.
	Backend string `yaml:"backend" json:"backend"`
	// Dir is the record directory for the file backend.
	Dir string `yaml:"dir" json:"dir"`
}

// JournalConfig parameterizes the journey journal.
type JournalConfig struct {
	// Path is the JSONL file for the file backend. The redis backend
	// ignores it.
	Path string `yaml:"path" json:"path"`
}

// RedisConfig carries connection settings shared by the redis store and
// journal.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Prefix   string `yaml:"prefix" json:"prefix"`
}

// HTTPConfig parameterizes the HTTP adapter started by serve.
type HTTPConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend: BackendFile,
			Dir:     filepath.Join(".hive", "comb"),
		},
		Journal: JournalConfig{
			Path: filepath.Join(".hive", "journey.log"),
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "hive:",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		LogLevel: "info",
	}
}

// Load reads a configuration file (YAML or JSON) over the defaults. With an
// empty path the default file names are probed and a project without any of
// them runs on pure defaults; an explicit path that does not exist is an
// error, since the caller asked for that file.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		for _, candidate := range DefaultFiles {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
		return nil
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
}
