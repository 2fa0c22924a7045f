package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr       string `json:"addr" yaml:"addr" toml:"addr"`
	AgentsFile string `json:"agents_file" yaml:"agents_file" toml:"agents_file"`
	LogLevel   string `json:"log_level" yaml:"log_level" toml:"log_level"`

	// Scheduler tunables. Durations are whole seconds.
	KeepAliveSeconds     int `json:"keep_alive_seconds" yaml:"keep_alive_seconds" toml:"keep_alive_seconds"`
	EvictIntervalSeconds int `json:"evict_interval_seconds" yaml:"evict_interval_seconds" toml:"evict_interval_seconds"`
	MaxQueueDepth        int `json:"max_queue_depth" yaml:"max_queue_depth" toml:"max_queue_depth"`

	// Resource loader selection ("exec" or "llama") and exec loader command
	// templates. The resource id is appended to each argv.
	Loader               string   `json:"loader" yaml:"loader" toml:"loader"`
	LoadCommand          []string `json:"load_command" yaml:"load_command" toml:"load_command"`
	UnloadCommand        []string `json:"unload_command" yaml:"unload_command" toml:"unload_command"`
	LoaderTimeoutSeconds int      `json:"loader_timeout_seconds" yaml:"loader_timeout_seconds" toml:"loader_timeout_seconds"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
