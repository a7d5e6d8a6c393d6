// Package config loads the memoizer's process-level configuration:
// the module search path, the default for lambda*'s
// #:allow-other-keys, and the gensym prefix (spec.md §4.7). Modeled
// on the teacher's flat YAML config files, loaded with
// gopkg.in/yaml.v3.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/schemeboot/memoize/internal/logging"
)

// Config is the on-disk configuration shape.
type Config struct {
	ModuleSearchPath      []string `yaml:"module_search_path"`
	AllowOtherKeysDefault bool     `yaml:"allow_other_keys_default"`
	GensymPrefix          string   `yaml:"gensym_prefix"`
}

// Default returns the configuration used when no file is provided.
func Default() Config {
	return Config{
		GensymPrefix:          "g",
		AllowOtherKeysDefault: false,
	}
}

// Load reads and parses a YAML config file at path, starting from
// Default so a file only needs to override the fields it cares about.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	logging.Info("config: loaded", "path", path, "module_search_path", cfg.ModuleSearchPath)
	return cfg, nil
}
