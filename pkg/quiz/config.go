package quiz

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultConfigPath is read when no config path is given.
const DefaultConfigPath = "./kanaquiz.toml"

// Config holds the quiz settings.
type Config struct {
	// EnabledTypes selects kana types; empty means all.
	EnabledTypes []string `toml:"enabled_types" yaml:"enabled_types" env:"KANAQUIZ_TYPES" env-separator:","`
	TargetScore  int      `toml:"target_score"  yaml:"target_score"  env:"KANAQUIZ_TARGET_SCORE" env-default:"2"`
	OptionCount  int      `toml:"option_count"  yaml:"option_count"  env:"KANAQUIZ_OPTION_COUNT" env-default:"4"`
	// KanaTable overrides the built-in kana table.
	KanaTable string `toml:"kana_table" yaml:"kana_table" env:"KANAQUIZ_KANA_TABLE"`
}

// LoadConfig reads the quiz config file (TOML or YAML by extension) plus
// environment overrides. A missing file is not an error: defaults are used
// and found is false.
func LoadConfig(path string) (cfg *Config, found bool, err error) {
	cfg = &Config{}
	if path == "" {
		path = DefaultConfigPath
	}

	if _, statErr := os.Stat(path); statErr == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, true, fmt.Errorf("quiz config: read %s: %w", path, err)
		}
		found = true
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, false, fmt.Errorf("quiz config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, found, fmt.Errorf("quiz config: %w", err)
	}
	return cfg, found, nil
}

// Types returns the enabled kana types, all of them when none are set.
func (c *Config) Types() []string {
	if len(c.EnabledTypes) == 0 {
		return AllTypes
	}
	return c.EnabledTypes
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if c.TargetScore < 1 {
		return fmt.Errorf("target_score must be >= 1 (got %d)", c.TargetScore)
	}
	if c.OptionCount < 1 {
		return fmt.Errorf("option_count must be >= 1 (got %d)", c.OptionCount)
	}
	known := make(map[string]bool, len(AllTypes))
	for _, t := range AllTypes {
		known[t] = true
	}
	for _, t := range c.EnabledTypes {
		if !known[t] {
			return fmt.Errorf("unknown kana type %q", t)
		}
	}
	return nil
}
