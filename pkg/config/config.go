package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/japaniel/vocabprep/pkg/vocab"
)

// DefaultPath is read when neither -config nor CONFIG_PATH is given.
const DefaultPath = "./vocabprep.yaml"

// Config is the vocabprep configuration.
type Config struct {
	Data       DataConfig       `yaml:"data"`
	Source     SourceConfig     `yaml:"source"`
	Reports    ReportsConfig    `yaml:"reports"`
	DB         DBConfig         `yaml:"db"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Log        LogConfig        `yaml:"log"`
}

// DataConfig locates the lesson tables.
type DataConfig struct {
	Dir         string `yaml:"dir"          env:"VOCABPREP_DATA_DIR"     env-default:"data"`
	FirstLesson int    `yaml:"first_lesson" env:"VOCABPREP_FIRST_LESSON" env-default:"1"`
	LastLesson  int    `yaml:"last_lesson"  env:"VOCABPREP_LAST_LESSON"  env-default:"25"`
}

// SourceConfig locates the source workbook.
type SourceConfig struct {
	Path   string `yaml:"path"   env:"VOCABPREP_SOURCE"`
	Marker string `yaml:"marker" env:"VOCABPREP_SOURCE_MARKER" env-default:"大家日语_"`
}

// ReportsConfig holds report output settings.
type ReportsConfig struct {
	Dir string `yaml:"dir" env:"VOCABPREP_REPORTS_DIR" env-default:"."`
}

// DBConfig holds SQLite export settings. An empty path disables export.
type DBConfig struct {
	Path      string `yaml:"path"       env:"VOCABPREP_DB"`
	BatchSize int    `yaml:"batch_size" env:"VOCABPREP_DB_BATCH_SIZE" env-default:"200"`
}

// DictionaryConfig locates the JMdict file used by the audit phase. Workers
// sizes the audit worker pool.
type DictionaryConfig struct {
	Path         string `yaml:"path"          env:"VOCABPREP_JMDICT"`
	AutoDownload bool   `yaml:"auto_download" env:"VOCABPREP_JMDICT_DOWNLOAD"`
	Workers      int    `yaml:"workers"       env:"VOCABPREP_AUDIT_WORKERS" env-default:"4"`
}

// ClassifierConfig selects the word-type rule order.
type ClassifierConfig struct {
	IrregularFirst bool `yaml:"irregular_first" env:"VOCABPREP_IRREGULAR_FIRST"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// An empty path falls back to CONFIG_PATH, then DefaultPath. A missing file
// is an error only when the path was given explicitly.
func Load(path string) (*Config, error) {
	var cfg Config

	explicitPath := path != ""
	if !explicitPath {
		path = os.Getenv("CONFIG_PATH")
		explicitPath = path != ""
	}
	if !explicitPath {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges. Load calls it automatically.
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir must be set")
	}
	if !vocab.ValidLesson(c.Data.FirstLesson) || !vocab.ValidLesson(c.Data.LastLesson) {
		return fmt.Errorf("lesson range %d..%d outside %d..%d",
			c.Data.FirstLesson, c.Data.LastLesson, vocab.FirstLesson, vocab.LastLesson)
	}
	if c.Data.FirstLesson > c.Data.LastLesson {
		return fmt.Errorf("first_lesson %d after last_lesson %d", c.Data.FirstLesson, c.Data.LastLesson)
	}
	if c.DB.BatchSize <= 0 {
		return fmt.Errorf("db.batch_size must be > 0 (got %d)", c.DB.BatchSize)
	}
	if c.Dictionary.Workers <= 0 {
		return fmt.Errorf("dictionary.workers must be > 0 (got %d)", c.Dictionary.Workers)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}
	return nil
}
