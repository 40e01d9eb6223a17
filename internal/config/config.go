// Package config loads pipeline configuration from a YAML file, .env files
// and GRAPHBENCH_* environment variables, in that order of precedence
// (environment wins).
package config

import (
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/graphbench/graphbench-go/internal/errors"
)

// Config holds all pipeline settings
type Config struct {
	Datasets DatasetsConfig `yaml:"datasets" mapstructure:"datasets"`
	Builder  string         `yaml:"builder" mapstructure:"builder"`
	Mapping  MappingConfig  `yaml:"mapping" mapstructure:"mapping"`
	Frame    FrameConfig    `yaml:"frame" mapstructure:"frame"`
	Results  ResultsConfig  `yaml:"results" mapstructure:"results"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DatasetsConfig locates the two CSV inputs
type DatasetsConfig struct {
	NodesPath   string `yaml:"nodes_path" mapstructure:"nodes_path"`
	EdgesPath   string `yaml:"edges_path" mapstructure:"edges_path"`
	NodesHeader bool   `yaml:"nodes_header" mapstructure:"nodes_header"`
	EdgesHeader bool   `yaml:"edges_header" mapstructure:"edges_header"`
}

// MappingConfig controls the reserved-key merges
type MappingConfig struct {
	MapLabels bool `yaml:"map_labels" mapstructure:"map_labels"`
}

// FrameConfig configures the dataframe builder variant
type FrameConfig struct {
	NodesKeepIntact []string          `yaml:"nodes_keep_intact" mapstructure:"nodes_keep_intact"`
	EdgesKeepIntact []string          `yaml:"edges_keep_intact" mapstructure:"edges_keep_intact"`
	NodesRename     map[string]string `yaml:"nodes_rename" mapstructure:"nodes_rename"`
	EdgesRename     map[string]string `yaml:"edges_rename" mapstructure:"edges_rename"`
}

// ResultsConfig controls where run results go
type ResultsConfig struct {
	Dir         string `yaml:"dir" mapstructure:"dir"`
	HeapProfile bool   `yaml:"heap_profile" mapstructure:"heap_profile"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	SampleSize  int    `yaml:"sample_size" mapstructure:"sample_size"`
}

// LogConfig controls the process logger
type LogConfig struct {
	File  string `yaml:"file" mapstructure:"file"`
	Level string `yaml:"level" mapstructure:"level"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Datasets: DatasetsConfig{
			NodesHeader: true,
			EdgesHeader: true,
		},
		Builder: "list",
		Mapping: MappingConfig{MapLabels: true},
		Frame: FrameConfig{
			NodesKeepIntact: []string{"id", "properties"},
			EdgesKeepIntact: []string{"source", "target", "properties"},
			NodesRename:     map[string]string{"id": "source"},
			EdgesRename:     map[string]string{},
		},
		Results: ResultsConfig{
			Dir:        "results",
			SampleSize: 2,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads configuration from the given file (optional), layered with .env
// and environment variables.
func Load(path string) (*Config, error) {
	// .env is best-effort; absence is not an error
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GRAPHBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Default()
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "read config file").
				WithContext("path", path)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "parse configuration")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("datasets.nodes_header", cfg.Datasets.NodesHeader)
	v.SetDefault("datasets.edges_header", cfg.Datasets.EdgesHeader)
	v.SetDefault("builder", cfg.Builder)
	v.SetDefault("mapping.map_labels", cfg.Mapping.MapLabels)
	v.SetDefault("frame.nodes_keep_intact", cfg.Frame.NodesKeepIntact)
	v.SetDefault("frame.edges_keep_intact", cfg.Frame.EdgesKeepIntact)
	v.SetDefault("frame.nodes_rename", cfg.Frame.NodesRename)
	v.SetDefault("frame.edges_rename", cfg.Frame.EdgesRename)
	v.SetDefault("results.dir", cfg.Results.Dir)
	v.SetDefault("results.sample_size", cfg.Results.SampleSize)
	v.SetDefault("log.level", cfg.Log.Level)
}

// Validate checks that the required settings are present
func (c *Config) Validate() error {
	if c.Datasets.NodesPath == "" {
		return errors.ConfigError("datasets.nodes_path is required")
	}
	if c.Datasets.EdgesPath == "" {
		return errors.ConfigError("datasets.edges_path is required")
	}
	if c.Results.SampleSize < 0 {
		return errors.ConfigError("results.sample_size must not be negative")
	}
	return nil
}

// HeapProfilePath returns the heap profile destination for a builder variant
func (c *Config) HeapProfilePath(builder string) string {
	return filepath.Join(c.Results.Dir, "heap_"+builder+".pprof")
}
