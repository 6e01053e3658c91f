package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Jai-Chauhan/SCT-DS-2/internal/dataset"
)

// Global configuration structure.
type Global struct {
	OutputDir     string   `mapstructure:"output_dir" yaml:"output_dir"`
	ImageFormat   string   `mapstructure:"image_format" yaml:"image_format"`
	Workers       int      `mapstructure:"workers" yaml:"workers"`
	SampleRows    int      `mapstructure:"sample_rows" yaml:"sample_rows"`
	Targets       []string `mapstructure:"targets" yaml:"targets"`
	MaxCategories int      `mapstructure:"max_categories" yaml:"max_categories"`
	Dataset       string   `mapstructure:"dataset" yaml:"dataset"`

	// CSV parsing
	NAValues  []string `mapstructure:"na_values" yaml:"na_values"`
	Delimiter string   `mapstructure:"delimiter" yaml:"delimiter"`

	// Optional workbook export; empty disables it.
	XLSXPath string `mapstructure:"xlsx_path" yaml:"xlsx_path"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
	NoColor   bool   `mapstructure:"no_color" yaml:"no_color"`
}

// Keys lists the settable configuration keys.
func Keys() []string {
	keys := make([]string, 0, len(defaults()))
	for k := range defaults() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func defaults() map[string]any {
	return map[string]any{
		"output_dir":     "eda_plots",
		"image_format":   "png",
		"workers":        4,
		"sample_rows":    5,
		"targets":        []string{"Survived", "Outcome"},
		"max_categories": 0,
		"dataset":        "",
		"na_values":      dataset.DefaultNAValues,
		"delimiter":      ",",
		"xlsx_path":      "",
		"log_level":      "info",
		"log_format":     "text",
		"no_color":       false,
	}
}

// Path resolves the config file location: cfgFile if set, else ~/.sct-eda/config.yaml.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".sct-eda", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.sct-eda/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("EDA")
	v.AutomaticEnv()
	for k, d := range defaults() {
		v.SetDefault(k, d)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		path, err := Path("")
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// A missing file is fine; a malformed one is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, c.Validate()
}

// Validate checks value ranges that viper cannot express.
func (c *Global) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if c.SampleRows < 0 {
		return fmt.Errorf("sample_rows must be >= 0, got %d", c.SampleRows)
	}
	if c.MaxCategories < 0 {
		return fmt.Errorf("max_categories must be >= 0, got %d", c.MaxCategories)
	}
	if _, err := c.DelimiterRune(); err != nil {
		return err
	}
	return nil
}

// DelimiterRune returns the single-character field delimiter; `\t` and "tab" mean a tab.
func (c *Global) DelimiterRune() (rune, error) {
	return ParseRune("delimiter", c.Delimiter, ',')
}

// ParseRune reads a single-character option value, returning def when s is empty.
func ParseRune(key, s string, def rune) (rune, error) {
	switch s {
	case "":
		return def, nil
	case `\t`, "tab":
		return '\t', nil
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", key, s)
	}
	return r[0], nil
}

// Set assigns key from its string form, as given to `eda config set`.
// On error c is left unchanged.
func (c *Global) Set(key, value string) error {
	atoi := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return n, nil
	}
	list := func() []string {
		var out []string
		for _, s := range strings.Split(value, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	prev := *c
	var err error
	switch key {
	case "output_dir":
		c.OutputDir = value
	case "image_format":
		c.ImageFormat = strings.ToLower(value)
	case "workers":
		c.Workers, err = atoi()
	case "sample_rows":
		c.SampleRows, err = atoi()
	case "max_categories":
		c.MaxCategories, err = atoi()
	case "targets":
		c.Targets = list()
	case "na_values":
		c.NAValues = list()
	case "dataset":
		c.Dataset = value
	case "delimiter":
		c.Delimiter = value
	case "xlsx_path":
		c.XLSXPath = value
	case "log_level":
		c.LogLevel = value
	case "log_format":
		c.LogFormat = value
	case "no_color":
		c.NoColor, err = strconv.ParseBool(value)
	default:
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	if err == nil {
		err = c.Validate()
	}
	if err != nil {
		*c = prev
		return err
	}
	return nil
}
