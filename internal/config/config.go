package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"salesreport/internal/errors"
)

// DefaultConfigFile is the config file consulted when no --config flag is given.
const DefaultConfigFile = "config.yaml"

// Config represents the complete application configuration
type Config struct {
	// Input is the path to the sales transaction CSV file
	Input string `yaml:"input" envconfig:"INPUT"`
	// OutputDir is the directory all report files are written to
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	// DateFormat is an optional strict date layout (Go reference time,
	// e.g. "2006-01-02"). Empty means permissive multi-layout parsing.
	DateFormat string `yaml:"date_format" envconfig:"DATE_FORMAT"`
	// Verbose raises the console log level from warnings to full progress output
	Verbose bool `yaml:"verbose" envconfig:"VERBOSE"`
	// TopN is how many category/product rows the text summary lists
	TopN int `yaml:"top_n" envconfig:"TOP_N" validate:"min=1"`
}

// Default returns the built-in configuration defaults
func Default() Config {
	return Config{
		OutputDir: "reports",
		TopN:      5,
	}
}

// Load builds the configuration by merging, lowest to highest precedence:
// built-in defaults, the YAML config file (if present), and SALESREPORT_*
// environment variables. The merged result is validated before use.
// Command-line flags are applied by the caller on top of the returned value.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	path := configFile
	if path == "" {
		path = DefaultConfigFile
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file %s", path), err)
		}
	} else if configFile != "" {
		// An explicitly requested config file must exist; the default one is optional.
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file %s", configFile), err)
	}

	if err := envconfig.Process("SALESREPORT", &cfg); err != nil {
		return nil, errors.NewConfigError("failed to load config from environment", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct validation tags
func (c *Config) Validate() error {
	v := validator.New()

	// Report fields by their yaml names so messages match the config file
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.Struct(c); err != nil {
		var details []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, ve := range verrs {
				details = append(details, fmt.Sprintf("%s failed on %s", ve.Field(), ve.Tag()))
			}
			return errors.NewConfigError(
				fmt.Sprintf("config validation failed: %s", strings.Join(details, "; ")), nil)
		}
		return errors.NewConfigError("config validation failed", err)
	}

	return nil
}
