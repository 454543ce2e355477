// Package config loads and validates generator settings. Values come from an
// optional config file (YAML, TOML or JSON), SCHEMAGEN_* environment
// variables and bound command-line flags, in viper's usual precedence.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Keys.
const (
	KeySourceDirectory    = "source-directory"
	KeyOutputRoot         = "output-root"
	KeyOutputSubdirectory = "output-subdirectory"
	KeyIncludePatterns    = "include-patterns"
	KeyExcludePatterns    = "exclude-patterns"
	KeyMetadataFile       = "metadata-file"
	KeyComments           = "comments"
	KeyLogLevel           = "log-level"
	KeyLogFile            = "log-file"
)

// EnvPrefix namespaces environment variables: SCHEMAGEN_OUTPUT_ROOT etc.
const EnvPrefix = "SCHEMAGEN"

// Config holds the settings of one generation run.
type Config struct {
	// SourceDirectory is the Go source tree scanned for type declarations.
	SourceDirectory string `mapstructure:"source-directory" validate:"required"`
	// OutputRoot is the base of the output tree.
	OutputRoot string `mapstructure:"output-root" validate:"required"`
	// OutputSubdirectory is appended to OutputRoot; schemas land there.
	OutputSubdirectory string `mapstructure:"output-subdirectory" validate:"required"`
	// IncludePatterns select source files, relative to SourceDirectory.
	IncludePatterns []string `mapstructure:"include-patterns" validate:"required,min=1,dive,required"`
	ExcludePatterns []string `mapstructure:"exclude-patterns" validate:"omitempty,dive,required"`
	// MetadataFile is an optional YAML member table.
	MetadataFile string `mapstructure:"metadata-file"`
	// Comments turns Go doc comments into descriptions.
	Comments bool   `mapstructure:"comments"`
	LogLevel string `mapstructure:"log-level" validate:"oneof=debug info warn error"`
	LogFile  string `mapstructure:"log-file"`
}

// OutputDirectory is where schema files are written.
func (c Config) OutputDirectory() string {
	return filepath.Join(c.OutputRoot, c.OutputSubdirectory)
}

// validate is shared; building a validator is expensive.
var validate = validator.New()

// Validate checks c against its struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// NewViper returns a viper instance with defaults and environment binding in
// place. Callers bind flags and set a config file before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// SetDefaults installs the default values.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeySourceDirectory, ".")
	v.SetDefault(KeyOutputRoot, ".")
	v.SetDefault(KeyOutputSubdirectory, "json-schema")
	v.SetDefault(KeyIncludePatterns, []string{"**"})
	v.SetDefault(KeyExcludePatterns, []string{})
	v.SetDefault(KeyComments, false)
	v.SetDefault(KeyLogLevel, "info")
}

// Load reads the config file (when one is set), decodes and validates.
func Load(v *viper.Viper) (Config, error) {
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Default returns the defaults as a Config. It panics if the defaults do not
// decode, which only a broken SetDefaults can cause.
func Default() Config {
	v := viper.New()
	SetDefaults(v)
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		panic(fmt.Errorf("config: decode defaults: %w", err))
	}
	return c
}
