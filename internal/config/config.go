// Package config loads runtime settings from defaults, an optional YAML
// file, HTMLCASE_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/mrjoshuak/htmlcase/internal/casing"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. HTMLCASE_SERVER_ADDR.
	EnvPrefix = "HTMLCASE"

	// FileName is the config file name searched in $HOME and the working
	// directory, without its extension.
	FileName = ".htmlcase"
)

// Config is the complete runtime configuration.
type Config struct {
	Server    Server    `mapstructure:"server"`
	Log       Log       `mapstructure:"log"`
	Transform Transform `mapstructure:"transform"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	MaxBodySize     string        `mapstructure:"max_body_size" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// Log configures the process logger.
type Log struct {
	Debug bool `mapstructure:"debug"`
	Quiet bool `mapstructure:"quiet"`
	JSON  bool `mapstructure:"json"`
}

// Transform holds defaults applied to every transformation.
type Transform struct {
	Normalize string `mapstructure:"normalize"`
}

// SetDefaults registers the default value of every key. Keys without a
// default are not seen by Unmarshal when they only come from the
// environment.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_body_size", "1MB")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("log.debug", false)
	v.SetDefault("log.quiet", false)
	v.SetDefault("log.json", false)
	v.SetDefault("transform.normalize", "none")
}

// NewViper returns a viper instance with defaults and environment binding in
// place and the config file read. An explicit file must exist; otherwise
// FileName is looked up in searchPaths, or in $HOME and the working
// directory when none are given, and a missing file is not an error.
func NewViper(file string, searchPaths ...string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		if len(searchPaths) == 0 {
			if home, err := os.UserHomeDir(); err == nil {
				searchPaths = append(searchPaths, home)
			}
			searchPaths = append(searchPaths, ".")
		}
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints, the body size and the normalization
// form.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config: %s %s", verrs[0].Namespace(), describe(verrs[0]))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	size, err := c.Server.MaxBodyBytes()
	if err != nil {
		return fmt.Errorf("invalid config: server.max_body_size: %w", err)
	}
	if size <= 0 {
		return errors.New("invalid config: server.max_body_size must be positive")
	}

	if _, err := c.Transform.Normalization(); err != nil {
		return fmt.Errorf("invalid config: transform.normalize: %w", err)
	}
	return nil
}

// MaxBodyBytes parses MaxBodySize, e.g. "1MB" or "512KiB".
func (s Server) MaxBodyBytes() (int64, error) {
	return ParseSize(s.MaxBodySize)
}

// ParseSize parses a human-readable byte size. Sizes that do not fit in an
// int64 are rejected.
func ParseSize(s string) (int64, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("size %q is too large", s)
	}
	return int64(n), nil
}

// Normalization parses Normalize.
func (t Transform) Normalization() (casing.Normalization, error) {
	return casing.ParseNormalization(t.Normalize)
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}
