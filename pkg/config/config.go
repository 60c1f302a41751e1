// Package config loads presenter settings with koanf. Values come from
// built-in defaults, an optional YAML file and PRESENTER_ environment
// variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/text/language"

	"github.com/goliatone/go-presenter/pkg/decorator"
)

// EnvPrefix prefixes environment overrides: PRESENTER_NUMBER_UNIT sets
// number.unit.
const EnvPrefix = "PRESENTER_"

// Config is the root configuration.
type Config struct {
	Placeholder string          `koanf:"placeholder" validate:"required"`
	Locale      string          `koanf:"locale"      validate:"required,bcp47_language_tag"`
	Number      NumberConfig    `koanf:"number"`
	Routes      RoutesConfig    `koanf:"routes"`
	Templates   TemplatesConfig `koanf:"templates"   validate:"required"`
	Theme       ThemeConfig     `koanf:"theme"`
	Log         LogConfig       `koanf:"log"         validate:"required"`
}

// NumberConfig holds the number formatter defaults.
type NumberConfig struct {
	Precision int    `koanf:"precision" validate:"min=0,max=10"`
	Unit      string `koanf:"unit"`
}

// RoutesConfig holds the path prefix for built locations.
type RoutesConfig struct {
	Prefix string `koanf:"prefix" validate:"omitempty,startswith=/"`
}

// TemplatesConfig points at template overrides on disk. An empty dir means
// only the embedded partials are used.
type TemplatesConfig struct {
	Dir       string `koanf:"dir"`
	Extension string `koanf:"extension" validate:"required,startswith=."`
}

// ThemeConfig selects a theme and variant for template remapping.
type ThemeConfig struct {
	Name    string `koanf:"name"`
	Variant string `koanf:"variant" validate:"excluded_without=Name"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level"  validate:"required,oneof=debug info warn error"`
	Format string `koanf:"format" validate:"required,oneof=json text pretty"`
}

// Tag parses the configured locale.
func (c *Config) Tag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

func defaults() map[string]any {
	return map[string]any{
		"placeholder":         decorator.DefaultPlaceholder,
		"locale":              "en",
		"number.precision":    2,
		"number.unit":         "$",
		"routes.prefix":       "",
		"templates.dir":       "",
		"templates.extension": ".tpl",
		"theme.name":          "",
		"theme.variant":       "",
		"log.level":           "info",
		"log.format":          "text",
	}
}

// Default returns the configuration built from defaults alone.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: defaults are invalid: %v", err))
	}
	return cfg
}

// Load reads configuration. path names an optional YAML file; a missing
// file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path != "" {
		if err := loadFileIfExists(k, path); err != nil {
			return nil, fmt.Errorf("config: load %q: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return envKey(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config: invalid %s: %w", strings.Join(fields, ", "), err)
		}
		return fmt.Errorf("config: validate: %w", err)
	}
	return nil
}

// envKey maps the first underscore to a section separator so multi-word
// leaf keys survive: NUMBER_UNIT is number.unit, LOG_LEVEL is log.level,
// PLACEHOLDER is placeholder.
func envKey(s string) string {
	s = strings.ToLower(s)
	section, rest, found := strings.Cut(s, "_")
	if !found {
		return s
	}
	return section + "." + rest
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return k.Load(file.Provider(path), yaml.Parser())
}
