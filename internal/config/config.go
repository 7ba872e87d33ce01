// Package config loads settings from defaults, an optional YAML file, and
// ATOMVIEW_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config is the full application configuration.
type Config struct {
	// DataFile overrides the embedded facility dataset.
	DataFile string `koanf:"data_file"`

	// MarkerStyle selects the marker rendering style.
	MarkerStyle string `koanf:"marker_style" validate:"oneof=default pins plumes dots clean"`

	// Lighting selects the initial lighting mode.
	Lighting string `koanf:"lighting" validate:"oneof=realistic day night"`

	// Clouds enables the cloud layer at startup.
	Clouds bool `koanf:"clouds"`

	// AutoRotate spins the globe slowly while the user is idle.
	AutoRotate bool `koanf:"auto_rotate"`

	// FPS is the frame rate of the render loop.
	FPS int `koanf:"fps" validate:"min=1,max=60"`

	// Statuses restricts the initially visible facility statuses.
	// Empty means all statuses are shown.
	Statuses []string `koanf:"statuses" validate:"dive,oneof=operational under_construction planned suspended shutdown cancelled"`

	Log struct {
		// File receives all log output; empty disables logging.
		File string `koanf:"file"`
		// Level is the minimum level written.
		Level string `koanf:"level" validate:"oneof=trace debug info warn error"`
	} `koanf:"log"`

	Geolocate struct {
		// Endpoint is the IP geolocation service URL.
		Endpoint string `koanf:"endpoint" validate:"url"`
		// TimeoutSeconds bounds a lookup.
		TimeoutSeconds int `koanf:"timeout_seconds" validate:"min=1,max=60"`
	} `koanf:"geolocate"`
}

// Default returns the built-in configuration.
func Default() Config {
	cfg := Config{
		MarkerStyle: "default",
		Lighting:    "realistic",
		Clouds:      true,
		AutoRotate:  true,
		FPS:         30,
	}
	cfg.Log.File = defaultLogPath()
	cfg.Log.Level = "info"
	cfg.Geolocate.Endpoint = "http://ip-api.com/json/"
	cfg.Geolocate.TimeoutSeconds = 5
	return cfg
}

func defaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return dir + "/atomview/atomview.log"
}

// Load builds the configuration: defaults, then the YAML file at path if it
// exists, then ATOMVIEW_* environment variables. Nesting uses a double
// underscore: ATOMVIEW_LOG__LEVEL maps to log.level, ATOMVIEW_MARKER_STYLE
// to marker_style.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	err := k.Load(env.Provider("ATOMVIEW_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "ATOMVIEW_")), "__", ".")
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
