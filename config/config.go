// Package config loads service configuration from YAML files with
// environment variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const defaultPath = "."

// ErrNotFound reports that no config document exists in any search path.
var ErrNotFound = errors.New("config file not found")

// Log controls logger construction.
type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Detection holds image analysis tuning.
type Detection struct {
	ConfidenceThreshold   float64 `json:"confidenceThreshold" yaml:"confidenceThreshold" validate:"gte=0,lte=1"`
	MaskCleanupIterations int     `json:"maskCleanupIterations" yaml:"maskCleanupIterations" validate:"gte=0,lte=10"`
	EnableOCR             bool    `json:"enableOcr" yaml:"enableOcr"`
	GridSpacing           int     `json:"gridSpacing" yaml:"gridSpacing" validate:"gte=0"`
	MaxImageDimension     int     `json:"maxImageDimension" yaml:"maxImageDimension" validate:"gte=0"`
}

// Routing holds pathfinding tuning.
type Routing struct {
	UnitScale       float64 `json:"unitScale" yaml:"unitScale" validate:"gte=0"`
	MaxAlternatives int     `json:"maxAlternatives" yaml:"maxAlternatives" validate:"omitempty,gte=1,lte=10"`
}

// ClampAlternatives bounds a requested alternative-route count to the
// configured maximum, with a floor of one route.
func (r Routing) ClampAlternatives(k int) int {
	if k < 1 {
		return 1
	}
	if r.MaxAlternatives > 0 && k > r.MaxAlternatives {
		return r.MaxAlternatives
	}
	return k
}

// Config is the root configuration document.
type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	Detection Detection `json:"detection" yaml:"detection"`
	Routing   Routing   `json:"routing" yaml:"routing"`
}

// LoadWithEnv reads <name>.yaml from the first search path that has it, then
// applies FLOORNAV_* environment overrides.
func LoadWithEnv(name string, configPath ...string) (*Config, error) {
	cfg := new(Config)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, name+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			break
		}
	}
	if configFile == "" {
		return nil, errors.Wrapf(ErrNotFound, "%s.yaml", name)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", name)
	}

	existing := koanfInstance.Raw()
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		Prefix: "FLOORNAV_",
		TransformFunc: func(k, v string) (string, any) {
			// FLOORNAV_DETECTION_GRIDSPACING -> detection.gridSpacing,
			// reusing the casing of keys already loaded from YAML.
			k = strings.TrimPrefix(k, "FLOORNAV_")
			return canonicalizeEnvKey(k, existing), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", name)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return cfg, nil
}

// canonicalizeEnvKey converts an ENV_VAR_NAME segment path into a dotted
// koanf path, aligning each segment with the casing of keys already present
// in the loaded document so overrides land on the same key.
func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(rawKey, "_")
	parts := make([]string, 0, len(segments))
	scope := existing
	for _, seg := range segments {
		match := strings.ToLower(seg)
		for k := range scope {
			if strings.EqualFold(k, seg) {
				match = k
				break
			}
		}
		parts = append(parts, match)
		sub, _ := scope[match].(map[string]any)
		scope = sub
	}
	return strings.Join(parts, ".")
}

// New loads the default config document, applying fallbacks for unset
// numeric fields.
func New() (*Config, error) {
	cfg, err := LoadWithEnv("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

// Default returns a usable config without reading any file.
func Default() *Config {
	cfg := new(Config)
	cfg.Env.ServiceName = "floornav"
	cfg.Env.Log.Level = "info"
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Detection.ConfidenceThreshold == 0 {
		cfg.Detection.ConfidenceThreshold = 0.5
	}
	if cfg.Detection.GridSpacing == 0 {
		cfg.Detection.GridSpacing = 50
	}
	if cfg.Detection.MaxImageDimension == 0 {
		cfg.Detection.MaxImageDimension = 4096
	}
	if cfg.Routing.UnitScale == 0 {
		cfg.Routing.UnitScale = 1
	}
	if cfg.Routing.MaxAlternatives == 0 {
		cfg.Routing.MaxAlternatives = 3
	}
}
