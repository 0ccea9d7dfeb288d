// Package config loads papercut settings: built-in defaults, then an optional
// YAML file, then environment variables.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"papercut/internal/analysis"
	"papercut/internal/machine"
)

// Config is the full application configuration.
type Config struct {
	LogLevel string           `yaml:"log_level" mapstructure:"log_level"`
	Addr     string           `yaml:"addr" mapstructure:"addr"`
	Analysis analysis.Options `yaml:"analysis" mapstructure:"analysis"`
	Machine  machine.Config   `yaml:"machine" mapstructure:"machine"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Addr:     ":5000",
		Analysis: analysis.DefaultOptions(),
		Machine:  machine.DefaultConfig(),
	}
}

// env maps environment variables onto configuration keys. The legacy
// ARDUINO_* names are read only when the PLOTTER_* name is unset.
var env = []struct {
	name   string
	legacy string
	path   []string
}{
	{"PLOTTER_SERIAL_PORT", "ARDUINO_SERIAL_PORT", []string{"machine", "port"}},
	{"PLOTTER_BAUD_RATE", "ARDUINO_BAUD_RATE", []string{"machine", "baud_rate"}},
	{"PLOTTER_TIMEOUT", "ARDUINO_TIMEOUT", []string{"machine", "timeout"}},
	{"PLOTTER_MAX_RETRIES", "ARDUINO_MAX_RETRIES", []string{"machine", "max_retries"}},
	{"PLOTTER_RETRY_DELAY", "ARDUINO_RETRY_DELAY", []string{"machine", "retry_delay"}},
	{"PAPERCUT_LOG_LEVEL", "", []string{"log_level"}},
	{"PAPERCUT_ADDR", "", []string{"addr"}},
}

func lookup(names ...string) (string, bool) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if v, ok := os.LookupEnv(name); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// Load reads path (skipped when empty) over the defaults and applies the
// environment on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		if err := decode(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	overrides := map[string]any{}
	for _, e := range env {
		v, ok := lookup(e.name, e.legacy)
		if !ok {
			continue
		}
		set(overrides, e.path, v)
	}
	if err := decode(overrides, &cfg); err != nil {
		return cfg, fmt.Errorf("decode environment: %w", err)
	}
	return cfg, nil
}

func set(m map[string]any, path []string, v string) {
	for _, k := range path[:len(path)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[k] = next
		}
		m = next
	}
	m[path[len(path)-1]] = v
}

func decode(in map[string]any, out *Config) error {
	if len(in) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       durationHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

var durationType = reflect.TypeOf(time.Duration(0))

// durationHook reads durations as Go duration strings ("250ms") or as plain
// numbers of seconds ("2", 1.5).
func durationHook(from, to reflect.Type, data any) (any, error) {
	if to != durationType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		if secs, err := strconv.ParseFloat(v, 64); err == nil {
			return seconds(secs), nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q", v)
		}
		return d, nil
	case int:
		return seconds(float64(v)), nil
	case float64:
		return seconds(v), nil
	}
	return data, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
