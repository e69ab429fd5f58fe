// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/AntonVasilkovsky/tracekit/env"
)

// EnvConfigPath is the environment variable naming the configuration
// file, taking precedence over the XDG default location.
const EnvConfigPath = "TRACEKIT_CONFIG"

const (
	defaultDirName  = "tracekit"
	defaultFileName = "tracing.yaml"
)

// Config is the decoded configuration document.
type Config struct {
	Trace           TraceSettings    `yaml:"trace" toml:"trace" json:"trace,omitempty"`
	SharedListeners []ListenerConfig `yaml:"sharedListeners" toml:"sharedListeners" json:"sharedListeners,omitempty"`
	Sources         []SourceConfig   `yaml:"sources" toml:"sources" json:"sources,omitempty"`
	Switches        []SwitchConfig   `yaml:"switches" toml:"switches" json:"switches,omitempty"`
}

// TraceSettings carries the process-wide dispatch settings.
type TraceSettings struct {
	AutoFlush bool `yaml:"autoflush" toml:"autoflush" json:"autoflush,omitempty"`

	// UseGlobalLock selects the locking strategy. A nil value leaves
	// the process default untouched.
	UseGlobalLock *bool `yaml:"useGlobalLock" toml:"useGlobalLock" json:"useGlobalLock,omitempty"`
}

// ListenerConfig declares one shared listener instance.
type ListenerConfig struct {
	// Name identifies the instance; sources reference it and the
	// built listener carries it.
	Name string `yaml:"name" toml:"name" json:"name"`

	// Type selects the factory, one of the built-in types or a type
	// added with RegisterListenerType.
	Type string `yaml:"type" toml:"type" json:"type"`

	// Path is the output file for file-backed types.
	Path string `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty"`

	// Capacity bounds in-memory types such as ring.
	Capacity int `yaml:"capacity,omitempty" toml:"capacity,omitempty" json:"capacity,omitempty"`

	// Filter is an optional CEL expression; a non-empty filter wraps
	// the listener in a celfilter decorator.
	Filter string `yaml:"filter,omitempty" toml:"filter,omitempty" json:"filter,omitempty"`
}

// SourceConfig configures the sources with a matching name.
type SourceConfig struct {
	Name string `yaml:"name" toml:"name" json:"name"`

	// Level sets the switch level; empty leaves it untouched.
	Level string `yaml:"level,omitempty" toml:"level,omitempty" json:"level,omitempty"`

	// Activities lists event type names whose events always pass the
	// gate.
	Activities []string `yaml:"activities,omitempty" toml:"activities,omitempty" json:"activities,omitempty"`

	// Listeners names the shared listeners the source broadcasts to,
	// replacing its collection. An absent or empty list keeps the
	// current collection.
	Listeners []string `yaml:"listeners,omitempty" toml:"listeners,omitempty" json:"listeners,omitempty"`
}

// SwitchConfig overrides switch settings by switch name. It applies
// after source entries, so it also reaches switches shared between
// sources or replaced through SetSwitch.
type SwitchConfig struct {
	Name       string   `yaml:"name" toml:"name" json:"name"`
	Level      string   `yaml:"level,omitempty" toml:"level,omitempty" json:"level,omitempty"`
	Activities []string `yaml:"activities,omitempty" toml:"activities,omitempty" json:"activities,omitempty"`
}

// Format identifies a configuration encoding.
type Format int

const (
	// FormatYAML is the default encoding.
	FormatYAML Format = iota

	// FormatTOML is selected for files with a .toml extension.
	FormatTOML
)

// FormatForPath picks the encoding for a file path by extension.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// DefaultPath returns the configuration file path: the EnvConfigPath
// variable when set, otherwise tracing.yaml under the XDG config
// directory.
func DefaultPath(envReader env.Reader) string {
	if p := envReader.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, defaultDirName, defaultFileName)
}

// Load reads, decodes and validates the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadReader(f, FormatForPath(path))
}

// LoadDefault loads the file at DefaultPath.
func LoadDefault() (*Config, error) {
	return Load(DefaultPath(&env.OSReader{}))
}

// LoadReader decodes and validates a configuration document. Unknown
// fields are rejected; the decoded document is checked against the
// embedded schema and then semantically: levels and activities must
// parse, shared listener names must be unique, filter expressions must
// compile and source listener references must resolve.
func LoadReader(r io.Reader, format Format) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
		if err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("unknown config fields: %s", strings.Join(keys, ", "))
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}

	if err := validateSchema(&cfg); err != nil {
		return nil, err
	}
	if _, err := resolveSettings(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
