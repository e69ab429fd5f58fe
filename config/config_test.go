// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/AntonVasilkovsky/tracekit/config"
	"github.com/AntonVasilkovsky/tracekit/env/mocks"
)

const yamlDocument = `
trace:
  autoflush: true
  useGlobalLock: false
sharedListeners:
  - name: recorder
    type: ring
    capacity: 64
  - name: audit
    type: file
    path: /var/log/app/audit.trace
    filter: severity <= 2
sources:
  - name: app.http
    level: information
    activities: [Start, Stop]
    listeners: [recorder, audit]
switches:
  - name: app.http
    level: warning
`

const tomlDocument = `
[trace]
autoflush = true

[[sharedListeners]]
name = "recorder"
type = "ring"
capacity = 32

[[sources]]
name = "app.grpc"
level = "verbose"
listeners = ["recorder"]

[[switches]]
name = "app.grpc"
level = "error"
activities = ["Transfer"]
`

func TestLoadReaderYAML(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadReader(strings.NewReader(yamlDocument), config.FormatYAML)
	require.NoError(t, err)

	assert.True(t, cfg.Trace.AutoFlush)
	require.NotNil(t, cfg.Trace.UseGlobalLock)
	assert.False(t, *cfg.Trace.UseGlobalLock)

	require.Len(t, cfg.SharedListeners, 2)
	assert.Equal(t, "recorder", cfg.SharedListeners[0].Name)
	assert.Equal(t, "ring", cfg.SharedListeners[0].Type)
	assert.Equal(t, 64, cfg.SharedListeners[0].Capacity)
	assert.Equal(t, "audit", cfg.SharedListeners[1].Name)
	assert.Equal(t, "/var/log/app/audit.trace", cfg.SharedListeners[1].Path)
	assert.Equal(t, "severity <= 2", cfg.SharedListeners[1].Filter)

	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, "app.http", cfg.Sources[0].Name)
	assert.Equal(t, "information", cfg.Sources[0].Level)
	assert.Equal(t, []string{"Start", "Stop"}, cfg.Sources[0].Activities)
	assert.Equal(t, []string{"recorder", "audit"}, cfg.Sources[0].Listeners)

	require.Len(t, cfg.Switches, 1)
	assert.Equal(t, "app.http", cfg.Switches[0].Name)
	assert.Equal(t, "warning", cfg.Switches[0].Level)
}

func TestLoadReaderTOML(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadReader(strings.NewReader(tomlDocument), config.FormatTOML)
	require.NoError(t, err)

	assert.True(t, cfg.Trace.AutoFlush)
	assert.Nil(t, cfg.Trace.UseGlobalLock)
	require.Len(t, cfg.SharedListeners, 1)
	assert.Equal(t, 32, cfg.SharedListeners[0].Capacity)
	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, "verbose", cfg.Sources[0].Level)
	require.Len(t, cfg.Switches, 1)
	assert.Equal(t, []string{"Transfer"}, cfg.Switches[0].Activities)
}

func TestLoadReaderEmptyYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty", doc: ""},
		{name: "comments only", doc: "# nothing configured yet\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := config.LoadReader(strings.NewReader(tt.doc), config.FormatYAML)
			require.NoError(t, err)
			assert.False(t, cfg.Trace.AutoFlush)
			assert.Empty(t, cfg.SharedListeners)
			assert.Empty(t, cfg.Sources)
		})
	}
}

func TestLoadReaderUnknownFields(t *testing.T) {
	t.Parallel()

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		_, err := config.LoadReader(strings.NewReader("colour: red\n"), config.FormatYAML)
		require.Error(t, err)
		assert.ErrorContains(t, err, "decode config")
	})

	t.Run("toml", func(t *testing.T) {
		t.Parallel()
		_, err := config.LoadReader(strings.NewReader("colour = \"red\"\n"), config.FormatTOML)
		require.Error(t, err)
		assert.ErrorContains(t, err, "unknown config fields: colour")
	})
}

func TestLoadReaderSchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "listener without a name",
			doc: `
sharedListeners:
  - type: ring
`,
		},
		{
			name: "listener without a type",
			doc: `
sharedListeners:
  - name: recorder
`,
		},
		{
			name: "capacity below one",
			doc: `
sharedListeners:
  - name: recorder
    type: ring
    capacity: -1
`,
		},
		{
			name: "unknown level",
			doc: `
sources:
  - name: app
    level: loud
`,
		},
		{
			name: "unknown activity",
			doc: `
switches:
  - name: app
    activities: [Sideways]
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := config.LoadReader(strings.NewReader(tt.doc), config.FormatYAML)
			require.Error(t, err)
			assert.ErrorContains(t, err, "config schema validation failed")
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadReaderNumbersMultipleSchemaErrors(t *testing.T) {
	t.Parallel()

	doc := `
sources:
  - name: app.a
    level: loud
  - name: app.b
    level: quiet
`
	_, err := config.LoadReader(strings.NewReader(doc), config.FormatYAML)
	require.Error(t, err)
	assert.ErrorContains(t, err, "errors:")
	assert.ErrorContains(t, err, "1.")
	assert.ErrorContains(t, err, "2.")
}

func TestLoadReaderSemanticViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name: "duplicate shared listener",
			doc: `
sharedListeners:
  - name: dup
    type: ring
  - name: dup
    type: console
`,
			wantErr: `duplicate shared listener "dup"`,
		},
		{
			name: "unknown listener reference",
			doc: `
sources:
  - name: app
    listeners: [ghost]
`,
			wantErr: `source "app" references unknown listener "ghost"`,
		},
		{
			name: "invalid filter expression",
			doc: `
sharedListeners:
  - name: filtered
    type: ring
    filter: severity &&
`,
			wantErr: `listener "filtered": invalid filter`,
		},
		{
			name: "filter must be boolean",
			doc: `
sharedListeners:
  - name: filtered
    type: ring
    filter: id + 1
`,
			wantErr: "must evaluate to a boolean",
		},
		{
			name: "duplicate source entry",
			doc: `
sources:
  - name: app
  - name: app
`,
			wantErr: `duplicate source entry "app"`,
		},
		{
			name: "duplicate switch entry",
			doc: `
switches:
  - name: app
  - name: app
`,
			wantErr: `duplicate switch entry "app"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := config.LoadReader(strings.NewReader(tt.doc), config.FormatYAML)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
			assert.Nil(t, cfg)
		})
	}
}

func TestFormatForPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want config.Format
	}{
		{path: "tracing.toml", want: config.FormatTOML},
		{path: "TRACING.TOML", want: config.FormatTOML},
		{path: "/etc/tracekit/tracing.Toml", want: config.FormatTOML},
		{path: "tracing.yaml", want: config.FormatYAML},
		{path: "tracing.yml", want: config.FormatYAML},
		{path: "tracing", want: config.FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, config.FormatForPath(tt.path))
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()

	t.Run("environment override", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reader := mocks.NewMockReader(ctrl)
		reader.EXPECT().Getenv(config.EnvConfigPath).Return("/etc/tracekit/custom.toml")

		assert.Equal(t, "/etc/tracekit/custom.toml", config.DefaultPath(reader))
	})

	t.Run("xdg fallback", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reader := mocks.NewMockReader(ctrl)
		reader.EXPECT().Getenv(config.EnvConfigPath).Return("")

		path := config.DefaultPath(reader)
		assert.True(t, strings.HasSuffix(path, filepath.Join("tracekit", "tracing.yaml")), path)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("yaml file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "tracing.yaml")
		require.NoError(t, os.WriteFile(path, []byte(yamlDocument), 0o600))

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Len(t, cfg.SharedListeners, 2)
	})

	t.Run("toml file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "tracing.toml")
		require.NoError(t, os.WriteFile(path, []byte(tomlDocument), 0o600))

		cfg, err := config.Load(path)
		require.NoError(t, err)
		require.Len(t, cfg.Sources, 1)
		assert.Equal(t, "app.grpc", cfg.Sources[0].Name)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.ErrorContains(t, err, "open config")
		assert.Nil(t, cfg)
	})
}
