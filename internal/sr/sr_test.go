// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

package sr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/language"

	"github.com/AntonVasilkovsky/tracekit/env/mocks"
)

// envReader builds a Reader mock that serves the given variables and
// returns "" for everything else.
func envReader(t *testing.T, vars map[string]string) *mocks.MockReader {
	t.Helper()

	reader := mocks.NewMockReader(gomock.NewController(t))
	reader.EXPECT().
		Getenv(gomock.Any()).
		DoAndReturn(func(key string) string {
			return vars[key]
		}).
		AnyTimes()
	return reader
}

func TestText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "switch", Text(SwitchNil))
	assert.Equal(t, "source name must not be empty", Text(SourceNameEmpty))

	// Unknown keys fall back to their own name.
	assert.Equal(t, "NoSuchKey", Text(Key("NoSuchKey")))
}

func TestLocaleOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		vars map[string]string
		want language.Tag
	}{
		{
			name: "no locale variables",
			vars: nil,
			want: language.English,
		},
		{
			name: "LANG alone",
			vars: map[string]string{"LANG": "de_DE"},
			want: language.MustParse("de-DE"),
		},
		{
			name: "LANGUAGE wins over the rest",
			vars: map[string]string{
				"LANGUAGE":    "fr_FR",
				"LC_ALL":      "de_DE",
				"LC_MESSAGES": "es_ES",
				"LANG":        "it_IT",
			},
			want: language.MustParse("fr-FR"),
		},
		{
			name: "LC_ALL wins over LC_MESSAGES and LANG",
			vars: map[string]string{
				"LC_ALL":      "de_DE",
				"LC_MESSAGES": "es_ES",
				"LANG":        "it_IT",
			},
			want: language.MustParse("de-DE"),
		},
		{
			name: "codeset suffix is stripped",
			vars: map[string]string{"LANG": "de_DE.UTF-8"},
			want: language.MustParse("de-DE"),
		},
		{
			name: "modifier suffix is stripped",
			vars: map[string]string{"LANG": "de_DE@euro"},
			want: language.MustParse("de-DE"),
		},
		{
			name: "codeset and modifier are stripped together",
			vars: map[string]string{"LANG": "de_DE.UTF-8@euro"},
			want: language.MustParse("de-DE"),
		},
		{
			name: "C locale is skipped",
			vars: map[string]string{"LC_ALL": "C", "LANG": "de_DE"},
			want: language.MustParse("de-DE"),
		},
		{
			name: "POSIX locale is skipped",
			vars: map[string]string{"LC_ALL": "POSIX"},
			want: language.English,
		},
		{
			name: "unparseable value falls through to the next variable",
			vars: map[string]string{"LANGUAGE": "not a locale!", "LANG": "de_DE"},
			want: language.MustParse("de-DE"),
		},
		{
			name: "all values unusable",
			vars: map[string]string{"LC_ALL": "C", "LANG": "POSIX"},
			want: language.English,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := localeOf(envReader(t, tt.vars))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableFor(t *testing.T) {
	t.Parallel()

	// Only the English catalog ships, so every request resolves to it.
	tests := []struct {
		name      string
		requested language.Tag
	}{
		{name: "english", requested: language.English},
		{name: "regional english", requested: language.MustParse("en-GB")},
		{name: "unshipped language", requested: language.German},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			table := tableFor(tt.requested)
			require.NotNil(t, table)
			assert.Equal(t, english[SwitchNil], table[SwitchNil])
		})
	}
}

func TestEnglishCatalogIsComplete(t *testing.T) {
	t.Parallel()

	keys := []Key{
		SourceNameEmpty,
		PathEmpty,
		ChannelEmpty,
		ExpressionEmpty,
		SwitchNil,
		ListenerNil,
		WriterNil,
		ClientNil,
		LoggerNil,
		MeterNil,
	}

	for _, k := range keys {
		assert.NotEmpty(t, english[k], "key %q has no English message", k)
	}
}
