// SPDX-FileCopyrightText: Copyright 2026 Anton Vasilkovsky
// SPDX-License-Identifier: Apache-2.0

// Package sr resolves the user-facing message strings of this module.
// Messages live in per-language catalogs keyed by stable identifiers;
// the catalog is picked once per process from the standard locale
// environment variables, falling back to English.
package sr

import (
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/AntonVasilkovsky/tracekit/env"
)

// Key identifies one message across all catalogs.
type Key string

// catalogs lists the shipped languages. The first entry is the
// fallback and must be complete.
var catalogs = []struct {
	tag   language.Tag
	table map[Key]string
}{
	{language.English, english},
}

var matcher = language.NewMatcher(catalogTags())

func catalogTags() []language.Tag {
	tags := make([]language.Tag, len(catalogs))
	for i, c := range catalogs {
		tags[i] = c.tag
	}
	return tags
}

var activeTable = sync.OnceValue(func() map[Key]string {
	return tableFor(localeOf(&env.OSReader{}))
})

// Text returns the message for k in the process locale. Unknown keys
// return their own name so a missing catalog entry stays diagnosable.
func Text(k Key) string {
	if msg, ok := activeTable()[k]; ok {
		return msg
	}
	if msg, ok := english[k]; ok {
		return msg
	}
	return string(k)
}

// localeOf derives the requested language from the locale environment,
// checking the variables in glibc priority order. Values like
// "de_DE.UTF-8@euro" are reduced to their language part before parsing.
func localeOf(r env.Reader) language.Tag {
	for _, name := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		v := r.Getenv(name)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if tag, err := language.Parse(v); err == nil {
			return tag
		}
	}
	return language.English
}

// tableFor matches the requested tag against the shipped catalogs.
func tableFor(requested language.Tag) map[Key]string {
	_, idx, _ := matcher.Match(requested)
	return catalogs[idx].table
}
