// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package i18n holds the Serbian and English message catalogs.
//
// Serbian is the default, as the library staff use it. Messages are looked
// up by key; a key missing from the catalog renders as the key itself.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported languages, in matcher preference order.
var (
	Serbian = language.Serbian
	English = language.English

	Supported = []language.Tag{Serbian, English}

	matcher = language.NewMatcher(Supported)
)

// Match returns the supported language closest to s ("sr", "en-US",
// "sr-Latn-RS", ...). Anything unrecognized yields Serbian.
func Match(s string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return Serbian
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Serbian
	}
	return Supported[idx]
}

// Code returns the short code stored in settings ("sr" or "en").
func Code(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// Translator renders catalog messages in one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Translator for the language closest to lang.
func New(lang string) *Translator {
	tag := Match(lang)
	return &Translator{tag: tag, printer: message.NewPrinter(tag, message.Catalog(cat))}
}

// Tag returns the translator's language.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// T renders the message for key with args.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Has reports whether key exists in the catalog for the translator's language.
func (t *Translator) Has(key string) bool {
	return hasKey(t.tag, key)
}

// Status renders a derived status label such as Status("loan", "overdue").
// Values the catalog does not know are returned as sent by the server.
func (t *Translator) Status(kind, value string) string {
	k := StatusKey(kind, value)
	if !t.Has(k) {
		return value
	}
	return t.T(k)
}

var cat = build()

func build() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(Serbian))
	for _, e := range entries {
		setEntry(b, Serbian, e.key, e.sr)
		setEntry(b, English, e.key, e.en)
	}
	setPlurals(b)
	return b
}

func setEntry(b *catalog.Builder, tag language.Tag, key, msg string) {
	if err := b.SetString(tag, key, msg); err != nil {
		panic("i18n: bad catalog entry " + key + ": " + err.Error())
	}
	keys[tag.String()+"\x00"+key] = struct{}{}
}

var keys = map[string]struct{}{}

func hasKey(tag language.Tag, key string) bool {
	_, ok := keys[tag.String()+"\x00"+key]
	return ok
}
