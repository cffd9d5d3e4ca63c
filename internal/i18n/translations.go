// Package i18n holds the built-in UI strings used when the loaded language
// file lacks a label.
package i18n

import (
	"embed"
	"log"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

// Translator is a thin wrapper around go-i18n's Bundle/Localizer.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
}

// NewTranslator builds a Translator using the given default locale
// (e.g. "ru"). Unparseable locales fall back to Russian.
func NewTranslator(defaultLocale string) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.Russian
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.ru.toml", "active.en.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			log.Printf("i18n: failed to load %s: %v", file, err)
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
	}
}

var (
	defaultOnce sync.Once
	defaultT    *Translator
)

// Default returns a shared Russian-default translator.
func Default() *Translator {
	defaultOnce.Do(func() { defaultT = NewTranslator("ru") })
	return defaultT
}

// Key builds the message id for a region/label pair of a language file.
func Key(region, label string) string {
	return region + "_" + label
}

// T renders the message identified by key for the given locale.
// If the key/locale is not found, it falls back to the default locale,
// then finally to the key itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}
	msg, ok := t.lookup(locale, key, data)
	if !ok {
		log.Printf("i18n: no message for key=%s locale=%s", key, locale)
		return key
	}
	return msg
}

// Lookup is T without the key fallback or logging.
func (t *Translator) Lookup(locale, key string) (string, bool) {
	return t.lookup(locale, key, nil)
}

func (t *Translator) lookup(locale, key string, data map[string]any) (string, bool) {
	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, t.defaultLanguage.String())

	localizer := i18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		return "", false
	}
	return msg, true
}
