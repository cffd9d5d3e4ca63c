package schedule

import (
	"strings"

	"golang.org/x/text/language"
)

// BaseLanguage reduces a tag such as "ru-RU" to its base subtag ("ru").
// Unparseable input is lower-cased and returned as is.
func BaseLanguage(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(tag))
	}
	base, _ := t.Base()
	return base.String()
}

// IsRussian reports whether tag selects the Russian tables.
func IsRussian(tag string) bool {
	return BaseLanguage(tag) == "ru"
}
