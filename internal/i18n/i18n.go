// Package i18n renders error codes into human-readable messages.
//
// Catalogs map error codes to text/template strings per locale. The core
// never builds user-facing strings; it hands a code plus arguments to this
// package at the HTTP boundary.
package i18n

import (
	"bytes"
	"text/template"

	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.English,             // en (base)
	language.BrazilianPortuguese, // pt-BR
	language.Spanish,             // es
}

var matcher = language.NewMatcher(supported)

var catalogs = map[language.Tag]map[string]string{
	language.English:             en,
	language.BrazilianPortuguese: ptBR,
	language.Spanish:             es,
}

// Localize renders the message for code in the best match for the
// Accept-Language header. Unknown locales fall back to English; unknown
// codes render as the code itself.
func Localize(acceptLanguage, code string, args map[string]string) string {
	tag := match(acceptLanguage)

	messages, ok := catalogs[tag]
	if !ok {
		messages = en
	}
	tmpl, ok := messages[code]
	if !ok {
		if tmpl, ok = en[code]; !ok {
			return code
		}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}
	if args == nil {
		args = map[string]string{}
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, args); err != nil {
		return tmpl
	}
	return buf.String()
}

func match(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return language.English
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}
