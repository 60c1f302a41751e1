// Package naming holds the identifier inflections shared by the presenter
// packages: camel/snake conversion, pluralisation, and human readable labels.
package naming

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Camelize converts snake_case (or punctuated) identifiers into CamelCase.
// "number_to_currency" becomes "NumberToCurrency" and "precision(2)" becomes
// "Precision2".
func Camelize(s string) string {
	parts := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// Underscore converts CamelCase identifiers into snake_case. Acronym runs are
// kept together: "HTTPServer" becomes "http_server".
func Underscore(s string) string {
	runes := []rune(strings.TrimSpace(s))
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if r == '-' || r == ' ' {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Pluralize returns the English plural of word.
func Pluralize(word string) string {
	return inflection.Plural(word)
}

// Humanize turns an attribute name into a sentence-cased label, dropping a
// trailing "_id": "project_manager" becomes "Project manager".
func Humanize(name string) string {
	name = strings.TrimSuffix(Underscore(name), "_id")
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	if len(words) == 0 {
		return ""
	}
	out := strings.ToLower(strings.Join(words, " "))
	runes := []rune(out)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Titleize is Humanize with every word capitalised: "Project Manager".
func Titleize(name string) string {
	return cases.Title(language.Und).String(Humanize(name))
}
