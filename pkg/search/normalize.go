package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeTerm trims and case-folds a user search term for LIKE and keyword matching.
// A Caser carries state, so one is built per call.
func NormalizeTerm(term string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(term))
}

const reservedQueryChars = `+-=&|!(){}[]^"~*?:\/`

// EscapeQueryString escapes query_string operators so the term is matched literally.
// '<' and '>' cannot be escaped and are dropped.
func EscapeQueryString(term string) string {
	var b strings.Builder
	b.Grow(len(term))
	for _, r := range term {
		switch {
		case r == '<' || r == '>':
			continue
		case strings.ContainsRune(reservedQueryChars, r):
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
