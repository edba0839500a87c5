package gen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToPascalCase splits s on underscores and upper-cases the first character
// of every fragment. The rest of each fragment is left untouched and empty
// fragments are dropped:
//
//	user_id   => UserId
//	UserId    => UserId
//	a__b      => AB
//	_private_ => Private
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}
	var (
		b strings.Builder
		// Full Unicode mapping, so a leading 'ß' becomes "SS".
		// A Caser is stateful and must not be shared.
		upper = cases.Upper(language.Und)
	)
	b.Grow(len(s))
	for _, frag := range strings.Split(s, "_") {
		if frag == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(frag)
		b.WriteString(upper.String(string(r)))
		b.WriteString(frag[size:])
	}
	return b.String()
}

// ToCamelCase returns the setter parameter name for a column. It applies
// the same transform as ToPascalCase; generated code depends on the
// parameter names staying that way.
func ToCamelCase(s string) string {
	return ToPascalCase(s)
}

// Exported returns name with its first letter upper-cased, as required for
// exported Go identifiers: getId => GetId.
func Exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// Snake converts a Go identifier to snake_case:
//
//	ModelUser     => model_user
//	ModelHTTPLog  => model_http_log
func Snake(s string) string {
	var (
		b     strings.Builder
		runes = []rune(s)
	)
	b.Grow(len(s) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && runes[i-1] != '_' &&
				(unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
					(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
