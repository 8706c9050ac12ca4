// Package naming converts snake_case database identifiers into Go identifiers.
package naming

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Name converts a snake_case identifier to PascalCase if capitalizeFirst is
// set, and to camelCase otherwise:
//
//	Name("user_login_name", true)  // UserLoginName
//	Name("user_login_name", false) // userLoginName
//	Name("USER_ID", false)         // userId
//
// The input is lowercased first. Empty segments, produced by leading,
// trailing or doubled underscores, are skipped, so an input made of
// underscores only yields "".
func Name(raw string, capitalizeFirst bool) string {
	var b strings.Builder
	b.Grow(len(raw))
	first := true
	for _, seg := range strings.Split(strings.ToLower(raw), "_") {
		if seg == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(seg)
		if first && !capitalizeFirst {
			r = unicode.ToLower(r)
		} else {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		b.WriteString(seg[size:])
		first = false
	}
	return b.String()
}

// GoIdent escapes s into a valid Go identifier. Runes that cannot appear in
// an identifier are replaced with '_', and keywords or names starting with a
// digit are prefixed with '_'. An empty s stays empty.
func GoIdent(s string) string {
	if s == "" {
		return ""
	}
	s = strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, s)
	if r, _ := utf8.DecodeRuneInString(s); unicode.IsDigit(r) || token.Lookup(s).IsKeyword() {
		return "_" + s
	}
	return s
}
