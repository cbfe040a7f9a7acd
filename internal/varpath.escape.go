package internal

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes the five characters significant in HTML text and
// attribute values.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

var slashEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"'", `\'`,
)

// AddSlashes backslash-escapes quotes and backslashes.
func AddSlashes(s string) string {
	return slashEscaper.Replace(s)
}
