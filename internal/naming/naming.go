package naming

import (
	"strings"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ClassName converts a snake_case name into a python class name:
// "order_item" -> "OrderItem".
func ClassName(name string) string {
	caser := cases.Title(language.English)
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(caser.String(p))
	}
	return sb.String()
}

// Plural returns the lowercase plural of name, used for table names and
// collection routes. An explicit plural wins.
func Plural(name, explicit string) string {
	if explicit != "" {
		return strings.ToLower(explicit)
	}
	return inflection.Plural(strings.ToLower(name))
}

// Humanize turns a snake_case identifier into a sentence-case label:
// "user_name" -> "User name".
func Humanize(name string) string {
	s := strings.TrimSpace(strings.ReplaceAll(name, "_", " "))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
