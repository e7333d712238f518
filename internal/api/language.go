package api

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// NormalizeLanguage maps a user-supplied target language to the English
// display name the backend expects ("English", "Spanish", ...). Accepts BCP 47
// tags ("es", "pt-BR") as well as already-spelled-out names. Unknown input
// falls back to English.
func NormalizeLanguage(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return "English"
	}
	if tag, err := language.Parse(input); err == nil {
		if name := display.English.Languages().Name(tag); name != "" {
			return name
		}
	}
	return cases.Title(language.English).String(input)
}
