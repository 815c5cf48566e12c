package slug

import (
	"regexp"
	"strings"
)

var separators = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Make lowercases input and joins its letter and digit runs with dashes.
// Non-Latin letters are kept so task names like 「寫報告」 stay readable.
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = separators.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}
