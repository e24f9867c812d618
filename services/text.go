// file: services/text.go
package services

import (
	"strings"
	"unicode/utf8"
)

// clip trims s and cuts it to at most limit runes.
func clip(s string, limit int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// clipRunes cuts s to at most limit runes without trimming.
func clipRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
