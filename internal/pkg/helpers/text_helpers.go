package helpers

import (
	"strings"
	"unicode/utf8"
)

// Initials returns the first letter of every word in name, capped at max letters when
// max > 0. An empty name yields fallback.
func Initials(name string, max int, fallback string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return fallback
	}
	var b strings.Builder
	n := 0
	for _, w := range words {
		if max > 0 && n == max {
			break
		}
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteString(strings.ToUpper(string(r)))
		n++
	}
	return b.String()
}

// SplitFullName splits a full name into the first word and the rest.
func SplitFullName(fullName string) (first, last string) {
	words := strings.Fields(fullName)
	if len(words) == 0 {
		return "", ""
	}
	return words[0], strings.Join(words[1:], " ")
}

// Truncate shortens text to max runes, appending "..." when it was cut.
func Truncate(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max]) + "..."
}

// AssetURL prefixes a backend relative path with the backend origin. Empty paths stay empty
// and absolute URLs are returned unchanged.
func AssetURL(origin, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(origin, "/") + "/" + strings.TrimPrefix(path, "/")
}
