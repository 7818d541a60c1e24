package util

import (
	"errors"
	"html"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

const maxTitleLength = 200

var titlePolicy = bluemonday.StrictPolicy()

// SanitizeFileName reduces name to its base and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "\\", "/")
	s = filepath.Base(s)
	if s == "." || s == "/" || s == "" || strings.Contains(s, "..") {
		return "", errors.New("invalid file name")
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// CleanTitle strips markup and control characters from a user supplied title.
// The fallback is used when nothing printable remains.
func CleanTitle(title, fallback string) string {
	cleaned := html.UnescapeString(titlePolicy.Sanitize(title))
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		return fallback
	}
	if r := []rune(cleaned); len(r) > maxTitleLength {
		cleaned = string(r[:maxTitleLength])
	}
	return cleaned
}
