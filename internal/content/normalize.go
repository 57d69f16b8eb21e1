package content

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeTitle derives a filename stem from a title: trimmed, NFC
// normalized, spaces replaced with underscores and lower-cased.
func NormalizeTitle(title string) string {
	s := norm.NFC.String(strings.TrimSpace(title))
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ToLower(s)
}
