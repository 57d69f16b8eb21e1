package content

import (
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/mublog/internal/frontmatter"
)

// Fingerprint hashes a source document from its canonical header and its
// Markdown body. Newline style does not affect the result.
func Fingerprint(schema frontmatter.Schema, h frontmatter.Header, body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return mdfp.CalculateFingerprintFromParts(h.Canonical(schema), body)
}
