package clip

import (
	"crypto/md5"
	"encoding/hex"
	"html"
	"strings"
	"unicode/utf8"
)

// Record represents one captured piece of clipboard text.
type Record struct {
	// ID is the store-assigned row id; immutable once created, never reused
	ID int64 `json:"id"`

	// Content is the captured text, immutable once created
	Content string `json:"content"`

	// Fingerprint is the md5 digest of Content, used only as a dedup key
	Fingerprint string `json:"fingerprint"`

	// CreatedAt is the unix millisecond timestamp of the most recent capture;
	// refreshed when the same content is seen again (touch)
	CreatedAt int64 `json:"created_at"`

	// IsFavorite marks the record as pinned; the transition is one-way
	IsFavorite bool `json:"is_favorite"`

	// ContentHighlight carries the annotated content in search results.
	// Never persisted.
	ContentHighlight string `json:"content_highlight,omitempty"`
}

// Fingerprint computes the dedup key for a piece of content. Equal digests
// are treated as equal content; this is not a security primitive.
func Fingerprint(content string) string {
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Highlight wraps every occurrence of query inside content with <b> markers.
// All content is HTML-escaped first, so the returned string contains no tags
// other than the markers. An empty query returns the escaped content as-is.
func Highlight(query, content string) string {
	if query == "" {
		return html.EscapeString(content)
	}

	// Escape the segments between matches separately so user content can
	// never smuggle markup past the markers.
	parts := strings.Split(content, query)
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = html.EscapeString(p)
	}

	marker := "<b>" + html.EscapeString(query) + "</b>"
	return strings.Join(escaped, marker)
}

// Preview returns a single-line display form of content, truncated to at
// most maxRunes runes. Newlines and tabs collapse to single spaces.
func Preview(content string, maxRunes int) string {
	s := strings.Join(strings.Fields(content), " ")
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}

	runes := []rune(s)
	return strings.TrimRight(string(runes[:maxRunes]), " ") + "..."
}
