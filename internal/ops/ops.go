package ops

import (
	"time"

	"github.com/clipstash/clipstash/internal/clip"
)

// Limits applied by the operation layer.
const (
	DefaultListLimit   = 20
	MaxListLimit       = 100
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
	MaxFetchManyItems  = 50
	PreviewRunes       = 80
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// Item is the listing form of a record: a preview instead of full content.
type Item struct {
	ID         int64  `json:"id"`
	Preview    string `json:"preview"`
	Chars      int    `json:"chars"`
	CreatedAt  int64  `json:"created_at"`
	IsFavorite bool   `json:"is_favorite"`
}

// toItem converts a record to its listing form.
func toItem(r clip.Record) Item {
	return Item{
		ID:         r.ID,
		Preview:    clip.Preview(r.Content, PreviewRunes),
		Chars:      len([]rune(r.Content)),
		CreatedAt:  r.CreatedAt,
		IsFavorite: r.IsFavorite,
	}
}

// nowMillis returns the current unix timestamp in milliseconds, the
// resolution created_time is stored at.
func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// clampLimit applies default and maximum bounds to a requested limit.
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
