package ops

import (
	"database/sql"
	"unicode/utf8"

	"github.com/clipstash/clipstash/internal/clip"
	"github.com/clipstash/clipstash/internal/config"
	"github.com/clipstash/clipstash/internal/db"
	"github.com/clipstash/clipstash/internal/errors"
)

// AddInput contains parameters for the Add operation.
type AddInput struct {
	Content string // required
}

// AddOutput contains the result of the Add operation.
type AddOutput struct {
	ID      int64 `json:"id"`
	Created bool  `json:"created"` // false: existing record was touched
	Evicted int   `json:"evicted"` // rows removed by the retention pass
}

// Add stores captured content. Content already in the history is touched
// (its recency refreshed) rather than duplicated. After a successful write
// the retention policy runs with the configured capacity, so the capture
// path keeps the store bounded.
func Add(database *sql.DB, cfg *config.Config, input AddInput) (*AddOutput, error) {
	if input.Content == "" {
		return nil, errors.NewInvalidRequest("content is required")
	}

	if chars := utf8.RuneCountInString(input.Content); chars > cfg.MaxClipChars {
		return nil, errors.NewClipTooLarge(cfg.MaxClipChars, chars)
	}

	result, err := db.InsertOrTouch(database, input.Content, clip.Fingerprint(input.Content), nowMillis())
	if err != nil {
		return nil, err
	}

	evicted, err := db.EvictOverflow(database, cfg.MaxHistory)
	if err != nil {
		return nil, err
	}

	return &AddOutput{
		ID:      result.ID,
		Created: result.Created,
		Evicted: evicted,
	}, nil
}
