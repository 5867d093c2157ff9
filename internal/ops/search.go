package ops

import (
	"database/sql"

	"github.com/clipstash/clipstash/internal/clip"
	"github.com/clipstash/clipstash/internal/db"
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query string // literal substring; empty matches every record
	Limit int    // default: 20, max: 100
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Query string        `json:"query"`
	Items []clip.Record `json:"items"`
	Sort  string        `json:"sort"`
}

// Search returns records whose content contains the query as a literal
// substring, newest first. Each result's ContentHighlight wraps every
// occurrence of the query in <b> markers; Content itself is untouched.
func Search(database *sql.DB, input SearchInput) (*SearchOutput, error) {
	limit := clampLimit(input.Limit, DefaultSearchLimit, MaxSearchLimit)

	records, err := db.SearchByContent(database, input.Query, limit)
	if err != nil {
		return nil, err
	}

	for i := range records {
		records[i].ContentHighlight = clip.Highlight(input.Query, records[i].Content)
	}

	return &SearchOutput{
		Query: input.Query,
		Items: records,
		Sort:  "created_at_desc",
	}, nil
}
