package ops

import (
	"database/sql"

	"github.com/clipstash/clipstash/internal/db"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Limit         int  // default: 20, max: 100
	Offset        int  // default: 0
	FavoritesOnly bool // restrict to pinned records
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []Item     `json:"items"`
	Pagination Pagination `json:"pagination"`
	Sort       string     `json:"sort"`
}

// List retrieves record previews with pagination, newest first.
func List(database *sql.DB, input ListInput) (*ListOutput, error) {
	limit := clampLimit(input.Limit, DefaultListLimit, MaxListLimit)
	offset := max(input.Offset, 0)

	records, total, err := db.ListPage(database, limit, offset, input.FavoritesOnly)
	if err != nil {
		return nil, err
	}

	items := make([]Item, len(records))
	for i, r := range records {
		items[i] = toItem(r)
	}

	return &ListOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
		Sort: "created_at_desc",
	}, nil
}
