package ops

import (
	"database/sql"

	"github.com/clipstash/clipstash/internal/clip"
	"github.com/clipstash/clipstash/internal/db"
	"github.com/clipstash/clipstash/internal/errors"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID int64 // required
}

// FetchOutput contains the result of the Fetch operation.
type FetchOutput struct {
	Record clip.Record `json:"record"`
}

// Fetch retrieves a single record, full content included.
func Fetch(database *sql.DB, input FetchInput) (*FetchOutput, error) {
	if input.ID <= 0 {
		return nil, errors.NewInvalidRequest("id must be a positive integer")
	}

	r, err := db.FindByID(database, input.ID)
	if err != nil {
		return nil, err
	}

	return &FetchOutput{Record: *r}, nil
}
