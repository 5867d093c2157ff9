package ops

import (
	"database/sql"

	"github.com/clipstash/clipstash/internal/clip"
	"github.com/clipstash/clipstash/internal/db"
	"github.com/clipstash/clipstash/internal/errors"
)

// LatestOutput contains the result of the Latest operation.
type LatestOutput struct {
	Record clip.Record `json:"record"`
}

// Latest returns the most recently captured record.
func Latest(database *sql.DB) (*LatestOutput, error) {
	records, err := db.SearchByContent(database, "", 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &errors.ClipError{
			Code:    errors.ErrNotFound,
			Status:  404,
			Message: "history is empty",
		}
	}

	return &LatestOutput{Record: records[0]}, nil
}
