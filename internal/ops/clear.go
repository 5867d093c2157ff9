package ops

import (
	"database/sql"
	"fmt"

	"github.com/clipstash/clipstash/internal/db"
)

// ClearOutput contains the result of the Clear operation.
type ClearOutput struct {
	Removed int    `json:"removed"`
	Message string `json:"message"`
}

// Clear deletes every record unconditionally. Irreversible.
func Clear(database *sql.DB) (*ClearOutput, error) {
	removed, err := db.ClearAll(database)
	if err != nil {
		return nil, err
	}

	message := "History already empty"
	if removed == 1 {
		message = "Removed 1 record"
	} else if removed > 1 {
		message = fmt.Sprintf("Removed %d records", removed)
	}

	return &ClearOutput{
		Removed: removed,
		Message: message,
	}, nil
}
