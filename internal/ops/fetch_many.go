package ops

import (
	"database/sql"
	"fmt"

	"github.com/clipstash/clipstash/internal/clip"
	"github.com/clipstash/clipstash/internal/db"
	"github.com/clipstash/clipstash/internal/errors"
)

// FetchManyInput contains parameters for the FetchMany operation.
type FetchManyInput struct {
	IDs []int64 // required, max MaxFetchManyItems
}

// FetchManyOutput contains the result of the FetchMany operation.
type FetchManyOutput struct {
	Items   []clip.Record `json:"items"`
	Missing []int64       `json:"missing,omitempty"`
}

// FetchMany retrieves a batch of records by id, newest first. Ids with no
// matching record are reported in Missing rather than failing the batch.
func FetchMany(database *sql.DB, input FetchManyInput) (*FetchManyOutput, error) {
	if len(input.IDs) == 0 {
		return nil, errors.NewInvalidRequest("ids is required")
	}
	if len(input.IDs) > MaxFetchManyItems {
		return nil, errors.NewInvalidRequest(
			fmt.Sprintf("too many ids: %d (max %d)", len(input.IDs), MaxFetchManyItems))
	}
	for _, id := range input.IDs {
		if id <= 0 {
			return nil, errors.NewInvalidRequest("ids must be positive integers")
		}
	}

	records, err := db.FindByIDs(database, input.IDs)
	if err != nil {
		return nil, err
	}

	found := make(map[int64]bool, len(records))
	for _, r := range records {
		found[r.ID] = true
	}

	var missing []int64
	for _, id := range input.IDs {
		if !found[id] {
			missing = append(missing, id)
		}
	}

	return &FetchManyOutput{
		Items:   records,
		Missing: missing,
	}, nil
}
