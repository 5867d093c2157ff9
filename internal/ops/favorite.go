package ops

import (
	"database/sql"

	"github.com/clipstash/clipstash/internal/db"
	"github.com/clipstash/clipstash/internal/errors"
)

// FavoriteInput contains parameters for the Favorite operation.
type FavoriteInput struct {
	ID int64 // required
}

// FavoriteOutput contains the result of the Favorite operation.
type FavoriteOutput struct {
	ID         int64 `json:"id"`
	IsFavorite bool  `json:"is_favorite"`
}

// Favorite pins the record with the given id. The transition is one-way:
// no unfavorite operation exists. An unknown id is a NOT_FOUND error.
func Favorite(database *sql.DB, input FavoriteInput) (*FavoriteOutput, error) {
	if input.ID <= 0 {
		return nil, errors.NewInvalidRequest("id must be a positive integer")
	}

	if err := db.MarkFavorite(database, input.ID); err != nil {
		return nil, err
	}

	return &FavoriteOutput{
		ID:         input.ID,
		IsFavorite: true,
	}, nil
}
