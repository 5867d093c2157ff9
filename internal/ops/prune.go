package ops

import (
	"database/sql"
	"fmt"

	"github.com/clipstash/clipstash/internal/config"
	"github.com/clipstash/clipstash/internal/db"
	"github.com/clipstash/clipstash/internal/errors"
)

// PruneInput contains parameters for the Prune operation.
type PruneInput struct {
	Capacity int // 0 means use the configured max_history
}

// PruneOutput contains the result of the Prune operation.
type PruneOutput struct {
	Deleted  int    `json:"deleted"`
	Capacity int    `json:"capacity"`
	Message  string `json:"message"`
}

// Prune runs the retention policy: once the record count exceeds capacity
// by more than the eviction margin, the oldest records by recency are
// deleted until exactly capacity remain. Within the margin it does nothing.
func Prune(database *sql.DB, cfg *config.Config, input PruneInput) (*PruneOutput, error) {
	capacity := input.Capacity
	if capacity == 0 {
		capacity = cfg.MaxHistory
	}
	if capacity < 0 {
		return nil, errors.NewInvalidRequest("capacity must be non-negative")
	}

	deleted, err := db.EvictOverflow(database, capacity)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("History within capacity %d (margin %d), nothing pruned", capacity, db.EvictMargin)
	if deleted > 0 {
		message = fmt.Sprintf("Pruned %d records, history settled at %d", deleted, capacity)
	}

	return &PruneOutput{
		Deleted:  deleted,
		Capacity: capacity,
		Message:  message,
	}, nil
}
