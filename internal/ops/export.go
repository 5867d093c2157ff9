package ops

import (
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/clipstash/clipstash/internal/clip"
	"github.com/clipstash/clipstash/internal/db"
	"github.com/clipstash/clipstash/internal/errors"
)

// exportLine is the JSONL record format for export/import. Ids and
// fingerprints are deliberately absent: the importing store assigns its
// own ids and recomputes fingerprints from content.
type exportLine struct {
	Content    string `json:"content"`
	CreatedAt  int64  `json:"created_at"`
	IsFavorite bool   `json:"is_favorite,omitempty"`
}

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path          string // optional, default: <BaseDir>/exports/history-<ulid>.jsonl
	BaseDir       string // store base directory, used for the default path
	FavoritesOnly bool
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path     string `json:"path"`
	Exported int    `json:"exported"`
}

// Export writes the history to a JSONL file, newest first.
func Export(database *sql.DB, input ExportInput) (*ExportOutput, error) {
	path := input.Path
	if path == "" {
		if input.BaseDir == "" {
			return nil, errors.NewInvalidRequest("path is required")
		}
		path = filepath.Join(input.BaseDir, "exports", defaultExportName())
	}

	var records []exportLine
	source, err := listForExport(database, input.FavoritesOnly)
	if err != nil {
		return nil, err
	}
	for _, r := range source {
		records = append(records, exportLine{
			Content:    r.Content,
			CreatedAt:  r.CreatedAt,
			IsFavorite: r.IsFavorite,
		})
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("create export file: %w", err))
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, line := range records {
		if err := enc.Encode(line); err != nil {
			return nil, errors.NewInternal(fmt.Errorf("write export line: %w", err))
		}
	}

	return &ExportOutput{
		Path:     path,
		Exported: len(records),
	}, nil
}

// listForExport selects the export source set.
func listForExport(database *sql.DB, favoritesOnly bool) ([]clip.Record, error) {
	if favoritesOnly {
		return db.ListFavorites(database)
	}
	return db.ListAll(database)
}

// defaultExportName builds a unique, lexically sortable export file name.
func defaultExportName() string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader)
	return "history-" + id.String() + ".jsonl"
}
