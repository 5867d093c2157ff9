package ops

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/clipstash/clipstash/internal/clip"
	"github.com/clipstash/clipstash/internal/config"
	"github.com/clipstash/clipstash/internal/db"
	"github.com/clipstash/clipstash/internal/errors"
)

// importMaxLineBytes bounds a single JSONL line; clips larger than this
// would be rejected by the size limit anyway.
const importMaxLineBytes = 4 * 1024 * 1024

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string // required
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int      `json:"imported"` // new records created
	Touched  int      `json:"touched"`  // lines that matched existing content
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// Import replays a JSONL export through the store. Dedup applies exactly as
// in live capture: content already present is touched, not duplicated.
// Favorite flags are restored; the exported timestamp is kept so ordering
// survives a round trip. Bad lines are skipped and reported, not fatal.
func Import(database *sql.DB, cfg *config.Config, input ImportInput) (*ImportOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}

	f, err := os.Open(input.Path)
	if err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("cannot open import file: %v", err))
	}
	defer f.Close()

	out := &ImportOutput{}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), importMaxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var line exportLine
		if err := json.Unmarshal([]byte(raw), &line); err != nil {
			out.Failed++
			out.Errors = append(out.Errors, fmt.Sprintf("line %d: invalid JSON: %v", lineNo, err))
			continue
		}
		if line.Content == "" {
			out.Failed++
			out.Errors = append(out.Errors, fmt.Sprintf("line %d: content is empty", lineNo))
			continue
		}

		created, err := importLine(database, line)
		if err != nil {
			out.Failed++
			out.Errors = append(out.Errors, fmt.Sprintf("line %d: %v", lineNo, err))
			continue
		}
		if created {
			out.Imported++
		} else {
			out.Touched++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("read import file: %w", err))
	}

	// One retention pass at the end rather than per line
	if _, err := db.EvictOverflow(database, cfg.MaxHistory); err != nil {
		return nil, err
	}

	return out, nil
}

// importLine stores one exported record, preserving its timestamp and
// favorite flag.
func importLine(database *sql.DB, line exportLine) (bool, error) {
	when := line.CreatedAt
	if when == 0 {
		when = nowMillis()
	}

	result, err := db.InsertOrTouch(database, line.Content, clip.Fingerprint(line.Content), when)
	if err != nil {
		return false, err
	}

	if line.IsFavorite {
		if err := db.MarkFavorite(database, result.ID); err != nil {
			return false, err
		}
	}

	return result.Created, nil
}
