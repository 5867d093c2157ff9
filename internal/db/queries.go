package db

import (
	"database/sql"
	"strings"

	"github.com/clipstash/clipstash/internal/clip"
	"github.com/clipstash/clipstash/internal/errors"
)

// EvictMargin is the hysteresis applied by EvictOverflow: no deletion pass
// runs until the record count exceeds capacity by more than this, so the
// cost of trimming is amortized across many inserts.
const EvictMargin = 50

const recordColumns = "id, content, fingerprint, created_time, is_favorite"

// InsertOrTouchResult reports what InsertOrTouch did.
type InsertOrTouchResult struct {
	ID      int64
	Created bool // false means an existing record was touched
}

// InsertOrTouch stores content under its fingerprint. If a record with the
// same fingerprint already exists, only its created_time is refreshed (the
// record bubbles up without a new row or a new id). Otherwise a fresh row
// is inserted. The check-then-write runs in one transaction so two
// concurrent captures of the same content cannot race into duplicates.
func InsertOrTouch(database *sql.DB, content, fingerprint string, now int64) (*InsertOrTouchResult, error) {
	tx, err := database.Begin()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow("SELECT id FROM record WHERE fingerprint = ?", fingerprint).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		// Miss is the expected trigger for the insert branch, not a failure.
		res, err := tx.Exec(
			"INSERT INTO record (content, fingerprint, created_time, is_favorite) VALUES (?, ?, ?, 0)",
			content, fingerprint, now,
		)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		if err := tx.Commit(); err != nil {
			return nil, errors.NewInternal(err)
		}
		return &InsertOrTouchResult{ID: id, Created: true}, nil

	case err != nil:
		return nil, errors.NewInternal(err)

	default:
		if _, err := tx.Exec("UPDATE record SET created_time = ? WHERE id = ?", now, id); err != nil {
			return nil, errors.NewInternal(err)
		}
		if err := tx.Commit(); err != nil {
			return nil, errors.NewInternal(err)
		}
		return &InsertOrTouchResult{ID: id, Created: false}, nil
	}
}

// MarkFavorite sets is_favorite for the record with the given id.
// The transition is one-way; there is no unfavorite.
// An unknown id is reported as NOT_FOUND rather than silently ignored.
func MarkFavorite(database *sql.DB, id int64) error {
	result, err := database.Exec("UPDATE record SET is_favorite = 1 WHERE id = ?", id)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}

// ClearAll unconditionally deletes every record and returns how many were
// removed. Irreversible; there is no soft delete.
func ClearAll(database *sql.DB) (int, error) {
	result, err := database.Exec("DELETE FROM record")
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	return int(rowsAffected), nil
}

// ListAll returns every record ordered by created_time descending.
func ListAll(database *sql.DB) ([]clip.Record, error) {
	rows, err := database.Query(
		"SELECT " + recordColumns + " FROM record ORDER BY created_time DESC, id DESC",
	)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListPage returns one page of records ordered by created_time descending,
// optionally restricted to favorites, along with the total count for the
// same filter.
func ListPage(database *sql.DB, limit, offset int, favoritesOnly bool) ([]clip.Record, int, error) {
	where := ""
	if favoritesOnly {
		where = " WHERE is_favorite = 1"
	}

	var total int
	if err := database.QueryRow("SELECT count(*) FROM record" + where).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	rows, err := database.Query(
		"SELECT "+recordColumns+" FROM record"+where+" ORDER BY created_time DESC, id DESC LIMIT ? OFFSET ?",
		limit, offset,
	)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListFavorites returns favorite records ordered by created_time descending.
func ListFavorites(database *sql.DB) ([]clip.Record, error) {
	rows, err := database.Query(
		"SELECT " + recordColumns + " FROM record WHERE is_favorite = 1 ORDER BY created_time DESC, id DESC",
	)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// SearchByContent returns records whose content contains query as a literal
// substring, newest first, truncated to limit. An empty query matches every
// record. LIKE metacharacters in the query are escaped so the match is
// always literal.
func SearchByContent(database *sql.DB, query string, limit int) ([]clip.Record, error) {
	pattern := "%" + escapeLike(query) + "%"
	rows, err := database.Query(
		"SELECT "+recordColumns+" FROM record WHERE content LIKE ? ESCAPE '\\' ORDER BY created_time DESC, id DESC LIMIT ?",
		pattern, limit,
	)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// FindByID retrieves a single record.
func FindByID(database *sql.DB, id int64) (*clip.Record, error) {
	row := database.QueryRow(
		"SELECT "+recordColumns+" FROM record WHERE id = ?", id,
	)

	var r clip.Record
	var fav int
	err := row.Scan(&r.ID, &r.Content, &r.Fingerprint, &r.CreatedAt, &fav)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	r.IsFavorite = fav != 0

	return &r, nil
}

// FindByIDs retrieves the records with the given ids, newest first.
// The IN list is fully parameterized; ids never appear in SQL text.
// Missing ids are simply absent from the result.
func FindByIDs(database *sql.DB, ids []int64) ([]clip.Record, error) {
	if len(ids) == 0 {
		return []clip.Record{}, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := database.Query(
		"SELECT "+recordColumns+" FROM record WHERE id IN ("+placeholders+") ORDER BY created_time DESC, id DESC",
		args...,
	)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// CountRecords returns the total number of stored records.
func CountRecords(database *sql.DB) (int, error) {
	var count int
	if err := database.QueryRow("SELECT count(*) FROM record").Scan(&count); err != nil {
		return 0, errors.NewInternal(err)
	}
	return count, nil
}

// EvictOverflow trims the store back to capacity rows once the count
// exceeds capacity by more than EvictMargin, deleting the oldest records
// by created_time (recency). A record that was recently touched keeps its
// refreshed timestamp and therefore survives, even if its id is small.
// Count and delete run in one transaction so eviction cannot race a touch
// that should have protected a record. Returns the number of rows deleted.
func EvictOverflow(database *sql.DB, capacity int) (int, error) {
	if capacity < 0 {
		return 0, errors.NewInvalidRequest("capacity must be non-negative")
	}

	tx, err := database.Begin()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT count(*) FROM record").Scan(&count); err != nil {
		return 0, errors.NewInternal(err)
	}

	if count <= capacity+EvictMargin {
		return 0, nil
	}

	result, err := tx.Exec(
		`DELETE FROM record WHERE id NOT IN (
			SELECT id FROM record ORDER BY created_time DESC, id DESC LIMIT ?
		)`,
		capacity,
	)
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.NewInternal(err)
	}

	return int(rowsAffected), nil
}

// scanRecords drains rows into a slice of records.
func scanRecords(rows *sql.Rows) ([]clip.Record, error) {
	records := []clip.Record{}
	for rows.Next() {
		var r clip.Record
		var fav int
		if err := rows.Scan(&r.ID, &r.Content, &r.Fingerprint, &r.CreatedAt, &fav); err != nil {
			return nil, errors.NewInternal(err)
		}
		r.IsFavorite = fav != 0
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return records, nil
}

// escapeLike escapes LIKE metacharacters so the pattern matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
