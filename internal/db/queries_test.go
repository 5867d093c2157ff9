package db

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/clipstash/clipstash/internal/clip"
	"github.com/clipstash/clipstash/internal/errors"
)

// newTestDB creates an isolated database for one test.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// insert stores content with a synthetic timestamp and returns the row id.
func insert(t *testing.T, database *sql.DB, content string, now int64) int64 {
	t.Helper()
	res, err := InsertOrTouch(database, content, clip.Fingerprint(content), now)
	if err != nil {
		t.Fatalf("InsertOrTouch(%q) failed: %v", content, err)
	}
	return res.ID
}

func TestInsertOrTouch_CreatesNewRecord(t *testing.T) {
	database := newTestDB(t)

	res, err := InsertOrTouch(database, "hello", clip.Fingerprint("hello"), 1000)
	if err != nil {
		t.Fatalf("InsertOrTouch failed: %v", err)
	}

	if !res.Created {
		t.Error("Created = false, want true")
	}
	if res.ID != 1 {
		t.Errorf("ID = %d, want 1", res.ID)
	}

	r, err := FindByID(database, res.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if r.Content != "hello" {
		t.Errorf("Content = %q, want %q", r.Content, "hello")
	}
	if r.Fingerprint != clip.Fingerprint("hello") {
		t.Errorf("Fingerprint = %q", r.Fingerprint)
	}
	if r.CreatedAt != 1000 {
		t.Errorf("CreatedAt = %d, want 1000", r.CreatedAt)
	}
	if r.IsFavorite {
		t.Error("IsFavorite = true, want false for a new record")
	}
}

func TestInsertOrTouch_DedupIdempotence(t *testing.T) {
	database := newTestDB(t)

	first, err := InsertOrTouch(database, "dup", clip.Fingerprint("dup"), 1000)
	if err != nil {
		t.Fatalf("first InsertOrTouch failed: %v", err)
	}

	second, err := InsertOrTouch(database, "dup", clip.Fingerprint("dup"), 2000)
	if err != nil {
		t.Fatalf("second InsertOrTouch failed: %v", err)
	}

	if second.Created {
		t.Error("second insert Created = true, want touch")
	}
	if second.ID != first.ID {
		t.Errorf("touched ID = %d, want %d", second.ID, first.ID)
	}

	count, err := CountRecords(database)
	if err != nil {
		t.Fatalf("CountRecords failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	// created_time reflects the second sighting
	r, err := FindByID(database, first.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if r.CreatedAt != 2000 {
		t.Errorf("CreatedAt = %d, want 2000", r.CreatedAt)
	}
}

func TestInsertOrTouch_ScenarioA(t *testing.T) {
	database := newTestDB(t)

	insert(t, database, "a", 1000)
	insert(t, database, "b", 2000)
	insert(t, database, "a", 3000)

	count, err := CountRecords(database)
	if err != nil {
		t.Fatalf("CountRecords failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	records, err := ListAll(database)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}

	// "a" bubbled up above "b" and kept its original id
	if records[0].Content != "a" || records[1].Content != "b" {
		t.Errorf("order = [%q, %q], want [a, b]", records[0].Content, records[1].Content)
	}
	if records[0].ID != 1 {
		t.Errorf("touched record id = %d, want 1", records[0].ID)
	}
	if records[0].CreatedAt != 3000 {
		t.Errorf("touched record CreatedAt = %d, want 3000", records[0].CreatedAt)
	}
}

func TestMarkFavorite(t *testing.T) {
	database := newTestDB(t)
	id := insert(t, database, "pin me", 1000)

	if err := MarkFavorite(database, id); err != nil {
		t.Fatalf("MarkFavorite failed: %v", err)
	}

	r, err := FindByID(database, id)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if !r.IsFavorite {
		t.Error("IsFavorite = false after MarkFavorite")
	}

	// Repeated calls keep the flag set (one-way transition)
	if err := MarkFavorite(database, id); err != nil {
		t.Fatalf("repeated MarkFavorite failed: %v", err)
	}
	r, err = FindByID(database, id)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if !r.IsFavorite {
		t.Error("IsFavorite reverted after repeated MarkFavorite")
	}
}

func TestMarkFavorite_UnknownID(t *testing.T) {
	database := newTestDB(t)

	err := MarkFavorite(database, 9999)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("MarkFavorite(unknown) error = %v, want NOT_FOUND", err)
	}
}

func TestMarkFavorite_SurvivesTouch(t *testing.T) {
	database := newTestDB(t)
	id := insert(t, database, "keep", 1000)

	if err := MarkFavorite(database, id); err != nil {
		t.Fatalf("MarkFavorite failed: %v", err)
	}
	insert(t, database, "keep", 2000) // touch

	r, err := FindByID(database, id)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if !r.IsFavorite {
		t.Error("IsFavorite cleared by touch")
	}
}

func TestClearAll(t *testing.T) {
	database := newTestDB(t)
	insert(t, database, "one", 1000)
	insert(t, database, "two", 2000)

	removed, err := ClearAll(database)
	if err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	count, err := CountRecords(database)
	if err != nil {
		t.Fatalf("CountRecords failed: %v", err)
	}
	if count != 0 {
		t.Errorf("count after clear = %d, want 0", count)
	}
}

func TestClearAll_IDsNotReused(t *testing.T) {
	database := newTestDB(t)
	insert(t, database, "first", 1000)
	if _, err := ClearAll(database); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	id := insert(t, database, "second", 2000)
	if id == 1 {
		t.Errorf("id = %d after clear; AUTOINCREMENT must not reuse ids", id)
	}
}

func TestListAll_Ordering(t *testing.T) {
	database := newTestDB(t)
	insert(t, database, "oldest", 1000)
	insert(t, database, "newest", 3000)
	insert(t, database, "middle", 2000)

	records, err := ListAll(database)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("len = %d, want 3", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i-1].CreatedAt < records[i].CreatedAt {
			t.Errorf("records not in created_time descending order: %d before %d",
				records[i-1].CreatedAt, records[i].CreatedAt)
		}
	}
	if records[0].Content != "newest" {
		t.Errorf("first record = %q, want %q", records[0].Content, "newest")
	}
}

func TestListAll_Empty(t *testing.T) {
	database := newTestDB(t)

	records, err := ListAll(database)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len = %d, want 0", len(records))
	}
}

func TestSearchByContent(t *testing.T) {
	database := newTestDB(t)
	insert(t, database, "hello world", 1000)
	insert(t, database, "goodbye world", 2000)
	insert(t, database, "unrelated", 3000)

	records, err := SearchByContent(database, "world", 10)
	if err != nil {
		t.Fatalf("SearchByContent failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	// Newest first
	if records[0].Content != "goodbye world" || records[1].Content != "hello world" {
		t.Errorf("order = [%q, %q]", records[0].Content, records[1].Content)
	}
}

func TestSearchByContent_Limit(t *testing.T) {
	database := newTestDB(t)
	for i := range 5 {
		insert(t, database, fmt.Sprintf("entry %d", i), int64(1000+i))
	}

	records, err := SearchByContent(database, "entry", 3)
	if err != nil {
		t.Fatalf("SearchByContent failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("len = %d, want 3", len(records))
	}
}

func TestSearchByContent_EmptyQueryMatchesAll(t *testing.T) {
	database := newTestDB(t)
	insert(t, database, "alpha", 1000)
	insert(t, database, "beta", 2000)

	records, err := SearchByContent(database, "", 10)
	if err != nil {
		t.Fatalf("SearchByContent failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("len = %d, want 2", len(records))
	}
}

func TestSearchByContent_LiteralMetacharacters(t *testing.T) {
	database := newTestDB(t)
	insert(t, database, "100% done", 1000)
	insert(t, database, "100x done", 2000)
	insert(t, database, "under_score", 3000)
	insert(t, database, "underXscore", 4000)

	records, err := SearchByContent(database, "100%", 10)
	if err != nil {
		t.Fatalf("SearchByContent failed: %v", err)
	}
	if len(records) != 1 || records[0].Content != "100% done" {
		t.Errorf("%% search results = %v", records)
	}

	records, err = SearchByContent(database, "under_", 10)
	if err != nil {
		t.Fatalf("SearchByContent failed: %v", err)
	}
	if len(records) != 1 || records[0].Content != "under_score" {
		t.Errorf("_ search results = %v", records)
	}
}

func TestFindByID_UnknownID(t *testing.T) {
	database := newTestDB(t)

	_, err := FindByID(database, 123)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("FindByID(unknown) error = %v, want NOT_FOUND", err)
	}
}

func TestFindByIDs(t *testing.T) {
	database := newTestDB(t)
	idA := insert(t, database, "a", 1000)
	insert(t, database, "b", 2000)
	idC := insert(t, database, "c", 3000)

	records, err := FindByIDs(database, []int64{idA, idC, 9999})
	if err != nil {
		t.Fatalf("FindByIDs failed: %v", err)
	}

	// Missing ids are skipped; newest first
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if records[0].Content != "c" || records[1].Content != "a" {
		t.Errorf("order = [%q, %q]", records[0].Content, records[1].Content)
	}
}

func TestFindByIDs_Empty(t *testing.T) {
	database := newTestDB(t)

	records, err := FindByIDs(database, nil)
	if err != nil {
		t.Fatalf("FindByIDs failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len = %d, want 0", len(records))
	}
}

func TestEvictOverflow_ScenarioB(t *testing.T) {
	database := newTestDB(t)

	// capacity 100, margin 50: 151 rows is just past the threshold
	for i := range 151 {
		insert(t, database, fmt.Sprintf("clip %d", i), int64(1000+i))
	}

	deleted, err := EvictOverflow(database, 100)
	if err != nil {
		t.Fatalf("EvictOverflow failed: %v", err)
	}
	if deleted != 51 {
		t.Errorf("deleted = %d, want 51", deleted)
	}

	count, err := CountRecords(database)
	if err != nil {
		t.Fatalf("CountRecords failed: %v", err)
	}
	if count != 100 {
		t.Errorf("count = %d, want exactly 100", count)
	}

	// The survivors are the 100 most recent
	records, err := ListAll(database)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if records[len(records)-1].Content != "clip 51" {
		t.Errorf("oldest survivor = %q, want %q", records[len(records)-1].Content, "clip 51")
	}
}

func TestEvictOverflow_WithinMarginIsNoop(t *testing.T) {
	database := newTestDB(t)

	// 150 rows with capacity 100: overflow equals the margin, no pass runs
	for i := range 150 {
		insert(t, database, fmt.Sprintf("clip %d", i), int64(1000+i))
	}

	deleted, err := EvictOverflow(database, 100)
	if err != nil {
		t.Fatalf("EvictOverflow failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0 (hysteresis)", deleted)
	}

	count, err := CountRecords(database)
	if err != nil {
		t.Fatalf("CountRecords failed: %v", err)
	}
	if count != 150 {
		t.Errorf("count = %d, want 150", count)
	}
}

func TestEvictOverflow_UnderCapacityIsNoop(t *testing.T) {
	database := newTestDB(t)
	insert(t, database, "only", 1000)

	deleted, err := EvictOverflow(database, 100)
	if err != nil {
		t.Fatalf("EvictOverflow failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}

func TestEvictOverflow_TouchedRecordSurvives(t *testing.T) {
	// Scenario C: eviction orders by recency, so a touched record with a
	// small id outlives younger-by-id rows.
	database := newTestDB(t)

	xID := insert(t, database, "x", 1000)
	if xID != 1 {
		t.Fatalf("x id = %d, want 1", xID)
	}
	for i := range 100 {
		insert(t, database, fmt.Sprintf("filler %d", i), int64(2000+i))
	}
	// Touch "x": its created_time is now the newest, its id is still 1
	insert(t, database, "x", 5000)

	deleted, err := EvictOverflow(database, 50)
	if err != nil {
		t.Fatalf("EvictOverflow failed: %v", err)
	}
	if deleted != 51 {
		t.Errorf("deleted = %d, want 51", deleted)
	}

	r, err := FindByID(database, xID)
	if err != nil {
		t.Fatalf("touched record was evicted: %v", err)
	}
	if r.Content != "x" || r.CreatedAt != 5000 {
		t.Errorf("survivor = %+v", r)
	}

	records, err := ListAll(database)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(records) != 50 {
		t.Errorf("count = %d, want 50", len(records))
	}
	if records[0].ID != xID {
		t.Errorf("newest record id = %d, want %d", records[0].ID, xID)
	}
}

func TestEvictOverflow_NegativeCapacity(t *testing.T) {
	database := newTestDB(t)

	_, err := EvictOverflow(database, -1)
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("EvictOverflow(-1) error = %v, want INVALID_REQUEST", err)
	}
}
