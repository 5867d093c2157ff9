package ops

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clipstash/clipstash/internal/config"
	"github.com/clipstash/clipstash/internal/db"
	"github.com/clipstash/clipstash/internal/errors"
)

// TestFullWorkflow exercises the complete history lifecycle:
// add → touch → favorite → search → list → prune → clear → latest (not found)
func TestFullWorkflow(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	require.NoError(t, err)
	defer database.Close()

	cfg := config.DefaultConfig()

	// 1. Add
	addOut, err := Add(database, cfg, AddInput{Content: "ssh deploy@prod"})
	require.NoError(t, err)
	require.True(t, addOut.Created)
	id := addOut.ID

	// 2. Add the same content again: touch, not duplicate
	touchOut, err := Add(database, cfg, AddInput{Content: "ssh deploy@prod"})
	require.NoError(t, err)
	require.False(t, touchOut.Created)
	require.Equal(t, id, touchOut.ID)

	// 3. Favorite
	favOut, err := Favorite(database, FavoriteInput{ID: id})
	require.NoError(t, err)
	require.True(t, favOut.IsFavorite)

	// 4. Fill out the history
	for i := range 5 {
		_, err := Add(database, cfg, AddInput{Content: fmt.Sprintf("filler %d", i)})
		require.NoError(t, err)
	}

	// 5. Search with highlighting
	searchOut, err := Search(database, SearchInput{Query: "deploy"})
	require.NoError(t, err)
	require.Len(t, searchOut.Items, 1)
	require.Equal(t, "ssh deploy@prod", searchOut.Items[0].Content)
	require.Equal(t, "ssh <b>deploy</b>@prod", searchOut.Items[0].ContentHighlight)
	require.True(t, searchOut.Items[0].IsFavorite)

	// 6. List shows all six, favorites filter narrows to one
	listOut, err := List(database, ListInput{Limit: 100})
	require.NoError(t, err)
	require.Equal(t, 6, listOut.Pagination.Total)

	favList, err := List(database, ListInput{Limit: 100, FavoritesOnly: true})
	require.NoError(t, err)
	require.Len(t, favList.Items, 1)
	require.Equal(t, id, favList.Items[0].ID)

	// 7. Prune inside the margin does nothing
	pruneOut, err := Prune(database, cfg, PruneInput{Capacity: 2})
	require.NoError(t, err)
	require.Zero(t, pruneOut.Deleted)

	// 8. Clear wipes everything, favorites included
	clearOut, err := Clear(database)
	require.NoError(t, err)
	require.Equal(t, 6, clearOut.Removed)

	// 9. Latest on an empty history is NOT_FOUND
	_, err = Latest(database)
	require.Error(t, err)
	var clipErr *errors.ClipError
	require.ErrorAs(t, err, &clipErr)
	require.Equal(t, errors.ErrNotFound, clipErr.Code)
}
