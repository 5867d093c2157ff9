package mcp

import "github.com/mark3labs/mcp-go/mcp"

var addToolDef = mcp.NewTool("clip_add",
	mcp.WithDescription("Store captured text in the clipboard history. Content already in the history has its recency refreshed instead of being duplicated."),
	mcp.WithString("content", mcp.Required(), mcp.Description("The text to store")),
)

var latestToolDef = mcp.NewTool("clip_latest",
	mcp.WithDescription("Get the most recently captured record."),
)

var getToolDef = mcp.NewTool("clip_get",
	mcp.WithDescription("Get a single record by id, full content included."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Record id")),
)

var getManyToolDef = mcp.NewTool("clip_get_many",
	mcp.WithDescription("Get a batch of records by id (max 50). Unknown ids are reported, not errors."),
	mcp.WithArray("ids", mcp.Required(), mcp.Description("Record ids"),
		mcp.Items(map[string]any{"type": "number"})),
)

var listToolDef = mcp.NewTool("clip_list",
	mcp.WithDescription("List history previews, newest first, with pagination."),
	mcp.WithNumber("limit", mcp.Description("Maximum items to return (default 20, max 100)")),
	mcp.WithNumber("offset", mcp.Description("Items to skip")),
	mcp.WithBoolean("favorites_only", mcp.Description("Restrict to favorited records")),
)

var searchToolDef = mcp.NewTool("clip_search",
	mcp.WithDescription("Search history for a literal substring. Results carry content_highlight with every match wrapped in <b> markers. An empty query matches everything."),
	mcp.WithString("query", mcp.Description("Literal substring to match")),
	mcp.WithNumber("limit", mcp.Description("Maximum results (default 20, max 100)")),
)

var favoriteToolDef = mcp.NewTool("clip_favorite",
	mcp.WithDescription("Mark a record as favorite. This is permanent; there is no unfavorite."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Record id")),
)

var clearToolDef = mcp.NewTool("clip_clear",
	mcp.WithDescription("Delete the entire history, favorites included. Irreversible."),
)

var pruneToolDef = mcp.NewTool("clip_prune",
	mcp.WithDescription("Run the retention policy: trim the history back to capacity once it overflows by more than the eviction margin."),
	mcp.WithNumber("capacity", mcp.Description("Rows to retain (default: configured max_history)")),
)

var exportToolDef = mcp.NewTool("clip_export",
	mcp.WithDescription("Export the history to a JSONL file."),
	mcp.WithString("path", mcp.Description("Destination file (default: exports/history-<ulid>.jsonl under the store directory)")),
	mcp.WithBoolean("favorites_only", mcp.Description("Export only favorited records")),
)

var importToolDef = mcp.NewTool("clip_import",
	mcp.WithDescription("Import a JSONL export. Dedup applies; favorite flags and timestamps are preserved."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Source file")),
)
