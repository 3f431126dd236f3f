package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// searchItemsTool returns the tool definition for search_items
func searchItemsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_items",
		Description: "Fuzzy search installed applications, ranked by text match and launch history",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search text. Empty lists applications by launch history, then name",
					"default":     "",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100). Defaults to max_results",
					"minimum":     1,
					"maximum":     100,
				},
			},
		},
	}
}

// launchItemTool returns the tool definition for launch_item
func launchItemTool() mcp.Tool {
	return mcp.Tool{
		Name:        "launch_item",
		Description: "Start an application by id and record the launch",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Application id (desktop file name without .desktop)",
				},
			},
			Required: []string{"id"},
		},
	}
}

// resolveIconTool returns the tool definition for resolve_icon
func resolveIconTool() mcp.Tool {
	return mcp.Tool{
		Name:        "resolve_icon",
		Description: "Resolve an icon name or absolute path to an image file",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"icon": map[string]interface{}{
					"type":        "string",
					"description": "Icon theme name (e.g. 'firefox') or absolute file path",
				},
				"size": map[string]interface{}{
					"type":        "integer",
					"description": "Pixel size. Defaults to icon_size",
					"minimum":     1,
				},
				"theme": map[string]interface{}{
					"type":        "string",
					"description": "Icon theme. Defaults to icon_theme",
				},
			},
			Required: []string{"icon"},
		},
	}
}

// listHistoryTool returns the tool definition for list_history
func listHistoryTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_history",
		Description: "List launched applications with their current frecency score",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of entries; 0 returns all",
					"default":     0,
					"minimum":     0,
				},
			},
		},
	}
}

// reloadCatalogTool returns the tool definition for reload_catalog
func reloadCatalogTool() mcp.Tool {
	return mcp.Tool{
		Name:        "reload_catalog",
		Description: "Rescan application directories and clear the icon cache",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report catalog size, history size and icon cache statistics",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
