package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/launchrank/internal/launcher"
	"github.com/dshills/launchrank/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams     = -32602 // Invalid method parameters
	ErrorCodeInternalError     = -32603 // Internal JSON-RPC error
	ErrorCodeItemNotFound      = -32001 // No catalog item with the given id
	ErrorCodeReloadInProgress  = -32002 // Another catalog reload is running
	ErrorCodeLaunchFailed      = -32003 // The item's command could not be started
	ErrorCodeIconRefIsRequired = -32004 // Icon parameter is empty
)

const maxLimit = 100

// handleSearchItems handles the search_items tool invocation
func (s *Server) handleSearchItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	query := getStringDefault(args, "query", "")
	limit := getIntDefault(args, "limit", 0)
	if _, given := args["limit"]; given && (limit < 1 || limit > maxLimit) {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": args["limit"],
		})
	}

	var candidates []types.MatchCandidate
	if limit > 0 {
		candidates = s.launcher.SearchLimit(query, limit)
	} else {
		candidates = s.launcher.Search(query)
	}

	results := make([]map[string]interface{}, 0, len(candidates))
	for i, c := range candidates {
		result := map[string]interface{}{
			"rank":           i + 1,
			"id":             c.Item.ID,
			"name":           c.Item.Name,
			"command":        c.Item.LaunchCommand(),
			"fuzzy_score":    c.FuzzyScore,
			"frecency_score": c.FrecencyScore,
			"combined_score": c.CombinedScore,
		}
		if c.Item.Description != "" {
			result["description"] = c.Item.Description
		}
		if c.Item.Icon != "" {
			result["icon"] = c.Item.Icon
			if path, ok := s.launcher.ResolveIcon(c.Item.Icon); ok {
				result["icon_path"] = path
			}
		}
		results = append(results, result)
	}

	response := map[string]interface{}{
		"query":         query,
		"results":       results,
		"total_results": len(results),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleLaunchItem handles the launch_item tool invocation
func (s *Server) handleLaunchItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "id parameter is required", map[string]interface{}{
			"param":  "id",
			"reason": "missing or empty",
		})
	}

	item, err := s.launcher.Launch(ctx, id)
	switch {
	case errors.Is(err, types.ErrItemNotFound):
		return nil, newMCPError(ErrorCodeItemNotFound, "item not found", map[string]interface{}{
			"id": id,
		})
	case errors.Is(err, launcher.ErrLaunchFailed):
		return nil, newMCPError(ErrorCodeLaunchFailed, "launch failed", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
	case err != nil && !errors.Is(err, launcher.ErrPersist):
		return nil, newMCPError(ErrorCodeInternalError, "launch failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"launched":  true,
		"id":        item.ID,
		"name":      item.Name,
		"command":   item.LaunchCommand(),
		"persisted": err == nil,
	}
	if err != nil {
		response["warning"] = err.Error()
	}
	if entry, ok := s.launcher.Entry(item.ID); ok {
		response["frequency"] = entry.Frequency
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleResolveIcon handles the resolve_icon tool invocation
func (s *Server) handleResolveIcon(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	ref, ok := args["icon"].(string)
	if !ok || ref == "" {
		return nil, newMCPError(ErrorCodeIconRefIsRequired, "icon parameter is required and cannot be empty", map[string]interface{}{
			"param":  "icon",
			"reason": "missing or empty",
		})
	}

	size := getIntDefault(args, "size", 0)
	if size < 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "size must be positive", map[string]interface{}{
			"param": "size",
			"value": size,
		})
	}

	var (
		path  string
		found bool
	)
	if theme, ok := args["theme"].(string); ok {
		path, found = s.launcher.ResolveIconWith(ref, size, theme)
	} else {
		path, found = s.launcher.ResolveIconSize(ref, size)
	}

	response := map[string]interface{}{
		"icon":  ref,
		"found": found,
	}
	if found {
		response["path"] = path
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleListHistory handles the list_history tool invocation
func (s *Server) handleListHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	limit := getIntDefault(args, "limit", 0)
	if limit < 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must not be negative", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	entries := s.launcher.History(limit)
	response := map[string]interface{}{
		"entries":       entries,
		"total_entries": len(entries),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleReloadCatalog handles the reload_catalog tool invocation
func (s *Server) handleReloadCatalog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := s.launcher.Reload(ctx)
	if errors.Is(err, launcher.ErrReloadInProgress) {
		return nil, newMCPError(ErrorCodeReloadInProgress, "catalog reload already in progress", nil)
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "catalog reload failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"reloaded": true,
		"items":    n,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := s.launcher.Status()

	response := map[string]interface{}{
		"catalog": map[string]interface{}{
			"items":       status.Items,
			"reloading":   status.Reloading,
			"last_reload": status.LastReload.Format("2006-01-02T15:04:05Z07:00"),
		},
		"history": map[string]interface{}{
			"entries":  status.HistoryEntries,
			"location": status.HistoryLocation,
		},
		"icon_cache": map[string]interface{}{
			"len":             status.IconCacheLen,
			"capacity":        status.IconCacheCapacity,
			"hits":            status.IconStats.Hits,
			"misses":          status.IconStats.Misses,
			"evictions":       status.IconStats.Evictions,
			"backend_lookups": status.IconStats.BackendLookups,
			"direct_paths":    status.IconStats.DirectPaths,
		},
		"max_results": status.MaxResults,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// arguments returns the tool call arguments; a call without arguments is an
// empty map
func arguments(request mcp.CallToolRequest) (map[string]interface{}, error) {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}, nil
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	return args, nil
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
