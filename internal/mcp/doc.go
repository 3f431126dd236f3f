// Package mcp implements the Model Context Protocol (MCP) server for the
// launcher.
//
// The server exposes these tools to MCP clients:
//   - search_items: fuzzy search applications, ranked with launch history
//   - launch_item: start an application and record the launch
//   - resolve_icon: map an icon name or path to an image file
//   - list_history: launched applications with their current score
//   - reload_catalog: rescan application directories
//   - get_status: catalog, history and icon cache statistics
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// Started via the serve command:
//
//	launchrank serve
//
// Logs go to stderr; stdout carries protocol frames only.
//
// # Tool: search_items
//
//	Request:
//	{
//	  "name": "search_items",
//	  "arguments": {"query": "fire", "limit": 5}
//	}
//
//	Response:
//	{
//	  "query": "fire",
//	  "total_results": 1,
//	  "results": [
//	    {
//	      "rank": 1,
//	      "id": "firefox",
//	      "name": "Firefox",
//	      "command": "firefox",
//	      "icon": "firefox",
//	      "icon_path": "/usr/share/icons/hicolor/48x48/apps/firefox.png",
//	      "fuzzy_score": 104,
//	      "frecency_score": 2.71,
//	      "combined_score": 131.1
//	    }
//	  ]
//	}
//
// # Tool: launch_item
//
//	Request:
//	{"name": "launch_item", "arguments": {"id": "firefox"}}
//
//	Response:
//	{"launched": true, "id": "firefox", "name": "Firefox", "command": "firefox", "persisted": true, "frequency": 4}
//
// A history save failure still reports launched=true with persisted=false
// and a warning.
//
// # Error Codes
//
//	-32602: Invalid parameters
//	-32603: Internal error
//	-32001: Item not found
//	-32002: Reload already in progress
//	-32003: Launch failed
//	-32004: Empty icon reference
package mcp
