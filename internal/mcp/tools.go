package mcp

// ToolDefinition describes a callable tool.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

var statusEnum = []string{"active", "on_hold", "completed"}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "list_projects",
			Description: "List projects in storage order, optionally filtered by status and a name/client search",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"status": map[string]any{
						"type":        "string",
						"enum":        append([]string{"all"}, statusEnum...),
						"description": "Status filter (default all)",
					},
					"query": stringProp("Case-insensitive substring of the project or client name"),
				},
			},
		},
		{
			Name:        "get_project",
			Description: "Get a single project by ID",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": stringProp("Project ID"),
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "refresh_projects",
			Description: "Reload the project list from storage, keeping the current list until the reload resolves",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "update_project_status",
			Description: "Set the status of a project. The change is applied optimistically and rolled back if storage rejects it",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": stringProp("Project ID"),
					"status": map[string]any{
						"type":        "string",
						"enum":        statusEnum,
						"description": "Target status",
					},
				},
				"required": []string{"id", "status"},
			},
		},
		{
			Name:        "update_project",
			Description: "Edit project fields. Omitted fields keep their value; an empty end_date or description clears it. Dates are YYYY-MM-DD",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":          stringProp("Project ID"),
					"name":        stringProp("Project name (required, non-empty)"),
					"client_name": stringProp("Client name (required, non-empty)"),
					"start_date":  stringProp("Start date, YYYY-MM-DD"),
					"end_date":    stringProp("End date, YYYY-MM-DD, not before start_date; empty clears"),
					"description": stringProp("Free text; empty clears"),
				},
				"required": []string{"id"},
			},
		},
	}
}
