package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `projectboard tracks client projects: name, client, status, start/end dates and a description.

Workflow:
1) list_projects (optionally status=active|on_hold|completed, query=text) to find IDs.
2) get_project for one record.
3) update_project_status or update_project to change it. Changes are applied optimistically;
   a failed change is rolled back and reported as a tool error.
4) refresh_projects to reload from storage.

Read projectboard://docs/guide for field rules.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "projectboard://docs/guide",
		Name:        "guide",
		Title:       "projectboard field rules",
		Description: "Statuses, required fields and date rules enforced by update_project.",
		Content: `# projectboard field rules

## Statuses

| value | label |
|---|---|
| active | Active |
| on_hold | On hold |
| completed | Completed |

Setting a project to the status it already has is rejected.

## Fields

- name, client_name, start_date are required and trimmed.
- start_date and end_date use YYYY-MM-DD.
- end_date is optional and cannot be earlier than start_date.
- description is optional free text.

## Errors

- PROJECT_NOT_FOUND: the ID is not in the current list.
- VALIDATION_FAILED: a field rule above was violated; nothing was sent to storage,
  or storage rejected an empty required field and the change was rolled back.
- MUTATION_IN_FLIGHT: another change to the same project is pending (reject policy only).
- UNAVAILABLE: the simulated network failed; the optimistic change was rolled back.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
