package application

import (
	"linear-mcp-server/internal/domain"
)

// Tool name constants for all Linear operations.
const (
	ToolCreateIssue         = "create_issue"
	ToolListIssues          = "list_issues"
	ToolUpdateIssue         = "update_issue"
	ToolListTeamsAndStates  = "list_teams_and_states"
	ToolListProjects        = "list_projects"
	ToolSearchIssues        = "search_issues"
	ToolGetIssue            = "get_issue"
	ToolListLabels          = "list_labels"
	ToolCreateLabel         = "create_label"
	ToolUpdateLabel         = "update_label"
	ToolListTeamMembers     = "list_team_members"
	ToolListProjectStates   = "list_project_states"
	ToolGetProject          = "get_project"
	ToolCreateProject       = "create_project"
	ToolUpdateProject       = "update_project"
	ToolListProjectStatuses = "list_project_statuses"
)

// stringProp builds a string property schema.
func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// intProp builds an integer property schema.
func intProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

// numberProp builds a number property schema.
func numberProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": description,
	}
}

// stringArrayProp builds an array-of-strings property schema.
func stringArrayProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": description,
	}
}

// toolCatalogue is the static, ordered tool catalogue. It is built
// once at startup and returned verbatim by tools/list. Each
// descriptor's Required list is the single source of truth for
// required-field validation during dispatch.
var toolCatalogue = []domain.ToolDefinition{
	{
		Name:        ToolCreateIssue,
		Description: "Create a new Linear issue",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"team_id":     stringProp("The team to create the issue in"),
				"title":       stringProp("The issue title"),
				"description": stringProp("The issue description in markdown (optional)"),
				"priority":    intProp("Priority 0-4, where 0 is no priority and 1 is urgent (optional)"),
				"status":      stringProp("Workflow state name, e.g. \"In Progress\" (optional)"),
				"assignee_id": stringProp("User to assign; omit to assign yourself, pass null for no assignee (optional)"),
				"parent_id":   stringProp("Parent issue id to create a sub-issue (optional)"),
				"labels":      stringArrayProp("Label ids to attach (optional)"),
				"due_date":    stringProp("Due date in YYYY-MM-DD format (optional)"),
				"estimate":    numberProp("Point estimate (optional)"),
			},
			Required: []string{"team_id", "title"},
		},
	},
	{
		Name:        ToolListIssues,
		Description: "List Linear issues, optionally filtered by team, assignee or status",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"team_id":     stringProp("Only issues belonging to this team (optional)"),
				"assignee_id": stringProp("Only issues assigned to this user (optional)"),
				"status":      stringProp("Only issues in this workflow state, by name; requires team_id (optional)"),
				"first":       intProp("Number of issues to return, defaults to 50 (optional)"),
			},
		},
	},
	{
		Name:        ToolUpdateIssue,
		Description: "Update an existing Linear issue",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id":          stringProp("The issue id"),
				"title":       stringProp("New title (optional)"),
				"description": stringProp("New markdown description (optional)"),
				"priority":    intProp("New priority 0-4 (optional)"),
				"status":      stringProp("New workflow state name (optional)"),
				"assignee_id": stringProp("New assignee; pass null to remove the current assignee (optional)"),
			},
			Required: []string{"id"},
		},
	},
	{
		Name:        ToolListTeamsAndStates,
		Description: "List all teams with their workflow states in workflow order",
		InputSchema: domain.JSONSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	},
	{
		Name:        ToolListProjects,
		Description: "List Linear projects, optionally filtered by team",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"team_id": stringProp("Only projects accessible to this team (optional)"),
				"first":   intProp("Number of projects to return, defaults to 50 (optional)"),
			},
		},
	},
	{
		Name:        ToolSearchIssues,
		Description: "Full-text search across Linear issues",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": stringProp("The search text"),
				"first": intProp("Number of issues to return, defaults to 50 (optional)"),
			},
			Required: []string{"query"},
		},
	},
	{
		Name:        ToolGetIssue,
		Description: "Retrieve a Linear issue with its full relation set: state, assignee, creator, team, project, parent, cycle, labels, comments, attachments, relations, and any image URLs embedded in the description",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": stringProp("The issue id"),
			},
			Required: []string{"id"},
		},
	},
	{
		Name:        ToolListLabels,
		Description: "List issue labels, workspace-wide or for one team",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"team_id": stringProp("Only labels owned by this team (optional)"),
			},
		},
	},
	{
		Name:        ToolCreateLabel,
		Description: "Create a new issue label in a team",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"team_id":     stringProp("The team to create the label in"),
				"name":        stringProp("The label name"),
				"color":       stringProp("Label color as a hex string, e.g. #ff0000 (optional)"),
				"description": stringProp("Label description (optional)"),
			},
			Required: []string{"team_id", "name"},
		},
	},
	{
		Name:        ToolUpdateLabel,
		Description: "Update an existing issue label",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id":          stringProp("The label id"),
				"name":        stringProp("New label name (optional)"),
				"color":       stringProp("New hex color (optional)"),
				"description": stringProp("New description (optional)"),
			},
			Required: []string{"id"},
		},
	},
	{
		Name:        ToolListTeamMembers,
		Description: "List the members of a team",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"team_id": stringProp("The team id"),
			},
			Required: []string{"team_id"},
		},
	},
	{
		Name:        ToolListProjectStates,
		Description: "List the project lifecycle states a project can be in",
		InputSchema: domain.JSONSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	},
	{
		Name:        ToolGetProject,
		Description: "Retrieve a Linear project with its lead, teams, members, external links and issues",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": stringProp("The project id"),
			},
			Required: []string{"id"},
		},
	},
	{
		Name:        ToolCreateProject,
		Description: "Create a new Linear project",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name":        stringProp("The project name"),
				"team_ids":    stringArrayProp("Teams to associate with the project"),
				"description": stringProp("Short project description (optional)"),
				"content":     stringProp("Long-form markdown content (optional)"),
				"state":       stringProp("Project lifecycle state name (optional)"),
				"lead_id":     stringProp("Project lead; omit to lead it yourself, pass null for no lead (optional)"),
				"start_date":  stringProp("Start date in YYYY-MM-DD format (optional)"),
				"target_date": stringProp("Target date in YYYY-MM-DD format (optional)"),
			},
			Required: []string{"name", "team_ids"},
		},
	},
	{
		Name:        ToolUpdateProject,
		Description: "Update an existing Linear project",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id":          stringProp("The project id"),
				"name":        stringProp("New project name (optional)"),
				"description": stringProp("New short description (optional)"),
				"content":     stringProp("New long-form markdown content (optional)"),
				"state":       stringProp("New lifecycle state name (optional)"),
				"lead_id":     stringProp("New lead; pass null to remove the current lead (optional)"),
				"start_date":  stringProp("New start date in YYYY-MM-DD format (optional)"),
				"target_date": stringProp("New target date in YYYY-MM-DD format (optional)"),
			},
			Required: []string{"id"},
		},
	},
	{
		Name:        ToolListProjectStatuses,
		Description: "List the organization's project status catalogue",
		InputSchema: domain.JSONSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	},
}
