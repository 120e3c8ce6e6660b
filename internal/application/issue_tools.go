package application

import (
	"context"

	"linear-mcp-server/internal/domain"
)

// handleCreateIssue handles the create_issue tool call.
func (h *LinearHandler) handleCreateIssue(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	teamID, err := getStringParam(args, "team_id", true)
	if err != nil {
		return nil, err
	}
	title, err := getStringParam(args, "title", true)
	if err != nil {
		return nil, err
	}

	input := &domain.IssueCreateInput{
		TeamID: teamID,
		Title:  title,
	}

	if input.Description, err = stringPtr(args, "description"); err != nil {
		return nil, err
	}
	// Priority is forwarded as-is; the service validates the 0-4 range.
	if priority, set, err := getIntParam(args, "priority", false); err != nil {
		return nil, err
	} else if set {
		input.Priority = &priority
	}
	if input.ParentID, err = stringPtr(args, "parent_id"); err != nil {
		return nil, err
	}
	if input.LabelIDs, err = getStringSliceParam(args, "labels", false); err != nil {
		return nil, err
	}
	if input.DueDate, err = stringPtr(args, "due_date"); err != nil {
		return nil, err
	}
	if estimate, set, err := getFloatParam(args, "estimate"); err != nil {
		return nil, err
	} else if set {
		input.Estimate = &estimate
	}

	// Status arrives as a state name; resolving it to an id requires
	// the team's workflow states first.
	if status, err := getStringParam(args, "status", false); err != nil {
		return nil, err
	} else if status != "" {
		stateID, err := h.resolveStateID(ctx, teamID, status)
		if err != nil {
			return nil, err
		}
		input.StateID = &stateID
	}

	// Omitted assignee resolves to the caller's own identity; an
	// explicit null leaves the issue unassigned.
	assigneeArg, err := getOptionalString(args, "assignee_id")
	if err != nil {
		return nil, err
	}
	if input.AssigneeID, err = h.resolveIdentityDefault(ctx, assigneeArg); err != nil {
		return nil, err
	}

	issue, err := h.client.CreateIssue(ctx, input)
	if err != nil {
		return nil, err
	}

	state, assignee, labels, err := h.resolveIssueSummary(ctx, issue.ID)
	if err != nil {
		return nil, err
	}
	return domain.FlattenIssueSummary(issue, state, assignee, labels), nil
}

// handleListIssues handles the list_issues tool call.
func (h *LinearHandler) handleListIssues(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	filter := domain.IssueFilter{}

	var err error
	if filter.TeamID, err = getStringParam(args, "team_id", false); err != nil {
		return nil, err
	}
	if filter.AssigneeID, err = getStringParam(args, "assignee_id", false); err != nil {
		return nil, err
	}

	status, err := getStringParam(args, "status", false)
	if err != nil {
		return nil, err
	}
	if status != "" {
		// State names are team-scoped, so filtering by status needs
		// the team to resolve the name against.
		if filter.TeamID == "" {
			return nil, domain.NewMissingFieldError("team_id")
		}
		if filter.StateID, err = h.resolveStateID(ctx, filter.TeamID, status); err != nil {
			return nil, err
		}
	}

	first, err := h.firstParam(args)
	if err != nil {
		return nil, err
	}

	issues, err := h.client.Issues(ctx, filter, first)
	if err != nil {
		return nil, err
	}

	summaries, err := h.summarizeIssues(ctx, issues)
	if err != nil {
		return nil, err
	}
	return &domain.Page{Items: summaries, Requested: first, Count: len(summaries)}, nil
}

// handleUpdateIssue handles the update_issue tool call.
func (h *LinearHandler) handleUpdateIssue(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	id, err := getStringParam(args, "id", true)
	if err != nil {
		return nil, err
	}

	input := &domain.IssueUpdateInput{}
	if input.Title, err = stringPtr(args, "title"); err != nil {
		return nil, err
	}
	if input.Description, err = stringPtr(args, "description"); err != nil {
		return nil, err
	}
	if priority, set, err := getIntParam(args, "priority", false); err != nil {
		return nil, err
	} else if set {
		input.Priority = &priority
	}

	if status, err := getStringParam(args, "status", false); err != nil {
		return nil, err
	} else if status != "" {
		// The new state name resolves against the issue's own team,
		// which has to be looked up first.
		team, err := h.client.IssueTeam(ctx, id)
		if err != nil {
			return nil, err
		}
		if team == nil {
			return nil, domain.NewNotFoundError("team for issue", id)
		}
		stateID, err := h.resolveStateID(ctx, team.ID, status)
		if err != nil {
			return nil, err
		}
		input.StateID = &stateID
	}

	// An omitted assignee leaves the field untouched; an explicit null
	// removes the current assignee.
	assigneeArg, err := getOptionalString(args, "assignee_id")
	if err != nil {
		return nil, err
	}
	switch {
	case assigneeArg.Null:
		input.ClearAssignee = true
	case assigneeArg.Present:
		value := assigneeArg.Value
		input.AssigneeID = &value
	}

	issue, err := h.client.UpdateIssue(ctx, id, input)
	if err != nil {
		return nil, err
	}

	state, assignee, labels, err := h.resolveIssueSummary(ctx, issue.ID)
	if err != nil {
		return nil, err
	}
	return domain.FlattenIssueSummary(issue, state, assignee, labels), nil
}

// handleSearchIssues handles the search_issues tool call.
func (h *LinearHandler) handleSearchIssues(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	query, err := getStringParam(args, "query", true)
	if err != nil {
		return nil, err
	}

	first, err := h.firstParam(args)
	if err != nil {
		return nil, err
	}

	issues, err := h.client.SearchIssues(ctx, query, first)
	if err != nil {
		return nil, err
	}

	summaries, err := h.summarizeIssues(ctx, issues)
	if err != nil {
		return nil, err
	}
	return &domain.Page{Items: summaries, Requested: first, Count: len(summaries)}, nil
}

// handleGetIssue handles the get_issue tool call.
func (h *LinearHandler) handleGetIssue(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	id, err := getStringParam(args, "id", true)
	if err != nil {
		return nil, err
	}

	issue, err := h.client.Issue(ctx, id)
	if err != nil {
		return nil, err
	}

	relations, err := h.resolveIssueDetail(ctx, issue.ID)
	if err != nil {
		return nil, err
	}
	return domain.FlattenIssueDetail(issue, relations), nil
}
