package application

import (
	"context"

	"linear-mcp-server/internal/domain"
)

// handleListProjects handles the list_projects tool call.
func (h *LinearHandler) handleListProjects(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	filter := domain.ProjectFilter{}

	var err error
	if filter.TeamID, err = getStringParam(args, "team_id", false); err != nil {
		return nil, err
	}

	first, err := h.firstParam(args)
	if err != nil {
		return nil, err
	}

	projects, err := h.client.Projects(ctx, filter, first)
	if err != nil {
		return nil, err
	}

	summaries, err := h.summarizeProjects(ctx, projects)
	if err != nil {
		return nil, err
	}
	return &domain.Page{Items: summaries, Requested: first, Count: len(summaries)}, nil
}

// handleGetProject handles the get_project tool call.
func (h *LinearHandler) handleGetProject(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	id, err := getStringParam(args, "id", true)
	if err != nil {
		return nil, err
	}

	project, err := h.client.Project(ctx, id)
	if err != nil {
		return nil, err
	}

	relations, err := h.resolveProjectDetail(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return domain.FlattenProjectDetail(project, relations), nil
}

// handleCreateProject handles the create_project tool call.
func (h *LinearHandler) handleCreateProject(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	name, err := getStringParam(args, "name", true)
	if err != nil {
		return nil, err
	}
	teamIDs, err := getStringSliceParam(args, "team_ids", true)
	if err != nil {
		return nil, err
	}

	input := &domain.ProjectCreateInput{
		Name:    name,
		TeamIDs: teamIDs,
	}

	if input.Description, err = stringPtr(args, "description"); err != nil {
		return nil, err
	}
	if input.Content, err = stringPtr(args, "content"); err != nil {
		return nil, err
	}
	if input.State, err = stringPtr(args, "state"); err != nil {
		return nil, err
	}
	if input.StartDate, err = stringPtr(args, "start_date"); err != nil {
		return nil, err
	}
	if input.TargetDate, err = stringPtr(args, "target_date"); err != nil {
		return nil, err
	}

	// An omitted lead resolves to the caller's own identity; an
	// explicit null leaves the project without a lead.
	leadArg, err := getOptionalString(args, "lead_id")
	if err != nil {
		return nil, err
	}
	if input.LeadID, err = h.resolveIdentityDefault(ctx, leadArg); err != nil {
		return nil, err
	}

	project, err := h.client.CreateProject(ctx, input)
	if err != nil {
		return nil, err
	}

	lead, teams, err := h.resolveProjectSummary(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return domain.FlattenProjectSummary(project, lead, teams), nil
}

// handleUpdateProject handles the update_project tool call.
func (h *LinearHandler) handleUpdateProject(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	id, err := getStringParam(args, "id", true)
	if err != nil {
		return nil, err
	}

	input := &domain.ProjectUpdateInput{}
	if input.Name, err = stringPtr(args, "name"); err != nil {
		return nil, err
	}
	if input.Description, err = stringPtr(args, "description"); err != nil {
		return nil, err
	}
	if input.Content, err = stringPtr(args, "content"); err != nil {
		return nil, err
	}
	if input.State, err = stringPtr(args, "state"); err != nil {
		return nil, err
	}
	if input.StartDate, err = stringPtr(args, "start_date"); err != nil {
		return nil, err
	}
	if input.TargetDate, err = stringPtr(args, "target_date"); err != nil {
		return nil, err
	}

	// An omitted lead leaves the field untouched; an explicit null
	// removes the current lead.
	leadArg, err := getOptionalString(args, "lead_id")
	if err != nil {
		return nil, err
	}
	switch {
	case leadArg.Null:
		input.ClearLead = true
	case leadArg.Present:
		value := leadArg.Value
		input.LeadID = &value
	}

	project, err := h.client.UpdateProject(ctx, id, input)
	if err != nil {
		return nil, err
	}

	lead, teams, err := h.resolveProjectSummary(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return domain.FlattenProjectSummary(project, lead, teams), nil
}

// handleListProjectStates handles the list_project_states tool call.
// The lifecycle state set is fixed by the service; no API round trip
// can enumerate it.
func (h *LinearHandler) handleListProjectStates(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return map[string]interface{}{"states": domain.ProjectStateNames}, nil
}

// handleListProjectStatuses handles the list_project_statuses tool
// call, returning the organization's status catalogue.
func (h *LinearHandler) handleListProjectStatuses(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	statuses, err := h.client.ProjectStatuses(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"statuses": statuses}, nil
}
