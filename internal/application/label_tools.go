package application

import (
	"context"

	"linear-mcp-server/internal/domain"
)

// handleListLabels handles the list_labels tool call. Without a
// team_id it lists workspace labels; with one it narrows to the
// team's own labels.
func (h *LinearHandler) handleListLabels(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	teamID, err := getStringParam(args, "team_id", false)
	if err != nil {
		return nil, err
	}

	var labels []domain.Label
	if teamID != "" {
		labels, err = h.client.TeamLabels(ctx, teamID)
	} else {
		labels, err = h.client.Labels(ctx)
	}
	if err != nil {
		return nil, err
	}

	infos := make([]*domain.LabelInfo, 0, len(labels))
	for i := range labels {
		infos = append(infos, domain.FlattenLabel(&labels[i]))
	}
	return map[string]interface{}{"labels": infos}, nil
}

// handleCreateLabel handles the create_label tool call.
func (h *LinearHandler) handleCreateLabel(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	teamID, err := getStringParam(args, "team_id", true)
	if err != nil {
		return nil, err
	}
	name, err := getStringParam(args, "name", true)
	if err != nil {
		return nil, err
	}

	input := &domain.LabelCreateInput{
		TeamID: teamID,
		Name:   name,
	}
	if input.Color, err = stringPtr(args, "color"); err != nil {
		return nil, err
	}
	if input.Description, err = stringPtr(args, "description"); err != nil {
		return nil, err
	}

	label, err := h.client.CreateLabel(ctx, input)
	if err != nil {
		return nil, err
	}
	return domain.FlattenLabel(label), nil
}

// handleUpdateLabel handles the update_label tool call.
func (h *LinearHandler) handleUpdateLabel(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	id, err := getStringParam(args, "id", true)
	if err != nil {
		return nil, err
	}

	input := &domain.LabelUpdateInput{}
	if input.Name, err = stringPtr(args, "name"); err != nil {
		return nil, err
	}
	if input.Color, err = stringPtr(args, "color"); err != nil {
		return nil, err
	}
	if input.Description, err = stringPtr(args, "description"); err != nil {
		return nil, err
	}

	label, err := h.client.UpdateLabel(ctx, id, input)
	if err != nil {
		return nil, err
	}
	return domain.FlattenLabel(label), nil
}
