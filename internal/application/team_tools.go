package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"linear-mcp-server/internal/domain"
)

// handleListTeamsAndStates handles the list_teams_and_states tool
// call. Every team's workflow states are fetched concurrently, one
// lookup per team, and results keep the API's team order.
func (h *LinearHandler) handleListTeamsAndStates(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	teams, err := h.client.Teams(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]*domain.TeamInfo, len(teams))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(issueListConcurrency)
	for i := range teams {
		g.Go(func() error {
			team := &teams[i]
			states, err := h.client.TeamStates(gctx, team.ID)
			if err != nil {
				return err
			}
			infos[i] = domain.FlattenTeam(team, states)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return map[string]interface{}{"teams": infos}, nil
}

// handleListTeamMembers handles the list_team_members tool call.
func (h *LinearHandler) handleListTeamMembers(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	teamID, err := getStringParam(args, "team_id", true)
	if err != nil {
		return nil, err
	}

	users, err := h.client.TeamMemberships(ctx, teamID)
	if err != nil {
		return nil, err
	}

	members := make([]*domain.MemberInfo, 0, len(users))
	for i := range users {
		members = append(members, domain.FlattenMember(&users[i]))
	}
	return map[string]interface{}{"members": members}, nil
}
