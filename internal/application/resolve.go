package application

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"linear-mcp-server/internal/domain"
)

// Relation resolution plans. Each tool contract promises a fixed
// relation set; the plans below are the only places that set is
// fetched, so flattening itself never touches the network. Independent
// lookups run concurrently and are awaited jointly; a caller never
// sees a partial result.

// issueListConcurrency bounds how many issues of one page resolve
// their relations at the same time.
const issueListConcurrency = 5

// resolveIssueSummary fetches the summary relation set of one issue:
// state, assignee and labels, concurrently.
func (h *LinearHandler) resolveIssueSummary(ctx context.Context, issueID string) (*domain.WorkflowState, *domain.User, []domain.Label, error) {
	var (
		state    *domain.WorkflowState
		assignee *domain.User
		labels   []domain.Label
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		state, err = h.client.IssueState(gctx, issueID)
		return err
	})
	g.Go(func() error {
		var err error
		assignee, err = h.client.IssueAssignee(gctx, issueID)
		return err
	})
	g.Go(func() error {
		var err error
		labels, err = h.client.IssueLabels(gctx, issueID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return state, assignee, labels, nil
}

// summarizeIssues resolves and flattens a page of issues, preserving
// page order.
func (h *LinearHandler) summarizeIssues(ctx context.Context, issues []domain.Issue) ([]*domain.IssueSummary, error) {
	summaries := make([]*domain.IssueSummary, len(issues))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(issueListConcurrency)
	for i := range issues {
		g.Go(func() error {
			issue := &issues[i]
			state, assignee, labels, err := h.resolveIssueSummary(gctx, issue.ID)
			if err != nil {
				return err
			}
			summaries[i] = domain.FlattenIssueSummary(issue, state, assignee, labels)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// resolveIssueDetail fetches the full relation set get_issue promises,
// all eleven lookups concurrently.
func (h *LinearHandler) resolveIssueDetail(ctx context.Context, issueID string) (*domain.IssueRelations, error) {
	rel := &domain.IssueRelations{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rel.State, err = h.client.IssueState(gctx, issueID)
		return err
	})
	g.Go(func() error {
		var err error
		rel.Assignee, err = h.client.IssueAssignee(gctx, issueID)
		return err
	})
	g.Go(func() error {
		var err error
		rel.Creator, err = h.client.IssueCreator(gctx, issueID)
		return err
	})
	g.Go(func() error {
		var err error
		rel.Team, err = h.client.IssueTeam(gctx, issueID)
		return err
	})
	g.Go(func() error {
		var err error
		rel.Project, err = h.client.IssueProject(gctx, issueID)
		return err
	})
	g.Go(func() error {
		var err error
		rel.Parent, err = h.client.IssueParent(gctx, issueID)
		return err
	})
	g.Go(func() error {
		var err error
		rel.Cycle, err = h.client.IssueCycle(gctx, issueID)
		return err
	})
	g.Go(func() error {
		var err error
		rel.Labels, err = h.client.IssueLabels(gctx, issueID)
		return err
	})
	g.Go(func() error {
		var err error
		rel.Comments, err = h.client.IssueComments(gctx, issueID)
		return err
	})
	g.Go(func() error {
		var err error
		rel.Attachments, err = h.client.IssueAttachments(gctx, issueID)
		return err
	})
	g.Go(func() error {
		var err error
		rel.Relations, err = h.client.IssueRelations(gctx, issueID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rel, nil
}

// resolveProjectSummary fetches a project's lead and teams
// concurrently.
func (h *LinearHandler) resolveProjectSummary(ctx context.Context, projectID string) (*domain.User, []domain.Team, error) {
	var (
		lead  *domain.User
		teams []domain.Team
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lead, err = h.client.ProjectLead(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = h.client.ProjectTeams(gctx, projectID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return lead, teams, nil
}

// summarizeProjects resolves and flattens a page of projects,
// preserving page order.
func (h *LinearHandler) summarizeProjects(ctx context.Context, projects []domain.Project) ([]*domain.ProjectSummary, error) {
	summaries := make([]*domain.ProjectSummary, len(projects))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(issueListConcurrency)
	for i := range projects {
		g.Go(func() error {
			project := &projects[i]
			lead, teams, err := h.resolveProjectSummary(gctx, project.ID)
			if err != nil {
				return err
			}
			summaries[i] = domain.FlattenProjectSummary(project, lead, teams)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// resolveProjectDetail fetches the relation set get_project promises.
func (h *LinearHandler) resolveProjectDetail(ctx context.Context, projectID string) (*domain.ProjectRelations, error) {
	rel := &domain.ProjectRelations{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rel.Lead, err = h.client.ProjectLead(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		rel.Teams, err = h.client.ProjectTeams(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		rel.Members, err = h.client.ProjectMembers(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		rel.Links, err = h.client.ProjectLinks(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		rel.Issues, err = h.client.ProjectIssues(gctx, projectID, h.pageSize)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rel, nil
}

// resolveStateID maps a workflow state name to its id within a team.
// This is a dependent lookup: the team's states must be fetched before
// the name can be resolved. Matching is case-insensitive.
func (h *LinearHandler) resolveStateID(ctx context.Context, teamID, stateName string) (string, error) {
	states, err := h.client.TeamStates(ctx, teamID)
	if err != nil {
		return "", err
	}

	for _, state := range states {
		if strings.EqualFold(state.Name, stateName) {
			return state.ID, nil
		}
	}
	return "", domain.NewNotFoundError("workflow state", stateName)
}

// resolveIdentityDefault applies the identity defaulting policy for
// creation tools: an omitted identity field resolves to the
// authenticated caller, an explicit null leaves the field empty, and
// a supplied value passes through. The viewer lookup only happens when
// it is actually needed.
func (h *LinearHandler) resolveIdentityDefault(ctx context.Context, arg optionalString) (*string, error) {
	switch {
	case !arg.Present:
		viewer, err := h.client.Viewer(ctx)
		if err != nil {
			return nil, err
		}
		return &viewer.ID, nil
	case arg.Null:
		return nil, nil
	default:
		value := arg.Value
		return &value, nil
	}
}
