package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"linear-mcp-server/internal/domain"
)

// LinearClient speaks the Linear GraphQL API. Each API operation and
// each lazy relation of an entity is its own method posting its own
// GraphQL document, so callers control exactly which lookups a tool
// issues and can run independent ones concurrently.
type LinearClient struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
}

var _ domain.GraphQLClient = (*LinearClient)(nil)

// NewLinearClient creates a Linear API client. The httpClient must be
// the authenticated client from domain.NewAuthenticatedClient; timeout
// bounds every request (zero disables the bound).
func NewLinearClient(endpoint string, httpClient *http.Client, timeout time.Duration) *LinearClient {
	return &LinearClient{
		endpoint:   endpoint,
		httpClient: httpClient,
		timeout:    timeout,
	}
}

// Endpoint returns the configured GraphQL endpoint URL.
func (c *LinearClient) Endpoint() string {
	return c.endpoint
}

// graphqlRequest is the POST body of every API call.
type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// graphqlError is one entry of a GraphQL-level error response.
type graphqlError struct {
	Message string `json:"message"`
}

// graphqlResponse is the envelope every API call returns.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// Query posts a GraphQL document and decodes the data payload into
// out. HTTP faults, non-200 statuses and GraphQL-level errors all
// come back as errors; null lookup results are left for the caller.
func (c *LinearClient) Query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var envelope graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return fmt.Errorf("GraphQL error: %s", strings.Join(messages, "; "))
	}

	if out != nil && envelope.Data != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to decode data payload: %w", err)
		}
	}

	return nil
}

// connection is the GraphQL list-field envelope.
type connection[T any] struct {
	Nodes []T `json:"nodes"`
}

// Field selections shared across queries.
const (
	userFields  = "id name displayName email active"
	teamFields  = "id name key description"
	stateFields = "id name color type position"
	labelFields = "id name color description createdAt updatedAt"
	issueFields = "id identifier title description url priority estimate dueDate " +
		"createdAt updatedAt startedAt completedAt canceledAt archivedAt"
	projectFields = "id name description content state progress url startDate targetDate createdAt updatedAt"
)

// Viewer returns the identity of the authenticated caller.
func (c *LinearClient) Viewer(ctx context.Context) (*domain.User, error) {
	query := fmt.Sprintf("query Viewer { viewer { %s } }", userFields)

	var resp struct {
		Viewer *domain.User `json:"viewer"`
	}
	if err := c.Query(ctx, query, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Viewer == nil {
		return nil, fmt.Errorf("viewer query returned no user")
	}
	return resp.Viewer, nil
}

// User retrieves a workspace member by id.
func (c *LinearClient) User(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf("query User($id: String!) { user(id: $id) { %s } }", userFields)

	var resp struct {
		User *domain.User `json:"user"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": id}, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, domain.NewNotFoundError("user", id)
	}
	return resp.User, nil
}

// Issue retrieves an issue's scalar fields by id. Relations resolve
// through the Issue* methods below.
func (c *LinearClient) Issue(ctx context.Context, id string) (*domain.Issue, error) {
	query := fmt.Sprintf("query Issue($id: String!) { issue(id: $id) { %s } }", issueFields)

	var resp struct {
		Issue *domain.Issue `json:"issue"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": id}, &resp); err != nil {
		return nil, err
	}
	if resp.Issue == nil {
		return nil, domain.NewNotFoundError("issue", id)
	}
	return resp.Issue, nil
}

// Issues lists issues matching the filter, newest first.
func (c *LinearClient) Issues(ctx context.Context, filter domain.IssueFilter, first int) ([]domain.Issue, error) {
	query := fmt.Sprintf(
		"query Issues($filter: IssueFilter, $first: Int!) { issues(filter: $filter, first: $first) { nodes { %s } } }",
		issueFields)

	var resp struct {
		Issues connection[domain.Issue] `json:"issues"`
	}
	vars := map[string]interface{}{
		"filter": issueFilterInput(filter),
		"first":  first,
	}
	if err := c.Query(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	return resp.Issues.Nodes, nil
}

// SearchIssues performs a full-text issue search.
func (c *LinearClient) SearchIssues(ctx context.Context, text string, first int) ([]domain.Issue, error) {
	query := fmt.Sprintf(
		"query SearchIssues($query: String!, $first: Int!) { issueSearch(query: $query, first: $first) { nodes { %s } } }",
		issueFields)

	var resp struct {
		IssueSearch connection[domain.Issue] `json:"issueSearch"`
	}
	vars := map[string]interface{}{"query": text, "first": first}
	if err := c.Query(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	return resp.IssueSearch.Nodes, nil
}

// CreateIssue creates an issue and returns its scalar fields.
func (c *LinearClient) CreateIssue(ctx context.Context, input *domain.IssueCreateInput) (*domain.Issue, error) {
	query := fmt.Sprintf(
		"mutation CreateIssue($input: IssueCreateInput!) { issueCreate(input: $input) { success issue { %s } } }",
		issueFields)

	var resp struct {
		IssueCreate struct {
			Success bool          `json:"success"`
			Issue   *domain.Issue `json:"issue"`
		} `json:"issueCreate"`
	}
	vars := map[string]interface{}{"input": issueCreateInput(input)}
	if err := c.Query(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	if !resp.IssueCreate.Success || resp.IssueCreate.Issue == nil {
		return nil, fmt.Errorf("issue creation was rejected")
	}
	return resp.IssueCreate.Issue, nil
}

// UpdateIssue updates an issue and returns its refreshed scalar
// fields.
func (c *LinearClient) UpdateIssue(ctx context.Context, id string, input *domain.IssueUpdateInput) (*domain.Issue, error) {
	query := fmt.Sprintf(
		"mutation UpdateIssue($id: String!, $input: IssueUpdateInput!) { issueUpdate(id: $id, input: $input) { success issue { %s } } }",
		issueFields)

	var resp struct {
		IssueUpdate struct {
			Success bool          `json:"success"`
			Issue   *domain.Issue `json:"issue"`
		} `json:"issueUpdate"`
	}
	vars := map[string]interface{}{"id": id, "input": issueUpdateInput(input)}
	if err := c.Query(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	if !resp.IssueUpdate.Success || resp.IssueUpdate.Issue == nil {
		return nil, fmt.Errorf("issue update was rejected")
	}
	return resp.IssueUpdate.Issue, nil
}

// IssueState resolves an issue's workflow state.
func (c *LinearClient) IssueState(ctx context.Context, issueID string) (*domain.WorkflowState, error) {
	query := fmt.Sprintf("query IssueState($id: String!) { issue(id: $id) { state { %s } } }", stateFields)

	var resp struct {
		Issue *struct {
			State *domain.WorkflowState `json:"state"`
		} `json:"issue"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": issueID}, &resp); err != nil {
		return nil, err
	}
	if resp.Issue == nil {
		return nil, domain.NewNotFoundError("issue", issueID)
	}
	return resp.Issue.State, nil
}

// IssueAssignee resolves an issue's assignee, nil when unassigned.
func (c *LinearClient) IssueAssignee(ctx context.Context, issueID string) (*domain.User, error) {
	query := fmt.Sprintf("query IssueAssignee($id: String!) { issue(id: $id) { assignee { %s } } }", userFields)

	var resp struct {
		Issue *struct {
			Assignee *domain.User `json:"assignee"`
		} `json:"issue"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": issueID}, &resp); err != nil {
		return nil, err
	}
	if resp.Issue == nil {
		return nil, domain.NewNotFoundError("issue", issueID)
	}
	return resp.Issue.Assignee, nil
}

// IssueCreator resolves the user who created an issue.
func (c *LinearClient) IssueCreator(ctx context.Context, issueID string) (*domain.User, error) {
	query := fmt.Sprintf("query IssueCreator($id: String!) { issue(id: $id) { creator { %s } } }", userFields)

	var resp struct {
		Issue *struct {
			Creator *domain.User `json:"creator"`
		} `json:"issue"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": issueID}, &resp); err != nil {
		return nil, err
	}
	if resp.Issue == nil {
		return nil, domain.NewNotFoundError("issue", issueID)
	}
	return resp.Issue.Creator, nil
}

// IssueTeam resolves the team owning an issue.
func (c *LinearClient) IssueTeam(ctx context.Context, issueID string) (*domain.Team, error) {
	query := fmt.Sprintf("query IssueTeam($id: String!) { issue(id: $id) { team { %s } } }", teamFields)

	var resp struct {
		Issue *struct {
			Team *domain.Team `json:"team"`
		} `json:"issue"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": issueID}, &resp); err != nil {
		return nil, err
	}
	if resp.Issue == nil {
		return nil, domain.NewNotFoundError("issue", issueID)
	}
	return resp.Issue.Team, nil
}

// IssueProject resolves the project an issue belongs to, nil when
// unparented.
func (c *LinearClient) IssueProject(ctx context.Context, issueID string) (*domain.Project, error) {
	query := fmt.Sprintf("query IssueProject($id: String!) { issue(id: $id) { project { %s } } }", projectFields)

	var resp struct {
		Issue *struct {
			Project *domain.Project `json:"project"`
		} `json:"issue"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": issueID}, &resp); err != nil {
		return nil, err
	}
	if resp.Issue == nil {
		return nil, domain.NewNotFoundError("issue", issueID)
	}
	return resp.Issue.Project, nil
}

// IssueParent resolves an issue's parent reference, nil for top-level
// issues.
func (c *LinearClient) IssueParent(ctx context.Context, issueID string) (*domain.IssueRef, error) {
	query := "query IssueParent($id: String!) { issue(id: $id) { parent { id identifier title } } }"

	var resp struct {
		Issue *struct {
			Parent *domain.IssueRef `json:"parent"`
		} `json:"issue"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": issueID}, &resp); err != nil {
		return nil, err
	}
	if resp.Issue == nil {
		return nil, domain.NewNotFoundError("issue", issueID)
	}
	return resp.Issue.Parent, nil
}

// IssueCycle resolves the cycle an issue is scheduled in, nil when
// unscheduled.
func (c *LinearClient) IssueCycle(ctx context.Context, issueID string) (*domain.Cycle, error) {
	query := "query IssueCycle($id: String!) { issue(id: $id) { cycle { id name number startsAt endsAt } } }"

	var resp struct {
		Issue *struct {
			Cycle *domain.Cycle `json:"cycle"`
		} `json:"issue"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": issueID}, &resp); err != nil {
		return nil, err
	}
	if resp.Issue == nil {
		return nil, domain.NewNotFoundError("issue", issueID)
	}
	return resp.Issue.Cycle, nil
}

// IssueLabels resolves an issue's labels.
func (c *LinearClient) IssueLabels(ctx context.Context, issueID string) ([]domain.Label, error) {
	query := fmt.Sprintf("query IssueLabels($id: String!) { issue(id: $id) { labels { nodes { %s } } } }", labelFields)

	var resp struct {
		Issue *struct {
			Labels connection[domain.Label] `json:"labels"`
		} `json:"issue"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": issueID}, &resp); err != nil {
		return nil, err
	}
	if resp.Issue == nil {
		return nil, domain.NewNotFoundError("issue", issueID)
	}
	return resp.Issue.Labels.Nodes, nil
}

// IssueComments resolves an issue's comments, oldest first.
func (c *LinearClient) IssueComments(ctx context.Context, issueID string) ([]domain.Comment, error) {
	query := fmt.Sprintf(
		"query IssueComments($id: String!) { issue(id: $id) { comments { nodes { id body createdAt user { %s } } } } }",
		userFields)

	var resp struct {
		Issue *struct {
			Comments connection[domain.Comment] `json:"comments"`
		} `json:"issue"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": issueID}, &resp); err != nil {
		return nil, err
	}
	if resp.Issue == nil {
		return nil, domain.NewNotFoundError("issue", issueID)
	}
	return resp.Issue.Comments.Nodes, nil
}

// IssueAttachments resolves an issue's attachments.
func (c *LinearClient) IssueAttachments(ctx context.Context, issueID string) ([]domain.Attachment, error) {
	query := "query IssueAttachments($id: String!) { issue(id: $id) { attachments { nodes { id title url } } } }"

	var resp struct {
		Issue *struct {
			Attachments connection[domain.Attachment] `json:"attachments"`
		} `json:"issue"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": issueID}, &resp); err != nil {
		return nil, err
	}
	if resp.Issue == nil {
		return nil, domain.NewNotFoundError("issue", issueID)
	}
	return resp.Issue.Attachments.Nodes, nil
}

// IssueRelations resolves an issue's relations to other issues.
func (c *LinearClient) IssueRelations(ctx context.Context, issueID string) ([]domain.IssueRelation, error) {
	query := "query IssueRelations($id: String!) { issue(id: $id) { relations { nodes { id type relatedIssue { id identifier title } } } } }"

	var resp struct {
		Issue *struct {
			Relations connection[domain.IssueRelation] `json:"relations"`
		} `json:"issue"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": issueID}, &resp); err != nil {
		return nil, err
	}
	if resp.Issue == nil {
		return nil, domain.NewNotFoundError("issue", issueID)
	}
	return resp.Issue.Relations.Nodes, nil
}

// Team retrieves a team by id.
func (c *LinearClient) Team(ctx context.Context, id string) (*domain.Team, error) {
	query := fmt.Sprintf("query Team($id: String!) { team(id: $id) { %s } }", teamFields)

	var resp struct {
		Team *domain.Team `json:"team"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": id}, &resp); err != nil {
		return nil, err
	}
	if resp.Team == nil {
		return nil, domain.NewNotFoundError("team", id)
	}
	return resp.Team, nil
}

// Teams lists all teams in the workspace.
func (c *LinearClient) Teams(ctx context.Context) ([]domain.Team, error) {
	query := fmt.Sprintf("query Teams { teams { nodes { %s } } }", teamFields)

	var resp struct {
		Teams connection[domain.Team] `json:"teams"`
	}
	if err := c.Query(ctx, query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Teams.Nodes, nil
}

// TeamStates resolves a team's workflow states.
func (c *LinearClient) TeamStates(ctx context.Context, teamID string) ([]domain.WorkflowState, error) {
	query := fmt.Sprintf("query TeamStates($id: String!) { team(id: $id) { states { nodes { %s } } } }", stateFields)

	var resp struct {
		Team *struct {
			States connection[domain.WorkflowState] `json:"states"`
		} `json:"team"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": teamID}, &resp); err != nil {
		return nil, err
	}
	if resp.Team == nil {
		return nil, domain.NewNotFoundError("team", teamID)
	}
	return resp.Team.States.Nodes, nil
}

// TeamLabels resolves a team's labels.
func (c *LinearClient) TeamLabels(ctx context.Context, teamID string) ([]domain.Label, error) {
	query := fmt.Sprintf("query TeamLabels($id: String!) { team(id: $id) { labels { nodes { %s } } } }", labelFields)

	var resp struct {
		Team *struct {
			Labels connection[domain.Label] `json:"labels"`
		} `json:"team"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": teamID}, &resp); err != nil {
		return nil, err
	}
	if resp.Team == nil {
		return nil, domain.NewNotFoundError("team", teamID)
	}
	return resp.Team.Labels.Nodes, nil
}

// TeamMemberships resolves the users belonging to a team.
func (c *LinearClient) TeamMemberships(ctx context.Context, teamID string) ([]domain.User, error) {
	query := fmt.Sprintf(
		"query TeamMemberships($id: String!) { team(id: $id) { memberships { nodes { user { %s } } } } }",
		userFields)

	type membership struct {
		User *domain.User `json:"user"`
	}
	var resp struct {
		Team *struct {
			Memberships connection[membership] `json:"memberships"`
		} `json:"team"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": teamID}, &resp); err != nil {
		return nil, err
	}
	if resp.Team == nil {
		return nil, domain.NewNotFoundError("team", teamID)
	}

	users := make([]domain.User, 0, len(resp.Team.Memberships.Nodes))
	for _, m := range resp.Team.Memberships.Nodes {
		if m.User != nil {
			users = append(users, *m.User)
		}
	}
	return users, nil
}

// Labels lists workspace-level labels.
func (c *LinearClient) Labels(ctx context.Context) ([]domain.Label, error) {
	query := fmt.Sprintf("query Labels { issueLabels { nodes { %s team { %s } } } }", labelFields, teamFields)

	var resp struct {
		IssueLabels connection[domain.Label] `json:"issueLabels"`
	}
	if err := c.Query(ctx, query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.IssueLabels.Nodes, nil
}

// IssueLabel retrieves a label by id.
func (c *LinearClient) IssueLabel(ctx context.Context, id string) (*domain.Label, error) {
	query := fmt.Sprintf("query IssueLabel($id: String!) { issueLabel(id: $id) { %s team { %s } } }", labelFields, teamFields)

	var resp struct {
		IssueLabel *domain.Label `json:"issueLabel"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": id}, &resp); err != nil {
		return nil, err
	}
	if resp.IssueLabel == nil {
		return nil, domain.NewNotFoundError("label", id)
	}
	return resp.IssueLabel, nil
}

// CreateLabel creates a team label.
func (c *LinearClient) CreateLabel(ctx context.Context, input *domain.LabelCreateInput) (*domain.Label, error) {
	query := fmt.Sprintf(
		"mutation CreateLabel($input: IssueLabelCreateInput!) { issueLabelCreate(input: $input) { success issueLabel { %s team { %s } } } }",
		labelFields, teamFields)

	var resp struct {
		IssueLabelCreate struct {
			Success    bool          `json:"success"`
			IssueLabel *domain.Label `json:"issueLabel"`
		} `json:"issueLabelCreate"`
	}
	vars := map[string]interface{}{"input": labelCreateInput(input)}
	if err := c.Query(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	if !resp.IssueLabelCreate.Success || resp.IssueLabelCreate.IssueLabel == nil {
		return nil, fmt.Errorf("label creation was rejected")
	}
	return resp.IssueLabelCreate.IssueLabel, nil
}

// UpdateLabel updates a label and returns its refreshed fields.
func (c *LinearClient) UpdateLabel(ctx context.Context, id string, input *domain.LabelUpdateInput) (*domain.Label, error) {
	query := fmt.Sprintf(
		"mutation UpdateLabel($id: String!, $input: IssueLabelUpdateInput!) { issueLabelUpdate(id: $id, input: $input) { success issueLabel { %s team { %s } } } }",
		labelFields, teamFields)

	var resp struct {
		IssueLabelUpdate struct {
			Success    bool          `json:"success"`
			IssueLabel *domain.Label `json:"issueLabel"`
		} `json:"issueLabelUpdate"`
	}
	vars := map[string]interface{}{"id": id, "input": labelUpdateInput(input)}
	if err := c.Query(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	if !resp.IssueLabelUpdate.Success || resp.IssueLabelUpdate.IssueLabel == nil {
		return nil, fmt.Errorf("label update was rejected")
	}
	return resp.IssueLabelUpdate.IssueLabel, nil
}

// Project retrieves a project's scalar fields by id.
func (c *LinearClient) Project(ctx context.Context, id string) (*domain.Project, error) {
	query := fmt.Sprintf("query Project($id: String!) { project(id: $id) { %s } }", projectFields)

	var resp struct {
		Project *domain.Project `json:"project"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": id}, &resp); err != nil {
		return nil, err
	}
	if resp.Project == nil {
		return nil, domain.NewNotFoundError("project", id)
	}
	return resp.Project, nil
}

// Projects lists projects matching the filter.
func (c *LinearClient) Projects(ctx context.Context, filter domain.ProjectFilter, first int) ([]domain.Project, error) {
	query := fmt.Sprintf(
		"query Projects($filter: ProjectFilter, $first: Int!) { projects(filter: $filter, first: $first) { nodes { %s } } }",
		projectFields)

	var resp struct {
		Projects connection[domain.Project] `json:"projects"`
	}
	vars := map[string]interface{}{
		"filter": projectFilterInput(filter),
		"first":  first,
	}
	if err := c.Query(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	return resp.Projects.Nodes, nil
}

// CreateProject creates a project and returns its scalar fields.
func (c *LinearClient) CreateProject(ctx context.Context, input *domain.ProjectCreateInput) (*domain.Project, error) {
	query := fmt.Sprintf(
		"mutation CreateProject($input: ProjectCreateInput!) { projectCreate(input: $input) { success project { %s } } }",
		projectFields)

	var resp struct {
		ProjectCreate struct {
			Success bool            `json:"success"`
			Project *domain.Project `json:"project"`
		} `json:"projectCreate"`
	}
	vars := map[string]interface{}{"input": projectCreateInput(input)}
	if err := c.Query(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	if !resp.ProjectCreate.Success || resp.ProjectCreate.Project == nil {
		return nil, fmt.Errorf("project creation was rejected")
	}
	return resp.ProjectCreate.Project, nil
}

// UpdateProject updates a project and returns its refreshed fields.
func (c *LinearClient) UpdateProject(ctx context.Context, id string, input *domain.ProjectUpdateInput) (*domain.Project, error) {
	query := fmt.Sprintf(
		"mutation UpdateProject($id: String!, $input: ProjectUpdateInput!) { projectUpdate(id: $id, input: $input) { success project { %s } } }",
		projectFields)

	var resp struct {
		ProjectUpdate struct {
			Success bool            `json:"success"`
			Project *domain.Project `json:"project"`
		} `json:"projectUpdate"`
	}
	vars := map[string]interface{}{"id": id, "input": projectUpdateInput(input)}
	if err := c.Query(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	if !resp.ProjectUpdate.Success || resp.ProjectUpdate.Project == nil {
		return nil, fmt.Errorf("project update was rejected")
	}
	return resp.ProjectUpdate.Project, nil
}

// ProjectLead resolves a project's lead, nil when unset.
func (c *LinearClient) ProjectLead(ctx context.Context, projectID string) (*domain.User, error) {
	query := fmt.Sprintf("query ProjectLead($id: String!) { project(id: $id) { lead { %s } } }", userFields)

	var resp struct {
		Project *struct {
			Lead *domain.User `json:"lead"`
		} `json:"project"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": projectID}, &resp); err != nil {
		return nil, err
	}
	if resp.Project == nil {
		return nil, domain.NewNotFoundError("project", projectID)
	}
	return resp.Project.Lead, nil
}

// ProjectTeams resolves the teams associated with a project.
func (c *LinearClient) ProjectTeams(ctx context.Context, projectID string) ([]domain.Team, error) {
	query := fmt.Sprintf("query ProjectTeams($id: String!) { project(id: $id) { teams { nodes { %s } } } }", teamFields)

	var resp struct {
		Project *struct {
			Teams connection[domain.Team] `json:"teams"`
		} `json:"project"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": projectID}, &resp); err != nil {
		return nil, err
	}
	if resp.Project == nil {
		return nil, domain.NewNotFoundError("project", projectID)
	}
	return resp.Project.Teams.Nodes, nil
}

// ProjectMembers resolves a project's member set.
func (c *LinearClient) ProjectMembers(ctx context.Context, projectID string) ([]domain.User, error) {
	query := fmt.Sprintf("query ProjectMembers($id: String!) { project(id: $id) { members { nodes { %s } } } }", userFields)

	var resp struct {
		Project *struct {
			Members connection[domain.User] `json:"members"`
		} `json:"project"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": projectID}, &resp); err != nil {
		return nil, err
	}
	if resp.Project == nil {
		return nil, domain.NewNotFoundError("project", projectID)
	}
	return resp.Project.Members.Nodes, nil
}

// ProjectLinks resolves a project's external links.
func (c *LinearClient) ProjectLinks(ctx context.Context, projectID string) ([]domain.ProjectLink, error) {
	query := "query ProjectLinks($id: String!) { project(id: $id) { externalLinks { nodes { id url label } } } }"

	var resp struct {
		Project *struct {
			ExternalLinks connection[domain.ProjectLink] `json:"externalLinks"`
		} `json:"project"`
	}
	if err := c.Query(ctx, query, map[string]interface{}{"id": projectID}, &resp); err != nil {
		return nil, err
	}
	if resp.Project == nil {
		return nil, domain.NewNotFoundError("project", projectID)
	}
	return resp.Project.ExternalLinks.Nodes, nil
}

// ProjectIssues resolves references to a project's issues.
func (c *LinearClient) ProjectIssues(ctx context.Context, projectID string, first int) ([]domain.IssueRef, error) {
	query := "query ProjectIssues($id: String!, $first: Int!) { project(id: $id) { issues(first: $first) { nodes { id identifier title } } } }"

	var resp struct {
		Project *struct {
			Issues connection[domain.IssueRef] `json:"issues"`
		} `json:"project"`
	}
	vars := map[string]interface{}{"id": projectID, "first": first}
	if err := c.Query(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	if resp.Project == nil {
		return nil, domain.NewNotFoundError("project", projectID)
	}
	return resp.Project.Issues.Nodes, nil
}

// ProjectStatuses lists the organization's project status catalogue.
func (c *LinearClient) ProjectStatuses(ctx context.Context) ([]domain.ProjectStatus, error) {
	query := "query ProjectStatuses { projectStatuses { nodes { id name color type } } }"

	var resp struct {
		ProjectStatuses connection[domain.ProjectStatus] `json:"projectStatuses"`
	}
	if err := c.Query(ctx, query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.ProjectStatuses.Nodes, nil
}

// issueFilterInput converts an IssueFilter to the API filter object,
// returning nil when no filter is set.
func issueFilterInput(filter domain.IssueFilter) map[string]interface{} {
	out := map[string]interface{}{}
	if filter.TeamID != "" {
		out["team"] = map[string]interface{}{"id": map[string]interface{}{"eq": filter.TeamID}}
	}
	if filter.AssigneeID != "" {
		out["assignee"] = map[string]interface{}{"id": map[string]interface{}{"eq": filter.AssigneeID}}
	}
	if filter.StateID != "" {
		out["state"] = map[string]interface{}{"id": map[string]interface{}{"eq": filter.StateID}}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// projectFilterInput converts a ProjectFilter to the API filter
// object, returning nil when no filter is set.
func projectFilterInput(filter domain.ProjectFilter) map[string]interface{} {
	if filter.TeamID == "" {
		return nil
	}
	return map[string]interface{}{
		"accessibleTeams": map[string]interface{}{"id": map[string]interface{}{"eq": filter.TeamID}},
	}
}

// issueCreateInput builds the mutation input map. Nil pointer fields
// are left out entirely so the service applies its own defaults.
func issueCreateInput(input *domain.IssueCreateInput) map[string]interface{} {
	out := map[string]interface{}{
		"teamId": input.TeamID,
		"title":  input.Title,
	}
	if input.Description != nil {
		out["description"] = *input.Description
	}
	if input.Priority != nil {
		out["priority"] = *input.Priority
	}
	if input.StateID != nil {
		out["stateId"] = *input.StateID
	}
	if input.AssigneeID != nil {
		out["assigneeId"] = *input.AssigneeID
	}
	if input.ParentID != nil {
		out["parentId"] = *input.ParentID
	}
	if len(input.LabelIDs) > 0 {
		out["labelIds"] = input.LabelIDs
	}
	if input.DueDate != nil {
		out["dueDate"] = *input.DueDate
	}
	if input.Estimate != nil {
		out["estimate"] = *input.Estimate
	}
	return out
}

// issueUpdateInput builds the mutation input map. ClearAssignee sends
// an explicit null, which the service treats as "remove assignee".
func issueUpdateInput(input *domain.IssueUpdateInput) map[string]interface{} {
	out := map[string]interface{}{}
	if input.Title != nil {
		out["title"] = *input.Title
	}
	if input.Description != nil {
		out["description"] = *input.Description
	}
	if input.Priority != nil {
		out["priority"] = *input.Priority
	}
	if input.StateID != nil {
		out["stateId"] = *input.StateID
	}
	if input.ClearAssignee {
		out["assigneeId"] = nil
	} else if input.AssigneeID != nil {
		out["assigneeId"] = *input.AssigneeID
	}
	return out
}

// labelCreateInput builds the label creation input map.
func labelCreateInput(input *domain.LabelCreateInput) map[string]interface{} {
	out := map[string]interface{}{
		"teamId": input.TeamID,
		"name":   input.Name,
	}
	if input.Color != nil {
		out["color"] = *input.Color
	}
	if input.Description != nil {
		out["description"] = *input.Description
	}
	return out
}

// labelUpdateInput builds the label update input map.
func labelUpdateInput(input *domain.LabelUpdateInput) map[string]interface{} {
	out := map[string]interface{}{}
	if input.Name != nil {
		out["name"] = *input.Name
	}
	if input.Color != nil {
		out["color"] = *input.Color
	}
	if input.Description != nil {
		out["description"] = *input.Description
	}
	return out
}

// projectCreateInput builds the project creation input map.
func projectCreateInput(input *domain.ProjectCreateInput) map[string]interface{} {
	out := map[string]interface{}{
		"name":    input.Name,
		"teamIds": input.TeamIDs,
	}
	if input.Description != nil {
		out["description"] = *input.Description
	}
	if input.Content != nil {
		out["content"] = *input.Content
	}
	if input.State != nil {
		out["state"] = *input.State
	}
	if input.LeadID != nil {
		out["leadId"] = *input.LeadID
	}
	if input.StartDate != nil {
		out["startDate"] = *input.StartDate
	}
	if input.TargetDate != nil {
		out["targetDate"] = *input.TargetDate
	}
	return out
}

// projectUpdateInput builds the project update input map. ClearLead
// sends an explicit null, which the service treats as "remove lead".
func projectUpdateInput(input *domain.ProjectUpdateInput) map[string]interface{} {
	out := map[string]interface{}{}
	if input.Name != nil {
		out["name"] = *input.Name
	}
	if input.Description != nil {
		out["description"] = *input.Description
	}
	if input.Content != nil {
		out["content"] = *input.Content
	}
	if input.State != nil {
		out["state"] = *input.State
	}
	if input.ClearLead {
		out["leadId"] = nil
	} else if input.LeadID != nil {
		out["leadId"] = *input.LeadID
	}
	if input.StartDate != nil {
		out["startDate"] = *input.StartDate
	}
	if input.TargetDate != nil {
		out["targetDate"] = *input.TargetDate
	}
	return out
}
