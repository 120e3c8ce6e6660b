package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"linear-mcp-server/internal/domain"
)

func newTestClient(handler http.HandlerFunc) (*LinearClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewLinearClient(server.URL, server.Client(), 0), server
}

func TestQuery_DecodesDataPayload(t *testing.T) {
	var gotBody graphqlRequest

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Write([]byte(`{"data":{"viewer":{"id":"user-1","name":"Ada"}}}`))
	})
	defer server.Close()

	var out struct {
		Viewer struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"viewer"`
	}
	err := client.Query(context.Background(), "query Viewer { viewer { id name } }",
		map[string]interface{}{"key": "value"}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Viewer.ID != "user-1" || out.Viewer.Name != "Ada" {
		t.Errorf("unexpected payload: %+v", out.Viewer)
	}
	if gotBody.Query == "" || gotBody.Variables["key"] != "value" {
		t.Errorf("request body not forwarded: %+v", gotBody)
	}
}

func TestQuery_NonOKStatus(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	})
	defer server.Close()

	err := client.Query(context.Background(), "query Viewer { viewer { id } }", nil, nil)
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
	if !strings.Contains(err.Error(), "API error (status 502)") {
		t.Errorf("unexpected message: %v", err)
	}
	if !strings.Contains(err.Error(), "upstream down") {
		t.Errorf("response body should be included: %v", err)
	}
}

func TestQuery_GraphQLErrorsJoined(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"first"},{"message":"second"}]}`))
	})
	defer server.Close()

	err := client.Query(context.Background(), "query Viewer { viewer { id } }", nil, nil)
	if err == nil {
		t.Fatal("expected error for GraphQL-level failure")
	}
	if err.Error() != "GraphQL error: first; second" {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestQuery_MalformedResponse(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})
	defer server.Close()

	err := client.Query(context.Background(), "query Viewer { viewer { id } }", nil, nil)
	if err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("expected decode error, got %v", err)
	}
}

// TestNullLookupsBecomeNotFound tests that the entity-bearing lookups
// translate a null wrapper into a typed not-found error naming the
// identifier.
func TestNullLookupsBecomeNotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		json.NewDecoder(r.Body).Decode(&req)
		switch {
		case strings.Contains(req.Query, "issue(id:"):
			w.Write([]byte(`{"data":{"issue":null}}`))
		case strings.Contains(req.Query, "team(id:"):
			w.Write([]byte(`{"data":{"team":null}}`))
		case strings.Contains(req.Query, "project(id:"):
			w.Write([]byte(`{"data":{"project":null}}`))
		default:
			w.Write([]byte(`{"data":{}}`))
		}
	})
	defer server.Close()

	ctx := context.Background()

	if _, err := client.Issue(ctx, "issue-404"); domain.KindOf(err) != domain.EntityNotFound {
		t.Errorf("Issue: expected not-found, got %v", err)
	} else if !strings.Contains(err.Error(), "issue-404") {
		t.Errorf("Issue: identifier missing from %v", err)
	}

	if _, err := client.Team(ctx, "team-404"); domain.KindOf(err) != domain.EntityNotFound {
		t.Errorf("Team: expected not-found, got %v", err)
	}

	if _, err := client.Project(ctx, "proj-404"); domain.KindOf(err) != domain.EntityNotFound {
		t.Errorf("Project: expected not-found, got %v", err)
	}

	if _, err := client.IssueState(ctx, "issue-404"); domain.KindOf(err) != domain.EntityNotFound {
		t.Errorf("IssueState: expected not-found, got %v", err)
	}

	if _, err := client.TeamStates(ctx, "team-404"); domain.KindOf(err) != domain.EntityNotFound {
		t.Errorf("TeamStates: expected not-found, got %v", err)
	}
}

// TestNullRelationIsNotAnError tests that a present entity with an
// absent relation resolves to nil without error.
func TestNullRelationIsNotAnError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"issue":{"assignee":null}}}`))
	})
	defer server.Close()

	assignee, err := client.IssueAssignee(context.Background(), "issue-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assignee != nil {
		t.Errorf("expected nil assignee, got %+v", assignee)
	}
}

func TestCreateIssue_RejectedMutation(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"issueCreate":{"success":false}}}`))
	})
	defer server.Close()

	_, err := client.CreateIssue(context.Background(), &domain.IssueCreateInput{
		TeamID: "team-1",
		Title:  "x",
	})
	if err == nil {
		t.Fatal("expected error for rejected mutation")
	}
}

func TestIssueFilterInput(t *testing.T) {
	if got := issueFilterInput(domain.IssueFilter{}); got != nil {
		t.Errorf("empty filter should be nil, got %v", got)
	}

	got := issueFilterInput(domain.IssueFilter{
		TeamID:     "team-1",
		AssigneeID: "user-1",
		StateID:    "state-1",
	})
	if len(got) != 3 {
		t.Fatalf("expected three clauses, got %v", got)
	}
	team, _ := got["team"].(map[string]interface{})
	id, _ := team["id"].(map[string]interface{})
	if id["eq"] != "team-1" {
		t.Errorf("unexpected team clause: %v", got["team"])
	}
	state, _ := got["state"].(map[string]interface{})
	id, _ = state["id"].(map[string]interface{})
	if id["eq"] != "state-1" {
		t.Errorf("unexpected state clause: %v", got["state"])
	}
}

func TestProjectFilterInput(t *testing.T) {
	if got := projectFilterInput(domain.ProjectFilter{}); got != nil {
		t.Errorf("empty filter should be nil, got %v", got)
	}

	got := projectFilterInput(domain.ProjectFilter{TeamID: "team-1"})
	teams, _ := got["accessibleTeams"].(map[string]interface{})
	id, _ := teams["id"].(map[string]interface{})
	if id["eq"] != "team-1" {
		t.Errorf("unexpected filter: %v", got)
	}
}

// TestIssueCreateInput tests that unset optional fields stay out of
// the mutation input entirely.
func TestIssueCreateInput(t *testing.T) {
	minimal := issueCreateInput(&domain.IssueCreateInput{TeamID: "team-1", Title: "x"})
	if len(minimal) != 2 || minimal["teamId"] != "team-1" || minimal["title"] != "x" {
		t.Errorf("unexpected minimal input: %v", minimal)
	}

	description := "body"
	priority := 2
	assignee := "user-1"
	estimate := 3.0
	full := issueCreateInput(&domain.IssueCreateInput{
		TeamID:      "team-1",
		Title:       "x",
		Description: &description,
		Priority:    &priority,
		AssigneeID:  &assignee,
		LabelIDs:    []string{"l1"},
		Estimate:    &estimate,
	})
	if full["description"] != "body" || full["priority"] != 2 || full["assigneeId"] != "user-1" {
		t.Errorf("unexpected full input: %v", full)
	}
	if full["estimate"] != 3.0 {
		t.Errorf("unexpected estimate: %v", full["estimate"])
	}
}

// TestIssueUpdateInput_ClearAssignee tests the explicit-null contract:
// clearing sends the key with a null value, omitting leaves the key
// out.
func TestIssueUpdateInput_ClearAssignee(t *testing.T) {
	out := issueUpdateInput(&domain.IssueUpdateInput{ClearAssignee: true})
	value, present := out["assigneeId"]
	if !present || value != nil {
		t.Errorf("expected explicit null assigneeId, got %v (present=%v)", value, present)
	}

	out = issueUpdateInput(&domain.IssueUpdateInput{})
	if _, present := out["assigneeId"]; present {
		t.Errorf("expected no assigneeId key, got %v", out)
	}

	assignee := "user-1"
	out = issueUpdateInput(&domain.IssueUpdateInput{AssigneeID: &assignee})
	if out["assigneeId"] != "user-1" {
		t.Errorf("expected user-1, got %v", out["assigneeId"])
	}
}

func TestProjectUpdateInput_ClearLead(t *testing.T) {
	out := projectUpdateInput(&domain.ProjectUpdateInput{ClearLead: true})
	value, present := out["leadId"]
	if !present || value != nil {
		t.Errorf("expected explicit null leadId, got %v (present=%v)", value, present)
	}

	out = projectUpdateInput(&domain.ProjectUpdateInput{})
	if _, present := out["leadId"]; present {
		t.Errorf("expected no leadId key, got %v", out)
	}
}

// TestClearedAssigneeSerializesAsNull tests that the cleared field
// survives JSON encoding as a literal null rather than disappearing.
func TestClearedAssigneeSerializesAsNull(t *testing.T) {
	body, err := json.Marshal(map[string]interface{}{
		"input": issueUpdateInput(&domain.IssueUpdateInput{ClearAssignee: true}),
	})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(body), `"assigneeId":null`) {
		t.Errorf("expected explicit null in payload, got %s", body)
	}
}

func TestSearchIssues_ForwardsQueryAndFirst(t *testing.T) {
	var got graphqlRequest
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"data":{"issueSearch":{"nodes":[]}}}`))
	})
	defer server.Close()

	issues, err := client.SearchIssues(context.Background(), "login bug", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if issues == nil || len(issues) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", issues)
	}
	if got.Variables["query"] != "login bug" || got.Variables["first"] != float64(10) {
		t.Errorf("unexpected variables: %v", got.Variables)
	}
}
