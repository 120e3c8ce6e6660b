package domain

import (
	"regexp"
	"sort"
)

// Flattened records are the serializable shapes returned to the
// calling agent. Two rules hold everywhere:
//
//   - a relation reference always carries at least {id, name}; a bare
//     identifier is never emitted because the agent cannot resolve it
//   - absent relations serialize as explicit null (pointers) or empty
//     arrays, never as a missing key, so "no assignee" stays
//     distinguishable from "not fetched"
//
// Flatten functions are pure: every relation they reference must
// already be fetched by the caller's resolution plan.

// EntityRef is the minimal {id, name} reference shape.
type EntityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FlatIssueRef summarizes a related issue.
type FlatIssueRef struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
}

// IssueSummary is the per-issue record returned by list_issues and
// search_issues.
type IssueSummary struct {
	ID         string      `json:"id"`
	Identifier string      `json:"identifier"`
	Title      string      `json:"title"`
	Priority   int         `json:"priority"`
	URL        string      `json:"url"`
	State      *EntityRef  `json:"state"`
	Assignee   *EntityRef  `json:"assignee"`
	Labels     []EntityRef `json:"labels"`
	DueDate    *string     `json:"dueDate"`
	CreatedAt  string      `json:"createdAt"`
	UpdatedAt  string      `json:"updatedAt"`
}

// FlatComment is a comment with its author reference.
type FlatComment struct {
	ID        string     `json:"id"`
	Body      string     `json:"body"`
	CreatedAt string     `json:"createdAt"`
	User      *EntityRef `json:"user"`
}

// FlatAttachment is an attachment record.
type FlatAttachment struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// FlatRelation is an issue-to-issue relation record.
type FlatRelation struct {
	ID           string        `json:"id"`
	Type         string        `json:"type"`
	RelatedIssue *FlatIssueRef `json:"relatedIssue"`
}

// IssueDetail is the full record returned by get_issue.
type IssueDetail struct {
	IssueSummary
	Description    string           `json:"description"`
	Estimate       *float64         `json:"estimate"`
	Creator        *EntityRef       `json:"creator"`
	Team           *EntityRef       `json:"team"`
	Project        *EntityRef       `json:"project"`
	Parent         *FlatIssueRef    `json:"parent"`
	Cycle          *EntityRef       `json:"cycle"`
	Comments       []FlatComment    `json:"comments"`
	Attachments    []FlatAttachment `json:"attachments"`
	Relations      []FlatRelation   `json:"relations"`
	EmbeddedImages []string         `json:"embeddedImages"`
	StartedAt      *string          `json:"startedAt"`
	CompletedAt    *string          `json:"completedAt"`
	CanceledAt     *string          `json:"canceledAt"`
	ArchivedAt     *string          `json:"archivedAt"`
}

// StateInfo is a workflow state record.
type StateInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

// TeamInfo is a team with its workflow states, ordered by position.
type TeamInfo struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Key    string      `json:"key"`
	States []StateInfo `json:"states"`
}

// LabelInfo is a label record with optional team ownership.
type LabelInfo struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Color       string     `json:"color"`
	Description string     `json:"description"`
	Team        *EntityRef `json:"team"`
}

// MemberInfo is a team or project member record.
type MemberInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Active      bool   `json:"active"`
}

// ProjectSummary is the per-project record returned by list_projects.
type ProjectSummary struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	State      string      `json:"state"`
	Progress   float64     `json:"progress"`
	URL        string      `json:"url"`
	Lead       *EntityRef  `json:"lead"`
	Teams      []EntityRef `json:"teams"`
	StartDate  *string     `json:"startDate"`
	TargetDate *string     `json:"targetDate"`
}

// FlatProjectLink is an external project link record.
type FlatProjectLink struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Label string `json:"label"`
}

// ProjectDetail is the full record returned by get_project.
type ProjectDetail struct {
	ProjectSummary
	Description string            `json:"description"`
	Content     string            `json:"content"`
	Members     []MemberInfo      `json:"members"`
	Links       []FlatProjectLink `json:"links"`
	Issues      []FlatIssueRef    `json:"issues"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
}

// UserRef flattens a user to {id, name}, preferring the display name.
// Returns nil for a nil user so the field serializes as null.
func UserRef(u *User) *EntityRef {
	if u == nil {
		return nil
	}
	name := u.DisplayName
	if name == "" {
		name = u.Name
	}
	return &EntityRef{ID: u.ID, Name: name}
}

// StateRef flattens a workflow state to {id, name}.
func StateRef(s *WorkflowState) *EntityRef {
	if s == nil {
		return nil
	}
	return &EntityRef{ID: s.ID, Name: s.Name}
}

// TeamRef flattens a team to {id, name}.
func TeamRef(t *Team) *EntityRef {
	if t == nil {
		return nil
	}
	return &EntityRef{ID: t.ID, Name: t.Name}
}

// ProjectRef flattens a project to {id, name}.
func ProjectRef(p *Project) *EntityRef {
	if p == nil {
		return nil
	}
	return &EntityRef{ID: p.ID, Name: p.Name}
}

// LabelRefs flattens labels to {id, name} pairs. Always returns a
// non-nil slice so the field serializes as [].
func LabelRefs(labels []Label) []EntityRef {
	refs := make([]EntityRef, 0, len(labels))
	for _, l := range labels {
		refs = append(refs, EntityRef{ID: l.ID, Name: l.Name})
	}
	return refs
}

// issueRef flattens an issue reference, nil-safe.
func issueRef(r *IssueRef) *FlatIssueRef {
	if r == nil {
		return nil
	}
	return &FlatIssueRef{ID: r.ID, Identifier: r.Identifier, Title: r.Title}
}

// FlattenIssueSummary builds the list/search record from an issue and
// its resolved summary relations.
func FlattenIssueSummary(issue *Issue, state *WorkflowState, assignee *User, labels []Label) *IssueSummary {
	return &IssueSummary{
		ID:         issue.ID,
		Identifier: issue.Identifier,
		Title:      issue.Title,
		Priority:   issue.Priority,
		URL:        issue.URL,
		State:      StateRef(state),
		Assignee:   UserRef(assignee),
		Labels:     LabelRefs(labels),
		DueDate:    issue.DueDate,
		CreatedAt:  issue.CreatedAt,
		UpdatedAt:  issue.UpdatedAt,
	}
}

// IssueRelations bundles the full relation set get_issue promises.
// Every field is filled (or explicitly empty) by the resolution plan
// before flattening.
type IssueRelations struct {
	State       *WorkflowState
	Assignee    *User
	Creator     *User
	Team        *Team
	Project     *Project
	Parent      *IssueRef
	Cycle       *Cycle
	Labels      []Label
	Comments    []Comment
	Attachments []Attachment
	Relations   []IssueRelation
}

// FlattenIssueDetail builds the get_issue record from an issue and its
// fully resolved relations. Embedded image URLs are extracted from the
// description text; no network is touched here.
func FlattenIssueDetail(issue *Issue, rel *IssueRelations) *IssueDetail {
	detail := &IssueDetail{
		IssueSummary: *FlattenIssueSummary(issue, rel.State, rel.Assignee, rel.Labels),
		Description:  issue.Description,
		Estimate:     issue.Estimate,
		Creator:      UserRef(rel.Creator),
		Team:         TeamRef(rel.Team),
		Project:      ProjectRef(rel.Project),
		Parent:       issueRef(rel.Parent),
		Comments:     make([]FlatComment, 0, len(rel.Comments)),
		Attachments:  make([]FlatAttachment, 0, len(rel.Attachments)),
		Relations:    make([]FlatRelation, 0, len(rel.Relations)),
		EmbeddedImages: ExtractEmbeddedImages(issue.Description),
		StartedAt:      issue.StartedAt,
		CompletedAt:    issue.CompletedAt,
		CanceledAt:     issue.CanceledAt,
		ArchivedAt:     issue.ArchivedAt,
	}
	if rel.Cycle != nil {
		detail.Cycle = &EntityRef{ID: rel.Cycle.ID, Name: rel.Cycle.Name}
	}
	for _, c := range rel.Comments {
		detail.Comments = append(detail.Comments, FlatComment{
			ID:        c.ID,
			Body:      c.Body,
			CreatedAt: c.CreatedAt,
			User:      UserRef(c.User),
		})
	}
	for _, a := range rel.Attachments {
		detail.Attachments = append(detail.Attachments, FlatAttachment{
			ID:    a.ID,
			Title: a.Title,
			URL:   a.URL,
		})
	}
	for _, r := range rel.Relations {
		detail.Relations = append(detail.Relations, FlatRelation{
			ID:           r.ID,
			Type:         r.Type,
			RelatedIssue: issueRef(r.RelatedIssue),
		})
	}
	return detail
}

// FlattenTeam builds a team record with its states ordered by
// workflow position.
func FlattenTeam(team *Team, states []WorkflowState) *TeamInfo {
	ordered := make([]WorkflowState, len(states))
	copy(ordered, states)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	info := &TeamInfo{
		ID:     team.ID,
		Name:   team.Name,
		Key:    team.Key,
		States: make([]StateInfo, 0, len(ordered)),
	}
	for _, s := range ordered {
		info.States = append(info.States, StateInfo{
			ID:    s.ID,
			Name:  s.Name,
			Color: s.Color,
			Type:  s.Type,
		})
	}
	return info
}

// FlattenLabel builds a label record. The owning team may be nil for
// workspace labels.
func FlattenLabel(label *Label) *LabelInfo {
	return &LabelInfo{
		ID:          label.ID,
		Name:        label.Name,
		Color:       label.Color,
		Description: label.Description,
		Team:        TeamRef(label.Team),
	}
}

// FlattenMember builds a member record from a user.
func FlattenMember(u *User) *MemberInfo {
	return &MemberInfo{
		ID:          u.ID,
		Name:        u.Name,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Active:      u.Active,
	}
}

// FlattenProjectSummary builds the list_projects record from a project
// and its resolved lead and teams.
func FlattenProjectSummary(p *Project, lead *User, teams []Team) *ProjectSummary {
	summary := &ProjectSummary{
		ID:         p.ID,
		Name:       p.Name,
		State:      p.State,
		Progress:   p.Progress,
		URL:        p.URL,
		Lead:       UserRef(lead),
		Teams:      make([]EntityRef, 0, len(teams)),
		StartDate:  p.StartDate,
		TargetDate: p.TargetDate,
	}
	for _, t := range teams {
		summary.Teams = append(summary.Teams, EntityRef{ID: t.ID, Name: t.Name})
	}
	return summary
}

// ProjectRelations bundles the relation set get_project promises.
type ProjectRelations struct {
	Lead    *User
	Teams   []Team
	Members []User
	Links   []ProjectLink
	Issues  []IssueRef
}

// FlattenProjectDetail builds the get_project record.
func FlattenProjectDetail(p *Project, rel *ProjectRelations) *ProjectDetail {
	detail := &ProjectDetail{
		ProjectSummary: *FlattenProjectSummary(p, rel.Lead, rel.Teams),
		Description:    p.Description,
		Content:        p.Content,
		Members:        make([]MemberInfo, 0, len(rel.Members)),
		Links:          make([]FlatProjectLink, 0, len(rel.Links)),
		Issues:         make([]FlatIssueRef, 0, len(rel.Issues)),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	for _, m := range rel.Members {
		detail.Members = append(detail.Members, *FlattenMember(&m))
	}
	for _, l := range rel.Links {
		detail.Links = append(detail.Links, FlatProjectLink{ID: l.ID, URL: l.URL, Label: l.Label})
	}
	for _, ref := range rel.Issues {
		r := ref
		detail.Issues = append(detail.Issues, *issueRef(&r))
	}
	return detail
}

// markdownImagePattern matches markdown image syntax ![alt](url) and
// captures the URL up to the first whitespace or closing parenthesis.
var markdownImagePattern = regexp.MustCompile(`!\[[^\]]*\]\(([^)\s]+)[^)]*\)`)

// ExtractEmbeddedImages returns the URLs of markdown images embedded
// in the given text, in source order. It never fails; text without
// image syntax yields an empty list.
func ExtractEmbeddedImages(text string) []string {
	urls := []string{}
	for _, match := range markdownImagePattern.FindAllStringSubmatch(text, -1) {
		urls = append(urls, match[1])
	}
	return urls
}
