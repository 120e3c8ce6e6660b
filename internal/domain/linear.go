package domain

// User represents a Linear workspace member.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Active      bool   `json:"active"`
}

// Team represents a Linear team.
type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Key         string `json:"key"`
	Description string `json:"description"`
}

// WorkflowState represents one state in a team's issue workflow.
// States are ordered by Position within their team.
type WorkflowState struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Color    string  `json:"color"`
	Type     string  `json:"type"` // triage, backlog, unstarted, started, completed, canceled
	Position float64 `json:"position"`
}

// ProjectStatus represents one entry in the organization-level
// project status catalogue.
type ProjectStatus struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

// Label represents an issue label. Labels are owned by a team, or by
// the workspace when Team is nil.
type Label struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
	Team        *Team  `json:"team,omitempty"`
}

// Issue represents a Linear issue. Only scalar fields are populated by
// the base issue query; relations (state, assignee, labels, ...) are
// fetched through their own API calls.
type Issue struct {
	ID          string   `json:"id"`
	Identifier  string   `json:"identifier"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Priority    int      `json:"priority"` // 0 (none) through 4
	Estimate    *float64 `json:"estimate"`
	DueDate     *string  `json:"dueDate"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
	StartedAt   *string  `json:"startedAt"`
	CompletedAt *string  `json:"completedAt"`
	CanceledAt  *string  `json:"canceledAt"`
	ArchivedAt  *string  `json:"archivedAt"`
}

// IssueRef is a minimal reference to an issue used inside relations.
type IssueRef struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
}

// Comment represents a comment on an issue, ordered oldest first.
type Comment struct {
	ID        string `json:"id"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
	User      *User  `json:"user"`
}

// Attachment represents a file or URL attached to an issue.
type Attachment struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// IssueRelation links two issues (blocks, duplicate, related, ...).
type IssueRelation struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	RelatedIssue *IssueRef `json:"relatedIssue"`
}

// Cycle represents a team iteration an issue may belong to.
type Cycle struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Number   int    `json:"number"`
	StartsAt string `json:"startsAt"`
	EndsAt   string `json:"endsAt"`
}

// Project represents a Linear project. Relations (lead, teams, members,
// issues, external links) resolve through their own API calls.
type Project struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Content     string  `json:"content"`
	State       string  `json:"state"`
	Progress    float64 `json:"progress"` // 0..1
	URL         string  `json:"url"`
	StartDate   *string `json:"startDate"`
	TargetDate  *string `json:"targetDate"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ProjectLink is an external URL attached to a project.
type ProjectLink struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Label string `json:"label"`
}

// IssueFilter narrows issue listing. Zero-valued fields are omitted
// from the API filter.
type IssueFilter struct {
	TeamID     string
	AssigneeID string
	StateID    string
}

// ProjectFilter narrows project listing.
type ProjectFilter struct {
	TeamID string
}

// IssueCreateInput carries fields for issue creation. Pointer fields
// distinguish "not sent" (nil) from an explicit value.
type IssueCreateInput struct {
	TeamID      string
	Title       string
	Description *string
	Priority    *int
	StateID     *string
	AssigneeID  *string
	ParentID    *string
	LabelIDs    []string
	DueDate     *string
	Estimate    *float64
}

// IssueUpdateInput carries fields for issue update. Only non-nil
// fields are sent; ClearAssignee sends an explicit null to remove the
// current assignee, which is distinct from leaving the field alone.
type IssueUpdateInput struct {
	Title         *string
	Description   *string
	Priority      *int
	StateID       *string
	AssigneeID    *string
	ClearAssignee bool
}

// LabelCreateInput carries fields for label creation.
type LabelCreateInput struct {
	TeamID      string
	Name        string
	Color       *string
	Description *string
}

// LabelUpdateInput carries fields for label update.
type LabelUpdateInput struct {
	Name        *string
	Color       *string
	Description *string
}

// ProjectCreateInput carries fields for project creation.
type ProjectCreateInput struct {
	Name        string
	TeamIDs     []string
	Description *string
	Content     *string
	State       *string
	LeadID      *string
	StartDate   *string
	TargetDate  *string
}

// ProjectUpdateInput carries fields for project update. ClearLead
// sends an explicit null to remove the current lead.
type ProjectUpdateInput struct {
	Name        *string
	Description *string
	Content     *string
	State       *string
	LeadID      *string
	ClearLead   bool
	StartDate   *string
	TargetDate  *string
}

// ProjectStateNames is the closed set of values the service accepts
// for Project.State. There is no API query enumerating these, so the
// catalogue is fixed here.
var ProjectStateNames = []string{
	"backlog",
	"planned",
	"started",
	"paused",
	"completed",
	"canceled",
}
