package domain

import (
	"encoding/json"
	"fmt"
)

// FlexibleID unmarshals both string and numeric IDs. Jira Server returns
// numeric IDs in a few places where Cloud returns strings.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleID(n.String())
		return nil
	}
	return fmt.Errorf("id must be a string or number")
}

func (f FlexibleID) String() string { return string(f) }

// Issue is the main entity returned by read operations.
type Issue struct {
	ID     FlexibleID  `json:"id"`
	Key    string      `json:"key"`
	Self   string      `json:"self,omitempty"`
	Fields IssueFields `json:"fields"`
}

// IssueFields holds the subset of issue fields this server works with.
type IssueFields struct {
	Summary     string      `json:"summary"`
	Description string      `json:"description,omitempty"`
	IssueType   IssueType   `json:"issuetype"`
	Project     Project     `json:"project"`
	Status      Status      `json:"status"`
	Priority    *Priority   `json:"priority,omitempty"`
	Assignee    *User       `json:"assignee,omitempty"`
	Reporter    *User       `json:"reporter,omitempty"`
	Labels      []string    `json:"labels,omitempty"`
	Components  []Component `json:"components,omitempty"`
	Created     string      `json:"created,omitempty"`
	Updated     string      `json:"updated,omitempty"`
}

// IssueType is a Jira issue type (Bug, Story, Task, ...).
type IssueType struct {
	ID      FlexibleID `json:"id"`
	Name    string     `json:"name"`
	Subtask bool       `json:"subtask,omitempty"`
}

// Project is a Jira project.
type Project struct {
	ID   FlexibleID `json:"id"`
	Key  string     `json:"key"`
	Name string     `json:"name,omitempty"`
}

// Status is an issue workflow state.
type Status struct {
	ID   FlexibleID `json:"id"`
	Name string     `json:"name"`
}

// Priority is an issue priority level.
type Priority struct {
	ID   FlexibleID `json:"id"`
	Name string     `json:"name"`
}

// Component is a project component.
type Component struct {
	ID   FlexibleID `json:"id"`
	Name string     `json:"name"`
}

// User is a Jira account.
type User struct {
	AccountID    string `json:"accountId,omitempty"`
	Name         string `json:"name,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Active       bool   `json:"active,omitempty"`
}

// Transition is a workflow edge available on an issue. To names the
// destination status, which is what callers match against; the transition
// ID itself is the opaque value the API wants back.
type Transition struct {
	ID   FlexibleID `json:"id"`
	Name string     `json:"name"`
	To   Status     `json:"to"`
}

// SearchResults is one page of a JQL search.
type SearchResults struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// CreatedIssue is the reference returned by the create-issue endpoint.
type CreatedIssue struct {
	ID   FlexibleID `json:"id"`
	Key  string     `json:"key"`
	Self string     `json:"self,omitempty"`
}

// Board is an agile board (rapid view).
type Board struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// BoardConfiguration carries the board's saved filter reference.
type BoardConfiguration struct {
	ID     int       `json:"id"`
	Name   string    `json:"name,omitempty"`
	Filter FilterRef `json:"filter"`
}

// FilterRef points at a saved filter by ID.
type FilterRef struct {
	ID FlexibleID `json:"id"`
}

// Filter is a saved search with its JQL text.
type Filter struct {
	ID   FlexibleID `json:"id"`
	Name string     `json:"name,omitempty"`
	JQL  string     `json:"jql"`
}

// LinkType describes an issue link relationship (Blocks, Duplicates, ...).
type LinkType struct {
	ID      FlexibleID `json:"id"`
	Name    string     `json:"name"`
	Inward  string     `json:"inward"`
	Outward string     `json:"outward"`
}

// Field is a field definition from the fields catalog.
type Field struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

// IssuePayload is the request body for create and edit mutations. Fields
// are assembled dynamically because optional members are included only
// when their resolution succeeded.
type IssuePayload struct {
	Fields map[string]any `json:"fields"`
}

// TransitionPayload applies a workflow transition by ID.
type TransitionPayload struct {
	Transition TransitionRef `json:"transition"`
}

// TransitionRef references a transition by its opaque ID.
type TransitionRef struct {
	ID string `json:"id"`
}

// LinkRequest links two issues with a named link type.
type LinkRequest struct {
	Type         LinkTypeRef `json:"type"`
	InwardIssue  IssueRef    `json:"inwardIssue"`
	OutwardIssue IssueRef    `json:"outwardIssue"`
}

// LinkTypeRef references a link type by name.
type LinkTypeRef struct {
	Name string `json:"name"`
}

// IssueRef references an issue by key.
type IssueRef struct {
	Key string `json:"key"`
}
