package usecase

import (
	"encoding/json"
	"fmt"

	"github.com/tracekit/jirabridge/internal/domain"
)

// Registry is the static tool catalog. It is built once at startup and
// read-only afterwards; List preserves declaration order.
type Registry struct {
	specs  []domain.ToolSpec
	byName map[string]*domain.ToolSpec
}

// NewRegistry builds the catalog from the default tool specs.
func NewRegistry() (*Registry, error) {
	return newRegistry(toolSpecs())
}

func newRegistry(specs []domain.ToolSpec) (*Registry, error) {
	r := &Registry{specs: specs, byName: make(map[string]*domain.ToolSpec, len(specs))}
	for i := range r.specs {
		spec := &r.specs[i]
		if _, dup := r.byName[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate tool name %q", spec.Name)
		}
		r.byName[spec.Name] = spec
	}
	return r, nil
}

// List returns the tool specs in declaration order.
func (r *Registry) List() []domain.ToolSpec {
	return r.specs
}

// Find returns the spec for a tool name, or nil if unknown.
func (r *Registry) Find(name string) *domain.ToolSpec {
	return r.byName[name]
}

// Tool names.
const (
	ToolDeleteIssue       = "delete_issue"
	ToolGetIssues         = "get_issues"
	ToolGetAssignedIssues = "get_assigned_issues"
	ToolUpdateIssue       = "update_issue"
	ToolListFields        = "list_fields"
	ToolListIssueTypes    = "list_issue_types"
	ToolListLinkTypes     = "list_link_types"
	ToolGetUser           = "get_user"
	ToolCreateIssue       = "create_issue"
	ToolCreateIssueLink   = "create_issue_link"
	ToolGetIssue          = "get_issue"
)

func toolSpecs() []domain.ToolSpec {
	return []domain.ToolSpec{
		{
			Name:        ToolDeleteIssue,
			Description: "Delete a Jira issue by its key",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"issueKey": {"type": "string", "description": "The issue key (e.g., TEST-123)"}
				},
				"required": ["issueKey"]
			}`),
		},
		{
			Name:        ToolGetIssues,
			Description: "Get issues of a project or an agile board, optionally filtered by extra JQL",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"projectKey": {"type": "string", "description": "The project key (e.g., TEST)"},
					"rapidView": {"type": "integer", "description": "The agile board (rapid view) id"},
					"jql": {"type": "string", "description": "Additional JQL ANDed onto the base filter"}
				}
			}`),
		},
		{
			Name:        ToolGetAssignedIssues,
			Description: "Get issues assigned to an account, currently, in the past, or both",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"accountId": {"type": "string", "description": "The account id of the assignee"},
					"status": {"type": "string", "enum": ["current", "past", "all"], "description": "Assignment window (default: current)"},
					"additionalJql": {"type": "string", "description": "Additional JQL ANDed onto the assignee filter"}
				},
				"required": ["accountId"]
			}`),
		},
		{
			Name:        ToolUpdateIssue,
			Description: "Update fields of a Jira issue and/or transition it to a new status",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"issueKey": {"type": "string", "description": "The issue key (e.g., TEST-123)"},
					"summary": {"type": "string", "description": "New summary"},
					"description": {"type": "string", "description": "New description"},
					"assignee": {"type": "string", "description": "New assignee reference"},
					"status": {"type": "string", "description": "Target status name (resolved to a transition)"},
					"priority": {"type": "string", "description": "New priority name"}
				},
				"required": ["issueKey"],
				"minProperties": 2
			}`),
		},
		{
			Name:        ToolListFields,
			Description: "List all Jira field definitions, system and custom",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
		{
			Name:        ToolListIssueTypes,
			Description: "List all available issue types",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
		{
			Name:        ToolListLinkTypes,
			Description: "List all available issue link types",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
		{
			Name:        ToolGetUser,
			Description: "Look up a Jira user by email address",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"email": {"type": "string", "description": "The user's email address"}
				},
				"required": ["email"]
			}`),
		},
		{
			Name:        ToolCreateIssue,
			Description: "Create a new Jira issue",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"projectKey": {"type": "string", "description": "The project key (e.g., TEST)"},
					"summary": {"type": "string", "description": "The issue summary"},
					"issueType": {"type": "string", "description": "The issue type name (e.g., Bug, Story, Task)"},
					"description": {"type": "string", "description": "The issue description"},
					"assignee": {"type": "string", "description": "Assignee reference"},
					"labels": {"type": "array", "items": {"type": "string"}, "description": "Labels to set"},
					"components": {"type": "array", "items": {"type": "string"}, "description": "Component names to set"},
					"priority": {"type": "string", "description": "Priority name"}
				},
				"required": ["projectKey", "summary", "issueType"]
			}`),
		},
		{
			Name:        ToolCreateIssueLink,
			Description: "Link two Jira issues with a named link type",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"inwardIssueKey": {"type": "string", "description": "The inward issue key"},
					"outwardIssueKey": {"type": "string", "description": "The outward issue key"},
					"linkType": {"type": "string", "description": "The link type name (e.g., Blocks)"}
				},
				"required": ["inwardIssueKey", "outwardIssueKey", "linkType"]
			}`),
		},
		{
			Name:        ToolGetIssue,
			Description: "Retrieve a Jira issue by its key",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"issueKey": {"type": "string", "description": "The issue key (e.g., TEST-123)"}
				},
				"required": ["issueKey"]
			}`),
		},
	}
}
