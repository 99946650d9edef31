package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tracekit/jirabridge/internal/domain"
)

// Toolset implements the business logic behind every registered tool.
// Dependencies are injected at construction; no global client handles.
type Toolset struct {
	jira             JiraGateway
	resolver         *Resolver
	logger           *slog.Logger
	assigneeMode     string
	searchMaxResults int
}

// NewToolset creates the tool handlers. assigneeMode is one of the
// configs.AssigneeMode* values; searchMaxResults caps search pages.
func NewToolset(jira JiraGateway, logger *slog.Logger, assigneeMode string, searchMaxResults int) *Toolset {
	return &Toolset{
		jira:             jira,
		resolver:         NewResolver(jira, logger),
		logger:           logger.With("component", "toolset"),
		assigneeMode:     assigneeMode,
		searchMaxResults: searchMaxResults,
	}
}

// Handlers returns the name → handler table consumed by the dispatcher.
func (t *Toolset) Handlers() map[string]Handler {
	return map[string]Handler{
		ToolDeleteIssue:       HandlerFunc(t.deleteIssue),
		ToolGetIssues:         HandlerFunc(t.getIssues),
		ToolGetAssignedIssues: HandlerFunc(t.getAssignedIssues),
		ToolUpdateIssue:       HandlerFunc(t.updateIssue),
		ToolListFields:        HandlerFunc(t.listFields),
		ToolListIssueTypes:    HandlerFunc(t.listIssueTypes),
		ToolListLinkTypes:     HandlerFunc(t.listLinkTypes),
		ToolGetUser:           HandlerFunc(t.getUser),
		ToolCreateIssue:       HandlerFunc(t.createIssue),
		ToolCreateIssueLink:   HandlerFunc(t.createIssueLink),
		ToolGetIssue:          HandlerFunc(t.getIssue),
	}
}

// stringArg extracts a non-empty string argument.
func stringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key].(string)
	return v, ok && v != ""
}

// intArg extracts an integer argument. JSON numbers decode as float64.
func intArg(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// stringSliceArg extracts a list-of-strings argument.
func stringSliceArg(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// assigneeRef shapes an assignee argument according to the configured
// convention.
func (t *Toolset) assigneeRef(value string) map[string]any {
	if t.assigneeMode == "name" {
		return map[string]any{"name": value}
	}
	return map[string]any{"accountId": value}
}

func (t *Toolset) getIssue(ctx context.Context, args map[string]any) (*domain.ToolResult, error) {
	issueKey, _ := stringArg(args, "issueKey")
	issue, err := t.jira.GetIssue(ctx, issueKey)
	if err != nil {
		return nil, err
	}
	return domain.NewToolResult(issue), nil
}

func (t *Toolset) deleteIssue(ctx context.Context, args map[string]any) (*domain.ToolResult, error) {
	issueKey, _ := stringArg(args, "issueKey")
	if err := t.jira.DeleteIssue(ctx, issueKey); err != nil {
		return nil, err
	}
	return domain.NewToolResult(map[string]any{
		"message":  fmt.Sprintf("issue %s deleted", issueKey),
		"issueKey": issueKey,
	}), nil
}

func (t *Toolset) getIssues(ctx context.Context, args map[string]any) (*domain.ToolResult, error) {
	extra, _ := stringArg(args, "jql")

	var base string
	if projectKey, ok := stringArg(args, "projectKey"); ok {
		base = projectJQL(projectKey, extra)
	} else if boardID, ok := intArg(args, "rapidView"); ok {
		// Board id -> board filter -> filter JQL. Two reads before the
		// search itself.
		config, err := t.jira.GetBoardConfiguration(ctx, boardID)
		if err != nil {
			return nil, err
		}
		filter, err := t.jira.GetFilter(ctx, config.Filter.ID.String())
		if err != nil {
			return nil, err
		}
		base = andJQL(filter.JQL, extra)
	} else {
		return nil, domain.NewToolError(domain.CodeInvalidInput, "either projectKey or rapidView must be provided")
	}

	results, err := t.jira.Search(ctx, base, t.searchMaxResults)
	if err != nil {
		return nil, err
	}
	return domain.NewToolResult(results), nil
}

func (t *Toolset) getAssignedIssues(ctx context.Context, args map[string]any) (*domain.ToolResult, error) {
	accountID, _ := stringArg(args, "accountId")
	status, _ := stringArg(args, "status")
	extra, _ := stringArg(args, "additionalJql")

	results, err := t.jira.Search(ctx, assignedJQL(accountID, status, extra), t.searchMaxResults)
	if err != nil {
		return nil, err
	}
	return domain.NewToolResult(results), nil
}

func (t *Toolset) listFields(ctx context.Context, _ map[string]any) (*domain.ToolResult, error) {
	fields, err := t.jira.ListFields(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewToolResult(fields), nil
}

func (t *Toolset) listIssueTypes(ctx context.Context, _ map[string]any) (*domain.ToolResult, error) {
	types, err := t.jira.ListIssueTypes(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewToolResult(types), nil
}

func (t *Toolset) listLinkTypes(ctx context.Context, _ map[string]any) (*domain.ToolResult, error) {
	linkTypes, err := t.jira.ListLinkTypes(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewToolResult(linkTypes), nil
}

func (t *Toolset) getUser(ctx context.Context, args map[string]any) (*domain.ToolResult, error) {
	email, _ := stringArg(args, "email")
	user, err := t.resolver.UserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return domain.NewToolResult(user), nil
}

func (t *Toolset) createIssueLink(ctx context.Context, args map[string]any) (*domain.ToolResult, error) {
	inward, _ := stringArg(args, "inwardIssueKey")
	outward, _ := stringArg(args, "outwardIssueKey")
	linkType, _ := stringArg(args, "linkType")

	req := domain.LinkRequest{
		Type:         domain.LinkTypeRef{Name: linkType},
		InwardIssue:  domain.IssueRef{Key: inward},
		OutwardIssue: domain.IssueRef{Key: outward},
	}
	if err := t.jira.LinkIssues(ctx, req); err != nil {
		return nil, err
	}
	return domain.NewToolResult(map[string]any{
		"message": fmt.Sprintf("linked %s to %s as %q", inward, outward, linkType),
	}), nil
}
