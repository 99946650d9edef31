package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tracekit/jirabridge/internal/domain"
)

// createIssue resolves identifiers and creates an issue.
//
// Resolution is sequential: project and issue type must resolve before
// anything else matters, and the project key is input to the component
// lookup. Project and issue type hard-fail; priority and components are
// best-effort and degrade to warnings. No mutation happens until every
// mandatory resolution has succeeded, so there is nothing to roll back.
func (t *Toolset) createIssue(ctx context.Context, args map[string]any) (*domain.ToolResult, error) {
	projectKey, _ := stringArg(args, "projectKey")
	summary, _ := stringArg(args, "summary")
	issueType, _ := stringArg(args, "issueType")

	project, err := t.resolver.Project(ctx, projectKey)
	if err != nil {
		return nil, err
	}

	issueTypeID, err := t.resolver.IssueType(ctx, issueType)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"project":   map[string]any{"id": project.ID.String()},
		"issuetype": map[string]any{"id": issueTypeID},
		"summary":   summary,
	}

	var warnings []domain.Warning

	if description, ok := stringArg(args, "description"); ok {
		fields["description"] = description
	}
	if assignee, ok := stringArg(args, "assignee"); ok {
		fields["assignee"] = t.assigneeRef(assignee)
	}
	if labels := stringSliceArg(args, "labels"); len(labels) > 0 {
		fields["labels"] = labels
	}
	if priority, ok := stringArg(args, "priority"); ok {
		if priorityID, resolved := t.resolver.Priority(ctx, priority); resolved {
			fields["priority"] = map[string]any{"id": priorityID}
		} else {
			warnings = append(warnings, domain.Warning{
				Field:   "priority",
				Message: fmt.Sprintf("priority %q not found, created without priority", priority),
			})
		}
	}
	if components := stringSliceArg(args, "components"); len(components) > 0 {
		ids, componentWarnings := t.resolver.Components(ctx, projectKey, components)
		warnings = append(warnings, componentWarnings...)
		if len(ids) > 0 {
			refs := make([]map[string]any, len(ids))
			for i, id := range ids {
				refs[i] = map[string]any{"id": id}
			}
			fields["components"] = refs
		}
	}

	created, err := t.jira.CreateIssue(ctx, domain.IssuePayload{Fields: fields})
	if err != nil {
		return nil, err
	}

	t.logger.Info("Issue created.", slog.String("key", created.Key), slog.String("project", projectKey))
	return domain.NewToolResult(created, warnings...), nil
}
