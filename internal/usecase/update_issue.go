package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tracekit/jirabridge/internal/domain"
)

// updateIssue edits issue fields and/or transitions the issue.
//
// The field update always runs before the transition, so field changes
// apply to the pre-transition state. The assignee argument is passed
// through shaped by the configured convention, without a lookup. Priority
// and status are best-effort: an unresolvable value is dropped with a
// warning. If nothing remains to do, the call returns a no-op success
// without touching the remote API.
func (t *Toolset) updateIssue(ctx context.Context, args map[string]any) (*domain.ToolResult, error) {
	issueKey, _ := stringArg(args, "issueKey")

	fields := map[string]any{}
	var warnings []domain.Warning

	if summary, ok := stringArg(args, "summary"); ok {
		fields["summary"] = summary
	}
	if description, ok := stringArg(args, "description"); ok {
		fields["description"] = description
	}
	if assignee, ok := stringArg(args, "assignee"); ok {
		fields["assignee"] = t.assigneeRef(assignee)
	}
	if priority, ok := stringArg(args, "priority"); ok {
		if priorityID, resolved := t.resolver.Priority(ctx, priority); resolved {
			fields["priority"] = map[string]any{"id": priorityID}
		} else {
			warnings = append(warnings, domain.Warning{
				Field:   "priority",
				Message: fmt.Sprintf("priority %q not found, left unchanged", priority),
			})
		}
	}

	transitionID := ""
	if status, ok := stringArg(args, "status"); ok {
		if id, resolved := t.resolver.Transition(ctx, issueKey, status); resolved {
			transitionID = id
		} else {
			warnings = append(warnings, domain.Warning{
				Field:   "status",
				Message: fmt.Sprintf("no transition to status %q available, status left unchanged", status),
			})
		}
	}

	if len(fields) == 0 && transitionID == "" {
		return domain.NewToolResult(map[string]any{
			"message":  fmt.Sprintf("no changes applied to %s", issueKey),
			"issueKey": issueKey,
		}, warnings...), nil
	}

	if len(fields) > 0 {
		if err := t.jira.UpdateIssue(ctx, issueKey, domain.IssuePayload{Fields: fields}); err != nil {
			return nil, err
		}
	}
	if transitionID != "" {
		if err := t.jira.ApplyTransition(ctx, issueKey, transitionID); err != nil {
			return nil, err
		}
	}

	issue, err := t.jira.GetIssue(ctx, issueKey)
	if err != nil {
		return nil, err
	}
	t.logger.Info("Issue updated.", slog.String("key", issueKey),
		slog.Int("fields", len(fields)), slog.Bool("transitioned", transitionID != ""))
	return domain.NewToolResult(issue, warnings...), nil
}
