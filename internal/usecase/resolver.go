package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tracekit/jirabridge/internal/domain"
)

// Resolver translates the human-readable identifiers tool callers use
// (project keys, issue-type names, priority names, status names, emails)
// into the IDs the Jira API requires. Matching is always case-insensitive
// and exact.
//
// Project and issue type are mandatory for a valid mutation, so their
// lookups hard-fail. Priority, components, and transitions are optional
// enhancements: their lookups degrade to "absent" and the caller proceeds
// without them.
type Resolver struct {
	jira   JiraGateway
	logger *slog.Logger
}

// NewResolver creates a Resolver backed by the given gateway.
func NewResolver(jira JiraGateway, logger *slog.Logger) *Resolver {
	return &Resolver{
		jira:   jira,
		logger: logger.With("component", "resolver"),
	}
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Project resolves a project key to the project record. Failure is fatal
// to the calling operation.
func (r *Resolver) Project(ctx context.Context, projectKey string) (*domain.Project, error) {
	project, err := r.jira.GetProject(ctx, projectKey)
	if err != nil {
		return nil, domain.WrapToolError(domain.CodeResolutionFailure, err, "project %q could not be resolved", projectKey)
	}
	return project, nil
}

// IssueType resolves an issue-type name to its ID. Failure is fatal to
// the calling operation.
func (r *Resolver) IssueType(ctx context.Context, name string) (string, error) {
	types, err := r.jira.ListIssueTypes(ctx)
	if err != nil {
		return "", domain.WrapToolError(domain.CodeResolutionFailure, err, "issue types could not be listed")
	}
	for _, t := range types {
		if equalFold(t.Name, name) {
			return t.ID.String(), nil
		}
	}
	return "", domain.NewToolError(domain.CodeResolutionFailure, "issue type %q not found", name)
}

// Priority resolves a priority name to its ID, best-effort. On no match
// or remote error it returns ok=false and the caller proceeds without a
// priority.
func (r *Resolver) Priority(ctx context.Context, name string) (string, bool) {
	priorities, err := r.jira.ListPriorities(ctx)
	if err != nil {
		r.logger.Warn("Priority lookup failed, continuing without priority.",
			slog.String("priority", name), slog.Any("error", err))
		return "", false
	}
	for _, p := range priorities {
		if equalFold(p.Name, name) {
			return p.ID.String(), true
		}
	}
	r.logger.Warn("Priority not found, continuing without priority.", slog.String("priority", name))
	return "", false
}

// Components resolves component names to IDs within a project,
// best-effort per name. Unmatched names are dropped and reported as
// warnings rather than failing the operation.
func (r *Resolver) Components(ctx context.Context, projectKey string, names []string) ([]string, []domain.Warning) {
	if len(names) == 0 {
		return nil, nil
	}
	components, err := r.jira.ListComponents(ctx, projectKey)
	if err != nil {
		r.logger.Warn("Component lookup failed, continuing without components.",
			slog.String("project", projectKey), slog.Any("error", err))
		return nil, []domain.Warning{{
			Field:   "components",
			Message: fmt.Sprintf("components of project %q could not be listed", projectKey),
		}}
	}
	var ids []string
	var warnings []domain.Warning
	for _, name := range names {
		found := false
		for _, c := range components {
			if equalFold(c.Name, name) {
				ids = append(ids, c.ID.String())
				found = true
				break
			}
		}
		if !found {
			r.logger.Warn("Component not found, dropping.", slog.String("component", name))
			warnings = append(warnings, domain.Warning{
				Field:   "components",
				Message: fmt.Sprintf("component %q not found in project %q", name, projectKey),
			})
		}
	}
	return ids, warnings
}

// Transition resolves a target status name to the ID of a transition
// whose destination state matches, best-effort. ok=false means no such
// transition is currently available on the issue.
func (r *Resolver) Transition(ctx context.Context, issueKey, targetStatus string) (string, bool) {
	transitions, err := r.jira.ListTransitions(ctx, issueKey)
	if err != nil {
		r.logger.Warn("Transition lookup failed, skipping status change.",
			slog.String("issue", issueKey), slog.Any("error", err))
		return "", false
	}
	for _, t := range transitions {
		if equalFold(t.To.Name, targetStatus) {
			return t.ID.String(), true
		}
	}
	r.logger.Warn("No transition to target status, skipping status change.",
		slog.String("issue", issueKey), slog.String("status", targetStatus))
	return "", false
}

// UserByEmail resolves an email address to a user record. The candidate
// returned by the search must itself carry a case-insensitively matching
// email; otherwise the lookup fails with a not-found error.
func (r *Resolver) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.jira.FindUsers(ctx, email)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if equalFold(users[i].EmailAddress, email) {
			return &users[i], nil
		}
	}
	return nil, domain.NewToolError(domain.CodeNotFound, "no user found with email %q", email)
}
