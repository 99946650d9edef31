package usecase

import (
	"context"

	"github.com/tracekit/jirabridge/internal/domain"
)

// JiraGateway is the outbound port to the issue tracker. The adapter in
// internal/adapter/outbound/jira implements it; tests substitute fakes.
type JiraGateway interface {
	GetIssue(ctx context.Context, issueKey string) (*domain.Issue, error)
	CreateIssue(ctx context.Context, payload domain.IssuePayload) (*domain.CreatedIssue, error)
	UpdateIssue(ctx context.Context, issueKey string, payload domain.IssuePayload) error
	DeleteIssue(ctx context.Context, issueKey string) error
	Search(ctx context.Context, jql string, maxResults int) (*domain.SearchResults, error)

	GetProject(ctx context.Context, projectKey string) (*domain.Project, error)
	ListIssueTypes(ctx context.Context) ([]domain.IssueType, error)
	ListPriorities(ctx context.Context) ([]domain.Priority, error)
	ListComponents(ctx context.Context, projectKey string) ([]domain.Component, error)
	ListTransitions(ctx context.Context, issueKey string) ([]domain.Transition, error)
	ApplyTransition(ctx context.Context, issueKey, transitionID string) error
	FindUsers(ctx context.Context, query string) ([]domain.User, error)

	GetBoard(ctx context.Context, boardID int) (*domain.Board, error)
	GetBoardConfiguration(ctx context.Context, boardID int) (*domain.BoardConfiguration, error)
	GetFilter(ctx context.Context, filterID string) (*domain.Filter, error)

	LinkIssues(ctx context.Context, req domain.LinkRequest) error
	ListFields(ctx context.Context) ([]domain.Field, error)
	ListLinkTypes(ctx context.Context) ([]domain.LinkType, error)
}

// Handler executes one tool. Implementations return either a ToolResult
// or an error; the dispatcher classifies errors into the taxonomy.
type Handler interface {
	Invoke(ctx context.Context, args map[string]any) (*domain.ToolResult, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, args map[string]any) (*domain.ToolResult, error)

// Invoke calls f.
func (f HandlerFunc) Invoke(ctx context.Context, args map[string]any) (*domain.ToolResult, error) {
	return f(ctx, args)
}
