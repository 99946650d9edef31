// Package jira implements the outbound adapter for the Jira REST API
// (core v2 plus the Agile 1.0 board endpoints).
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/tracekit/jirabridge/internal/domain"
)

const tracerName = "github.com/tracekit/jirabridge/internal/adapter/outbound/jira"

// Client talks to one Jira instance with basic auth (email + API token).
// It is safe for concurrent use; all state is read-only after construction.
type Client struct {
	baseURL  string
	email    string
	apiToken string
	client   *http.Client
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewClient creates a Jira API client. The baseURL is the root URL of the
// instance (e.g. "https://example.atlassian.net").
func NewClient(baseURL, email, apiToken string, client *http.Client, logger *slog.Logger) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		email:    email,
		apiToken: apiToken,
		client:   client,
		logger:   logger.With("component", "jira_client"),
		tracer:   otel.Tracer(tracerName),
	}
}

// errorBodyLimit bounds how much of an upstream error body is kept for
// the error message.
const errorBodyLimit = 2048

// do executes one API call: marshals the body if present, sets auth and
// JSON headers, checks the status against wantStatus, and decodes the
// response into out when out is non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any, wantStatus ...int) error {
	ctx, span := c.tracer.Start(ctx, "jira."+op)
	defer span.End()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.With(slog.String("op", op), slog.String("method", method), slog.String("path", path))
	log.Debug("Executing Jira request.")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Error("Jira request failed.", slog.Any("error", err))
		return fmt.Errorf("failed to execute %s request: %w", op, err)
	}
	defer resp.Body.Close()

	ok := false
	for _, s := range wantStatus {
		if resp.StatusCode == s {
			ok = true
			break
		}
	}
	if !ok {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		log.Warn("Jira returned unexpected status.", slog.Int("status", resp.StatusCode))
		return &domain.StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", op, err)
		}
	}
	return nil
}

// GetIssue retrieves an issue by key (e.g. "TEST-123").
func (c *Client) GetIssue(ctx context.Context, issueKey string) (*domain.Issue, error) {
	var issue domain.Issue
	err := c.do(ctx, "get_issue", http.MethodGet, "/rest/api/2/issue/"+url.PathEscape(issueKey), nil, nil, &issue, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// CreateIssue creates a new issue and returns its assigned key and ID.
func (c *Client) CreateIssue(ctx context.Context, payload domain.IssuePayload) (*domain.CreatedIssue, error) {
	var created domain.CreatedIssue
	err := c.do(ctx, "create_issue", http.MethodPost, "/rest/api/2/issue", nil, payload, &created, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateIssue edits the fields of an existing issue.
func (c *Client) UpdateIssue(ctx context.Context, issueKey string, payload domain.IssuePayload) error {
	return c.do(ctx, "update_issue", http.MethodPut, "/rest/api/2/issue/"+url.PathEscape(issueKey), nil, payload, nil,
		http.StatusNoContent, http.StatusOK)
}

// DeleteIssue deletes an issue by key.
func (c *Client) DeleteIssue(ctx context.Context, issueKey string) error {
	return c.do(ctx, "delete_issue", http.MethodDelete, "/rest/api/2/issue/"+url.PathEscape(issueKey), nil, nil, nil,
		http.StatusNoContent)
}

// Search runs a JQL query and returns one page of results.
func (c *Client) Search(ctx context.Context, jql string, maxResults int) (*domain.SearchResults, error) {
	q := url.Values{}
	q.Set("jql", jql)
	if maxResults > 0 {
		q.Set("maxResults", strconv.Itoa(maxResults))
	}
	var results domain.SearchResults
	err := c.do(ctx, "search", http.MethodGet, "/rest/api/2/search", q, nil, &results, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &results, nil
}

// GetProject retrieves a project by key or ID.
func (c *Client) GetProject(ctx context.Context, projectKey string) (*domain.Project, error) {
	var project domain.Project
	err := c.do(ctx, "get_project", http.MethodGet, "/rest/api/2/project/"+url.PathEscape(projectKey), nil, nil, &project, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListIssueTypes returns every issue type visible to the account.
func (c *Client) ListIssueTypes(ctx context.Context) ([]domain.IssueType, error) {
	var types []domain.IssueType
	err := c.do(ctx, "list_issue_types", http.MethodGet, "/rest/api/2/issuetype", nil, nil, &types, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return types, nil
}

// ListPriorities returns the global priority catalog.
func (c *Client) ListPriorities(ctx context.Context) ([]domain.Priority, error) {
	var priorities []domain.Priority
	err := c.do(ctx, "list_priorities", http.MethodGet, "/rest/api/2/priority", nil, nil, &priorities, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return priorities, nil
}

// ListComponents returns the components of a project.
func (c *Client) ListComponents(ctx context.Context, projectKey string) ([]domain.Component, error) {
	var components []domain.Component
	err := c.do(ctx, "list_components", http.MethodGet,
		"/rest/api/2/project/"+url.PathEscape(projectKey)+"/components", nil, nil, &components, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return components, nil
}

type transitionsResponse struct {
	Transitions []domain.Transition `json:"transitions"`
}

// ListTransitions returns the workflow transitions currently available on
// an issue.
func (c *Client) ListTransitions(ctx context.Context, issueKey string) ([]domain.Transition, error) {
	var resp transitionsResponse
	err := c.do(ctx, "list_transitions", http.MethodGet,
		"/rest/api/2/issue/"+url.PathEscape(issueKey)+"/transitions", nil, nil, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return resp.Transitions, nil
}

// ApplyTransition moves an issue along a workflow transition.
func (c *Client) ApplyTransition(ctx context.Context, issueKey, transitionID string) error {
	payload := domain.TransitionPayload{Transition: domain.TransitionRef{ID: transitionID}}
	return c.do(ctx, "apply_transition", http.MethodPost,
		"/rest/api/2/issue/"+url.PathEscape(issueKey)+"/transitions", nil, payload, nil, http.StatusNoContent)
}

// FindUsers searches for users matching a query string (Jira matches
// against display name and email).
func (c *Client) FindUsers(ctx context.Context, query string) ([]domain.User, error) {
	q := url.Values{}
	q.Set("query", query)
	var users []domain.User
	err := c.do(ctx, "find_users", http.MethodGet, "/rest/api/2/user/search", q, nil, &users, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetBoard retrieves an agile board by ID.
func (c *Client) GetBoard(ctx context.Context, boardID int) (*domain.Board, error) {
	var board domain.Board
	err := c.do(ctx, "get_board", http.MethodGet, "/rest/agile/1.0/board/"+strconv.Itoa(boardID), nil, nil, &board, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// GetBoardConfiguration retrieves a board's configuration, which carries
// the ID of the board's saved filter.
func (c *Client) GetBoardConfiguration(ctx context.Context, boardID int) (*domain.BoardConfiguration, error) {
	var config domain.BoardConfiguration
	err := c.do(ctx, "get_board_configuration", http.MethodGet,
		"/rest/agile/1.0/board/"+strconv.Itoa(boardID)+"/configuration", nil, nil, &config, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// GetFilter retrieves a saved filter, including its JQL text.
func (c *Client) GetFilter(ctx context.Context, filterID string) (*domain.Filter, error) {
	var filter domain.Filter
	err := c.do(ctx, "get_filter", http.MethodGet, "/rest/api/2/filter/"+url.PathEscape(filterID), nil, nil, &filter, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &filter, nil
}

// LinkIssues creates a link between two issues.
func (c *Client) LinkIssues(ctx context.Context, req domain.LinkRequest) error {
	return c.do(ctx, "link_issues", http.MethodPost, "/rest/api/2/issueLink", nil, req, nil,
		http.StatusCreated, http.StatusOK, http.StatusNoContent)
}

// ListFields returns the field catalog (system and custom).
func (c *Client) ListFields(ctx context.Context) ([]domain.Field, error) {
	var fields []domain.Field
	err := c.do(ctx, "list_fields", http.MethodGet, "/rest/api/2/field", nil, nil, &fields, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return fields, nil
}

type linkTypesResponse struct {
	IssueLinkTypes []domain.LinkType `json:"issueLinkTypes"`
}

// ListLinkTypes returns the available issue link types.
func (c *Client) ListLinkTypes(ctx context.Context) ([]domain.LinkType, error) {
	var resp linkTypesResponse
	err := c.do(ctx, "list_link_types", http.MethodGet, "/rest/api/2/issueLinkType", nil, nil, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return resp.IssueLinkTypes, nil
}
