package usecase_test

import (
	"context"
	"fmt"

	"github.com/tracekit/jirabridge/internal/domain"
)

// fakeJira implements usecase.JiraGateway for tests. Each method counts
// its invocations and delegates to an optional function field; methods
// without a stub fail loudly so tests notice unexpected remote calls.
type fakeJira struct {
	calls map[string]int
	order []string

	getIssueFn        func(issueKey string) (*domain.Issue, error)
	createIssueFn     func(payload domain.IssuePayload) (*domain.CreatedIssue, error)
	updateIssueFn     func(issueKey string, payload domain.IssuePayload) error
	deleteIssueFn     func(issueKey string) error
	searchFn          func(jql string, maxResults int) (*domain.SearchResults, error)
	getProjectFn      func(projectKey string) (*domain.Project, error)
	listIssueTypesFn  func() ([]domain.IssueType, error)
	listPrioritiesFn  func() ([]domain.Priority, error)
	listComponentsFn  func(projectKey string) ([]domain.Component, error)
	listTransitionsFn func(issueKey string) ([]domain.Transition, error)
	applyTransitionFn func(issueKey, transitionID string) error
	findUsersFn       func(query string) ([]domain.User, error)
	getBoardFn        func(boardID int) (*domain.Board, error)
	getBoardConfigFn  func(boardID int) (*domain.BoardConfiguration, error)
	getFilterFn       func(filterID string) (*domain.Filter, error)
	linkIssuesFn      func(req domain.LinkRequest) error
	listFieldsFn      func() ([]domain.Field, error)
	listLinkTypesFn   func() ([]domain.LinkType, error)
}

func newFakeJira() *fakeJira {
	return &fakeJira{calls: make(map[string]int)}
}

func (f *fakeJira) record(name string) {
	f.calls[name]++
	f.order = append(f.order, name)
}

func (f *fakeJira) totalCalls() int {
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeJira) GetIssue(_ context.Context, issueKey string) (*domain.Issue, error) {
	f.record("GetIssue")
	if f.getIssueFn == nil {
		return nil, fmt.Errorf("unexpected GetIssue(%s)", issueKey)
	}
	return f.getIssueFn(issueKey)
}

func (f *fakeJira) CreateIssue(_ context.Context, payload domain.IssuePayload) (*domain.CreatedIssue, error) {
	f.record("CreateIssue")
	if f.createIssueFn == nil {
		return nil, fmt.Errorf("unexpected CreateIssue")
	}
	return f.createIssueFn(payload)
}

func (f *fakeJira) UpdateIssue(_ context.Context, issueKey string, payload domain.IssuePayload) error {
	f.record("UpdateIssue")
	if f.updateIssueFn == nil {
		return fmt.Errorf("unexpected UpdateIssue(%s)", issueKey)
	}
	return f.updateIssueFn(issueKey, payload)
}

func (f *fakeJira) DeleteIssue(_ context.Context, issueKey string) error {
	f.record("DeleteIssue")
	if f.deleteIssueFn == nil {
		return fmt.Errorf("unexpected DeleteIssue(%s)", issueKey)
	}
	return f.deleteIssueFn(issueKey)
}

func (f *fakeJira) Search(_ context.Context, jql string, maxResults int) (*domain.SearchResults, error) {
	f.record("Search")
	if f.searchFn == nil {
		return nil, fmt.Errorf("unexpected Search(%s)", jql)
	}
	return f.searchFn(jql, maxResults)
}

func (f *fakeJira) GetProject(_ context.Context, projectKey string) (*domain.Project, error) {
	f.record("GetProject")
	if f.getProjectFn == nil {
		return nil, fmt.Errorf("unexpected GetProject(%s)", projectKey)
	}
	return f.getProjectFn(projectKey)
}

func (f *fakeJira) ListIssueTypes(_ context.Context) ([]domain.IssueType, error) {
	f.record("ListIssueTypes")
	if f.listIssueTypesFn == nil {
		return nil, fmt.Errorf("unexpected ListIssueTypes")
	}
	return f.listIssueTypesFn()
}

func (f *fakeJira) ListPriorities(_ context.Context) ([]domain.Priority, error) {
	f.record("ListPriorities")
	if f.listPrioritiesFn == nil {
		return nil, fmt.Errorf("unexpected ListPriorities")
	}
	return f.listPrioritiesFn()
}

func (f *fakeJira) ListComponents(_ context.Context, projectKey string) ([]domain.Component, error) {
	f.record("ListComponents")
	if f.listComponentsFn == nil {
		return nil, fmt.Errorf("unexpected ListComponents(%s)", projectKey)
	}
	return f.listComponentsFn(projectKey)
}

func (f *fakeJira) ListTransitions(_ context.Context, issueKey string) ([]domain.Transition, error) {
	f.record("ListTransitions")
	if f.listTransitionsFn == nil {
		return nil, fmt.Errorf("unexpected ListTransitions(%s)", issueKey)
	}
	return f.listTransitionsFn(issueKey)
}

func (f *fakeJira) ApplyTransition(_ context.Context, issueKey, transitionID string) error {
	f.record("ApplyTransition")
	if f.applyTransitionFn == nil {
		return fmt.Errorf("unexpected ApplyTransition(%s, %s)", issueKey, transitionID)
	}
	return f.applyTransitionFn(issueKey, transitionID)
}

func (f *fakeJira) FindUsers(_ context.Context, query string) ([]domain.User, error) {
	f.record("FindUsers")
	if f.findUsersFn == nil {
		return nil, fmt.Errorf("unexpected FindUsers(%s)", query)
	}
	return f.findUsersFn(query)
}

func (f *fakeJira) GetBoard(_ context.Context, boardID int) (*domain.Board, error) {
	f.record("GetBoard")
	if f.getBoardFn == nil {
		return nil, fmt.Errorf("unexpected GetBoard(%d)", boardID)
	}
	return f.getBoardFn(boardID)
}

func (f *fakeJira) GetBoardConfiguration(_ context.Context, boardID int) (*domain.BoardConfiguration, error) {
	f.record("GetBoardConfiguration")
	if f.getBoardConfigFn == nil {
		return nil, fmt.Errorf("unexpected GetBoardConfiguration(%d)", boardID)
	}
	return f.getBoardConfigFn(boardID)
}

func (f *fakeJira) GetFilter(_ context.Context, filterID string) (*domain.Filter, error) {
	f.record("GetFilter")
	if f.getFilterFn == nil {
		return nil, fmt.Errorf("unexpected GetFilter(%s)", filterID)
	}
	return f.getFilterFn(filterID)
}

func (f *fakeJira) LinkIssues(_ context.Context, req domain.LinkRequest) error {
	f.record("LinkIssues")
	if f.linkIssuesFn == nil {
		return fmt.Errorf("unexpected LinkIssues")
	}
	return f.linkIssuesFn(req)
}

func (f *fakeJira) ListFields(_ context.Context) ([]domain.Field, error) {
	f.record("ListFields")
	if f.listFieldsFn == nil {
		return nil, fmt.Errorf("unexpected ListFields")
	}
	return f.listFieldsFn()
}

func (f *fakeJira) ListLinkTypes(_ context.Context) ([]domain.LinkType, error) {
	f.record("ListLinkTypes")
	if f.listLinkTypesFn == nil {
		return nil, fmt.Errorf("unexpected ListLinkTypes")
	}
	return f.listLinkTypesFn()
}
