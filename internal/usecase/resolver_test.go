package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracekit/jirabridge/internal/domain"
	"github.com/tracekit/jirabridge/internal/usecase"
)

func TestResolver_IssueTypeCaseInsensitiveExactMatch(t *testing.T) {
	jira := newFakeJira()
	jira.listIssueTypesFn = func() ([]domain.IssueType, error) {
		return []domain.IssueType{
			{ID: "1", Name: "Bug"},
			{ID: "2", Name: "Sub-task"},
		}, nil
	}
	resolver := usecase.NewResolver(jira, testLogger())

	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{"exact", "Bug", "1", false},
		{"different case", "bUG", "1", false},
		{"surrounding whitespace", " Bug ", "1", false},
		{"substring is not a match", "Bu", "", true},
		{"unknown", "Epic", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, err := resolver.IssueType(context.Background(), tc.input)
			if tc.wantErr {
				require.Error(t, err)
				var terr *domain.ToolError
				require.True(t, errors.As(err, &terr))
				assert.Equal(t, domain.CodeResolutionFailure, terr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestResolver_PriorityNeverFails(t *testing.T) {
	jira := newFakeJira()
	jira.listPrioritiesFn = func() ([]domain.Priority, error) {
		return nil, errors.New("jira is down")
	}
	resolver := usecase.NewResolver(jira, testLogger())

	id, ok := resolver.Priority(context.Background(), "High")
	assert.False(t, ok)
	assert.Empty(t, id)

	jira.listPrioritiesFn = func() ([]domain.Priority, error) {
		return []domain.Priority{{ID: "2", Name: "High"}}, nil
	}
	id, ok = resolver.Priority(context.Background(), "high")
	assert.True(t, ok)
	assert.Equal(t, "2", id)
}

func TestResolver_ComponentsBestEffortPerName(t *testing.T) {
	jira := newFakeJira()
	jira.listComponentsFn = func(projectKey string) ([]domain.Component, error) {
		return []domain.Component{
			{ID: "100", Name: "API"},
			{ID: "101", Name: "Docs"},
		}, nil
	}
	resolver := usecase.NewResolver(jira, testLogger())

	ids, warnings := resolver.Components(context.Background(), "TEST", []string{"api", "Ghost", "DOCS"})
	assert.Equal(t, []string{"100", "101"}, ids)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "Ghost")
}

func TestResolver_ComponentsListFailureDegrades(t *testing.T) {
	jira := newFakeJira()
	jira.listComponentsFn = func(projectKey string) ([]domain.Component, error) {
		return nil, errors.New("boom")
	}
	resolver := usecase.NewResolver(jira, testLogger())

	ids, warnings := resolver.Components(context.Background(), "TEST", []string{"API"})
	assert.Empty(t, ids)
	require.Len(t, warnings, 1)
}

func TestResolver_TransitionMatchesDestinationState(t *testing.T) {
	jira := newFakeJira()
	jira.listTransitionsFn = func(issueKey string) ([]domain.Transition, error) {
		return []domain.Transition{
			// The transition name and the destination name differ; the
			// destination is what callers name.
			{ID: "11", Name: "Start Progress", To: domain.Status{Name: "In Progress"}},
		}, nil
	}
	resolver := usecase.NewResolver(jira, testLogger())

	id, ok := resolver.Transition(context.Background(), "TEST-1", "in progress")
	assert.True(t, ok)
	assert.Equal(t, "11", id)

	_, ok = resolver.Transition(context.Background(), "TEST-1", "Start Progress")
	assert.False(t, ok, "transition names must not match, only destination states")
}

func TestResolver_UserByEmailRequiresEmailMatch(t *testing.T) {
	jira := newFakeJira()
	jira.findUsersFn = func(query string) ([]domain.User, error) {
		return []domain.User{
			{AccountID: "abc", DisplayName: "Jane Doe", EmailAddress: "jane@example.com"},
			{AccountID: "def", DisplayName: "Jane Dough", EmailAddress: "dough@example.com"},
		}, nil
	}
	resolver := usecase.NewResolver(jira, testLogger())

	user, err := resolver.UserByEmail(context.Background(), "JANE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "abc", user.AccountID)

	_, err = resolver.UserByEmail(context.Background(), "nobody@example.com")
	require.Error(t, err)
	var terr *domain.ToolError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, domain.CodeNotFound, terr.Code)
}
