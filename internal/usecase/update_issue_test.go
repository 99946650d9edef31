package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracekit/jirabridge/internal/domain"
	"github.com/tracekit/jirabridge/internal/usecase"
)

func updateIssueFake() *fakeJira {
	jira := newFakeJira()
	jira.updateIssueFn = func(issueKey string, payload domain.IssuePayload) error { return nil }
	jira.applyTransitionFn = func(issueKey, transitionID string) error { return nil }
	jira.getIssueFn = func(issueKey string) (*domain.Issue, error) {
		return &domain.Issue{Key: issueKey, Fields: domain.IssueFields{Summary: "after"}}, nil
	}
	jira.listTransitionsFn = func(issueKey string) ([]domain.Transition, error) {
		return []domain.Transition{
			{ID: "11", Name: "Start Progress", To: domain.Status{ID: "3", Name: "In Progress"}},
			{ID: "31", Name: "Close", To: domain.Status{ID: "6", Name: "Done"}},
		}, nil
	}
	jira.listPrioritiesFn = func() ([]domain.Priority, error) {
		return []domain.Priority{{ID: "1", Name: "Highest"}}, nil
	}
	return jira
}

func TestUpdateIssue_UnresolvableStatusIsNoOp(t *testing.T) {
	jira := updateIssueFake()
	dispatcher := newTestDispatcher(t, jira)

	result, terr := dispatcher.Dispatch(context.Background(), usecase.ToolUpdateIssue, map[string]any{
		"issueKey": "TEST-1",
		"status":   "Abandoned",
	})

	require.Nil(t, terr)
	require.NotNil(t, result)
	payload, ok := result.Payload.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, payload["message"], "no changes")
	assert.Zero(t, jira.calls["UpdateIssue"], "no field mutation on a no-op")
	assert.Zero(t, jira.calls["ApplyTransition"], "no transition mutation on a no-op")
	assert.Zero(t, jira.calls["GetIssue"], "no refresh read on a no-op")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "status", result.Warnings[0].Field)
}

func TestUpdateIssue_FieldUpdateBeforeTransition(t *testing.T) {
	jira := updateIssueFake()
	dispatcher := newTestDispatcher(t, jira)

	result, terr := dispatcher.Dispatch(context.Background(), usecase.ToolUpdateIssue, map[string]any{
		"issueKey": "TEST-1",
		"summary":  "new summary",
		"status":   "done", // case-insensitive destination match
	})

	require.Nil(t, terr)
	assert.Equal(t, 1, jira.calls["UpdateIssue"])
	assert.Equal(t, 1, jira.calls["ApplyTransition"])

	// Field changes must apply to the pre-transition state.
	updateIdx, transitionIdx := -1, -1
	for i, call := range jira.order {
		switch call {
		case "UpdateIssue":
			updateIdx = i
		case "ApplyTransition":
			transitionIdx = i
		}
	}
	require.GreaterOrEqual(t, updateIdx, 0)
	require.GreaterOrEqual(t, transitionIdx, 0)
	assert.Less(t, updateIdx, transitionIdx, "field update must precede the transition")

	issue, ok := result.Payload.(*domain.Issue)
	require.True(t, ok, "a mutating update returns the refreshed issue")
	assert.Equal(t, "TEST-1", issue.Key)
}

func TestUpdateIssue_FieldsOnly(t *testing.T) {
	jira := updateIssueFake()
	var got domain.IssuePayload
	jira.updateIssueFn = func(issueKey string, payload domain.IssuePayload) error {
		got = payload
		return nil
	}
	dispatcher := newTestDispatcher(t, jira)

	_, terr := dispatcher.Dispatch(context.Background(), usecase.ToolUpdateIssue, map[string]any{
		"issueKey":    "TEST-1",
		"summary":     "new summary",
		"description": "new description",
		"assignee":    "user-123",
	})

	require.Nil(t, terr)
	assert.Equal(t, "new summary", got.Fields["summary"])
	assert.Equal(t, "new description", got.Fields["description"])
	assert.Equal(t, map[string]any{"accountId": "user-123"}, got.Fields["assignee"])
	assert.Zero(t, jira.calls["ApplyTransition"])
	assert.Zero(t, jira.calls["ListTransitions"], "no transition lookup without a status argument")
	assert.Equal(t, 1, jira.calls["GetIssue"])
}

func TestUpdateIssue_TransitionOnly(t *testing.T) {
	jira := updateIssueFake()
	var gotTransition string
	jira.applyTransitionFn = func(issueKey, transitionID string) error {
		gotTransition = transitionID
		return nil
	}
	dispatcher := newTestDispatcher(t, jira)

	_, terr := dispatcher.Dispatch(context.Background(), usecase.ToolUpdateIssue, map[string]any{
		"issueKey": "TEST-1",
		"status":   "In Progress",
	})

	require.Nil(t, terr)
	assert.Zero(t, jira.calls["UpdateIssue"], "no field mutation without field arguments")
	assert.Equal(t, "11", gotTransition)
	assert.Equal(t, 1, jira.calls["GetIssue"])
}

func TestUpdateIssue_UnknownPriorityDegrades(t *testing.T) {
	jira := updateIssueFake()
	var got domain.IssuePayload
	jira.updateIssueFn = func(issueKey string, payload domain.IssuePayload) error {
		got = payload
		return nil
	}
	dispatcher := newTestDispatcher(t, jira)

	result, terr := dispatcher.Dispatch(context.Background(), usecase.ToolUpdateIssue, map[string]any{
		"issueKey": "TEST-1",
		"summary":  "still fine",
		"priority": "Apocalyptic",
	})

	require.Nil(t, terr)
	assert.NotContains(t, got.Fields, "priority")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "priority", result.Warnings[0].Field)
}
