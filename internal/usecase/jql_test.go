package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectJQL(t *testing.T) {
	tests := []struct {
		name    string
		project string
		extra   string
		want    string
	}{
		{
			name:    "project only",
			project: "TEST",
			want:    `project = "TEST"`,
		},
		{
			name:    "project with extra jql",
			project: "TEST",
			extra:   "status = Done",
			want:    `project = "TEST" AND (status = Done)`,
		},
		{
			name:    "extra jql with OR cannot widen the project filter",
			project: "TEST",
			extra:   "status = Done OR status = Open",
			want:    `project = "TEST" AND (status = Done OR status = Open)`,
		},
		{
			name:    "whitespace-only extra is ignored",
			project: "TEST",
			extra:   "   ",
			want:    `project = "TEST"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, projectJQL(tc.project, tc.extra))
		})
	}
}

func TestAssignedJQL(t *testing.T) {
	tests := []struct {
		name      string
		accountID string
		status    string
		extra     string
		want      string
	}{
		{
			name:      "default window is current",
			accountID: "user-123",
			want:      `assignee = "user-123"`,
		},
		{
			name:      "current",
			accountID: "user-123",
			status:    "current",
			want:      `assignee = "user-123"`,
		},
		{
			name:      "past uses WAS",
			accountID: "user-123",
			status:    "past",
			want:      `assignee WAS "user-123"`,
		},
		{
			name:      "all combines both",
			accountID: "user-123",
			status:    "all",
			want:      `(assignee = "user-123" OR assignee WAS "user-123")`,
		},
		{
			name:      "additional jql is parenthesized and ANDed",
			accountID: "user-123",
			status:    "past",
			extra:     `project = "TEST"`,
			want:      `assignee WAS "user-123" AND (project = "TEST")`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, assignedJQL(tc.accountID, tc.status, tc.extra))
		})
	}
}
