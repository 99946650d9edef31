package usecase

import (
	"fmt"
	"strings"
)

// Caller-supplied JQL fragments are always parenthesized before being
// ANDed onto a base filter, so operator precedence inside the fragment
// cannot change what the base filter selects.

// projectJQL builds the query for a project's issues, optionally narrowed
// by an extra JQL fragment.
func projectJQL(projectKey, extra string) string {
	base := fmt.Sprintf("project = %q", projectKey)
	return andJQL(base, extra)
}

// assignedJQL builds the query for issues assigned to an account. The
// status argument selects the assignment window: "current" (default),
// "past" (assignee WAS), or "all" (either).
func assignedJQL(accountID, status, extra string) string {
	var base string
	switch status {
	case "past":
		base = fmt.Sprintf("assignee WAS %q", accountID)
	case "all":
		base = fmt.Sprintf("(assignee = %q OR assignee WAS %q)", accountID, accountID)
	default:
		base = fmt.Sprintf("assignee = %q", accountID)
	}
	return andJQL(base, extra)
}

// andJQL appends a parenthesized fragment onto a base filter.
func andJQL(base, extra string) string {
	extra = strings.TrimSpace(extra)
	if extra == "" {
		return base
	}
	return base + " AND (" + extra + ")"
}
