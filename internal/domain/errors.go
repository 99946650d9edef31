package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies every failure a tool call can surface.
type ErrorCode string

const (
	// CodeNotFoundTool means the requested tool name is not registered.
	CodeNotFoundTool ErrorCode = "not_found_tool"

	// CodeInvalidInput means the arguments failed schema validation or a
	// required disambiguating argument was missing.
	CodeInvalidInput ErrorCode = "invalid_input"

	// CodePermissionDenied maps upstream 401/403 responses.
	CodePermissionDenied ErrorCode = "permission_denied"

	// CodeNotFound maps upstream 404 responses.
	CodeNotFound ErrorCode = "not_found"

	// CodeResolutionFailure means a mandatory identifier (project or
	// issue type) could not be resolved to an ID.
	CodeResolutionFailure ErrorCode = "resolution_failure"

	// CodeUpstreamError means the remote API returned a failure status
	// that does not map to a more specific code.
	CodeUpstreamError ErrorCode = "upstream_error"

	// CodeInternalError covers anything unanticipated.
	CodeInternalError ErrorCode = "internal_error"
)

// ToolError is the structured error returned across the dispatcher
// boundary. It always carries a human-readable message; Err preserves the
// original cause for diagnostics.
type ToolError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ToolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ToolError) Unwrap() error { return e.Err }

// NewToolError builds a ToolError with a formatted message and no cause.
func NewToolError(code ErrorCode, format string, args ...any) *ToolError {
	return &ToolError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapToolError attaches a cause to a ToolError.
func WrapToolError(code ErrorCode, err error, format string, args ...any) *ToolError {
	return &ToolError{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// StatusError reports a non-2xx response from the Jira API. Op names the
// remote operation, Body holds a snippet of the response for the message.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("jira %s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

// ClassifyStatus maps an upstream HTTP status to the error taxonomy.
func ClassifyStatus(status int) ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return CodeInvalidInput
	case http.StatusUnauthorized, http.StatusForbidden:
		return CodePermissionDenied
	case http.StatusNotFound:
		return CodeNotFound
	default:
		return CodeInternalError
	}
}

// AsToolError normalizes any handler error into a ToolError. StatusErrors
// are classified by upstream status; ToolErrors pass through; everything
// else becomes an internal error.
func AsToolError(err error) *ToolError {
	var te *ToolError
	if errors.As(err, &te) {
		return te
	}
	var se *StatusError
	if errors.As(err, &se) {
		return &ToolError{
			Code:    ClassifyStatus(se.StatusCode),
			Message: fmt.Sprintf("upstream request %s failed with status %d: %s", se.Op, se.StatusCode, se.Body),
			Err:     se,
		}
	}
	return &ToolError{Code: CodeInternalError, Message: err.Error(), Err: err}
}
