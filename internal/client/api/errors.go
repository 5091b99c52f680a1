package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/mkazymov/dealerdesk/internal/common"
)

// NetworkError means the request never produced a response: DNS failure,
// refused connection, broken transport. The backend state is unknown.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError is a 4xx response carrying a message and, when the backend
// supplies them, per-field errors. It is never recovered automatically; the
// caller renders the field messages.
type ValidationError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, field+": "+strings.Join(msgs, "; "))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, ", "))
}

// wireError is the backend's error envelope.
type wireError struct {
	Error struct {
		Status  int    `json:"status"`
		Name    string `json:"name"`
		Message string `json:"message"`
		Details struct {
			Errors []struct {
				Path    []string `json:"path"`
				Message string   `json:"message"`
			} `json:"errors"`
		} `json:"details"`
	} `json:"error"`
}

func (w wireError) toValidationError(status int) *ValidationError {
	ve := &ValidationError{
		Status:  status,
		Message: w.Error.Message,
		Fields:  make(map[string][]string),
	}
	for _, e := range w.Error.Details.Errors {
		field := strings.Join(e.Path, ".")
		ve.Fields[field] = append(ve.Fields[field], e.Message)
	}
	return ve
}

func statusError(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrNotFound
	}
	if status >= 500 {
		return fmt.Errorf("status %d: %w", status, common.ErrInternal)
	}
	return fmt.Errorf("unexpected status %d", status)
}
