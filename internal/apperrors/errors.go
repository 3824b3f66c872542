package apperrors

import (
	"fmt"
	"net/http"
)

// ErrNotFound represents an error when a requested resource is not found.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with id=%v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewStudentNotFoundError creates a specific error for when a student is not found.
func NewStudentNotFoundError(id int) *ErrNotFound {
	return &ErrNotFound{
		Resource: "student",
		ID:       id,
	}
}

// ErrHTTPStatus is returned when the server answers with a non-2xx status code.
type ErrHTTPStatus struct {
	Method     string
	URL        string
	StatusCode int
	Status     string // e.g. "404 Not Found"
}

// Error implements the error interface.
func (e *ErrHTTPStatus) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("http failure response for %s: %s", e.URL, status)
}

// Is allows for error checking with errors.Is().
func (e *ErrHTTPStatus) Is(target error) bool {
	_, ok := target.(*ErrHTTPStatus)
	return ok
}

// NewHTTPStatusError creates an ErrHTTPStatus from the response metadata.
func NewHTTPStatusError(method, url string, statusCode int, status string) *ErrHTTPStatus {
	return &ErrHTTPStatus{
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Status:     status,
	}
}

// ErrDecode is returned when a 2xx response body cannot be decoded.
type ErrDecode struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *ErrDecode) Error() string {
	return fmt.Sprintf("http failure during parsing for %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying decoding error.
func (e *ErrDecode) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrDecode) Is(target error) bool {
	_, ok := target.(*ErrDecode)
	return ok
}
