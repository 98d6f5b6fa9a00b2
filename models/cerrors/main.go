package cerrors

import (
	"fmt"
)

/*
	Client-side error taxonomy. Every kind is terminal for the
	operation that raised it; none of them may be downgraded into a
	default or zero-valued prediction.
*/

// ValidationError rejects malformed input before any network call
type ValidationError struct {
	Field  string
	Reason string
}

const ReasonEmptyField = "EmptyField"

func NewEmptyFieldError(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: ReasonEmptyField}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for '%s': %s", e.Field, e.Reason)
}

// TransportError covers connectivity failures and non-2xx statuses.
// It means "could not determine pathogenicity", never "benign".
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError rejects a backend payload that does not
// deserialize into a valid result (missing field, out-of-range
// probability, inverted confidence interval). Values are never
// silently clamped into validity.
type MalformedResponseError struct {
	Op     string
	Detail string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed backend response: %s", e.Op, e.Detail)
}

// JobInFlightError rejects a second batch submission while one is
// still occupying the session's single job slot
type JobInFlightError struct {
	JobId string
}

func (e *JobInFlightError) Error() string {
	return fmt.Sprintf("a batch job is already in flight (job '%s')", e.JobId)
}

// FileTooLargeError rejects an oversized upload locally, before
// attempting a round trip that will certainly fail
type FileTooLargeError struct {
	Filename string
	Size     int64
	Limit    int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file '%s' is %d bytes, over the %d byte upload cap", e.Filename, e.Size, e.Limit)
}

// BatchError carries the backend's diagnostic for a terminally
// failed batch job
type BatchError struct {
	JobId   string
	Message string
}

func (e *BatchError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("batch job '%s' failed", e.JobId)
	}
	return fmt.Sprintf("batch job '%s' failed: %s", e.JobId, e.Message)
}
