package services

import (
	"errors"
	"fmt"

	"weather-dashboard/api/openmeteo"
)

// User-visible messages. They are the only error text the page ever shows.
const (
	MSG_ALL_FIELDS_REQUIRED = "All fields are required."
	MSG_FETCH_FAILED        = "Failed to fetch data. Please check inputs or try again later."
)

const KIND_VALIDATION = "validation"
const KIND_UNKNOWN = "unknown"

// ErrFetchInFlight is returned when a session triggers a fetch while one is still loading.
var ErrFetchInFlight = errors.New("a fetch is already in flight for this session")

// ValidationError is raised before any network call when input fields are missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %v", e.Fields)
}

// Message is the text shown to the user.
func (e *ValidationError) Message() string {
	return MSG_ALL_FIELDS_REQUIRED
}

// FetchError is any failure of the outbound call. Kind and Err are kept for
// logs and errors.Is/As; the user only ever sees Message.
type FetchError struct {
	Kind string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Message is the text shown to the user.
func (e *FetchError) Message() string {
	return MSG_FETCH_FAILED
}

func newFetchError(err error) *FetchError {
	var clientErr *openmeteo.ClientError
	if errors.As(err, &clientErr) {
		return &FetchError{Kind: string(clientErr.Kind), Err: err}
	}
	return &FetchError{Kind: KIND_UNKNOWN, Err: err}
}
