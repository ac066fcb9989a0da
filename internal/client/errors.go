package client

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork wraps transport failures: the request never got an HTTP reply.
	ErrNetwork = errors.New("network error")
	// ErrInvalidInput is returned for input rejected before any request is sent.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotLoggedIn is returned by operations that need a session.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrLoginInProgress is returned when a second login starts before the first finished.
	ErrLoginInProgress = errors.New("login already in progress")
)

// APIError is a non-2xx reply from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}
