package strava

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthorized = errors.New("strava: unauthorized")
	ErrRateLimited  = errors.New("strava: rate limit exceeded")
)

type ErrorDetail struct {
	Resource string `json:"resource"`
	Field    string `json:"field"`
	Code     string `json:"code"`
}

// APIError is returned for every non-2xx response of the API.
type APIError struct {
	StatusCode int           `json:"-"`
	Message    string        `json:"message"`
	Errors     []ErrorDetail `json:"errors"`
}

func (e *APIError) Error() string {
	var details []string
	for _, d := range e.Errors {
		details = append(details, fmt.Sprintf("%s.%s: %s", d.Resource, d.Field, d.Code))
	}
	if len(details) == 0 {
		return fmt.Sprintf("strava api error [%d]: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("strava api error [%d]: %s (%s)", e.StatusCode, e.Message, strings.Join(details, ", "))
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == 401
	case ErrRateLimited:
		return e.StatusCode == 429
	default:
		return false
	}
}
