package activities

import "time"

type LoadState string

const (
	LoadStateIdle    LoadState = "idle"
	LoadStateLoading LoadState = "loading"
	LoadStateLoaded  LoadState = "loaded"
	LoadStateFailed  LoadState = "failed"
)

// Status describes the history load of a single athlete.
type Status struct {
	State     LoadState `json:"state"`
	Error     string    `json:"error,omitempty"`
	Count     int       `json:"count"`
	UpdatedAt time.Time `json:"updated_at"`
}
