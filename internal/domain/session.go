package domain

// SessionState is the lifecycle state of a quiz session.
type SessionState string

const (
	StateLoading    SessionState = "loading"
	StateTaking     SessionState = "taking"
	StateSubmitting SessionState = "submitting"
	StateSubmitted  SessionState = "submitted"
	StateError      SessionState = "error"
)

// Finished reports whether the session can no longer change without a reload.
func (s SessionState) Finished() bool {
	return s == StateSubmitted || s == StateError
}
