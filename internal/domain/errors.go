package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session has not been started.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a question index outside the loaded quiz.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates an option key with no option text on the focused question.
	ErrOptionNotFound = errors.New("option not found")
	// ErrEmptySession is returned when submission is requested with zero loaded questions.
	ErrEmptySession = errors.New("cannot submit an empty quiz")
	// ErrLoadFailure wraps malformed or unavailable question/section data.
	ErrLoadFailure = errors.New("failed to load quiz questions")
	// ErrInvalidTransition marks an operation invoked outside the state that permits it.
	// Callers treat it as a no-op.
	ErrInvalidTransition = errors.New("operation not permitted in current session state")
)
