package app

import "timed-quiz-service/internal/domain"

// StatusTracker holds the visitation/review status of every loaded question.
type StatusTracker struct {
	statuses []domain.QuestionStatus
}

// NewStatusTracker marks the first question not answered and the rest not visited.
func NewStatusTracker(n int) *StatusTracker {
	statuses := make([]domain.QuestionStatus, n)
	for i := range statuses {
		statuses[i] = domain.StatusNotVisited
	}
	if n > 0 {
		statuses[0] = domain.StatusNotAnswered
	}
	return &StatusTracker{statuses: statuses}
}

func (t *StatusTracker) Status(index int) domain.QuestionStatus {
	if index < 0 || index >= len(t.statuses) {
		return domain.StatusNotVisited
	}
	return t.statuses[index]
}

// SetStatus overwrites the status of index unconditionally.
func (t *StatusTracker) SetStatus(index int, status domain.QuestionStatus) {
	if index < 0 || index >= len(t.statuses) {
		return
	}
	t.statuses[index] = status
}

// Apply runs the transition table for event on index and returns the new status.
func (t *StatusTracker) Apply(index int, event domain.StatusEvent, answered bool) domain.QuestionStatus {
	next := domain.Transition(t.Status(index), event, answered)
	t.SetStatus(index, next)
	return next
}

// Snapshot copies the status list.
func (t *StatusTracker) Snapshot() []domain.QuestionStatus {
	out := make([]domain.QuestionStatus, len(t.statuses))
	copy(out, t.statuses)
	return out
}

// Counts tallies questions per status for the navigator legend.
func (t *StatusTracker) Counts() map[domain.QuestionStatus]int {
	counts := make(map[domain.QuestionStatus]int, len(domain.Statuses))
	for _, status := range domain.Statuses {
		counts[status] = 0
	}
	for _, status := range t.statuses {
		counts[status]++
	}
	return counts
}
