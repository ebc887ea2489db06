package domain_test

import (
	"testing"

	"timed-quiz-service/internal/domain"
)

func TestTransitionTable(t *testing.T) {
	all := []domain.QuestionStatus{
		domain.StatusNotVisited,
		domain.StatusNotAnswered,
		domain.StatusAnswered,
		domain.StatusMarkedForReview,
		domain.StatusAnsweredAndMarked,
	}
	table := map[domain.StatusEvent][]domain.QuestionStatus{
		domain.EventSelectOption: {
			domain.StatusAnswered, domain.StatusAnswered, domain.StatusAnswered,
			domain.StatusAnsweredAndMarked, domain.StatusAnsweredAndMarked,
		},
		domain.EventClearAnswer: {
			domain.StatusNotAnswered, domain.StatusNotAnswered, domain.StatusNotAnswered,
			domain.StatusNotAnswered, domain.StatusMarkedForReview,
		},
		domain.EventMarkForReview: {
			domain.StatusMarkedForReview, domain.StatusMarkedForReview, domain.StatusAnsweredAndMarked,
			domain.StatusMarkedForReview, domain.StatusAnsweredAndMarked,
		},
		domain.EventEnter: {
			domain.StatusNotAnswered, domain.StatusNotAnswered, domain.StatusAnswered,
			domain.StatusMarkedForReview, domain.StatusAnsweredAndMarked,
		},
	}
	for event, want := range table {
		for i, current := range all {
			got := domain.Transition(current, event, current.HasAnswer())
			if got != want[i] {
				t.Errorf("%s from %s: expected %s, got %s", event, current, want[i], got)
			}
		}
	}
}

func TestTransitionLeave(t *testing.T) {
	cases := []struct {
		current  domain.QuestionStatus
		answered bool
		want     domain.QuestionStatus
	}{
		{domain.StatusNotVisited, false, domain.StatusNotAnswered},
		{domain.StatusNotAnswered, false, domain.StatusNotAnswered},
		{domain.StatusNotAnswered, true, domain.StatusNotAnswered},
		{domain.StatusMarkedForReview, false, domain.StatusMarkedForReview},
		{domain.StatusAnswered, true, domain.StatusAnswered},
	}
	for _, tc := range cases {
		if got := domain.Transition(tc.current, domain.EventLeave, tc.answered); got != tc.want {
			t.Errorf("leave from %s (answered=%v): expected %s, got %s", tc.current, tc.answered, tc.want, got)
		}
	}
}
