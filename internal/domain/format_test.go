package domain_test

import (
	"errors"
	"testing"

	"timed-quiz-service/internal/domain"
)

func TestFormatting(t *testing.T) {
	if got := domain.FormatClock(3600); got != "60:00" {
		t.Errorf("clock: got %q", got)
	}
	if got := domain.FormatClock(65); got != "01:05" {
		t.Errorf("clock: got %q", got)
	}
	if got := domain.FormatTimeTaken(605); got != "10 min 05 sec" {
		t.Errorf("time taken: got %q", got)
	}
	if got := domain.FormatTimeTaken(-3); got != "0 min 00 sec" {
		t.Errorf("negative time taken: got %q", got)
	}
	if got := domain.SlugToTitle("general--intelligence-reasoning"); got != "General Intelligence Reasoning" {
		t.Errorf("slug: got %q", got)
	}
	if got := domain.KebabToSnake("general-awareness"); got != "general_awareness" {
		t.Errorf("snake: got %q", got)
	}
	if got := domain.UnitTitle("Static GK (Books, Awards, Important Days)"); got != "Static GK" {
		t.Errorf("unit title: got %q", got)
	}
	if got := domain.UnitTitle(""); got != "Unit" {
		t.Errorf("empty unit title: got %q", got)
	}
}

func TestValidate(t *testing.T) {
	good := domain.Question{
		ID:      1,
		Options: []domain.Option{{Key: "a", Text: "3"}, {Key: "B", Text: "4"}},
		Correct: "b",
	}
	if err := domain.Validate([]domain.Question{good}, []domain.SectionDefinition{{Key: "x", Questions: 1}}); err != nil {
		t.Fatalf("expected valid quiz, got %v", err)
	}

	missing := good
	missing.Correct = "d"
	if err := domain.Validate([]domain.Question{missing}, nil); !errors.Is(err, domain.ErrLoadFailure) {
		t.Fatalf("expected load failure for absent correct option, got %v", err)
	}

	if err := domain.Validate(nil, []domain.SectionDefinition{{Key: "x", Questions: -1}}); !errors.Is(err, domain.ErrLoadFailure) {
		t.Fatalf("expected load failure for negative count, got %v", err)
	}

	bad := good
	bad.Options = []domain.Option{{Key: "e", Text: "?"}}
	if err := domain.Validate([]domain.Question{bad}, nil); !errors.Is(err, domain.ErrLoadFailure) {
		t.Fatalf("expected load failure for unknown key, got %v", err)
	}
}
