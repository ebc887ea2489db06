package app

import (
	"time"

	"timed-quiz-service/internal/domain"
)

// SessionConfig holds the timing and marking scheme of a session.
type SessionConfig struct {
	Title           string
	Duration        time.Duration // maximum session time
	MarksPerCorrect float64
	PenaltyPerWrong float64
	SubmitDelay     time.Duration // simulated submission round trip
	TickInterval    time.Duration
	Ticker          TickerFunc                 // nil = time.NewTicker
	Sections        []domain.SectionDefinition // used when a quiz declares none
}

// DefaultSections is the four-section aptitude layout.
func DefaultSections() []domain.SectionDefinition {
	return []domain.SectionDefinition{
		{Key: "general_intelligence_reasoning", Title: "General Intelligence & Reasoning", Questions: 25},
		{Key: "general_awareness", Title: "General Awareness", Questions: 25},
		{Key: "quantitative_aptitude", Title: "Quantitative Aptitude", Questions: 25},
		{Key: "english_comprehension", Title: "English Comprehension", Questions: 25},
	}
}

// DefaultConfig returns a 60 minute session with +2/-0.5 marking.
func DefaultConfig() SessionConfig {
	return SessionConfig{
		Title:           "Aptitude Quiz",
		Duration:        60 * time.Minute,
		MarksPerCorrect: 2,
		PenaltyPerWrong: 0.5,
		SubmitDelay:     time.Second,
		TickInterval:    time.Second,
		Sections:        DefaultSections(),
	}
}

func (c SessionConfig) durationSeconds() int {
	return int(c.Duration / time.Second)
}
