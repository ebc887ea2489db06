package scoring

import "timed-quiz-service/internal/domain"

// PatternSection is one row of the section-wise distribution.
type PatternSection struct {
	Name      string  `json:"name"`
	Questions int     `json:"questions"`
	Marks     float64 `json:"marks"`
}

// Pattern summarises the exam layout shown before and after an attempt.
type Pattern struct {
	TotalQuestions   int              `json:"totalQuestions"`
	TotalMarks       float64          `json:"totalMarks"`
	MarksPerQuestion float64          `json:"marksPerQuestion"`
	TimeMinutes      int              `json:"timeMinutes"`
	NegativeMarking  float64          `json:"negativeMarking"`
	Sections         []PatternSection `json:"sections"`
}

// NewPattern derives the pattern from the declared sections and scoring scheme.
func NewPattern(defs []domain.SectionDefinition, durationSeconds int, marksPerCorrect, penaltyPerWrong float64) Pattern {
	p := Pattern{
		MarksPerQuestion: marksPerCorrect,
		TimeMinutes:      durationSeconds / 60,
		NegativeMarking:  penaltyPerWrong,
		Sections:         make([]PatternSection, 0, len(defs)),
	}
	for _, def := range defs {
		p.TotalQuestions += def.Questions
		p.Sections = append(p.Sections, PatternSection{
			Name:      def.Title,
			Questions: def.Questions,
			Marks:     float64(def.Questions) * marksPerCorrect,
		})
	}
	p.TotalMarks = float64(p.TotalQuestions) * marksPerCorrect
	return p
}
