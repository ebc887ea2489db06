// Package scoring derives quiz analytics from answers. Every function here is
// pure: results are recomputed from inputs, never mutated in place.
package scoring

import "timed-quiz-service/internal/domain"

// Analysis is the correctness breakdown for a set of questions.
type Analysis struct {
	TotalQuestions int     `json:"totalQuestions"`
	Correct        int     `json:"correct"`
	Incorrect      int     `json:"incorrect"`
	Unattempted    int     `json:"unattempted"`
	Attempted      int     `json:"attempted"`
	Score          float64 `json:"score"`
	MaxScore       float64 `json:"maxScore"`
	Accuracy       float64 `json:"accuracy"`    // percent of attempted answers that are correct
	AttemptRate    float64 `json:"attemptRate"` // percent of questions attempted
}

// SectionAnalysis is an Analysis restricted to one section range.
type SectionAnalysis struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Analysis
}

// Report is the immutable analysis snapshot of a session.
type Report struct {
	Overall        Analysis          `json:"overall"`
	Sections       []SectionAnalysis `json:"sections"`
	ElapsedSeconds int               `json:"timeTaken"`
	Elapsed        string            `json:"timeTakenDisplay"`
}

// WithElapsed returns a copy of the report carrying the elapsed session time.
func (r Report) WithElapsed(seconds int) Report {
	if seconds < 0 {
		seconds = 0
	}
	r.ElapsedSeconds = seconds
	r.Elapsed = domain.FormatTimeTaken(seconds)
	return r
}

// Outcome classifies a single answer.
type Outcome string

const (
	OutcomeCorrect     Outcome = "correct"
	OutcomeIncorrect   Outcome = "incorrect"
	OutcomeUnattempted Outcome = "unattempted"
)

// Grade compares a recorded answer (empty when absent) against the question's correct key.
func Grade(q domain.Question, answer string) Outcome {
	if answer == "" {
		return OutcomeUnattempted
	}
	if domain.NormalizeKey(answer) == q.CorrectKey() {
		return OutcomeCorrect
	}
	return OutcomeIncorrect
}

// Analyze scores every question and every section. Answers are keyed by
// flattened question index. Sections are clipped to the loaded question count.
func Analyze(questions []domain.Question, answers map[int]string, sections []domain.SectionRange, marksPerCorrect, penaltyPerWrong float64) Report {
	report := Report{
		Overall:  analyzeRange(questions, answers, 0, len(questions), marksPerCorrect, penaltyPerWrong),
		Sections: make([]SectionAnalysis, 0, len(sections)),
	}
	if len(questions) == 0 {
		return report.WithElapsed(0)
	}
	for _, sec := range sections {
		end := min(sec.End, len(questions))
		report.Sections = append(report.Sections, SectionAnalysis{
			Key:      sec.Key,
			Title:    sec.Title,
			Analysis: analyzeRange(questions, answers, sec.Start, end, marksPerCorrect, penaltyPerWrong),
		})
	}
	return report.WithElapsed(0)
}

func analyzeRange(questions []domain.Question, answers map[int]string, start, end int, marksPerCorrect, penaltyPerWrong float64) Analysis {
	var a Analysis
	if start < 0 {
		start = 0
	}
	for i := start; i < end; i++ {
		switch Grade(questions[i], answers[i]) {
		case OutcomeCorrect:
			a.Correct++
			a.Score += marksPerCorrect
		case OutcomeIncorrect:
			a.Incorrect++
			a.Score -= penaltyPerWrong
		default:
			a.Unattempted++
		}
	}
	a.TotalQuestions = max(0, end-start)
	a.Attempted = a.Correct + a.Incorrect
	a.MaxScore = float64(a.TotalQuestions) * marksPerCorrect
	if a.Attempted > 0 {
		a.Accuracy = float64(a.Correct) / float64(a.Attempted) * 100
	}
	if a.TotalQuestions > 0 {
		a.AttemptRate = float64(a.Attempted) / float64(a.TotalQuestions) * 100
	}
	return a
}
