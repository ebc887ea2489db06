package scoring

import "timed-quiz-service/internal/domain"

// ReviewOption annotates one option for the question-wise breakdown.
type ReviewOption struct {
	Key           string `json:"key"`
	Text          string `json:"text"`
	YourAnswer    bool   `json:"yourAnswer"`
	CorrectAnswer bool   `json:"correctAnswer"`
}

// QuestionReview is the post-submission view of one question.
type QuestionReview struct {
	Index       int            `json:"index"`
	ID          int            `json:"id"`
	Text        string         `json:"text"`
	Outcome     Outcome        `json:"outcome"`
	Selected    string         `json:"selected,omitempty"`
	Options     []ReviewOption `json:"options"`
	Explanation string         `json:"explanation,omitempty"`
}

// Review builds the question-wise breakdown in question order.
func Review(questions []domain.Question, answers map[int]string) []QuestionReview {
	reviews := make([]QuestionReview, 0, len(questions))
	for i, q := range questions {
		selected := domain.NormalizeKey(answers[i])
		correct := q.CorrectKey()
		opts := make([]ReviewOption, 0, len(q.Options))
		for _, opt := range q.Options {
			key := domain.NormalizeKey(opt.Key)
			opts = append(opts, ReviewOption{
				Key:           key,
				Text:          opt.Text,
				YourAnswer:    selected != "" && key == selected,
				CorrectAnswer: key == correct,
			})
		}
		reviews = append(reviews, QuestionReview{
			Index:       i,
			ID:          q.ID,
			Text:        q.Text,
			Outcome:     Grade(q, selected),
			Selected:    selected,
			Options:     opts,
			Explanation: q.Explanation,
		})
	}
	return reviews
}
