package excel

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"timed-quiz-service/internal/domain"
)

// Columns are the header names expected in the first row of every sheet.
var Columns = []string{
	"id", "question_type", "question_level", "question_text",
	"option_a", "option_b", "option_c", "option_d",
	"correct_answer", "explanation",
}

// QuizLoader reads quizzes from a workbook: one sheet per quiz, the sheet
// name is the quiz ID and the header row names the columns.
type QuizLoader struct {
	path string
}

func NewQuizLoader(path string) *QuizLoader {
	return &QuizLoader{path: path}
}

func (l *QuizLoader) LoadQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(quizID); err != nil || idx < 0 {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	rows, err := f.GetRows(quizID)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("failed to get rows: %w", err)
	}
	questions, err := parseRows(rows)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("sheet %s: %w", quizID, err)
	}
	return domain.Quiz{
		ID:        quizID,
		Title:     domain.SlugToTitle(quizID),
		Questions: questions,
	}, nil
}

// QuizIDs lists the sheets of the workbook.
func (l *QuizLoader) QuizIDs() ([]string, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

func parseRows(rows [][]string) ([]domain.Question, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"id", "question_text", "correct_answer"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}
	cell := func(row []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	questions := make([]domain.Question, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if cell(row, "question_text") == "" {
			continue
		}
		id, err := strconv.Atoi(cell(row, "id"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid id %q", n+2, cell(row, "id"))
		}
		q := domain.Question{
			ID:          id,
			Type:        domain.KebabToSnake(cell(row, "question_type")),
			Level:       cell(row, "question_level"),
			Text:        cell(row, "question_text"),
			Correct:     cell(row, "correct_answer"),
			Explanation: cell(row, "explanation"),
		}
		for _, key := range domain.OptionKeys {
			if text := cell(row, "option_"+key); text != "" {
				q.Options = append(q.Options, domain.Option{Key: key, Text: text})
			}
		}
		questions = append(questions, q)
	}
	return questions, nil
}
