package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"timed-quiz-service/internal/domain"
)

var extensions = []string{".yaml", ".yml"}

// QuizLoader reads quiz documents from a directory of YAML files named
// {quizID}.yaml.
type QuizLoader struct {
	dir string
}

func NewQuizLoader(dir string) *QuizLoader {
	return &QuizLoader{dir: dir}
}

func (l *QuizLoader) LoadQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	if quizID == "" || strings.ContainsAny(quizID, `/\`) || strings.HasPrefix(quizID, ".") {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	for _, ext := range extensions {
		data, err := os.ReadFile(filepath.Join(l.dir, quizID+ext))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return domain.Quiz{}, fmt.Errorf("read quiz %s: %w", quizID, err)
		}
		return decode(quizID, data)
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

// QuizIDs lists the quiz documents in the directory.
func (l *QuizLoader) QuizIDs() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ext))
	}
	sort.Strings(ids)
	return ids, nil
}

func decode(quizID string, data []byte) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := yaml.Unmarshal(data, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("decode quiz %s: %w", quizID, err)
	}
	if quiz.ID == "" {
		quiz.ID = quizID
	}
	if quiz.Title == "" {
		quiz.Title = domain.SlugToTitle(quizID)
	}
	return quiz, nil
}
