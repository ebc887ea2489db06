package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"timed-quiz-service/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS quizzes (
	id    TEXT PRIMARY KEY,
	title TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS questions (
	quiz_id        TEXT    NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
	id             INTEGER NOT NULL,
	question_type  TEXT    NOT NULL DEFAULT '',
	question_level TEXT    NOT NULL DEFAULT '',
	question_text  TEXT    NOT NULL,
	option_a       TEXT,
	option_b       TEXT,
	option_c       TEXT,
	option_d       TEXT,
	correct_answer TEXT    NOT NULL,
	explanation    TEXT    NOT NULL DEFAULT '',
	PRIMARY KEY (quiz_id, id)
);`

// questionRow mirrors one row of the questions table; missing options are NULL.
type questionRow struct {
	ID          int            `db:"id"`
	Type        string         `db:"question_type"`
	Level       string         `db:"question_level"`
	Text        string         `db:"question_text"`
	OptionA     sql.NullString `db:"option_a"`
	OptionB     sql.NullString `db:"option_b"`
	OptionC     sql.NullString `db:"option_c"`
	OptionD     sql.NullString `db:"option_d"`
	Correct     string         `db:"correct_answer"`
	Explanation string         `db:"explanation"`
}

func (r questionRow) question() domain.Question {
	q := domain.Question{
		ID:          r.ID,
		Type:        r.Type,
		Level:       r.Level,
		Text:        r.Text,
		Correct:     r.Correct,
		Explanation: r.Explanation,
	}
	for i, opt := range []sql.NullString{r.OptionA, r.OptionB, r.OptionC, r.OptionD} {
		if opt.Valid && opt.String != "" {
			q.Options = append(q.Options, domain.Option{Key: domain.OptionKeys[i], Text: opt.String})
		}
	}
	return q
}

// QuizLoader reads question banks from a SQLite database.
type QuizLoader struct {
	db *sqlx.DB
}

// Open connects to the SQLite file at path (":memory:" for a throwaway
// database) and creates the schema when missing.
func Open(path string) (*QuizLoader, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &QuizLoader{db: db}, nil
}

func (l *QuizLoader) Close() error {
	return l.db.Close()
}

func (l *QuizLoader) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	quiz := domain.Quiz{ID: quizID}
	err := l.db.GetContext(ctx, &quiz.Title, `SELECT title FROM quizzes WHERE id = ?`, quizID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}

	var rows []questionRow
	err = l.db.SelectContext(ctx, &rows, `
		SELECT id, question_type, question_level, question_text,
		       option_a, option_b, option_c, option_d, correct_answer, explanation
		FROM questions WHERE quiz_id = ? ORDER BY id`, quizID)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load questions: %w", err)
	}
	quiz.Questions = make([]domain.Question, 0, len(rows))
	for _, row := range rows {
		quiz.Questions = append(quiz.Questions, row.question())
	}
	return quiz, nil
}

// SaveQuiz replaces a quiz and all of its questions in one transaction.
func (l *QuizLoader) SaveQuiz(ctx context.Context, quiz domain.Quiz) error {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE quiz_id = ?`, quiz.ID); err != nil {
		return fmt.Errorf("clear questions: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO quizzes (id, title) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET title = excluded.title`,
		quiz.ID, quiz.Title); err != nil {
		return fmt.Errorf("save quiz: %w", err)
	}
	for _, q := range quiz.Questions {
		opts := make([]sql.NullString, len(domain.OptionKeys))
		for i, key := range domain.OptionKeys {
			if text, ok := q.OptionText(key); ok {
				opts[i] = sql.NullString{String: text, Valid: true}
			}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO questions (quiz_id, id, question_type, question_level, question_text,
			                       option_a, option_b, option_c, option_d, correct_answer, explanation)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			quiz.ID, q.ID, q.Type, q.Level, q.Text, opts[0], opts[1], opts[2], opts[3], q.Correct, q.Explanation)
		if err != nil {
			return fmt.Errorf("save question %d: %w", q.ID, err)
		}
	}
	return tx.Commit()
}
