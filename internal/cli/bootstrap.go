package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/config"
	"timed-quiz-service/internal/domain"
	"timed-quiz-service/internal/infra/excel"
	"timed-quiz-service/internal/infra/file"
	"timed-quiz-service/internal/infra/memory"
	pgloader "timed-quiz-service/internal/infra/postgres"
	redissession "timed-quiz-service/internal/infra/redis"
	"timed-quiz-service/internal/infra/sqlite"
)

// quizStore is a loader that can also persist quizzes (Postgres, SQLite).
type quizStore interface {
	memory.QuizLoader
	SaveQuiz(ctx context.Context, quiz domain.Quiz) error
}

// sessionConfig maps the exam section of the config onto session settings.
func sessionConfig(cfg config.Config) app.SessionConfig {
	session := app.DefaultConfig()
	session.Title = cfg.Exam.TitleOrDefault()
	session.Duration = config.TTLDuration(cfg.Exam.Duration, config.DefaultDuration)
	session.MarksPerCorrect = cfg.Exam.MarksPerCorrectOrDefault()
	session.PenaltyPerWrong = cfg.Exam.PenaltyPerWrongOrDefault()
	session.SubmitDelay = config.TTLDuration(cfg.Exam.SubmitDelay, config.DefaultSubmitDelay)
	if len(cfg.Exam.Sections) > 0 {
		session.Sections = make([]domain.SectionDefinition, 0, len(cfg.Exam.Sections))
		for _, sec := range cfg.Exam.Sections {
			title := sec.Title
			if title == "" {
				title = domain.SlugToTitle(sec.Key)
			}
			session.Sections = append(session.Sections, domain.SectionDefinition{
				Key:       domain.KebabToSnake(sec.Key),
				Title:     title,
				Questions: sec.Questions,
			})
		}
	}
	return session
}

// openStore opens the configured persistent quiz store: Postgres first, then SQLite.
func openStore(ctx context.Context, cfg config.Config) (quizStore, func(), error) {
	switch {
	case cfg.Postgres.URL != "":
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return pgloader.NewQuizLoader(pool), pool.Close, nil
	case cfg.SQLite.Path != "":
		loader, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return loader, func() { _ = loader.Close() }, nil
	}
	return nil, nil, nil
}

// buildLoader picks the quiz source: a database, a workbook, a YAML directory
// or the built-in sample quiz, in that order.
func buildLoader(ctx context.Context, cfg config.Config) (memory.QuizLoader, func(), error) {
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if store != nil {
		return store, closeStore, nil
	}
	noop := func() {}
	switch {
	case cfg.Excel.Path != "":
		return excel.NewQuizLoader(cfg.Excel.Path), noop, nil
	case cfg.Quiz.Source != "":
		return file.NewQuizLoader(cfg.Quiz.Source), noop, nil
	}
	return memory.NewStaticQuizLoader(sampleQuizzes()), noop, nil
}

func newRedisClient(cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// buildService wires repositories around loader, using Redis when configured.
func buildService(cfg config.Config, loader memory.QuizLoader, redisClient *redis.Client) *app.QuizService {
	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	sessionTTL := config.TTLDuration(cfg.Redis.TTL, 2*time.Hour)

	var quizRepo app.QuizRepository
	var store app.SessionRepository
	if redisClient != nil {
		quizRepo = redissession.NewQuizRepository(redisClient, loader, quizTTL)
		store = redissession.NewSessionStore(redisClient, sessionTTL)
	} else {
		quizRepo = memory.NewQuizRepository(loader, quizTTL)
		store = memory.NewSessionStore()
	}
	return app.NewQuizService(store, quizRepo, sessionConfig(cfg))
}

// sampleQuizzes serves a small demo quiz when no quiz source is configured.
func sampleQuizzes() map[string]domain.Quiz {
	opts := func(a, b, c, d string) []domain.Option {
		return []domain.Option{{Key: "a", Text: a}, {Key: "b", Text: b}, {Key: "c", Text: c}, {Key: "d", Text: d}}
	}
	return map[string]domain.Quiz{
		"sample": {
			ID:    "sample",
			Title: "Sample Aptitude Quiz",
			Sections: []domain.SectionDefinition{
				{Key: "general_intelligence_reasoning", Title: "General Intelligence & Reasoning", Questions: 1},
				{Key: "general_awareness", Title: "General Awareness", Questions: 1},
				{Key: "quantitative_aptitude", Title: "Quantitative Aptitude", Questions: 1},
				{Key: "english_comprehension", Title: "English Comprehension", Questions: 1},
			},
			Questions: []domain.Question{
				{ID: 1, Type: "quantitative_aptitude", Level: "easy", Text: "What is 15% of 200?", Options: opts("20", "25", "30", "35"), Correct: "c"},
				{ID: 2, Type: "english_comprehension", Level: "easy", Text: "Choose the synonym of 'rapid'.", Options: opts("slow", "quick", "calm", "late"), Correct: "b"},
				{ID: 3, Type: "general_awareness", Level: "medium", Text: "Which planet is known as the Red Planet?", Options: opts("Mars", "Venus", "Jupiter", "Mercury"), Correct: "a", Explanation: "Iron oxide gives Mars its colour."},
				{ID: 4, Type: "general_intelligence_reasoning", Level: "medium", Text: "Find the next number: 2, 6, 12, 20, ?", Options: opts("28", "30", "32", "36"), Correct: "b", Explanation: "Differences grow by 2: 4, 6, 8, 10."},
			},
		},
	}
}
