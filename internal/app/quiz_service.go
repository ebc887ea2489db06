package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"timed-quiz-service/internal/domain"
	"timed-quiz-service/internal/scoring"
)

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	Save(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
	List() []*Session
}

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// QuizService contains the quiz session use cases.
type QuizService struct {
	sessions SessionRepository
	quizzes  QuizRepository
	cfg      SessionConfig
	newID    func() string
	now      func() time.Time
}

func NewQuizService(store SessionRepository, quizzes QuizRepository, cfg SessionConfig) *QuizService {
	return &QuizService{
		sessions: store,
		quizzes:  quizzes,
		cfg:      cfg,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Config returns the session configuration applied to new sessions.
func (s *QuizService) Config() SessionConfig {
	return s.cfg
}

// Start creates a session for quizID and loads its questions. A load failure
// leaves the session in the error state; the session is returned either way.
func (s *QuizService) Start(ctx context.Context, quizID string) (*Session, error) {
	session := NewSession(s.newID(), quizID, s.cfg)
	s.sessions.Save(session)
	return session, s.load(ctx, session)
}

// Reload re-fetches the quiz of a failed session and loads it again.
func (s *QuizService) Reload(ctx context.Context, sessionID string) (*Session, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Reset(); err != nil {
		return session, err
	}
	return session, s.load(ctx, session)
}

func (s *QuizService) load(ctx context.Context, session *Session) error {
	quiz, err := s.quizzes.GetQuiz(ctx, session.QuizID())
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrLoadFailure, err)
		_ = session.Fail(err.Error())
		return err
	}
	return session.Load(quiz.Title, quiz.Questions, s.sectionsFor(quiz))
}

func (s *QuizService) sectionsFor(quiz domain.Quiz) []domain.SectionDefinition {
	if len(quiz.Sections) > 0 {
		return quiz.Sections
	}
	return s.cfg.Sections
}

// Session looks up a running session.
func (s *QuizService) Session(sessionID string) (*Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Subscribe returns a channel that receives events for a session.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *QuizService) Subscribe(_ context.Context, sessionID string) (<-chan Event, func(), error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := session.Subscribe()
	return ch, cancel, nil
}

// Pattern describes the layout of a quiz without starting a session.
func (s *QuizService) Pattern(ctx context.Context, quizID string) (scoring.Pattern, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return scoring.Pattern{}, err
	}
	return scoring.NewPattern(s.sectionsFor(quiz), s.cfg.durationSeconds(), s.cfg.MarksPerCorrect, s.cfg.PenaltyPerWrong), nil
}

// End stops a session and drops it from the store.
func (s *QuizService) End(_ context.Context, sessionID string) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	session.Close()
	s.sessions.Delete(sessionID)
}

// EvictFinished drops submitted or failed sessions idle for longer than retain.
func (s *QuizService) EvictFinished(ctx context.Context, retain time.Duration) int {
	cutoff := s.now().Add(-retain)
	evicted := 0
	for _, session := range s.sessions.List() {
		if !session.State().Finished() || session.UpdatedAt().After(cutoff) {
			continue
		}
		s.End(ctx, session.ID())
		evicted++
	}
	if evicted > 0 {
		log.Printf("evicted %d finished sessions", evicted)
	}
	return evicted
}
