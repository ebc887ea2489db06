package app

import (
	"log"
	"sync"
	"time"

	"timed-quiz-service/internal/domain"
	"timed-quiz-service/internal/scoring"
)

// EventType names a session notification.
type EventType string

const (
	EventState         EventType = "state"
	EventTick          EventType = "tick"
	EventAutoSubmitted EventType = "autoSubmitted"
	EventSubmitted     EventType = "submitted"
	EventError         EventType = "error"
)

// Event is pushed to subscribers after every change of a session.
type Event struct {
	Type    EventType       `json:"type"`
	View    SessionView     `json:"view"`
	Report  *scoring.Report `json:"report,omitempty"`
	Message string          `json:"message,omitempty"`
}

// QuestionView is a question as presented to the taker (no answer key).
type QuestionView struct {
	Index   int             `json:"index"`
	ID      int             `json:"id"`
	Type    string          `json:"type"`
	Level   string          `json:"level,omitempty"`
	Text    string          `json:"text"`
	Options []domain.Option `json:"options"`
}

// SessionView is a read-only snapshot of a session.
type SessionView struct {
	SessionID       string                        `json:"sessionId"`
	QuizID          string                        `json:"quizId"`
	Title           string                        `json:"title"`
	State           domain.SessionState           `json:"state"`
	TotalQuestions  int                           `json:"totalQuestions"`
	Current         int                           `json:"current"`
	Question        *QuestionView                 `json:"question,omitempty"`
	Answer          string                        `json:"answer,omitempty"`
	Statuses        []domain.QuestionStatus       `json:"statuses"`
	Palette         map[domain.QuestionStatus]int `json:"palette"`
	Sections        []domain.SectionRange         `json:"sections"`
	ExpandedSection int                           `json:"expandedSection"`
	Remaining       int                           `json:"remaining"`
	Clock           string                        `json:"clock"`
	Attempted       int                           `json:"attempted"`
	Error           string                        `json:"error,omitempty"`
}

// SubmitPrompt is the confirmation summary shown before a manual submission.
type SubmitPrompt struct {
	Attempted int `json:"attempted"`
	Total     int `json:"total"`
}

// Session is the state machine of one quiz attempt. It owns the answer store,
// status tracker and clock; every mutation goes through its methods and is
// serialised by mu.
type Session struct {
	id     string
	quizID string
	cfg    SessionConfig
	now    func() time.Time
	sleep  func(time.Duration)

	mu          sync.Mutex
	title       string
	state       domain.SessionState
	questions   []domain.Question
	defs        []domain.SectionDefinition
	sections    []domain.SectionRange
	answers     *AnswerStore
	statuses    *StatusTracker
	current     int
	expanded    int
	remaining   int
	failure     string
	result      *scoring.Report
	countdown   *Countdown
	updatedAt   time.Time
	subscribers map[chan Event]struct{}
}

// NewSession creates a session in the loading state.
func NewSession(id, quizID string, cfg SessionConfig) *Session {
	return newSessionWithClock(id, quizID, cfg, time.Now, time.Sleep)
}

// NewSessionWithClock is test-only for deterministic timestamps and submission delays.
func NewSessionWithClock(id, quizID string, cfg SessionConfig, now func() time.Time, sleep func(time.Duration)) *Session {
	return newSessionWithClock(id, quizID, cfg, now, sleep)
}

func newSessionWithClock(id, quizID string, cfg SessionConfig, now func() time.Time, sleep func(time.Duration)) *Session {
	s := &Session{
		id:          id,
		quizID:      quizID,
		cfg:         cfg,
		now:         now,
		sleep:       sleep,
		title:       cfg.Title,
		countdown:   NewCountdown(cfg.TickInterval, cfg.Ticker),
		subscribers: make(map[chan Event]struct{}),
	}
	s.resetLocked()
	return s
}

func (s *Session) ID() string     { return s.id }
func (s *Session) QuizID() string { return s.quizID }

// State returns the current lifecycle state.
func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// UpdatedAt returns the time of the last state change.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// Load populates the session and starts the clock. It is valid only while
// loading; a failed session must be Reset first.
func (s *Session) Load(title string, questions []domain.Question, defs []domain.SectionDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.StateLoading {
		return domain.ErrInvalidTransition
	}
	if err := domain.Validate(questions, defs); err != nil {
		s.failLocked(err.Error())
		return err
	}

	if title != "" {
		s.title = title
	}
	s.defs = append([]domain.SectionDefinition(nil), defs...)
	s.questions = domain.SortQuestions(questions, defs)
	s.sections = domain.BuildSections(defs)
	s.answers = NewAnswerStore()
	s.statuses = NewStatusTracker(len(s.questions))
	s.current = 0
	s.expanded = 0
	s.remaining = s.cfg.durationSeconds()
	s.result = nil
	s.failure = ""
	s.state = domain.StateTaking
	s.touchLocked()

	if len(s.questions) == 0 {
		log.Printf("session %s: no questions found for quiz %s", s.id, s.quizID)
	} else {
		s.countdown.Start(s.Tick)
	}
	s.broadcastLocked(Event{Type: EventState})
	return nil
}

// Reset returns a failed session to loading so it can be loaded again.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case domain.StateLoading:
		return nil
	case domain.StateError:
		s.resetLocked()
		s.broadcastLocked(Event{Type: EventState})
		return nil
	default:
		return domain.ErrInvalidTransition
	}
}

func (s *Session) resetLocked() {
	s.countdown.Stop()
	s.state = domain.StateLoading
	s.questions = nil
	s.defs = nil
	s.sections = nil
	s.answers = NewAnswerStore()
	s.statuses = NewStatusTracker(0)
	s.current = 0
	s.expanded = 0
	s.remaining = s.cfg.durationSeconds()
	s.failure = ""
	s.result = nil
	s.touchLocked()
}

// SelectOption records key as the answer of the focused question.
func (s *Session) SelectOption(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.focusedLocked() {
		return domain.ErrInvalidTransition
	}
	key = domain.NormalizeKey(key)
	if !s.questions[s.current].HasOption(key) {
		return domain.ErrOptionNotFound
	}
	s.answers.Set(s.current, key)
	s.statuses.Apply(s.current, domain.EventSelectOption, true)
	s.changedLocked()
	return nil
}

// ClearResponse removes the focused question's answer.
func (s *Session) ClearResponse() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.focusedLocked() {
		return domain.ErrInvalidTransition
	}
	s.answers.Clear(s.current)
	s.statuses.Apply(s.current, domain.EventClearAnswer, false)
	s.changedLocked()
	return nil
}

// MarkForReview flags the focused question.
func (s *Session) MarkForReview() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.focusedLocked() {
		return domain.ErrInvalidTransition
	}
	_, answered := s.answers.Get(s.current)
	s.statuses.Apply(s.current, domain.EventMarkForReview, answered)
	s.changedLocked()
	return nil
}

// Next moves focus forward; it stays put on the last question.
func (s *Session) Next() error {
	return s.step(1)
}

// Previous moves focus back; it stays put on the first question.
func (s *Session) Previous() error {
	return s.step(-1)
}

func (s *Session) step(delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.focusedLocked() {
		return domain.ErrInvalidTransition
	}
	target := s.current + delta
	s.leaveLocked()
	if target >= 0 && target < len(s.questions) {
		s.enterLocked(target)
	}
	s.changedLocked()
	return nil
}

// JumpTo focuses an arbitrary question. Out-of-range indices change nothing.
func (s *Session) JumpTo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.focusedLocked() {
		return domain.ErrInvalidTransition
	}
	if index < 0 || index >= len(s.questions) {
		return domain.ErrQuestionNotFound
	}
	s.leaveLocked()
	s.enterLocked(index)
	s.changedLocked()
	return nil
}

// PromptSubmit returns the confirmation summary without changing state.
func (s *Session) PromptSubmit() (SubmitPrompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.StateTaking {
		return SubmitPrompt{}, domain.ErrInvalidTransition
	}
	if len(s.questions) == 0 {
		return SubmitPrompt{}, domain.ErrEmptySession
	}
	return SubmitPrompt{Attempted: s.answers.Len(), Total: len(s.questions)}, nil
}

// Submit freezes the session and computes the final report. auto marks a
// submission triggered by the clock. Once started, a submission always
// completes; an empty session moves to the error state instead.
func (s *Session) Submit(auto bool) (scoring.Report, error) {
	s.mu.Lock()
	if s.state != domain.StateTaking {
		s.mu.Unlock()
		return scoring.Report{}, domain.ErrInvalidTransition
	}
	if len(s.questions) == 0 {
		s.failLocked(domain.ErrEmptySession.Error())
		s.mu.Unlock()
		return scoring.Report{}, domain.ErrEmptySession
	}

	s.leaveLocked()
	s.state = domain.StateSubmitting
	s.countdown.Stop()
	elapsed := max(0, s.cfg.durationSeconds()-s.remaining)
	questions := s.questions
	answers := s.answers.Snapshot()
	sections := s.sections
	s.touchLocked()
	if auto {
		log.Printf("session %s: time is up, submitting automatically", s.id)
		s.broadcastLocked(Event{Type: EventAutoSubmitted})
	} else {
		s.broadcastLocked(Event{Type: EventState})
	}
	s.mu.Unlock()

	if s.cfg.SubmitDelay > 0 {
		s.sleep(s.cfg.SubmitDelay)
	}
	report := scoring.Analyze(questions, answers, sections, s.cfg.MarksPerCorrect, s.cfg.PenaltyPerWrong).WithElapsed(elapsed)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.StateSubmitted
	s.result = &report
	s.touchLocked()
	s.broadcastLocked(Event{Type: EventSubmitted, Report: &report})
	return report, nil
}

// Tick decrements the clock by one second. It reports whether the clock should
// keep running; reaching zero triggers an automatic submission.
func (s *Session) Tick() bool {
	s.mu.Lock()
	if s.state != domain.StateTaking {
		s.mu.Unlock()
		return false
	}
	if s.remaining > 0 {
		s.remaining--
		s.broadcastLocked(Event{Type: EventTick})
	}
	expired := s.remaining == 0
	s.mu.Unlock()

	if expired {
		_, _ = s.Submit(true)
		return false
	}
	return true
}

// Fail moves the session to the error state. An in-flight submission is not
// interrupted.
func (s *Session) Fail(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.StateSubmitting {
		return domain.ErrInvalidTransition
	}
	s.failLocked(message)
	return nil
}

func (s *Session) failLocked(message string) {
	s.countdown.Stop()
	s.state = domain.StateError
	s.failure = message
	s.touchLocked()
	log.Printf("session %s: %s", s.id, message)
	s.broadcastLocked(Event{Type: EventError, Message: message})
}

// Close stops the clock and releases all subscribers.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countdown.Stop()
	for ch := range s.subscribers {
		delete(s.subscribers, ch)
		close(ch)
	}
}

// View returns a snapshot of the session for presentation.
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Answers returns a copy of the recorded answers keyed by question index.
func (s *Session) Answers() map[int]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Snapshot()
}

// Report returns the frozen result after submission, or a live analysis otherwise.
func (s *Session) Report() scoring.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result != nil {
		return *s.result
	}
	elapsed := max(0, s.cfg.durationSeconds()-s.remaining)
	return scoring.Analyze(s.questions, s.answers.Snapshot(), s.sections, s.cfg.MarksPerCorrect, s.cfg.PenaltyPerWrong).WithElapsed(elapsed)
}

// Review returns the question-wise breakdown; it is only available once submitted.
func (s *Session) Review() ([]scoring.QuestionReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.StateSubmitted {
		return nil, domain.ErrInvalidTransition
	}
	return scoring.Review(s.questions, s.answers.Snapshot()), nil
}

// Pattern summarises the loaded quiz layout.
func (s *Session) Pattern() scoring.Pattern {
	s.mu.Lock()
	defer s.mu.Unlock()
	return scoring.NewPattern(s.defs, s.cfg.durationSeconds(), s.cfg.MarksPerCorrect, s.cfg.PenaltyPerWrong)
}

func (s *Session) focusedLocked() bool {
	return s.state == domain.StateTaking && s.current >= 0 && s.current < len(s.questions)
}

// leaveLocked forces an unanswered, unmarked focused question to not_answered.
// It reads the answer store after every mutation of the current event.
func (s *Session) leaveLocked() {
	_, answered := s.answers.Get(s.current)
	s.statuses.Apply(s.current, domain.EventLeave, answered)
}

func (s *Session) enterLocked(index int) {
	s.current = index
	s.statuses.Apply(index, domain.EventEnter, false)
	if pos := domain.SectionPosition(s.sections, index); pos != -1 {
		s.expanded = pos
	}
}

func (s *Session) changedLocked() {
	s.touchLocked()
	s.broadcastLocked(Event{Type: EventState})
}

func (s *Session) touchLocked() {
	s.updatedAt = s.now()
}

func (s *Session) viewLocked() SessionView {
	view := SessionView{
		SessionID:       s.id,
		QuizID:          s.quizID,
		Title:           s.title,
		State:           s.state,
		TotalQuestions:  len(s.questions),
		Current:         s.current,
		Statuses:        s.statuses.Snapshot(),
		Palette:         s.statuses.Counts(),
		Sections:        append([]domain.SectionRange(nil), s.sections...),
		ExpandedSection: s.expanded,
		Remaining:       s.remaining,
		Clock:           domain.FormatClock(s.remaining),
		Attempted:       s.answers.Len(),
		Error:           s.failure,
	}
	if s.current >= 0 && s.current < len(s.questions) {
		q := s.questions[s.current]
		view.Question = &QuestionView{
			Index:   s.current,
			ID:      q.ID,
			Type:    q.Type,
			Level:   q.Level,
			Text:    q.Text,
			Options: append([]domain.Option(nil), q.Options...),
		}
		view.Answer, _ = s.answers.Get(s.current)
	}
	return view
}

// Subscribe returns a channel receiving session events, primed with the
// current view. The caller must invoke the returned cancel function.
func (s *Session) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	ch <- Event{Type: EventState, View: s.viewLocked()}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Session) broadcastLocked(ev Event) {
	if len(s.subscribers) == 0 {
		return
	}
	ev.View = s.viewLocked()
	for ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
			// slow subscriber: drop its oldest pending event
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}
