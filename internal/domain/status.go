package domain

// QuestionStatus is the visitation/review state of one question.
type QuestionStatus string

const (
	StatusNotVisited        QuestionStatus = "not_visited"
	StatusNotAnswered       QuestionStatus = "not_answered"
	StatusAnswered          QuestionStatus = "answered"
	StatusMarkedForReview   QuestionStatus = "marked_for_review"
	StatusAnsweredAndMarked QuestionStatus = "answered_and_marked"
)

// Statuses lists every status in palette legend order.
var Statuses = []QuestionStatus{
	StatusAnswered,
	StatusNotAnswered,
	StatusNotVisited,
	StatusMarkedForReview,
	StatusAnsweredAndMarked,
}

// StatusEvent is a user intent that affects the focused question's status.
type StatusEvent int

const (
	EventSelectOption StatusEvent = iota
	EventClearAnswer
	EventMarkForReview
	EventEnter
	EventLeave
)

func (e StatusEvent) String() string {
	switch e {
	case EventSelectOption:
		return "select"
	case EventClearAnswer:
		return "clear"
	case EventMarkForReview:
		return "mark"
	case EventEnter:
		return "enter"
	case EventLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// HasAnswer reports whether the status implies a recorded answer.
func (s QuestionStatus) HasAnswer() bool {
	return s == StatusAnswered || s == StatusAnsweredAndMarked
}

// Marked reports whether the question is flagged for review.
func (s QuestionStatus) Marked() bool {
	return s == StatusMarkedForReview || s == StatusAnsweredAndMarked
}

// Transition applies event to the current status. answered is the Answer Store
// state of the question after all mutations of the same event have been applied;
// it only matters for EventLeave.
func Transition(current QuestionStatus, event StatusEvent, answered bool) QuestionStatus {
	switch event {
	case EventSelectOption:
		if current.Marked() {
			return StatusAnsweredAndMarked
		}
		return StatusAnswered
	case EventClearAnswer:
		if current == StatusAnsweredAndMarked {
			return StatusMarkedForReview
		}
		return StatusNotAnswered
	case EventMarkForReview:
		if current.HasAnswer() {
			return StatusAnsweredAndMarked
		}
		return StatusMarkedForReview
	case EventEnter:
		if current == StatusNotVisited || current == "" {
			return StatusNotAnswered
		}
	case EventLeave:
		if (current == StatusNotVisited || current == StatusNotAnswered || current == "") && !answered {
			return StatusNotAnswered
		}
	}
	return current
}
