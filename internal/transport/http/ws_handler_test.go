package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
	"timed-quiz-service/internal/infra/memory"
)

func TestWebSocketQuizFlow(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService(), nil))
	defer server.Close()

	conn := dial(t, server, "quiz-1")
	defer conn.Close()

	_, started := readNext(conn, t, "started")
	var payload startedPayload
	decode(t, started, &payload)
	if payload.SessionID == "" || payload.Title != "Arithmetic" || payload.Pattern.TotalQuestions != 2 {
		t.Fatalf("unexpected started payload: %+v", payload)
	}

	view := readView(conn, t)
	if view.State != domain.StateTaking || view.Current != 0 {
		t.Fatalf("unexpected initial view: %+v", view)
	}

	send(t, conn, "select", map[string]any{"option": "B"})
	if view = readView(conn, t); view.Answer != "b" || view.Statuses[0] != domain.StatusAnswered {
		t.Fatalf("expected answer recorded, got %+v", view)
	}

	send(t, conn, "next", nil)
	if view = readView(conn, t); view.Current != 1 || view.Statuses[1] != domain.StatusNotAnswered {
		t.Fatalf("expected second question focused, got %+v", view)
	}

	// out of range jumps are errors, invalid-state intents are dropped
	send(t, conn, "jump", map[string]any{"index": 9})
	if typ, msg := readNext(conn, t, "error"); typ != "error" || msg == nil {
		t.Fatalf("expected error for bad jump")
	}

	send(t, conn, "promptSubmit", nil)
	_, raw := readNext(conn, t, "confirm")
	var prompt app.SubmitPrompt
	decode(t, raw, &prompt)
	if prompt.Attempted != 1 || prompt.Total != 2 {
		t.Fatalf("unexpected prompt: %+v", prompt)
	}

	send(t, conn, "submit", nil)
	var report json.RawMessage
	for report == nil {
		typ, raw := readNext(conn, t, "")
		if typ == "submitted" {
			report = raw
		}
	}
	var ev app.Event
	decode(t, report, &ev)
	if ev.Report == nil || ev.Report.Overall.Correct != 1 || ev.Report.Overall.Score != 2 || ev.View.State != domain.StateSubmitted {
		t.Fatalf("unexpected submitted event: %+v", ev)
	}

	// further intents after submission are ignored silently, review is answered
	send(t, conn, "next", nil)
	send(t, conn, "review", nil)
	_, raw = readNext(conn, t, "review")
	var review []map[string]any
	decode(t, raw, &review)
	if len(review) != 2 || review[0]["outcome"] != "correct" {
		t.Fatalf("unexpected review: %v", review)
	}

	resp, err := http.Get(server.URL + "/api/sessions/" + payload.SessionID + "/report")
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body reportResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if body.State != domain.StateSubmitted || body.Report.Overall.Score != 2 || len(body.Review) != 2 {
		t.Fatalf("unexpected report body: %+v", body)
	}
}

func TestWebSocketUnknownQuizReportsError(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService(), nil))
	defer server.Close()

	conn := dial(t, server, "missing")
	defer conn.Close()

	readNext(conn, t, "started")
	view := readView(conn, t)
	if view.State != domain.StateError || view.Error == "" {
		t.Fatalf("expected error state, got %+v", view)
	}

	send(t, conn, "reload", nil)
	if typ, _ := readNext(conn, t, ""); typ != "state" && typ != "error" {
		t.Fatalf("expected reload to report state, got %s", typ)
	}
}

func TestPatternEndpoint(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService(), nil))
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/quizzes/quiz-1/pattern")
	if err != nil {
		t.Fatalf("get pattern: %v", err)
	}
	defer resp.Body.Close()
	var pattern map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&pattern); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != http.StatusOK || pattern["totalQuestions"] != float64(2) {
		t.Fatalf("unexpected pattern response %d: %v", resp.StatusCode, pattern)
	}

	missing, err := http.Get(server.URL + "/api/quizzes/nope/pattern")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", missing.StatusCode)
	}

	health, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	health.Body.Close()
	if health.StatusCode != http.StatusOK {
		t.Fatalf("expected healthy, got %d", health.StatusCode)
	}
}

func TestWebSocketRequiresQuizID(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService(), nil))
	defer server.Close()

	resp, err := http.Get(server.URL + "/ws")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func dial(t *testing.T, server *httptest.Server, quizID string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws?quizId=" + quizID
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": typ, "payload": payload}); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, json.RawMessage) {
	t.Helper()
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}

// readView skips to the next state event and returns its view.
func readView(conn *websocket.Conn, t *testing.T) app.SessionView {
	t.Helper()
	for {
		typ, raw := readNext(conn, t, "")
		if typ != string(app.EventState) {
			continue
		}
		var ev app.Event
		decode(t, raw, &ev)
		return ev.View
	}
}

func decode(t *testing.T, raw json.RawMessage, v any) {
	t.Helper()
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
}

func newTestService() *app.QuizService {
	options := []domain.Option{{Key: "a", Text: "3"}, {Key: "b", Text: "4"}, {Key: "c", Text: "5"}}
	quizRepo := memory.NewQuizRepository(memory.NewStaticQuizLoader(map[string]domain.Quiz{
		"quiz-1": {
			ID:       "quiz-1",
			Title:    "Arithmetic",
			Sections: []domain.SectionDefinition{{Key: "math", Title: "Mathematics", Questions: 2}},
			Questions: []domain.Question{
				{ID: 1, Type: "math", Text: "What is 2 + 2?", Options: options, Correct: "b"},
				{ID: 2, Type: "math", Text: "What is 2 + 3?", Options: options, Correct: "c"},
			},
		},
	}), time.Minute)
	cfg := app.DefaultConfig()
	cfg.SubmitDelay = 0
	cfg.Ticker = func(time.Duration) (<-chan time.Time, func()) { return nil, func() {} }
	return app.NewQuizService(memory.NewSessionStore(), quizRepo, cfg)
}
